package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/khusela/internal/auth"
	"github.com/MrJamesThe3rd/khusela/internal/user"
)

func hashed(t *testing.T, password string) string {
	t.Helper()

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return string(h)
}

func TestService_Authenticate(t *testing.T) {
	franchise := uuid.New()

	active := &user.User{
		ID:          uuid.New(),
		FranchiseID: &franchise,
		Username:    "thandi",
		Role:        auth.RoleConsultant,
		IsActive:    true,
	}

	type testCase struct {
		name      string
		password  string
		setupMock func(m *user.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:     "Success",
			password: "secret1",
			setupMock: func(m *user.MockRepository) {
				u := *active
				u.PasswordHash = hashed(t, "secret1")
				m.EXPECT().GetByUsername(gomock.Any(), "thandi").Return(&u, nil)
			},
		},
		{
			name:     "WrongPassword",
			password: "secret2",
			setupMock: func(m *user.MockRepository) {
				u := *active
				u.PasswordHash = hashed(t, "secret1")
				m.EXPECT().GetByUsername(gomock.Any(), "thandi").Return(&u, nil)
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:     "Inactive",
			password: "secret1",
			setupMock: func(m *user.MockRepository) {
				u := *active
				u.IsActive = false
				u.PasswordHash = hashed(t, "secret1")
				m.EXPECT().GetByUsername(gomock.Any(), "thandi").Return(&u, nil)
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:     "Unknown",
			password: "secret1",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetByUsername(gomock.Any(), "thandi").Return(nil, user.ErrNotFound)
			},
			wantErr: auth.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := user.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := user.NewService(repo)
			got, err := svc.Authenticate(context.Background(), " thandi ", tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, active.ID, got.UserID)
			assert.Equal(t, auth.RoleConsultant, got.Role)
			assert.Equal(t, &franchise, got.FranchiseID)
		})
	}
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    user.CreateParams
		setupMock func(m *user.MockRepository)
		wantMsg   string
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			params: user.CreateParams{Username: "sipho", Password: "secret1", Role: auth.RoleHR},
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *user.User) error {
						assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")))
						u.ID = uuid.New()

						return nil
					})
			},
		},
		{
			name:    "MissingFields",
			params:  user.CreateParams{Username: "sipho"},
			wantMsg: "Username, password and role are required.",
		},
		{
			name:    "InvalidRole",
			params:  user.CreateParams{Username: "sipho", Password: "secret1", Role: "Owner"},
			wantMsg: "Invalid role.",
		},
		{
			name:    "ShortPassword",
			params:  user.CreateParams{Username: "sipho", Password: "abc", Role: auth.RoleHR},
			wantMsg: "Password must be at least 6 characters.",
		},
		{
			name:   "Duplicate",
			params: user.CreateParams{Username: "sipho", Password: "secret1", Role: auth.RoleHR},
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(user.ErrUsernameTaken)
			},
			wantErr: user.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := user.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := user.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			switch {
			case tt.wantMsg != "":
				var vErr *user.ValidationError

				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tt.wantMsg, vErr.Message)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
				assert.True(t, got.IsActive)
				assert.NotEqual(t, uuid.Nil, got.ID)
			}
		})
	}
}

func TestService_ResetPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := user.NewMockRepository(ctrl)
	repo.EXPECT().UpdatePassword(gomock.Any(), id, gomock.Any()).Return(errors.New("db down"))

	svc := user.NewService(repo)

	var vErr *user.ValidationError

	require.ErrorAs(t, svc.ResetPassword(context.Background(), id, "12345"), &vErr)
	assert.Error(t, svc.ResetPassword(context.Background(), id, "123456"))
}
