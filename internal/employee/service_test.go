package employee_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/khusela/internal/employee"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		input     *employee.Employee
		setupMock func(m *employee.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:  "TrimsNames",
			input: &employee.Employee{FirstName: " Naledi ", LastName: "Mokoena "},
			setupMock: func(m *employee.MockRepository) {
				m.EXPECT().
					CreateEmployee(gomock.Any(), &employee.Employee{FirstName: "Naledi", LastName: "Mokoena"}).
					Return(nil)
			},
		},
		{
			name:    "MissingLastName",
			input:   &employee.Employee{FirstName: "Naledi", LastName: "  "},
			wantErr: employee.ErrNameRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := employee.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			err := employee.NewService(repo).Create(context.Background(), tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := &employee.Employee{ID: uuid.New(), FirstName: "Naledi", LastName: "Mokoena"}

	repo := employee.NewMockRepository(ctrl)
	repo.EXPECT().UpdateEmployee(gomock.Any(), e).Return(employee.ErrNotFound)

	assert.ErrorIs(t, employee.NewService(repo).Update(context.Background(), e), employee.ErrNotFound)
}
