package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/khusela/internal/auth"
	"github.com/MrJamesThe3rd/khusela/internal/user"
	"github.com/MrJamesThe3rd/khusela/internal/user/store"
)

func newMock(t *testing.T) (*store.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	return store.New(db), mock
}

func TestStore_CreateUser_Duplicate(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})

	err := s.CreateUser(context.Background(), &user.User{Username: "admin", Role: auth.RoleAdmin})

	assert.ErrorIs(t, err, user.ErrUsernameTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetByUsername(t *testing.T) {
	s, mock := newMock(t)

	id := uuid.New()

	mock.ExpectQuery("FROM users").
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "franchise_id", "username", "password_hash", "role", "is_active", "created_at",
		}).AddRow(id.String(), nil, "admin", "$2a$10$hash", "Admin", true, time.Now()))

	got, err := s.GetByUsername(context.Background(), "admin")

	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Nil(t, got.FranchiseID)
	assert.Equal(t, auth.RoleAdmin, got.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetByUsername_NotFound(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery("FROM users").WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.GetByUsername(context.Background(), "ghost")

	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestStore_ToggleActive(t *testing.T) {
	s, mock := newMock(t)

	id := uuid.New()

	mock.ExpectQuery("UPDATE users SET is_active = NOT is_active").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "is_active"}).AddRow(id.String(), "sipho", false))

	got, err := s.ToggleActive(context.Background(), id)

	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteUser_NotFound(t *testing.T) {
	s, mock := newMock(t)

	id := uuid.New()

	mock.ExpectExec("DELETE FROM users").WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, s.DeleteUser(context.Background(), id), user.ErrNotFound)
}
