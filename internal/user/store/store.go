package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/khusela/internal/auth"
	"github.com/MrJamesThe3rd/khusela/internal/user"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (username, password_hash, role, franchise_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at
	`

	err := s.db.QueryRowContext(ctx, query, u.Username, u.PasswordHash, string(u.Role), u.FranchiseID).
		Scan(&u.ID, &u.IsActive, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return user.ErrUsernameTaken
		}

		return fmt.Errorf("creating user: %w", err)
	}

	return nil
}

func (s *Store) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	query := `
		SELECT id, franchise_id, username, password_hash, role, is_active, created_at
		FROM users
		WHERE username = $1
	`

	var (
		u    user.User
		role string
	)

	err := s.db.QueryRowContext(ctx, query, username).
		Scan(&u.ID, &u.FranchiseID, &u.Username, &u.PasswordHash, &role, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	u.Role = auth.Role(role)

	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]*user.User, error) {
	query := `
		SELECT u.id, u.franchise_id, COALESCE(f.franchise_name, ''), u.username, u.role, u.is_active, u.created_at
		FROM users u
		LEFT JOIN franchises f ON u.franchise_id = f.id
		ORDER BY u.created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []*user.User

	for rows.Next() {
		var (
			u    user.User
			role string
		)

		if err := rows.Scan(&u.ID, &u.FranchiseID, &u.FranchiseName, &u.Username, &role, &u.IsActive, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}

		u.Role = auth.Role(role)
		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user rows: %w", err)
	}

	return users, nil
}

func (s *Store) ToggleActive(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `
		UPDATE users SET is_active = NOT is_active
		WHERE id = $1
		RETURNING id, username, is_active
	`

	var u user.User

	err := s.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Username, &u.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("toggling user: %w", err)
	}

	return &u, nil
}

func (s *Store) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, hash, id)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	return requireRow(res)
}

func (s *Store) DeleteUser(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return user.ErrNotFound
	}

	return nil
}
