package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/khusela/internal/database"
	"github.com/MrJamesThe3rd/khusela/internal/franchise"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListFranchises(ctx context.Context) ([]*franchise.Franchise, error) {
	query := `
		SELECT f.id, f.franchise_name, COALESCE(f.location, ''), f.created_at,
			COUNT(DISTINCT u.id) AS user_count,
			COUNT(DISTINCT a.id) AS application_count
		FROM franchises f
		LEFT JOIN users u ON u.franchise_id = f.id
		LEFT JOIN applications a ON a.franchise_id = f.id
		GROUP BY f.id
		ORDER BY f.created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing franchises: %w", err)
	}
	defer rows.Close()

	var out []*franchise.Franchise

	for rows.Next() {
		var f franchise.Franchise
		if err := rows.Scan(&f.ID, &f.Name, &f.Location, &f.CreatedAt, &f.UserCount, &f.ApplicationCount); err != nil {
			return nil, fmt.Errorf("scanning franchise: %w", err)
		}

		out = append(out, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating franchise rows: %w", err)
	}

	return out, nil
}

func (s *Store) CreateFranchise(ctx context.Context, f *franchise.Franchise) error {
	query := `
		INSERT INTO franchises (franchise_name, location)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	if err := s.db.QueryRowContext(ctx, query, f.Name, database.NullString(f.Location)).Scan(&f.ID, &f.CreatedAt); err != nil {
		return fmt.Errorf("creating franchise: %w", err)
	}

	return nil
}

func (s *Store) UpdateFranchise(ctx context.Context, f *franchise.Franchise) error {
	query := `
		UPDATE franchises SET franchise_name = $1, location = $2
		WHERE id = $3
		RETURNING created_at
	`

	err := s.db.QueryRowContext(ctx, query, f.Name, database.NullString(f.Location), f.ID).Scan(&f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return franchise.ErrNotFound
		}

		return fmt.Errorf("updating franchise: %w", err)
	}

	return nil
}

func (s *Store) DeleteFranchise(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM franchises WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting franchise: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return franchise.ErrNotFound
	}

	return nil
}
