package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/khusela/internal/database"
	"github.com/MrJamesThe3rd/khusela/internal/employee"
)

const selectEmployeeColumns = `
	e.id, e.user_id, e.franchise_id, COALESCE(f.franchise_name, ''),
	e.title, e.first_name, e.last_name, e.id_number, e.tax_number, e.birth_date,
	e.marital_status, e.email, e.home_phone, e.alternate_phone,
	e.address_street, e.address_city, e.postal_code, e.allergies_health_concerns,
	e.ec_title, e.ec_first_name, e.ec_last_name, e.ec_address,
	e.ec_primary_phone, e.ec_alternate_phone, e.ec_relationship,
	e.bank_name, e.branch_name, e.branch_code, e.account_name, e.account_number,
	e.created_at`

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row scanner) (*employee.Employee, error) {
	var (
		e     employee.Employee
		birth sql.NullTime
	)

	err := row.Scan(
		&e.ID, &e.UserID, &e.FranchiseID, &e.FranchiseName,
		database.Text(&e.Title), &e.FirstName, &e.LastName, database.Text(&e.IDNumber), database.Text(&e.TaxNumber), &birth,
		database.Text(&e.MaritalStatus), database.Text(&e.Email), database.Text(&e.HomePhone), database.Text(&e.AltPhone),
		database.Text(&e.AddressStreet), database.Text(&e.AddressCity), database.Text(&e.PostalCode), database.Text(&e.AllergiesHealthConcerns),
		database.Text(&e.Emergency.Title), database.Text(&e.Emergency.FirstName), database.Text(&e.Emergency.LastName), database.Text(&e.Emergency.Address),
		database.Text(&e.Emergency.PrimaryPhone), database.Text(&e.Emergency.AltPhone), database.Text(&e.Emergency.Relationship),
		database.Text(&e.Banking.BankName), database.Text(&e.Banking.BranchName), database.Text(&e.Banking.BranchCode),
		database.Text(&e.Banking.AccountName), database.Text(&e.Banking.AccountNumber),
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if birth.Valid {
		e.BirthDate = &birth.Time
	}

	return &e, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]*employee.Employee, error) {
	query := `SELECT ` + selectEmployeeColumns + `
		FROM employees e
		LEFT JOIN franchises f ON e.franchise_id = f.id
		ORDER BY e.last_name ASC, e.first_name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	var out []*employee.Employee

	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning employee: %w", err)
		}

		out = append(out, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employee rows: %w", err)
	}

	return out, nil
}

func (s *Store) GetEmployee(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	query := `SELECT ` + selectEmployeeColumns + `
		FROM employees e
		LEFT JOIN franchises f ON e.franchise_id = f.id
		WHERE e.id = $1`

	e, err := scanEmployee(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, employee.ErrNotFound
		}

		return nil, fmt.Errorf("getting employee: %w", err)
	}

	return e, nil
}

// args returns the editable columns in insert order, ending with franchise_id.
func args(e *employee.Employee) []any {
	var birth sql.NullTime
	if e.BirthDate != nil {
		birth = sql.NullTime{Time: *e.BirthDate, Valid: true}
	}

	return []any{
		database.NullString(e.Title), e.FirstName, e.LastName,
		database.NullString(e.IDNumber), database.NullString(e.TaxNumber), birth,
		database.NullString(e.MaritalStatus), database.NullString(e.Email),
		database.NullString(e.HomePhone), database.NullString(e.AltPhone),
		database.NullString(e.AddressStreet), database.NullString(e.AddressCity),
		database.NullString(e.PostalCode), database.NullString(e.AllergiesHealthConcerns),
		database.NullString(e.Emergency.Title), database.NullString(e.Emergency.FirstName),
		database.NullString(e.Emergency.LastName), database.NullString(e.Emergency.Address),
		database.NullString(e.Emergency.PrimaryPhone), database.NullString(e.Emergency.AltPhone),
		database.NullString(e.Emergency.Relationship),
		database.NullString(e.Banking.BankName), database.NullString(e.Banking.BranchName),
		database.NullString(e.Banking.BranchCode), database.NullString(e.Banking.AccountName),
		database.NullString(e.Banking.AccountNumber),
		e.FranchiseID,
	}
}

func (s *Store) CreateEmployee(ctx context.Context, e *employee.Employee) error {
	query := `
		INSERT INTO employees (
			title, first_name, last_name, id_number, tax_number, birth_date,
			marital_status, email, home_phone, alternate_phone,
			address_street, address_city, postal_code, allergies_health_concerns,
			ec_title, ec_first_name, ec_last_name, ec_address,
			ec_primary_phone, ec_alternate_phone, ec_relationship,
			bank_name, branch_name, branch_code, account_name, account_number,
			franchise_id, user_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28
		)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, append(args(e), e.UserID)...).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating employee: %w", err)
	}

	return nil
}

func (s *Store) UpdateEmployee(ctx context.Context, e *employee.Employee) error {
	query := `
		UPDATE employees SET
			title = $1, first_name = $2, last_name = $3, id_number = $4, tax_number = $5, birth_date = $6,
			marital_status = $7, email = $8, home_phone = $9, alternate_phone = $10,
			address_street = $11, address_city = $12, postal_code = $13, allergies_health_concerns = $14,
			ec_title = $15, ec_first_name = $16, ec_last_name = $17, ec_address = $18,
			ec_primary_phone = $19, ec_alternate_phone = $20, ec_relationship = $21,
			bank_name = $22, branch_name = $23, branch_code = $24, account_name = $25, account_number = $26,
			franchise_id = COALESCE($27, franchise_id)
		WHERE id = $28
		RETURNING user_id, franchise_id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, append(args(e), e.ID)...).Scan(&e.UserID, &e.FranchiseID, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return employee.ErrNotFound
		}

		return fmt.Errorf("updating employee: %w", err)
	}

	return nil
}

func (s *Store) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting employee: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return employee.ErrNotFound
	}

	return nil
}
