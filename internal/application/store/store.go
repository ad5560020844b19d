package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/khusela/internal/application"
	"github.com/MrJamesThe3rd/khusela/internal/database"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectApplicationColumns = `
	a.id, a.client_id, a.consultant_id, a.franchise_id, a.date, a.time_of_call::text,
	a.ext_number, a.branch,
	a.is_med, a.is_dreview, a.is_drr, a.is_3in1, a.is_rent_to, a.other_type,
	a.gross_salary, a.nett_salary, a.spouse_salary,
	a.exp_groceries, a.exp_rent_bond, a.exp_transport, a.exp_school_fees, a.exp_rates, a.exp_water_elec,
	a.total_expenses, a.bank, a.account_no, a.account_type, a.debt_review_status,
	a.debit_order_date, a.debit_order_amount,
	a.has_id_copy, a.has_payslip, a.has_proof_of_address,
	a.status, a.created_at, a.updated_at,
	c.first_name, c.last_name, c.id_number, c.cell, c.whatsapp, c.email, c.address, c.employer, c.marital_status,
	COALESCE(e.first_name || ' ' || e.last_name, ''), COALESCE(f.franchise_name, '')
`

const fromApplications = `
	FROM applications a
	LEFT JOIN clients c ON a.client_id = c.id
	LEFT JOIN employees e ON a.consultant_id = e.id
	LEFT JOIN franchises f ON a.franchise_id = f.id
`

// scanApplication reads a row selected with selectApplicationColumns.
func scanApplication(s scanner) (*application.Application, error) {
	var app application.Application

	var client application.Client

	var status string

	if err := s.Scan(
		&app.ID, &app.ClientID, &app.ConsultantID, &app.FranchiseID, &app.Date, database.Text(&app.TimeOfCall),
		database.Text(&app.ExtNumber), database.Text(&app.Branch),
		&app.Types.MED, &app.Types.DebtReview, &app.Types.DRR, &app.Types.ThreeInOne, &app.Types.RentTo, database.Text(&app.Types.Other),
		&app.GrossSalary, &app.NettSalary, &app.SpouseSalary,
		&app.Expenses.Groceries, &app.Expenses.RentBond, &app.Expenses.Transport,
		&app.Expenses.SchoolFees, &app.Expenses.Rates, &app.Expenses.WaterElec,
		&app.TotalExpenses, database.Text(&app.Bank), database.Text(&app.AccountNo), database.Text(&app.AccountType), database.Text(&app.DebtReviewStatus),
		database.Text(&app.DebitOrderDate), &app.DebitOrderAmount,
		&app.Documents.IDCopy, &app.Documents.Payslip, &app.Documents.ProofOfAddress,
		&status, &app.CreatedAt, &app.UpdatedAt,
		database.Text(&client.FirstName), database.Text(&client.LastName), database.Text(&client.IDNumber), database.Text(&client.Cell),
		database.Text(&client.WhatsApp), database.Text(&client.Email), database.Text(&client.Address), database.Text(&client.Employer),
		database.Text(&client.MaritalStatus),
		&app.ConsultantName, &app.FranchiseName,
	); err != nil {
		return nil, err
	}

	app.Status = application.Status(status)
	client.ID = app.ClientID
	app.Client = &client

	return &app, nil
}

func (s *Store) GetApplication(ctx context.Context, id uuid.UUID) (*application.Application, error) {
	query := `SELECT ` + selectApplicationColumns + fromApplications + `WHERE a.id = $1`

	app, err := scanApplication(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, application.ErrNotFound
		}

		return nil, fmt.Errorf("getting application: %w", err)
	}

	creditors, err := s.listCreditors(ctx, id)
	if err != nil {
		return nil, err
	}

	app.Creditors = creditors

	return app, nil
}

func (s *Store) listCreditors(ctx context.Context, applicationID uuid.UUID) ([]*application.Creditor, error) {
	query := `
		SELECT id, application_id, creditor_name, account_num_ref, balance_of_acc, amount, created_at
		FROM application_creditors
		WHERE application_id = $1
		ORDER BY position ASC, created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, applicationID)
	if err != nil {
		return nil, fmt.Errorf("listing creditors: %w", err)
	}
	defer rows.Close()

	var creditors []*application.Creditor

	for rows.Next() {
		var c application.Creditor
		if err := rows.Scan(
			&c.ID, &c.ApplicationID, database.Text(&c.Name), database.Text(&c.AccountRef), &c.Balance, &c.Amount, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning creditor: %w", err)
		}

		creditors = append(creditors, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating creditor rows: %w", err)
	}

	return creditors, nil
}

func (s *Store) ListApplications(ctx context.Context, filter application.ListFilter) ([]*application.Application, error) {
	query := `SELECT ` + selectApplicationColumns + fromApplications + `WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND a.status = $%d", argIdx)

		args = append(args, string(*filter.Status))
		argIdx++
	}

	if filter.FranchiseID != nil {
		query += fmt.Sprintf(" AND a.franchise_id = $%d", argIdx)

		args = append(args, *filter.FranchiseID)
	}

	query += " ORDER BY a.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}
	defer rows.Close()

	var apps []*application.Application

	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning application: %w", err)
		}

		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating application rows: %w", err)
	}

	return apps, nil
}

func (s *Store) CountByStatus(ctx context.Context) (map[application.Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("counting applications: %w", err)
	}
	defer rows.Close()

	counts := make(map[application.Status]int)

	for rows.Next() {
		var (
			status string
			n      int
		)

		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}

		counts[application.Status(status)] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating count rows: %w", err)
	}

	return counts, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) error {
	query := `
		UPDATE applications
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	res, err := s.db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	return requireRow(res)
}

func (s *Store) DeleteApplication(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting application: %w", err)
	}

	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return application.ErrNotFound
	}

	return nil
}

func clientLockKey(nationalID string) int64 {
	h := fnv.New64a()
	h.Write([]byte("clients"))
	h.Write([]byte{0})
	h.Write([]byte(nationalID))

	return int64(h.Sum64())
}

type createTx struct {
	tx *sql.Tx
}

func (s *Store) BeginCreate(ctx context.Context, nationalID string) (application.CreateTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning create tx: %w", err)
	}

	if nationalID != "" {
		if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", clientLockKey(nationalID)); err != nil {
			dbTx.Rollback()
			return nil, fmt.Errorf("acquiring client lock: %w", err)
		}
	}

	return &createTx{tx: dbTx}, nil
}

func (t *createTx) Commit() error   { return t.tx.Commit() }
func (t *createTx) Rollback() error { return t.tx.Rollback() }

// FindClientByNationalID returns the stored client, whose details win over
// whatever a later submission carries.
func (t *createTx) FindClientByNationalID(ctx context.Context, nationalID string) (*application.Client, error) {
	query := `
		SELECT id, first_name, last_name, COALESCE(id_number, ''), COALESCE(cell, ''), COALESCE(whatsapp, ''),
			COALESCE(email, ''), COALESCE(address, ''), COALESCE(employer, ''), COALESCE(marital_status, ''), created_at
		FROM clients WHERE id_number = $1
	`

	var c application.Client

	err := t.tx.QueryRowContext(ctx, query, nationalID).Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.IDNumber, &c.Cell, &c.WhatsApp,
		&c.Email, &c.Address, &c.Employer, &c.MaritalStatus, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, application.ErrNotFound
		}

		return nil, fmt.Errorf("finding client: %w", err)
	}

	return &c, nil
}

// CreateClient inserts the client. A row that already holds the same national ID
// is kept unchanged and its id and names are returned.
func (t *createTx) CreateClient(ctx context.Context, client *application.Client) error {
	query := `
		INSERT INTO clients (first_name, last_name, id_number, cell, whatsapp, email, address, employer, marital_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id_number) DO UPDATE SET id_number = EXCLUDED.id_number
		RETURNING id, first_name, last_name, created_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		client.FirstName,
		client.LastName,
		database.NullString(client.IDNumber),
		database.NullString(client.Cell),
		database.NullString(client.WhatsApp),
		database.NullString(client.Email),
		database.NullString(client.Address),
		database.NullString(client.Employer),
		database.NullString(client.MaritalStatus),
	).Scan(&client.ID, &client.FirstName, &client.LastName, &client.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	return nil
}

func (t *createTx) CreateApplication(ctx context.Context, app *application.Application) error {
	query := `
		INSERT INTO applications (
			client_id, consultant_id, franchise_id,
			ext_number, branch,
			is_med, is_dreview, is_drr, is_3in1, is_rent_to, other_type,
			gross_salary, nett_salary, spouse_salary,
			exp_groceries, exp_rent_bond, exp_transport,
			exp_school_fees, exp_rates, exp_water_elec, total_expenses,
			bank, account_no, account_type, debt_review_status,
			debit_order_date, debit_order_amount,
			has_id_copy, has_payslip, has_proof_of_address,
			status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31
		)
		RETURNING id, date, time_of_call::text, created_at, updated_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		app.ClientID, app.ConsultantID, app.FranchiseID,
		database.NullString(app.ExtNumber), database.NullString(app.Branch),
		app.Types.MED, app.Types.DebtReview, app.Types.DRR, app.Types.ThreeInOne, app.Types.RentTo,
		database.NullString(app.Types.Other),
		app.GrossSalary, app.NettSalary, app.SpouseSalary,
		app.Expenses.Groceries, app.Expenses.RentBond, app.Expenses.Transport,
		app.Expenses.SchoolFees, app.Expenses.Rates, app.Expenses.WaterElec, app.TotalExpenses,
		database.NullString(app.Bank), database.NullString(app.AccountNo), database.NullString(app.AccountType), database.NullString(app.DebtReviewStatus),
		database.NullString(app.DebitOrderDate), app.DebitOrderAmount,
		app.Documents.IDCopy, app.Documents.Payslip, app.Documents.ProofOfAddress,
		string(app.Status),
	).Scan(&app.ID, &app.Date, &app.TimeOfCall, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating application: %w", err)
	}

	return nil
}

func (t *createTx) CreateCreditors(ctx context.Context, applicationID uuid.UUID, creditors []*application.Creditor) error {
	query := `
		INSERT INTO application_creditors (application_id, creditor_name, account_num_ref, balance_of_acc, amount, position)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	for i, cr := range creditors {
		err := t.tx.QueryRowContext(ctx, query,
			applicationID,
			database.NullString(cr.Name),
			database.NullString(cr.AccountRef),
			cr.Balance,
			cr.Amount,
			i,
		).Scan(&cr.ID, &cr.CreatedAt)
		if err != nil {
			return fmt.Errorf("creating creditor %d: %w", i+1, err)
		}

		cr.ApplicationID = applicationID
	}

	return nil
}
