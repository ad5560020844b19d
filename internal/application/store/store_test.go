package store_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/khusela/internal/application"
	"github.com/MrJamesThe3rd/khusela/internal/application/store"
)

const nationalID = "8001015009087"

var applicationColumns = []string{
	"id", "client_id", "consultant_id", "franchise_id", "date", "time_of_call",
	"ext_number", "branch",
	"is_med", "is_dreview", "is_drr", "is_3in1", "is_rent_to", "other_type",
	"gross_salary", "nett_salary", "spouse_salary",
	"exp_groceries", "exp_rent_bond", "exp_transport", "exp_school_fees", "exp_rates", "exp_water_elec",
	"total_expenses", "bank", "account_no", "account_type", "debt_review_status",
	"debit_order_date", "debit_order_amount",
	"has_id_copy", "has_payslip", "has_proof_of_address",
	"status", "created_at", "updated_at",
	"first_name", "last_name", "id_number", "cell", "whatsapp", "email", "address", "employer", "marital_status",
	"consultant_name", "franchise_name",
}

func newMock(t *testing.T) (*store.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	return store.New(db), mock
}

func params(id string, creditors ...string) application.CreateParams {
	p := application.CreateParams{
		Client: application.Client{FirstName: "Jane", LastName: "Doe", IDNumber: id},
		Application: application.Application{
			ExtNumber:   "101",
			Branch:      "Main",
			Types:       application.Types{MED: true},
			GrossSalary: decimal.NewNullDecimal(decimal.NewFromInt(10000)),
			NettSalary:  decimal.NewNullDecimal(decimal.NewFromInt(8000)),
		},
	}

	for _, name := range creditors {
		p.Creditors = append(p.Creditors, application.Creditor{Name: name})
	}

	return p
}

var (
	clientInsertColumns = []string{"id", "first_name", "last_name", "created_at"}
	clientColumns       = []string{
		"id", "first_name", "last_name", "id_number", "cell", "whatsapp",
		"email", "address", "employer", "marital_status", "created_at",
	}
)

func expectApplicationInsert(mock sqlmock.Sqlmock, id uuid.UUID) {
	now := time.Now()

	mock.ExpectQuery("INSERT INTO applications").
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "time_of_call", "created_at", "updated_at"}).
			AddRow(id.String(), now, "09:30:00", now, now))
}

func expectCreditorInsert(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("INSERT INTO application_creditors").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(uuid.NewString(), time.Now()))
}

func TestStore_Create_RollsBackEverythingWhenCreditorFails(t *testing.T) {
	s, mock := newMock(t)
	svc := application.NewService(s, nil)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO clients").
		WillReturnRows(sqlmock.NewRows(clientInsertColumns).AddRow(uuid.NewString(), "Jane", "Doe", time.Now()))
	expectApplicationInsert(mock, uuid.New())
	expectCreditorInsert(mock)
	mock.ExpectQuery("INSERT INTO application_creditors").WillReturnError(errors.New("value too long"))
	mock.ExpectRollback()

	got, err := svc.Create(context.Background(), params("", "Store Card", "Bank Loan", "Furniture"))

	require.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "creating creditor 2")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Create_SequentialSameNationalIDSharesClient(t *testing.T) {
	s, mock := newMock(t)
	svc := application.NewService(s, nil)

	clientID := uuid.New()
	findClient := regexp.QuoteMeta(`FROM clients WHERE id_number = $1`)

	// First submission creates the client.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(findClient).WithArgs(nationalID).WillReturnRows(sqlmock.NewRows(clientColumns))
	mock.ExpectQuery("INSERT INTO clients").
		WillReturnRows(sqlmock.NewRows(clientInsertColumns).AddRow(clientID.String(), "Jane", "Doe", time.Now()))
	expectApplicationInsert(mock, uuid.New())
	expectCreditorInsert(mock)
	mock.ExpectCommit()

	// Second submission finds it and inserts no client row.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(findClient).WithArgs(nationalID).
		WillReturnRows(sqlmock.NewRows(clientColumns).
			AddRow(clientID.String(), "Jane", "Doe", nationalID, "0821234567", "", "", "", "", "", time.Now()))
	expectApplicationInsert(mock, uuid.New())
	expectCreditorInsert(mock)
	mock.ExpectCommit()

	first, err := svc.Create(context.Background(), params(nationalID, "Store Card"))
	require.NoError(t, err)

	second := params(nationalID, "Bank Loan")
	second.Client.FirstName = "Janet"

	got, err := svc.Create(context.Background(), second)
	require.NoError(t, err)

	assert.Equal(t, clientID, first.ClientID)
	assert.Equal(t, clientID, got.ClientID)
	assert.Equal(t, "Jane", got.Client.FirstName)
	assert.NotEqual(t, first.ID, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CreateCreditors_KeepsEntryOrder(t *testing.T) {
	s, mock := newMock(t)

	appID := uuid.New()

	mock.ExpectBegin()
	for i, name := range []string{"Store Card", "Bank Loan"} {
		mock.ExpectQuery("INSERT INTO application_creditors").
			WithArgs(appID, name, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), i).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(uuid.NewString(), time.Now()))
	}
	mock.ExpectCommit()

	itx, err := s.BeginCreate(context.Background(), "")
	require.NoError(t, err)

	err = itx.CreateCreditors(context.Background(), appID, []*application.Creditor{{Name: "Store Card"}, {Name: "Bank Loan"}})
	require.NoError(t, err)
	require.NoError(t, itx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_BeginCreate_LockFailure(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").WillReturnError(errors.New("canceling statement"))
	mock.ExpectRollback()

	_, err := s.BeginCreate(context.Background(), nationalID)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "acquiring client lock")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_UpdateStatus(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name     string
		affected int64
		wantErr  error
	}

	tests := []testCase{
		{name: "Updated", affected: 1},
		{name: "NotFound", affected: 0, wantErr: application.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newMock(t)

			mock.ExpectExec("UPDATE applications").
				WithArgs("Approved", id).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := s.UpdateStatus(context.Background(), id, application.StatusApproved)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_DeleteApplication_NotFound(t *testing.T) {
	s, mock := newMock(t)
	id := uuid.New()

	mock.ExpectExec("DELETE FROM applications").WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, s.DeleteApplication(context.Background(), id), application.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func applicationRow(id, clientID uuid.UUID) []driver.Value {
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	return []driver.Value{
		id.String(), clientID.String(), nil, nil, now, "09:30:00",
		"101", "Main",
		true, false, false, false, false, nil,
		"10000.00", "8000.00", nil,
		"1000.00", nil, "500.00", nil, nil, nil,
		"1500.00", "ABC Bank", "123", "Savings", nil,
		nil, nil,
		true, false, false,
		"Draft", now, now,
		"Jane", "Doe", nationalID, "0821234567", nil, nil, nil, "Acme", nil,
		"", "Head Office",
	}
}

func TestStore_GetApplication(t *testing.T) {
	s, mock := newMock(t)

	id := uuid.New()
	clientID := uuid.New()

	mock.ExpectQuery("FROM applications a").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(applicationColumns).AddRow(applicationRow(id, clientID)...))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY position ASC, created_at ASC")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "application_id", "creditor_name", "account_num_ref", "balance_of_acc", "amount", "created_at",
		}).AddRow(uuid.NewString(), id.String(), "Store Card", nil, nil, "200.00", time.Now()))

	got, err := s.GetApplication(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, got.ID)
	assert.Nil(t, got.ConsultantID)
	assert.Equal(t, application.StatusDraft, got.Status)
	assert.Equal(t, "1500.00", got.TotalExpenses.Decimal.StringFixed(2))
	assert.False(t, got.Expenses.RentBond.Valid)
	assert.Equal(t, "Jane Doe", got.Client.FullName())
	assert.Equal(t, clientID, got.Client.ID)
	assert.Equal(t, "Head Office", got.FranchiseName)
	require.Len(t, got.Creditors, 1)
	assert.Equal(t, "Store Card", got.Creditors[0].Name)
	assert.Empty(t, got.Creditors[0].AccountRef)
	assert.Equal(t, "200.00", got.Creditors[0].Amount.Decimal.StringFixed(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetApplication_NotFound(t *testing.T) {
	s, mock := newMock(t)
	id := uuid.New()

	mock.ExpectQuery("FROM applications a").WithArgs(id).WillReturnRows(sqlmock.NewRows(applicationColumns))

	_, err := s.GetApplication(context.Background(), id)

	assert.ErrorIs(t, err, application.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListApplications_Filters(t *testing.T) {
	s, mock := newMock(t)

	franchiseID := uuid.New()
	status := application.StatusDraft

	mock.ExpectQuery(regexp.QuoteMeta("a.status = $1 AND a.franchise_id = $2 ORDER BY a.created_at DESC")).
		WithArgs("Draft", franchiseID).
		WillReturnRows(sqlmock.NewRows(applicationColumns).
			AddRow(applicationRow(uuid.New(), uuid.New())...).
			AddRow(applicationRow(uuid.New(), uuid.New())...))

	got, err := s.ListApplications(context.Background(), application.ListFilter{
		Status:      &status,
		FranchiseID: &franchiseID,
	})

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CountByStatus(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery("GROUP BY status").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("Draft", 4).
			AddRow("Pending Docs", 2))

	got, err := s.CountByStatus(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, got[application.StatusDraft])
	assert.Equal(t, 2, got[application.StatusPendingDocs])
	assert.Zero(t, got[application.StatusApproved])
	assert.NoError(t, mock.ExpectationsWereMet())
}
