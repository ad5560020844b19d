package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/khusela/internal/metrics"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=application
type Repository interface {
	GetApplication(ctx context.Context, id uuid.UUID) (*Application, error)
	ListApplications(ctx context.Context, filter ListFilter) ([]*Application, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	DeleteApplication(ctx context.Context, id uuid.UUID) error

	// BeginCreate opens the transaction that creates one application.
	// A non-empty national ID serialises concurrent creates for that ID.
	BeginCreate(ctx context.Context, nationalID string) (CreateTx, error)
}

type CreateTx interface {
	FindClientByNationalID(ctx context.Context, nationalID string) (*Client, error)
	CreateClient(ctx context.Context, c *Client) error
	CreateApplication(ctx context.Context, app *Application) error
	CreateCreditors(ctx context.Context, applicationID uuid.UUID, creditors []*Creditor) error
	Commit() error
	Rollback() error
}

// Notifier is told about status changes that concern the client.
type Notifier interface {
	StatusChanged(ctx context.Context, app *Application) error
}

type Service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

type CreateParams struct {
	Client      Client
	Application Application
	Creditors   []Creditor
}

type ListFilter struct {
	Status      *Status
	FranchiseID *uuid.UUID
}

// ParseListFilter builds a filter from optional query values. Empty values
// leave that filter unset.
func ParseListFilter(status, franchiseID string) (ListFilter, error) {
	var filter ListFilter

	if status != "" {
		st, err := ParseStatus(status)
		if err != nil {
			return filter, err
		}

		filter.Status = &st
	}

	if franchiseID != "" {
		id, err := uuid.Parse(franchiseID)
		if err != nil {
			return filter, fmt.Errorf("invalid franchise_id: %w", err)
		}

		filter.FranchiseID = &id
	}

	return filter, nil
}

// Create persists the client, the application and its creditors atomically.
// An existing client with the same national ID is reused.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Application, error) {
	if err := prepare(&params); err != nil {
		return nil, err
	}

	app, err := s.create(ctx, params)
	if err != nil {
		metrics.ApplicationCreateFailures.Inc()
		return nil, err
	}

	metrics.ApplicationsCreated.Inc()

	return app, nil
}

func (s *Service) create(ctx context.Context, params CreateParams) (*Application, error) {
	client := params.Client

	itx, err := s.repo.BeginCreate(ctx, client.IDNumber)
	if err != nil {
		return nil, fmt.Errorf("begin create: %w", err)
	}
	defer itx.Rollback()

	if client.IDNumber != "" {
		found, err := itx.FindClientByNationalID(ctx, client.IDNumber)

		switch {
		case err == nil:
			client = *found
		case errors.Is(err, ErrNotFound):
		default:
			return nil, fmt.Errorf("find client: %w", err)
		}
	}

	if client.ID == uuid.Nil {
		if err := itx.CreateClient(ctx, &client); err != nil {
			return nil, fmt.Errorf("create client: %w", err)
		}
	}

	app := params.Application
	app.ClientID = client.ID

	if err := itx.CreateApplication(ctx, &app); err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}

	creditors := make([]*Creditor, len(params.Creditors))
	for i := range params.Creditors {
		c := params.Creditors[i]
		c.ApplicationID = app.ID
		creditors[i] = &c
	}

	if len(creditors) > 0 {
		if err := itx.CreateCreditors(ctx, app.ID, creditors); err != nil {
			return nil, fmt.Errorf("create creditors: %w", err)
		}
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create: %w", err)
	}

	app.Client = &client
	app.Creditors = creditors

	return &app, nil
}

// prepare normalises params and rejects anything the caller can fix.
func prepare(p *CreateParams) error {
	p.Client.FirstName = strings.TrimSpace(p.Client.FirstName)
	p.Client.LastName = strings.TrimSpace(p.Client.LastName)
	p.Client.IDNumber = strings.TrimSpace(p.Client.IDNumber)

	if p.Client.FirstName == "" || p.Client.LastName == "" {
		return &ValidationError{Message: "Client first and last name are required."}
	}

	app := &p.Application

	if app.Status == "" {
		app.Status = StatusDraft
	}

	if !app.Status.Valid() {
		return &ValidationError{Message: "Invalid status value."}
	}

	if !app.Status.Initial() {
		return &ValidationError{Message: fmt.Sprintf("New applications cannot start as %s.", app.Status)}
	}

	money := map[string]decimal.NullDecimal{
		"gross_salary":       app.GrossSalary,
		"nett_salary":        app.NettSalary,
		"spouse_salary":      app.SpouseSalary,
		"exp_groceries":      app.Expenses.Groceries,
		"exp_rent_bond":      app.Expenses.RentBond,
		"exp_transport":      app.Expenses.Transport,
		"exp_school_fees":    app.Expenses.SchoolFees,
		"exp_rates":          app.Expenses.Rates,
		"exp_water_elec":     app.Expenses.WaterElec,
		"debit_order_amount": app.DebitOrderAmount,
	}

	for _, field := range slices.Sorted(maps.Keys(money)) {
		if v := money[field]; v.Valid && v.Decimal.IsNegative() {
			return &ValidationError{Message: fmt.Sprintf("%s must not be negative.", field)}
		}
	}

	for i, c := range p.Creditors {
		if (c.Balance.Valid && c.Balance.Decimal.IsNegative()) || (c.Amount.Valid && c.Amount.Decimal.IsNegative()) {
			return &ValidationError{Message: fmt.Sprintf("Creditor %d amounts must not be negative.", i+1)}
		}
	}

	total := app.Expenses.Total()

	switch {
	case !app.TotalExpenses.Valid:
		app.TotalExpenses = decimal.NewNullDecimal(total)
	case !app.TotalExpenses.Decimal.Round(2).Equal(total):
		return &ValidationError{Message: "Total expenses must equal the sum of the expense fields."}
	}

	return nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Application, error) {
	return s.repo.ListApplications(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Application, error) {
	return s.repo.GetApplication(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteApplication(ctx, id)
}

// Summary returns the number of applications in every status, in workflow order.
func (s *Service) Summary(ctx context.Context) ([]StatusCount, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	summary := make([]StatusCount, len(Statuses))
	for i, st := range Statuses {
		summary[i] = StatusCount{Status: st, Count: counts[st]}
	}

	return summary, nil
}

// UpdateStatus overwrites the status. Any status may follow any other.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	metrics.StatusChanges.WithLabelValues(string(status)).Inc()

	if status.NotifiesClient() && s.notifier != nil {
		s.notify(ctx, id)
	}

	return nil
}

func (s *Service) notify(ctx context.Context, id uuid.UUID) {
	app, err := s.repo.GetApplication(ctx, id)
	if err != nil {
		slog.Error("failed to load application for notification", "application_id", id, "error", err)
		return
	}

	if err := s.notifier.StatusChanged(ctx, app); err != nil {
		slog.Warn("failed to notify client", "application_id", id, "status", app.Status, "error", err)
	}
}
