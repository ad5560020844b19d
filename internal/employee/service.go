package employee

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=employee
type Repository interface {
	ListEmployees(ctx context.Context) ([]*Employee, error)
	GetEmployee(ctx context.Context, id uuid.UUID) (*Employee, error)
	CreateEmployee(ctx context.Context, e *Employee) error
	UpdateEmployee(ctx context.Context, e *Employee) error
	DeleteEmployee(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns employees ordered by last name.
func (s *Service) List(ctx context.Context) ([]*Employee, error) {
	return s.repo.ListEmployees(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Employee, error) {
	return s.repo.GetEmployee(ctx, id)
}

func (s *Service) Create(ctx context.Context, e *Employee) error {
	if err := validate(e); err != nil {
		return err
	}

	return s.repo.CreateEmployee(ctx, e)
}

// Update replaces the HR record. The linked user and franchise are kept.
func (s *Service) Update(ctx context.Context, e *Employee) error {
	if err := validate(e); err != nil {
		return err
	}

	return s.repo.UpdateEmployee(ctx, e)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteEmployee(ctx, id)
}

func validate(e *Employee) error {
	e.FirstName = strings.TrimSpace(e.FirstName)
	e.LastName = strings.TrimSpace(e.LastName)

	if e.FirstName == "" || e.LastName == "" {
		return ErrNameRequired
	}

	return nil
}
