package franchise

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=franchise
type Repository interface {
	ListFranchises(ctx context.Context) ([]*Franchise, error)
	CreateFranchise(ctx context.Context, f *Franchise) error
	UpdateFranchise(ctx context.Context, f *Franchise) error
	DeleteFranchise(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Params struct {
	Name     string
	Location string
}

func (s *Service) List(ctx context.Context) ([]*Franchise, error) {
	return s.repo.ListFranchises(ctx)
}

func (s *Service) Create(ctx context.Context, params Params) (*Franchise, error) {
	f, err := fromParams(params)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateFranchise(ctx, f); err != nil {
		return nil, err
	}

	return f, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params Params) (*Franchise, error) {
	f, err := fromParams(params)
	if err != nil {
		return nil, err
	}

	f.ID = id

	if err := s.repo.UpdateFranchise(ctx, f); err != nil {
		return nil, err
	}

	return f, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteFranchise(ctx, id)
}

func fromParams(p Params) (*Franchise, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	return &Franchise{Name: name, Location: strings.TrimSpace(p.Location)}, nil
}
