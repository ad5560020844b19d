package auth

import (
	"context"
	"fmt"
)

//go:generate mockgen -source=service.go -destination=authenticator_mock.go -package=auth
type Authenticator interface {
	// Authenticate returns ErrInvalidCredentials for unknown, inactive or
	// mismatched users alike.
	Authenticate(ctx context.Context, username, password string) (*Identity, error)
}

type Service struct {
	users  Authenticator
	tokens *Tokens
}

func NewService(users Authenticator, tokens *Tokens) *Service {
	return &Service{users: users, tokens: tokens}
}

func (s *Service) Login(ctx context.Context, username, password string) (string, *Identity, error) {
	id, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(*id)
	if err != nil {
		return "", nil, fmt.Errorf("issuing token: %w", err)
	}

	return token, id, nil
}

func (s *Service) Verify(ctx context.Context, token string) (*Identity, error) {
	return s.tokens.Verify(ctx, token)
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}
