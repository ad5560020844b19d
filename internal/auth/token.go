package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Claims struct {
	Username    string     `json:"username"`
	Role        Role       `json:"role"`
	FranchiseID *uuid.UUID `json:"franchise_id"`
	jwt.RegisteredClaims
}

// Denylist remembers revoked token ids until they would have expired anyway.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	Revoked(ctx context.Context, tokenID string) (bool, error)
}

type Tokens struct {
	secret   []byte
	ttl      time.Duration
	denylist Denylist
	now      func() time.Time
}

// NewTokens signs HS256 tokens. A nil denylist disables revocation.
func NewTokens(secret string, ttl time.Duration, denylist Denylist) *Tokens {
	return &Tokens{
		secret:   []byte(secret),
		ttl:      ttl,
		denylist: denylist,
		now:      time.Now,
	}
}

func (t *Tokens) Issue(id Identity) (string, error) {
	now := t.now()

	claims := Claims{
		Username:    id.Username,
		Role:        id.Role,
		FranchiseID: id.FranchiseID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   id.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

func (t *Tokens) parse(token string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return claims, nil
}

// Verify checks the signature, expiry and revocation of token.
func (t *Tokens) Verify(ctx context.Context, token string) (*Identity, error) {
	claims, err := t.parse(token)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject: %w", ErrInvalidToken, err)
	}

	if !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}

	if t.denylist != nil {
		revoked, err := t.denylist.Revoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("checking revocation: %w", err)
		}

		if revoked {
			return nil, ErrRevoked
		}
	}

	return &Identity{
		UserID:      userID,
		Username:    claims.Username,
		Role:        claims.Role,
		FranchiseID: claims.FranchiseID,
	}, nil
}

// Revoke denies token for the rest of its lifetime.
func (t *Tokens) Revoke(ctx context.Context, token string) error {
	claims, err := t.parse(token)
	if err != nil {
		return err
	}

	if t.denylist == nil {
		return nil
	}

	ttl := claims.ExpiresAt.Sub(t.now())
	if ttl <= 0 {
		return nil
	}

	return t.denylist.Revoke(ctx, claims.ID, ttl)
}

// IsInvalid reports whether err means the caller sent a bad or revoked token.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrRevoked)
}
