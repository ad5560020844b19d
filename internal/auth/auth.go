package auth

import (
	"context"
	"errors"
	"slices"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrRevoked            = errors.New("token revoked")
)

// Role gates what a user may do.
type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleHR         Role = "HR"
	RoleConsultant Role = "Consultant"
)

var Roles = []Role{RoleAdmin, RoleHR, RoleConsultant}

func (r Role) Valid() bool {
	return slices.Contains(Roles, r)
}

// Identity is the acting user behind a request.
type Identity struct {
	UserID      uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Role        Role       `json:"role"`
	FranchiseID *uuid.UUID `json:"franchise_id"`
}

// Can reports whether the identity holds one of roles.
func (i *Identity) Can(roles ...Role) bool {
	return i != nil && slices.Contains(roles, i.Role)
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(*Identity)
	return id, ok && id != nil
}
