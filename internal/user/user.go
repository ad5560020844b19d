package user

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/khusela/internal/auth"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
)

// ValidationError carries a message that is safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// MinPasswordLength is the shortest password accepted on create and reset.
const MinPasswordLength = 6

type User struct {
	ID            uuid.UUID
	FranchiseID   *uuid.UUID
	FranchiseName string
	Username      string
	PasswordHash  string
	Role          auth.Role
	IsActive      bool
	CreatedAt     time.Time
}

func (u *User) Identity() *auth.Identity {
	return &auth.Identity{
		UserID:      u.ID,
		Username:    u.Username,
		Role:        u.Role,
		FranchiseID: u.FranchiseID,
	}
}
