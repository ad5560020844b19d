package franchise

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("franchise not found")
	ErrNameRequired = errors.New("franchise name is required")
)

// Franchise is a tenant grouping users and applications.
type Franchise struct {
	ID               uuid.UUID
	Name             string
	Location         string
	UserCount        int
	ApplicationCount int
	CreatedAt        time.Time
}
