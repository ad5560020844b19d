package employee

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("employee not found")
	ErrNameRequired = errors.New("first name and last name are required")
)

// EmergencyContact is the person to call about an employee.
type EmergencyContact struct {
	Title        string
	FirstName    string
	LastName     string
	Address      string
	PrimaryPhone string
	AltPhone     string
	Relationship string
}

// Banking holds the salary account.
type Banking struct {
	BankName      string
	BranchName    string
	BranchCode    string
	AccountName   string
	AccountNumber string
}

type Employee struct {
	ID            uuid.UUID
	UserID        *uuid.UUID
	FranchiseID   *uuid.UUID
	FranchiseName string

	Title         string
	FirstName     string
	LastName      string
	IDNumber      string
	TaxNumber     string
	BirthDate     *time.Time
	MaritalStatus string
	Email         string
	HomePhone     string
	AltPhone      string

	AddressStreet string
	AddressCity   string
	PostalCode    string

	AllergiesHealthConcerns string

	Emergency EmergencyContact
	Banking   Banking

	CreatedAt time.Time
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
