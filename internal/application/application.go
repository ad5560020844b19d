package application

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("application not found")
	ErrInvalidStatus = errors.New("invalid status value")
)

// ValidationError carries a message that is safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Status is the lifecycle state of an application.
type Status string

const (
	StatusDraft       Status = "Draft"
	StatusSubmitted   Status = "Submitted"
	StatusPendingDocs Status = "Pending Docs"
	StatusApproved    Status = "Approved"
	StatusRejected    Status = "Rejected"
)

// Statuses lists every status in workflow order.
var Statuses = []Status{
	StatusDraft,
	StatusSubmitted,
	StatusPendingDocs,
	StatusApproved,
	StatusRejected,
}

// InitialStatuses are the statuses an application may be created with. Later
// statuses are reached only through a status update.
var InitialStatuses = []Status{
	StatusDraft,
	StatusSubmitted,
	StatusPendingDocs,
}

func (s Status) Initial() bool {
	return slices.Contains(InitialStatuses, s)
}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}

	return false
}

// NotifiesClient reports whether moving into s should tell the client.
func (s Status) NotifiesClient() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusPendingDocs
}

// Next returns the status that follows s, wrapping around after the last one.
func (s Status) Next() Status {
	for i, v := range Statuses {
		if v == s {
			return Statuses[(i+1)%len(Statuses)]
		}
	}

	return StatusDraft
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", ErrInvalidStatus
	}

	return st, nil
}

// Client is a person keyed by national ID when one is known.
type Client struct {
	ID            uuid.UUID
	FirstName     string
	LastName      string
	IDNumber      string
	Cell          string
	WhatsApp      string
	Email         string
	Address       string
	Employer      string
	MaritalStatus string
	CreatedAt     time.Time
}

func (c *Client) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}

	return c.FirstName + " " + c.LastName
}

// Types holds the application type flags.
type Types struct {
	MED        bool
	DebtReview bool
	DRR        bool
	ThreeInOne bool
	RentTo     bool
	Other      string
}

func (t Types) Any() bool {
	return t.MED || t.DebtReview || t.DRR || t.ThreeInOne || t.RentTo || strings.TrimSpace(t.Other) != ""
}

// Expenses are the six monthly expense categories.
type Expenses struct {
	Groceries  decimal.NullDecimal
	RentBond   decimal.NullDecimal
	Transport  decimal.NullDecimal
	SchoolFees decimal.NullDecimal
	Rates      decimal.NullDecimal
	WaterElec  decimal.NullDecimal
}

func (e Expenses) all() []decimal.NullDecimal {
	return []decimal.NullDecimal{e.Groceries, e.RentBond, e.Transport, e.SchoolFees, e.Rates, e.WaterElec}
}

// Total sums the expense fields; absent fields contribute zero.
func (e Expenses) Total() decimal.Decimal {
	total := decimal.Zero

	for _, v := range e.all() {
		if v.Valid {
			total = total.Add(v.Decimal)
		}
	}

	return total.Round(2)
}

// Checklist records which supporting documents were received.
type Checklist struct {
	IDCopy         bool
	Payslip        bool
	ProofOfAddress bool
}

type Application struct {
	ID           uuid.UUID
	ClientID     uuid.UUID
	ConsultantID *uuid.UUID
	FranchiseID  *uuid.UUID

	Date       time.Time
	TimeOfCall string
	ExtNumber  string
	Branch     string
	Types      Types

	GrossSalary   decimal.NullDecimal
	NettSalary    decimal.NullDecimal
	SpouseSalary  decimal.NullDecimal
	Expenses      Expenses
	TotalExpenses decimal.NullDecimal

	Bank             string
	AccountNo        string
	AccountType      string
	DebtReviewStatus string
	DebitOrderDate   string
	DebitOrderAmount decimal.NullDecimal

	Documents Checklist
	Status    Status

	CreatedAt time.Time
	UpdatedAt time.Time

	// Loaded via JOIN on reads.
	Client         *Client
	ConsultantName string
	FranchiseName  string
	Creditors      []*Creditor
}

// Creditor is one debt line attached to an application.
type Creditor struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID
	Name          string
	AccountRef    string
	Balance       decimal.NullDecimal
	Amount        decimal.NullDecimal
	CreatedAt     time.Time
}

// StatusCount is the number of applications in one status.
type StatusCount struct {
	Status Status
	Count  int
}
