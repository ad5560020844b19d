package employee

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/khusela/internal/auth"
	"github.com/MrJamesThe3rd/khusela/internal/employee"
	"github.com/MrJamesThe3rd/khusela/internal/http/middleware"
	"github.com/MrJamesThe3rd/khusela/internal/http/respond"
)

type Handler struct {
	svc *employee.Service
}

func NewHandler(svc *employee.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR))

	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/{id}", h.delete)
}

// record is the wire shape of an employee; names follow the table columns.
type record struct {
	ID            uuid.UUID  `json:"id"`
	UserID        *uuid.UUID `json:"user_id"`
	FranchiseID   *uuid.UUID `json:"franchise_id"`
	FranchiseName string     `json:"franchise_name,omitempty"`

	Title         string `json:"title"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	IDNumber      string `json:"id_number"`
	TaxNumber     string `json:"tax_number"`
	BirthDate     string `json:"birth_date"`
	MaritalStatus string `json:"marital_status"`
	Email         string `json:"email"`
	HomePhone     string `json:"home_phone"`
	AltPhone      string `json:"alternate_phone"`

	AddressStreet string `json:"address_street"`
	AddressCity   string `json:"address_city"`
	PostalCode    string `json:"postal_code"`

	AllergiesHealthConcerns string `json:"allergies_health_concerns"`

	ECTitle        string `json:"ec_title"`
	ECFirstName    string `json:"ec_first_name"`
	ECLastName     string `json:"ec_last_name"`
	ECAddress      string `json:"ec_address"`
	ECPrimaryPhone string `json:"ec_primary_phone"`
	ECAltPhone     string `json:"ec_alternate_phone"`
	ECRelationship string `json:"ec_relationship"`

	BankName      string `json:"bank_name"`
	BranchName    string `json:"branch_name"`
	BranchCode    string `json:"branch_code"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`

	CreatedAt time.Time `json:"created_at"`
}

func toRecord(e *employee.Employee) record {
	rec := record{
		ID:                      e.ID,
		UserID:                  e.UserID,
		FranchiseID:             e.FranchiseID,
		FranchiseName:           e.FranchiseName,
		Title:                   e.Title,
		FirstName:               e.FirstName,
		LastName:                e.LastName,
		IDNumber:                e.IDNumber,
		TaxNumber:               e.TaxNumber,
		MaritalStatus:           e.MaritalStatus,
		Email:                   e.Email,
		HomePhone:               e.HomePhone,
		AltPhone:                e.AltPhone,
		AddressStreet:           e.AddressStreet,
		AddressCity:             e.AddressCity,
		PostalCode:              e.PostalCode,
		AllergiesHealthConcerns: e.AllergiesHealthConcerns,
		ECTitle:                 e.Emergency.Title,
		ECFirstName:             e.Emergency.FirstName,
		ECLastName:              e.Emergency.LastName,
		ECAddress:               e.Emergency.Address,
		ECPrimaryPhone:          e.Emergency.PrimaryPhone,
		ECAltPhone:              e.Emergency.AltPhone,
		ECRelationship:          e.Emergency.Relationship,
		BankName:                e.Banking.BankName,
		BranchName:              e.Banking.BranchName,
		BranchCode:              e.Banking.BranchCode,
		AccountName:             e.Banking.AccountName,
		AccountNumber:           e.Banking.AccountNumber,
		CreatedAt:               e.CreatedAt,
	}

	if e.BirthDate != nil {
		rec.BirthDate = e.BirthDate.Format(time.DateOnly)
	}

	return rec
}

func (rec record) toEmployee() (*employee.Employee, error) {
	e := &employee.Employee{
		UserID:                  rec.UserID,
		FranchiseID:             rec.FranchiseID,
		Title:                   rec.Title,
		FirstName:               rec.FirstName,
		LastName:                rec.LastName,
		IDNumber:                rec.IDNumber,
		TaxNumber:               rec.TaxNumber,
		MaritalStatus:           rec.MaritalStatus,
		Email:                   rec.Email,
		HomePhone:               rec.HomePhone,
		AltPhone:                rec.AltPhone,
		AddressStreet:           rec.AddressStreet,
		AddressCity:             rec.AddressCity,
		PostalCode:              rec.PostalCode,
		AllergiesHealthConcerns: rec.AllergiesHealthConcerns,
		Emergency: employee.EmergencyContact{
			Title:        rec.ECTitle,
			FirstName:    rec.ECFirstName,
			LastName:     rec.ECLastName,
			Address:      rec.ECAddress,
			PrimaryPhone: rec.ECPrimaryPhone,
			AltPhone:     rec.ECAltPhone,
			Relationship: rec.ECRelationship,
		},
		Banking: employee.Banking{
			BankName:      rec.BankName,
			BranchName:    rec.BranchName,
			BranchCode:    rec.BranchCode,
			AccountName:   rec.AccountName,
			AccountNumber: rec.AccountNumber,
		},
	}

	if rec.BirthDate != "" {
		t, err := time.Parse(time.DateOnly, rec.BirthDate)
		if err != nil {
			return nil, err
		}

		e.BirthDate = &t
	}

	return e, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	employees, err := h.svc.List(r.Context())
	if err != nil {
		respond.Internal(w, r, "Failed to fetch employees.", err)
		return
	}

	out := make([]record, 0, len(employees))
	for _, e := range employees {
		out = append(out, toRecord(e))
	}

	respond.JSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid id.")
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Employee not found.")
			return
		}

		respond.Internal(w, r, "Failed to fetch employee.", err)

		return
	}

	respond.JSON(w, http.StatusOK, toRecord(e))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (*employee.Employee, bool) {
	var rec record
	if !respond.Decode(w, r, &rec) {
		return nil, false
	}

	e, err := rec.toEmployee()
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "birth_date must be YYYY-MM-DD.")
		return nil, false
	}

	return e, true
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	e, ok := h.decode(w, r)
	if !ok {
		return
	}

	if err := h.svc.Create(r.Context(), e); err != nil {
		if errors.Is(err, employee.ErrNameRequired) {
			respond.Error(w, http.StatusBadRequest, "First name and last name are required.")
			return
		}

		respond.Internal(w, r, "Failed to create employee.", err)

		return
	}

	respond.JSON(w, http.StatusCreated, toRecord(e))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid id.")
		return
	}

	e, ok := h.decode(w, r)
	if !ok {
		return
	}

	e.ID = id

	if err := h.svc.Update(r.Context(), e); err != nil {
		switch {
		case errors.Is(err, employee.ErrNameRequired):
			respond.Error(w, http.StatusBadRequest, "First name and last name are required.")
		case errors.Is(err, employee.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "Employee not found.")
		default:
			respond.Internal(w, r, "Failed to update employee.", err)
		}

		return
	}

	respond.JSON(w, http.StatusOK, toRecord(e))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid id.")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Employee not found.")
			return
		}

		respond.Internal(w, r, "Failed to delete employee.", err)

		return
	}

	respond.Message(w, "Employee deleted successfully.")
}
