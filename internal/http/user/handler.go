package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/khusela/internal/auth"
	"github.com/MrJamesThe3rd/khusela/internal/http/respond"
	"github.com/MrJamesThe3rd/khusela/internal/user"
)

type Handler struct {
	svc *user.Service
}

func NewHandler(svc *user.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Patch("/{id}/toggle", h.toggle)
	r.Patch("/{id}/password", h.resetPassword)
	r.Delete("/{id}", h.delete)
}

type response struct {
	ID            uuid.UUID  `json:"id"`
	Username      string     `json:"username"`
	Role          auth.Role  `json:"role"`
	IsActive      bool       `json:"is_active"`
	FranchiseID   *uuid.UUID `json:"franchise_id"`
	FranchiseName string     `json:"franchise_name,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toResponse(u *user.User) response {
	return response{
		ID:            u.ID,
		Username:      u.Username,
		Role:          u.Role,
		IsActive:      u.IsActive,
		FranchiseID:   u.FranchiseID,
		FranchiseName: u.FranchiseName,
		CreatedAt:     u.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		respond.Internal(w, r, "Failed to fetch users.", err)
		return
	}

	out := make([]response, 0, len(users))
	for _, u := range users {
		out = append(out, toResponse(u))
	}

	respond.JSON(w, http.StatusOK, out)
}

type createRequest struct {
	Username    string     `json:"username"`
	Password    string     `json:"password"`
	Role        auth.Role  `json:"role"`
	FranchiseID *uuid.UUID `json:"franchise_id"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	u, err := h.svc.Create(r.Context(), user.CreateParams{
		Username:    req.Username,
		Password:    req.Password,
		Role:        req.Role,
		FranchiseID: req.FranchiseID,
	})
	if err != nil {
		var vErr *user.ValidationError

		switch {
		case errors.As(err, &vErr):
			respond.Error(w, http.StatusBadRequest, vErr.Message)
		case errors.Is(err, user.ErrUsernameTaken):
			respond.Error(w, http.StatusBadRequest, "Username already exists.")
		default:
			respond.Internal(w, r, "Failed to create user.", err)
		}

		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(u))
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid id.")
		return
	}

	u, err := h.svc.ToggleActive(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "User not found.")
			return
		}

		respond.Internal(w, r, "Failed to update user.", err)

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(u))
}

type passwordRequest struct {
	Password string `json:"password"`
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid id.")
		return
	}

	var req passwordRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if err := h.svc.ResetPassword(r.Context(), id, req.Password); err != nil {
		var vErr *user.ValidationError

		switch {
		case errors.As(err, &vErr):
			respond.Error(w, http.StatusBadRequest, vErr.Message)
		case errors.Is(err, user.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "User not found.")
		default:
			respond.Internal(w, r, "Failed to reset password.", err)
		}

		return
	}

	respond.Message(w, "Password updated successfully.")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid id.")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "User not found.")
			return
		}

		respond.Internal(w, r, "Failed to delete user.", err)

		return
	}

	respond.Message(w, "User deleted.")
}
