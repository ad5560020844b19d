package franchise

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/khusela/internal/auth"
	"github.com/MrJamesThe3rd/khusela/internal/franchise"
	"github.com/MrJamesThe3rd/khusela/internal/http/middleware"
	"github.com/MrJamesThe3rd/khusela/internal/http/respond"
)

type Handler struct {
	svc *franchise.Service
}

func NewHandler(svc *franchise.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin))
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

type response struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"franchise_name"`
	Location         string    `json:"location"`
	UserCount        int       `json:"user_count"`
	ApplicationCount int       `json:"application_count"`
	CreatedAt        time.Time `json:"created_at"`
}

func toResponse(f *franchise.Franchise) response {
	return response{
		ID:               f.ID,
		Name:             f.Name,
		Location:         f.Location,
		UserCount:        f.UserCount,
		ApplicationCount: f.ApplicationCount,
		CreatedAt:        f.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	franchises, err := h.svc.List(r.Context())
	if err != nil {
		respond.Internal(w, r, "Failed to fetch franchises.", err)
		return
	}

	out := make([]response, 0, len(franchises))
	for _, f := range franchises {
		out = append(out, toResponse(f))
	}

	respond.JSON(w, http.StatusOK, out)
}

type request struct {
	Name     string `json:"franchise_name"`
	Location string `json:"location"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req request
	if !respond.Decode(w, r, &req) {
		return
	}

	f, err := h.svc.Create(r.Context(), franchise.Params{Name: req.Name, Location: req.Location})
	if err != nil {
		if errors.Is(err, franchise.ErrNameRequired) {
			respond.Error(w, http.StatusBadRequest, "Franchise name is required.")
			return
		}

		respond.Internal(w, r, "Failed to create franchise.", err)

		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(f))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid id.")
		return
	}

	var req request
	if !respond.Decode(w, r, &req) {
		return
	}

	f, err := h.svc.Update(r.Context(), id, franchise.Params{Name: req.Name, Location: req.Location})
	if err != nil {
		switch {
		case errors.Is(err, franchise.ErrNameRequired):
			respond.Error(w, http.StatusBadRequest, "Franchise name is required.")
		case errors.Is(err, franchise.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "Franchise not found.")
		default:
			respond.Internal(w, r, "Failed to update franchise.", err)
		}

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(f))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid id.")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, franchise.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Franchise not found.")
			return
		}

		respond.Internal(w, r, "Failed to delete franchise.", err)

		return
	}

	respond.Message(w, "Franchise deleted.")
}
