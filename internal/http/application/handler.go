package application

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/khusela/internal/application"
	"github.com/MrJamesThe3rd/khusela/internal/auth"
	"github.com/MrJamesThe3rd/khusela/internal/http/middleware"
	"github.com/MrJamesThe3rd/khusela/internal/http/respond"
)

type Handler struct {
	svc *application.Service
}

func NewHandler(svc *application.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/summary", h.summary)
	r.Get("/{id}", h.get)

	r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR, auth.RoleConsultant)).Post("/", h.create)

	r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Patch("/{id}/status", h.updateStatus)

	r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/{id}", h.delete)
}

func parseFilter(r *http.Request) (application.ListFilter, error) {
	q := r.URL.Query()
	return application.ParseListFilter(q.Get("status"), q.Get("franchise_id"))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid filter.")
		return
	}

	apps, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Internal(w, r, "Failed to fetch applications.", err)
		return
	}

	out := make([]applicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, toApplicationResponse(a))
	}

	respond.JSON(w, http.StatusOK, out)
}

type statusCount struct {
	Status application.Status `json:"status"`
	Count  int                `json:"count"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.Summary(r.Context())
	if err != nil {
		respond.Internal(w, r, "Failed to fetch summary.", err)
		return
	}

	out := make([]statusCount, len(counts))
	for i, c := range counts {
		out[i] = statusCount{Status: c.Status, Count: c.Count}
	}

	respond.JSON(w, http.StatusOK, out)
}

type detailResponse struct {
	Application applicationResponse `json:"application"`
	Creditors   []creditorJSON      `json:"creditors"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid id.")
		return
	}

	app, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Application not found.")
			return
		}

		respond.Internal(w, r, "Failed to fetch application.", err)

		return
	}

	creditors := make([]creditorJSON, 0, len(app.Creditors))
	for _, c := range app.Creditors {
		creditors = append(creditors, toCreditorJSON(c))
	}

	respond.JSON(w, http.StatusOK, detailResponse{Application: toApplicationResponse(app), Creditors: creditors})
}

type createResponse struct {
	Message       string    `json:"message"`
	ApplicationID uuid.UUID `json:"application_id"`
	ClientID      uuid.UUID `json:"client_id"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	params := req.params()

	if params.Application.FranchiseID == nil {
		if id, ok := auth.FromContext(r.Context()); ok {
			params.Application.FranchiseID = id.FranchiseID
		}
	}

	app, err := h.svc.Create(r.Context(), params)
	if err != nil {
		var vErr *application.ValidationError
		if errors.As(err, &vErr) {
			respond.Error(w, http.StatusBadRequest, vErr.Message)
			return
		}

		respond.Internal(w, r, "Failed to create application.", err)

		return
	}

	respond.JSON(w, http.StatusCreated, createResponse{
		Message:       "Application created successfully.",
		ApplicationID: app.ID,
		ClientID:      app.ClientID,
	})
}

type statusRequest struct {
	Status string `json:"status"`
}

type statusResponse struct {
	ID     uuid.UUID          `json:"id"`
	Status application.Status `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid id.")
		return
	}

	var req statusRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	status := application.Status(req.Status)

	if err := h.svc.UpdateStatus(r.Context(), id, status); err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidStatus):
			respond.Error(w, http.StatusBadRequest, "Invalid status value.")
		case errors.Is(err, application.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "Application not found.")
		default:
			respond.Internal(w, r, "Failed to update status.", err)
		}

		return
	}

	respond.JSON(w, http.StatusOK, statusResponse{ID: id, Status: status})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid id.")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, application.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Application not found.")
			return
		}

		respond.Internal(w, r, "Failed to delete application.", err)

		return
	}

	respond.Message(w, "Application deleted.")
}
