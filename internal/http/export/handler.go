package export

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/khusela/internal/application"
	"github.com/MrJamesThe3rd/khusela/internal/auth"
	"github.com/MrJamesThe3rd/khusela/internal/export"
	"github.com/MrJamesThe3rd/khusela/internal/http/middleware"
	"github.com/MrJamesThe3rd/khusela/internal/http/respond"
)

type Handler struct {
	svc *export.Service
	now func() time.Time
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

// Routes registers the workbook download. It shares the applications subrouter.
func (h *Handler) Routes(r chi.Router) {
	r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Get("/export.xlsx", h.download)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter, err := application.ParseListFilter(q.Get("status"), q.Get("franchise_id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid filter.")
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(h.now())))

	if err := h.svc.Write(r.Context(), w, filter); err != nil {
		w.Header().Del("Content-Disposition")
		respond.Internal(w, r, "Failed to export applications.", err)
	}
}
