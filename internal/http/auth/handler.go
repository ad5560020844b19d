package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/khusela/internal/auth"
	"github.com/MrJamesThe3rd/khusela/internal/http/middleware"
	"github.com/MrJamesThe3rd/khusela/internal/http/respond"
)

type Handler struct {
	svc *auth.Service
}

func NewHandler(svc *auth.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/login", h.login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(h.svc))
		r.Get("/verify", h.verify)
		r.Post("/logout", h.logout)
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string         `json:"token"`
	User  *auth.Identity `json:"user"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "Username and password are required.")
		return
	}

	token, id, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respond.Error(w, http.StatusUnauthorized, "Invalid username or password.")
			return
		}

		respond.Internal(w, r, "Server error during login.", err)

		return
	}

	respond.JSON(w, http.StatusOK, loginResponse{Token: token, User: id})
}

type verifyResponse struct {
	Valid bool           `json:"valid"`
	User  *auth.Identity `json:"user"`
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())
	respond.JSON(w, http.StatusOK, verifyResponse{Valid: true, User: id})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context(), middleware.BearerToken(r)); err != nil {
		respond.Internal(w, r, "Failed to log out.", err)
		return
	}

	respond.Message(w, "Logged out.")
}
