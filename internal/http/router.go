package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrJamesThe3rd/khusela/internal/auth"
	"github.com/MrJamesThe3rd/khusela/internal/http/application"
	authhttp "github.com/MrJamesThe3rd/khusela/internal/http/auth"
	"github.com/MrJamesThe3rd/khusela/internal/http/document"
	"github.com/MrJamesThe3rd/khusela/internal/http/employee"
	"github.com/MrJamesThe3rd/khusela/internal/http/export"
	"github.com/MrJamesThe3rd/khusela/internal/http/franchise"
	"github.com/MrJamesThe3rd/khusela/internal/http/importcsv"
	khmw "github.com/MrJamesThe3rd/khusela/internal/http/middleware"
	"github.com/MrJamesThe3rd/khusela/internal/http/respond"
	"github.com/MrJamesThe3rd/khusela/internal/http/user"
)

func New(
	clientURL string,
	verifier khmw.Verifier,
	authV1 *authhttp.Handler,
	usersV1 *user.Handler,
	franchisesV1 *franchise.Handler,
	employeesV1 *employee.Handler,
	applicationsV1 *application.Handler,
	documentsV1 *document.Handler,
	exportV1 *export.Handler,
	importsV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{clientURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(khmw.Metrics)

	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(khmw.Authenticate(verifier))

			r.Route("/users", func(r chi.Router) {
				r.Use(khmw.RequireRole(auth.RoleAdmin))
				usersV1.Routes(r)
			})

			r.Route("/franchises", franchisesV1.Routes)
			r.Route("/employees", employeesV1.Routes)
			r.Route("/applications", func(r chi.Router) {
				exportV1.Routes(r)
				applicationsV1.Routes(r)
			})
			r.Route("/documents", documentsV1.Routes)
			r.Route("/imports", importsV1.Routes)
		})
	})

	return router
}
