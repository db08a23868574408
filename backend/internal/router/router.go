package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/localizer/dashboard/backend/internal/setup"
	sharedmw "github.com/localizer/dashboard/shared/middleware"
	"github.com/localizer/dashboard/shared/middleware/metrics"
	"github.com/localizer/dashboard/shared/validation"
)

const formOverhead = 1 << 20

// New builds the devapi routes. Everything the dashboard calls lives
// under /api; uploaded files are served under /storage.
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()
	h := deps.Handler
	api := deps.Config.Public.DevAPI

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware("devapi"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: api.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/storage/*", http.StripPrefix("/storage/", deps.Media.Handler()))

	r.Route("/api", func(r chi.Router) {
		r.Use(sharedmw.SecurityHeaders(false, sharedmw.APICSP))
		r.Use(middleware.RequestSize(validation.CalculateMaxRequestSize(api.MaxUploadSize, formOverhead)))

		r.With(httprate.LimitByIP(api.LoginRateLimit, time.Minute)).Post("/login", h.Login)
		// The public website posts contact messages without a token.
		r.Post("/contacts", h.CreateContact)

		r.Group(func(r chi.Router) {
			r.Use(deps.AuthMiddleware.NeedAuth())

			r.Post("/logout", h.Logout)
			r.Get("/user", h.Me)

			r.Route("/cards", func(r chi.Router) {
				r.Get("/", h.ListCards)
				r.Post("/", h.CreateCard)
				r.Get("/{id}", h.GetCard)
				r.Put("/{id}", h.UpdateCard)
				r.Delete("/{id}", h.DeleteCard)
			})

			r.Route("/legislations", func(r chi.Router) {
				r.Get("/", h.ListReviews)
				r.Post("/", h.CreateReview)
				r.Get("/{id}", h.GetReview)
				r.Put("/{id}", h.UpdateReview)
				r.Delete("/{id}", h.DeleteReview)
			})

			r.Get("/contacts", h.ListContacts)
			r.Get("/contacts/{id}", h.GetContact)
			r.Delete("/contacts/{id}", h.DeleteContact)
		})
	})

	return r
}
