package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/localizer/dashboard/frontend/internal/handler"
	mw "github.com/localizer/dashboard/frontend/internal/middleware"
	"github.com/localizer/dashboard/frontend/internal/setup"
	sharedmw "github.com/localizer/dashboard/shared/middleware"
	"github.com/localizer/dashboard/shared/middleware/metrics"
	"github.com/localizer/dashboard/shared/validation"
)

const multipartBuffer = 1 << 20

func SetupRouter(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()
	h := deps.Handler
	dash := deps.Config.Public.Dashboard

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware("dashboard"))
	r.Use(sharedmw.SecurityHeaders(dash.SecureCookies, sharedmw.DashboardCSP(deps.StorageOrigin)))

	r.Get("/health", handler.HealthHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(sharedmw.NoStore)
		r.Use(deps.Sessions.Middleware)
		r.Use(deps.Fallback.Middleware)
		r.Use(mw.CSRF(mw.CSRFConfig{
			SecureCookies: dash.SecureCookies,
			MaxMemory:     validation.CalculateMaxRequestSize(dash.MaxImageSize, multipartBuffer),
		}))

		r.Get("/403", h.ForbiddenHandler)
		r.Get("/error500", h.ServerErrorHandler)
		r.NotFound(h.NotFoundHandler)

		// Login is only for visitors without a session.
		r.Group(func(r chi.Router) {
			r.Use(mw.RedirectIfAuthenticated)
			r.Get("/login", h.LoginGetHandler)
			r.With(httprate.LimitByIP(dash.LoginRateLimit, time.Minute)).Post("/login", h.LoginPostHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireSession)

			r.Get("/", h.IndexHandler)
			r.Get("/logout", h.LogoutGetHandler)
			r.Post("/logout", h.LogoutPostHandler)
			r.Get("/dashboard", h.DashboardGetHandler)

			r.Get("/cards", h.CardsGetHandler)
			r.Post("/cards", h.CardsPostHandler)
			r.Post("/cards/{id}", h.CardUpdateHandler)
			r.Get("/cards/{id}/delete", h.CardDeleteGetHandler)
			r.Post("/cards/{id}/delete", h.CardDeletePostHandler)

			r.Get("/reviews", h.ReviewsGetHandler)
			r.Post("/reviews", h.ReviewsPostHandler)
			r.Post("/reviews/{id}", h.ReviewUpdateHandler)
			r.Get("/reviews/{id}/delete", h.ReviewDeleteGetHandler)
			r.Post("/reviews/{id}/delete", h.ReviewDeletePostHandler)

			r.Get("/contacts", h.ContactsGetHandler)
		})
	})

	return r
}
