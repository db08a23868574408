package middleware

import (
	"net/http"

	"github.com/localizer/dashboard/frontend/internal/session"
)

const (
	LoginPage     = "/login"
	DashboardPage = "/dashboard"
)

// RequireSession sends visitors without a session to the login page.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !session.FromContext(r.Context()).Valid() {
			http.Redirect(w, r, LoginPage, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RedirectIfAuthenticated keeps signed-in users off the login page.
func RedirectIfAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session.FromContext(r.Context()).Valid() {
			http.Redirect(w, r, DashboardPage, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
