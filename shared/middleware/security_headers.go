package middleware

import (
	"net/http"
)

// DashboardCSP allows only same-origin assets plus images served by the API
// storage host.
func DashboardCSP(imageSources ...string) string {
	img := "'self' data:"
	for _, src := range imageSources {
		if src != "" {
			img += " " + src
		}
	}
	return "default-src 'self'; img-src " + img + "; style-src 'self' 'unsafe-inline'; form-action 'self'; frame-ancestors 'none'; base-uri 'self'"
}

// APICSP is for JSON-only responses.
const APICSP = "default-src 'none'; frame-ancestors 'none'"

// SecurityHeaders sets the common hardening headers.
// hsts adds Strict-Transport-Security; an empty csp skips that header.
func SecurityHeaders(hsts bool, csp string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := w.Header()
			headers.Set("X-Frame-Options", "DENY")
			headers.Set("X-Content-Type-Options", "nosniff")
			headers.Set("Referrer-Policy", "same-origin")
			headers.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=()")
			if csp != "" {
				headers.Set("Content-Security-Policy", csp)
			}
			if hsts {
				headers.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NoStore keeps browsers from caching pages that show session data.
func NoStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
