package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecurityHeaders(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	t.Run("with csp and hsts", func(t *testing.T) {
		rr := httptest.NewRecorder()
		SecurityHeaders(true, APICSP)(ok).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
		assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, APICSP, rr.Header().Get("Content-Security-Policy"))
		assert.NotEmpty(t, rr.Header().Get("Strict-Transport-Security"))
	})

	t.Run("plain http without csp", func(t *testing.T) {
		rr := httptest.NewRecorder()
		SecurityHeaders(false, "")(ok).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Empty(t, rr.Header().Get("Content-Security-Policy"))
		assert.Empty(t, rr.Header().Get("Strict-Transport-Security"))
	})
}

func TestDashboardCSP(t *testing.T) {
	csp := DashboardCSP("http://localhost:8000", "")
	assert.Contains(t, csp, "img-src 'self' data: http://localhost:8000;")
	assert.Contains(t, csp, "frame-ancestors 'none'")
}

func TestNoStore(t *testing.T) {
	rr := httptest.NewRecorder()
	NoStore(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
}
