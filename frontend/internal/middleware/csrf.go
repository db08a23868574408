package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/localizer/dashboard/shared/csrf"
	"github.com/localizer/dashboard/shared/logger"
)

const (
	csrfCookieName = "csrf_token"
	CSRFFormField  = "csrf_token"
	csrfHeader     = "X-CSRF-Token"
)

type csrfContextKey struct{}

type CSRFConfig struct {
	SecureCookies bool
	// MaxMemory bounds multipart parsing of protected forms.
	MaxMemory int64
}

// CSRF issues a per-browser token cookie and requires it back, as a form
// field or header, on every state changing request.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	if cfg.MaxMemory <= 0 {
		cfg.MaxMemory = 32 << 20
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if cookie, err := r.Cookie(csrfCookieName); err == nil && cookie.Value != "" {
				token = cookie.Value
			}

			if isUnsafeMethod(r.Method) {
				if token == "" {
					logger.Log.Warn("csrf cookie missing", "path", r.URL.Path)
					http.Error(w, "CSRF token missing", http.StatusForbidden)
					return
				}
				r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxMemory)
				submitted, err := submittedToken(r, cfg.MaxMemory)
				if err != nil {
					logger.Log.Warn("failed to parse form", "path", r.URL.Path, "error", err)
					var tooLarge *http.MaxBytesError
					if errors.As(err, &tooLarge) {
						http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
						return
					}
					http.Error(w, "Invalid form data", http.StatusBadRequest)
					return
				}
				if !csrf.ValidateToken(token, submitted) {
					logger.Log.Warn("csrf validation failed", "path", r.URL.Path)
					http.Error(w, "CSRF token invalid", http.StatusForbidden)
					return
				}
			}

			if token == "" {
				var err error
				token, err = csrf.GenerateToken()
				if err != nil {
					logger.Log.Error("failed to generate csrf token", "error", err)
					http.Error(w, "Internal server error", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     csrfCookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					Secure:   cfg.SecureCookies,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   86400,
				})
			}

			ctx := context.WithValue(r.Context(), csrfContextKey{}, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func isUnsafeMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func submittedToken(r *http.Request, maxMemory int64) (string, error) {
	if token := r.Header.Get(csrfHeader); token != "" {
		return token, nil
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return "", err
		}
	} else if err := r.ParseForm(); err != nil {
		return "", err
	}
	return r.FormValue(CSRFFormField), nil
}

// CSRFToken returns the token to embed in forms.
func CSRFToken(r *http.Request) string {
	token, _ := r.Context().Value(csrfContextKey{}).(string)
	return token
}
