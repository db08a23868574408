package middleware

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/localizer/dashboard/frontend/internal/session"
	"github.com/localizer/dashboard/shared/logger"
)

// UnauthorizedFallback is the last-resort handling of 401 responses to API
// requests made outside the data-access layer. The API client reports such
// responses through Hook; the response of the page is then replaced by a
// redirect to the login page with the session cleared.
type UnauthorizedFallback struct {
	store         *session.Store
	secureCookies bool
}

func NewUnauthorizedFallback(store *session.Store, secureCookies bool) *UnauthorizedFallback {
	return &UnauthorizedFallback{store: store, secureCookies: secureCookies}
}

type fallbackKey struct{}

type fallbackState struct {
	triggered atomic.Bool
}

// Hook marks the request carried by ctx; register it with the API client.
func (a *UnauthorizedFallback) Hook(ctx context.Context) {
	if state, ok := ctx.Value(fallbackKey{}).(*fallbackState); ok {
		state.triggered.Store(true)
	}
}

func (a *UnauthorizedFallback) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := &fallbackState{}
		ctx := context.WithValue(r.Context(), fallbackKey{}, state)
		wrapper := &authRedirectWriter{
			ResponseWriter: w,
			request:        r,
			state:          state,
			fallback:       a,
		}
		next.ServeHTTP(wrapper, r.WithContext(ctx))
	})
}

// authRedirectWriter swaps the handler's response for a login redirect
// once the hook has fired.
type authRedirectWriter struct {
	http.ResponseWriter
	request     *http.Request
	state       *fallbackState
	fallback    *UnauthorizedFallback
	wroteHeader bool
	redirected  bool
}

func (w *authRedirectWriter) WriteHeader(statusCode int) {
	if w.redirected || w.wroteHeader {
		return
	}
	if w.state.triggered.Load() {
		w.redirect()
		return
	}
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *authRedirectWriter) Write(data []byte) (int, error) {
	if !w.wroteHeader && !w.redirected {
		w.WriteHeader(http.StatusOK)
	}
	if w.redirected {
		return len(data), nil
	}
	return w.ResponseWriter.Write(data)
}

func (w *authRedirectWriter) redirect() {
	w.redirected = true
	logger.Log.Info("session rejected by api, redirecting to login", "path", w.request.URL.Path)
	// Drop headers the handler prepared for its own response.
	for _, name := range []string{"Location", "Content-Type", "Content-Length"} {
		w.Header().Del(name)
	}
	w.fallback.store.Clear(w.ResponseWriter)
	SetFlash(w.ResponseWriter, FlashError, "Your session has expired. Please log in again.", w.fallback.secureCookies)
	http.Redirect(w.ResponseWriter, w.request, LoginPage, http.StatusSeeOther)
}
