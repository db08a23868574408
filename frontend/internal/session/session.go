// Package session keeps the dashboard session in the "token" cookie and
// exposes it to request builders through the request context.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/localizer/dashboard/shared/domain"
)

const CookieName = "token"

type Store struct {
	Secure bool
	MaxAge time.Duration
}

func NewStore(secure bool, maxAge time.Duration) *Store {
	return &Store{Secure: secure, MaxAge: maxAge}
}

// Load reads the session from the request cookie.
func (s *Store) Load(r *http.Request) domain.Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return domain.Session{}
	}
	return domain.Session{Token: cookie.Value}
}

// Save replaces any existing session with token.
func (s *Store) Save(w http.ResponseWriter, token string) {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if s.MaxAge > 0 {
		cookie.MaxAge = int(s.MaxAge.Seconds())
		cookie.Expires = time.Now().Add(s.MaxAge)
	}
	http.SetCookie(w, cookie)
}

func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Middleware loads the session once per request into the context.
func (s *Store) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := NewContext(r.Context(), s.Load(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type contextKey struct{}

func NewContext(ctx context.Context, sess domain.Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

func FromContext(ctx context.Context) domain.Session {
	sess, _ := ctx.Value(contextKey{}).(domain.Session)
	return sess
}

// Token is the bearer token of the session in ctx, or "".
func Token(ctx context.Context) string {
	return FromContext(ctx).Token
}
