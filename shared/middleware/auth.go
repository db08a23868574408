package middleware

import (
	"context"
	"net/http"
	"strings"

	jwt_internal "github.com/localizer/dashboard/shared/jwt"
	"github.com/localizer/dashboard/shared/logger"
	"github.com/localizer/dashboard/shared/utils"

	internal_errors "github.com/localizer/dashboard/shared/errors"
)

// RevocationCache reports tokens invalidated by logout.
type RevocationCache interface {
	IsRevoked(tokenID string) bool
}

type key int

// ClaimsKey stores the caller's *jwt.Claims in the request context.
const ClaimsKey key = 0

// Auth validates bearer tokens on API requests.
type Auth struct {
	jwtService jwt_internal.JwtService
	revoked    RevocationCache
}

func NewAuth(jwtService jwt_internal.JwtService, revoked RevocationCache) *Auth {
	return &Auth{jwtService: jwtService, revoked: revoked}
}

var (
	errNoToken = internal_errors.Unauthorized("Please sign-in")
	errRevoked = internal_errors.Unauthorized("Session has ended")
)

// NeedAuth rejects requests without a valid, unrevoked bearer token with 401.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := a.extractClaims(r)
			if err != nil {
				logger.Log.Debug("rejected request", "component", "auth", "path", r.URL.Path, "error", err)
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (a *Auth) extractClaims(r *http.Request) (*jwt_internal.Claims, error) {
	tokenString, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	tokenString = strings.TrimSpace(tokenString)
	if !found || tokenString == "" {
		return nil, errNoToken
	}

	claims, err := a.jwtService.DecodeToken(tokenString)
	if err != nil {
		return nil, err
	}
	if a.revoked != nil && a.revoked.IsRevoked(claims.ID) {
		return nil, errRevoked
	}
	return claims, nil
}

// GetClaimsFromContext returns the claims stored by NeedAuth, or nil.
func GetClaimsFromContext(r *http.Request) *jwt_internal.Claims {
	claims, ok := r.Context().Value(ClaimsKey).(*jwt_internal.Claims)
	if !ok {
		return nil
	}
	return claims
}
