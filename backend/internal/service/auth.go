package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/localizer/dashboard/shared/api"
	"github.com/localizer/dashboard/shared/domain"
	"github.com/localizer/dashboard/shared/errors"
	"github.com/localizer/dashboard/shared/jwt"
	"github.com/localizer/dashboard/shared/logger"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, creds api.LoginRequest) (string, domain.User, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

// RevocationStorage persists ids of tokens ended by logout.
type RevocationStorage interface {
	RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// RevocationCache is the in-process view consulted by the auth middleware.
type RevocationCache interface {
	Add(tokenID string)
}

// Admin is the single account allowed into the dashboard.
type Admin struct {
	User         domain.User
	PasswordHash string // bcrypt
}

type Auth struct {
	admin   Admin
	jwt     Jwt
	storage RevocationStorage
	cache   RevocationCache
}

func NewAuth(admin Admin, jwt Jwt, storage RevocationStorage, cache RevocationCache) *Auth {
	return &Auth{
		admin:   admin,
		jwt:     jwt,
		storage: storage,
		cache:   cache,
	}
}

var errInvalidCredentials = &errors.ErrorWithStatusCode{
	Message:    "Invalid credentials",
	StatusCode: http.StatusUnauthorized,
}

// Login checks creds against the admin account and returns an access token.
// Unknown emails and wrong passwords get the same answer.
func (a *Auth) Login(ctx context.Context, creds api.LoginRequest) (string, domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if a.admin.PasswordHash == "" || email != strings.ToLower(a.admin.User.Email) {
		return "", domain.User{}, errInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.admin.PasswordHash), []byte(creds.Password)); err != nil {
		logger.Log.Info("failed login attempt", "email", email)
		return "", domain.User{}, errInvalidCredentials
	}

	token, err := a.jwt.NewToken(a.admin.User)
	if err != nil {
		return "", domain.User{}, err
	}
	logger.Log.Info("admin logged in", "email", email)
	return token, a.admin.User, nil
}

// Logout revokes the token the request was made with.
func (a *Auth) Logout(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil || claims.ID == "" {
		return errors.Unauthorized("Please sign-in")
	}

	expiresAt := time.Now()
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := a.storage.RevokeToken(ctx, claims.ID, expiresAt); err != nil {
		logger.Log.Error("failed to revoke token", "token_id", claims.ID, "error", err)
		return err
	}
	a.cache.Add(claims.ID)
	return nil
}
