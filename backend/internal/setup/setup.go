package setup

import (
	"context"
	"errors"
	"time"

	"github.com/localizer/dashboard/backend/internal/handler"
	"github.com/localizer/dashboard/backend/internal/service"
	"github.com/localizer/dashboard/backend/internal/storage/fs"
	"github.com/localizer/dashboard/backend/internal/storage/memory"
	"github.com/localizer/dashboard/backend/internal/storage/pg"
	"github.com/localizer/dashboard/shared/config"
	"github.com/localizer/dashboard/shared/domain"
	"github.com/localizer/dashboard/shared/jwt"
	"github.com/localizer/dashboard/shared/logger"
	mw "github.com/localizer/dashboard/shared/middleware"
	"github.com/localizer/dashboard/shared/revocation"
)

const revocationRefreshInterval = time.Minute

// Dependencies holds everything the router needs.
type Dependencies struct {
	Config         *config.Config
	Handler        *handler.Handler
	AuthMiddleware *mw.Auth
	Media          *fs.Storage
	Cleanup        func() error
}

type revocationStorage interface {
	service.RevocationStorage
	revocation.CacheStorage
}

type storageSet struct {
	cards       service.RecordStorage[domain.Card]
	reviews     service.RecordStorage[domain.Review]
	contacts    service.RecordStorage[domain.Contact]
	revocations revocationStorage
	health      handler.HealthChecker
	cleanup     func() error
}

// SetupDependencies wires storage, services and handlers. Background
// workers stop when ctx is done.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	if cfg.JwtKey() == "" {
		return nil, errors.New("jwt_key must be set in private.yaml or JWT_SECRET")
	}
	if cfg.Private.AdminPasswordHash == "" {
		logger.Log.Warn("admin_password_hash is empty, every login will be rejected")
	}
	api := cfg.Public.DevAPI

	media, err := fs.New(api.StoragePath)
	if err != nil {
		return nil, err
	}

	stores, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	revoked := revocation.NewCache(stores.revocations, cfg.JwtTTL())
	if err := revoked.Update(ctx); err != nil {
		stores.cleanup()
		return nil, err
	}
	revoked.StartBackgroundUpdate(ctx, revocationRefreshInterval)

	admin := service.Admin{
		User: domain.User{
			ID:    "1",
			Email: cfg.Private.AdminEmail,
			Name:  cfg.Private.AdminName,
		},
		PasswordHash: cfg.Private.AdminPasswordHash,
	}

	h := handler.New(
		service.NewAuth(admin, jwtService, stores.revocations, revoked),
		service.NewCard(stores.cards, media),
		service.NewReview(stores.reviews),
		service.NewContact(stores.contacts),
		stores.health,
		api.MaxUploadSize,
	)

	return &Dependencies{
		Config:         cfg,
		Handler:        h,
		AuthMiddleware: mw.NewAuth(jwtService, revoked),
		Media:          media,
		Cleanup:        stores.cleanup,
	}, nil
}

func openStorage(ctx context.Context, cfg *config.Config) (*storageSet, error) {
	if !cfg.Public.DevAPI.UsePostgres {
		logger.Log.Info("using in-memory storage")
		s := memory.New()
		return &storageSet{
			cards:       s.Cards,
			reviews:     s.Reviews,
			contacts:    s.Contacts,
			revocations: s,
			health:      s,
			cleanup:     s.Cleanup,
		}, nil
	}

	s, err := pg.New(ctx, cfg.Private.Pg)
	if err != nil {
		return nil, err
	}
	return &storageSet{
		cards:       s.Cards,
		reviews:     s.Reviews,
		contacts:    s.Contacts,
		revocations: s,
		health:      s,
		cleanup:     s.Cleanup,
	}, nil
}
