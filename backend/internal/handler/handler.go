package handler

import (
	"context"

	"github.com/localizer/dashboard/backend/internal/service"
	"github.com/localizer/dashboard/shared/domain"
)

// HealthChecker reports whether storage can serve requests.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth          service.AuthService
	cards         service.CardService
	reviews       service.RecordService[domain.Review]
	contacts      service.RecordService[domain.Contact]
	health        HealthChecker
	maxUploadSize int64 // largest accepted preview image
}

func New(
	auth service.AuthService,
	cards service.CardService,
	reviews service.RecordService[domain.Review],
	contacts service.RecordService[domain.Contact],
	health HealthChecker,
	maxUploadSize int64,
) *Handler {
	return &Handler{
		auth:          auth,
		cards:         cards,
		reviews:       reviews,
		contacts:      contacts,
		health:        health,
		maxUploadSize: maxUploadSize,
	}
}
