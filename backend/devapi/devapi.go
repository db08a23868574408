// Package devapi assembles the development implementation of the remote
// API the dashboard talks to.
package devapi

import (
	"context"
	"net/http"

	"github.com/localizer/dashboard/backend/internal/router"
	"github.com/localizer/dashboard/backend/internal/setup"
	"github.com/localizer/dashboard/shared/config"
)

// New returns the devapi handler and a cleanup func that closes storage.
// Background workers stop when ctx is done.
func New(ctx context.Context, cfg *config.Config) (http.Handler, func() error, error) {
	deps, err := setup.SetupDependencies(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return router.New(deps), deps.Cleanup, nil
}
