package setup

import (
	"context"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/localizer/dashboard/frontend/internal/apiclient"
	"github.com/localizer/dashboard/frontend/internal/dataaccess"
	"github.com/localizer/dashboard/frontend/internal/handler"
	"github.com/localizer/dashboard/frontend/internal/markdown"
	mw "github.com/localizer/dashboard/frontend/internal/middleware"
	"github.com/localizer/dashboard/frontend/internal/session"
	"github.com/localizer/dashboard/frontend/templates"
	"github.com/localizer/dashboard/shared/config"
	"github.com/localizer/dashboard/shared/logger"
)

const (
	templateReloadInterval = 5 * time.Second
	cacheSweepInterval     = time.Minute
)

type Dependencies struct {
	Handler  *handler.Handler
	Config   *config.Config
	Sessions *session.Store
	Fallback *mw.UnauthorizedFallback
	// StorageOrigin is where preview images are served from.
	StorageOrigin string
	CancelFunc    context.CancelFunc
}

func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	ctx, cancel := context.WithCancel(context.Background())
	dash := cfg.Public.Dashboard

	templateFS := fs.FS(templates.FS)
	if dash.TemplatesDir != "" {
		templateFS = os.DirFS(dash.TemplatesDir)
	}
	tmpls, err := templates.Load(templateFS)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	sessions := session.NewStore(dash.SecureCookies, dash.SessionMaxAge)
	fallback := mw.NewUnauthorizedFallback(sessions, dash.SecureCookies)

	apiClient := apiclient.New(dash.APIBaseURL, dash.RequestTimeout, session.Token)
	apiClient.OnUnauthorized(fallback.Hook)

	cache := dataaccess.NewCache(dash.CacheTTL)
	cache.StartJanitor(ctx, cacheSweepInterval)
	data := dataaccess.New(apiClient, session.Token, cache, dash.ReadRetries)

	h := handler.New(tmpls, dash, markdown.New(), apiClient, data, sessions)
	if cfg.IsDevelopment() && dash.TemplatesDir != "" {
		startTemplateReloader(ctx, h, templateFS)
	}

	logger.Log.Info("dashboard configured", "api", apiClient.BaseURL, "website_api", apiClient.WebsiteURL, "storage", apiClient.StorageBase)

	return &Dependencies{
		Handler:       h,
		Config:        cfg,
		Sessions:      sessions,
		Fallback:      fallback,
		StorageOrigin: origin(apiClient.StorageBase),
		CancelFunc:    cancel,
	}, nil
}

func origin(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func startTemplateReloader(ctx context.Context, h *handler.Handler, fsys fs.FS) {
	ticker := time.NewTicker(templateReloadInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				tmpls, err := templates.Load(fsys)
				if err != nil {
					logger.Log.Error("reloading templates", "error", err)
					continue
				}
				h.SetTemplates(tmpls)
			case <-ctx.Done():
				return
			}
		}
	}()
}
