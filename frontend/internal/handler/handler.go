package handler

import (
	"html/template"
	"net/http"
	"sync"

	"github.com/localizer/dashboard/frontend/internal/apiclient"
	"github.com/localizer/dashboard/frontend/internal/dataaccess"
	"github.com/localizer/dashboard/frontend/internal/markdown"
	"github.com/localizer/dashboard/frontend/internal/session"
	"github.com/localizer/dashboard/shared/config"
)

type Handler struct {
	mu        sync.RWMutex
	templates map[string]*template.Template

	Dashboard     config.Dashboard
	TextProcessor *markdown.TextProcessor
	APIClient     *apiclient.APIClient
	Data          *dataaccess.Layer
	Sessions      *session.Store
}

func New(templates map[string]*template.Template, dashboardCfg config.Dashboard, textProcessor *markdown.TextProcessor, apiClient *apiclient.APIClient, data *dataaccess.Layer, sessions *session.Store) *Handler {
	return &Handler{
		templates:     templates,
		Dashboard:     dashboardCfg,
		TextProcessor: textProcessor,
		APIClient:     apiClient,
		Data:          data,
		Sessions:      sessions,
	}
}

// SetTemplates swaps the template set; used by the development reloader.
func (h *Handler) SetTemplates(templates map[string]*template.Template) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.templates = templates
}

func (h *Handler) getTemplate(name string) (*template.Template, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	tmpl, ok := h.templates[name]
	return tmpl, ok
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
