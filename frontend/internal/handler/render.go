package handler

import (
	"bytes"
	"fmt"
	"net/http"

	frontend_domain "github.com/localizer/dashboard/frontend/internal/domain"
	mw "github.com/localizer/dashboard/frontend/internal/middleware"
	"github.com/localizer/dashboard/frontend/internal/session"
	"github.com/localizer/dashboard/shared/domain"
	"github.com/localizer/dashboard/shared/logger"
	"github.com/localizer/dashboard/shared/validation"
)

const (
	emailPrefillCookie = "flash_email"
	acceptedImages     = "image/*"
)

// TemplateData wraps page-specific data with common template data.
// Templates access page data via .Data and common data via .Common.
type TemplateData struct {
	Data   any
	Common frontend_domain.CommonTemplateData
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name, section string, data any) {
	h.renderTemplateWithStatus(w, r, http.StatusOK, name, section, data)
}

func (h *Handler) renderTemplateWithStatus(w http.ResponseWriter, r *http.Request, status int, name, section string, data any) {
	tmpl, ok := h.getTemplate(name)
	if !ok {
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	common := h.initCommonTemplateData(w, r)
	common.Section = section

	wrapped := TemplateData{
		Data:   data,
		Common: common,
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, wrapped); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// initCommonTemplateData consumes pending flash cookies.
func (h *Handler) initCommonTemplateData(w http.ResponseWriter, r *http.Request) frontend_domain.CommonTemplateData {
	secure := h.Dashboard.SecureCookies
	return frontend_domain.CommonTemplateData{
		Error:            mw.PopFlash(w, r, mw.FlashError, secure),
		Success:          mw.PopFlash(w, r, mw.FlashSuccess, secure),
		EmailPlaceholder: mw.PopFlash(w, r, emailPrefillCookie, secure),
		CSRFToken:        mw.CSRFToken(r),
		Authenticated:    session.FromContext(r.Context()).Valid(),
		Validation: frontend_domain.ValidationData{
			MaxImageSizeMB: validation.FormatSizeMB(h.Dashboard.MaxImageSize),
			AcceptedImages: acceptedImages,
			MinRate:        domain.MinRate,
			MaxRate:        domain.MaxRate,
		},
	}
}

func (h *Handler) setFlash(w http.ResponseWriter, name, message string) {
	mw.SetFlash(w, name, message, h.Dashboard.SecureCookies)
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, target, name, message string) {
	h.setFlash(w, name, message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}
