package handler

import (
	"net/http"

	frontend_domain "github.com/localizer/dashboard/frontend/internal/domain"
)

func (h *Handler) ForbiddenHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplateWithStatus(w, r, http.StatusForbidden, "error.html", "", frontend_domain.ErrorPageData{
		Title:   "Access denied",
		Message: "Your account is not allowed to perform this action.",
	})
}

func (h *Handler) ServerErrorHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplateWithStatus(w, r, http.StatusInternalServerError, "error.html", "", frontend_domain.ErrorPageData{
		Title:   "Server error",
		Message: "The server could not complete the request. Please try again later.",
	})
}

func (h *Handler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplateWithStatus(w, r, http.StatusNotFound, "error.html", "", frontend_domain.ErrorPageData{
		Title:   "Page not found",
		Message: "There is nothing at this address.",
	})
}
