package handler

import (
	"net/http"
	"strings"

	mw "github.com/localizer/dashboard/frontend/internal/middleware"
	"github.com/localizer/dashboard/shared/api"
	"github.com/localizer/dashboard/shared/logger"
	"github.com/localizer/dashboard/shared/utils"
)

func (h *Handler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, mw.DashboardPage, http.StatusSeeOther)
}

func (h *Handler) LoginGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "login.html", "login", nil)
}

func (h *Handler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	req := api.LoginRequest{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}

	fail := func(message string) {
		h.setFlash(w, emailPrefillCookie, req.Email)
		h.redirectWithFlash(w, r, mw.LoginPage, mw.FlashError, message)
	}

	if err := utils.Validate(req); err != nil {
		fail("Please enter a valid email and your password.")
		return
	}

	resp, err := h.APIClient.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		logger.Log.Info("login failed", "email", req.Email, "error", err)
		fail(errorMessage(err))
		return
	}

	h.Sessions.Save(w, resp.Token)
	logger.Log.Info("user logged in", "email", req.Email)
	http.Redirect(w, r, mw.DashboardPage, http.StatusSeeOther)
}

// LogoutGetHandler asks for confirmation; the form posts back to /logout.
func (h *Handler) LogoutGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "logout.html", "logout", nil)
}

func (h *Handler) LogoutPostHandler(w http.ResponseWriter, r *http.Request) {
	// The local session ends even if the API cannot be told.
	if err := h.APIClient.Logout(r.Context(), h.Dashboard.LogoutPath); err != nil {
		logger.Log.Warn("api logout failed", "path", h.Dashboard.LogoutPath, "error", err)
	}
	h.Sessions.Clear(w)
	h.redirectWithFlash(w, r, mw.LoginPage, mw.FlashSuccess, "You have been logged out.")
}
