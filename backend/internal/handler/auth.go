package handler

import (
	"net/http"

	"github.com/localizer/dashboard/shared/api"
	mw "github.com/localizer/dashboard/shared/middleware"
	"github.com/localizer/dashboard/shared/utils"
)

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds api.LoginRequest
	if err := utils.DecodeValidate(r.Body, &creds); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	token, user, err := h.auth.Login(r.Context(), creds)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.LoginResponse{Token: token, User: &user})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context(), mw.GetClaimsFromContext(r)); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "Logged out"})
}

// Me returns the account the bearer token belongs to.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims := mw.GetClaimsFromContext(r)
	if claims == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}
	utils.WriteJSON(w, http.StatusOK, claims.User())
}
