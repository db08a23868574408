package handler

import (
	"net/http"

	"github.com/localizer/dashboard/shared/api"
	"github.com/localizer/dashboard/shared/domain"
	"github.com/localizer/dashboard/shared/utils"
)

func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contacts.List(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, contacts)
}

func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	contact, err := h.contacts.Get(r.Context(), recordID(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, contact)
}

// CreateContact is the public contact form endpoint; it needs no token.
func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var contact domain.Contact
	if isForm(r) {
		if err := h.parseForm(w, r); err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
		contact = domain.Contact{
			Name:    formText(r, "name"),
			Email:   formText(r, "email"),
			Phone:   formText(r, "phone"),
			Message: formText(r, "message"),
		}
	} else if err := utils.Decode(r.Body, &contact); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	created, err := h.contacts.Create(r.Context(), contact)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := h.contacts.Delete(r.Context(), recordID(r)); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "Contact deleted"})
}
