package handler

import (
	"net/http"

	"github.com/localizer/dashboard/backend/internal/service"
	"github.com/localizer/dashboard/shared/api"
	"github.com/localizer/dashboard/shared/domain"
	"github.com/localizer/dashboard/shared/utils"
)

// previewField is the multipart part carrying a card's preview image.
const previewField = "images[0]"

func (h *Handler) ListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cards.List(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, cards)
}

func (h *Handler) GetCard(w http.ResponseWriter, r *http.Request) {
	card, err := h.cards.Get(r.Context(), recordID(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, card)
}

func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	card, preview, err := h.readCard(w, r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	created, err := h.cards.Create(r.Context(), card, preview)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	card, preview, err := h.readCard(w, r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	updated, err := h.cards.Update(r.Context(), recordID(r), card, preview)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	if err := h.cards.Delete(r.Context(), recordID(r)); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "Card deleted"})
}

// readCard accepts a JSON card or a form with an optional preview image.
func (h *Handler) readCard(w http.ResponseWriter, r *http.Request) (domain.Card, *service.Upload, error) {
	var card domain.Card
	if !isForm(r) {
		if err := utils.Decode(r.Body, &card); err != nil {
			return domain.Card{}, nil, err
		}
		return card, nil, nil
	}

	if err := h.parseForm(w, r); err != nil {
		return domain.Card{}, nil, err
	}
	order, err := formInt(r, "order")
	if err != nil {
		return domain.Card{}, nil, err
	}
	card = domain.Card{
		Title:        formText(r, "title"),
		Subtitle:     formText(r, "subtitle"),
		Description:  formText(r, "description"),
		Link:         formText(r, "link"),
		Badge:        formText(r, "badge"),
		PreviewURL:   formText(r, "preview_url"),
		IsComingSoon: formBool(r, "is_coming_soon"),
		Order:        order,
		IsActive:     formBool(r, "is_active"),
		Type:         domain.CardType(formText(r, "type")),
	}

	preview, err := h.formImage(r, previewField)
	if err != nil {
		return domain.Card{}, nil, err
	}
	return card, preview, nil
}
