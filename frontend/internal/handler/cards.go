package handler

import (
	"cmp"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/localizer/dashboard/frontend/internal/dataaccess"
	frontend_domain "github.com/localizer/dashboard/frontend/internal/domain"
	mw "github.com/localizer/dashboard/frontend/internal/middleware"
	"github.com/localizer/dashboard/shared/domain"
	"github.com/localizer/dashboard/shared/logger"
	"github.com/localizer/dashboard/shared/utils"
)

const (
	cardsPage      = "/cards"
	excerptLength  = 140
	previewMissing = ""
)

func (h *Handler) CardsGetHandler(w http.ResponseWriter, r *http.Request) {
	nav := h.newNavigator(w)
	ctx := r.Context()
	editID := strings.TrimSpace(r.URL.Query().Get("edit"))

	list := dataaccess.Fetch[[]domain.Card](ctx, h.Data, dataaccess.Query{Path: cardsPath, Key: cardsKey}, nav)
	edited := dataaccess.Fetch[domain.Card](ctx, h.Data, dataaccess.Query{
		Path:     recordPath(cardsPath, editID),
		Key:      recordKey(cardsKey, editID),
		Disabled: editID == "",
	}, nav)
	if nav.redirect(r) {
		return
	}

	data := frontend_domain.CardsPageData{
		CardTypes: domain.CardTypes,
		Form:      frontend_domain.CardForm{Type: domain.CardTypeCompany, IsActive: true},
	}
	if list.Err != nil {
		data.LoadError = errorMessage(list.Err)
	}
	cards := slices.Clone(list.Data)
	slices.SortStableFunc(cards, func(a, b domain.Card) int { return cmp.Compare(a.Order, b.Order) })
	for _, card := range cards {
		data.Cards = append(data.Cards, h.cardView(card))
	}

	switch {
	case edited.Loaded():
		data.Editing = true
		data.Form = h.cardForm(edited.Data)
	case edited.Err != nil:
		data.LoadError = errorMessage(edited.Err)
	}

	h.renderTemplate(w, r, "cards.html", "cards", data)
}

func (h *Handler) cardView(card domain.Card) frontend_domain.CardView {
	return frontend_domain.CardView{
		Card:        card,
		Preview:     h.APIClient.StorageURL(card.PreviewURL, previewMissing),
		Description: h.TextProcessor.Render(card.Description),
		Excerpt:     h.TextProcessor.Excerpt(card.Description, excerptLength),
	}
}

func (h *Handler) cardForm(card domain.Card) frontend_domain.CardForm {
	return frontend_domain.CardForm{
		ID:           card.ID,
		Title:        card.Title,
		Subtitle:     card.Subtitle,
		Description:  card.Description,
		Link:         card.Link,
		Badge:        card.Badge,
		PreviewURL:   card.PreviewURL,
		Preview:      h.APIClient.StorageURL(card.PreviewURL, previewMissing),
		IsComingSoon: card.IsComingSoon.Bool(),
		Order:        card.Order,
		IsActive:     card.IsActive.Bool(),
		Type:         card.Type,
	}
}

// CardsPostHandler creates a card.
func (h *Handler) CardsPostHandler(w http.ResponseWriter, r *http.Request) {
	h.submitCard(w, r, "")
}

// CardUpdateHandler updates the card named in the path.
func (h *Handler) CardUpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	h.submitCard(w, r, id)
}

func (h *Handler) submitCard(w http.ResponseWriter, r *http.Request, id string) {
	back := cardsPage
	if id != "" {
		back = cardsPage + "?edit=" + url.QueryEscape(id)
	}

	if err := h.parseForm(w, r); err != nil {
		logger.Log.Warn("parsing card form", "error", err)
		h.redirectWithFlash(w, r, back, mw.FlashError, "The form could not be read. Is the image too large?")
		return
	}

	card, err := readCard(r)
	if err != nil {
		h.redirectWithFlash(w, r, back, mw.FlashError, err.Error())
		return
	}
	if err := utils.Validate(card); err != nil {
		h.redirectWithFlash(w, r, back, mw.FlashError, errorMessage(err))
		return
	}

	image, err := h.uploadedImage(r, "image")
	if err != nil {
		h.redirectWithFlash(w, r, back, mw.FlashError, err.Error())
		return
	}

	invalidates := []string{cardsKey}
	path, method, done := cardsPath, http.MethodPost, "Card created."
	if id != "" {
		invalidates = append(invalidates, recordKey(cardsKey, id))
		path, method, done = recordPath(cardsPath, id), http.MethodPut, "Card updated."
	}

	m := h.Data.NewMutation(nil, invalidates...)
	m.Form.SetText("title", card.Title)
	m.Form.SetText("subtitle", card.Subtitle)
	m.Form.SetText("description", card.Description)
	m.Form.SetText("link", card.Link)
	m.Form.SetText("badge", card.Badge)
	m.Form.Set("is_coming_soon", card.IsComingSoon.Bool())
	m.Form.Set("order", card.Order)
	m.Form.Set("is_active", card.IsActive.Bool())
	m.Form.SetText("type", string(card.Type))
	if image != nil {
		m.Form.AddImages(image)
	} else if card.PreviewURL != "" {
		m.Form.SetText("preview_url", card.PreviewURL)
	}

	nav := h.newNavigator(w)
	if _, err := m.Submit(r.Context(), nav, path, nil, method); err != nil {
		h.failMutation(w, r, nav, err, back)
		return
	}
	h.redirectWithFlash(w, r, cardsPage, mw.FlashSuccess, done)
}

func readCard(r *http.Request) (domain.Card, error) {
	order, err := formInt(r, "order")
	if err != nil {
		return domain.Card{}, err
	}
	return domain.Card{
		Title:        strings.TrimSpace(r.FormValue("title")),
		Subtitle:     strings.TrimSpace(r.FormValue("subtitle")),
		Description:  strings.TrimSpace(r.FormValue("description")),
		Link:         strings.TrimSpace(r.FormValue("link")),
		Badge:        strings.TrimSpace(r.FormValue("badge")),
		PreviewURL:   strings.TrimSpace(r.FormValue("preview_url")),
		IsComingSoon: domain.Flag(formBool(r, "is_coming_soon")),
		Order:        order,
		IsActive:     domain.Flag(formBool(r, "is_active")),
		Type:         domain.CardType(r.FormValue("type")),
	}, nil
}

func (h *Handler) CardDeleteGetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	nav := h.newNavigator(w)
	card := dataaccess.Fetch[domain.Card](r.Context(), h.Data, dataaccess.Query{
		Path: recordPath(cardsPath, id),
		Key:  recordKey(cardsKey, id),
	}, nav)
	if nav.redirect(r) {
		return
	}

	label := "card " + id
	if card.Loaded() && card.Data.Title != "" {
		label = card.Data.Title
	}
	h.renderTemplate(w, r, "delete.html", "cards", frontend_domain.DeletePageData{
		Kind:   "card",
		Label:  label,
		Action: cardsPage + "/" + url.PathEscape(id) + "/delete",
		Back:   cardsPage,
	})
}

func (h *Handler) CardDeletePostHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	nav := h.newNavigator(w)
	d := h.Data.NewDeletion(cardsKey, recordKey(cardsKey, id))
	if _, err := d.Delete(r.Context(), nav, recordPath(cardsPath, id)); err != nil {
		h.failMutation(w, r, nav, err, cardsPage)
		return
	}
	h.redirectWithFlash(w, r, cardsPage, mw.FlashSuccess, "Card deleted.")
}
