package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/localizer/dashboard/frontend/internal/dataaccess"
	frontend_domain "github.com/localizer/dashboard/frontend/internal/domain"
	mw "github.com/localizer/dashboard/frontend/internal/middleware"
	"github.com/localizer/dashboard/shared/domain"
	"github.com/localizer/dashboard/shared/utils"
)

const reviewsPage = "/reviews"

func (h *Handler) ReviewsGetHandler(w http.ResponseWriter, r *http.Request) {
	nav := h.newNavigator(w)
	ctx := r.Context()
	editID := strings.TrimSpace(r.URL.Query().Get("edit"))

	list := dataaccess.Fetch[[]domain.Review](ctx, h.Data, dataaccess.Query{Path: reviewsPath, Key: reviewsKey}, nav)
	edited := dataaccess.Fetch[domain.Review](ctx, h.Data, dataaccess.Query{
		Path:     recordPath(reviewsPath, editID),
		Key:      recordKey(reviewsKey, editID),
		Disabled: editID == "",
	}, nav)
	if nav.redirect(r) {
		return
	}

	data := frontend_domain.ReviewsPageData{
		Form:  frontend_domain.ReviewForm{Rate: domain.MaxRate},
		Rates: rates(),
	}
	if list.Err != nil {
		data.LoadError = errorMessage(list.Err)
	}
	for _, review := range list.Data {
		data.Reviews = append(data.Reviews, frontend_domain.ReviewView{
			Review: review,
			Body:   h.TextProcessor.Render(review.Review),
		})
	}

	switch {
	case edited.Loaded():
		data.Editing = true
		data.Form = frontend_domain.ReviewForm{
			ID:     edited.Data.ID,
			Name:   edited.Data.Name,
			Email:  edited.Data.Email,
			Rate:   edited.Data.Rate,
			Review: edited.Data.Review,
		}
	case edited.Err != nil:
		data.LoadError = errorMessage(edited.Err)
	}

	h.renderTemplate(w, r, "reviews.html", "reviews", data)
}

func rates() []int {
	out := make([]int, 0, domain.MaxRate-domain.MinRate+1)
	for rate := domain.MinRate; rate <= domain.MaxRate; rate++ {
		out = append(out, rate)
	}
	return out
}

func (h *Handler) ReviewsPostHandler(w http.ResponseWriter, r *http.Request) {
	h.submitReview(w, r, "")
}

func (h *Handler) ReviewUpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	h.submitReview(w, r, id)
}

func (h *Handler) submitReview(w http.ResponseWriter, r *http.Request, id string) {
	back := reviewsPage
	if id != "" {
		back = reviewsPage + "?edit=" + url.QueryEscape(id)
	}

	if err := h.parseForm(w, r); err != nil {
		h.redirectWithFlash(w, r, back, mw.FlashError, "The form could not be read.")
		return
	}
	rate, err := formInt(r, "rate")
	if err != nil {
		h.redirectWithFlash(w, r, back, mw.FlashError, err.Error())
		return
	}
	review := domain.Review{
		Name:   strings.TrimSpace(r.FormValue("name")),
		Email:  strings.TrimSpace(r.FormValue("email")),
		Rate:   rate,
		Review: strings.TrimSpace(r.FormValue("review")),
	}
	if err := utils.Validate(review); err != nil {
		h.redirectWithFlash(w, r, back, mw.FlashError, errorMessage(err))
		return
	}

	invalidates := []string{reviewsKey}
	path, method, done := reviewsPath, http.MethodPost, "Review created."
	if id != "" {
		invalidates = append(invalidates, recordKey(reviewsKey, id))
		path, method, done = recordPath(reviewsPath, id), http.MethodPut, "Review updated."
	}

	m := h.Data.NewMutation(map[string]any{
		"name":   review.Name,
		"email":  review.Email,
		"rate":   review.Rate,
		"review": review.Review,
	}, invalidates...)

	nav := h.newNavigator(w)
	if _, err := m.Submit(r.Context(), nav, path, nil, method); err != nil {
		h.failMutation(w, r, nav, err, back)
		return
	}
	h.redirectWithFlash(w, r, reviewsPage, mw.FlashSuccess, done)
}

func (h *Handler) ReviewDeleteGetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	nav := h.newNavigator(w)
	review := dataaccess.Fetch[domain.Review](r.Context(), h.Data, dataaccess.Query{
		Path: recordPath(reviewsPath, id),
		Key:  recordKey(reviewsKey, id),
	}, nav)
	if nav.redirect(r) {
		return
	}

	label := "review " + id
	if review.Loaded() && review.Data.Name != "" {
		label = "review by " + review.Data.Name
	}
	h.renderTemplate(w, r, "delete.html", "reviews", frontend_domain.DeletePageData{
		Kind:   "review",
		Label:  label,
		Action: reviewsPage + "/" + url.PathEscape(id) + "/delete",
		Back:   reviewsPage,
	})
}

func (h *Handler) ReviewDeletePostHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	nav := h.newNavigator(w)
	d := h.Data.NewDeletion(reviewsKey, recordKey(reviewsKey, id))
	if _, err := d.Delete(r.Context(), nav, recordPath(reviewsPath, id)); err != nil {
		h.failMutation(w, r, nav, err, reviewsPage)
		return
	}
	h.redirectWithFlash(w, r, reviewsPage, mw.FlashSuccess, "Review deleted.")
}
