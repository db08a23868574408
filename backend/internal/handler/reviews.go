package handler

import (
	"net/http"

	"github.com/localizer/dashboard/shared/api"
	"github.com/localizer/dashboard/shared/domain"
	"github.com/localizer/dashboard/shared/utils"
)

// Reviews are served under the "legislations" resource.

func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.List(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reviews)
}

func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.reviews.Get(r.Context(), recordID(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, review)
}

func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.readReview(w, r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	created, err := h.reviews.Create(r.Context(), review)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.readReview(w, r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	updated, err := h.reviews.Update(r.Context(), recordID(r), review)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.reviews.Delete(r.Context(), recordID(r)); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "Review deleted"})
}

func (h *Handler) readReview(w http.ResponseWriter, r *http.Request) (domain.Review, error) {
	var review domain.Review
	if !isForm(r) {
		err := utils.Decode(r.Body, &review)
		return review, err
	}

	if err := h.parseForm(w, r); err != nil {
		return domain.Review{}, err
	}
	rate, err := formInt(r, "rate")
	if err != nil {
		return domain.Review{}, err
	}
	return domain.Review{
		Name:   formText(r, "name"),
		Email:  formText(r, "email"),
		Rate:   rate,
		Review: formText(r, "review"),
	}, nil
}
