package handler

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/localizer/dashboard/frontend/internal/dataaccess"
	frontend_domain "github.com/localizer/dashboard/frontend/internal/domain"
	"github.com/localizer/dashboard/shared/domain"
)

// Cache keys and upstream resources of the feature pages.
const (
	cardsKey    = "cards"
	reviewsKey  = "reviews"
	contactsKey = "contacts"

	cardsPath   = "cards"
	reviewsPath = "legislations"
)

func (h *Handler) DashboardGetHandler(w http.ResponseWriter, r *http.Request) {
	nav := h.newNavigator(w)
	ctx := r.Context()

	var (
		cards    dataaccess.Result[[]domain.Card]
		reviews  dataaccess.Result[[]domain.Review]
		contacts dataaccess.Result[[]domain.Contact]
	)
	var g errgroup.Group
	g.Go(func() error {
		cards = dataaccess.Fetch[[]domain.Card](ctx, h.Data, dataaccess.Query{Path: cardsPath, Key: cardsKey}, nav)
		return nil
	})
	g.Go(func() error {
		reviews = dataaccess.Fetch[[]domain.Review](ctx, h.Data, dataaccess.Query{Path: reviewsPath, Key: reviewsKey}, nav)
		return nil
	})
	g.Go(func() error {
		contacts = dataaccess.Fetch[[]domain.Contact](ctx, h.Data, dataaccess.Query{Path: h.Dashboard.ContactsPath, Key: contactsKey}, nav)
		return nil
	})
	_ = g.Wait()

	if nav.redirect(r) {
		return
	}

	data := frontend_domain.DashboardPageData{
		Sections: []frontend_domain.SectionSummary{
			summary("Cards", "/cards", len(cards.Data), cards.Err),
			summary("Reviews", "/reviews", len(reviews.Data), reviews.Err),
			summary("Contacts", "/contacts", len(contacts.Data), contacts.Err),
		},
	}
	h.renderTemplate(w, r, "dashboard.html", "dashboard", data)
}

func summary(title, link string, count int, err error) frontend_domain.SectionSummary {
	s := frontend_domain.SectionSummary{Title: title, Link: link, Count: count}
	if err != nil {
		s.Error = errorMessage(err)
	}
	return s
}
