package frontend_domain

import (
	"html/template"

	"github.com/localizer/dashboard/shared/domain"
)

type SectionSummary struct {
	Title string
	Link  string
	Count int
	Error string
}

type DashboardPageData struct {
	Sections []SectionSummary
}

type CardView struct {
	domain.Card
	Preview     string
	Description template.HTML
	Excerpt     string
}

// CardForm is the create/edit form state of the cards page.
type CardForm struct {
	ID           domain.ID
	Title        string
	Subtitle     string
	Description  string
	Link         string
	Badge        string
	PreviewURL   string
	Preview      string
	IsComingSoon bool
	Order        int
	IsActive     bool
	Type         domain.CardType
}

type CardsPageData struct {
	Cards     []CardView
	Form      CardForm
	Editing   bool
	CardTypes []domain.CardType
	LoadError string
}

type ReviewView struct {
	domain.Review
	Body template.HTML
}

type ReviewForm struct {
	ID     domain.ID
	Name   string
	Email  string
	Rate   int
	Review string
}

type ReviewsPageData struct {
	Reviews   []ReviewView
	Form      ReviewForm
	Editing   bool
	Rates     []int
	LoadError string
}

type ContactView struct {
	domain.Contact
	Body template.HTML
}

type ContactsPageData struct {
	Contacts  []ContactView
	Query     string
	Total     int
	LoadError string
}

// DeletePageData drives the shared delete confirmation page.
type DeletePageData struct {
	Kind   string
	Label  string
	Action string
	Back   string
}

type ErrorPageData struct {
	Title   string
	Message string
}
