package handler

import (
	"net/http"
	"slices"
	"strings"

	"github.com/localizer/dashboard/frontend/internal/dataaccess"
	frontend_domain "github.com/localizer/dashboard/frontend/internal/domain"
	"github.com/localizer/dashboard/shared/domain"
)

// ContactsGetHandler lists contacts, newest first. ?q narrows the list by
// name, email, phone or message.
func (h *Handler) ContactsGetHandler(w http.ResponseWriter, r *http.Request) {
	nav := h.newNavigator(w)
	list := dataaccess.Fetch[[]domain.Contact](r.Context(), h.Data, dataaccess.Query{
		Path: h.Dashboard.ContactsPath,
		Key:  contactsKey,
	}, nav)
	if nav.redirect(r) {
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	data := frontend_domain.ContactsPageData{Query: query, Total: len(list.Data)}
	if list.Err != nil {
		data.LoadError = errorMessage(list.Err)
	}

	contacts := slices.Clone(list.Data)
	slices.SortStableFunc(contacts, func(a, b domain.Contact) int { return b.Date.Compare(a.Date) })
	for _, c := range contacts {
		if !matchesContact(c, query) {
			continue
		}
		data.Contacts = append(data.Contacts, frontend_domain.ContactView{
			Contact: c,
			Body:    h.TextProcessor.Render(c.Message),
		})
	}

	h.renderTemplate(w, r, "contacts.html", "contacts", data)
}

func matchesContact(c domain.Contact, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, field := range []string{c.Name, c.Email, c.Phone, c.Message} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
