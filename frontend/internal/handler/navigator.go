package handler

import (
	"errors"
	"net/http"
	"sync"

	"github.com/localizer/dashboard/frontend/internal/apiclient"
	"github.com/localizer/dashboard/frontend/internal/dataaccess"
	mw "github.com/localizer/dashboard/frontend/internal/middleware"
	internal_errors "github.com/localizer/dashboard/shared/errors"
)

const sessionExpiredMessage = "Your session has expired. Please log in again."

// navigator collects the navigation a data-access operation asks for while
// the page is being built. The first request wins.
type navigator struct {
	h *Handler
	w http.ResponseWriter

	mu      sync.Mutex
	target  string
	cleared bool
}

var _ dataaccess.Navigator = (*navigator)(nil)

func (h *Handler) newNavigator(w http.ResponseWriter) *navigator {
	return &navigator{h: h, w: w}
}

func (n *navigator) ClearSession() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cleared {
		return
	}
	n.cleared = true
	n.h.Sessions.Clear(n.w)
}

func (n *navigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.target == "" {
		n.target = path
	}
}

// redirect sends the pending navigation, if any, and reports whether it did.
func (n *navigator) redirect(r *http.Request) bool {
	n.mu.Lock()
	target, cleared := n.target, n.cleared
	n.mu.Unlock()
	if target == "" {
		return false
	}
	if cleared {
		n.h.setFlash(n.w, mw.FlashError, sessionExpiredMessage)
	}
	http.Redirect(n.w, r, target, http.StatusSeeOther)
	return true
}

// errorMessage is the notification text for a failed API call.
func errorMessage(err error) string {
	if apiclient.IsNetworkError(err) {
		return apiclient.NetworkMessage
	}
	var e *internal_errors.ErrorWithStatusCode
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "Something went wrong. Please try again."
}
