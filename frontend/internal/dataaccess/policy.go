package dataaccess

import (
	"net/http"

	"github.com/localizer/dashboard/frontend/internal/apiclient"
)

const (
	LoginPath       = "/login"
	ForbiddenPath   = "/403"
	ServerErrorPath = "/error500"
)

// Navigator is how an operation moves the user when a response demands it.
// Handlers implement it per request.
type Navigator interface {
	ClearSession()
	Navigate(path string)
}

// ApplyPolicy routes 401, 403 and 500 responses. It reports whether it
// navigated; other errors are left to the caller.
func ApplyPolicy(err error, nav Navigator) bool {
	if err == nil || nav == nil {
		return false
	}
	switch apiclient.StatusCode(err) {
	case http.StatusUnauthorized:
		nav.ClearSession()
		nav.Navigate(LoginPath)
	case http.StatusForbidden:
		nav.Navigate(ForbiddenPath)
	case http.StatusInternalServerError:
		nav.Navigate(ServerErrorPath)
	default:
		return false
	}
	return true
}
