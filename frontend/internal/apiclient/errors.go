package apiclient

import (
	"errors"
	"net/http"

	internal_errors "github.com/localizer/dashboard/shared/errors"
)

// NetworkMessage is shown to users when the API could not be reached.
const NetworkMessage = "Could not reach the server. Check your connection and try again."

// NetworkError means no response was received: connection refused, DNS,
// timeout or a cancelled request.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return NetworkMessage
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var e *internal_errors.ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// IsUnauthorized reports a 401 response.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}
