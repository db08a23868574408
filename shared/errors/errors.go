package errors

import "net/http"

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
	// Payload is the raw JSON error body returned by a remote API, if any.
	Payload []byte
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func New(statusCode int, message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: statusCode}
}

func BadRequest(message string) *ErrorWithStatusCode {
	return New(http.StatusBadRequest, message)
}

func NotFound(message string) *ErrorWithStatusCode {
	return New(http.StatusNotFound, message)
}

func Unauthorized(message string) *ErrorWithStatusCode {
	return New(http.StatusUnauthorized, message)
}

func Unprocessable(message string) *ErrorWithStatusCode {
	return New(http.StatusUnprocessableEntity, message)
}
