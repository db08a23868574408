package validation

import "errors"

// ErrPayloadTooLarge is returned when the request body or an upload exceeds size limits
var ErrPayloadTooLarge = errors.New("payload too large")

// ErrInvalidMimeType is returned when an uploaded file has a disallowed MIME type
var ErrInvalidMimeType = errors.New("invalid MIME type")

// ErrInvalidImage is returned when an upload claims to be an image but does not decode
var ErrInvalidImage = errors.New("invalid image")
