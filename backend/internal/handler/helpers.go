package handler

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/localizer/dashboard/backend/internal/service"
	"github.com/localizer/dashboard/shared/domain"
	internal_errors "github.com/localizer/dashboard/shared/errors"
	"github.com/localizer/dashboard/shared/validation"
)

// multipartOverhead leaves room for the text fields next to the image.
const multipartOverhead = 1 << 20

func recordID(r *http.Request) domain.ID {
	return domain.ID(chi.URLParam(r, "id"))
}

func mediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

func isMultipart(r *http.Request) bool {
	return mediaType(r) == "multipart/form-data"
}

// isForm reports whether the body is form encoded rather than JSON.
func isForm(r *http.Request) bool {
	mt := mediaType(r)
	return mt == "multipart/form-data" || mt == "application/x-www-form-urlencoded"
}

// parseForm parses either form encoding, capping multipart bodies.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) error {
	if isMultipart(r) {
		maxSize := validation.CalculateMaxRequestSize(h.maxUploadSize, multipartOverhead)
		if err := validation.ValidateAndParseMultipart(r, w, maxSize); err != nil {
			return imageError(err)
		}
		return nil
	}
	if err := r.ParseForm(); err != nil {
		return internal_errors.BadRequest("Form is invalid")
	}
	return nil
}

// formInt reads an optional integer field; empty means zero.
func formInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.PostFormValue(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, internal_errors.Unprocessable(fmt.Sprintf("Invalid fields: %s (integer)", name))
	}
	return v, nil
}

func formBool(r *http.Request, name string) domain.Flag {
	switch strings.ToLower(strings.TrimSpace(r.PostFormValue(name))) {
	case "1", "true", "on":
		return true
	}
	return false
}

func formText(r *http.Request, name string) string {
	return strings.TrimSpace(r.PostFormValue(name))
}

// formImage returns the validated upload in field, or nil when the field
// is absent.
func (h *Handler) formImage(r *http.Request, field string) (*service.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 || files[0].Size == 0 {
		return nil, nil
	}
	img, err := validation.ReadImage(files[0], h.maxUploadSize)
	if err != nil {
		return nil, imageError(err)
	}
	return &service.Upload{Filename: img.Filename, Data: bytes.NewReader(img.Data)}, nil
}

// imageError maps upload validation failures to client errors.
func imageError(err error) error {
	switch {
	case errors.Is(err, validation.ErrPayloadTooLarge):
		return internal_errors.New(http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, validation.ErrInvalidMimeType), errors.Is(err, validation.ErrInvalidImage):
		return internal_errors.Unprocessable(err.Error())
	}
	return err
}
