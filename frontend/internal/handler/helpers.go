package handler

import (
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/localizer/dashboard/frontend/internal/dataaccess"
	mw "github.com/localizer/dashboard/frontend/internal/middleware"
	"github.com/localizer/dashboard/shared/validation"
)

// multipartOverhead is the room left for text fields next to an upload.
const multipartOverhead = 1 << 20

// parseForm parses urlencoded and multipart bodies alike, bounding the
// latter by the configured image size.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		maxSize := validation.CalculateMaxRequestSize(h.Dashboard.MaxImageSize, multipartOverhead)
		return validation.ValidateAndParseMultipart(r, w, maxSize)
	}
	return r.ParseForm()
}

// uploadedImage returns the validated upload under field, or nil when the
// form carries none.
func (h *Handler) uploadedImage(r *http.Request, field string) (*dataaccess.File, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	fileHeaders := r.MultipartForm.File[field]
	if len(fileHeaders) == 0 || emptyUpload(fileHeaders[0]) {
		return nil, nil
	}
	img, err := validation.ReadImage(fileHeaders[0], h.Dashboard.MaxImageSize)
	if err != nil {
		return nil, err
	}
	return &dataaccess.File{Name: img.Filename, ContentType: img.MimeType, Data: img.Data}, nil
}

// Browsers send an empty part for an untouched file input.
func emptyUpload(fh *multipart.FileHeader) bool {
	return fh.Filename == "" && fh.Size == 0
}

func idParam(r *http.Request) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	return id, id != ""
}

func recordPath(resource, id string) string {
	return resource + "/" + url.PathEscape(id)
}

func recordKey(key, id string) string {
	return key + ":" + id
}

func formInt(r *http.Request, name string) (int, error) {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(name + " must be a whole number")
	}
	return n, nil
}

func formBool(r *http.Request, name string) bool {
	switch r.FormValue(name) {
	case "1", "on", "true":
		return true
	}
	return false
}

// failMutation ends a failed submit or delete: the navigation policy wins,
// otherwise the error is shown on back.
func (h *Handler) failMutation(w http.ResponseWriter, r *http.Request, nav *navigator, err error, back string) {
	if nav.redirect(r) {
		return
	}
	h.redirectWithFlash(w, r, back, mw.FlashError, errorMessage(err))
}
