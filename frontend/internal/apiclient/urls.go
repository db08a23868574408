package apiclient

import (
	"regexp"
	"strings"
)

// Bases are the roots derived from the configured API address.
type Bases struct {
	API     string // .../api/
	Website string // .../api/v3/
	Storage string // .../storage/
}

// ResolveBases normalises raw: surrounding space and trailing slashes are
// dropped and "/api" is appended when missing.
func ResolveBases(raw string) Bases {
	root := strings.TrimRight(strings.TrimSpace(raw), "/")
	root = strings.TrimSuffix(root, "/api")
	return Bases{
		API:     root + "/api/",
		Website: root + "/api/v3/",
		Storage: root + "/storage/",
	}
}

var absoluteURL = regexp.MustCompile(`(?i)^https?://`)

// StorageURL turns a stored file path into an absolute URL. Absolute URLs
// are kept, paths already starting with "storage/" are not prefixed twice,
// and an empty path yields fallback.
func (c *APIClient) StorageURL(path, fallback string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return fallback
	}
	if absoluteURL.MatchString(trimmed) {
		return trimmed
	}
	sanitized := strings.TrimLeft(trimmed, "/")
	if strings.HasPrefix(sanitized, "storage/") {
		return strings.TrimSuffix(c.StorageBase, "storage/") + sanitized
	}
	return c.StorageBase + sanitized
}
