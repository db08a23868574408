package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	internal_errors "github.com/localizer/dashboard/shared/errors"
	"github.com/localizer/dashboard/shared/logger"
	"github.com/localizer/dashboard/shared/middleware/metrics"
)

// WebsitePrefix marks paths served by the website API (/api/v3).
const WebsitePrefix = "admin/website/"

const maxResponseSize = 10 << 20

// TokenFunc returns the bearer token of the session carried by ctx, or "".
type TokenFunc func(ctx context.Context) string

// APIClient handles all communication with the remote API.
type APIClient struct {
	BaseURL     string
	WebsiteURL  string
	StorageBase string
	HttpClient  *http.Client

	token          TokenFunc
	onUnauthorized func(ctx context.Context)
}

// New creates a client for the API at baseURL. Every request is bounded by timeout.
func New(baseURL string, timeout time.Duration, token TokenFunc) *APIClient {
	bases := ResolveBases(baseURL)
	if token == nil {
		token = func(context.Context) string { return "" }
	}
	return &APIClient{
		BaseURL:     bases.API,
		WebsiteURL:  bases.Website,
		StorageBase: bases.Storage,
		HttpClient:  &http.Client{Timeout: timeout},
		token:       token,
	}
}

// OnUnauthorized registers the last-resort hook for 401 responses to
// requests whose caller did not claim 401 handling (see WithAuthHandled).
func (c *APIClient) OnUnauthorized(fn func(ctx context.Context)) {
	c.onUnauthorized = fn
}

type authHandledKey struct{}

// WithAuthHandled marks requests made with ctx as owning their 401 handling,
// which disables the transport fallback for them.
func WithAuthHandled(ctx context.Context) context.Context {
	return context.WithValue(ctx, authHandledKey{}, true)
}

func authHandled(ctx context.Context) bool {
	handled, _ := ctx.Value(authHandledKey{}).(bool)
	return handled
}

// URL resolves a relative path against the API base it belongs to.
func (c *APIClient) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	path = strings.TrimLeft(path, "/")
	if strings.HasPrefix(path, WebsitePrefix) {
		return c.WebsiteURL + path
	}
	return c.BaseURL + path
}

// Do sends a request and returns the body of a 2xx response. contentType
// defaults to JSON; multipart callers pass the header carrying the boundary.
// Failures are *NetworkError or *errors.ErrorWithStatusCode.
func (c *APIClient) Do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	url := c.URL(path)
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create API request: %w", err)
	}
	if contentType == "" {
		contentType = "application/json"
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", contentType)
	if token := c.token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.HttpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(method, 0, time.Since(start))
		logger.Log.Warn("api request failed", "method", method, "url", url, "error", err)
		return nil, &NetworkError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()
	metrics.ObserveUpstream(method, resp.StatusCode, time.Since(start))

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &NetworkError{Method: method, URL: url, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized && !authHandled(ctx) && c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return nil, statusError(resp.StatusCode, data)
	}
	return data, nil
}

// statusError builds the error for a non-2xx response, preferring the
// server's own message.
func statusError(status int, payload []byte) *internal_errors.ErrorWithStatusCode {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	message := ""
	if json.Unmarshal(payload, &body) == nil {
		message = body.Message
		if message == "" {
			message = body.Error
		}
	}
	if message == "" {
		message = fmt.Sprintf("Request failed: %d %s", status, http.StatusText(status))
	}
	return &internal_errors.ErrorWithStatusCode{Message: message, StatusCode: status, Payload: payload}
}
