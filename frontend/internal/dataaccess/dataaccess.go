// Package dataaccess implements the dashboard's generic read, submit and
// delete operations on top of the API client: response caching, request
// body shaping and the uniform 401/403/500 navigation policy.
package dataaccess

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/localizer/dashboard/frontend/internal/apiclient"
	"github.com/localizer/dashboard/shared/logger"
	"github.com/localizer/dashboard/shared/utils"
)

// Doer sends a request to the API and returns the body of a 2xx response.
type Doer interface {
	Do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error)
}

// Layer is shared by all requests; per-request state travels in the context.
type Layer struct {
	client      Doer
	token       apiclient.TokenFunc
	cache       *Cache
	readRetries int
}

// New builds the layer. readRetries is the number of extra attempts a read
// gets after a network failure.
func New(client Doer, token apiclient.TokenFunc, cache *Cache, readRetries int) *Layer {
	if token == nil {
		token = func(context.Context) string { return "" }
	}
	if readRetries < 0 {
		readRetries = 0
	}
	return &Layer{client: client, token: token, cache: cache, readRetries: readRetries}
}

func (l *Layer) Cache() *Cache {
	return l.cache
}

// scope keys cached data by session without keeping the token itself.
func (l *Layer) scope(ctx context.Context) string {
	token := l.token(ctx)
	if token == "" {
		return "anonymous"
	}
	return utils.Fingerprint(token)
}

func (l *Layer) get(ctx context.Context, path string) ([]byte, error) {
	var err error
	for attempt := 0; attempt <= l.readRetries; attempt++ {
		var data []byte
		data, err = l.client.Do(ctx, http.MethodGet, path, nil, "")
		if err == nil {
			return data, nil
		}
		if !apiclient.IsNetworkError(err) || ctx.Err() != nil {
			return nil, err
		}
		if attempt < l.readRetries {
			logger.Log.Debug("retrying read", "path", path, "attempt", attempt+1, "error", err)
			select {
			case <-ctx.Done():
				return nil, err
			case <-time.After(retryDelay):
			}
		}
	}
	return nil, err
}

var retryDelay = 200 * time.Millisecond
