package dataaccess

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/localizer/dashboard/frontend/internal/apiclient"
	"github.com/localizer/dashboard/shared/middleware/metrics"
)

type Status int

const (
	// StatusIdle means not loaded: the query was disabled.
	StatusIdle Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

type Result[T any] struct {
	Data   T
	Status Status
	Err    error
	// Navigated is set when the error policy already redirected the user.
	Navigated bool
}

func (r Result[T]) Loaded() bool {
	return r.Status == StatusSuccess
}

// Query identifies a read. Requests sharing a Key share cached state.
type Query struct {
	Path     string
	Key      string
	Disabled bool
}

// Fetch reads q.Path through the cache and decodes the JSON body into T.
// Concurrent fetches of one key within a session share a single request
// and its decoded value, so Data must be treated as read-only.
func Fetch[T any](ctx context.Context, l *Layer, q Query, nav Navigator) Result[T] {
	var res Result[T]
	if q.Disabled || q.Path == "" {
		return res
	}
	if q.Key == "" {
		q.Key = q.Path
	}

	v, err := l.load(ctx, q, func(data []byte) (any, error) {
		var out T
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", q.Path, err)
		}
		return out, nil
	})
	if err != nil {
		res.Status = StatusError
		res.Err = err
		res.Navigated = ApplyPolicy(err, nav)
		return res
	}
	res.Data = v.(T)
	res.Status = StatusSuccess
	return res
}

// load returns the decoded body of q. Only bodies that decode are cached.
func (l *Layer) load(ctx context.Context, q Query, decode func([]byte) (any, error)) (any, error) {
	scope := l.scope(ctx)
	if data, ok := l.cache.get(q.Key, scope); ok {
		metrics.CacheHit(metricsKey(q.Key))
		return decode(data)
	}
	metrics.CacheMiss(metricsKey(q.Key))

	gen := l.cache.generation(q.Key)
	flight := fmt.Sprintf("%s\x00%s\x00%d", q.Key, scope, gen)
	// The shared request must not die with whichever caller started it.
	reqCtx := apiclient.WithAuthHandled(context.WithoutCancel(ctx))
	v, err, _ := l.cache.group.Do(flight, func() (any, error) {
		data, err := l.get(reqCtx, q.Path)
		if err != nil {
			return nil, err
		}
		decoded, err := decode(data)
		if err != nil {
			return nil, err
		}
		l.cache.set(q.Key, scope, gen, data)
		return decoded, nil
	})
	return v, err
}

// metricsKey strips record ids so "cards:42" is counted as "cards".
func metricsKey(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}
