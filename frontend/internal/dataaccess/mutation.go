package dataaccess

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/localizer/dashboard/frontend/internal/apiclient"
	"github.com/localizer/dashboard/shared/logger"
)

// Mutation submits a Form as a create or update. Only the latest Submit is
// tracked as pending; there is no queueing and no retry.
type Mutation struct {
	layer *Layer
	Form  *Form
	// Invalidates lists cache keys dropped after a successful submit.
	Invalidates []string
	OnSuccess   func(response []byte)
	OnError     func(err error)

	mu      sync.Mutex
	gen     uint64
	pending bool
	lastErr error
}

func (l *Layer) NewMutation(initial map[string]any, invalidates ...string) *Mutation {
	return &Mutation{layer: l, Form: NewForm(initial), Invalidates: invalidates}
}

// Submit sends the form (or data, when not nil) to path. method is POST,
// PUT or PATCH; empty means POST. The error policy runs after OnError.
func (m *Mutation) Submit(ctx context.Context, nav Navigator, path string, data map[string]any, method string) ([]byte, error) {
	switch method {
	case "":
		method = http.MethodPost
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		return nil, fmt.Errorf("unsupported submit method %q", method)
	}

	reader, contentType, err := m.Form.Shape(data).Encode()
	if err != nil {
		return nil, err
	}

	gen := m.begin()
	resp, err := m.layer.client.Do(apiclient.WithAuthHandled(ctx), method, path, reader, contentType)
	if err != nil {
		logger.Log.Debug("submit failed", "method", method, "path", path, "error", err)
		if m.OnError != nil {
			m.OnError(err)
		}
		m.end(gen, err)
		ApplyPolicy(err, nav)
		return nil, err
	}

	m.layer.cache.Invalidate(m.Invalidates...)
	m.end(gen, nil)
	if m.OnSuccess != nil {
		m.OnSuccess(resp)
	}
	return resp, nil
}

func (m *Mutation) begin() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	m.pending = true
	m.lastErr = nil
	return m.gen
}

// end settles the call unless a newer one has started since.
func (m *Mutation) end(gen uint64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return
	}
	m.pending = false
	m.lastErr = err
}

func (m *Mutation) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending
}

// Err is the error of the latest settled call.
func (m *Mutation) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Deletion removes a record and invalidates the given keys on success.
type Deletion struct {
	layer       *Layer
	Invalidates []string
	OnSuccess   func(response []byte)
	OnError     func(err error)
}

func (l *Layer) NewDeletion(invalidates ...string) *Deletion {
	return &Deletion{layer: l, Invalidates: invalidates}
}

func (d *Deletion) Delete(ctx context.Context, nav Navigator, path string) ([]byte, error) {
	resp, err := d.layer.client.Do(apiclient.WithAuthHandled(ctx), http.MethodDelete, path, nil, "")
	if err != nil {
		logger.Log.Debug("delete failed", "path", path, "error", err)
		if d.OnError != nil {
			d.OnError(err)
		}
		ApplyPolicy(err, nav)
		return nil, err
	}
	d.layer.cache.Invalidate(d.Invalidates...)
	if d.OnSuccess != nil {
		d.OnSuccess(resp)
	}
	return resp, nil
}
