package dataaccess

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/localizer/dashboard/frontend/internal/session"
	"github.com/localizer/dashboard/shared/domain"
)

type doCall struct {
	method      string
	path        string
	body        []byte
	contentType string
	token       string
}

// mockDoer drains request bodies so multipart writers finish.
type mockDoer struct {
	mu     sync.Mutex
	calls  []doCall
	DoFunc func(call doCall) ([]byte, error)
}

func (m *mockDoer) Do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	var data []byte
	if body != nil {
		data, _ = io.ReadAll(body)
	}
	call := doCall{method: method, path: path, body: data, contentType: contentType, token: session.Token(ctx)}
	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()
	if m.DoFunc == nil {
		return []byte(`{}`), nil
	}
	return m.DoFunc(call)
}

func (m *mockDoer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockDoer) last() doCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[len(m.calls)-1]
}

type recordingNav struct {
	mu      sync.Mutex
	events  []string
	cleared bool
}

func (n *recordingNav) ClearSession() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cleared = true
	n.events = append(n.events, "clear")
}

func (n *recordingNav) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, "navigate "+path)
}

func withSession(token string) context.Context {
	return session.NewContext(context.Background(), domain.Session{Token: token})
}

func newTestLayer(t *testing.T, doer *mockDoer) *Layer {
	t.Helper()
	old := retryDelay
	retryDelay = 0
	t.Cleanup(func() { retryDelay = old })
	return New(doer, session.Token, NewCache(0), 1)
}
