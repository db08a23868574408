package dataaccess

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/localizer/dashboard/frontend/internal/apiclient"
	"github.com/localizer/dashboard/frontend/internal/session"
	internal_errors "github.com/localizer/dashboard/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutation_SubmitJSON(t *testing.T) {
	doer := &mockDoer{DoFunc: func(doCall) ([]byte, error) { return []byte(`{"id":"9"}`), nil }}
	l := newTestLayer(t, doer)
	ctx := withSession("abc")
	l.Cache().set("cards", l.scope(ctx), 0, []byte(`[]`))

	m := l.NewMutation(map[string]any{"title": "T", "description": "D", "is_active": true}, "cards")
	var got []byte
	m.OnSuccess = func(resp []byte) { got = resp }

	resp, err := m.Submit(ctx, &recordingNav{}, "cards", nil, "")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"9"}`, string(resp))
	assert.Equal(t, resp, got)

	call := doer.last()
	assert.Equal(t, http.MethodPost, call.method)
	assert.Equal(t, "cards", call.path)
	assert.Equal(t, "application/json", call.contentType)
	assert.Equal(t, "abc", call.token)
	var sent map[string]any
	require.NoError(t, json.Unmarshal(call.body, &sent))
	assert.Equal(t, true, sent["is_active"])

	assert.Zero(t, l.Cache().Len(), "configured keys are invalidated")
	assert.False(t, m.Pending())
	assert.NoError(t, m.Err())
}

func TestMutation_Methods(t *testing.T) {
	doer := &mockDoer{}
	l := newTestLayer(t, doer)
	m := l.NewMutation(map[string]any{"name": "N"})

	_, err := m.Submit(withSession("t"), nil, "legislations/3", nil, http.MethodPut)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, doer.last().method)

	_, err = m.Submit(withSession("t"), nil, "legislations/3", nil, http.MethodPatch)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, doer.last().method)

	_, err = m.Submit(withSession("t"), nil, "legislations/3", nil, http.MethodGet)
	assert.Error(t, err)
	assert.Equal(t, 2, doer.count())
}

func TestMutation_ErrorThenPolicy(t *testing.T) {
	tests := []struct {
		status int
		events []string
	}{
		{http.StatusUnauthorized, []string{"on_error", "clear", "navigate /login"}},
		{http.StatusForbidden, []string{"on_error", "navigate /403"}},
		{http.StatusInternalServerError, []string{"on_error", "navigate /error500"}},
		{http.StatusUnprocessableEntity, []string{"on_error"}},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			doer := &mockDoer{DoFunc: func(doCall) ([]byte, error) {
				return nil, internal_errors.New(tt.status, "Title is required")
			}}
			l := newTestLayer(t, doer)
			ctx := withSession("abc")
			l.Cache().set("cards", l.scope(ctx), 0, []byte(`[]`))

			nav := &recordingNav{}
			m := l.NewMutation(map[string]any{"title": ""}, "cards")
			m.OnSuccess = func([]byte) { t.Error("OnSuccess must not run") }
			m.OnError = func(err error) {
				nav.events = append(nav.events, "on_error")
			}

			_, err := m.Submit(ctx, nav, "cards", nil, "")
			assert.Equal(t, tt.status, apiclient.StatusCode(err))
			assert.Equal(t, tt.events, nav.events)
			assert.False(t, m.Pending(), "pending resets immediately on error")
			assert.Equal(t, err, m.Err())
			assert.Equal(t, 1, l.Cache().Len(), "failed submits keep the cache")
		})
	}
}

func TestMutation_TracksLatestCall(t *testing.T) {
	gates := map[string]chan struct{}{"first": make(chan struct{}), "second": make(chan struct{})}
	entered := make(chan string, 2)
	doer := &mockDoer{DoFunc: func(call doCall) ([]byte, error) {
		entered <- call.path
		<-gates[call.path]
		return []byte(`{}`), nil
	}}
	l := newTestLayer(t, doer)
	m := l.NewMutation(map[string]any{"title": "T"})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = m.Submit(withSession("t"), nil, "first", nil, "")
	}()
	<-entered
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = m.Submit(withSession("t"), nil, "second", nil, "")
	}()
	<-entered
	assert.True(t, m.Pending())

	close(gates["first"])
	time.Sleep(20 * time.Millisecond)
	assert.True(t, m.Pending(), "an older call settling does not clear the latest")

	close(gates["second"])
	wg.Wait()
	assert.False(t, m.Pending())
}

func TestDeletion_ReviewScenario(t *testing.T) {
	doer := &mockDoer{DoFunc: func(doCall) ([]byte, error) { return []byte(`{"message":"Deleted"}`), nil }}
	l := newTestLayer(t, doer)
	ctx := withSession("abc")
	l.Cache().set("reviews", l.scope(ctx), 0, []byte(`[]`))
	l.Cache().set("cards", l.scope(ctx), 0, []byte(`[]`))

	d := l.NewDeletion("reviews")
	var notice string
	d.OnSuccess = func(resp []byte) { notice = string(resp) }

	_, err := d.Delete(ctx, &recordingNav{}, "legislations/7")
	require.NoError(t, err)

	call := doer.last()
	assert.Equal(t, http.MethodDelete, call.method)
	assert.Equal(t, "legislations/7", call.path)
	assert.Equal(t, `{"message":"Deleted"}`, notice)
	_, cached := l.Cache().get("reviews", l.scope(ctx))
	assert.False(t, cached)
	_, cached = l.Cache().get("cards", l.scope(ctx))
	assert.True(t, cached, "other keys survive")
}

func TestDeletion_Unauthorized(t *testing.T) {
	doer := &mockDoer{DoFunc: func(doCall) ([]byte, error) {
		return nil, internal_errors.New(http.StatusUnauthorized, "Unauthenticated.")
	}}
	l := newTestLayer(t, doer)
	nav := &recordingNav{}
	d := l.NewDeletion("reviews")
	d.OnError = func(error) { nav.events = append(nav.events, "on_error") }

	_, err := d.Delete(withSession("abc"), nav, "legislations/7")
	assert.Error(t, err)
	assert.Equal(t, []string{"on_error", "clear", "navigate /login"}, nav.events)
	assert.True(t, nav.cleared)
}

// Runs the real client so base routing and multipart headers are covered.
func TestMutation_AgainstServer(t *testing.T) {
	type seen struct{ method, path, contentType, auth string }
	got := make(chan seen, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		got <- seen{r.Method, r.URL.Path, r.Header.Get("Content-Type"), r.Header.Get("Authorization")}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL, time.Second, session.Token)
	l := New(client, session.Token, NewCache(0), 1)
	m := l.NewMutation(map[string]any{"title": "T"})
	m.Form.AddImages(&File{Name: "a.png", ContentType: "image/png", Data: []byte("x")})

	_, err := m.Submit(withSession("abc"), nil, "admin/website/pages/1", nil, http.MethodPut)
	require.NoError(t, err)

	s := <-got
	assert.Equal(t, http.MethodPut, s.method)
	assert.Equal(t, "/api/v3/admin/website/pages/1", s.path)
	assert.Contains(t, s.contentType, "multipart/form-data; boundary=")
	assert.Equal(t, "Bearer abc", s.auth)
}

func TestApplyPolicy_NilNavigator(t *testing.T) {
	assert.False(t, ApplyPolicy(internal_errors.New(http.StatusUnauthorized, "x"), nil))
	assert.False(t, ApplyPolicy(nil, &recordingNav{}))
}
