package handler

import (
	"bytes"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/localizer/dashboard/frontend/internal/apiclient"
	"github.com/localizer/dashboard/frontend/internal/dataaccess"
	"github.com/localizer/dashboard/frontend/internal/markdown"
	mw "github.com/localizer/dashboard/frontend/internal/middleware"
	"github.com/localizer/dashboard/frontend/internal/session"
	"github.com/localizer/dashboard/frontend/templates"
	"github.com/localizer/dashboard/shared/config"
	"github.com/stretchr/testify/require"
)

type apiCall struct {
	Method      string
	Path        string
	ContentType string
	Auth        string
	Body        []byte
}

// stubAPI stands in for the remote API. Unregistered routes answer 404.
type stubAPI struct {
	mu     sync.Mutex
	calls  []apiCall
	routes map[string]http.HandlerFunc
}

func (s *stubAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))

	s.mu.Lock()
	s.calls = append(s.calls, apiCall{
		Method:      r.Method,
		Path:        r.URL.Path,
		ContentType: r.Header.Get("Content-Type"),
		Auth:        r.Header.Get("Authorization"),
		Body:        body,
	})
	route := s.routes[r.Method+" "+r.URL.Path]
	s.mu.Unlock()

	if route == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not found"}`))
		return
	}
	route(w, r)
}

func (s *stubAPI) on(method, path string, fn http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[method+" "+path] = fn
}

func (s *stubAPI) json(method, path string, status int, body string) {
	s.on(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func (s *stubAPI) count(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func (s *stubAPI) last(method, path string) (apiCall, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.calls) - 1; i >= 0; i-- {
		if c := s.calls[i]; c.Method == method && c.Path == path {
			return c, true
		}
	}
	return apiCall{}, false
}

type testEnv struct {
	api    *stubAPI
	h      *Handler
	router http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	api := &stubAPI{routes: make(map[string]http.HandlerFunc)}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	tmpls, err := templates.Load(templates.FS)
	require.NoError(t, err)

	sessions := session.NewStore(false, 0)
	fallback := mw.NewUnauthorizedFallback(sessions, false)
	client := apiclient.New(srv.URL, 5*time.Second, session.Token)
	client.OnUnauthorized(fallback.Hook)
	data := dataaccess.New(client, session.Token, dataaccess.NewCache(time.Minute), 0)

	cfg := config.Dashboard{
		LogoutPath:   "logout",
		ContactsPath: "contacts",
		MaxImageSize: 1 << 20,
	}
	h := New(tmpls, cfg, markdown.New(), client, data, sessions)

	r := chi.NewRouter()
	r.Use(sessions.Middleware)
	r.Use(fallback.Middleware)
	r.Get("/login", h.LoginGetHandler)
	r.Post("/login", h.LoginPostHandler)
	r.Get("/403", h.ForbiddenHandler)
	r.Get("/error500", h.ServerErrorHandler)
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireSession)
		r.Get("/logout", h.LogoutGetHandler)
		r.Post("/logout", h.LogoutPostHandler)
		r.Get("/dashboard", h.DashboardGetHandler)
		r.Get("/cards", h.CardsGetHandler)
		r.Post("/cards", h.CardsPostHandler)
		r.Post("/cards/{id}", h.CardUpdateHandler)
		r.Get("/cards/{id}/delete", h.CardDeleteGetHandler)
		r.Post("/cards/{id}/delete", h.CardDeletePostHandler)
		r.Get("/reviews", h.ReviewsGetHandler)
		r.Post("/reviews", h.ReviewsPostHandler)
		r.Post("/reviews/{id}", h.ReviewUpdateHandler)
		r.Get("/reviews/{id}/delete", h.ReviewDeleteGetHandler)
		r.Post("/reviews/{id}/delete", h.ReviewDeletePostHandler)
		r.Get("/contacts", h.ContactsGetHandler)
	})

	return &testEnv{api: api, h: h, router: r}
}

// serve runs req with the session token set, if any.
func (e *testEnv) serve(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func responseCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func flashMessage(t *testing.T, rr *httptest.ResponseRecorder, name string) string {
	t.Helper()
	c := responseCookie(rr, name)
	if c == nil || c.MaxAge < 0 {
		return ""
	}
	decoded, err := base64.StdEncoding.DecodeString(c.Value)
	require.NoError(t, err)
	return string(decoded)
}
