package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/localizer/dashboard/backend/internal/service"
	"github.com/localizer/dashboard/shared/api"
	"github.com/localizer/dashboard/shared/domain"
	internal_errors "github.com/localizer/dashboard/shared/errors"
	"github.com/localizer/dashboard/shared/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockAuthService struct {
	MockLogin  func(ctx context.Context, creds api.LoginRequest) (string, domain.User, error)
	MockLogout func(ctx context.Context, claims *jwt.Claims) error
}

func (m *MockAuthService) Login(ctx context.Context, creds api.LoginRequest) (string, domain.User, error) {
	if m.MockLogin != nil {
		return m.MockLogin(ctx, creds)
	}
	return "token", domain.User{ID: "1"}, nil
}

func (m *MockAuthService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if m.MockLogout != nil {
		return m.MockLogout(ctx, claims)
	}
	return nil
}

type MockCardService struct {
	MockList   func(ctx context.Context) ([]domain.Card, error)
	MockGet    func(ctx context.Context, id domain.ID) (domain.Card, error)
	MockCreate func(ctx context.Context, card domain.Card, preview *service.Upload) (domain.Card, error)
	MockUpdate func(ctx context.Context, id domain.ID, card domain.Card, preview *service.Upload) (domain.Card, error)
	MockDelete func(ctx context.Context, id domain.ID) error
}

func (m *MockCardService) List(ctx context.Context) ([]domain.Card, error) {
	if m.MockList != nil {
		return m.MockList(ctx)
	}
	return []domain.Card{}, nil
}

func (m *MockCardService) Get(ctx context.Context, id domain.ID) (domain.Card, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, id)
	}
	return domain.Card{ID: id}, nil
}

func (m *MockCardService) Create(ctx context.Context, card domain.Card, preview *service.Upload) (domain.Card, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, card, preview)
	}
	card.ID = "new"
	return card, nil
}

func (m *MockCardService) Update(ctx context.Context, id domain.ID, card domain.Card, preview *service.Upload) (domain.Card, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(ctx, id, card, preview)
	}
	card.ID = id
	return card, nil
}

func (m *MockCardService) Delete(ctx context.Context, id domain.ID) error {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, id)
	}
	return nil
}

type MockRecordService[T any] struct {
	MockList   func(ctx context.Context) ([]T, error)
	MockGet    func(ctx context.Context, id domain.ID) (T, error)
	MockCreate func(ctx context.Context, record T) (T, error)
	MockUpdate func(ctx context.Context, id domain.ID, record T) (T, error)
	MockDelete func(ctx context.Context, id domain.ID) error
}

func (m *MockRecordService[T]) List(ctx context.Context) ([]T, error) {
	if m.MockList != nil {
		return m.MockList(ctx)
	}
	return []T{}, nil
}

func (m *MockRecordService[T]) Get(ctx context.Context, id domain.ID) (T, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, id)
	}
	var zero T
	return zero, nil
}

func (m *MockRecordService[T]) Create(ctx context.Context, record T) (T, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, record)
	}
	return record, nil
}

func (m *MockRecordService[T]) Update(ctx context.Context, id domain.ID, record T) (T, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(ctx, id, record)
	}
	return record, nil
}

func (m *MockRecordService[T]) Delete(ctx context.Context, id domain.ID) error {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, id)
	}
	return nil
}

type MockHealth struct {
	err error
}

func (m *MockHealth) Ping(ctx context.Context) error {
	return m.err
}

// --- Helpers ---

const testMaxUpload = 1 << 20

type testDeps struct {
	auth     *MockAuthService
	cards    *MockCardService
	reviews  *MockRecordService[domain.Review]
	contacts *MockRecordService[domain.Contact]
	health   *MockHealth
}

func newTestDeps() *testDeps {
	return &testDeps{
		auth:     &MockAuthService{},
		cards:    &MockCardService{},
		reviews:  &MockRecordService[domain.Review]{},
		contacts: &MockRecordService[domain.Contact]{},
		health:   &MockHealth{},
	}
}

// router mounts the handlers without the auth middleware.
func (d *testDeps) router() http.Handler {
	h := New(d.auth, d.cards, d.reviews, d.contacts, d.health, testMaxUpload)
	r := chi.NewRouter()
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/user", h.Me)
	r.Get("/cards", h.ListCards)
	r.Post("/cards", h.CreateCard)
	r.Get("/cards/{id}", h.GetCard)
	r.Put("/cards/{id}", h.UpdateCard)
	r.Delete("/cards/{id}", h.DeleteCard)
	r.Get("/legislations", h.ListReviews)
	r.Post("/legislations", h.CreateReview)
	r.Get("/legislations/{id}", h.GetReview)
	r.Put("/legislations/{id}", h.UpdateReview)
	r.Delete("/legislations/{id}", h.DeleteReview)
	r.Get("/contacts", h.ListContacts)
	r.Post("/contacts", h.CreateContact)
	r.Get("/contacts/{id}", h.GetContact)
	r.Delete("/contacts/{id}", h.DeleteContact)
	return r
}

func serve(t *testing.T, handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[api.ErrorResponse](t, rr).Message
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type filePart struct {
	field, filename, contentType string
	data                         []byte
}

func multipartRequest(t *testing.T, method, path string, fields map[string]string, files ...filePart) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		h := make(map[string][]string)
		h["Content-Disposition"] = []string{`form-data; name="` + f.field + `"; filename="` + f.filename + `"`}
		h["Content-Type"] = []string{f.contentType}
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

// --- Tests ---

func TestHealthAndReady(t *testing.T) {
	d := newTestDeps()
	router := d.router()

	assert.Equal(t, http.StatusOK, serve(t, router, httptest.NewRequest(http.MethodGet, "/health", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(t, router, httptest.NewRequest(http.MethodGet, "/ready", nil)).Code)

	d.health.err = io.ErrUnexpectedEOF
	rr := serve(t, router, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestRecordErrorsAreJSON(t *testing.T) {
	d := newTestDeps()
	d.reviews.MockGet = func(ctx context.Context, id domain.ID) (domain.Review, error) {
		return domain.Review{}, internal_errors.NotFound("Review not found")
	}

	rr := serve(t, d.router(), httptest.NewRequest(http.MethodGet, "/legislations/9", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "Review not found", errorMessage(t, rr))
}
