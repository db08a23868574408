package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/localizer/dashboard/backend/internal/service"
	"github.com/localizer/dashboard/shared/api"
	"github.com/localizer/dashboard/shared/domain"
	internal_errors "github.com/localizer/dashboard/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCards(t *testing.T) {
	d := newTestDeps()
	d.cards.MockList = func(context.Context) ([]domain.Card, error) {
		return []domain.Card{{ID: "1", Title: "A", IsActive: true}}, nil
	}

	rr := serve(t, d.router(), httptest.NewRequest(http.MethodGet, "/cards", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	cards := decodeBody[[]domain.Card](t, rr)
	require.Len(t, cards, 1)
	assert.Equal(t, "A", cards[0].Title)
	assert.True(t, cards[0].IsActive.Bool())
}

func TestCreateCard(t *testing.T) {
	t.Run("json body", func(t *testing.T) {
		d := newTestDeps()
		var got domain.Card
		var gotPreview *service.Upload
		d.cards.MockCreate = func(ctx context.Context, card domain.Card, preview *service.Upload) (domain.Card, error) {
			got, gotPreview = card, preview
			card.ID = "7"
			return card, nil
		}

		rr := serve(t, d.router(), jsonRequest(http.MethodPost, "/cards",
			`{"title":"T","description":"D","is_active":true,"is_coming_soon":false,"order":2,"type":"company"}`))

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, domain.ID("7"), decodeBody[domain.Card](t, rr).ID)
		assert.Equal(t, "T", got.Title)
		assert.Equal(t, 2, got.Order)
		assert.True(t, got.IsActive.Bool())
		assert.Nil(t, gotPreview)
	})

	t.Run("multipart body with preview", func(t *testing.T) {
		d := newTestDeps()
		var got domain.Card
		var previewData []byte
		var previewName string
		d.cards.MockCreate = func(ctx context.Context, card domain.Card, preview *service.Upload) (domain.Card, error) {
			got = card
			require.NotNil(t, preview)
			previewName = preview.Filename
			previewData, _ = io.ReadAll(preview.Data)
			return card, nil
		}
		img := pngBytes(t)

		rr := serve(t, d.router(), multipartRequest(t, http.MethodPost, "/cards", map[string]string{
			"title":          "T",
			"description":    "D",
			"is_active":      "1",
			"is_coming_soon": "0",
			"order":          "3",
			"type":           "government",
		}, filePart{field: previewField, filename: "preview.png", contentType: "image/png", data: img}))

		assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		assert.True(t, got.IsActive.Bool())
		assert.False(t, got.IsComingSoon.Bool())
		assert.Equal(t, 3, got.Order)
		assert.Equal(t, domain.CardTypeGovernment, got.Type)
		assert.Equal(t, "preview.png", previewName)
		assert.Equal(t, img, previewData)
	})

	tests := []struct {
		name   string
		file   filePart
		fields map[string]string
		status int
	}{
		{
			name:   "not an image",
			fields: map[string]string{"title": "T"},
			file:   filePart{field: previewField, filename: "a.txt", contentType: "text/plain", data: []byte("hello")},
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "image that does not decode",
			fields: map[string]string{"title": "T"},
			file:   filePart{field: previewField, filename: "a.png", contentType: "image/png", data: []byte("not png")},
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "order is not a number",
			fields: map[string]string{"title": "T", "order": "first"},
			file:   filePart{field: "other", filename: "a.png", contentType: "image/png", data: []byte("x")},
			status: http.StatusUnprocessableEntity,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps()
			d.cards.MockCreate = func(context.Context, domain.Card, *service.Upload) (domain.Card, error) {
				t.Fatal("service must not be called")
				return domain.Card{}, nil
			}

			rr := serve(t, d.router(), multipartRequest(t, http.MethodPost, "/cards", tt.fields, tt.file))

			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
			assert.NotEmpty(t, errorMessage(t, rr))
		})
	}

	t.Run("oversized preview", func(t *testing.T) {
		d := newTestDeps()
		big := make([]byte, testMaxUpload+1)

		rr := serve(t, d.router(), multipartRequest(t, http.MethodPost, "/cards", nil,
			filePart{field: previewField, filename: "a.png", contentType: "image/png", data: big}))

		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	})
}

func TestUpdateCard(t *testing.T) {
	d := newTestDeps()
	var gotID domain.ID
	d.cards.MockUpdate = func(ctx context.Context, id domain.ID, card domain.Card, preview *service.Upload) (domain.Card, error) {
		gotID = id
		if id == "missing" {
			return domain.Card{}, internal_errors.NotFound("Card not found")
		}
		card.ID = id
		return card, nil
	}
	router := d.router()

	rr := serve(t, router, jsonRequest(http.MethodPut, "/cards/5", `{"title":"T","preview_url":"cards/a.png"}`))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.ID("5"), gotID)
	assert.Equal(t, "cards/a.png", decodeBody[domain.Card](t, rr).PreviewURL)

	rr = serve(t, router, jsonRequest(http.MethodPut, "/cards/missing", `{"title":"T"}`))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteCard(t *testing.T) {
	d := newTestDeps()
	var deleted domain.ID
	d.cards.MockDelete = func(ctx context.Context, id domain.ID) error {
		deleted = id
		return nil
	}

	rr := serve(t, d.router(), httptest.NewRequest(http.MethodDelete, "/cards/5", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.ID("5"), deleted)
	assert.Equal(t, "Card deleted", decodeBody[api.MessageResponse](t, rr).Message)
}
