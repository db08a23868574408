package service

import (
	"context"
	"io"
	"strings"

	"github.com/localizer/dashboard/shared/domain"
	"github.com/localizer/dashboard/shared/logger"
	"github.com/localizer/dashboard/shared/utils"
)

const cardPreviewFolder = "cards"

// Upload is an already validated preview image.
type Upload struct {
	Filename string
	Data     io.Reader
}

type CardService interface {
	List(ctx context.Context) ([]domain.Card, error)
	Get(ctx context.Context, id domain.ID) (domain.Card, error)
	Create(ctx context.Context, card domain.Card, preview *Upload) (domain.Card, error)
	Update(ctx context.Context, id domain.ID, card domain.Card, preview *Upload) (domain.Card, error)
	Delete(ctx context.Context, id domain.ID) error
}

// Card stores cards and owns their preview files: a replaced or deleted
// card's stored preview is removed.
type Card struct {
	storage RecordStorage[domain.Card]
	media   MediaStorage
}

func NewCard(storage RecordStorage[domain.Card], media MediaStorage) *Card {
	return &Card{storage: storage, media: media}
}

func (c *Card) List(ctx context.Context) ([]domain.Card, error) {
	return c.storage.List(ctx)
}

func (c *Card) Get(ctx context.Context, id domain.ID) (domain.Card, error) {
	return c.storage.Get(ctx, id)
}

func (c *Card) Create(ctx context.Context, card domain.Card, preview *Upload) (domain.Card, error) {
	if err := prepareCard(&card); err != nil {
		return domain.Card{}, err
	}

	saved, err := c.savePreview(preview)
	if err != nil {
		return domain.Card{}, err
	}
	if saved != "" {
		card.PreviewURL = saved
	}

	created, err := c.storage.Insert(ctx, card)
	if err != nil {
		c.discard(saved)
		return domain.Card{}, err
	}
	return created, nil
}

func (c *Card) Update(ctx context.Context, id domain.ID, card domain.Card, preview *Upload) (domain.Card, error) {
	if err := prepareCard(&card); err != nil {
		return domain.Card{}, err
	}

	current, err := c.storage.Get(ctx, id)
	if err != nil {
		return domain.Card{}, err
	}

	saved, err := c.savePreview(preview)
	if err != nil {
		return domain.Card{}, err
	}
	if saved != "" {
		card.PreviewURL = saved
	}

	updated, err := c.storage.Update(ctx, id, card)
	if err != nil {
		c.discard(saved)
		return domain.Card{}, err
	}
	if current.PreviewURL != updated.PreviewURL {
		c.discard(current.PreviewURL)
	}
	return updated, nil
}

func (c *Card) Delete(ctx context.Context, id domain.ID) error {
	current, err := c.storage.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := c.storage.Delete(ctx, id); err != nil {
		return err
	}
	c.discard(current.PreviewURL)
	return nil
}

func (c *Card) savePreview(preview *Upload) (string, error) {
	if preview == nil {
		return "", nil
	}
	p, err := c.media.SaveFile(preview.Data, cardPreviewFolder, preview.Filename)
	if err != nil {
		logger.Log.Error("failed to save card preview", "filename", preview.Filename, "error", err)
		return "", err
	}
	return p, nil
}

// discard removes a preview this service stored. Failures only get logged.
func (c *Card) discard(p string) {
	if p == "" || !c.media.Owns(p) {
		return
	}
	if err := c.media.DeleteFile(p); err != nil {
		logger.Log.Warn("failed to delete card preview", "path", p, "error", err)
	}
}

func prepareCard(card *domain.Card) error {
	card.ID = ""
	card.Title = strings.TrimSpace(card.Title)
	card.Subtitle = strings.TrimSpace(card.Subtitle)
	card.Description = strings.TrimSpace(card.Description)
	card.Link = strings.TrimSpace(card.Link)
	card.Badge = strings.TrimSpace(card.Badge)
	card.PreviewURL = strings.TrimSpace(card.PreviewURL)
	return utils.Validate(card)
}
