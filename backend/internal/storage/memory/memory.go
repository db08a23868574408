// Package memory keeps devapi records in process memory. It is the default
// storage when no database is configured.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/localizer/dashboard/backend/internal/service"
	"github.com/localizer/dashboard/shared/domain"
	internal_errors "github.com/localizer/dashboard/shared/errors"
)

// Table is a concurrency-safe collection of one record type. Lists come
// back sorted by compare, ties and a nil compare in insertion order.
type Table[T any] struct {
	mu       sync.RWMutex
	rows     map[domain.ID]row[T]
	seq      uint64
	notFound string
	withID   func(T, domain.ID) T
	compare  func(a, b T) int
}

type row[T any] struct {
	seq    uint64
	record T
}

var _ service.RecordStorage[domain.Card] = (*Table[domain.Card])(nil)

func NewTable[T any](notFound string, withID func(T, domain.ID) T, compare func(a, b T) int) *Table[T] {
	return &Table[T]{
		rows:     make(map[domain.ID]row[T]),
		notFound: notFound,
		withID:   withID,
		compare:  compare,
	}
}

func (t *Table[T]) List(ctx context.Context) ([]T, error) {
	t.mu.RLock()
	rows := make([]row[T], 0, len(t.rows))
	for _, r := range t.rows {
		rows = append(rows, r)
	}
	t.mu.RUnlock()

	slices.SortFunc(rows, func(a, b row[T]) int {
		if t.compare != nil {
			if c := t.compare(a.record, b.record); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.seq, b.seq)
	})
	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = r.record
	}
	return out, nil
}

func (t *Table[T]) Get(ctx context.Context, id domain.ID) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, internal_errors.NotFound(t.notFound)
	}
	return r.record, nil
}

func (t *Table[T]) Insert(ctx context.Context, record T) (T, error) {
	id := domain.ID(uuid.NewString())
	record = t.withID(record, id)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.rows[id] = row[T]{seq: t.seq, record: record}
	return record, nil
}

func (t *Table[T]) Update(ctx context.Context, id domain.ID, record T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, internal_errors.NotFound(t.notFound)
	}
	r.record = t.withID(record, id)
	t.rows[id] = r
	return r.record, nil
}

func (t *Table[T]) Delete(ctx context.Context, id domain.ID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return internal_errors.NotFound(t.notFound)
	}
	delete(t.rows, id)
	return nil
}

func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// Storage holds every devapi collection plus revoked token ids.
type Storage struct {
	Cards    *Table[domain.Card]
	Reviews  *Table[domain.Review]
	Contacts *Table[domain.Contact]

	mu      sync.Mutex
	revoked map[string]time.Time // token id -> token expiry
}

func New() *Storage {
	return &Storage{
		Cards: NewTable("Card not found",
			func(c domain.Card, id domain.ID) domain.Card { c.ID = id; return c },
			compareCards),
		Reviews: NewTable("Review not found",
			func(r domain.Review, id domain.ID) domain.Review { r.ID = id; return r },
			nil),
		Contacts: NewTable("Contact not found",
			func(c domain.Contact, id domain.ID) domain.Contact { c.ID = id; return c },
			func(a, b domain.Contact) int { return b.Date.Compare(a.Date) }),
		revoked: make(map[string]time.Time),
	}
}

func compareCards(a, b domain.Card) int {
	if c := cmp.Compare(a.Order, b.Order); c != 0 {
		return c
	}
	return strings.Compare(a.Title, b.Title)
}

func (s *Storage) RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = expiresAt
	return nil
}

// GetRevokedTokens returns ids of revoked tokens that expire after since.
// Older entries are dropped.
func (s *Storage) GetRevokedTokens(ctx context.Context, since time.Time) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.revoked))
	for id, expiresAt := range s.revoked {
		if expiresAt.Before(since) {
			delete(s.revoked, id)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Storage) Cleanup() error {
	return nil
}
