package service

import (
	"context"

	"github.com/localizer/dashboard/shared/domain"
	"github.com/localizer/dashboard/shared/utils"
)

// RecordStorage persists one kind of record. Get, Update and Delete return a
// 404 ErrorWithStatusCode for unknown ids.
type RecordStorage[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id domain.ID) (T, error)
	Insert(ctx context.Context, record T) (T, error)
	Update(ctx context.Context, id domain.ID, record T) (T, error)
	Delete(ctx context.Context, id domain.ID) error
}

// RecordService is the CRUD surface shared by reviews and contacts.
type RecordService[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id domain.ID) (T, error)
	Create(ctx context.Context, record T) (T, error)
	Update(ctx context.Context, id domain.ID, record T) (T, error)
	Delete(ctx context.Context, id domain.ID) error
}

// Records validates records before handing them to storage. prepare, if
// set, normalises a record first.
type Records[T any] struct {
	storage RecordStorage[T]
	prepare func(*T)
}

var _ RecordService[domain.Review] = (*Records[domain.Review])(nil)

func NewRecords[T any](storage RecordStorage[T], prepare func(*T)) *Records[T] {
	return &Records[T]{storage: storage, prepare: prepare}
}

func (s *Records[T]) List(ctx context.Context) ([]T, error) {
	return s.storage.List(ctx)
}

func (s *Records[T]) Get(ctx context.Context, id domain.ID) (T, error) {
	return s.storage.Get(ctx, id)
}

func (s *Records[T]) Create(ctx context.Context, record T) (T, error) {
	if err := s.check(&record); err != nil {
		var zero T
		return zero, err
	}
	return s.storage.Insert(ctx, record)
}

func (s *Records[T]) Update(ctx context.Context, id domain.ID, record T) (T, error) {
	if err := s.check(&record); err != nil {
		var zero T
		return zero, err
	}
	return s.storage.Update(ctx, id, record)
}

func (s *Records[T]) Delete(ctx context.Context, id domain.ID) error {
	return s.storage.Delete(ctx, id)
}

func (s *Records[T]) check(record *T) error {
	if s.prepare != nil {
		s.prepare(record)
	}
	return utils.Validate(record)
}
