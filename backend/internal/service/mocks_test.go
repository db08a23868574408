package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/localizer/dashboard/shared/domain"
	internal_errors "github.com/localizer/dashboard/shared/errors"
)

// MockRecordStorage answers from Records unless a function field is set.
type MockRecordStorage[T any] struct {
	Records map[domain.ID]T

	ListFunc   func(ctx context.Context) ([]T, error)
	GetFunc    func(ctx context.Context, id domain.ID) (T, error)
	InsertFunc func(ctx context.Context, record T) (T, error)
	UpdateFunc func(ctx context.Context, id domain.ID, record T) (T, error)
	DeleteFunc func(ctx context.Context, id domain.ID) error

	inserted []T
	updated  []T
	deleted  []domain.ID
}

func (m *MockRecordStorage[T]) List(ctx context.Context) ([]T, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	out := make([]T, 0, len(m.Records))
	for _, r := range m.Records {
		out = append(out, r)
	}
	return out, nil
}

func (m *MockRecordStorage[T]) Get(ctx context.Context, id domain.ID) (T, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	r, ok := m.Records[id]
	if !ok {
		var zero T
		return zero, internal_errors.NotFound("Record not found")
	}
	return r, nil
}

func (m *MockRecordStorage[T]) Insert(ctx context.Context, record T) (T, error) {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, record)
	}
	m.inserted = append(m.inserted, record)
	return record, nil
}

func (m *MockRecordStorage[T]) Update(ctx context.Context, id domain.ID, record T) (T, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, record)
	}
	m.updated = append(m.updated, record)
	return record, nil
}

func (m *MockRecordStorage[T]) Delete(ctx context.Context, id domain.ID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.deleted = append(m.deleted, id)
	return nil
}

// MockMediaStorage keeps files in memory.
type MockMediaStorage struct {
	files   map[string][]byte
	deleted []string
	saveErr error
}

func newMockMediaStorage() *MockMediaStorage {
	return &MockMediaStorage{files: make(map[string][]byte)}
}

func (m *MockMediaStorage) SaveFile(fileData io.Reader, folder, originalFilename string) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	data, err := io.ReadAll(fileData)
	if err != nil {
		return "", err
	}
	p := folder + "/" + originalFilename
	m.files[p] = data
	return p, nil
}

func (m *MockMediaStorage) Read(filePath string) (io.ReadCloser, error) {
	data, ok := m.files[filePath]
	if !ok {
		return nil, errors.New("file not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MockMediaStorage) DeleteFile(filePath string) error {
	m.deleted = append(m.deleted, filePath)
	delete(m.files, filePath)
	return nil
}

func (m *MockMediaStorage) Owns(filePath string) bool {
	return filePath != "" && !strings.Contains(filePath, "://")
}
