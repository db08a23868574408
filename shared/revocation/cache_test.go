package revocation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStorage struct {
	mu    sync.Mutex
	ids   []string
	err   error
	calls int
	since time.Time
}

func (m *mockStorage) GetRevokedTokens(ctx context.Context, since time.Time) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.since = since
	if m.err != nil {
		return nil, m.err
	}
	return append([]string(nil), m.ids...), nil
}

func (m *mockStorage) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestCache_Update(t *testing.T) {
	t.Run("loads revoked ids", func(t *testing.T) {
		storage := &mockStorage{ids: []string{"a", "b"}}
		cache := NewCache(storage, time.Hour)

		require.NoError(t, cache.Update(context.Background()))
		assert.True(t, cache.IsRevoked("a"))
		assert.True(t, cache.IsRevoked("b"))
		assert.False(t, cache.IsRevoked("c"))
		assert.WithinDuration(t, time.Now().Add(-66*time.Minute), storage.since, 5*time.Second)
	})

	t.Run("storage error keeps previous state", func(t *testing.T) {
		storage := &mockStorage{ids: []string{"a"}}
		cache := NewCache(storage, time.Hour)
		require.NoError(t, cache.Update(context.Background()))

		storage.err = assert.AnError
		assert.Error(t, cache.Update(context.Background()))
		assert.True(t, cache.IsRevoked("a"))
	})

	t.Run("local revocation survives refresh", func(t *testing.T) {
		storage := &mockStorage{}
		cache := NewCache(storage, time.Hour)
		require.NoError(t, cache.Update(context.Background()))

		cache.Add("fresh")
		require.NoError(t, cache.Update(context.Background()))
		assert.True(t, cache.IsRevoked("fresh"))
	})
}

func TestCache_StartBackgroundUpdate(t *testing.T) {
	storage := &mockStorage{ids: []string{"x"}}
	cache := NewCache(storage, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cache.StartBackgroundUpdate(ctx, 10*time.Millisecond)

	assert.Eventually(t, func() bool { return cache.IsRevoked("x") }, time.Second, 5*time.Millisecond)
	cancel()
	time.Sleep(30 * time.Millisecond)
	calls := storage.callCount()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, calls, storage.callCount(), "no refresh after cancel")
}
