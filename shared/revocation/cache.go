package revocation

import (
	"context"
	"sync"
	"time"

	"github.com/localizer/dashboard/shared/logger"
)

// CacheStorage is the read side needed to repopulate the cache.
type CacheStorage interface {
	GetRevokedTokens(ctx context.Context, since time.Time) ([]string, error)
}

// Cache keeps ids of tokens revoked by logout. Entries older than the
// token TTL are dropped on refresh since such tokens have expired anyway.
type Cache struct {
	storage        CacheStorage
	cache          map[string]time.Time
	mu             sync.RWMutex
	jwtTTL         time.Duration
	lastUpdateTime time.Time
}

func NewCache(storage CacheStorage, jwtTTL time.Duration) *Cache {
	return &Cache{
		storage: storage,
		cache:   make(map[string]time.Time),
		jwtTTL:  jwtTTL,
	}
}

// Update reloads revocations within (TTL + 10%) to tolerate clock skew.
func (c *Cache) Update(ctx context.Context) error {
	since := time.Now().Add(-time.Duration(float64(c.jwtTTL) * 1.1))

	ids, err := c.storage.GetRevokedTokens(ctx, since)
	if err != nil {
		return err
	}

	now := time.Now()
	newCache := make(map[string]time.Time, len(ids))
	for _, id := range ids {
		newCache[id] = now
	}

	c.mu.Lock()
	// Keep local revocations the storage has not caught up with yet.
	for id, at := range c.cache {
		if _, ok := newCache[id]; !ok && at.After(since) && at.After(c.lastUpdateTime) {
			newCache[id] = at
		}
	}
	c.cache = newCache
	c.lastUpdateTime = now
	c.mu.Unlock()

	logger.Log.Debug("revocation cache updated",
		"component", "revocation_cache",
		"entries", len(newCache),
		"since", since.Format(time.RFC3339))
	return nil
}

// Add marks a token id revoked without waiting for the next refresh.
func (c *Cache) Add(tokenID string) {
	c.mu.Lock()
	c.cache[tokenID] = time.Now()
	c.mu.Unlock()
}

func (c *Cache) IsRevoked(tokenID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.cache[tokenID]
	return ok
}

// StartBackgroundUpdate refreshes the cache every interval until ctx is done.
func (c *Cache) StartBackgroundUpdate(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	logger.Log.Info("started revocation cache background updates",
		"component", "revocation_cache",
		"interval", interval,
		"jwt_ttl", c.jwtTTL)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := c.Update(ctx); err != nil {
					logger.Log.Error("revocation cache update failed",
						"component", "revocation_cache",
						"error", err)
				}
			case <-ctx.Done():
				logger.Log.Info("revocation cache shutting down",
					"component", "revocation_cache")
				return
			}
		}
	}()
}
