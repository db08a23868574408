package dataaccess

import (
	"context"
	"sync"
	"time"

	"github.com/localizer/dashboard/shared/logger"
	"golang.org/x/sync/singleflight"
)

type entry struct {
	data    []byte
	expires time.Time
}

// Cache holds raw response bodies by cache key and session scope. Every
// invalidation bumps the key's generation so in-flight loads that started
// earlier cannot store stale data.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]map[string]entry
	gens    map[string]uint64
	group   singleflight.Group
	now     func() time.Time
}

// NewCache creates a cache whose entries live for ttl; zero keeps them
// until invalidated.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]map[string]entry),
		gens:    make(map[string]uint64),
		now:     time.Now,
	}
}

func (c *Cache) get(key, scope string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key][scope]
	if !ok {
		return nil, false
	}
	if c.expired(e) {
		delete(c.entries[key], scope)
		return nil, false
	}
	return e.data, true
}

func (c *Cache) generation(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[key]
}

// set stores data unless key was invalidated after gen was read.
func (c *Cache) set(key, scope string, gen uint64, data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[key] != gen {
		return false
	}
	scoped, ok := c.entries[key]
	if !ok {
		scoped = make(map[string]entry)
		c.entries[key] = scoped
	}
	e := entry{data: data}
	if c.ttl > 0 {
		e.expires = c.now().Add(c.ttl)
	}
	scoped[scope] = e
	return true
}

// Invalidate drops the keys for every session.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
		c.gens[key]++
	}
}

// Len counts live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, scoped := range c.entries {
		n += len(scoped)
	}
	return n
}

func (c *Cache) expired(e entry) bool {
	return !e.expires.IsZero() && !c.now().Before(e.expires)
}

// Sweep removes expired entries and returns how many were dropped.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for key, scoped := range c.entries {
		for scope, e := range scoped {
			if c.expired(e) {
				delete(scoped, scope)
				removed++
			}
		}
		if len(scoped) == 0 {
			delete(c.entries, key)
		}
	}
	return removed
}

// StartJanitor sweeps expired entries every interval until ctx is done.
func (c *Cache) StartJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	logger.Log.Info("started data cache janitor", "component", "data_cache", "interval", interval, "ttl", c.ttl)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if removed := c.Sweep(); removed > 0 {
					logger.Log.Debug("swept data cache", "component", "data_cache", "removed", removed)
				}
			case <-ctx.Done():
				logger.Log.Info("data cache janitor shutting down", "component", "data_cache")
				return
			}
		}
	}()
}
