// Package cache holds the most recent dashboard snapshot together with
// its fetch time and a fixed TTL. It is the only shared mutable state
// in the process: one writer (the refresh controller), many readers
// (TUI renders). Readers always see a fully formed snapshot or none.
package cache

import (
	"sync"
	"time"

	"github.com/civicsense/civicdash/internal/civic"
)

type Cache struct {
	mu          sync.RWMutex
	snapshot    *civic.Snapshot
	fetchedAt   time.Time
	invalidated bool

	ttl time.Duration
	now func() time.Time
}

// New creates a cache with the given TTL. A non-positive TTL means
// every Get is stale, which degenerates to fetch-every-tick.
func New(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, now: time.Now}
}

// NewWithClock is New with an injectable clock for tests.
func NewWithClock(ttl time.Duration, now func() time.Time) *Cache {
	return &Cache{ttl: ttl, now: now}
}

// Get returns the cached snapshot, if any. The snapshot is immutable
// after Put, so handing out the pointer is safe.
func (c *Cache) Get() (*civic.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil {
		return nil, false
	}
	return c.snapshot, true
}

// Put replaces the cached snapshot wholesale and resets staleness.
func (c *Cache) Put(snap *civic.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = snap
	c.fetchedAt = c.now()
	c.invalidated = false
}

// IsStale reports whether a fetch is needed: nothing cached yet, an
// explicit Invalidate since the last Put, or age beyond the TTL.
func (c *Cache) IsStale() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil || c.invalidated {
		return true
	}
	return c.now().Sub(c.fetchedAt) > c.ttl
}

// Invalidate forces the next IsStale to report true regardless of TTL.
// Used by manual refresh. The cached snapshot itself stays readable.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = true
}

// FetchedAt returns when the cached snapshot was stored.
func (c *Cache) FetchedAt() (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil {
		return time.Time{}, false
	}
	return c.fetchedAt, true
}

// TTL returns the configured time-to-live.
func (c *Cache) TTL() time.Duration { return c.ttl }
