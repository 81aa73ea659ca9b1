// Package refresh decides when the dashboard snapshot gets refetched.
// A single controller goroutine owns the write side of the snapshot
// cache; TUI renders only read. Triggers (first load, auto-refresh
// interval, manual request) are coalesced so at most one fetch is ever
// in flight.
package refresh

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/civicsense/civicdash/internal/cache"
	"github.com/civicsense/civicdash/internal/civic"
)

// State is the controller's externally visible condition.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateError
)

func (s State) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// Fetcher is the slice of the API client the controller needs. Tests
// inject fakes.
type Fetcher interface {
	Dashboard(ctx context.Context, orgID string) (*civic.Snapshot, error)
}

// Options configure the refresh cadence.
type Options struct {
	OrgID               string
	AutoRefresh         bool
	AutoRefreshInterval time.Duration
	TickInterval        time.Duration // Run loop granularity, default 1s
}

// Status is the controller state handed to the presentation layer.
type Status struct {
	State       State
	LastError   string
	LastSuccess time.Time
	HasSnapshot bool // false means "no data yet", distinct from empty data
}

const (
	backoffBase = time.Second
	backoffMax  = 30 * time.Second
)

type Controller struct {
	fetcher Fetcher
	cache   *cache.Cache
	opts    Options
	logger  *slog.Logger
	now     func() time.Time

	mu            sync.Mutex
	state         State
	fetching      bool
	manualPending bool
	lastErr       string
	lastSuccess   time.Time
	failures      int
	nextAttempt   time.Time
}

func New(fetcher Fetcher, c *cache.Cache, opts Options, logger *slog.Logger) *Controller {
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	return &Controller{
		fetcher: fetcher,
		cache:   c,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
	}
}

// Run drives the controller until ctx is cancelled. The first tick
// fires immediately so the UI is not blank for a full interval.
func (c *Controller) Run(ctx context.Context) error {
	c.logger.Info("refresh controller started",
		"org", c.opts.OrgID,
		"auto_refresh", c.opts.AutoRefresh,
		"interval", c.opts.AutoRefreshInterval,
		"cache_ttl", c.cache.TTL())

	c.Tick(ctx)

	ticker := time.NewTicker(c.opts.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("refresh controller stopped")
			return nil
		case <-ticker.C:
			c.Tick(ctx)
		}
	}
}

// Tick evaluates the transition rule once and performs the fetch
// synchronously if one is due. Returns whether a fetch ran. Safe to
// call concurrently: while one call is fetching, others are absorbed
// as no-ops because the in-flight fetch satisfies the same freshness
// requirement.
func (c *Controller) Tick(ctx context.Context) bool {
	now := c.now()

	c.mu.Lock()
	if c.fetching {
		c.mu.Unlock()
		return false
	}
	if !c.shouldFetchLocked(now) {
		c.mu.Unlock()
		return false
	}
	c.fetching = true
	c.state = StateFetching
	c.manualPending = false
	c.mu.Unlock()

	snap, err := c.fetcher.Dashboard(ctx, c.opts.OrgID)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetching = false

	if err != nil {
		c.failures++
		c.lastErr = err.Error()
		c.state = StateError
		c.nextAttempt = c.now().Add(c.backoffLocked())
		c.logger.Error("dashboard fetch failed",
			"org", c.opts.OrgID,
			"consecutive_failures", c.failures,
			"err", err)
		return true
	}

	c.cache.Put(snap)
	c.state = StateIdle
	// A manual request that arrived mid-flight is satisfied by this
	// fetch; on failure it stays pending and retries next tick.
	c.manualPending = false
	c.lastErr = ""
	c.failures = 0
	c.nextAttempt = time.Time{}
	c.lastSuccess = c.now()
	c.logger.Info("dashboard refreshed",
		"org", c.opts.OrgID,
		"parent_tickets", len(snap.ParentTickets),
		"all_tickets", len(snap.AllTickets))
	return true
}

func (c *Controller) shouldFetchLocked(now time.Time) bool {
	// Manual refresh bypasses both TTL and failure backoff.
	if c.manualPending {
		return true
	}

	// First load: nothing to serve yet. Still honors backoff so a
	// dead backend is not hammered every tick.
	if _, ok := c.cache.Get(); !ok {
		return c.nextAttempt.IsZero() || !now.Before(c.nextAttempt)
	}

	if !c.opts.AutoRefresh {
		return false
	}
	if now.Sub(c.lastSuccess) < c.opts.AutoRefreshInterval {
		return false
	}
	if !c.cache.IsStale() {
		return false
	}
	// After failures, wait out the backoff window. The cap keeps the
	// next attempt inside the regular polling cadence.
	if !c.nextAttempt.IsZero() && now.Before(c.nextAttempt) {
		return false
	}
	return true
}

// backoffLocked doubles per consecutive failure, capped well below the
// next scheduled auto-refresh attempt.
func (c *Controller) backoffLocked() time.Duration {
	d := backoffMax
	if c.failures <= 5 {
		d = backoffBase << (c.failures - 1)
	}
	if limit := c.opts.AutoRefreshInterval / 2; c.opts.AutoRefresh && limit > 0 && d > limit {
		d = limit
	}
	if d > backoffMax {
		d = backoffMax
	}
	return d
}

// RequestRefresh marks a manual refresh. The cache is invalidated so
// staleness holds regardless of TTL; the pending flag is consumed by
// the next tick. Does not cancel or duplicate an in-flight fetch.
func (c *Controller) RequestRefresh() {
	c.cache.Invalidate()
	c.mu.Lock()
	c.manualPending = true
	c.mu.Unlock()
}

// Status reports the controller state for rendering.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, has := c.cache.Get()
	return Status{
		State:       c.state,
		LastError:   c.lastErr,
		LastSuccess: c.lastSuccess,
		HasSnapshot: has,
	}
}

// Snapshot returns the last good snapshot. It survives fetch failures
// unchanged; only a successful fetch replaces it.
func (c *Controller) Snapshot() (*civic.Snapshot, bool) {
	return c.cache.Get()
}
