package sheets

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rcfaria/fluxo/internal/service"
)

// CacheConfig tunes the per-sheet cache.
type CacheConfig struct {
	// TTL applies to ordinary month sheets.
	TTL time.Duration
	// LedgerTTL applies to the sheets named in LedgerSheets, which
	// change less often and are expensive to rebuild from.
	LedgerTTL    time.Duration
	LedgerSheets []string
}

// DefaultCacheConfig returns the cache policy used in production.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:       5 * time.Minute,
		LedgerTTL: 10 * time.Minute,
	}
}

type cacheEntry struct {
	fetchedAt time.Time
	data      [][]string
}

// Cache is a time-bounded cache in front of a sheet provider. A fresh
// entry is served directly; an expired one triggers a fetch, and on
// fetch failure the last cached value is served regardless of
// staleness. It also owns the global guard that keeps at most one full
// refresh running; overlapping sync requests are dropped, not queued.
type Cache struct {
	provider service.SheetProvider
	entries  map[string]cacheEntry
	ledger   map[string]bool
	logger   *slog.Logger
	now      func() time.Time
	config   CacheConfig
	mu       sync.Mutex
	syncing  bool
}

var _ service.SheetProvider = (*Cache)(nil)

// NewCache wraps a provider with the given cache policy.
func NewCache(provider service.SheetProvider, config CacheConfig, logger *slog.Logger) *Cache {
	if config.TTL <= 0 {
		config.TTL = DefaultCacheConfig().TTL
	}
	if config.LedgerTTL <= 0 {
		config.LedgerTTL = DefaultCacheConfig().LedgerTTL
	}
	if logger == nil {
		logger = slog.Default()
	}

	ledger := make(map[string]bool, len(config.LedgerSheets))
	for _, name := range config.LedgerSheets {
		ledger[name] = true
	}

	return &Cache{
		provider: provider,
		config:   config,
		entries:  make(map[string]cacheEntry),
		ledger:   ledger,
		logger:   logger,
		now:      time.Now,
	}
}

// FetchSheet returns the cached grid when fresh, otherwise fetches and
// updates the cache. On fetch failure a stale entry is returned when
// one exists; only with no cached value at all does the failure
// propagate.
func (c *Cache) FetchSheet(ctx context.Context, name string) ([][]string, error) {
	c.mu.Lock()
	entry, ok := c.entries[name]
	c.mu.Unlock()

	if ok && c.now().Sub(entry.fetchedAt) < c.ttlFor(name) {
		return entry.data, nil
	}

	data, err := c.provider.FetchSheet(ctx, name)
	if err != nil {
		if ok {
			c.logger.Warn("serving stale sheet after fetch failure",
				"sheet", name,
				"age", c.now().Sub(entry.fetchedAt).String(),
				"error", err)
			return entry.data, nil
		}
		return nil, err
	}

	c.mu.Lock()
	c.entries[name] = cacheEntry{data: data, fetchedAt: c.now()}
	c.mu.Unlock()

	return data, nil
}

// Invalidate drops the cached entry for one sheet.
func (c *Cache) Invalidate(name string) {
	c.mu.Lock()
	delete(c.entries, name)
	c.mu.Unlock()
}

// TryBeginSync acquires the full-refresh guard. It returns false when
// a sync is already running, in which case the caller must drop the
// request rather than queue it.
func (c *Cache) TryBeginSync() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.syncing {
		return false
	}
	c.syncing = true
	return true
}

// EndSync releases the full-refresh guard.
func (c *Cache) EndSync() {
	c.mu.Lock()
	c.syncing = false
	c.mu.Unlock()
}

func (c *Cache) ttlFor(name string) time.Duration {
	if c.ledger[name] {
		return c.config.LedgerTTL
	}
	return c.config.TTL
}
