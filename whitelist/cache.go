package whitelist

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/primitivehl/whitelist-checker/metrics"
)

var Now = time.Now // used to mock time in tests

// SnapshotStore holds the last combined list for a bounded time.
type SnapshotStore interface {
	Get(ctx context.Context) (addrs []string, found bool, err error)
	Set(ctx context.Context, addrs []string, ttl time.Duration) error
}

type MemorySnapshotStore struct {
	mu        sync.Mutex
	addrs     []string
	expiresAt time.Time
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{}
}

func (m *MemorySnapshotStore) Get(_ context.Context) ([]string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.addrs == nil {
		return nil, false, nil
	}
	if !Now().Before(m.expiresAt) {
		m.addrs = nil
		return nil, false, nil
	}
	return m.addrs, true, nil
}

func (m *MemorySnapshotStore) Set(_ context.Context, addrs []string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addrs = addrs
	m.expiresAt = Now().Add(ttl)
	return nil
}

// CachedLoader serves the combined list from a store for up to ttl after a
// successful load. A ttl of zero disables caching and every call hits the sources.
type CachedLoader struct {
	loader ListLoader
	store  SnapshotStore
	ttl    time.Duration
	logger log.Logger
}

func NewCachedLoader(logger log.Logger, loader ListLoader, store SnapshotStore, ttl time.Duration) *CachedLoader {
	return &CachedLoader{loader: loader, store: store, ttl: ttl, logger: logger}
}

func (c *CachedLoader) LoadEligibleAddresses(ctx context.Context) ([]string, error) {
	if c.ttl <= 0 || c.store == nil {
		return c.loader.LoadEligibleAddresses(ctx)
	}

	addrs, found, err := c.store.Get(ctx)
	if err != nil {
		c.logger.Warn("[CachedLoader] Snapshot read failed, loading from sources", "error", err)
	} else if found && len(addrs) > 0 {
		metrics.IncListCacheHit()
		return addrs, nil
	}
	metrics.IncListCacheMiss()

	addrs, err = c.loader.LoadEligibleAddresses(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.store.Set(ctx, addrs, c.ttl); err != nil {
		c.logger.Warn("[CachedLoader] Snapshot write failed", "error", err)
	}
	return addrs, nil
}
