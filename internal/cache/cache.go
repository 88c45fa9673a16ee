package cache

import (
	"sync"
	"sync/atomic"
)

// #region types
// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// keyLock serializes computation for one key. refs counts holders and
// waiters so the lock can be dropped once nobody needs it.
type keyLock struct {
	mu   sync.Mutex
	refs int
}

// #endregion types

// #region cache
// Cache memoizes hairstyle to fallback group resolutions for the lifetime of
// the process. Entries are never evicted and never overwritten: resolution
// is a pure function of static data.
//
// Reads take a shared lock. A miss computes under a per-key lock so at most
// one computation per key runs at a time while other keys proceed.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]string

	locksMu sync.Mutex
	locks   map[string]*keyLock

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]string),
		locks:   make(map[string]*keyLock),
	}
}

// #endregion cache

// #region read
// Get returns the cached group for key. It does not touch the counters.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Snapshot returns a copy of all entries.
func (c *Cache) Snapshot() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]string, len(c.entries))
	for k, v := range c.entries {
		out[k] = v
	}
	return out
}

// Stats returns the current counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.Len(),
	}
}

// #endregion read

// #region get-or-compute
// GetOrCompute returns the cached value for key, or runs compute and stores
// its result. hit reports whether compute was skipped. Errors from compute
// are returned as-is and nothing is stored.
func (c *Cache) GetOrCompute(key string, compute func() (string, error)) (value string, hit bool, err error) {
	if v, ok := c.Get(key); ok {
		c.hits.Add(1)
		return v, true, nil
	}

	kl := c.acquire(key)
	defer c.release(key, kl)

	// Another caller may have filled the entry while we waited.
	if v, ok := c.Get(key); ok {
		c.hits.Add(1)
		return v, true, nil
	}

	c.misses.Add(1)
	v, err := compute()
	if err != nil {
		return "", false, err
	}
	return c.store(key, v), false, nil
}

// store inserts v unless key already holds a value, and returns the value
// now associated with key.
func (c *Cache) store(key, v string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok {
		return existing
	}
	c.entries[key] = v
	return v
}

func (c *Cache) acquire(key string) *keyLock {
	c.locksMu.Lock()
	kl, ok := c.locks[key]
	if !ok {
		kl = &keyLock{}
		c.locks[key] = kl
	}
	kl.refs++
	c.locksMu.Unlock()

	kl.mu.Lock()
	return kl
}

func (c *Cache) release(key string, kl *keyLock) {
	kl.mu.Unlock()

	c.locksMu.Lock()
	kl.refs--
	if kl.refs == 0 {
		delete(c.locks, key)
	}
	c.locksMu.Unlock()
}

// #endregion get-or-compute
