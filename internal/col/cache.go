package col

import (
	"strings"
	"sync"
	"time"
)

type cacheEntry struct {
	profile   Profile
	expiresAt time.Time
}

// profileCache is an in-memory TTL cache of city profiles. Cost-of-living
// data changes slowly, so repeated snapshot creation for the same city does
// not re-hit the upstream API.
type profileCache struct {
	mu    sync.RWMutex
	store map[string]cacheEntry
	ttl   time.Duration
}

func newProfileCache(ttl time.Duration) *profileCache {
	return &profileCache{
		store: make(map[string]cacheEntry),
		ttl:   ttl,
	}
}

// Get retrieves a cached profile if present and not expired.
func (c *profileCache) Get(city string) (Profile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[cacheKey(city)]
	if !exists || time.Now().After(entry.expiresAt) {
		return Profile{}, false
	}
	return entry.profile, true
}

// Set stores a profile, evicting any expired entries while it holds the
// write lock.
func (c *profileCache) Set(city string, profile Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, entry := range c.store {
		if now.After(entry.expiresAt) {
			delete(c.store, key)
		}
	}
	c.store[cacheKey(city)] = cacheEntry{
		profile:   profile,
		expiresAt: now.Add(c.ttl),
	}
}

func cacheKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}
