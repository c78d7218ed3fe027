package permission

import (
	"strings"
	"sync"
	"time"
)

const cacheTTL = 5 * time.Minute

type cacheEntry struct {
	result bool
	at     time.Time
}

// Cache memoizes permission-code decisions per (user, code) with a
// 5-minute TTL. It is an explicit object constructed once at startup
// and injected where needed, never a package-level singleton.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     cacheTTL,
		now:     time.Now,
	}
}

func cacheKey(userID, kod string) string {
	return userID + ":" + kod
}

// Check returns the cached decision for (subject, kod), computing and
// storing it via eval on a miss. Subjects without an identifier bypass
// the cache entirely. Expiry is enforced lazily on read.
func (c *Cache) Check(s *Subject, kod string, eval func(*Subject, string) bool) bool {
	if s == nil || s.ID == "" {
		return eval(s, kod)
	}

	key := cacheKey(s.ID, kod)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && c.now().Sub(entry.at) < c.ttl {
		return entry.result
	}

	result := eval(s, kod)

	c.mu.Lock()
	c.entries[key] = cacheEntry{result: result, at: c.now()}
	c.mu.Unlock()

	return result
}

// InvalidateUser drops every cached decision for the given user. Called
// after any role or permission mutation so stale grants/denials are not
// served.
func (c *Cache) InvalidateUser(userID string) {
	if userID == "" {
		return
	}
	prefix := userID + ":"

	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// Len reports the number of stored entries, expired ones included
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
