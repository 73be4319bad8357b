package roster

import (
	"sync"
	"time"
)

// windowCache is the explicit time-bounded cache in front of the remote
// fetch. It holds exactly one value, the current window, since the window
// is a pure function of (source listing, today). Invalidation is the
// operator-facing "reload" action.
type windowCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	window  *Window
	expires time.Time
}

func newWindowCache(ttl time.Duration) *windowCache {
	return &windowCache{ttl: ttl}
}

// get returns the cached window if it is still fresh.
func (c *windowCache) get(now time.Time) (*Window, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.window == nil || now.After(c.expires) {
		return nil, false
	}
	return c.window, true
}

// put stores a freshly loaded window. A zero TTL disables caching.
func (c *windowCache) put(w *Window, now time.Time) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.window = w
	c.expires = now.Add(c.ttl)
}

// invalidate drops the cached window so the next read reloads.
func (c *windowCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.window = nil
}
