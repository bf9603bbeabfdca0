// Package cache provides the process-wide key/value store with per-entry expiry
// shared by the provider clients, the safety classifier and the catalog pages.
package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"log/slog"
	"sync"
	"time"
)

const (
	// DefaultHighWater is the entry count above which a Set triggers a full sweep.
	DefaultHighWater = 8000
	// DefaultSweepInterval is how often the background sweep runs.
	DefaultSweepInterval = 10 * time.Minute
)

// Options configures a Cache. Zero values fall back to the defaults.
type Options struct {
	HighWater     int
	SweepInterval time.Duration
	// Now overrides the clock, used by tests.
	Now func() time.Time
}

type entry struct {
	value     any
	expiresAt time.Time
}

// expired reports whether the ttl has fully elapsed at now.
func (e entry) expired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

// Cache is a mutex-guarded map with absolute per-entry expiry. There is no
// eviction policy beyond expiry.
type Cache struct {
	log       *slog.Logger
	mu        sync.Mutex
	entries   map[string]entry
	highWater int
	now       func() time.Time

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a cache and starts its periodic sweep. Call Close to stop it.
func New(opts Options) *Cache {
	if opts.HighWater <= 0 {
		opts.HighWater = DefaultHighWater
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = DefaultSweepInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	c := &Cache{
		log:       slog.Default().With("component", "cache"),
		entries:   make(map[string]entry),
		highWater: opts.HighWater,
		now:       opts.Now,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go c.sweepLoop(opts.SweepInterval)
	return c
}

// Get returns the value for key. Expired entries are removed and reported absent.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if e.expired(c.now()) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key for ttl, replacing any previous entry.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
	if len(c.entries) > c.highWater {
		removed := c.sweepLocked()
		c.log.Debug("cache.high_water_sweep", "removed", removed, "remaining", len(c.entries))
	}
}

// Len returns the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the total entry count and how many of them are still live.
func (c *Cache) Stats() (total, active int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for _, e := range c.entries {
		if !e.expired(now) {
			active++
		}
	}
	return len(c.entries), active
}

// Sweep removes every expired entry and returns how many were dropped.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sweepLocked()
}

func (c *Cache) sweepLocked() int {
	now := c.now()
	removed := 0
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

func (c *Cache) sweepLoop(interval time.Duration) {
	defer close(c.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			if removed := c.Sweep(); removed > 0 {
				c.log.Info("cache.sweep", "removed", removed)
			}
		}
	}
}

// Close stops the background sweep. It is safe to call more than once.
func (c *Cache) Close() {
	c.closeOnce.Do(func() {
		close(c.stop)
		<-c.done
	})
}

// Lookup is a typed Get. A stored value of a different type is reported absent.
func Lookup[T any](c *Cache, key string) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}
	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Namespace derives a short, non-reversible key prefix from a secret such as
// an API key, so entries fetched with different keys never mix.
func Namespace(secret string) string {
	if secret == "" {
		return ""
	}
	h := sha1.Sum([]byte(secret))
	return hex.EncodeToString(h[:6])
}
