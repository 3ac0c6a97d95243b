package plancache

import (
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/froque/sqlast/ast"
	"github.com/froque/sqlast/translate"
)

// DefaultMaxEntries bounds the cache when no explicit limit is configured.
const DefaultMaxEntries = 2048

// key identifies one translation: the statement fingerprint is only
// meaningful relative to a dialect at a server version, since capability
// gates change the emitted SQL.
type key struct {
	dialect     string
	version     string
	fingerprint uint64
}

func (k key) String() string {
	return k.dialect + "@" + k.version + ":" + strconv.FormatUint(k.fingerprint, 16)
}

// Stats are cumulative cache counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Cache memoizes translation results. The zero value is not usable;
// construct with New. Safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[key]*translate.Result
	stats   Stats

	group singleflight.Group
	max   int
}

// Option configures a Cache.
type Option func(*Cache)

// WithMaxEntries caps the number of cached translations. A non-positive
// value keeps DefaultMaxEntries.
func WithMaxEntries(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.max = n
		}
	}
}

// New returns an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[key]*translate.Result),
		max:     DefaultMaxEntries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Translate returns the memoized translation of s for d, translating on a
// miss. Concurrent misses for the same key share one translation.
// Translation errors are returned but never cached; a statement that is
// unsupported today may become supported after a capability reload.
func (c *Cache) Translate(d *translate.Dialect, s ast.Statement) (*translate.Result, error) {
	k := key{
		dialect:     d.Name(),
		version:     d.Caps().Version().String(),
		fingerprint: ast.Fingerprint(s),
	}

	c.mu.RLock()
	res, ok := c.entries[k]
	c.mu.RUnlock()
	if ok {
		c.mu.Lock()
		c.stats.Hits++
		c.mu.Unlock()
		return res, nil
	}

	v, err, _ := c.group.Do(k.String(), func() (any, error) {
		res, err := translate.New(d).Translate(s)
		if err != nil {
			return nil, err
		}
		c.store(k, res)
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*translate.Result), nil
}

func (c *Cache) store(k key, res *translate.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.Misses++
	if _, ok := c.entries[k]; !ok && len(c.entries) >= c.max {
		// Drop an arbitrary entry. Translations are cheap to redo, so a
		// simple bound beats bookkeeping recency per lookup.
		for victim := range c.entries {
			delete(c.entries, victim)
			c.stats.Evictions++
			break
		}
	}
	c.entries[k] = res
}

// Len returns the number of cached translations.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns a snapshot of the cumulative counters.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// Purge drops every cached translation. Counters are kept. Call after
// swapping capability tables at runtime: cached SQL may depend on gates
// that no longer hold.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[key]*translate.Result)
}
