package aggregate

import (
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/wexinc/fightsongs/internal/songs"
)

// Cache memoizes Proportions by (dataset version, grouping, tropes, filter).
// Concurrent callers asking for the same key share one computation.
// Tables are returned by value and treated as read-only by callers.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Table
	flight  singleflight.Group

	hits   atomic.Uint64
	misses atomic.Uint64
}

// CacheStats reports cache effectiveness.
type CacheStats struct {
	Entries int
	Hits    uint64
	Misses  uint64
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]Table)}
}

func cacheKey(version string, by Grouping, tropes []songs.Trope, filter Filter) string {
	var sb strings.Builder
	sb.WriteString(version)
	sb.WriteByte('|')
	sb.WriteString(by.String())
	sb.WriteByte('|')
	for i, t := range tropes {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(string(t))
	}
	sb.WriteByte('|')
	sb.WriteString(filter.Key())
	return sb.String()
}

// Proportions is the memoized form of the package-level Proportions. An
// unavailable dataset is computed directly and never stored.
func (c *Cache) Proportions(ds *songs.Dataset, by Grouping, tropes []songs.Trope, filter Filter) Table {
	if !ds.Available() {
		return Proportions(ds, by, tropes, filter)
	}

	key := cacheKey(ds.Version(), by, tropes, filter)

	c.mu.RLock()
	t, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return t
	}

	v, _, _ := c.flight.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		t, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			c.hits.Add(1)
			return t, nil
		}

		c.misses.Add(1)
		t = Proportions(ds, by, tropes, filter)
		c.mu.Lock()
		c.entries[key] = t
		c.mu.Unlock()
		return t, nil
	})
	return v.(Table)
}

// Decades is the memoized form of Decades.
func (c *Cache) Decades(ds *songs.Dataset, minDecade int, tropes []songs.Trope) Table {
	return c.Proportions(ds, ByDecade, tropes, Filter{MinDecade: minDecade})
}

// Conferences is the memoized form of Conferences.
func (c *Cache) Conferences(ds *songs.Dataset, tropes []songs.Trope) Table {
	return c.Proportions(ds, ByConference, tropes, Filter{})
}

// Authorship is the memoized form of Authorship.
func (c *Cache) Authorship(ds *songs.Dataset, tropes []songs.Trope) AuthorshipView {
	return authorshipFrom(
		c.Proportions(ds, ByStudent, tropes, Filter{}),
		c.Proportions(ds, ByContest, tropes, Filter{}),
		tropes,
	)
}

// Prune drops every entry not computed from the given dataset version.
// Called after a reload so superseded tables can be collected.
func (c *Cache) Prune(version string) int {
	prefix := version + "|"
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k := range c.entries {
		if !strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() CacheStats {
	c.mu.RLock()
	n := len(c.entries)
	c.mu.RUnlock()
	return CacheStats{
		Entries: n,
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}
