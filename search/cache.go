package search

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// DefaultCacheSize bounds the cache when the caller passes no capacity.
const DefaultCacheSize = 100

// Cache memoizes aggregated responses keyed by (query, sorted source
// set, page). Bounded; at capacity the entry with the oldest last
// access is evicted. There is no TTL: a stale response can live until
// capacity pressure pushes it out.
type Cache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*Response
	access  map[string]time.Time
}

// NewCache creates a cache holding at most maxSize responses.
func NewCache(maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	return &Cache{
		maxSize: maxSize,
		entries: make(map[string]*Response),
		access:  make(map[string]time.Time),
	}
}

// cacheKey hashes the query, the sorted source list and the page into a
// deterministic key. Source order must not matter.
func cacheKey(query string, sources []string, page int) string {
	sorted := slices.Clone(sources)
	slices.Sort(sorted)
	sum := md5.Sum([]byte(fmt.Sprintf("%s:%s:%d", query, strings.Join(sorted, ","), page)))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached response for the key, refreshing its last
// access time, or false on miss.
func (c *Cache) Get(query string, sources []string, page int) (*Response, bool) {
	key := cacheKey(query, sources, page)

	c.mu.Lock()
	defer c.mu.Unlock()

	resp, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.access[key] = time.Now()
	return resp, true
}

// Set stores the response, evicting the least recently accessed entry
// when at capacity.
func (c *Cache) Set(query string, sources []string, page int, resp *Response) {
	key := cacheKey(query, sources, page)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}
	c.entries[key] = resp
	c.access[key] = time.Now()
}

// Len returns the number of cached responses.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for key, at := range c.access {
		if oldestKey == "" || at.Before(oldest) {
			oldestKey = key
			oldest = at
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
		delete(c.access, oldestKey)
	}
}
