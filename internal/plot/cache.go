package plot

import (
	"maps"
	"runtime"
	"slices"
	"sync"
	"weak"

	"github.com/san-kum/cubebrowser/internal/cube"
)

// Cache maps canonical slider keys to weakly held sub-slices. An entry
// disappears once the garbage collector reclaims its sub-slice.
type Cache struct {
	mu      sync.Mutex
	entries map[string]weak.Pointer[cube.Cube]
	hits    int
	misses  int
}

type cacheEntry struct {
	key string
	ptr weak.Pointer[cube.Cube]
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]weak.Pointer[cube.Cube])}
}

// Lookup returns the live sub-slice for key, calling fill on a miss and
// storing its result.
func (c *Cache) Lookup(key string, fill func() (*cube.Cube, error)) (*cube.Cube, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ptr, ok := c.entries[key]; ok {
		if sub := ptr.Value(); sub != nil {
			c.hits++
			return sub, nil
		}
		delete(c.entries, key)
	}
	c.misses++
	sub, err := fill()
	if err != nil {
		return nil, err
	}
	ptr := weak.Make(sub)
	c.entries[key] = ptr
	runtime.AddCleanup(sub, c.evict, cacheEntry{key: key, ptr: ptr})
	return sub, nil
}

func (c *Cache) evict(e cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries[e.key] == e.ptr {
		delete(c.entries, e.key)
	}
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	return len(c.Keys())
}

// Keys returns the keys of live entries in sorted order.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var keys []string
	for _, key := range slices.Sorted(maps.Keys(c.entries)) {
		if c.entries[key].Value() != nil {
			keys = append(keys, key)
		}
	}
	return keys
}

// Stats returns the hit and miss counts.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
