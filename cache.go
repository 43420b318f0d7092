package notchity

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

// CacheKey identifies one resolution: a logical operation and, for
// operations on native values, the native type it was resolved against.
type CacheKey struct {
	Op   string
	Type reflect.Type
}

// Cache memoizes resolved handles for one adapter.
//
// Entries are written once per key and never evicted: the server version
// cannot change while the process runs, so a handle that resolved once stays
// valid. Reads of resolved entries are lock-free. Failed resolutions are not
// stored and are retried on the next call.
type Cache struct {
	// entries maps CacheKey -> *Handle
	entries sync.Map

	// resolutions counts calls into resolve functions
	resolutions atomic.Uint64

	// hits counts lookups served from entries
	hits atomic.Uint64
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// GetOrResolve returns the handle stored for key, calling resolve on a miss.
//
// Concurrent first calls for the same key may each run resolve; the first
// stored result wins and every caller receives that same *Handle.
func (c *Cache) GetOrResolve(key CacheKey, resolve func() (*Handle, error)) (*Handle, error) {
	// Fast path: lock-free read
	if val, ok := c.entries.Load(key); ok {
		c.hits.Add(1)
		return val.(*Handle), nil
	}

	// Slow path: resolve outside any lock
	c.resolutions.Add(1)
	h, err := resolve()
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, fmt.Errorf("%w: %s resolved to no handle", ErrMemberNotFound, key.Op)
	}

	// LoadOrStore ensures only one goroutine's handle is kept
	actual, _ := c.entries.LoadOrStore(key, h)
	return actual.(*Handle), nil
}

// Lookup returns the handle stored for key without resolving.
func (c *Cache) Lookup(key CacheKey) (*Handle, bool) {
	val, ok := c.entries.Load(key)
	if !ok {
		return nil, false
	}
	return val.(*Handle), true
}

// Resolutions returns how many times a resolve function was invoked.
func (c *Cache) Resolutions() uint64 {
	return c.resolutions.Load()
}

// Hits returns how many lookups were served from the cache.
func (c *Cache) Hits() uint64 {
	return c.hits.Load()
}

// Len returns the number of stored handles.
func (c *Cache) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
