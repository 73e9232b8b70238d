package pathmatch

import "sync"

// DefaultCacheLimit is the default number of compiled patterns kept by a Cache.
const DefaultCacheLimit = 10000

// cacheKey identifies an option triple. Patterns compiled under one triple
// are never served for another.
type cacheKey struct {
	end       bool
	strict    bool
	sensitive bool
}

// Cache memoizes compiled patterns per option triple.
// The total number of stored patterns never exceeds the limit; once full,
// patterns are compiled on every request and not stored.
type Cache struct {
	mu      sync.Mutex
	limit   int
	count   int
	buckets map[cacheKey]map[string]*Pattern
}

// NewCache creates a cache holding at most limit patterns.
// A negative limit is treated as zero, which disables caching.
func NewCache(limit int) *Cache {
	if limit < 0 {
		limit = 0
	}
	return &Cache{
		limit:   limit,
		buckets: make(map[cacheKey]map[string]*Pattern),
	}
}

// Limit returns the maximum number of stored patterns.
func (c *Cache) Limit() int { return c.limit }

// Len returns the number of stored patterns.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Reset drops every stored pattern.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count = 0
	c.buckets = make(map[cacheKey]map[string]*Pattern)
}

// compile returns the cached pattern or compiles and, capacity permitting,
// stores it.
func (c *Cache) compile(pattern string, end, strict, sensitive bool) (*Pattern, error) {
	key := cacheKey{end: end, strict: strict, sensitive: sensitive}

	c.mu.Lock()
	if p, ok := c.buckets[key][pattern]; ok {
		c.mu.Unlock()
		return p, nil
	}
	c.mu.Unlock()

	p, err := Compile(pattern, end, strict, sensitive)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.buckets[key][pattern]; ok {
		return existing, nil
	}
	if c.count < c.limit {
		bucket := c.buckets[key]
		if bucket == nil {
			bucket = make(map[string]*Pattern)
			c.buckets[key] = bucket
		}
		bucket[pattern] = p
		c.count++
	}
	return p, nil
}
