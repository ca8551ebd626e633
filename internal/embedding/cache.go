package embedding

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache memoizes embeddings keyed by input text, so repeated texts in a
// workload skip the model entirely. A capacity of zero or less disables it.
type Cache struct {
	inner *lru.Cache[string, []float32]
}

// NewCache creates a cache bounded to capacity entries.
func NewCache(capacity int) (*Cache, error) {
	if capacity <= 0 {
		return &Cache{}, nil
	}
	inner, err := lru.New[string, []float32](capacity)
	if err != nil {
		return nil, err
	}
	return &Cache{inner: inner}, nil
}

// Get returns the cached embedding for text if present.
func (c *Cache) Get(text string) ([]float32, bool) {
	if c.inner == nil {
		return nil, false
	}
	return c.inner.Get(text)
}

// Add stores the embedding for text, evicting the least recently used entry
// when at capacity.
func (c *Cache) Add(text string, vec []float32) {
	if c.inner == nil {
		return
	}
	c.inner.Add(text, vec)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	if c.inner == nil {
		return 0
	}
	return c.inner.Len()
}
