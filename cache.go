package btreemap

import (
	"github.com/cespare/xxhash/v2"
	"github.com/elastic/go-freelru"
)

// Cache is a read-through LRU sitting in front of a Map for lookup-heavy
// callers. Reads consult the LRU before the tree; writes go through to the
// tree and keep the cached entry coherent. Like Map itself, a Cache is not
// safe for concurrent use.
type Cache[V any] struct {
	tree *Map[V]
	lru  *freelru.LRU[string, V]

	hits   uint64
	misses uint64
}

func hashKey(key string) uint32 {
	return uint32(xxhash.Sum64String(key))
}

// NewCache wraps m with an LRU holding up to capacity entries.
func NewCache[V any](m *Map[V], capacity uint32) (*Cache[V], error) {
	lru, err := freelru.New[string, V](capacity, hashKey)
	if err != nil {
		return nil, err
	}
	return &Cache[V]{tree: m, lru: lru}, nil
}

// Get returns the value stored under key, remembering tree lookups for
// later hits. Error contract matches Map.Get.
func (c *Cache[V]) Get(key []byte) (V, error) {
	if len(key) == 0 {
		var zero V
		return zero, ErrKeyEmpty
	}
	if v, ok := c.lru.Get(string(key)); ok {
		c.hits++
		return v, nil
	}
	c.misses++
	v, err := c.tree.Get(key)
	if err != nil {
		return v, err
	}
	c.lru.Add(string(key), v)
	return v, nil
}

// Set writes through to the tree and refreshes the cached entry.
func (c *Cache[V]) Set(key []byte, value V) error {
	if err := c.tree.Set(key, value); err != nil {
		return err
	}
	c.lru.Add(string(key), value)
	return nil
}

// Delete writes through to the tree and drops the cached entry.
func (c *Cache[V]) Delete(key []byte) error {
	if err := c.tree.Delete(key); err != nil {
		return err
	}
	c.lru.Remove(string(key))
	return nil
}

// Stats reports lookup hits and misses since creation.
func (c *Cache[V]) Stats() (hits, misses uint64) {
	return c.hits, c.misses
}
