package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// MemoryCache is a bounded in-memory cache with TTL support. Entries move to
// the front of an LRU list on access; when MaxEntries is reached, insertion
// evicts from the back inside the same critical section, so the size bound
// holds at every point in time. An expired entry behaves as absent on read.
type MemoryCache struct {
	mu     sync.Mutex
	items  map[string]*list.Element
	order  *list.List // front = most recently used
	config Config
}

type memoryItem struct {
	key        string
	value      []byte
	expiration time.Time
}

// NewMemoryCache creates a new in-memory cache with the default configuration.
func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWithConfig(DefaultConfig())
}

// NewMemoryCacheWithConfig creates a new in-memory cache with custom configuration.
func NewMemoryCacheWithConfig(config Config) *MemoryCache {
	return &MemoryCache{
		items:  make(map[string]*list.Element),
		order:  list.New(),
		config: config,
	}
}

// Get retrieves a value from the cache.
func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fullKey := m.config.Prefix + key

	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[fullKey]
	if !ok {
		return nil, ErrCacheMiss{Key: key}
	}
	item := elem.Value.(*memoryItem)
	if !item.expiration.IsZero() && time.Now().After(item.expiration) {
		m.removeLocked(elem)
		return nil, ErrCacheMiss{Key: key}
	}
	m.order.MoveToFront(elem)
	return item.value, nil
}

// Set stores a value in the cache with a TTL. A zero ttl uses the default.
func (m *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fullKey := m.config.Prefix + key
	if ttl == 0 {
		ttl = m.config.DefaultTTL
	}
	item := &memoryItem{key: fullKey, value: value}
	if ttl > 0 {
		item.expiration = time.Now().Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, ok := m.items[fullKey]; ok {
		elem.Value = item
		m.order.MoveToFront(elem)
		return nil
	}
	m.items[fullKey] = m.order.PushFront(item)
	if m.config.MaxEntries > 0 {
		for m.order.Len() > m.config.MaxEntries {
			m.removeLocked(m.order.Back())
		}
	}
	return nil
}

// Delete removes a value from the cache.
func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fullKey := m.config.Prefix + key

	m.mu.Lock()
	defer m.mu.Unlock()
	if elem, ok := m.items[fullKey]; ok {
		m.removeLocked(elem)
	}
	return nil
}

// Clear removes all values from the cache. Used on catalog hot reload, where
// partial invalidation is never enough.
func (m *MemoryCache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make(map[string]*list.Element)
	m.order.Init()
	return nil
}

// Exists checks if a non-expired key exists in the cache.
func (m *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fullKey := m.config.Prefix + key

	m.mu.Lock()
	defer m.mu.Unlock()
	elem, ok := m.items[fullKey]
	if !ok {
		return false, nil
	}
	item := elem.Value.(*memoryItem)
	if !item.expiration.IsZero() && time.Now().After(item.expiration) {
		m.removeLocked(elem)
		return false, nil
	}
	return true, nil
}

// Len returns the current number of entries, expired ones included.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

func (m *MemoryCache) removeLocked(elem *list.Element) {
	if elem == nil {
		return
	}
	item := elem.Value.(*memoryItem)
	m.order.Remove(elem)
	delete(m.items, item.key)
}
