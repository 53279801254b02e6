package external

import (
	"bytes"
	"context"
	"sync"
	"time"

	"weathernow.app/internal/ports"
	"weathernow.app/pkg/errors"
)

// MemoryCacheProvider is a process-local CacheProvider. Entries stored with
// a zero TTL live until deleted or cleared. Values are copied in and out.
type MemoryCacheProvider struct {
	data  map[string]memoryCacheItem
	mutex sync.RWMutex
	now   func() time.Time
}

type memoryCacheItem struct {
	data      []byte
	expiresAt time.Time
}

func (i memoryCacheItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

var _ ports.CacheProvider = (*MemoryCacheProvider)(nil)

func NewMemoryCacheProvider() *MemoryCacheProvider {
	return &MemoryCacheProvider{
		data: make(map[string]memoryCacheItem),
		now:  time.Now,
	}
}

func (c *MemoryCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.NewValidationError("cache key cannot be empty")
	}

	c.mutex.RLock()
	item, exists := c.data[key]
	c.mutex.RUnlock()

	if !exists {
		return nil, errors.NewNotFoundError("cache miss")
	}
	if item.expired(c.now()) {
		c.evict(key, item)
		return nil, errors.NewNotFoundError("cache miss")
	}

	return bytes.Clone(item.data), nil
}

func (c *MemoryCacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}
	if value == nil {
		return errors.NewValidationError("cache value cannot be nil")
	}
	if ttl < 0 {
		return errors.NewValidationError("cache TTL cannot be negative")
	}

	item := memoryCacheItem{data: bytes.Clone(value)}
	if ttl > 0 {
		item.expiresAt = c.now().Add(ttl)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data[key] = item

	return nil
}

func (c *MemoryCacheProvider) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

func (c *MemoryCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.NewValidationError("cache key cannot be empty")
	}

	c.mutex.RLock()
	item, exists := c.data[key]
	c.mutex.RUnlock()

	if !exists {
		return false, nil
	}

	return !item.expired(c.now()), nil
}

func (c *MemoryCacheProvider) Clear(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]memoryCacheItem)
	return nil
}

// evict removes key unless it was overwritten since item was read
func (c *MemoryCacheProvider) evict(key string, item memoryCacheItem) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if current, ok := c.data[key]; ok && current.expiresAt.Equal(item.expiresAt) {
		delete(c.data, key)
	}
}
