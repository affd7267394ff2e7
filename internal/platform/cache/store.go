package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Store keeps raw response bodies by request key for a fixed time-to-live.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is a process-local Store. A non-positive ttl never expires.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, nil
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if s.ttl > 0 && !e.expiresAt.After(s.now()) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false, nil
	}

	return e.value, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	if key == "" {
		return nil
	}

	expiresAt := time.Time{}
	if s.ttl > 0 {
		expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry{
		value:     append([]byte(nil), value...),
		expiresAt: expiresAt,
	}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// PageCache collapses concurrent loads of one key and stores what the loader returns.
type PageCache struct {
	store  Store
	flight singleflight.Group
}

func NewPageCache(store Store) *PageCache {
	return &PageCache{store: store}
}

// GetOrLoad returns the cached value for key, calling loader on a miss.
// The boolean result reports whether the value came from the store.
func (c *PageCache) GetOrLoad(ctx context.Context, key string, loader func(context.Context) ([]byte, error)) ([]byte, bool, error) {
	if loader == nil {
		return nil, false, fmt.Errorf("loader is required")
	}
	if c == nil || c.store == nil || key == "" {
		value, err := loader(ctx)
		return value, false, err
	}

	if value, ok, err := c.store.Get(ctx, key); err != nil {
		return nil, false, fmt.Errorf("read cache entry: %w", err)
	} else if ok {
		return value, true, nil
	}

	type result struct {
		value []byte
		hit   bool
	}
	out, err, _ := c.flight.Do(key, func() (any, error) {
		if cached, ok, err := c.store.Get(ctx, key); err == nil && ok {
			return result{value: cached, hit: true}, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		if err := c.store.Set(ctx, key, loaded); err != nil {
			return nil, fmt.Errorf("write cache entry: %w", err)
		}
		return result{value: loaded}, nil
	})
	if err != nil {
		return nil, false, err
	}

	res := out.(result)
	return res.value, res.hit, nil
}
