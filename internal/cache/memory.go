package cache

import (
	"context"
	"sync"
	"time"

	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

type memoryEntry struct {
	product   *domain.Product
	fetchedAt time.Time
}

// Memory is an in-process Cache with per-entry TTL. It backs mock
// deployments that run without a Redis instance.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory returns an in-process cache. A non-positive ttl falls back
// to the default.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Memory{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *Memory) GetProduct(_ context.Context, asin string) (*domain.Product, error) {
	m.mu.RLock()
	entry, ok := m.entries[asin]
	m.mu.RUnlock()

	if !ok || m.now().Sub(entry.fetchedAt) >= m.ttl {
		return nil, ErrMiss
	}
	return entry.product.Clone(), nil
}

func (m *Memory) SetProduct(_ context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[p.ASIN] = memoryEntry{product: p.Clone(), fetchedAt: m.now()}
	return nil
}

func (m *Memory) DeleteProduct(_ context.Context, asin string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, asin)
	return nil
}

func (m *Memory) Close() error { return nil }
