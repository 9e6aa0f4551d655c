// Package cache provides a product payload cache in front of the
// upstream data source.
package cache

import (
	"context"
	"errors"

	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

// ErrMiss is returned when a key is not cached.
var ErrMiss = errors.New("cache miss")

// Cache stores normalized product payloads keyed by ASIN.
type Cache interface {
	// GetProduct returns the cached product or ErrMiss.
	GetProduct(ctx context.Context, asin string) (*domain.Product, error)

	// SetProduct stores a product for the configured TTL.
	SetProduct(ctx context.Context, p *domain.Product) error

	// DeleteProduct evicts a product so the next lookup hits the source.
	DeleteProduct(ctx context.Context, asin string) error

	// Close releases any underlying connections.
	Close() error
}

// Nop is a Cache that stores nothing. It is used when caching is
// disabled in the config.
type Nop struct{}

// NewNop returns a no-op cache.
func NewNop() Nop { return Nop{} }

func (Nop) GetProduct(context.Context, string) (*domain.Product, error) {
	return nil, ErrMiss
}

func (Nop) SetProduct(context.Context, *domain.Product) error { return nil }

func (Nop) DeleteProduct(context.Context, string) error { return nil }

func (Nop) Close() error { return nil }
