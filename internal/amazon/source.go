// Package amazon fetches marketplace product data from an upstream
// provider, a page scrape fallback, or a deterministic mock generator.
package amazon

import (
	"context"
	"errors"

	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

// ErrNotFound is returned when the upstream source has no data for an
// ASIN.
var ErrNotFound = errors.New("product not found")

// Source retrieves product data by ASIN.
type Source interface {
	// Lookup fetches and normalizes a single product.
	Lookup(ctx context.Context, asin string) (*domain.Product, error)

	// Name identifies the source in logs and metrics.
	Name() string
}
