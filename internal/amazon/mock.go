package amazon

import (
	"context"

	"github.com/viraladmedia/amzpulse/pkg/normalize"
	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

// MockSource generates deterministic synthetic product data. It backs
// development and demo deployments that run without upstream
// credentials.
type MockSource struct{}

// NewMockSource returns a synthetic data source.
func NewMockSource() MockSource { return MockSource{} }

func (MockSource) Lookup(ctx context.Context, asin string) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return normalize.MockProduct(asin), nil
}

func (MockSource) Name() string { return "mock" }
