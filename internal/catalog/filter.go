package catalog

import (
	"strings"

	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

// Filter narrows a product list for display. Passes apply in a fixed
// order and each one only runs when its criterion is set:
//
//  1. watchlist view keeps only saved products
//  2. exact category match
//  3. exact sub-category match
//  4. price floor (a floor of exactly 0 is treated as unset)
//  5. price ceiling (same zero-means-unset rule)
//  6. case-insensitive substring search over name, ASIN, brand,
//     and category
//
// The input slice is never mutated and order is preserved.
func Filter(products []*domain.Product, view domain.View, saved map[string]bool, c domain.FilterCriteria) []*domain.Product {
	result := products

	if view == domain.ViewWatchlist {
		result = keep(result, func(p *domain.Product) bool {
			return saved[p.ID]
		})
	}

	if c.Category != "" {
		result = keep(result, func(p *domain.Product) bool {
			return p.Category == c.Category
		})
	}

	if c.SubCategory != "" {
		result = keep(result, func(p *domain.Product) bool {
			return p.SubCategory == c.SubCategory
		})
	}

	if c.MinPrice > 0 {
		result = keep(result, func(p *domain.Product) bool {
			return p.Price >= c.MinPrice
		})
	}

	if c.MaxPrice > 0 {
		result = keep(result, func(p *domain.Product) bool {
			return p.Price <= c.MaxPrice
		})
	}

	if c.Search != "" {
		term := strings.ToLower(c.Search)
		result = keep(result, func(p *domain.Product) bool {
			return strings.Contains(strings.ToLower(p.Name), term) ||
				strings.Contains(strings.ToLower(p.ASIN), term) ||
				strings.Contains(strings.ToLower(p.Brand), term) ||
				strings.Contains(strings.ToLower(p.Category), term)
		})
	}

	if len(result) == len(products) {
		// No pass dropped anything, still return a fresh slice so
		// callers can't alias the catalog's backing array.
		out := make([]*domain.Product, len(products))
		copy(out, products)
		return out
	}
	return result
}

func keep(in []*domain.Product, pred func(*domain.Product) bool) []*domain.Product {
	out := make([]*domain.Product, 0, len(in))
	for _, p := range in {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}
