// Package catalog holds the in-memory product catalog backing the
// dashboard: an ordered product list, the view filter pipeline, and a
// registry that collapses duplicate lookups for the same identifier.
package catalog

import (
	"sync"

	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

// Catalog is an ordered, concurrency-safe product collection. New
// products are prepended so the most recent lookup surfaces first,
// and identifiers are unique within the collection.
type Catalog struct {
	mu    sync.RWMutex
	items []*domain.Product
	index map[string]int // id -> position in items
}

// New creates a Catalog preloaded with the given products, preserving
// their order.
func New(seed ...*domain.Product) *Catalog {
	c := &Catalog{
		index: make(map[string]int, len(seed)),
	}
	for _, p := range seed {
		if _, dup := c.index[p.ID]; dup {
			continue
		}
		c.index[p.ID] = len(c.items)
		c.items = append(c.items, p)
	}
	return c
}

// List returns a snapshot of the catalog in display order.
func (c *Catalog) List() []*domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*domain.Product, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of products held.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Get returns the product with the given id.
func (c *Catalog) Get(id string) (*domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return c.items[i], true
}

// GetByASIN returns the first product with the given ASIN.
func (c *Catalog) GetByASIN(asin string) (*domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.items {
		if p.ASIN == asin {
			return p, true
		}
	}
	return nil, false
}

// Upsert inserts the product at the front of the catalog, or replaces
// the existing entry in place when the id is already present.
func (c *Catalog) Upsert(p *domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i, ok := c.index[p.ID]; ok {
		c.items[i] = p
		return
	}

	c.items = append([]*domain.Product{p}, c.items...)
	for id, i := range c.index {
		c.index[id] = i + 1
	}
	c.index[p.ID] = 0
}

// SetAnalysis attaches an assessment to the product with the given id.
// The entry is replaced with a copy carrying the analysis, so pointers
// handed out earlier by List or Get keep their old snapshot.
func (c *Catalog) SetAnalysis(id string, a *domain.Analysis) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[id]
	if !ok {
		return false
	}
	next := c.items[i].Clone()
	next.Analysis = a
	c.items[i] = next
	return true
}

// Replace swaps the entire catalog contents, used when a refresh pass
// rebuilds product histories.
func (c *Catalog) Replace(products []*domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = c.items[:0]
	c.index = make(map[string]int, len(products))
	for _, p := range products {
		if _, dup := c.index[p.ID]; dup {
			continue
		}
		c.index[p.ID] = len(c.items)
		c.items = append(c.items, p)
	}
}
