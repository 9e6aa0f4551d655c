package catalog_test

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viraladmedia/amzpulse/internal/catalog"
	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

func product(id, name, category string, price float64) *domain.Product {
	return &domain.Product{
		ID:       id,
		ASIN:     id,
		Name:     name,
		Brand:    "Acme",
		Category: category,
		Price:    price,
	}
}

func TestCatalog_New_DeduplicatesIDs(t *testing.T) {
	t.Parallel()

	c := catalog.New(
		product("B0AAAA1111", "First", "Electronics", 10),
		product("B0AAAA1111", "Duplicate", "Electronics", 20),
		product("B0BBBB2222", "Second", "Toys & Games", 30),
	)

	require.Equal(t, 2, c.Len())
	got, ok := c.Get("B0AAAA1111")
	require.True(t, ok)
	assert.Equal(t, "First", got.Name)
}

func TestCatalog_Upsert(t *testing.T) {
	t.Parallel()

	c := catalog.New(
		product("B0AAAA1111", "First", "Electronics", 10),
		product("B0BBBB2222", "Second", "Toys & Games", 30),
	)

	// New id lands at the front.
	c.Upsert(product("B0CCCC3333", "Third", "Beauty & Personal Care", 15))
	list := c.List()
	require.Len(t, list, 3)
	assert.Equal(t, "B0CCCC3333", list[0].ID)
	assert.Equal(t, "B0AAAA1111", list[1].ID)

	// Existing id replaces in place without moving.
	c.Upsert(product("B0BBBB2222", "Second Updated", "Toys & Games", 35))
	list = c.List()
	require.Len(t, list, 3)
	assert.Equal(t, "B0BBBB2222", list[2].ID)
	assert.Equal(t, "Second Updated", list[2].Name)

	// Index stays consistent after the prepend shifted positions.
	got, ok := c.Get("B0AAAA1111")
	require.True(t, ok)
	assert.Equal(t, "First", got.Name)
}

func TestCatalog_GetByASIN(t *testing.T) {
	t.Parallel()

	c := catalog.New(product("B0AAAA1111", "First", "Electronics", 10))

	got, ok := c.GetByASIN("B0AAAA1111")
	require.True(t, ok)
	assert.Equal(t, "First", got.Name)

	_, ok = c.GetByASIN("B0MISSING0")
	assert.False(t, ok)
}

func TestCatalog_SetAnalysis(t *testing.T) {
	t.Parallel()

	c := catalog.New(product("B0AAAA1111", "First", "Electronics", 10))

	ok := c.SetAnalysis("B0AAAA1111", &domain.Analysis{Grade: domain.GradeA, Score: 91})
	require.True(t, ok)

	got, _ := c.Get("B0AAAA1111")
	require.NotNil(t, got.Analysis)
	assert.Equal(t, domain.GradeA, got.Analysis.Grade)

	assert.False(t, c.SetAnalysis("B0MISSING0", &domain.Analysis{}))
}

func TestCatalog_Replace(t *testing.T) {
	t.Parallel()

	c := catalog.New(
		product("B0AAAA1111", "First", "Electronics", 10),
		product("B0BBBB2222", "Second", "Toys & Games", 30),
	)

	c.Replace([]*domain.Product{
		product("B0CCCC3333", "Only", "Grocery & Gourmet Food", 5),
	})

	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("B0AAAA1111")
	assert.False(t, ok)
	got, ok := c.Get("B0CCCC3333")
	require.True(t, ok)
	assert.Equal(t, "Only", got.Name)
}

func TestCatalog_SetAnalysis_LeavesHandedOutPointersAlone(t *testing.T) {
	t.Parallel()

	c := catalog.New(product("B0AAAA1111", "First", "Electronics", 10))

	before := c.List()[0]
	require.Nil(t, before.Analysis)

	c.SetAnalysis("B0AAAA1111", &domain.Analysis{Grade: domain.GradeB, Score: 74})

	// The earlier snapshot keeps its state; new reads see the analysis.
	assert.Nil(t, before.Analysis)
	after, _ := c.Get("B0AAAA1111")
	require.NotNil(t, after.Analysis)
	assert.Equal(t, domain.GradeB, after.Analysis.Grade)
}

func TestCatalog_SetAnalysis_ConcurrentWithReads(t *testing.T) {
	t.Parallel()

	c := catalog.New(product("B0AAAA1111", "First", "Electronics", 10))

	held := c.List()[0]
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			c.SetAnalysis("B0AAAA1111", &domain.Analysis{Grade: domain.GradeA, Score: i % 101})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if _, err := json.Marshal(held); err != nil {
				t.Errorf("serializing held snapshot: %v", err)
				return
			}
			if p, ok := c.Get("B0AAAA1111"); ok {
				if _, err := json.Marshal(p); err != nil {
					t.Errorf("serializing current snapshot: %v", err)
					return
				}
			}
		}
	}()

	wg.Wait()
	assert.Nil(t, held.Analysis)
}

func TestCatalog_ListIsSnapshot(t *testing.T) {
	t.Parallel()

	c := catalog.New(product("B0AAAA1111", "First", "Electronics", 10))

	list := c.List()
	c.Upsert(product("B0BBBB2222", "Second", "Toys & Games", 30))

	assert.Len(t, list, 1)
	assert.Len(t, c.List(), 2)
}
