package handlers_test

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/viraladmedia/amzpulse/internal/api/handlers"
	"github.com/viraladmedia/amzpulse/internal/cache"
	"github.com/viraladmedia/amzpulse/internal/catalog"
	"github.com/viraladmedia/amzpulse/internal/store"
	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

type productsFixture struct {
	store  *store.MemoryStore
	cat    *catalog.Catalog
	source *stubLookupSource
	cache  *cache.Memory
}

func newProductsAPI(t *testing.T, seed ...*domain.Product) (humatest.TestAPI, *productsFixture) {
	t.Helper()

	f := &productsFixture{
		store:  store.NewMemoryStore(),
		cat:    catalog.New(seed...),
		source: newStubLookupSource(),
		cache:  cache.NewMemory(0),
	}

	h := handlers.NewProductsHandler(f.cat, f.store, f.source, f.cache, testManager(), nopLog)
	_, api := humatest.New(t)
	handlers.RegisterProductRoutes(api, h)
	return api, f
}

func TestListProducts_Filtering(t *testing.T) {
	t.Parallel()

	api, _ := newProductsAPI(t,
		catalogProduct("B000AUDIO01", "Wireless Headphones", "Electronics", 249.99),
		catalogProduct("B000KITCH01", "Air Fryer", "Home & Kitchen", 89.99),
		catalogProduct("B000AUDIO02", "Budget Earbuds", "Electronics", 19.99),
	)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "no criteria returns everything",
			query: "",
			want:  []string{"Wireless Headphones", "Air Fryer", "Budget Earbuds"},
		},
		{
			name:  "category",
			query: "?category=Electronics",
			want:  []string{"Wireless Headphones", "Budget Earbuds"},
		},
		{
			name:  "price band",
			query: "?minPrice=50&maxPrice=100",
			want:  []string{"Air Fryer"},
		},
		{
			name:  "search over name",
			query: "?search=headphones",
			want:  []string{"Wireless Headphones"},
		},
		{
			name:  "combined passes",
			query: "?category=Electronics&maxPrice=50",
			want:  []string{"Budget Earbuds"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := api.Get("/api/products" + tt.query)
			require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

			body := resp.Body.String()
			assert.Equal(t, int64(len(tt.want)), gjson.Get(body, "total").Int())
			for _, name := range tt.want {
				assert.Contains(t, body, name)
			}
		})
	}
}

func TestListProducts_WatchlistViewRequiresAuth(t *testing.T) {
	t.Parallel()

	api, _ := newProductsAPI(t, catalogProduct("B000AUDIO01", "Wireless Headphones", "Electronics", 249.99))

	resp := api.Get("/api/products?view=watchlist")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestListProducts_WatchlistView(t *testing.T) {
	t.Parallel()

	api, f := newProductsAPI(t,
		catalogProduct("B000AUDIO01", "Wireless Headphones", "Electronics", 249.99),
		catalogProduct("B000KITCH01", "Air Fryer", "Home & Kitchen", 89.99),
	)

	u := createUser(t, f.store, "seller@example.com", domain.PlanFree)
	_, err := f.store.AddWatch(t.Context(), u.ID, "B000KITCH01")
	require.NoError(t, err)

	resp := api.Get("/api/products?view=watchlist", bearerFor(t, u))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	body := resp.Body.String()
	assert.Equal(t, int64(1), gjson.Get(body, "total").Int())
	assert.Contains(t, body, "Air Fryer")
	assert.NotContains(t, body, "Wireless Headphones")
}

func TestGetProduct_CatalogShortCircuit(t *testing.T) {
	t.Parallel()

	api, f := newProductsAPI(t, catalogProduct("B000AUDIO01", "Wireless Headphones", "Electronics", 249.99))

	resp := api.Get("/api/products/B000AUDIO01")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Wireless Headphones")
	assert.Zero(t, f.source.lookupCalls(), "known products never hit upstream")
}

func TestGetProduct_UpstreamFetch(t *testing.T) {
	t.Parallel()

	api, f := newProductsAPI(t)
	f.source.products["B000FRESH01"] = catalogProduct("B000FRESH01", "Fresh Gadget", "Electronics", 34.99)

	resp := api.Get("/api/products/b000fresh01")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), "Fresh Gadget")
	assert.Empty(t, gjson.Get(resp.Body.String(), "warning").String())

	// Fetched product lands in the catalog and is served from there next.
	_, ok := f.cat.GetByASIN("B000FRESH01")
	assert.True(t, ok)

	resp = api.Get("/api/products/B000FRESH01")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 1, f.source.lookupCalls(), "second lookup is served locally")

	// And it was cached and persisted.
	_, err := f.cache.GetProduct(t.Context(), "B000FRESH01")
	assert.NoError(t, err)
	_, err = f.store.GetProduct(t.Context(), "B000FRESH01")
	assert.NoError(t, err)
}

func TestGetProduct_UpstreamFailureDegradesToPlaceholder(t *testing.T) {
	t.Parallel()

	api, f := newProductsAPI(t)

	resp := api.Get("/api/products/B000GONE001")
	require.Equal(t, http.StatusOK, resp.Code, "upstream failure is never an error status")

	body := resp.Body.String()
	assert.Equal(t, "B000GONE001", gjson.Get(body, "asin").String())
	assert.NotEmpty(t, gjson.Get(body, "warning").String())
	assert.NotEmpty(t, gjson.Get(body, "name").String())

	_, ok := f.cat.GetByASIN("B000GONE001")
	assert.True(t, ok, "placeholder still enters the catalog")
}

func TestGetProduct_CacheHit(t *testing.T) {
	t.Parallel()

	api, f := newProductsAPI(t)
	cached := catalogProduct("B000CACHED1", "Cached Gizmo", "Electronics", 12.99)
	require.NoError(t, f.cache.SetProduct(t.Context(), cached))

	resp := api.Get("/api/products/B000CACHED1")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Cached Gizmo")
	assert.Zero(t, f.source.lookupCalls())
}

func TestGetProduct_MetersAuthenticatedLookups(t *testing.T) {
	t.Parallel()

	api, f := newProductsAPI(t, catalogProduct("B000AUDIO01", "Wireless Headphones", "Electronics", 249.99))
	u := createUser(t, f.store, "seller@example.com", domain.PlanFree)

	resp := api.Get("/api/products/B000AUDIO01", bearerFor(t, u))
	require.Equal(t, http.StatusOK, resp.Code)

	counts, err := f.store.CountUsageSince(t.Context(), u.ID, timeZero())
	require.NoError(t, err)
	assert.Equal(t, 1, counts[domain.UsageLookup])
}

func TestGetProduct_AnonymousLookupIsNotMetered(t *testing.T) {
	t.Parallel()

	api, f := newProductsAPI(t, catalogProduct("B000AUDIO01", "Wireless Headphones", "Electronics", 249.99))
	u := createUser(t, f.store, "seller@example.com", domain.PlanFree)

	resp := api.Get("/api/products/B000AUDIO01")
	require.Equal(t, http.StatusOK, resp.Code)

	counts, err := f.store.CountUsageSince(t.Context(), u.ID, timeZero())
	require.NoError(t, err)
	assert.Zero(t, counts.Total())
}
