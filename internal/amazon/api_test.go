package amazon_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viraladmedia/amzpulse/internal/amazon"
)

const apiProductBody = `{
	"id": "B08N5WRWNW",
	"asin": "B08N5WRWNW",
	"title": "Echo Dot (4th Gen)",
	"brand": "Amazon",
	"category": "Electronics",
	"price": 49.99,
	"bsr": 120,
	"estSales": 2500,
	"rating": 4.7,
	"reviews": 540000,
	"referralFee": 7.50,
	"fbaFee": 3.40
}`

func TestAPIClient_Lookup(t *testing.T) {
	t.Parallel()

	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Api-Key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(apiProductBody))
	}))
	defer srv.Close()

	c := amazon.NewAPIClient(srv.URL, "sekrit")

	p, err := c.Lookup(context.Background(), "B08N5WRWNW")
	require.NoError(t, err)

	assert.Equal(t, "/products/B08N5WRWNW", gotPath)
	assert.Equal(t, "sekrit", gotKey)

	assert.Equal(t, "Echo Dot (4th Gen)", p.Name)
	assert.Equal(t, "Amazon", p.Brand)
	assert.Equal(t, 120, p.Rank)
	assert.Equal(t, 2500, p.EstimatedSales)
	assert.InDelta(t, 49.99, p.Price, 0.001)
}

func TestAPIClient_Lookup_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := amazon.NewAPIClient(srv.URL, "sekrit")

	_, err := c.Lookup(context.Background(), "B000MISSING")
	assert.ErrorIs(t, err, amazon.ErrNotFound)
}

func TestAPIClient_Lookup_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error": "upstream down"}`))
	}))
	defer srv.Close()

	c := amazon.NewAPIClient(srv.URL, "sekrit")

	_, err := c.Lookup(context.Background(), "B08N5WRWNW")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
	assert.Contains(t, err.Error(), "upstream down")
}

func TestAPIClient_Lookup_DailyLimit(t *testing.T) {
	t.Parallel()

	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(apiProductBody))
	}))
	defer srv.Close()

	rl := amazon.NewRateLimiter(100, 10, 1)
	c := amazon.NewAPIClient(srv.URL, "sekrit", amazon.WithAPIRateLimiter(rl))

	_, err := c.Lookup(context.Background(), "B08N5WRWNW")
	require.NoError(t, err)

	_, err = c.Lookup(context.Background(), "B08N5WRWNW")
	assert.ErrorIs(t, err, amazon.ErrDailyLimitReached)
	assert.Equal(t, 1, calls, "the limited call must not reach the server")
}

func TestAPIClient_Lookup_MalformedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"price": 12.50}`))
	}))
	defer srv.Close()

	c := amazon.NewAPIClient(srv.URL, "sekrit")

	_, err := c.Lookup(context.Background(), "B08N5WRWNW")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "normalizing product")
}
