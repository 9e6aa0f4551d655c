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

const productPage = `<html><body>
<span id="productTitle"> Wireless Noise Cancelling Headphones </span>
<div id="bylineInfo">Visit the SoundWave Store</div>
<span class="a-price"><span class="a-offscreen">$1,249.99</span></span>
<span data-hook="rating-out-of-text">4.3 out of 5</span>
<span id="acrCustomerReviewText">1,542 ratings</span>
<img id="landingImage" src="https://images.example.com/B000HDPHONE.jpg"/>
</body></html>`

func TestScrapeClient_Lookup(t *testing.T) {
	t.Parallel()

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(productPage))
	}))
	defer srv.Close()

	c := amazon.NewScrapeClient(amazon.WithScrapeBaseURL(srv.URL))

	p, err := c.Lookup(context.Background(), "b000hdphone")
	require.NoError(t, err)

	assert.Equal(t, "/dp/B000HDPHONE", gotPath, "asin is uppercased before the fetch")
	assert.Equal(t, "B000HDPHONE", p.ASIN)
	assert.Equal(t, "Wireless Noise Cancelling Headphones", p.Name)
	assert.Equal(t, "SoundWave", p.Brand)
	assert.InDelta(t, 1249.99, p.Price, 0.001)
	assert.InDelta(t, 4.3, p.Rating, 0.001)
	assert.Equal(t, 1542, p.Reviews)
	assert.Equal(t, "https://images.example.com/B000HDPHONE.jpg", p.Image)

	assert.InDelta(t, 187.50, p.ReferralFee, 0.01, "referral estimated at 15%")
	assert.InDelta(t, 0.50, p.StorageFee, 0.001)
	assert.Equal(t, 1, p.Sellers)
}

func TestScrapeClient_Lookup_SparsePage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><span id="productTitle">Bare Widget</span></body></html>`))
	}))
	defer srv.Close()

	c := amazon.NewScrapeClient(amazon.WithScrapeBaseURL(srv.URL))

	p, err := c.Lookup(context.Background(), "B000SPARSE1")
	require.NoError(t, err)

	assert.Equal(t, "Bare Widget", p.Name)
	assert.Equal(t, "Unknown", p.Brand)
	assert.Zero(t, p.Price)
	assert.InDelta(t, 4.0, p.Rating, 0.001, "missing rating falls back to the default")
	assert.Contains(t, p.Image, "picsum", "missing image falls back to a placeholder")
}

func TestScrapeClient_Lookup_NoTitle(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>Robot check</p></body></html>`))
	}))
	defer srv.Close()

	c := amazon.NewScrapeClient(amazon.WithScrapeBaseURL(srv.URL))

	_, err := c.Lookup(context.Background(), "B000BLOCKED")
	assert.ErrorIs(t, err, amazon.ErrNotFound)
}

func TestScrapeClient_Lookup_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := amazon.NewScrapeClient(amazon.WithScrapeBaseURL(srv.URL))

	_, err := c.Lookup(context.Background(), "B000MISSING")
	assert.ErrorIs(t, err, amazon.ErrNotFound)
}

func TestScrapeClient_Lookup_EmptyASIN(t *testing.T) {
	t.Parallel()

	c := amazon.NewScrapeClient()

	_, err := c.Lookup(context.Background(), "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "asin is required")
}

func TestMockSource_Lookup(t *testing.T) {
	t.Parallel()

	src := amazon.NewMockSource()

	first, err := src.Lookup(context.Background(), "B000DETERM1")
	require.NoError(t, err)
	second, err := src.Lookup(context.Background(), "B000DETERM1")
	require.NoError(t, err)

	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, first.Price, second.Price)
	assert.Equal(t, first.Rank, second.Rank)
	assert.Len(t, first.PriceHistory, 91)
}

func TestMockSource_Lookup_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := amazon.NewMockSource().Lookup(ctx, "B000DETERM1")
	assert.ErrorIs(t, err, context.Canceled)
}
