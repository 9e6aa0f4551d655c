package handlers_test

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/viraladmedia/amzpulse/internal/api/handlers"
	"github.com/viraladmedia/amzpulse/internal/catalog"
)

func TestGetScore(t *testing.T) {
	t.Parallel()

	p := catalogProduct("B000AUDIO01", "Wireless Headphones", "Electronics", 100)
	p.Reviews = 2400
	p.Trend = 12

	cat := catalog.New(p)
	_, api := humatest.New(t)
	handlers.RegisterScoreRoutes(api, handlers.NewScoreHandler(cat))

	resp := api.Get("/api/products/b000audio01/score")
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	total := gjson.Get(body, "total").Int()
	assert.Positive(t, total)
	assert.LessOrEqual(t, total, int64(100))
	for _, factor := range []string{"demand", "margin", "competition", "proof", "momentum", "risk"} {
		assert.True(t, gjson.Get(body, factor).Exists(), factor)
	}
}

func TestGetScore_UnknownProduct(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterScoreRoutes(api, handlers.NewScoreHandler(catalog.New()))

	resp := api.Get("/api/products/B000MISSING/score")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
