package handlers_test

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/viraladmedia/amzpulse/internal/api/handlers"
)

func TestListCategories(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterCategoryRoutes(api, handlers.NewCategoriesHandler())

	resp := api.Get("/api/categories")
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Positive(t, gjson.Get(body, "categories.#").Int())
	assert.Contains(t, body, "Electronics")

	// Every top-level category has a slot in the tree.
	for _, c := range gjson.Get(body, "categories").Array() {
		assert.True(t, gjson.Get(body, "tree").Get(c.String()).Exists(), c.String())
	}
}
