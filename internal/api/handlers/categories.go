package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/viraladmedia/amzpulse/internal/taxonomy"
)

// CategoriesHandler serves the marketplace category taxonomy.
type CategoriesHandler struct{}

// NewCategoriesHandler creates a new CategoriesHandler.
func NewCategoriesHandler() *CategoriesHandler {
	return &CategoriesHandler{}
}

// ListCategoriesOutput is the taxonomy response.
type ListCategoriesOutput struct {
	Body struct {
		Categories []string            `json:"categories"`
		Tree       map[string][]string `json:"tree"`
	}
}

// List returns every category with its sub-categories.
func (*CategoriesHandler) List(_ context.Context, _ *struct{}) (*ListCategoriesOutput, error) {
	resp := &ListCategoriesOutput{}
	resp.Body.Categories = taxonomy.Categories()
	resp.Body.Tree = taxonomy.Tree()
	return resp, nil
}

// RegisterCategoryRoutes registers the taxonomy endpoint with the Huma
// API.
func RegisterCategoryRoutes(api huma.API, h *CategoriesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/api/categories",
		Summary:     "List the category taxonomy",
		Tags:        []string{"products"},
	}, h.List)
}
