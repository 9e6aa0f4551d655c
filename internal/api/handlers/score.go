package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/viraladmedia/amzpulse/internal/catalog"
	score "github.com/viraladmedia/amzpulse/pkg/scorer"
)

// ScoreHandler serves the deterministic opportunity score.
type ScoreHandler struct {
	catalog *catalog.Catalog
}

// NewScoreHandler creates a new ScoreHandler.
func NewScoreHandler(cat *catalog.Catalog) *ScoreHandler {
	return &ScoreHandler{catalog: cat}
}

// ScoreInput is the input for an opportunity-score request.
type ScoreInput struct {
	ASIN string `path:"asin"`
}

// ScoreOutput is the opportunity-score response.
type ScoreOutput struct {
	Body score.Breakdown
}

// Get computes the opportunity breakdown for a catalog product.
func (h *ScoreHandler) Get(_ context.Context, input *ScoreInput) (*ScoreOutput, error) {
	asin := strings.ToUpper(strings.TrimSpace(input.ASIN))
	p, ok := h.catalog.GetByASIN(asin)
	if !ok {
		return nil, huma.Error404NotFound("product not in the catalog, look it up first")
	}
	return &ScoreOutput{Body: score.Score(p, score.DefaultWeights())}, nil
}

// RegisterScoreRoutes registers the opportunity-score endpoint with
// the Huma API.
func RegisterScoreRoutes(api huma.API, h *ScoreHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "score-product",
		Method:      http.MethodGet,
		Path:        "/api/products/{asin}/score",
		Summary:     "Compute the opportunity score",
		Description: "Deterministic composite score from rank, fee margin, competition, reviews, trend, and risk flags. No model call and no usage metering.",
		Tags:        []string{"analysis"},
		Errors:      []int{http.StatusNotFound},
	}, h.Get)
}
