package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/viraladmedia/amzpulse/internal/auth"
	"github.com/viraladmedia/amzpulse/internal/catalog"
	"github.com/viraladmedia/amzpulse/internal/metrics"
	"github.com/viraladmedia/amzpulse/internal/store"
	"github.com/viraladmedia/amzpulse/pkg/assess"
	"github.com/viraladmedia/amzpulse/pkg/profit"
	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

// AnalyzeHandler runs AI sell-potential assessments and the fee/ROI
// calculator for catalog products.
type AnalyzeHandler struct {
	catalog    *catalog.Catalog
	store      store.Store
	assessor   assess.Assessor
	auth       *auth.Manager
	dailyLimit int
	inflight   *catalog.Inflight[*domain.Analysis]
	log        *slog.Logger
}

// NewAnalyzeHandler creates a new AnalyzeHandler. dailyLimit is the
// free plan's daily assessment quota.
func NewAnalyzeHandler(
	cat *catalog.Catalog,
	s store.Store,
	a assess.Assessor,
	m *auth.Manager,
	dailyLimit int,
	log *slog.Logger,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		catalog:    cat,
		store:      s,
		assessor:   a,
		auth:       m,
		dailyLimit: dailyLimit,
		inflight:   catalog.NewInflight[*domain.Analysis](),
		log:        log,
	}
}

// --- Input/Output types ---

// FinancialInputs are the optional user costs for an assessment or a
// profit calculation.
type FinancialInputs struct {
	BuyCost          float64 `json:"buyCost"          doc:"Unit acquisition cost"                  minimum:"0"`
	PrepCost         float64 `json:"prepCost"         doc:"Per-unit prep cost"                     minimum:"0"`
	InboundShipping  float64 `json:"inboundShipping"  doc:"Per-unit inbound shipping"              minimum:"0"`
	OutboundShipping float64 `json:"outboundShipping" doc:"Per-unit outbound shipping (FBM only)"  minimum:"0"`
	Fulfillment      string  `json:"fulfillment,omitempty" doc:"FBA or FBM"                        enum:"FBA,FBM,"`
	SalePrice        float64 `json:"salePrice,omitempty"   doc:"Override sale price, 0 uses the listed price" minimum:"0"`
}

// AnalyzeInput is the input for a single-product assessment.
type AnalyzeInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ASIN          string `path:"asin"`
	Body          struct {
		Financials *FinancialInputs `json:"financials,omitempty" doc:"Optional cost context for the assessment"`
	}
}

// AnalyzeOutput is the assessment response.
type AnalyzeOutput struct {
	Body domain.Analysis
}

// ProfitInput is the input for the fee/ROI calculator.
type ProfitInput struct {
	ASIN string `path:"asin"`
	Body FinancialInputs
}

// ProfitOutput is the calculator response.
type ProfitOutput struct {
	Body profit.Result
}

// --- Handlers ---

// Analyze runs the AI assessment for a catalog product. An LLM failure
// degrades to the static fallback analysis, never an error status.
func (h *AnalyzeHandler) Analyze(ctx context.Context, input *AnalyzeInput) (*AnalyzeOutput, error) {
	claims, err := h.claims(input.Authorization)
	if err != nil {
		return nil, huma.Error401Unauthorized("assessments require a session token")
	}

	asin := strings.ToUpper(strings.TrimSpace(input.ASIN))
	p, ok := h.catalog.GetByASIN(asin)
	if !ok {
		return nil, huma.Error404NotFound("product not in the catalog, look it up first")
	}

	if err := h.checkQuota(ctx, claims); err != nil {
		return nil, err
	}
	h.meter(ctx, claims.UserID, domain.UsageAssessment, asin)

	var fin *assess.Financials
	if f := input.Body.Financials; f != nil && f.BuyCost > 0 {
		in := f.toInputs(p)
		result := profit.Compute(p, in)
		fin = &assess.Financials{
			BuyCost: f.BuyCost,
			Profit:  result.Profit,
			ROI:     result.ROI,
		}
	}

	// Concurrent requests for the same ASIN share one model call: the
	// first caller runs the assessment, later arrivals wait for its
	// result.
	analysis, err := h.inflight.Do(ctx, asin, func(ctx context.Context) (*domain.Analysis, error) {
		start := time.Now()
		a := h.assessor.AssessOrFallback(ctx, p, fin)
		metrics.AssessmentDuration.Observe(time.Since(start).Seconds())
		metrics.AssessmentScores.Observe(float64(a.Score))
		if a.Summary == assess.Fallback().Summary {
			metrics.AssessmentFallbacksTotal.Inc()
		}

		h.catalog.SetAnalysis(p.ID, a)
		if updated, ok := h.catalog.Get(p.ID); ok {
			if err := h.store.UpsertProduct(ctx, updated); err != nil {
				h.log.Warn("persisting analysis failed", "asin", asin, "error", err)
			}
		}
		return a, nil
	})
	if err != nil {
		// Only a waiter whose context expired lands here.
		return nil, huma.NewError(http.StatusServiceUnavailable, "assessment interrupted: "+err.Error())
	}

	return &AnalyzeOutput{Body: *analysis}, nil
}

// Profit runs the fee/ROI calculator for a catalog product.
func (h *AnalyzeHandler) Profit(ctx context.Context, input *ProfitInput) (*ProfitOutput, error) {
	asin := strings.ToUpper(strings.TrimSpace(input.ASIN))
	p, ok := h.catalog.GetByASIN(asin)
	if !ok {
		return nil, huma.Error404NotFound("product not in the catalog, look it up first")
	}

	return &ProfitOutput{Body: profit.Compute(p, input.Body.toInputs(p))}, nil
}

func (f *FinancialInputs) toInputs(p *domain.Product) profit.Inputs {
	in := profit.Inputs{
		SalePrice:        f.SalePrice,
		BuyCost:          f.BuyCost,
		PrepCost:         f.PrepCost,
		InboundShipping:  f.InboundShipping,
		OutboundShipping: f.OutboundShipping,
		Fulfillment:      domain.Fulfillment(f.Fulfillment),
	}
	if in.SalePrice == 0 {
		in.SalePrice = p.Price
	}
	if in.Fulfillment == "" {
		in.Fulfillment = domain.FulfillmentFBA
	}
	return in
}

func (h *AnalyzeHandler) claims(header string) (*auth.Claims, error) {
	token := auth.BearerToken(header)
	if token == "" {
		return nil, auth.ErrInvalidToken
	}
	return h.auth.ParseToken(token)
}

// checkQuota enforces the free plan's daily assessment limit.
func (h *AnalyzeHandler) checkQuota(ctx context.Context, claims *auth.Claims) error {
	if claims.Plan == domain.PlanPro {
		return nil
	}

	counts, err := h.store.CountUsageSince(ctx, claims.UserID, time.Now().Add(-24*time.Hour))
	if err != nil {
		return huma.Error500InternalServerError("usage check failed: " + err.Error())
	}
	if counts[domain.UsageAssessment] >= h.dailyLimit {
		return huma.NewError(http.StatusTooManyRequests, "daily assessment limit reached, upgrade to pro for unlimited assessments")
	}
	return nil
}

func (h *AnalyzeHandler) meter(ctx context.Context, userID, kind, asin string) {
	event := &domain.UsageEvent{UserID: userID, Kind: kind, ASIN: asin}
	if err := h.store.InsertUsageEvent(ctx, event); err != nil {
		h.log.Warn("recording usage failed", "user", userID, "kind", kind, "error", err)
	}
}

// RegisterAnalyzeRoutes registers the assessment and calculator
// endpoints with the Huma API.
func RegisterAnalyzeRoutes(api huma.API, h *AnalyzeHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "analyze-product",
		Method:      http.MethodPost,
		Path:        "/api/products/{asin}/analyze",
		Summary:     "Assess a product's sell potential",
		Description: "Requests a structured AI assessment for a catalog product. Model failures return the static fallback analysis rather than an error.",
		Tags:        []string{"analysis"},
		Errors:      []int{http.StatusUnauthorized, http.StatusNotFound, http.StatusTooManyRequests},
	}, h.Analyze)

	huma.Register(api, huma.Operation{
		OperationID: "calculate-profit",
		Method:      http.MethodPost,
		Path:        "/api/products/{asin}/profit",
		Summary:     "Calculate fees, profit, ROI, and margin",
		Tags:        []string{"analysis"},
		Errors:      []int{http.StatusNotFound},
	}, h.Profit)
}
