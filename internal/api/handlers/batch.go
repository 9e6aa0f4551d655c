package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/viraladmedia/amzpulse/internal/amazon"
	"github.com/viraladmedia/amzpulse/internal/auth"
	"github.com/viraladmedia/amzpulse/internal/cache"
	"github.com/viraladmedia/amzpulse/internal/catalog"
	"github.com/viraladmedia/amzpulse/internal/store"
	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

// BatchHandler resolves a list of ASINs in one request so clients
// never fan out per identifier.
type BatchHandler struct {
	catalog *catalog.Catalog
	store   store.Store
	source  amazon.Source
	cache   cache.Cache
	auth    *auth.Manager
	log     *slog.Logger
}

// NewBatchHandler creates a new BatchHandler.
func NewBatchHandler(
	cat *catalog.Catalog,
	s store.Store,
	src amazon.Source,
	c cache.Cache,
	m *auth.Manager,
	log *slog.Logger,
) *BatchHandler {
	return &BatchHandler{
		catalog: cat,
		store:   s,
		source:  src,
		cache:   c,
		auth:    m,
		log:     log,
	}
}

// BatchAnalyzeInput is the input for a batch resolution.
type BatchAnalyzeInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Body          struct {
		ASINs []string `json:"asins" doc:"Identifiers to resolve" minItems:"1" maxItems:"100"`
	}
}

// BatchAnalyzeOutput is the batch response. Every requested ASIN gets
// a record; unreachable ones come back as estimated placeholders and
// are listed in the warning.
type BatchAnalyzeOutput struct {
	Body struct {
		Products []ProductPayload `json:"products"`
		Warning  string           `json:"warning,omitempty"`
	}
}

// Analyze resolves every requested ASIN, preferring the catalog and
// cache over upstream calls. Upstream failures degrade per item to a
// placeholder record instead of failing the batch.
func (h *BatchHandler) Analyze(ctx context.Context, input *BatchAnalyzeInput) (*BatchAnalyzeOutput, error) {
	claims, err := h.claims(input.Authorization)
	if err != nil {
		return nil, huma.Error401Unauthorized("batch analysis requires a session token")
	}

	asins := dedupeASINs(input.Body.ASINs)
	if len(asins) == 0 {
		return nil, huma.Error400BadRequest("no valid asins in request")
	}

	event := &domain.UsageEvent{UserID: claims.UserID, Kind: domain.UsageBatch}
	if err := h.store.InsertUsageEvent(ctx, event); err != nil {
		h.log.Warn("recording usage failed", "user", claims.UserID, "error", err)
	}

	resp := &BatchAnalyzeOutput{}
	resp.Body.Products = make([]ProductPayload, 0, len(asins))

	var failed []string
	for _, asin := range asins {
		if ctx.Err() != nil {
			return nil, huma.Error503ServiceUnavailable("batch interrupted: " + ctx.Err().Error())
		}

		p, fromLive := h.resolve(ctx, asin)
		payload := ProductPayload{Product: *p}
		if !fromLive {
			payload.Warning = lookupWarning
			failed = append(failed, asin)
		}
		resp.Body.Products = append(resp.Body.Products, payload)
	}

	if len(failed) > 0 {
		resp.Body.Warning = fmt.Sprintf(
			"%d of %d products could not be fetched live: %s",
			len(failed), len(asins), strings.Join(failed, ", "),
		)
	}

	return resp, nil
}

// resolve returns the record for one ASIN and whether it came from
// live data rather than a synthesized placeholder.
func (h *BatchHandler) resolve(ctx context.Context, asin string) (*domain.Product, bool) {
	if p, ok := h.catalog.GetByASIN(asin); ok {
		return p, true
	}

	if p, err := h.cache.GetProduct(ctx, asin); err == nil {
		h.catalog.Upsert(p)
		return p, true
	}

	p, err := h.source.Lookup(ctx, asin)
	if err != nil {
		h.log.Warn("batch item fetch failed", "asin", asin, "error", err)
		if mock, mockErr := amazon.NewMockSource().Lookup(ctx, asin); mockErr == nil {
			return mock, false
		}
		return &domain.Product{ID: asin, ASIN: asin, Name: "Unknown Product"}, false
	}

	if err := h.cache.SetProduct(ctx, p); err != nil {
		h.log.Warn("caching product failed", "asin", asin, "error", err)
	}
	h.catalog.Upsert(p)
	return p, true
}

func (h *BatchHandler) claims(header string) (*auth.Claims, error) {
	token := auth.BearerToken(header)
	if token == "" {
		return nil, auth.ErrInvalidToken
	}
	return h.auth.ParseToken(token)
}

// dedupeASINs trims, uppercases, and de-duplicates while preserving
// request order.
func dedupeASINs(asins []string) []string {
	seen := make(map[string]bool, len(asins))
	out := make([]string, 0, len(asins))
	for _, a := range asins {
		a = strings.ToUpper(strings.TrimSpace(a))
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}

// RegisterBatchRoutes registers the batch endpoint with the Huma API.
func RegisterBatchRoutes(api huma.API, h *BatchHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "batch-analyze",
		Method:      http.MethodPost,
		Path:        "/api/batch/analyze",
		Summary:     "Resolve a batch of ASINs",
		Description: "Returns a record for every requested ASIN in one call. Items that cannot be fetched live come back as estimated placeholders with a warning.",
		Tags:        []string{"analysis"},
		Errors:      []int{http.StatusUnauthorized, http.StatusBadRequest},
	}, h.Analyze)
}
