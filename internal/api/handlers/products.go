package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/viraladmedia/amzpulse/internal/amazon"
	"github.com/viraladmedia/amzpulse/internal/auth"
	"github.com/viraladmedia/amzpulse/internal/cache"
	"github.com/viraladmedia/amzpulse/internal/catalog"
	"github.com/viraladmedia/amzpulse/internal/metrics"
	"github.com/viraladmedia/amzpulse/internal/store"
	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

// lookupWarning is attached to placeholder records when live data
// could not be fetched.
const lookupWarning = "live data unavailable, showing estimated values"

// ProductsHandler serves the catalog listing and ASIN lookup.
type ProductsHandler struct {
	catalog  *catalog.Catalog
	store    store.Store
	source   amazon.Source
	cache    cache.Cache
	inflight *catalog.Inflight[*domain.Product]
	auth     *auth.Manager
	log      *slog.Logger
}

// NewProductsHandler creates a new ProductsHandler.
func NewProductsHandler(
	cat *catalog.Catalog,
	s store.Store,
	src amazon.Source,
	c cache.Cache,
	m *auth.Manager,
	log *slog.Logger,
) *ProductsHandler {
	return &ProductsHandler{
		catalog:  cat,
		store:    s,
		source:   src,
		cache:    c,
		inflight: catalog.NewInflight[*domain.Product](),
		auth:     m,
		log:      log,
	}
}

// --- Input/Output types ---

// ListProductsInput carries the filter criteria for the catalog view.
type ListProductsInput struct {
	Authorization string  `header:"Authorization" doc:"Bearer token, required for the watchlist view"`
	View          string  `query:"view"           doc:"Catalog slice"                                 enum:"dashboard,research,watchlist,"`
	Category      string  `query:"category"       doc:"Exact category match"`
	SubCategory   string  `query:"subCategory"    doc:"Exact sub-category match"`
	MinPrice      float64 `query:"minPrice"       doc:"Price floor, 0 means unset"                    minimum:"0"`
	MaxPrice      float64 `query:"maxPrice"       doc:"Price ceiling, 0 means unset"                  minimum:"0"`
	Search        string  `query:"search"         doc:"Case-insensitive substring over name, ASIN, brand, and category"`
}

// ListProductsOutput is the response for the catalog listing.
type ListProductsOutput struct {
	Body struct {
		Products []*domain.Product `json:"products"`
		Total    int               `json:"total"`
	}
}

// GetProductInput is the input for a single-ASIN lookup.
type GetProductInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token, optional"`
	ASIN          string `path:"asin"            doc:"Amazon Standard Identification Number"`
}

// ProductPayload is a product plus an optional non-fatal warning.
type ProductPayload struct {
	domain.Product
	Warning string `json:"warning,omitempty"`
}

// GetProductOutput is the response for a single-ASIN lookup.
type GetProductOutput struct {
	Body ProductPayload
}

// --- Handlers ---

// List runs the filter engine over the catalog.
func (h *ProductsHandler) List(ctx context.Context, input *ListProductsInput) (*ListProductsOutput, error) {
	view := domain.View(input.View)
	if view == "" {
		view = domain.ViewDashboard
	}

	var saved map[string]bool
	if view == domain.ViewWatchlist {
		claims, err := h.claims(input.Authorization)
		if err != nil {
			return nil, huma.Error401Unauthorized("the watchlist view requires a session token")
		}

		items, err := h.store.ListWatches(ctx, claims.UserID)
		if err != nil {
			return nil, huma.Error500InternalServerError("watchlist unavailable: " + err.Error())
		}
		saved = make(map[string]bool, len(items))
		for _, item := range items {
			saved[item.ProductID] = true
		}
	}

	products := catalog.Filter(h.catalog.List(), view, saved, domain.FilterCriteria{
		Category:    input.Category,
		SubCategory: input.SubCategory,
		MinPrice:    input.MinPrice,
		MaxPrice:    input.MaxPrice,
		Search:      input.Search,
	})

	resp := &ListProductsOutput{}
	resp.Body.Products = products
	resp.Body.Total = len(products)
	return resp, nil
}

// Get returns a product by ASIN. Known products come straight from the
// catalog; unknown ones are fetched upstream, with concurrent requests
// for the same ASIN collapsed into a single fetch. An upstream failure
// degrades to a synthesized placeholder with a warning, never an error.
func (h *ProductsHandler) Get(ctx context.Context, input *GetProductInput) (*GetProductOutput, error) {
	start := time.Now()
	defer func() {
		metrics.LookupDuration.Observe(time.Since(start).Seconds())
	}()

	asin := strings.ToUpper(strings.TrimSpace(input.ASIN))
	if asin == "" {
		return nil, huma.Error400BadRequest("asin is required")
	}

	h.meter(ctx, input.Authorization, domain.UsageLookup, asin)

	if p, ok := h.catalog.GetByASIN(asin); ok {
		metrics.LookupsTotal.WithLabelValues("catalog").Inc()
		return &GetProductOutput{Body: ProductPayload{Product: *p}}, nil
	}

	if p, err := h.cache.GetProduct(ctx, asin); err == nil {
		metrics.LookupsTotal.WithLabelValues("cached").Inc()
		h.catalog.Upsert(p)
		return &GetProductOutput{Body: ProductPayload{Product: *p}}, nil
	}

	if h.inflight.Active(asin) {
		metrics.CollapsedLookupsTotal.Inc()
	}

	p, err := h.inflight.Do(ctx, asin, func(ctx context.Context) (*domain.Product, error) {
		fetched, err := h.source.Lookup(ctx, asin)
		if err != nil {
			return nil, err
		}

		if err := h.cache.SetProduct(ctx, fetched); err != nil {
			h.log.Warn("caching product failed", "asin", asin, "error", err)
		}
		if err := h.store.UpsertProduct(ctx, fetched); err != nil {
			h.log.Warn("persisting product failed", "asin", asin, "error", err)
		}
		h.catalog.Upsert(fetched)
		return fetched, nil
	})
	if err != nil {
		h.log.Warn("upstream lookup failed, synthesizing placeholder",
			"asin", asin,
			"source", h.source.Name(),
			"error", err,
		)
		metrics.LookupsTotal.WithLabelValues("mock").Inc()

		placeholder := h.placeholder(asin)
		h.catalog.Upsert(placeholder)
		return &GetProductOutput{Body: ProductPayload{
			Product: *placeholder,
			Warning: lookupWarning,
		}}, nil
	}

	metrics.LookupsTotal.WithLabelValues("upstream").Inc()
	return &GetProductOutput{Body: ProductPayload{Product: *p}}, nil
}

// placeholder synthesizes a deterministic stand-in record for an ASIN.
func (h *ProductsHandler) placeholder(asin string) *domain.Product {
	if p, err := amazon.NewMockSource().Lookup(context.Background(), asin); err == nil {
		return p
	}
	return &domain.Product{ID: asin, ASIN: asin, Name: "Unknown Product"}
}

// claims parses an optional bearer token. It returns an error only
// when the header is missing or the token does not verify.
func (h *ProductsHandler) claims(header string) (*auth.Claims, error) {
	token := auth.BearerToken(header)
	if token == "" {
		return nil, auth.ErrInvalidToken
	}
	return h.auth.ParseToken(token)
}

// meter records a usage event for authenticated callers. Metering is
// best-effort and never blocks the lookup.
func (h *ProductsHandler) meter(ctx context.Context, header, kind, asin string) {
	claims, err := h.claims(header)
	if err != nil {
		return
	}
	event := &domain.UsageEvent{UserID: claims.UserID, Kind: kind, ASIN: asin}
	if err := h.store.InsertUsageEvent(ctx, event); err != nil {
		h.log.Warn("recording usage failed", "user", claims.UserID, "kind", kind, "error", err)
	}
}

// RegisterProductRoutes registers the catalog endpoints with the Huma
// API.
func RegisterProductRoutes(api huma.API, h *ProductsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-products",
		Method:      http.MethodGet,
		Path:        "/api/products",
		Summary:     "List catalog products",
		Description: "Runs the six-pass filter over the catalog and returns the matching products.",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusUnauthorized},
	}, h.List)

	huma.Register(api, huma.Operation{
		OperationID: "get-product",
		Method:      http.MethodGet,
		Path:        "/api/products/{asin}",
		Summary:     "Look up a product by ASIN",
		Description: "Returns the catalog record for an ASIN, fetching it upstream when unknown. Upstream failures degrade to an estimated placeholder with a warning.",
		Tags:        []string{"products"},
	}, h.Get)
}
