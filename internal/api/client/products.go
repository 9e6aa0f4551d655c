package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/viraladmedia/amzpulse/pkg/profit"
	score "github.com/viraladmedia/amzpulse/pkg/scorer"
	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

// ProductRecord is a product plus the optional degradation warning the
// server attaches when live data was unavailable.
type ProductRecord struct {
	domain.Product
	Warning string `json:"warning,omitempty"`
}

// ListProducts runs the filter engine server-side and returns the
// matching products.
func (c *Client) ListProducts(ctx context.Context, view domain.View, criteria domain.FilterCriteria) ([]*domain.Product, error) {
	q := url.Values{}
	if view != "" {
		q.Set("view", string(view))
	}
	if criteria.Category != "" {
		q.Set("category", criteria.Category)
	}
	if criteria.SubCategory != "" {
		q.Set("subCategory", criteria.SubCategory)
	}
	if criteria.MinPrice > 0 {
		q.Set("minPrice", strconv.FormatFloat(criteria.MinPrice, 'f', -1, 64))
	}
	if criteria.MaxPrice > 0 {
		q.Set("maxPrice", strconv.FormatFloat(criteria.MaxPrice, 'f', -1, 64))
	}
	if criteria.Search != "" {
		q.Set("search", criteria.Search)
	}

	path := "/api/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp struct {
		Products []*domain.Product `json:"products"`
		Total    int               `json:"total"`
	}
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// GetProduct looks up one ASIN. A non-empty Warning on the record
// means the server served an estimated placeholder.
func (c *Client) GetProduct(ctx context.Context, asin string) (*ProductRecord, error) {
	var rec ProductRecord
	if err := c.get(ctx, "/api/products/"+url.PathEscape(asin), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// FinancialInputs are the optional user costs sent with assessments
// and profit calculations.
type FinancialInputs struct {
	BuyCost          float64 `json:"buyCost,omitempty"`
	PrepCost         float64 `json:"prepCost,omitempty"`
	InboundShipping  float64 `json:"inboundShipping,omitempty"`
	OutboundShipping float64 `json:"outboundShipping,omitempty"`
	Fulfillment      string  `json:"fulfillment,omitempty"`
	SalePrice        float64 `json:"salePrice,omitempty"`
}

// Analyze requests an AI sell-potential assessment for a catalog
// product. Financials are optional cost context.
func (c *Client) Analyze(ctx context.Context, asin string, fin *FinancialInputs) (*domain.Analysis, error) {
	body := map[string]any{}
	if fin != nil {
		body["financials"] = fin
	}
	var a domain.Analysis
	if err := c.post(ctx, fmt.Sprintf("/api/products/%s/analyze", url.PathEscape(asin)), body, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Profit runs the fee/ROI calculator for a catalog product.
func (c *Client) Profit(ctx context.Context, asin string, fin FinancialInputs) (*profit.Result, error) {
	var r profit.Result
	if err := c.post(ctx, fmt.Sprintf("/api/products/%s/profit", url.PathEscape(asin)), fin, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Score returns the deterministic opportunity breakdown for a catalog
// product.
func (c *Client) Score(ctx context.Context, asin string) (*score.Breakdown, error) {
	var b score.Breakdown
	if err := c.get(ctx, fmt.Sprintf("/api/products/%s/score", url.PathEscape(asin)), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// BatchResult is the batch resolution response.
type BatchResult struct {
	Products []ProductRecord `json:"products"`
	Warning  string          `json:"warning,omitempty"`
}

// BatchAnalyze resolves a list of ASINs in one request. Items that
// could not be fetched live carry a per-record warning.
func (c *Client) BatchAnalyze(ctx context.Context, asins []string) (*BatchResult, error) {
	body := map[string][]string{"asins": asins}
	var r BatchResult
	if err := c.post(ctx, "/api/batch/analyze", body, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Categories returns the marketplace category taxonomy.
func (c *Client) Categories(ctx context.Context) ([]string, map[string][]string, error) {
	var resp struct {
		Categories []string            `json:"categories"`
		Tree       map[string][]string `json:"tree"`
	}
	if err := c.get(ctx, "/api/categories", &resp); err != nil {
		return nil, nil, err
	}
	return resp.Categories, resp.Tree, nil
}
