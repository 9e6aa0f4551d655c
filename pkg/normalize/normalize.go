// Package normalize converts loosely shaped product payloads from
// upstream data sources into canonical catalog records. Upstream feeds
// disagree on field names (title vs name, bsr vs rank, estSales vs
// estimatedSales), omit fields freely, and mix number and string types,
// so everything funnels through here before entering the catalog.
package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"

	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

var validate = validator.New()

// record is the shape enforced on normalized output.
type record struct {
	ID     string  `validate:"required"`
	Name   string  `validate:"required"`
	Price  float64 `validate:"gte=0"`
	Rating float64 `validate:"gte=0,lte=5"`
	BSR    int     `validate:"gte=0"`
}

// FromJSON normalizes a single raw JSON object into a Product.
func FromJSON(raw []byte) (*domain.Product, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("normalize: invalid JSON payload")
	}
	return FromResult(gjson.ParseBytes(raw))
}

// SliceFromJSON normalizes a raw JSON array of product objects.
// Individual elements that fail validation are skipped rather than
// failing the whole batch.
func SliceFromJSON(raw []byte) ([]*domain.Product, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("normalize: invalid JSON payload")
	}
	parsed := gjson.ParseBytes(raw)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("normalize: expected a JSON array")
	}

	var out []*domain.Product
	for _, item := range parsed.Array() {
		p, err := FromResult(item)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// FromResult maps a parsed upstream object onto the canonical Product
// shape, resolving field aliases and filling defaults for anything the
// source omitted.
func FromResult(r gjson.Result) (*domain.Product, error) {
	asin := firstString(r, "asin", "id")
	id := asin

	p := &domain.Product{
		ID:          id,
		ASIN:        asin,
		Name:        stringOr(firstString(r, "title", "name"), "Unknown Product"),
		Brand:       stringOr(r.Get("brand").String(), "Unknown"),
		Category:    stringOr(r.Get("category").String(), "Misc"),
		SubCategory: r.Get("subCategory").String(),
		Price:       r.Get("price").Float(),
		Image:       stringOr(r.Get("image").String(), PlaceholderImage(id)),
		Rating:      floatOr(r.Get("rating"), 4.0),
		Reviews:     int(r.Get("reviews").Int()),
		Trend:       r.Get("trend").Float(),
		Description: r.Get("description").String(),

		PriceHistory: pricePoints(r.Get("priceHistory")),
		RankHistory:  rankPoints(r.Get("bsrHistory")),

		Rank:           intAlias(r, "bsr", "rank"),
		EstimatedSales: intAlias(r, "estSales", "estimatedSales"),

		ReferralFee:    r.Get("referralFee").Float(),
		FulfillmentFee: r.Get("fbaFee").Float(),
		StorageFee:     floatOr(r.Get("storageFee"), 0.50),

		Weight:     r.Get("weight").String(),
		Dimensions: r.Get("dimensions").String(),
		Sellers:    int(floatOr(r.Get("sellers"), 1)),

		IsHazmat:    r.Get("isHazmat").Bool(),
		IsIPRisk:    r.Get("isIpRisk").Bool(),
		IsOversized: r.Get("isOversized").Bool(),

		SupplierURL: r.Get("supplierUrl").String(),
		Notes:       r.Get("notes").String(),
	}

	if tags := r.Get("seasonalityTags"); tags.IsArray() {
		for _, t := range tags.Array() {
			p.SeasonalityTags = append(p.SeasonalityTags, domain.Season(t.String()))
		}
	}
	if len(p.SeasonalityTags) == 0 {
		p.SeasonalityTags = []domain.Season{domain.SeasonEvergreen}
	}

	if roi := r.Get("targetRoi"); roi.Exists() {
		v := roi.Float()
		p.TargetROI = &v
	}

	if a := r.Get("analysis"); a.IsObject() {
		var analysis domain.Analysis
		if err := json.Unmarshal([]byte(a.Raw), &analysis); err == nil {
			p.Analysis = &analysis
		}
	}

	if err := validate.Struct(record{
		ID:     p.ID,
		Name:   p.Name,
		Price:  p.Price,
		Rating: p.Rating,
		BSR:    p.Rank,
	}); err != nil {
		return nil, fmt.Errorf("normalize %q: %w", p.ID, err)
	}
	return p, nil
}

// PlaceholderImage returns a stable stand-in image URL for records that
// arrive without one. The same identifier always maps to the same URL.
func PlaceholderImage(id string) string {
	return fmt.Sprintf("https://picsum.photos/400/400?random=%s", id)
}

func firstString(r gjson.Result, keys ...string) string {
	for _, k := range keys {
		if v := r.Get(k); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

func intAlias(r gjson.Result, keys ...string) int {
	for _, k := range keys {
		if v := r.Get(k); v.Exists() && v.Int() != 0 {
			return int(v.Int())
		}
	}
	return 0
}

func stringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func floatOr(v gjson.Result, fallback float64) float64 {
	if !v.Exists() {
		return fallback
	}
	return v.Float()
}

func pricePoints(v gjson.Result) []domain.PricePoint {
	if !v.IsArray() {
		return nil
	}
	var out []domain.PricePoint
	for _, e := range v.Array() {
		out = append(out, domain.PricePoint{
			Date:  e.Get("date").String(),
			Price: e.Get("price").Float(),
		})
	}
	return out
}

func rankPoints(v gjson.Result) []domain.RankPoint {
	if !v.IsArray() {
		return nil
	}
	var out []domain.RankPoint
	for _, e := range v.Array() {
		out = append(out, domain.RankPoint{
			Date: e.Get("date").String(),
			Rank: int(e.Get("rank").Int()),
		})
	}
	return out
}
