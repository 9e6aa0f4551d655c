package normalize

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

var mockBrands = []string{
	"Anker", "Nike", "Lego", "Sony", "Keurig",
	"Logitech", "Adidas", "Instant Pot", "Funko", "Dove",
}

// Override tweaks a generated mock product before its fee fields and
// histories are derived, so fees stay consistent with the final price.
type Override func(*domain.Product)

// WithName sets the product title.
func WithName(name string) Override {
	return func(p *domain.Product) { p.Name = name }
}

// WithCategory sets the top-level category.
func WithCategory(c string) Override {
	return func(p *domain.Product) { p.Category = c }
}

// WithPrice sets the current price.
func WithPrice(v float64) Override {
	return func(p *domain.Product) { p.Price = v }
}

// WithBSR sets the current best sellers rank.
func WithBSR(v int) Override {
	return func(p *domain.Product) { p.Rank = v }
}

// WithEstimatedSales sets the monthly sales estimate.
func WithEstimatedSales(v int) Override {
	return func(p *domain.Product) { p.EstimatedSales = v }
}

// WithSellers sets the competing seller count.
func WithSellers(v int) Override {
	return func(p *domain.Product) { p.Sellers = v }
}

// WithIPRisk flags the product as an intellectual property risk.
func WithIPRisk() Override {
	return func(p *domain.Product) { p.IsIPRisk = true }
}

// MockProduct generates a plausible product record for an identifier
// when no real data source is available. Generation is deterministic:
// the same identifier always yields the same record, so repeated
// lookups and tests see stable data.
func MockProduct(id string, overrides ...Override) *domain.Product {
	rng := rand.New(rand.NewSource(seed(id)))

	asin := id
	if len(id) <= 5 {
		asin = fmt.Sprintf("B0%08X", rng.Uint32())
	}

	weight := rng.Float64() * 5

	p := &domain.Product{
		ID:          id,
		ASIN:        asin,
		Name:        "Sample Product " + id,
		Brand:       mockBrands[rng.Intn(len(mockBrands))],
		Category:    "Home & Kitchen",
		SubCategory: "General",
		Price:       round2(rng.Float64()*200 + 10),
		Rating:      4 + rng.Float64(),
		Reviews:     rng.Intn(5000),
		Trend:       float64(rng.Intn(40) - 10),
		Description: "Automated mock description for " + id,
		Rank:        rng.Intn(50000) + 1,

		Weight:     fmt.Sprintf("%.1f lbs", weight),
		Dimensions: "10 x 8 x 4 in",
		Sellers:    rng.Intn(20) + 1,

		IsHazmat:    rng.Float64() > 0.95,
		IsIPRisk:    rng.Float64() > 0.90,
		IsOversized: weight > 40,

		SeasonalityTags: []domain.Season{domain.SeasonEvergreen},
	}
	if rng.Float64() > 0.7 {
		p.SeasonalityTags = []domain.Season{domain.SeasonQ4}
	}

	for _, o := range overrides {
		o(p)
	}

	// Derived fields use the post-override price and rank.
	p.Image = PlaceholderImage(id)
	if p.EstimatedSales == 0 && p.Rank > 0 {
		p.EstimatedSales = 300000 / p.Rank
	}
	p.ReferralFee = round2(p.Price * 0.15)
	p.FulfillmentFee = round2(3 + weight*0.5)
	p.StorageFee = 0.50
	p.PriceHistory, p.RankHistory = mockHistory(rng, p.Price, p.Rank)

	return p
}

// mockHistory produces 91 daily points ending today. Price drifts
// within +/-5% per day and rank moves inversely to price.
func mockHistory(rng *rand.Rand, basePrice float64, baseBSR int) ([]domain.PricePoint, []domain.RankPoint) {
	now := time.Now()
	price := basePrice
	bsr := float64(baseBSR)

	prices := make([]domain.PricePoint, 0, 91)
	ranks := make([]domain.RankPoint, 0, 91)

	for i := 90; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("Jan 2")

		drift := (rng.Float64() - 0.5) * 0.1
		price = price * (1 + drift)
		prices = append(prices, domain.PricePoint{Date: date, Price: round2(price)})

		if drift < 0 {
			bsr = bsr * 0.95
		} else {
			bsr = bsr * 1.05
		}
		bsr += (rng.Float64() - 0.5) * 200
		if bsr < 1 {
			bsr = 1
		}
		ranks = append(ranks, domain.RankPoint{Date: date, Rank: int(bsr)})
	}
	return prices, ranks
}

// SeedProducts returns the catalog shipped on first run, before any
// real lookups happen.
func SeedProducts() []*domain.Product {
	return []*domain.Product{
		MockProduct("1", WithName("Wireless Noise Cancelling Headphones"), WithCategory("Electronics"), WithPrice(249.99), WithBSR(1542), WithEstimatedSales(3400), WithSellers(12)),
		MockProduct("2", WithName("Ergonomic Office Chair Mesh"), WithCategory("Home & Kitchen"), WithPrice(189.00), WithBSR(5200), WithEstimatedSales(850)),
		MockProduct("3", WithName("Organic Vitamin C Serum"), WithCategory("Beauty & Personal Care"), WithPrice(24.50), WithBSR(245), WithEstimatedSales(12000), WithSellers(45)),
		MockProduct("4", WithName("Yoga Mat Non-Slip"), WithCategory("Sports & Outdoors"), WithPrice(35.99), WithBSR(1200), WithEstimatedSales(4500)),
		MockProduct("5", WithName("LEGO Star Wars Set"), WithCategory("Toys & Games"), WithPrice(45.00), WithBSR(3200), WithEstimatedSales(900), WithIPRisk()),
		MockProduct("6", WithName("Drill Driver Set"), WithCategory("Tools & Home Improvement"), WithPrice(89.00), WithBSR(2100), WithEstimatedSales(600)),
		MockProduct("7", WithName("Keto Cookies"), WithCategory("Grocery & Gourmet Food"), WithPrice(14.99), WithBSR(650), WithEstimatedSales(6200)),
	}
}

func seed(id string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToUpper(id)))
	return int64(h.Sum64())
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
