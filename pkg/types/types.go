// Package domain defines the core business types for AmzPulse.
package domain

import (
	"time"
)

// Grade is the ordinal sell-potential grade assigned by an assessment.
type Grade string

// Grade constants.
const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Level represents a Low/Medium/High classification.
type Level string

// Level constants.
const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// Season tags a product's selling window.
type Season string

// Season constants.
const (
	SeasonQ1           Season = "Q1"
	SeasonQ2           Season = "Q2"
	SeasonQ3           Season = "Q3"
	SeasonQ4           Season = "Q4"
	SeasonEvergreen    Season = "Evergreen"
	SeasonSummer       Season = "Summer"
	SeasonBackToSchool Season = "Back to School"
)

// View selects which slice of the catalog a listing request covers.
type View string

// View constants.
const (
	ViewDashboard View = "dashboard"
	ViewResearch  View = "research"
	ViewWatchlist View = "watchlist"
)

// Fulfillment selects who ships the unit: the marketplace (FBA) or the
// seller (FBM).
type Fulfillment string

// Fulfillment constants.
const (
	FulfillmentFBA Fulfillment = "FBA"
	FulfillmentFBM Fulfillment = "FBM"
)

// PricePoint is one sample in a product's price history.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// RankPoint is one sample in a product's sales-rank history.
type RankPoint struct {
	Date string `json:"date"`
	Rank int    `json:"rank"`
}

// Analysis is the structured sell-potential assessment attached to a
// product. It is produced once per explicit request and immutable until
// the user asks for a refresh.
type Analysis struct {
	Grade            Grade    `json:"grade"`
	Score            int      `json:"score"` // 0-100
	Summary          string   `json:"summary"`
	Pros             []string `json:"pros"`
	Cons             []string `json:"cons"`
	CompetitionLevel Level    `json:"competitionLevel"`
	DemandLevel      Level    `json:"demandLevel"`
	SuggestedAction  string   `json:"suggestedAction"`
	FBAAnalysis      string   `json:"fbaAnalysis"`
	FBMAnalysis      string   `json:"fbmAnalysis"`
	IPRiskAssessment string   `json:"ipRiskAssessment,omitempty"`
	SeasonalityNote  string   `json:"seasonalityInsight,omitempty"`
}

// Clone returns a deep copy of the analysis.
func (a *Analysis) Clone() *Analysis {
	if a == nil {
		return nil
	}
	cp := *a
	cp.Pros = append([]string(nil), a.Pros...)
	cp.Cons = append([]string(nil), a.Cons...)
	return &cp
}

// Product is the catalog's unit of data.
type Product struct {
	ID          string `json:"id"`
	ASIN        string `json:"asin"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	SubCategory string `json:"subCategory,omitempty"`

	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Rating      float64 `json:"rating"`  // 0.0-5.0
	Reviews     int     `json:"reviews"` // review count
	Trend       float64 `json:"trend"`   // signed percentage growth
	Description string  `json:"description"`

	// Parallel histories, aligned positionally. Display logic that zips
	// them index-wise treats the shorter side's exhaustion as zero, not
	// as an error.
	PriceHistory []PricePoint `json:"priceHistory"`
	RankHistory  []RankPoint  `json:"bsrHistory"`

	Rank           int `json:"bsr"` // best-sellers rank, lower is better
	EstimatedSales int `json:"estimatedSales"`

	// Fee fields used by the profit calculator.
	ReferralFee    float64 `json:"referralFee"`
	FulfillmentFee float64 `json:"fbaFee"`
	StorageFee     float64 `json:"storageFee"`

	Weight     string `json:"weight"`
	Dimensions string `json:"dimensions"`
	Sellers    int    `json:"sellers"`

	// Risk flags.
	IsHazmat    bool `json:"isHazmat"`
	IsIPRisk    bool `json:"isIpRisk"`
	IsOversized bool `json:"isOversized"`

	SeasonalityTags []Season `json:"seasonalityTags"`

	// User-entered fields, optional.
	SupplierURL string   `json:"supplierUrl,omitempty"`
	TargetROI   *float64 `json:"targetRoi,omitempty"`
	Notes       string   `json:"notes,omitempty"`

	Analysis *Analysis `json:"analysis,omitempty"`
}

// Clone returns a deep copy of the product. Histories, tags, and the
// attached analysis get their own backing storage, so mutating the
// copy never reaches the original.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	cp := *p
	cp.PriceHistory = append([]PricePoint(nil), p.PriceHistory...)
	cp.RankHistory = append([]RankPoint(nil), p.RankHistory...)
	cp.SeasonalityTags = append([]Season(nil), p.SeasonalityTags...)
	if p.TargetROI != nil {
		roi := *p.TargetROI
		cp.TargetROI = &roi
	}
	cp.Analysis = p.Analysis.Clone()
	return &cp
}

// FilterCriteria holds the catalog filter inputs. Zero values mean
// "unset": a minimum price of exactly 0 cannot be expressed, which is an
// accepted limitation of the original contract, not a bug.
type FilterCriteria struct {
	Category    string  `json:"category"`
	SubCategory string  `json:"subCategory"`
	MinPrice    float64 `json:"minPrice"`
	MaxPrice    float64 `json:"maxPrice"`
	MinROI      float64 `json:"minRoi"`
	MaxRank     int     `json:"maxBSR"`
	Search      string  `json:"search"`
	Season      Season  `json:"season,omitempty"`
}

// IsZero reports whether no criteria field is set.
func (f *FilterCriteria) IsZero() bool {
	return f.Category == "" && f.SubCategory == "" &&
		f.MinPrice == 0 && f.MaxPrice == 0 &&
		f.MinROI == 0 && f.MaxRank == 0 &&
		f.Search == "" && f.Season == ""
}

// Plan is a billing plan identifier.
type Plan string

// Plan constants.
const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// User is a registered account.
type User struct {
	ID           string    `json:"id"             db:"id"`
	Email        string    `json:"email"          db:"email"`
	Name         string    `json:"name,omitempty" db:"name"`
	PasswordHash string    `json:"-"              db:"password_hash"`
	Plan         Plan      `json:"plan"           db:"plan"`
	Role         string    `json:"role"           db:"role"`
	CreatedAt    time.Time `json:"created_at"     db:"created_at"`
}

// WatchItem is one saved product on a user's watchlist.
type WatchItem struct {
	ID        string    `json:"id"         db:"id"`
	UserID    string    `json:"-"          db:"user_id"`
	ProductID string    `json:"productId"  db:"product_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Usage summarizes a user's metered activity for the current day.
type Usage struct {
	Lookups     int  `json:"lookups"`
	Assessments int  `json:"assessments"`
	BatchRuns   int  `json:"batchRuns"`
	DailyLimit  int  `json:"dailyLimit"`
	Remaining   int  `json:"remaining"`
	Unlimited   bool `json:"unlimited"`
}

// UsageEvent records one metered action.
type UsageEvent struct {
	ID        string    `json:"id"             db:"id"`
	UserID    string    `json:"user_id"        db:"user_id"`
	Kind      string    `json:"kind"           db:"kind"`
	ASIN      string    `json:"asin,omitempty" db:"asin"`
	CreatedAt time.Time `json:"created_at"     db:"created_at"`
}

// Usage event kinds.
const (
	UsageLookup     = "lookup"
	UsageAssessment = "assessment"
	UsageBatch      = "batch"
)
