// Package score computes a deterministic opportunity score for a
// product from its catalog attributes. It complements the AI
// assessment: no network calls, same inputs always give the same
// breakdown.
package score

import (
	"math"

	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

// Weights defines the relative importance of each scoring factor.
type Weights struct {
	Demand      float64
	Margin      float64
	Competition float64
	Proof       float64
	Momentum    float64
	Risk        float64
}

// DefaultWeights returns the default scoring weights.
func DefaultWeights() Weights {
	return Weights{
		Demand:      0.30,
		Margin:      0.25,
		Competition: 0.15,
		Proof:       0.15,
		Momentum:    0.10,
		Risk:        0.05,
	}
}

// Breakdown shows per-factor scores.
type Breakdown struct {
	Demand      float64 `json:"demand"`
	Margin      float64 `json:"margin"`
	Competition float64 `json:"competition"`
	Proof       float64 `json:"proof"`
	Momentum    float64 `json:"momentum"`
	Risk        float64 `json:"risk"`
	Total       int     `json:"total"`
}

// Score computes the composite opportunity score for a product.
func Score(p *domain.Product, w Weights) Breakdown {
	b := Breakdown{
		Demand:      demandScore(p.Rank),
		Margin:      marginScore(p),
		Competition: competitionScore(p.Sellers),
		Proof:       proofScore(p.Rating, p.Reviews),
		Momentum:    momentumScore(p.Trend),
		Risk:        riskScore(p),
	}

	total := b.Demand*w.Demand +
		b.Margin*w.Margin +
		b.Competition*w.Competition +
		b.Proof*w.Proof +
		b.Momentum*w.Momentum +
		b.Risk*w.Risk

	b.Total = int(math.Round(total))
	if b.Total > 100 {
		b.Total = 100
	}
	if b.Total < 0 {
		b.Total = 0
	}

	return b
}

// demandScore maps best-sellers rank to a 0-100 score. Lower rank
// means more sales.
func demandScore(rank int) float64 {
	switch {
	case rank <= 0:
		return 50 // unknown rank is neutral
	case rank <= 500:
		return 100
	case rank <= 2000:
		return lerp(float64(rank), 500, 2000, 100, 80)
	case rank <= 10000:
		return lerp(float64(rank), 2000, 10000, 80, 50)
	case rank <= 50000:
		return lerp(float64(rank), 10000, 50000, 50, 20)
	default:
		return 10
	}
}

// marginScore evaluates what fraction of the sale price survives the
// marketplace fees. Buy cost is unknown at catalog time, so this is a
// fee-margin ceiling, not a realized margin.
func marginScore(p *domain.Product) float64 {
	if p.Price <= 0 {
		return 0
	}
	margin := (p.Price - p.ReferralFee - p.FulfillmentFee - p.StorageFee) / p.Price * 100
	switch {
	case margin >= 70:
		return 100
	case margin >= 50:
		return lerp(margin, 50, 70, 70, 100)
	case margin >= 30:
		return lerp(margin, 30, 50, 40, 70)
	case margin > 0:
		return lerp(margin, 0, 30, 0, 40)
	default:
		return 0
	}
}

// competitionScore favors listings with room for another seller. A
// single seller usually signals a brand-locked listing, which scores
// worse than a small healthy field.
func competitionScore(sellers int) float64 {
	switch {
	case sellers <= 0:
		return 50
	case sellers == 1:
		return 30
	case sellers <= 5:
		return 90
	case sellers <= 12:
		return 70
	case sellers <= 25:
		return 40
	default:
		return 15
	}
}

// proofScore evaluates social proof from rating and review volume.
func proofScore(rating float64, reviews int) float64 {
	var ratingScore float64
	switch {
	case rating >= 4.5:
		ratingScore = 100
	case rating >= 4.0:
		ratingScore = 80
	case rating >= 3.5:
		ratingScore = 50
	case rating > 0:
		ratingScore = 20
	default:
		ratingScore = 40 // unrated is unknown, not bad
	}

	var volumeScore float64
	switch {
	case reviews >= 5000:
		volumeScore = 100
	case reviews >= 1000:
		volumeScore = 85
	case reviews >= 100:
		volumeScore = 60
	case reviews >= 10:
		volumeScore = 35
	default:
		volumeScore = 10
	}

	return (ratingScore + volumeScore) / 2
}

// momentumScore rewards positive sales-trend percentages.
func momentumScore(trend float64) float64 {
	switch {
	case trend >= 20:
		return 100
	case trend >= 5:
		return lerp(trend, 5, 20, 70, 100)
	case trend >= -5:
		return lerp(trend, -5, 5, 40, 70)
	case trend >= -20:
		return lerp(trend, -20, -5, 10, 40)
	default:
		return 0
	}
}

// riskScore penalizes the gating and cost flags.
func riskScore(p *domain.Product) float64 {
	score := 100.0
	if p.IsHazmat {
		score -= 40
	}
	if p.IsIPRisk {
		score -= 40
	}
	if p.IsOversized {
		score -= 20
	}
	return math.Max(score, 0)
}

// lerp linearly interpolates a value between two score boundaries.
func lerp(val, minVal, maxVal, minScore, maxScore float64) float64 {
	if maxVal == minVal {
		return minScore
	}
	t := (val - minVal) / (maxVal - minVal)
	return minScore + t*(maxScore-minScore)
}
