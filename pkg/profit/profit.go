// Package profit computes reseller profitability figures for a product:
// total fee deductions, net profit, return on investment, and margin.
// All functions are pure and never error; negative or zero inputs
// produce negative results rather than failures, and the presentation
// layer decides what counts as unfavorable.
package profit

import (
	"github.com/shopspring/decimal"

	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

// Inputs holds the user-entered side of a profitability calculation.
// The product's own fee fields supply the rest.
type Inputs struct {
	SalePrice        float64            `json:"salePrice"`
	BuyCost          float64            `json:"buyCost"`
	PrepCost         float64            `json:"prepCost"`
	InboundShipping  float64            `json:"inboundShipping"`  // to the marketplace warehouse
	OutboundShipping float64            `json:"outboundShipping"` // to the buyer, seller-fulfilled
	Fulfillment      domain.Fulfillment `json:"fulfillment"`
}

// Result holds the computed figures, rounded to 2 decimal places.
type Result struct {
	Deductions float64 `json:"deductions"`
	Profit     float64 `json:"profit"`
	ROI        float64 `json:"roi"`    // percentage
	Margin     float64 `json:"margin"` // percentage
}

// Deductions returns the total fees subtracted from the sale price for
// the given fulfillment mode.
//
// Marketplace-fulfilled: referral + fulfillment + storage + prep + inbound.
// Seller-fulfilled: referral + prep + outbound (no marketplace
// fulfillment or storage fees apply).
func Deductions(p *domain.Product, in Inputs) float64 {
	if in.Fulfillment == domain.FulfillmentFBM {
		return p.ReferralFee + in.PrepCost + in.OutboundShipping
	}
	return p.ReferralFee + p.FulfillmentFee + p.StorageFee + in.PrepCost + in.InboundShipping
}

// Compute derives profit, ROI%, and margin% from the product's fees and
// the user inputs. ROI is 0 whenever buy cost <= 0 and margin is 0
// whenever sale price <= 0; both divisions saturate instead of erroring.
func Compute(p *domain.Product, in Inputs) Result {
	deductions := Deductions(p, in)
	prof := in.SalePrice - in.BuyCost - deductions

	var roi float64
	if in.BuyCost > 0 {
		roi = prof / in.BuyCost * 100
	}

	var margin float64
	if in.SalePrice > 0 {
		margin = prof / in.SalePrice * 100
	}

	return Result{
		Deductions: round2(deductions),
		Profit:     round2(prof),
		ROI:        round2(roi),
		Margin:     round2(margin),
	}
}

// round2 rounds to 2 decimal places for display.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
