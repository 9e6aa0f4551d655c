package assess

import (
	"bytes"
	"fmt"
	"text/template"

	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

// assessTmpl is the sell-potential assessment prompt template.
const assessTmpl = `Act as an expert Amazon FBA Seller (Arbitrage & Private Label specialist). Analyze this product.

Product Data:
- Name: {{.Product.Name}}
- Category: {{.Product.Category}}
- ASIN: {{.Product.ASIN}}
- Buy Box Price: ${{printf "%.2f" .Product.Price}}
- Sales Rank (BSR): {{.Product.Rank}}
- Est. Monthly Sales: {{.Product.EstimatedSales}} units
- Number of Sellers: {{.Product.Sellers}}
- FBA Fees: ${{printf "%.2f" .TotalFees}}
- Reviews: {{printf "%.1f" .Product.Rating}} stars ({{.Product.Reviews}} count)
- Weight/Dimensions: {{.Product.Weight}} / {{.Product.Dimensions}}
{{if .Financials}}
User Specific Financials:
- Buy Cost: ${{printf "%.2f" .Financials.BuyCost}}
- Potential Profit: ${{printf "%.2f" .Financials.Profit}}
- ROI: {{printf "%.2f" .Financials.ROI}}%

Please assume the user can source the product at ${{printf "%.2f" .Financials.BuyCost}}. Evaluate if this ROI is sufficient for the risk.
{{end}}
Provide a structured analysis:
1. Competition Analysis (Is the market saturated? Is BSR {{.Product.Rank}} good for {{.Product.Category}}?).
2. Demand Velocity.
3. FBA Analysis: Is FBA viable considering fees and weight?
4. FBM Analysis: Is FBM viable considering shipping logistics vs Amazon fulfillment?
5. IP Risk: Is this brand gated or likely to trigger intellectual-property complaints for a reseller?
6. Seasonality: How seasonal is demand, and when should stock arrive?
7. Pros/Cons.
8. Final Grade (A-F). 'A' requires high demand, good profit potential, low risk.
9. Score (0-100).
10. Strategy: Specific actionable advice.

Respond ONLY with a JSON object containing: grade, score, summary, fbaAnalysis, fbmAnalysis, pros, cons, competitionLevel, demandLevel, suggestedAction, ipRiskAssessment, seasonalityInsight.`

// Financials carries calculator results into the prompt when the user
// has priced out a deal.
type Financials struct {
	BuyCost float64
	Profit  float64
	ROI     float64
}

type promptData struct {
	Product    *domain.Product
	Financials *Financials
	TotalFees  float64
}

var assessTemplate = template.Must(template.New("assess").Parse(assessTmpl))

// RenderAssessPrompt renders the assessment prompt for a product,
// optionally including user-entered financials.
func RenderAssessPrompt(p *domain.Product, fin *Financials) (string, error) {
	var buf bytes.Buffer
	data := promptData{
		Product:    p,
		Financials: fin,
		TotalFees:  p.FulfillmentFee + p.ReferralFee,
	}
	if err := assessTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering assess prompt: %w", err)
	}
	return buf.String(), nil
}
