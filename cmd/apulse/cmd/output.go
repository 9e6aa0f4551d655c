package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	apiclient "github.com/viraladmedia/amzpulse/internal/api/client"
	"github.com/viraladmedia/amzpulse/pkg/profit"
	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printProductsTable(products []*domain.Product) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ASIN\tNAME\tCATEGORY\tPRICE\tBSR\tRATING\tGRADE\n")
	for i := range products {
		p := products[i]
		grade := "-"
		if p.Analysis != nil {
			grade = string(p.Analysis.Grade)
		}
		tw.writef("%s\t%s\t%s\t$%.2f\t%d\t%.1f\t%s\n",
			p.ASIN,
			truncate(p.Name, 40),
			p.Category,
			p.Price,
			p.Rank,
			p.Rating,
			grade,
		)
	}
	return tw.finish()
}

func printProductDetail(rec *apiclient.ProductRecord) error {
	p := &rec.Product
	tw := newTabWriter(os.Stdout)
	tw.writef("ASIN:\t%s\n", p.ASIN)
	tw.writef("Name:\t%s\n", p.Name)
	tw.writef("Brand:\t%s\n", p.Brand)
	tw.writef("Category:\t%s / %s\n", p.Category, p.SubCategory)
	tw.writef("Price:\t$%.2f\n", p.Price)
	tw.writef("BSR:\t%d\n", p.Rank)
	tw.writef("Rating:\t%.1f (%d reviews)\n", p.Rating, p.Reviews)
	tw.writef("Est. Sales:\t%d/mo\n", p.EstimatedSales)
	tw.writef("Sellers:\t%d\n", p.Sellers)
	tw.writef("Fees:\treferral $%.2f, fulfillment $%.2f, storage $%.2f\n",
		p.ReferralFee, p.FulfillmentFee, p.StorageFee)
	if flags := riskFlags(p); flags != "" {
		tw.writef("Risk:\t%s\n", flags)
	}
	if len(p.SeasonalityTags) > 0 {
		tags := make([]string, len(p.SeasonalityTags))
		for i, s := range p.SeasonalityTags {
			tags[i] = string(s)
		}
		tw.writef("Seasonality:\t%s\n", strings.Join(tags, ", "))
	}
	if p.Analysis != nil {
		tw.writef("Grade:\t%s (%d/100)\n", p.Analysis.Grade, p.Analysis.Score)
	}
	if rec.Warning != "" {
		tw.writef("Warning:\t%s\n", rec.Warning)
	}
	return tw.finish()
}

func riskFlags(p *domain.Product) string {
	var flags []string
	if p.IsHazmat {
		flags = append(flags, "hazmat")
	}
	if p.IsIPRisk {
		flags = append(flags, "ip-risk")
	}
	if p.IsOversized {
		flags = append(flags, "oversized")
	}
	return strings.Join(flags, ", ")
}

func printAnalysisDetail(a *domain.Analysis) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Grade:\t%s (%d/100)\n", a.Grade, a.Score)
	tw.writef("Summary:\t%s\n", a.Summary)
	tw.writef("Competition:\t%s\n", a.CompetitionLevel)
	tw.writef("Demand:\t%s\n", a.DemandLevel)
	for i, pro := range a.Pros {
		label := ""
		if i == 0 {
			label = "Pros:"
		}
		tw.writef("%s\t+ %s\n", label, pro)
	}
	for i, con := range a.Cons {
		label := ""
		if i == 0 {
			label = "Cons:"
		}
		tw.writef("%s\t- %s\n", label, con)
	}
	tw.writef("Action:\t%s\n", a.SuggestedAction)
	tw.writef("FBA:\t%s\n", a.FBAAnalysis)
	tw.writef("FBM:\t%s\n", a.FBMAnalysis)
	if a.IPRiskAssessment != "" {
		tw.writef("IP Risk:\t%s\n", a.IPRiskAssessment)
	}
	if a.SeasonalityNote != "" {
		tw.writef("Seasonality:\t%s\n", a.SeasonalityNote)
	}
	return tw.finish()
}

func printProfitDetail(r *profit.Result) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Deductions:\t$%.2f\n", r.Deductions)
	tw.writef("Profit:\t$%.2f\n", r.Profit)
	tw.writef("ROI:\t%.1f%%\n", r.ROI)
	tw.writef("Margin:\t%.1f%%\n", r.Margin)
	return tw.finish()
}

func printWatchlistTable(w *apiclient.Watchlist) error {
	byID := make(map[string]*domain.Product, len(w.Products))
	for _, p := range w.Products {
		byID[p.ID] = p
	}
	tw := newTabWriter(os.Stdout)
	tw.writef("ASIN\tNAME\tPRICE\tADDED\n")
	for i := range w.Items {
		item := &w.Items[i]
		asin, name, price := "-", "-", "-"
		if p, ok := byID[item.ProductID]; ok {
			asin = p.ASIN
			name = truncate(p.Name, 40)
			price = fmt.Sprintf("$%.2f", p.Price)
		}
		tw.writef("%s\t%s\t%s\t%s\n",
			asin, name, price, item.CreatedAt.Format("2006-01-02"))
	}
	return tw.finish()
}

func printUsageDetail(u *domain.Usage) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Lookups:\t%d\n", u.Lookups)
	tw.writef("Assessments:\t%d\n", u.Assessments)
	tw.writef("Batch Runs:\t%d\n", u.BatchRuns)
	if u.Unlimited {
		tw.writef("Limit:\tunlimited\n")
	} else {
		tw.writef("Limit:\t%d/day (%d remaining)\n", u.DailyLimit, u.Remaining)
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
