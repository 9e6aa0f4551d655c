package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// LookupsRate returns a timeseries panel showing product lookups per
// second broken down by outcome.
func LookupsRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Lookups by Outcome").
		Description("Product lookups per second by resolution outcome").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(rate(amzpulse_lookups_total{job="amzpulse"}[5m])) by (outcome)`,
			"{{outcome}}", "A",
		)).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// LookupLatency returns a timeseries panel showing the p95 lookup
// latency.
func LookupLatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Lookup Latency (p95)").
		Description("95th percentile product lookup duration").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(amzpulse_lookup_duration_seconds_bucket{job="amzpulse"}[5m])) by (le))`,
			"p95",
			"A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
