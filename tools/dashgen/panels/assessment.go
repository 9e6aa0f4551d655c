package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// AssessmentDuration returns a timeseries panel showing p50 and p95 LLM
// assessment latencies.
func AssessmentDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Assessment Duration").
		Description("LLM assessment call duration percentiles").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.50, sum(rate(amzpulse_assessment_duration_seconds_bucket{job="amzpulse"}[5m])) by (le))`,
			"p50",
			"A",
		)).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(amzpulse_assessment_duration_seconds_bucket{job="amzpulse"}[5m])) by (le))`,
			"p95",
			"B",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// AssessmentFallbacks returns a timeseries panel showing the rate of
// assessments served from the static fallback.
func AssessmentFallbacks() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Assessment Fallbacks").
		Description("Fallback assessments per second (model failures)").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`amzpulse:assessment_fallbacks:rate5m`, "fallbacks/s", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(0.01, 0.1)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ScoreDistribution returns a bar gauge panel showing the distribution of
// assessment scores across histogram buckets.
func ScoreDistribution() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Score Distribution").
		Description("Distribution of assessment scores (0-100)").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(FullWidth).
		WithTarget(PromQuery(
			`sum(increase(amzpulse_assessment_scores_bucket{job="amzpulse"}[1h])) by (le)`,
			"{{le}}", "A",
		)).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}
