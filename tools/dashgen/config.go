package main

import "errors"

// KnownMetrics is the set of metric names exported by amzpulse plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"amzpulse_http_request_duration_seconds": true,
	"amzpulse_http_requests_total":           true,

	// Health metrics.
	"amzpulse_healthz_up": true,
	"amzpulse_readyz_up":  true,

	// Lookup metrics.
	"amzpulse_lookups_total":           true,
	"amzpulse_lookup_duration_seconds": true,
	"amzpulse_collapsed_lookups_total": true,

	// Assessment metrics.
	"amzpulse_assessment_duration_seconds": true,
	"amzpulse_assessment_fallbacks_total":  true,
	"amzpulse_assessment_scores":           true,

	// Upstream source metrics.
	"amzpulse_source_calls_total":            true,
	"amzpulse_source_daily_usage":            true,
	"amzpulse_source_daily_limit_hits_total": true,

	// Watchlist refresh metrics.
	"amzpulse_refresh_products_total":   true,
	"amzpulse_refresh_errors_total":     true,
	"amzpulse_refresh_duration_seconds": true,

	// Notification metrics.
	"amzpulse_notification_duration_seconds": true,
	"amzpulse_notification_errors_total":     true,

	// Recording rules.
	"amzpulse:http_requests:rate5m":         true,
	"amzpulse:http_errors:rate5m":           true,
	"amzpulse:lookups:rate5m":               true,
	"amzpulse:refresh_errors:rate5m":        true,
	"amzpulse:assessment_fallbacks:rate5m":  true,
	"amzpulse:source_calls:rate5m":          true,
	"amzpulse:notification_duration:p95_5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
