package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "amzpulse-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "amzpulse-recording",
					Rules: []Rule{
						{
							Record: "amzpulse:http_requests:rate5m",
							Expr:   `sum(rate(amzpulse_http_requests_total[5m]))`,
						},
						{
							Record: "amzpulse:http_errors:rate5m",
							Expr:   `sum(rate(amzpulse_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "amzpulse:lookups:rate5m",
							Expr:   `sum(rate(amzpulse_lookups_total[5m]))`,
						},
						{
							Record: "amzpulse:refresh_errors:rate5m",
							Expr:   `rate(amzpulse_refresh_errors_total[5m])`,
						},
						{
							Record: "amzpulse:assessment_fallbacks:rate5m",
							Expr:   `rate(amzpulse_assessment_fallbacks_total[5m])`,
						},
						{
							Record: "amzpulse:source_calls:rate5m",
							Expr:   `rate(amzpulse_source_calls_total[5m])`,
						},
						{
							Record: "amzpulse:notification_duration:p95_5m",
							Expr:   `histogram_quantile(0.95, sum(rate(amzpulse_notification_duration_seconds_bucket[5m])) by (le))`,
						},
					},
				},
			},
		},
	}
}
