package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// amzpulse operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "amzpulse-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "amzpulse-alerts",
					Rules: []Rule{
						{
							Alert: "AmzpulseDown",
							Expr:  `absent(up{job="amzpulse"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "AmzPulse is down",
								"description": "The amzpulse job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "AmzpulseReadinessDown",
							Expr:  `amzpulse_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "AmzPulse readiness check is failing",
								"description": "The readiness probe has been reporting not-ready for more than 2 minutes.",
							},
						},
						{
							Alert: "AmzpulseHighErrorRate",
							Expr:  `amzpulse:http_errors:rate5m / amzpulse:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on AmzPulse",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "AmzpulseRefreshErrors",
							Expr:  `amzpulse:refresh_errors:rate5m > 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Watchlist refresh errors detected",
								"description": "The background refresh job has been producing errors for more than 5 minutes.",
							},
						},
						{
							Alert: "AmzpulseAssessmentFallbacks",
							Expr:  `amzpulse:assessment_fallbacks:rate5m > 0.1`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "LLM assessment fallback rate is elevated",
								"description": "Fallback assessments are being served at more than 0.1/s for the last 5 minutes.",
							},
						},
						{
							Alert: "AmzpulseSourceQuotaHigh",
							Expr:  `amzpulse_source_daily_usage > 1600`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Upstream source daily usage is above 80% of the quota",
								"description": "Daily upstream source usage has exceeded 1600 calls (default limit is 2000).",
							},
						},
						{
							Alert: "AmzpulseSourceLimitReached",
							Expr:  `increase(amzpulse_source_daily_limit_hits_total[5m]) > 0`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Upstream source daily limit has been reached",
								"description": "The daily upstream call quota has been exhausted. Live lookups degrade to placeholders until reset.",
							},
						},
						{
							Alert: "AmzpulseNotificationFailures",
							Expr:  `increase(amzpulse_notification_errors_total[5m]) > 0`,
							For:   "1m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Price-drop notification failures detected",
								"description": "One or more price-drop notifications (Discord webhooks) have failed to send.",
							},
						},
					},
				},
			},
		},
	}
}
