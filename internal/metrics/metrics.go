// Package metrics defines Prometheus metrics for amzpulse.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "amzpulse"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})
)

// Operational probe gauges.
var (
	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 if the last liveness probe succeeded, 0 otherwise.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 if the last readiness probe succeeded, 0 otherwise.",
	})
)

// Product lookup metrics.
var (
	LookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lookups_total",
		Help:      "Total number of product lookups by outcome.",
	}, []string{"outcome"}) // cached, catalog, upstream, mock

	LookupDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "lookup_duration_seconds",
		Help:      "Duration of product lookups in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	CollapsedLookupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "collapsed_lookups_total",
		Help:      "Total number of lookups that joined an in-flight fetch.",
	})
)

// Assessment metrics.
var (
	AssessmentDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "assessment_duration_seconds",
		Help:      "Duration of LLM assessment calls in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	AssessmentFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assessment_fallbacks_total",
		Help:      "Total number of assessments served from the static fallback.",
	})

	AssessmentScores = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "assessment_scores",
		Help:      "Distribution of assessment scores.",
		Buckets:   prometheus.LinearBuckets(0, 10, 11), // 0, 10, 20, ..., 100
	})
)

// Upstream source metrics.
var (
	SourceCallsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "source_calls_total",
		Help:      "Total cumulative upstream data source calls.",
	})

	SourceDailyUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "source_daily_usage",
		Help:      "Current daily upstream call count within the rolling 24-hour window.",
	})

	SourceDailyLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "source_daily_limit_hits_total",
		Help:      "Total number of times the daily upstream call limit was reached.",
	})
)

// Watchlist refresh metrics.
var (
	RefreshProductsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refresh_products_total",
		Help:      "Total number of products refreshed by the background job.",
	})

	RefreshErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refresh_errors_total",
		Help:      "Total number of refresh errors.",
	})

	RefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "refresh_duration_seconds",
		Help:      "Duration of refresh cycles in seconds.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Notification metrics.
var (
	NotificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of price-drop notification deliveries in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	NotificationErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_errors_total",
		Help:      "Total number of failed notification deliveries.",
	})
)
