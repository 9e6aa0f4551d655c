// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/viraladmedia/amzpulse/tools/dashgen/panels"
)

// BuildOverview constructs the AmzPulse Overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("AmzPulse Overview").
		Uid("amzpulse-overview").
		Tags([]string{"amzpulse"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.QuotaGauge()).
		WithPanel(panels.UptimeStat()))

	// Row 2: HTTP.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	// Row 3: Lookups.
	b.WithRow(dashboard.NewRowBuilder("Lookups").
		WithPanel(panels.LookupsRate()).
		WithPanel(panels.LookupLatency()))

	// Row 4: Upstream Source.
	b.WithRow(dashboard.NewRowBuilder("Upstream Source").
		WithPanel(panels.SourceCallsRate()).
		WithPanel(panels.DailyUsage()).
		WithPanel(panels.LimitHits()))

	// Row 5: Refresh.
	b.WithRow(dashboard.NewRowBuilder("Refresh").
		WithPanel(panels.RefreshRate()).
		WithPanel(panels.RefreshErrors()).
		WithPanel(panels.CycleDuration()))

	// Row 6: Assessments.
	b.WithRow(dashboard.NewRowBuilder("Assessments").
		WithPanel(panels.AssessmentDuration()).
		WithPanel(panels.AssessmentFallbacks()).
		WithPanel(panels.ScoreDistribution()))

	// Row 7: Notifications.
	b.WithRow(dashboard.NewRowBuilder("Notifications").
		WithPanel(panels.NotificationLatency()).
		WithPanel(panels.NotificationFailures()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
