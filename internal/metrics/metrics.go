// Package metrics exposes Prometheus collectors for the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors. All are registered on their own
// registry so tests can create independent instances.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	DashboardRequests   prometheus.Counter
	CellEdits           prometheus.Counter
	SettingsWrites      prometheus.Counter
	SettingsDeletes     prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "territory_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "territory_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		DashboardRequests: factory.NewCounter(prometheus.CounterOpts{
			Name: "territory_dashboard_requests_total",
			Help: "Dashboard models served.",
		}),
		CellEdits: factory.NewCounter(prometheus.CounterOpts{
			Name: "territory_cell_edits_total",
			Help: "Pipeline cell edits applied.",
		}),
		SettingsWrites: factory.NewCounter(prometheus.CounterOpts{
			Name: "territory_settings_writes_total",
			Help: "Target settings upserts accepted.",
		}),
		SettingsDeletes: factory.NewCounter(prometheus.CounterOpts{
			Name: "territory_settings_deletes_total",
			Help: "Target settings deletions.",
		}),
	}
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
