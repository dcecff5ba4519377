package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// alert aggregation service.
type Metrics struct {
	SourceFetches     *prometheus.CounterVec // labels: source, outcome={success,error}
	LocationsSkipped  prometheus.Counter
	AlertsCollected   prometheus.Counter
	ActiveAlerts      *prometheus.GaugeVec // label: severity
	PassDuration      prometheus.Histogram
	LastPassTimestamp prometheus.Gauge
	AggregatorRunning prometheus.Gauge

	// Outbound weather API metrics.
	WeatherAPIRequests *prometheus.CounterVec // labels: endpoint={current,forecast}, outcome={success,error}
	WeatherAPIDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all aggregator metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		SourceFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_agg",
			Name:      "source_fetches_total",
			Help:      "Source fetches by source name and outcome.",
		}, []string{"source", "outcome"}),
		LocationsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "disaster_agg",
			Name:      "locations_skipped_total",
			Help:      "Locations skipped in a pass because their weather fetch or parse failed.",
		}),
		AlertsCollected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "disaster_agg",
			Name:      "alerts_collected_total",
			Help:      "Total alerts emitted across all passes.",
		}),
		ActiveAlerts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "disaster_agg",
			Name:      "active_alerts",
			Help:      "Alerts in the latest pass, by severity.",
		}, []string{"severity"}),
		PassDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "disaster_agg",
			Name:      "pass_duration_seconds",
			Help:      "Duration of a complete aggregation pass.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		LastPassTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "disaster_agg",
			Name:      "last_pass_timestamp_seconds",
			Help:      "Unix time of the most recently completed pass.",
		}),
		AggregatorRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "disaster_agg",
			Name:      "aggregator_running",
			Help:      "1 when the aggregation loop is active, 0 when shut down.",
		}),
		WeatherAPIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_agg",
			Name:      "weather_api_requests_total",
			Help:      "Weather provider requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		WeatherAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "disaster_agg",
			Name:      "weather_api_duration_seconds",
			Help:      "Weather provider request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"endpoint"}),
	}

	prometheus.MustRegister(
		m.SourceFetches,
		m.LocationsSkipped,
		m.AlertsCollected,
		m.ActiveAlerts,
		m.PassDuration,
		m.LastPassTimestamp,
		m.AggregatorRunning,
		m.WeatherAPIRequests,
		m.WeatherAPIDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		SourceFetches:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "disaster_agg", Name: "source_fetches_total"}, []string{"source", "outcome"}),
		LocationsSkipped:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "disaster_agg", Name: "locations_skipped_total"}),
		AlertsCollected:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "disaster_agg", Name: "alerts_collected_total"}),
		ActiveAlerts:       prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: "disaster_agg", Name: "active_alerts"}, []string{"severity"}),
		PassDuration:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "disaster_agg", Name: "pass_duration_seconds"}),
		LastPassTimestamp:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "disaster_agg", Name: "last_pass_timestamp_seconds"}),
		AggregatorRunning:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "disaster_agg", Name: "aggregator_running"}),
		WeatherAPIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "disaster_agg", Name: "weather_api_requests_total"}, []string{"endpoint", "outcome"}),
		WeatherAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "disaster_agg", Name: "weather_api_duration_seconds"}, []string{"endpoint"}),
	}
}
