package monitoring

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	PagesFetched  *prometheus.CounterVec
	Extractions   *prometheus.CounterVec
	Merges        *prometheus.CounterVec
	CrawlDuration *prometheus.HistogramVec
	AlertsEmitted *prometheus.CounterVec
	EventsDeleted prometheus.Counter
	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec
}

// NewMetrics registers the metrics on reg. Passing a fresh prometheus.NewRegistry keeps tests isolated.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		PagesFetched: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pricecage_pages_fetched_total",
			Help: "Pages fetched, by site and result.",
		}, []string{"site", "status"}), // status: ok, error
		Extractions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pricecage_extractions_total",
			Help: "Product pages turned into records, by site and result.",
		}, []string{"site", "status"}),
		Merges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pricecage_merges_total",
			Help: "Merge calls by outcome.",
		}, []string{"outcome"}), // created, updated, error
		CrawlDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pricecage_crawl_duration_seconds",
			Help:    "Duration of one site crawl.",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		}, []string{"site"}),
		AlertsEmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pricecage_alerts_total",
			Help: "Price alerts generated, by direction.",
		}, []string{"type"}),
		EventsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "pricecage_history_events_deleted_total",
			Help: "Price history events removed by retention cleanup.",
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pricecage_http_requests_total",
			Help: "Analytics API requests.",
		}, []string{"method", "route", "status"}),
		HTTPDurations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pricecage_http_request_duration_seconds",
			Help:    "Analytics API request duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// The helpers below are no-ops on a nil *Metrics.

func (m *Metrics) IncPage(site, status string) {
	if m == nil {
		return
	}
	m.PagesFetched.WithLabelValues(site, status).Inc()
}

func (m *Metrics) IncExtraction(site, status string) {
	if m == nil {
		return
	}
	m.Extractions.WithLabelValues(site, status).Inc()
}

func (m *Metrics) IncMerge(outcome string) {
	if m == nil {
		return
	}
	m.Merges.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveCrawl(site string, seconds float64) {
	if m == nil {
		return
	}
	m.CrawlDuration.WithLabelValues(site).Observe(seconds)
}

func (m *Metrics) IncAlert(alertType string) {
	if m == nil {
		return
	}
	m.AlertsEmitted.WithLabelValues(alertType).Inc()
}

func (m *Metrics) AddDeleted(n int64) {
	if m == nil {
		return
	}
	m.EventsDeleted.Add(float64(n))
}

func (m *Metrics) ObserveHTTP(method, route string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDurations.WithLabelValues(method, route).Observe(seconds)
}
