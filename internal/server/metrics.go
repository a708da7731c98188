package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nao1215/phishscore/internal/model"
)

// Metrics collects scan counters and implements engine.Observer.
//
// Design decision: Each Metrics owns its registry instead of using the
// global default registerer, so tests and multiple servers in one process
// do not collide on duplicate registration.
type Metrics struct {
	registry        *prometheus.Registry
	scans           *prometheus.CounterVec
	findings        *prometheus.CounterVec
	classifier      prometheus.Gauge
	storageFailures prometheus.Counter
}

// NewMetrics creates and registers the phishscore collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "phishscore_scans_total",
			Help: "Number of scanned URLs by resulting status.",
		}, []string{"status"}),
		findings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "phishscore_findings_total",
			Help: "Number of findings reported by type.",
		}, []string{"type"}),
		classifier: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "phishscore_classifier_available",
			Help: "1 if a classifier model is loaded, 0 otherwise.",
		}),
		storageFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "phishscore_storage_failures_total",
			Help: "Number of scan records that could not be stored.",
		}),
	}

	m.registry.MustRegister(
		m.scans,
		m.findings,
		m.classifier,
		m.storageFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveScan counts a scan result and its findings.
func (m *Metrics) ObserveScan(result model.ScoreResult) {
	m.scans.WithLabelValues(result.Status.String()).Inc()
	for _, f := range result.Findings {
		m.findings.WithLabelValues(f.Type).Inc()
	}
}

// ObserveStorageFailure counts a failed scan record write.
func (m *Metrics) ObserveStorageFailure(error) {
	m.storageFailures.Inc()
}

// SetClassifierAvailable records whether a classifier is loaded.
func (m *Metrics) SetClassifierAvailable(available bool) {
	if available {
		m.classifier.Set(1)
		return
	}
	m.classifier.Set(0)
}

// Handler returns the /metrics handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
