package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service. Each Metrics owns
// its registry, so independent servers (and tests) never collide on
// registration.
type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ShipmentsSent   prometheus.Counter
	ShipmentErrors  prometheus.Counter
	LabelsWritten   prometheus.Counter
}

// NewMetrics creates and registers Prometheus metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "correos_bridge_requests_total",
				Help: "Total number of requests by operation and status",
			},
			[]string{"operation", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "correos_bridge_request_duration_seconds",
				Help:    "Request duration in seconds by operation",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		ShipmentsSent: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "correos_bridge_shipments_sent_total",
				Help: "Total shipments successfully sent to the carrier",
			},
		),
		ShipmentErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "correos_bridge_shipment_errors_total",
				Help: "Total per-shipment errors collected by batch workflows",
			},
		),
		LabelsWritten: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "correos_bridge_labels_written_total",
				Help: "Total label files written to disk",
			},
		),
	}
}

// RecordRequest records a request metric.
func (m *Metrics) RecordRequest(operation, status string, duration float64) {
	m.RequestsTotal.WithLabelValues(operation, status).Inc()
	m.RequestDuration.WithLabelValues(operation).Observe(duration)
}

// RecordBatch records the outcome of one batch send.
func (m *Metrics) RecordBatch(sent, labels, errors int) {
	m.ShipmentsSent.Add(float64(sent))
	m.LabelsWritten.Add(float64(labels))
	m.ShipmentErrors.Add(float64(errors))
}
