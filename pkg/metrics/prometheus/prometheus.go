package prometheus

import (
	"strconv"
	"time"

	"payment-kiosk/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements MetricsCollector for Prometheus.
type PrometheusCollector struct {
	namespace string

	// Screen flow
	intents     *prometheus.CounterVec
	transitions *prometheus.CounterVec

	// Payments
	payments       *prometheus.CounterVec
	paymentLatency *prometheus.HistogramVec

	// QR scans
	scans       *prometheus.CounterVec
	scanLatency *prometheus.HistogramVec

	// Ledger
	ledgerSize prometheus.Gauge
}

// NewPrometheusCollector creates a new Prometheus metrics collector.
func NewPrometheusCollector(namespace string) *PrometheusCollector {
	return &PrometheusCollector{
		namespace: namespace,
		intents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "intents_total",
				Help:      "Total number of UI intents by name and whether they were accepted",
			},
			[]string{"intent", "accepted"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "screen_transitions_total",
				Help:      "Total number of screen transitions",
			},
			[]string{"from", "to"},
		),
		payments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payments_total",
				Help:      "Total number of settled payments by method and status",
			},
			[]string{"method", "status"},
		),
		paymentLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "payment_duration_seconds",
				Help:      "Time from entering processing to the transaction being recorded",
				Buckets:   prometheus.LinearBuckets(0.5, 0.5, 10), // 0.5s to 5s
			},
			[]string{"method"},
		),
		scans: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "qr_scans_total",
				Help:      "Total number of QR scans by outcome",
			},
			[]string{"outcome"},
		),
		scanLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "qr_scan_duration_seconds",
				Help:      "Time spent on the QR scan screen",
				Buckets:   prometheus.LinearBuckets(0.25, 0.25, 10),
			},
			[]string{"outcome"},
		),
		ledgerSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "ledger_transactions",
				Help:      "Number of transactions recorded in this session",
			},
		),
	}
}

// Register registers all metrics with the given Prometheus registry.
func (pc *PrometheusCollector) Register(registry *prometheus.Registry) error {
	collectors := []prometheus.Collector{
		pc.intents,
		pc.transitions,
		pc.payments,
		pc.paymentLatency,
		pc.scans,
		pc.scanLatency,
		pc.ledgerSize,
	}

	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return err
		}
	}

	return nil
}

// RecordIntent records a UI intent.
func (pc *PrometheusCollector) RecordIntent(intent string, accepted bool) {
	pc.intents.WithLabelValues(intent, strconv.FormatBool(accepted)).Inc()
}

// RecordTransition records a screen change.
func (pc *PrometheusCollector) RecordTransition(from, to string) {
	pc.transitions.WithLabelValues(from, to).Inc()
}

// RecordPayment records a settled payment.
func (pc *PrometheusCollector) RecordPayment(method string, status string, duration time.Duration) {
	pc.payments.WithLabelValues(method, status).Inc()
	pc.paymentLatency.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordScan records the end of a QR scan.
func (pc *PrometheusCollector) RecordScan(outcome metrics.ScanOutcome, duration time.Duration) {
	pc.scans.WithLabelValues(outcome.String()).Inc()
	pc.scanLatency.WithLabelValues(outcome.String()).Observe(duration.Seconds())
}

// RecordLedgerSize records the current ledger size.
func (pc *PrometheusCollector) RecordLedgerSize(size int) {
	pc.ledgerSize.Set(float64(size))
}
