package metrics

import (
	"time"
)

// MetricsCollector defines the interface for collecting kiosk metrics.
// Implementations can export metrics to various backends (Prometheus, in-memory, etc.).
type MetricsCollector interface {
	// Screen flow
	RecordIntent(intent string, accepted bool)
	RecordTransition(from, to string)

	// Simulators
	RecordPayment(method string, status string, duration time.Duration)
	RecordScan(outcome ScanOutcome, duration time.Duration)

	// Ledger
	RecordLedgerSize(size int)
}

// ScanOutcome describes how a QR scan ended.
type ScanOutcome int

const (
	// ScanCompleted means progress reached 100.
	ScanCompleted ScanOutcome = iota
	// ScanCancelled means the customer left the scan screen first.
	ScanCancelled
)

// String returns the label used for the outcome.
func (o ScanOutcome) String() string {
	switch o {
	case ScanCompleted:
		return "completed"
	case ScanCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// NoOpCollector is a no-op implementation of MetricsCollector.
// It's used as the default collector when metrics are not needed.
type NoOpCollector struct{}

// RecordIntent does nothing.
func (NoOpCollector) RecordIntent(intent string, accepted bool) {}

// RecordTransition does nothing.
func (NoOpCollector) RecordTransition(from, to string) {}

// RecordPayment does nothing.
func (NoOpCollector) RecordPayment(method string, status string, duration time.Duration) {}

// RecordScan does nothing.
func (NoOpCollector) RecordScan(outcome ScanOutcome, duration time.Duration) {}

// RecordLedgerSize does nothing.
func (NoOpCollector) RecordLedgerSize(size int) {}
