package memory

import (
	"sync"
	"time"

	"payment-kiosk/pkg/metrics"
)

// MemoryCollector implements MetricsCollector for in-memory testing.
type MemoryCollector struct {
	mu sync.RWMutex

	intents     map[string]IntentCounts
	transitions map[Transition]int64
	payments    map[string]int64 // keyed by method + "/" + status
	scans       map[metrics.ScanOutcome]int64
	ledgerSize  int

	paymentLatencies []time.Duration
	scanLatencies    []time.Duration
}

// IntentCounts holds accepted and rejected counts for one intent.
type IntentCounts struct {
	Accepted int64
	Rejected int64
}

// Transition is a from/to screen pair.
type Transition struct {
	From string
	To   string
}

// NewMemoryCollector creates a new in-memory metrics collector.
func NewMemoryCollector() *MemoryCollector {
	mc := &MemoryCollector{}
	mc.reset()
	return mc
}

func (mc *MemoryCollector) reset() {
	mc.intents = make(map[string]IntentCounts)
	mc.transitions = make(map[Transition]int64)
	mc.payments = make(map[string]int64)
	mc.scans = make(map[metrics.ScanOutcome]int64)
	mc.ledgerSize = 0
	mc.paymentLatencies = nil
	mc.scanLatencies = nil
}

// RecordIntent records a UI intent.
func (mc *MemoryCollector) RecordIntent(intent string, accepted bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	c := mc.intents[intent]
	if accepted {
		c.Accepted++
	} else {
		c.Rejected++
	}
	mc.intents[intent] = c
}

// RecordTransition records a screen change.
func (mc *MemoryCollector) RecordTransition(from, to string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.transitions[Transition{From: from, To: to}]++
}

// RecordPayment records a settled payment.
func (mc *MemoryCollector) RecordPayment(method string, status string, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.payments[method+"/"+status]++
	mc.paymentLatencies = append(mc.paymentLatencies, duration)
}

// RecordScan records the end of a QR scan.
func (mc *MemoryCollector) RecordScan(outcome metrics.ScanOutcome, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.scans[outcome]++
	mc.scanLatencies = append(mc.scanLatencies, duration)
}

// RecordLedgerSize records the current ledger size.
func (mc *MemoryCollector) RecordLedgerSize(size int) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.ledgerSize = size
}

// Snapshot is a copy of the collected metrics.
type Snapshot struct {
	Intents          map[string]IntentCounts
	Transitions      map[Transition]int64
	Payments         map[string]int64
	Scans            map[metrics.ScanOutcome]int64
	LedgerSize       int
	PaymentLatencies []time.Duration
	ScanLatencies    []time.Duration
}

// Snapshot returns a copy of the current metrics state.
func (mc *MemoryCollector) Snapshot() Snapshot {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	s := Snapshot{
		Intents:          make(map[string]IntentCounts, len(mc.intents)),
		Transitions:      make(map[Transition]int64, len(mc.transitions)),
		Payments:         make(map[string]int64, len(mc.payments)),
		Scans:            make(map[metrics.ScanOutcome]int64, len(mc.scans)),
		LedgerSize:       mc.ledgerSize,
		PaymentLatencies: append([]time.Duration(nil), mc.paymentLatencies...),
		ScanLatencies:    append([]time.Duration(nil), mc.scanLatencies...),
	}
	for k, v := range mc.intents {
		s.Intents[k] = v
	}
	for k, v := range mc.transitions {
		s.Transitions[k] = v
	}
	for k, v := range mc.payments {
		s.Payments[k] = v
	}
	for k, v := range mc.scans {
		s.Scans[k] = v
	}
	return s
}

// Reset clears all collected metrics.
func (mc *MemoryCollector) Reset() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.reset()
}
