package prometheus

import (
	"strings"
	"testing"
	"time"

	"payment-kiosk/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusCollector_Register(t *testing.T) {
	pc := NewPrometheusCollector("kiosk_test")
	registry := prometheus.NewRegistry()

	if err := pc.Register(registry); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := pc.Register(registry); err == nil {
		t.Error("Expected error registering the same collectors twice")
	}
}

func TestPrometheusCollector_Records(t *testing.T) {
	pc := NewPrometheusCollector("kiosk_test")

	pc.RecordIntent("continue", true)
	pc.RecordIntent("continue", false)
	pc.RecordIntent("continue", false)
	pc.RecordTransition("welcome", "amount")
	pc.RecordPayment("card", "success", 2*time.Second)
	pc.RecordScan(metrics.ScanCancelled, 300*time.Millisecond)
	pc.RecordLedgerSize(3)

	if got := testutil.ToFloat64(pc.intents.WithLabelValues("continue", "false")); got != 2 {
		t.Errorf("Expected 2 rejected continue intents, got %v", got)
	}
	if got := testutil.ToFloat64(pc.transitions.WithLabelValues("welcome", "amount")); got != 1 {
		t.Errorf("Expected 1 transition, got %v", got)
	}
	if got := testutil.ToFloat64(pc.payments.WithLabelValues("card", "success")); got != 1 {
		t.Errorf("Expected 1 payment, got %v", got)
	}
	if got := testutil.ToFloat64(pc.scans.WithLabelValues("cancelled")); got != 1 {
		t.Errorf("Expected 1 cancelled scan, got %v", got)
	}
	if got := testutil.ToFloat64(pc.ledgerSize); got != 3 {
		t.Errorf("Expected ledger size 3, got %v", got)
	}
}

func TestPrometheusCollector_Exposition(t *testing.T) {
	pc := NewPrometheusCollector("kiosk_test")
	registry := prometheus.NewRegistry()
	if err := pc.Register(registry); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	pc.RecordLedgerSize(7)

	expected := `
# HELP kiosk_test_ledger_transactions Number of transactions recorded in this session
# TYPE kiosk_test_ledger_transactions gauge
kiosk_test_ledger_transactions 7
`
	if err := testutil.GatherAndCompare(registry, strings.NewReader(expected), "kiosk_test_ledger_transactions"); err != nil {
		t.Errorf("Unexpected exposition: %v", err)
	}
}
