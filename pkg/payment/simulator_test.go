package payment

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"payment-kiosk/pkg/clock/manual"
)

var epoch = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestSimulator() (*Simulator, *manual.Clock) {
	clk := manual.New(epoch)
	sim := NewSimulator(clk, SimulatorConfig{
		Delay: 2 * time.Second,
		IDs:   NewSequenceProvider("txn-"),
	})
	return sim, clk
}

func TestNewSimulator_Defaults(t *testing.T) {
	sim := NewSimulator(manual.New(epoch), SimulatorConfig{})

	if sim.config.Delay != DefaultDelay {
		t.Errorf("Expected default delay %v, got %v", DefaultDelay, sim.config.Delay)
	}
	if _, ok := sim.config.IDs.(UUIDProvider); !ok {
		t.Errorf("Expected UUIDProvider by default, got %T", sim.config.IDs)
	}
}

func TestSimulator_ProcessCompletesAfterDelay(t *testing.T) {
	sim, clk := newTestSimulator()

	var got []Transaction
	run, err := sim.Process(decimal.NewFromInt(150), MethodCard, func(_ *Run, tx Transaction) {
		got = append(got, tx)
	})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	clk.Advance(1999 * time.Millisecond)
	if len(got) != 0 {
		t.Fatalf("Expected no completion before delay, got %d", len(got))
	}
	if !run.Active() {
		t.Error("Expected run to be active before delay")
	}

	clk.Advance(time.Millisecond)
	if len(got) != 1 {
		t.Fatalf("Expected 1 completion, got %d", len(got))
	}

	tx := got[0]
	if tx.ID != "txn-000001" {
		t.Errorf("Expected id txn-000001, got %s", tx.ID)
	}
	if !tx.Amount.Equal(decimal.NewFromInt(150)) {
		t.Errorf("Expected amount 150, got %s", tx.Amount)
	}
	if tx.Method != MethodCard {
		t.Errorf("Expected method card, got %s", tx.Method)
	}
	if tx.Status != StatusSuccess {
		t.Errorf("Expected status success, got %s", tx.Status)
	}
	if !tx.Timestamp.Equal(epoch.Add(2 * time.Second)) {
		t.Errorf("Expected timestamp at completion %v, got %v", epoch.Add(2*time.Second), tx.Timestamp)
	}
	if run.Active() {
		t.Error("Expected run to be inactive after completion")
	}
}

func TestSimulator_SingleFlight(t *testing.T) {
	sim, clk := newTestSimulator()

	if _, err := sim.Process(decimal.NewFromInt(10), MethodCard, nil); err != nil {
		t.Fatalf("First Process failed: %v", err)
	}

	_, err := sim.Process(decimal.NewFromInt(20), MethodFastPayment, nil)
	if !IsBusy(err) {
		t.Errorf("Expected ErrBusy, got %v", err)
	}

	clk.Advance(2 * time.Second)

	if _, err := sim.Process(decimal.NewFromInt(20), MethodFastPayment, nil); err != nil {
		t.Errorf("Expected Process to succeed after completion, got %v", err)
	}
}

func TestSimulator_Cancel(t *testing.T) {
	sim, clk := newTestSimulator()

	fired := false
	run, err := sim.Process(decimal.NewFromInt(10), MethodQR, func(*Run, Transaction) { fired = true })
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if !run.Cancel() {
		t.Error("Expected Cancel to return true for active run")
	}
	if run.Cancel() {
		t.Error("Expected second Cancel to return false")
	}

	clk.Advance(5 * time.Second)
	if fired {
		t.Error("Cancelled run should not complete")
	}

	if _, err := sim.Process(decimal.NewFromInt(10), MethodQR, nil); err != nil {
		t.Errorf("Expected Process to succeed after cancel, got %v", err)
	}
}

func TestSimulator_RejectsInvalidInput(t *testing.T) {
	sim, _ := newTestSimulator()

	tests := []struct {
		name   string
		amount decimal.Decimal
		method Method
		want   error
	}{
		{"zero amount", decimal.Zero, MethodCard, ErrInvalidAmount},
		{"negative amount", decimal.NewFromInt(-5), MethodCard, ErrInvalidAmount},
		{"unset method", decimal.NewFromInt(5), MethodNone, ErrInvalidMethod},
		{"unknown method", decimal.NewFromInt(5), Method("cash"), ErrInvalidMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sim.Process(tt.amount, tt.method, nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParseMethod(t *testing.T) {
	for _, m := range Methods {
		got, err := ParseMethod(string(m))
		if err != nil {
			t.Errorf("ParseMethod(%q) failed: %v", m, err)
		}
		if got != m {
			t.Errorf("Expected %q, got %q", m, got)
		}
	}

	if _, err := ParseMethod("bitcoin"); !errors.Is(err, ErrInvalidMethod) {
		t.Errorf("Expected ErrInvalidMethod, got %v", err)
	}
}

func TestMethod_Label(t *testing.T) {
	labels := map[Method]string{
		MethodCard:        "Банковская карта",
		MethodQR:          "QR-код",
		MethodFastPayment: "СБП",
		MethodNone:        "",
	}
	for m, want := range labels {
		if got := m.Label(); got != want {
			t.Errorf("Label(%q): expected %q, got %q", m, want, got)
		}
	}
}

func TestSequenceProvider(t *testing.T) {
	p := NewSequenceProvider("op-")

	if id := p.NewID(); id != "op-000001" {
		t.Errorf("Expected op-000001, got %s", id)
	}
	if id := p.NewID(); id != "op-000002" {
		t.Errorf("Expected op-000002, got %s", id)
	}
}

func TestUUIDProvider_Unique(t *testing.T) {
	var p UUIDProvider
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := p.NewID()
		if seen[id] {
			t.Fatalf("Duplicate id %s", id)
		}
		seen[id] = true
	}
}
