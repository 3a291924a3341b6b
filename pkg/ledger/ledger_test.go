package ledger

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"payment-kiosk/pkg/payment"
)

func makeTx(i int) payment.Transaction {
	return payment.Transaction{
		ID:        fmt.Sprintf("txn-%d", i),
		Amount:    decimal.NewFromInt(int64(i * 100)),
		Timestamp: time.Date(2025, 3, 1, 10, i, 0, 0, time.UTC),
		Method:    payment.MethodCard,
		Status:    payment.StatusSuccess,
	}
}

func TestLedger_Empty(t *testing.T) {
	l := New()

	if !l.IsEmpty() {
		t.Error("New ledger should be empty")
	}
	if len(l.All()) != 0 {
		t.Errorf("Expected no transactions, got %d", len(l.All()))
	}
	if _, ok := l.Latest(); ok {
		t.Error("Latest on empty ledger should report false")
	}
}

func TestLedger_RecordNewestFirst(t *testing.T) {
	l := New()

	const k = 5
	for i := 1; i <= k; i++ {
		l.Record(makeTx(i))
	}

	all := l.All()
	if len(all) != k {
		t.Fatalf("Expected %d transactions, got %d", k, len(all))
	}
	for i, tx := range all {
		want := fmt.Sprintf("txn-%d", k-i)
		if tx.ID != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, tx.ID)
		}
	}

	latest, ok := l.Latest()
	if !ok || latest.ID != "txn-5" {
		t.Errorf("Expected latest txn-5, got %v (ok=%v)", latest.ID, ok)
	}
	if l.IsEmpty() {
		t.Error("Ledger should not be empty after Record")
	}
}

func TestLedger_ExistingEntriesUnchanged(t *testing.T) {
	l := New()
	l.Record(makeTx(1))

	before := l.All()[0]
	l.Record(makeTx(2))
	l.Record(makeTx(3))

	after := l.All()[2]
	if after.ID != before.ID || !after.Amount.Equal(before.Amount) ||
		!after.Timestamp.Equal(before.Timestamp) || after.Status != before.Status {
		t.Errorf("Expected first entry unchanged, before=%+v after=%+v", before, after)
	}
}

func TestLedger_AllReturnsCopy(t *testing.T) {
	l := New()
	l.Record(makeTx(1))

	view := l.All()
	view[0].ID = "tampered"

	if got := l.All()[0].ID; got != "txn-1" {
		t.Errorf("Ledger mutated through All(): got %s", got)
	}
}

func TestLedger_ConcurrentRecord(t *testing.T) {
	l := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Record(makeTx(i))
			_ = l.All()
		}(i)
	}
	wg.Wait()

	if l.Len() != 50 {
		t.Errorf("Expected 50 transactions, got %d", l.Len())
	}
}
