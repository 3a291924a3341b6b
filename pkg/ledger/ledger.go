package ledger

import (
	"sync"

	"payment-kiosk/pkg/payment"
)

// Ledger is the session-scoped record of completed transactions.
// Entries are never updated or removed. It is safe for concurrent use.
type Ledger struct {
	mu sync.RWMutex

	// entries is kept in insertion order; readers see it reversed.
	entries []payment.Transaction
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Record adds a transaction as the newest entry.
func (l *Ledger) Record(tx payment.Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, tx)
}

// All returns every transaction, newest first. The returned slice is a copy.
func (l *Ledger) All() []payment.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]payment.Transaction, len(l.entries))
	for i, tx := range l.entries {
		out[len(l.entries)-1-i] = tx
	}
	return out
}

// Latest returns the most recently recorded transaction.
func (l *Ledger) Latest() (payment.Transaction, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.entries) == 0 {
		return payment.Transaction{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Len returns the number of recorded transactions.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// IsEmpty reports whether nothing has been recorded this session.
func (l *Ledger) IsEmpty() bool {
	return l.Len() == 0
}
