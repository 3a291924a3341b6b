package payment

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDProvider generates transaction identifiers that are unique within a ledger.
type IDProvider interface {
	NewID() string
}

// UUIDProvider issues random version 4 UUIDs.
type UUIDProvider struct{}

// NewID returns a new random UUID string.
func (UUIDProvider) NewID() string {
	return uuid.NewString()
}

// SequenceProvider issues monotonically increasing ids such as "txn-000001".
// It is safe for concurrent use.
type SequenceProvider struct {
	Prefix string
	next   atomic.Uint64
}

// NewSequenceProvider creates a sequence starting at 1.
func NewSequenceProvider(prefix string) *SequenceProvider {
	return &SequenceProvider{Prefix: prefix}
}

// NewID returns the next id in the sequence.
func (p *SequenceProvider) NewID() string {
	return fmt.Sprintf("%s%06d", p.Prefix, p.next.Add(1))
}
