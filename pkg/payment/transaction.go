package payment

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Method identifies how a payment is made. The zero value means no method
// has been chosen yet.
type Method string

const (
	MethodNone        Method = ""
	MethodCard        Method = "card"
	MethodQR          Method = "qr"
	MethodFastPayment Method = "sbp"
)

// Methods lists the selectable payment methods in display order.
var Methods = []Method{MethodCard, MethodQR, MethodFastPayment}

// Label returns the text shown to the customer for the method.
func (m Method) Label() string {
	switch m {
	case MethodCard:
		return "Банковская карта"
	case MethodQR:
		return "QR-код"
	case MethodFastPayment:
		return "СБП"
	default:
		return ""
	}
}

// Valid reports whether m is one of the selectable methods.
func (m Method) Valid() bool {
	switch m {
	case MethodCard, MethodQR, MethodFastPayment:
		return true
	default:
		return false
	}
}

// ParseMethod converts a wire name into a Method.
func ParseMethod(s string) (Method, error) {
	m := Method(s)
	if !m.Valid() {
		return MethodNone, fmt.Errorf("%w: %q", ErrInvalidMethod, s)
	}
	return m, nil
}

// Status is the outcome of a payment.
type Status string

const (
	StatusSuccess Status = "success"
	// StatusFailed is part of the receipt contract. The simulator never
	// produces it, but consumers must render it.
	StatusFailed Status = "failed"
)

// Transaction is an immutable record of a completed payment.
type Transaction struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
	Method    Method          `json:"method"`
	Status    Status          `json:"status"`
}

// Succeeded reports whether the payment went through.
func (t Transaction) Succeeded() bool {
	return t.Status == StatusSuccess
}
