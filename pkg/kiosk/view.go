package kiosk

import "payment-kiosk/pkg/payment"

// View is everything a presentation layer needs to render the active screen.
type View struct {
	Screen      Screen         `json:"screen"`
	Amount      string         `json:"amount"`
	CanContinue bool           `json:"can_continue"`
	Method      payment.Method `json:"method,omitempty"`
	MethodLabel string         `json:"method_label,omitempty"`

	// Set while a QR scan is running.
	ScanProgress int  `json:"scan_progress"`
	ScanComplete bool `json:"scan_complete"`

	// Receipt is the transaction produced by the current attempt.
	Receipt *payment.Transaction `json:"receipt,omitempty"`

	// Set on the history screen.
	Transactions     []payment.Transaction `json:"transactions,omitempty"`
	CanCreatePayment bool                  `json:"can_create_payment"`
}

// Session is the state of the customer interaction in progress.
type Session struct {
	Screen Screen
	Amount Amount
	Method payment.Method
}
