package payment

import "errors"

// Errors returned by the payment simulator.
var (
	// ErrInvalidAmount is returned when the amount is zero or negative
	ErrInvalidAmount = errors.New("payment: amount must be positive")

	// ErrInvalidMethod is returned for an unknown or unset payment method
	ErrInvalidMethod = errors.New("payment: invalid payment method")

	// ErrBusy is returned when a payment is started while another is in flight
	ErrBusy = errors.New("payment: another payment is in progress")
)

// IsBusy checks if the error indicates a payment is already running.
func IsBusy(err error) bool {
	return errors.Is(err, ErrBusy)
}
