package kiosk

import (
	"errors"
	"fmt"
)

// Errors returned when dispatching intents.
var (
	// ErrIntentNotAllowed is returned when an intent has no meaning on the active screen
	ErrIntentNotAllowed = errors.New("kiosk: intent not allowed on current screen")

	// ErrUnknownIntent is returned for an intent name that does not exist
	ErrUnknownIntent = errors.New("kiosk: unknown intent")

	// ErrInvalidKey is returned when enter-digit carries something that is not a keypad key
	ErrInvalidKey = errors.New("kiosk: invalid keypad key")

	// ErrClosed is returned after the controller has been closed
	ErrClosed = errors.New("kiosk: controller closed")
)

// IsNotAllowed checks if the error means the intent was rejected for the current screen.
func IsNotAllowed(err error) bool {
	return errors.Is(err, ErrIntentNotAllowed)
}

func notAllowed(kind IntentKind, screen Screen) error {
	return fmt.Errorf("%w: %s on %s", ErrIntentNotAllowed, kind, screen)
}
