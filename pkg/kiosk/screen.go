package kiosk

// Screen identifies the view currently shown on the kiosk.
type Screen string

const (
	ScreenWelcome       Screen = "welcome"
	ScreenAmountEntry   Screen = "amount"
	ScreenPaymentMethod Screen = "payment"
	ScreenQRScan        Screen = "qr-scan"
	ScreenProcessing    Screen = "processing"
	ScreenSuccess       Screen = "success"
	ScreenHistory       Screen = "history"
)

// IntentKind names a discrete customer action.
type IntentKind string

const (
	IntentPayByCard     IntentKind = "select-pay-by-card"
	IntentPayByQR       IntentKind = "select-pay-by-qr"
	IntentHistory       IntentKind = "select-history"
	IntentEnterDigit    IntentKind = "enter-digit"
	IntentBackspace     IntentKind = "backspace"
	IntentClear         IntentKind = "clear"
	IntentContinue      IntentKind = "continue"
	IntentBack          IntentKind = "back"
	IntentSelectMethod  IntentKind = "select-method"
	IntentNewPayment    IntentKind = "new-payment"
	IntentGoHome        IntentKind = "go-home"
	IntentCreatePayment IntentKind = "create-payment"
)

var intentKinds = map[IntentKind]bool{
	IntentPayByCard:     true,
	IntentPayByQR:       true,
	IntentHistory:       true,
	IntentEnterDigit:    true,
	IntentBackspace:     true,
	IntentClear:         true,
	IntentContinue:      true,
	IntentBack:          true,
	IntentSelectMethod:  true,
	IntentNewPayment:    true,
	IntentGoHome:        true,
	IntentCreatePayment: true,
}

// Known reports whether k is one of the defined intents.
func (k IntentKind) Known() bool {
	return intentKinds[k]
}

// Intent is a customer action. Key is used by enter-digit, Method by
// select-method.
type Intent struct {
	Kind   IntentKind
	Key    string
	Method string
}
