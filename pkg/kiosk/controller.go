package kiosk

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"payment-kiosk/pkg/clock"
	"payment-kiosk/pkg/ledger"
	"payment-kiosk/pkg/metrics"
	"payment-kiosk/pkg/payment"
	"payment-kiosk/pkg/scan"
)

// Config wires the controller to its collaborators. Every field is optional.
type Config struct {
	// Clock drives the simulators (default: wall clock)
	Clock clock.Clock

	// Payment configures the payment simulator
	Payment payment.SimulatorConfig

	// Scan configures the QR scan simulator
	Scan scan.Config

	// Ledger receives completed transactions (default: new empty ledger)
	Ledger *ledger.Ledger

	Logger  *zap.Logger
	Metrics metrics.MetricsCollector

	// Listener is called with a fresh View after every state change,
	// including changes caused by timers. It runs while the controller
	// is locked and must not call back into the controller.
	Listener func(View)
}

// Controller is the kiosk's screen-flow state machine. It owns the session
// and the ledger, and serializes customer intents with simulator callbacks.
type Controller struct {
	mu sync.Mutex

	session Session
	receipt *payment.Transaction
	closed  bool

	// In-flight simulator handles. At most one of them is set.
	scan *scan.Scan
	run  *payment.Run

	ledger   *ledger.Ledger
	payments *payment.Simulator
	scanner  *scan.Simulator
	clock    clock.Clock
	logger   *zap.Logger
	metrics  metrics.MetricsCollector
	listener func(View)
}

// New creates a controller showing the welcome screen.
func New(config Config) *Controller {
	if config.Clock == nil {
		config.Clock = clock.Real()
	}
	if config.Ledger == nil {
		config.Ledger = ledger.New()
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	if config.Metrics == nil {
		config.Metrics = metrics.NoOpCollector{}
	}
	if config.Payment.Logger == nil {
		config.Payment.Logger = config.Logger.Named("payment")
	}
	if config.Scan.Logger == nil {
		config.Scan.Logger = config.Logger.Named("scan")
	}

	return &Controller{
		session:  Session{Screen: ScreenWelcome},
		ledger:   config.Ledger,
		payments: payment.NewSimulator(config.Clock, config.Payment),
		scanner:  scan.NewSimulator(config.Clock, config.Scan),
		clock:    config.Clock,
		logger:   config.Logger,
		metrics:  config.Metrics,
		listener: config.Listener,
	}
}

// Dispatch applies a customer intent. Intents that make no sense on the
// active screen are rejected with ErrIntentNotAllowed and change nothing.
// Continue with a non-positive amount is accepted and does nothing.
func (c *Controller) Dispatch(in Intent) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if !in.Kind.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownIntent, in.Kind)
	}

	err := c.apply(in)
	c.metrics.RecordIntent(string(in.Kind), err == nil)
	if err != nil {
		c.logger.Debug("intent rejected",
			zap.String("intent", string(in.Kind)),
			zap.String("screen", string(c.session.Screen)),
			zap.Error(err),
		)
		return err
	}

	c.notify()
	return nil
}

func (c *Controller) apply(in Intent) error {
	s := &c.session

	switch s.Screen {
	case ScreenWelcome:
		switch in.Kind {
		case IntentPayByCard, IntentPayByQR:
			c.transition(ScreenAmountEntry)
			return nil
		case IntentHistory:
			c.transition(ScreenHistory)
			return nil
		}

	case ScreenAmountEntry:
		switch in.Kind {
		case IntentEnterDigit:
			if !ValidKey(in.Key) {
				return fmt.Errorf("%w: %q", ErrInvalidKey, in.Key)
			}
			s.Amount.Append(in.Key)
			return nil
		case IntentBackspace:
			s.Amount.Backspace()
			return nil
		case IntentClear:
			s.Amount.Clear()
			return nil
		case IntentContinue:
			if s.Amount.IsPositive() {
				c.transition(ScreenPaymentMethod)
			}
			return nil
		case IntentBack:
			s.Amount.Clear()
			c.transition(ScreenWelcome)
			return nil
		}

	case ScreenPaymentMethod:
		switch in.Kind {
		case IntentBack:
			s.Method = payment.MethodNone
			c.transition(ScreenAmountEntry)
			return nil
		case IntentSelectMethod:
			m, err := payment.ParseMethod(in.Method)
			if err != nil {
				return err
			}
			s.Method = m
			if m == payment.MethodQR {
				c.startScan()
				return nil
			}
			if err := c.startPayment(); err != nil {
				s.Method = payment.MethodNone
				return err
			}
			return nil
		}

	case ScreenQRScan:
		if in.Kind == IntentBack {
			s.Method = payment.MethodNone
			c.transition(ScreenPaymentMethod)
			return nil
		}

	case ScreenSuccess:
		switch in.Kind {
		case IntentNewPayment:
			c.resetAttempt()
			c.transition(ScreenAmountEntry)
			return nil
		case IntentGoHome:
			c.resetAttempt()
			c.transition(ScreenWelcome)
			return nil
		}

	case ScreenHistory:
		switch in.Kind {
		case IntentBack:
			c.transition(ScreenWelcome)
			return nil
		case IntentCreatePayment:
			if c.ledger.IsEmpty() {
				c.transition(ScreenAmountEntry)
				return nil
			}
		}
	}

	return notAllowed(in.Kind, s.Screen)
}

// transition switches screens. Leaving QRScan or Processing cancels the
// simulator still attached to it.
func (c *Controller) transition(to Screen) {
	from := c.session.Screen
	if from == to {
		return
	}

	if c.scan != nil {
		if c.scan.Cancel() {
			elapsed := c.clock.Now().Sub(c.scan.StartedAt())
			c.metrics.RecordScan(metrics.ScanCancelled, elapsed)
			c.logger.Info("qr scan cancelled",
				zap.Int("progress", c.scan.Progress()),
				zap.Duration("elapsed", elapsed),
			)
		}
		c.scan = nil
	}
	if c.run != nil {
		if c.run.Cancel() {
			c.logger.Warn("payment abandoned", zap.String("method", string(c.run.Method())))
		}
		c.run = nil
	}

	c.session.Screen = to
	c.metrics.RecordTransition(string(from), string(to))
	c.logger.Debug("screen changed", zap.String("from", string(from)), zap.String("to", string(to)))
}

func (c *Controller) resetAttempt() {
	c.session.Amount.Clear()
	c.session.Method = payment.MethodNone
	c.receipt = nil
}

func (c *Controller) startScan() {
	c.transition(ScreenQRScan)
	c.scan = c.scanner.Start(scan.Callbacks{
		OnProgress: c.onScanProgress,
		OnComplete: c.onScanComplete,
		OnReady:    c.onScanReady,
	})
}

func (c *Controller) startPayment() error {
	amount, _ := c.session.Amount.Value()
	method := c.session.Method

	run, err := c.payments.Process(amount, method, c.onPaymentDone)
	if err != nil {
		return fmt.Errorf("kiosk: start payment: %w", err)
	}
	c.transition(ScreenProcessing)
	c.run = run

	c.logger.Info("payment processing",
		zap.String("amount", amount.String()),
		zap.String("method", string(method)),
	)
	return nil
}

// activeScan reports whether sc is the scan the controller is waiting on.
// Signals from a cancelled or superseded scan are dropped.
func (c *Controller) activeScan(sc *scan.Scan) bool {
	if c.closed || sc != c.scan || sc.Cancelled() || c.session.Screen != ScreenQRScan {
		c.logger.Debug("dropping stale scan signal")
		return false
	}
	return true
}

func (c *Controller) onScanProgress(sc *scan.Scan, _ int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.activeScan(sc) {
		return
	}
	c.notify()
}

func (c *Controller) onScanComplete(sc *scan.Scan) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.activeScan(sc) {
		return
	}
	elapsed := c.clock.Now().Sub(sc.StartedAt())
	c.metrics.RecordScan(metrics.ScanCompleted, elapsed)
	c.logger.Info("qr scan complete", zap.Duration("elapsed", elapsed))
	c.notify()
}

func (c *Controller) onScanReady(sc *scan.Scan) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.activeScan(sc) {
		return
	}
	// The scan is finished; detach it so the transition does not cancel it.
	c.scan = nil

	if err := c.startPayment(); err != nil {
		c.logger.Error("failed to start payment after scan", zap.Error(err))
		c.session.Method = payment.MethodNone
		c.transition(ScreenPaymentMethod)
	}
	c.notify()
}

func (c *Controller) onPaymentDone(run *payment.Run, tx payment.Transaction) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || run != c.run {
		c.logger.Debug("dropping stale payment result", zap.String("id", tx.ID))
		return
	}
	c.run = nil

	c.ledger.Record(tx)
	c.receipt = &tx

	elapsed := tx.Timestamp.Sub(run.StartedAt())
	fields := []zap.Field{
		zap.String("id", tx.ID),
		zap.String("amount", tx.Amount.String()),
		zap.String("method", string(tx.Method)),
		zap.Duration("elapsed", elapsed),
	}
	switch tx.Status {
	case payment.StatusSuccess:
		c.logger.Info("payment succeeded", fields...)
	case payment.StatusFailed:
		c.logger.Warn("payment failed", fields...)
	default:
		c.logger.Error("payment finished with unknown status",
			append(fields, zap.String("status", string(tx.Status)))...)
	}
	c.metrics.RecordPayment(string(tx.Method), string(tx.Status), elapsed)
	c.metrics.RecordLedgerSize(c.ledger.Len())

	c.transition(ScreenSuccess)
	c.notify()
}

// View returns the view model for the active screen.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view()
}

func (c *Controller) view() View {
	s := c.session
	v := View{
		Screen:      s.Screen,
		Amount:      s.Amount.String(),
		CanContinue: s.Amount.IsPositive(),
		Method:      s.Method,
		MethodLabel: s.Method.Label(),
	}
	if c.scan != nil {
		v.ScanProgress = c.scan.Progress()
		v.ScanComplete = c.scan.Completed()
	}
	if c.receipt != nil {
		tx := *c.receipt
		v.Receipt = &tx
	}
	if s.Screen == ScreenHistory {
		v.Transactions = c.ledger.All()
		v.CanCreatePayment = c.ledger.IsEmpty()
	}
	return v
}

func (c *Controller) notify() {
	if c.listener != nil {
		c.listener(c.view())
	}
}

// Session returns a copy of the session state.
func (c *Controller) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Ledger returns the ledger the controller records into.
func (c *Controller) Ledger() *ledger.Ledger {
	return c.ledger
}

// Close cancels any running simulator and rejects further intents.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if c.scan != nil {
		c.scan.Cancel()
		c.scan = nil
	}
	if c.run != nil {
		c.run.Cancel()
		c.run = nil
	}

	c.logger.Info("controller closed",
		zap.String("screen", string(c.session.Screen)),
		zap.Int("transactions", c.ledger.Len()),
	)
	return nil
}

// SelectPayByCard starts a card payment from the welcome screen.
func (c *Controller) SelectPayByCard() error { return c.Dispatch(Intent{Kind: IntentPayByCard}) }

// SelectPayByQR starts a QR payment from the welcome screen.
func (c *Controller) SelectPayByQR() error { return c.Dispatch(Intent{Kind: IntentPayByQR}) }

// SelectHistory opens the operation history.
func (c *Controller) SelectHistory() error { return c.Dispatch(Intent{Kind: IntentHistory}) }

// EnterDigit presses a keypad key.
func (c *Controller) EnterDigit(key string) error {
	return c.Dispatch(Intent{Kind: IntentEnterDigit, Key: key})
}

// Backspace deletes the last typed character.
func (c *Controller) Backspace() error { return c.Dispatch(Intent{Kind: IntentBackspace}) }

// Clear empties the typed amount.
func (c *Controller) Clear() error { return c.Dispatch(Intent{Kind: IntentClear}) }

// Continue moves on to method selection if the amount is positive.
func (c *Controller) Continue() error { return c.Dispatch(Intent{Kind: IntentContinue}) }

// Back returns to the previous screen.
func (c *Controller) Back() error { return c.Dispatch(Intent{Kind: IntentBack}) }

// SelectMethod picks how to pay.
func (c *Controller) SelectMethod(m payment.Method) error {
	return c.Dispatch(Intent{Kind: IntentSelectMethod, Method: string(m)})
}

// NewPayment starts another payment from the success screen.
func (c *Controller) NewPayment() error { return c.Dispatch(Intent{Kind: IntentNewPayment}) }

// GoHome returns to the welcome screen from the success screen.
func (c *Controller) GoHome() error { return c.Dispatch(Intent{Kind: IntentGoHome}) }

// CreatePayment jumps from an empty history to amount entry.
func (c *Controller) CreatePayment() error { return c.Dispatch(Intent{Kind: IntentCreatePayment}) }
