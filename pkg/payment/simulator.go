package payment

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"payment-kiosk/pkg/clock"
)

// DefaultDelay is how long a simulated payment takes to settle.
const DefaultDelay = 2 * time.Second

// SimulatorConfig configures the payment simulator.
type SimulatorConfig struct {
	// Delay between starting a payment and producing its transaction (default: 2s)
	Delay time.Duration

	// IDs issues transaction ids (default: UUIDProvider)
	IDs IDProvider

	// Logger receives payment lifecycle logs (default: no-op)
	Logger *zap.Logger
}

// DefaultSimulatorConfig returns the configuration used by the kiosk.
func DefaultSimulatorConfig() SimulatorConfig {
	return SimulatorConfig{
		Delay: DefaultDelay,
		IDs:   UUIDProvider{},
	}
}

// Simulator turns an amount and a method into a Transaction after a fixed
// delay. At most one payment runs at a time.
type Simulator struct {
	clock  clock.Clock
	config SimulatorConfig
	logger *zap.Logger

	mu     sync.Mutex
	active *Run
}

// NewSimulator creates a payment simulator on the given clock.
func NewSimulator(clk clock.Clock, config SimulatorConfig) *Simulator {
	if config.Delay <= 0 {
		config.Delay = DefaultDelay
	}
	if config.IDs == nil {
		config.IDs = UUIDProvider{}
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Simulator{
		clock:  clk,
		config: config,
		logger: logger,
	}
}

// CompletionFunc receives the transaction produced by a run.
type CompletionFunc func(run *Run, tx Transaction)

// Run is a handle to one in-flight payment.
type Run struct {
	sim       *Simulator
	amount    decimal.Decimal
	method    Method
	startedAt time.Time
	done      CompletionFunc

	mu        sync.Mutex
	timer     clock.Timer
	cancelled bool
	finished  bool
}

// Process starts a payment. done is called from the clock's callback
// goroutine once the delay elapses, unless the run is cancelled first.
func (s *Simulator) Process(amount decimal.Decimal, method Method, done CompletionFunc) (*Run, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil && s.active.Active() {
		return nil, ErrBusy
	}

	run := &Run{
		sim:       s,
		amount:    amount,
		method:    method,
		startedAt: s.clock.Now(),
		done:      done,
	}
	// Hold the run lock so a zero-delay clock cannot fire before timer is set.
	run.mu.Lock()
	run.timer = s.clock.AfterFunc(s.config.Delay, run.complete)
	run.mu.Unlock()
	s.active = run

	s.logger.Debug("payment started",
		zap.String("amount", amount.String()),
		zap.String("method", string(method)),
		zap.Duration("delay", s.config.Delay),
	)

	return run, nil
}

// Amount returns the amount being paid.
func (r *Run) Amount() decimal.Decimal { return r.amount }

// Method returns the method being used.
func (r *Run) Method() Method { return r.method }

// StartedAt returns when the run was started.
func (r *Run) StartedAt() time.Time { return r.startedAt }

// Active reports whether the run has neither completed nor been cancelled.
func (r *Run) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.cancelled && !r.finished
}

// Cancel stops the run. It returns false if the run already completed or
// was cancelled before.
func (r *Run) Cancel() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancelled || r.finished {
		return false
	}
	r.cancelled = true
	r.timer.Stop()

	r.sim.logger.Debug("payment cancelled", zap.String("method", string(r.method)))
	return true
}

func (r *Run) complete() {
	r.mu.Lock()
	if r.cancelled || r.finished {
		r.mu.Unlock()
		return
	}
	r.finished = true
	r.mu.Unlock()

	tx := Transaction{
		ID:        r.sim.config.IDs.NewID(),
		Amount:    r.amount,
		Timestamp: r.sim.clock.Now(),
		Method:    r.method,
		Status:    StatusSuccess,
	}

	r.sim.logger.Debug("payment settled",
		zap.String("id", tx.ID),
		zap.Duration("elapsed", tx.Timestamp.Sub(r.startedAt)),
	)

	if r.done != nil {
		r.done(r, tx)
	}
}
