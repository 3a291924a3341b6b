package scan

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"payment-kiosk/pkg/clock"
)

// Complete is the progress value at which a scan finishes.
const Complete = 100

// Config controls the pace of a simulated QR scan.
type Config struct {
	// TickInterval is the time between progress steps (default: 30ms)
	TickInterval time.Duration

	// Step is how much progress each tick adds (default: 2)
	Step int

	// CompletionPause is the delay between reaching 100 and signalling
	// readiness (default: 500ms)
	CompletionPause time.Duration

	// Logger receives scan lifecycle logs (default: no-op)
	Logger *zap.Logger
}

// DefaultConfig returns the kiosk's scan timings.
func DefaultConfig() Config {
	return Config{
		TickInterval:    30 * time.Millisecond,
		Step:            2,
		CompletionPause: 500 * time.Millisecond,
	}
}

// Callbacks receive scan signals. Each is optional and is invoked from the
// clock's callback goroutine, never while the scan's own lock is held.
type Callbacks struct {
	// OnProgress is called after every tick with the new progress.
	OnProgress func(s *Scan, progress int)

	// OnComplete is called once when progress reaches 100.
	OnComplete func(s *Scan)

	// OnReady is called once, CompletionPause after OnComplete.
	OnReady func(s *Scan)
}

// Simulator starts scans.
type Simulator struct {
	clock  clock.Clock
	config Config
	logger *zap.Logger
}

// NewSimulator creates a scan simulator on the given clock.
func NewSimulator(clk clock.Clock, config Config) *Simulator {
	defaults := DefaultConfig()
	if config.TickInterval <= 0 {
		config.TickInterval = defaults.TickInterval
	}
	if config.Step <= 0 {
		config.Step = defaults.Step
	}
	if config.CompletionPause <= 0 {
		config.CompletionPause = defaults.CompletionPause
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Simulator{clock: clk, config: config, logger: logger}
}

// Scan is a handle to one running scan.
type Scan struct {
	sim       *Simulator
	callbacks Callbacks
	startedAt time.Time

	mu        sync.Mutex
	timer     clock.Timer
	progress  int
	completed bool
	ready     bool
	cancelled bool
}

// Start begins a scan at progress 0.
func (s *Simulator) Start(cb Callbacks) *Scan {
	sc := &Scan{
		sim:       s,
		callbacks: cb,
		startedAt: s.clock.Now(),
	}

	sc.mu.Lock()
	sc.timer = s.clock.AfterFunc(s.config.TickInterval, sc.tick)
	sc.mu.Unlock()

	s.logger.Debug("scan started",
		zap.Duration("tick", s.config.TickInterval),
		zap.Int("step", s.config.Step),
	)
	return sc
}

// Progress returns the current progress in [0, 100].
func (sc *Scan) Progress() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.progress
}

// Completed reports whether progress has reached 100.
func (sc *Scan) Completed() bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.completed
}

// Cancelled reports whether Cancel stopped the scan.
func (sc *Scan) Cancelled() bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.cancelled
}

// StartedAt returns when the scan began.
func (sc *Scan) StartedAt() time.Time {
	return sc.startedAt
}

// Cancel stops the scan. No signal is emitted after Cancel returns.
// It returns false if the scan was already cancelled or already ready.
func (sc *Scan) Cancel() bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.cancelled || sc.ready {
		return false
	}
	sc.cancelled = true
	sc.timer.Stop()

	sc.sim.logger.Debug("scan cancelled", zap.Int("progress", sc.progress))
	return true
}

func (sc *Scan) tick() {
	cfg := sc.sim.config

	sc.mu.Lock()
	if sc.cancelled || sc.completed {
		sc.mu.Unlock()
		return
	}
	sc.progress += cfg.Step
	if sc.progress >= Complete {
		sc.progress = Complete
		sc.completed = true
		sc.timer = sc.sim.clock.AfterFunc(cfg.CompletionPause, sc.finish)
	} else {
		sc.timer = sc.sim.clock.AfterFunc(cfg.TickInterval, sc.tick)
	}
	progress, completed := sc.progress, sc.completed
	sc.mu.Unlock()

	if sc.callbacks.OnProgress != nil {
		sc.callbacks.OnProgress(sc, progress)
	}
	if completed {
		sc.sim.logger.Debug("scan complete",
			zap.Duration("elapsed", sc.sim.clock.Now().Sub(sc.startedAt)),
		)
		if sc.callbacks.OnComplete != nil {
			sc.callbacks.OnComplete(sc)
		}
	}
}

func (sc *Scan) finish() {
	sc.mu.Lock()
	if sc.cancelled || sc.ready {
		sc.mu.Unlock()
		return
	}
	sc.ready = true
	sc.mu.Unlock()

	if sc.callbacks.OnReady != nil {
		sc.callbacks.OnReady(sc)
	}
}
