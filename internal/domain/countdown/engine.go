package countdown

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rpggio/countdown/internal/clock"
)

// Engine computes countdown states against a Clock and runs tick subscriptions.
type Engine struct {
	clock  clock.Clock
	logger *slog.Logger
	nextID atomic.Uint64
}

// NewEngine creates an engine. A nil clock selects the wall clock.
func NewEngine(c clock.Clock, logger *slog.Logger) *Engine {
	if c == nil {
		c = clock.System
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{clock: c, logger: logger}
}

// Now returns the engine clock's current time.
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}

// StateOf returns the countdown state for target as of the clock's current time.
func (e *Engine) StateOf(target time.Time) State {
	return ComputeState(target, e.clock.Now())
}

// Subscribe calls onTick with the clock's tick time once per interval until the
// returned subscription is cancelled. No tick is delivered at subscription time.
func (e *Engine) Subscribe(interval time.Duration, onTick func(now time.Time)) (*Subscription, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: interval must be positive, got %s", ErrInvalidArgument, interval)
	}
	if onTick == nil {
		return nil, fmt.Errorf("%w: nil tick callback", ErrInvalidArgument)
	}

	sub := &Subscription{
		id:       e.nextID.Add(1),
		interval: interval,
		ticker:   e.clock.NewTicker(interval),
		onTick:   onTick,
		stopCh:   make(chan struct{}),
		logger:   e.logger,
	}
	e.logger.Debug("subscription started", "subscription", sub.id, "interval", interval)

	go sub.run()
	return sub, nil
}

// SubscriptionState is the lifecycle position of a Subscription.
type SubscriptionState string

const (
	SubscriptionRunning   SubscriptionState = "running"
	SubscriptionCancelled SubscriptionState = "cancelled"
)

// Subscription is a handle to a periodic tick registration.
type Subscription struct {
	id        uint64
	interval  time.Duration
	ticker    clock.Ticker
	onTick    func(now time.Time)
	stopCh    chan struct{}
	logger    *slog.Logger
	cancelled atomic.Bool

	// held while onTick runs
	mu sync.Mutex
}

// Interval returns the tick interval.
func (s *Subscription) Interval() time.Duration {
	return s.interval
}

// State reports whether the subscription still delivers ticks.
func (s *Subscription) State() SubscriptionState {
	if s.cancelled.Load() {
		return SubscriptionCancelled
	}
	return SubscriptionRunning
}

// Cancel stops further ticks. It returns only after any in-flight callback has
// finished, so no tick is delivered once it returns. Repeated calls are no-ops.
// It must not be called from the subscription's own callback.
func (s *Subscription) Cancel() {
	if s.cancelled.CompareAndSwap(false, true) {
		s.ticker.Stop()
		close(s.stopCh)
		s.logger.Debug("subscription cancelled", "subscription", s.id)
	}

	s.mu.Lock()
	s.mu.Unlock()
}

func (s *Subscription) run() {
	for {
		select {
		case <-s.stopCh:
			return
		case now := <-s.ticker.C():
			s.deliver(now)
		}
	}
}

func (s *Subscription) deliver(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelled.Load() {
		return
	}
	s.onTick(now)
}
