package clock

import (
	"slices"
	"sync"
	"time"
)

// Manual is a Clock whose time only moves when Advance or Set is called.
// Tickers created from it fire once per elapsed interval, in time order.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*manualTicker
}

// NewManual creates a Manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the clock's current time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// NewTicker creates a ticker whose first tick is due one interval from now.
// Like time.NewTicker it panics on a non-positive interval.
func (m *Manual) NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ticker := &manualTicker{
		clock:    m,
		interval: d,
		next:     m.now.Add(d),
		ch:       make(chan time.Time),
		stopCh:   make(chan struct{}),
	}
	m.tickers = append(m.tickers, ticker)
	return ticker
}

// Advance moves the clock forward by d. See Set.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()
	m.Set(target)
}

// Set moves the clock to t and delivers every tick that came due.
// Each delivery blocks until the ticker's reader receives it or the ticker is stopped.
// Moving backwards changes Now but fires nothing.
func (m *Manual) Set(t time.Time) {
	type delivery struct {
		ticker *manualTicker
		at     time.Time
	}

	m.mu.Lock()
	m.now = t
	var due []delivery
	for _, ticker := range m.tickers {
		for !ticker.next.After(t) {
			due = append(due, delivery{ticker: ticker, at: ticker.next})
			ticker.next = ticker.next.Add(ticker.interval)
		}
	}
	m.mu.Unlock()

	slices.SortStableFunc(due, func(a, b delivery) int {
		return a.at.Compare(b.at)
	})
	for _, d := range due {
		d.ticker.deliver(d.at)
	}
}

func (m *Manual) removeTicker(ticker *manualTicker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickers = slices.DeleteFunc(m.tickers, func(candidate *manualTicker) bool {
		return candidate == ticker
	})
}

type manualTicker struct {
	clock    *Manual
	interval time.Duration
	next     time.Time
	ch       chan time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

func (t *manualTicker) C() <-chan time.Time {
	return t.ch
}

func (t *manualTicker) Stop() {
	t.stopOnce.Do(func() {
		close(t.stopCh)
		t.clock.removeTicker(t)
	})
}

func (t *manualTicker) deliver(at time.Time) {
	select {
	case t.ch <- at:
	case <-t.stopCh:
	}
}
