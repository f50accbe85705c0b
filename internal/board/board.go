package board

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/rpggio/countdown/internal/domain/countdown"
	"github.com/rpggio/countdown/internal/domain/event"
)

// EventLister provides the sorted event snapshot a board renders.
type EventLister interface {
	ListSortedByDate(ctx context.Context) ([]event.Event, error)
}

// Row is one rendered event line.
type Row struct {
	ID         string
	Title      string
	Color      event.Color
	TargetTime time.Time
	Label      string
	Expired    bool
}

// Renderer draws a full board snapshot.
type Renderer interface {
	Render(rows []Row)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(rows []Row)

// Render calls f(rows).
func (f RendererFunc) Render(rows []Row) {
	f(rows)
}

// Config configures a Board.
type Config struct {
	Events   EventLister
	Engine   *countdown.Engine
	Mode     countdown.Mode
	Renderer Renderer
	Logger   *slog.Logger
}

// Board keeps one countdown subscription per visible event and re-renders on every tick.
type Board struct {
	events   EventLister
	engine   *countdown.Engine
	mode     countdown.Mode
	renderer Renderer
	logger   *slog.Logger

	mu       sync.Mutex
	order    []event.Event
	visible  map[string]*row
	renderMu sync.Mutex
}

type row struct {
	ev    event.Event
	state countdown.State
	sub   *countdown.Subscription
}

// New creates a board. Nothing is shown until Refresh or Show is called.
func New(cfg Config) *Board {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	renderer := cfg.Renderer
	if renderer == nil {
		renderer = RendererFunc(func([]Row) {})
	}
	return &Board{
		events:   cfg.Events,
		engine:   cfg.Engine,
		mode:     cfg.Mode,
		renderer: renderer,
		logger:   logger,
		visible:  make(map[string]*row),
	}
}

// Refresh re-reads the events, shows new ones, hides removed ones and renders.
func (b *Board) Refresh(ctx context.Context) error {
	events, err := b.events.ListSortedByDate(ctx)
	if err != nil {
		return fmt.Errorf("refreshing board: %w", err)
	}

	present := make(map[string]bool, len(events))
	b.mu.Lock()
	b.order = events
	var stale []string
	for _, ev := range events {
		present[ev.ID] = true
		if r, ok := b.visible[ev.ID]; ok {
			r.ev = ev
			r.state = b.engine.StateOf(ev.TargetTime)
		}
	}
	for id := range b.visible {
		if !present[id] {
			stale = append(stale, id)
		}
	}
	b.mu.Unlock()

	for _, id := range stale {
		b.Hide(id)
	}
	for _, ev := range events {
		if err := b.Show(ev.ID); err != nil {
			return err
		}
	}
	b.render()
	return nil
}

// Show starts the live countdown for id, which must be in the last refreshed snapshot.
// Showing a visible row is a no-op.
func (b *Board) Show(id string) error {
	b.mu.Lock()
	if _, ok := b.visible[id]; ok {
		b.mu.Unlock()
		return nil
	}
	ev, ok := b.lookupLocked(id)
	if !ok {
		b.mu.Unlock()
		return fmt.Errorf("showing %q: %w", id, event.ErrEventNotFound)
	}
	r := &row{ev: ev, state: b.engine.StateOf(ev.TargetTime)}
	b.visible[id] = r
	b.mu.Unlock()

	sub, err := b.engine.Subscribe(countdown.CadenceFor(b.mode), func(now time.Time) {
		b.tick(id, now)
	})
	if err != nil {
		b.mu.Lock()
		delete(b.visible, id)
		b.mu.Unlock()
		return fmt.Errorf("showing %q: %w", id, err)
	}

	b.mu.Lock()
	if current, ok := b.visible[id]; ok && current == r {
		r.sub = sub
		sub = nil
	}
	b.mu.Unlock()
	if sub != nil {
		// hidden before the subscription was attached
		sub.Cancel()
		return nil
	}

	b.logger.Debug("row shown", "event_id", id)
	b.render()
	return nil
}

// Hide cancels the live countdown for id. Hiding an invisible row is a no-op.
func (b *Board) Hide(id string) {
	b.mu.Lock()
	r, ok := b.visible[id]
	var sub *countdown.Subscription
	if ok {
		sub = r.sub
		delete(b.visible, id)
	}
	b.mu.Unlock()
	if !ok {
		return
	}

	// Cancel outside b.mu: it waits for an in-flight tick, which takes b.mu.
	if sub != nil {
		sub.Cancel()
	}
	b.logger.Debug("row hidden", "event_id", id)
}

// Close hides every row.
func (b *Board) Close() {
	b.mu.Lock()
	ids := make([]string, 0, len(b.visible))
	for id := range b.visible {
		ids = append(ids, id)
	}
	b.mu.Unlock()

	for _, id := range ids {
		b.Hide(id)
	}
}

// Visible reports whether id currently has a live countdown.
func (b *Board) Visible(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.visible[id]
	return ok
}

// Rows returns the visible rows in date order.
func (b *Board) Rows() []Row {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rowsLocked()
}

func (b *Board) tick(id string, now time.Time) {
	b.mu.Lock()
	r, ok := b.visible[id]
	if ok {
		r.state = countdown.ComputeState(r.ev.TargetTime, now)
	}
	b.mu.Unlock()
	if ok {
		b.render()
	}
}

func (b *Board) render() {
	b.renderMu.Lock()
	defer b.renderMu.Unlock()
	b.renderer.Render(b.Rows())
}

func (b *Board) rowsLocked() []Row {
	rows := make([]Row, 0, len(b.visible))
	for _, ev := range b.order {
		r, ok := b.visible[ev.ID]
		if !ok {
			continue
		}
		rows = append(rows, Row{
			ID:         r.ev.ID,
			Title:      r.ev.Title,
			Color:      r.ev.Color,
			TargetTime: r.ev.TargetTime,
			Label:      r.state.Format(b.mode),
			Expired:    r.state.Expired(),
		})
	}
	return rows
}

func (b *Board) lookupLocked(id string) (event.Event, bool) {
	for _, ev := range b.order {
		if ev.ID == id {
			return ev, true
		}
	}
	return event.Event{}, false
}

// TextRenderer writes each snapshot as plain lines to W.
type TextRenderer struct {
	W io.Writer
}

// Render writes one line per row followed by a blank line.
func (t TextRenderer) Render(rows []Row) {
	for _, r := range rows {
		title := r.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(t.W, "%-32s %s\n", title, r.Label)
	}
	fmt.Fprintln(t.W)
}
