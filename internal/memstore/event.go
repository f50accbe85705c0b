package memstore

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/rpggio/countdown/internal/domain/event"
	"github.com/rpggio/countdown/internal/repository"
)

var _ event.Repository = (*EventRepository)(nil)

// EventRepository keeps events in memory in insertion order.
type EventRepository struct {
	mu     sync.RWMutex
	events []event.Event
}

// NewEventRepository creates an empty repository.
func NewEventRepository() *EventRepository {
	return &EventRepository{}
}

// Add appends ev. An existing ID is rejected rather than overwritten.
func (r *EventRepository) Add(_ context.Context, ev *event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexLocked(ev.ID) >= 0 {
		return repository.ErrDuplicateID
	}
	r.events = append(r.events, *ev)
	return nil
}

// Update replaces the stored record with the same ID, keeping its position.
func (r *EventRepository) Update(_ context.Context, ev *event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexLocked(ev.ID)
	if idx < 0 {
		return repository.ErrNotFound
	}
	r.events[idx] = *ev
	return nil
}

// Remove deletes the event with id.
func (r *EventRepository) Remove(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return repository.ErrNotFound
	}
	r.events = slices.Delete(r.events, idx, idx+1)
	return nil
}

// Get returns a copy of the event with id.
func (r *EventRepository) Get(_ context.Context, id string) (*event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return nil, repository.ErrNotFound
	}
	ev := r.events[idx]
	return &ev, nil
}

// ListSortedByDate returns a copy ordered by target time, then ID.
// Storage order is left untouched.
func (r *EventRepository) ListSortedByDate(_ context.Context) ([]event.Event, error) {
	r.mu.RLock()
	out := slices.Clone(r.events)
	r.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b event.Event) int {
		if c := a.TargetTime.Compare(b.TargetTime); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	if out == nil {
		out = []event.Event{}
	}
	return out, nil
}

// insertionOrder returns the stored IDs in storage order.
func (r *EventRepository) insertionOrder() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		ids = append(ids, ev.ID)
	}
	return ids
}

func (r *EventRepository) indexLocked(id string) int {
	return slices.IndexFunc(r.events, func(ev event.Event) bool {
		return ev.ID == id
	})
}
