package event

import "context"

// Repository stores events in insertion order.
type Repository interface {
	Add(ctx context.Context, ev *Event) error
	Update(ctx context.Context, ev *Event) error
	Remove(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*Event, error)
	ListSortedByDate(ctx context.Context) ([]Event, error)
}
