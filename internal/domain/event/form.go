package event

import (
	"context"
	"fmt"
	"time"
)

// FormKind is the purpose an event form was opened for.
type FormKind string

const (
	FormAdd    FormKind = "add"
	FormEdit   FormKind = "edit"
	FormDelete FormKind = "delete"
)

// FormMode is Add, Edit(event) or Delete(event).
type FormMode struct {
	Kind  FormKind
	Event Event
}

// AddMode opens a form for a new event.
func AddMode() FormMode {
	return FormMode{Kind: FormAdd}
}

// EditMode opens a form for an existing event.
func EditMode(ev Event) FormMode {
	return FormMode{Kind: FormEdit, Event: ev}
}

// DeleteMode opens a form confirming removal of an event.
func DeleteMode(ev Event) FormMode {
	return FormMode{Kind: FormDelete, Event: ev}
}

// FormStore is the subset of Service a form saves through.
type FormStore interface {
	Create(ctx context.Context, req CreateRequest) (*Event, error)
	Update(ctx context.Context, ev Event) (*Event, error)
	Remove(ctx context.Context, id string) error
}

// Form holds the editable fields of an event.
type Form struct {
	Mode       FormMode
	Title      string
	TargetTime time.Time
	Color      Color
}

// NewForm prepares a form for mode. Add forms start at now in black.
func NewForm(mode FormMode, now time.Time) *Form {
	if mode.Kind == FormAdd {
		return &Form{Mode: mode, TargetTime: now, Color: ColorBlack}
	}
	return &Form{
		Mode:       mode,
		Title:      mode.Event.Title,
		TargetTime: mode.Event.TargetTime,
		Color:      mode.Event.Color,
	}
}

// NavigationTitle is the heading shown above the form.
func (f *Form) NavigationTitle() string {
	if f.Title == "" {
		return "Add Event"
	}
	return "Edit " + f.Title
}

// CanSave reports whether Save would accept the current fields.
func (f *Form) CanSave() bool {
	if f.Mode.Kind == FormDelete {
		return true
	}
	return ValidateTitle(f.Title) == nil
}

// Save applies the form. Edits keep the original event ID. Delete returns a nil event.
func (f *Form) Save(ctx context.Context, store FormStore) (*Event, error) {
	switch f.Mode.Kind {
	case FormAdd:
		if err := ValidateTitle(f.Title); err != nil {
			return nil, err
		}
		return store.Create(ctx, CreateRequest{
			Title:      f.Title,
			TargetTime: f.TargetTime,
			Color:      f.Color,
		})
	case FormEdit:
		if err := ValidateTitle(f.Title); err != nil {
			return nil, err
		}
		return store.Update(ctx, Event{
			ID:         f.Mode.Event.ID,
			Title:      f.Title,
			TargetTime: f.TargetTime,
			Color:      f.Color,
		})
	case FormDelete:
		return nil, store.Remove(ctx, f.Mode.Event.ID)
	default:
		return nil, fmt.Errorf("%w: unknown form mode %q", ErrInvalidInput, f.Mode.Kind)
	}
}
