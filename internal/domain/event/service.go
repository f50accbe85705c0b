package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/countdown/internal/repository"
)

// Service handles event operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new event service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines event creation inputs.
type CreateRequest struct {
	ID         string
	Title      string
	TargetTime time.Time
	Color      Color
}

// Create creates a new event, generating an ID when none is given.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Event, error) {
	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	return s.Add(ctx, Event{
		ID:         id,
		Title:      req.Title,
		TargetTime: req.TargetTime,
		Color:      req.Color,
	})
}

// Add stores ev. Its ID must not already exist.
func (s *Service) Add(ctx context.Context, ev Event) (*Event, error) {
	if err := ValidateID(ev.ID); err != nil {
		return nil, err
	}

	if err := s.repo.Add(ctx, &ev); err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			return nil, ErrDuplicateID
		}
		return nil, fmt.Errorf("adding event: %w", err)
	}

	s.logger.Info("event added", "event_id", ev.ID, "target_time", ev.TargetTime)
	return &ev, nil
}

// Update replaces the full record of the event with ev.ID.
func (s *Service) Update(ctx context.Context, ev Event) (*Event, error) {
	if err := ValidateID(ev.ID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, &ev); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("updating event: %w", err)
	}

	s.logger.Info("event updated", "event_id", ev.ID)
	return &ev, nil
}

// Remove deletes the event with the given ID.
func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.repo.Remove(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("removing event: %w", err)
	}

	s.logger.Info("event removed", "event_id", id)
	return nil
}

// Get fetches an event by ID.
func (s *Service) Get(ctx context.Context, id string) (*Event, error) {
	ev, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("getting event: %w", err)
	}
	return ev, nil
}

// ListSortedByDate returns a snapshot of all events ordered by target time.
func (s *Service) ListSortedByDate(ctx context.Context) ([]Event, error) {
	events, err := s.repo.ListSortedByDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return events, nil
}

// Seed adds the sample events shown on first launch.
func (s *Service) Seed(ctx context.Context, now time.Time) error {
	samples := []CreateRequest{
		{Title: "Sample Event 1", TargetTime: now.Add(24 * time.Hour), Color: ColorBlue},
		{Title: "Sample Event 2", TargetTime: now.Add(48 * time.Hour), Color: ColorRed},
	}
	for _, req := range samples {
		if _, err := s.Create(ctx, req); err != nil {
			return fmt.Errorf("seeding events: %w", err)
		}
	}
	return nil
}
