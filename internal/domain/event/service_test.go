package event_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rpggio/countdown/internal/domain/event"
	"github.com/rpggio/countdown/internal/memstore"
	"github.com/rpggio/countdown/internal/repository"
	"github.com/rpggio/countdown/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 9, 11, 8, 0, 0, 0, time.UTC)

func TestEventService_CreateGeneratesID(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.EventRepository{}
	repo.On("Add", ctx, mock.Anything).Return(nil)

	svc := event.NewService(repo, nil)
	ev, err := svc.Create(ctx, event.CreateRequest{Title: "Launch", TargetTime: now, Color: event.ColorBlue})
	require.NoError(t, err)
	require.NotEmpty(t, ev.ID)
	require.Equal(t, "Launch", ev.Title)
	repo.AssertExpectations(t)
}

func TestEventService_CreateAllowsEmptyTitle(t *testing.T) {
	ctx := context.Background()
	svc := event.NewService(memstore.NewEventRepository(), nil)

	ev, err := svc.Create(ctx, event.CreateRequest{TargetTime: now})
	require.NoError(t, err)
	require.Empty(t, ev.Title)
}

func TestEventService_AddMapsDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.EventRepository{}
	repo.On("Add", ctx, mock.Anything).Return(repository.ErrDuplicateID)

	svc := event.NewService(repo, nil)
	_, err := svc.Add(ctx, event.Event{ID: "e1"})
	require.ErrorIs(t, err, event.ErrDuplicateID)
}

func TestEventService_AddRejectsBlankID(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.EventRepository{}
	svc := event.NewService(repo, nil)

	_, err := svc.Add(ctx, event.Event{ID: "  "})
	require.ErrorIs(t, err, event.ErrInvalidInput)
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestEventService_UpdateAndRemoveMapNotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.EventRepository{}
	repo.On("Update", ctx, mock.Anything).Return(repository.ErrNotFound)
	repo.On("Remove", ctx, "missing").Return(repository.ErrNotFound)
	repo.On("Get", ctx, "missing").Return((*event.Event)(nil), repository.ErrNotFound)

	svc := event.NewService(repo, nil)

	_, err := svc.Update(ctx, event.Event{ID: "missing"})
	require.ErrorIs(t, err, event.ErrEventNotFound)

	err = svc.Remove(ctx, "missing")
	require.ErrorIs(t, err, event.ErrEventNotFound)

	_, err = svc.Get(ctx, "missing")
	require.ErrorIs(t, err, event.ErrEventNotFound)
}

func TestEventService_WrapsUnexpectedErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	repo := &mocks.EventRepository{}
	repo.On("ListSortedByDate", ctx).Return(nil, boom)

	svc := event.NewService(repo, nil)
	_, err := svc.ListSortedByDate(ctx)
	require.ErrorIs(t, err, boom)
}

func TestEventService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := event.NewService(memstore.NewEventRepository(), nil)

	created, err := svc.Create(ctx, event.CreateRequest{Title: "Trip", TargetTime: now.Add(time.Hour), Color: event.ColorRed})
	require.NoError(t, err)

	list, err := svc.ListSortedByDate(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, *created, list[0])

	changed := *created
	changed.Title = "Trip (moved)"
	changed.TargetTime = now.Add(2 * time.Hour)
	changed.Color = event.ColorBlack
	_, err = svc.Update(ctx, changed)
	require.NoError(t, err)

	list, err = svc.ListSortedByDate(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, changed, list[0])

	require.NoError(t, svc.Remove(ctx, created.ID))
	list, err = svc.ListSortedByDate(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestEventService_Seed(t *testing.T) {
	ctx := context.Background()
	svc := event.NewService(memstore.NewEventRepository(), nil)

	require.NoError(t, svc.Seed(ctx, now))

	list, err := svc.ListSortedByDate(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Sample Event 1", list[0].Title)
	require.Equal(t, now.Add(24*time.Hour), list[0].TargetTime)
	require.Equal(t, event.ColorBlue, list[0].Color)
	require.Equal(t, "Sample Event 2", list[1].Title)
	require.Equal(t, event.ColorRed, list[1].Color)
}
