package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/countdown/internal/domain/countdown"
	"github.com/rpggio/countdown/internal/domain/event"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type toolset struct {
	events EventService
	engine *countdown.Engine
	mode   countdown.Mode
}

func registerTools(server *sdkmcp.Server, tools *toolset) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_event",
		Description: "Add an event to count down to",
	}, tools.addEvent)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_event",
		Description: "Replace the title, target time and color of an event by id",
	}, tools.updateEvent)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_event",
		Description: "Remove an event by id",
	}, tools.removeEvent)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_event",
		Description: "Get one event with its current countdown",
	}, tools.getEvent)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_events",
		Description: "List all events sorted by target time, each with its current countdown",
	}, tools.listEvents)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_countdown",
		Description: "Compute the countdown to an event or to an arbitrary timestamp",
	}, tools.getCountdown)
}

func (t *toolset) addEvent(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddEventParams) (*sdkmcp.CallToolResult, EventResponse, error) {
	target, err := parseTargetTime(in.TargetTime)
	if err != nil {
		return nil, EventResponse{}, toolError(err)
	}
	ev, err := t.events.Create(ctx, event.CreateRequest{
		ID:         in.ID,
		Title:      in.Title,
		TargetTime: target,
		Color:      colorOrDefault(in.Color),
	})
	if err != nil {
		return nil, EventResponse{}, toolError(err)
	}
	return nil, newEventResponse(*ev, t.mode, t.engine.Now()), nil
}

func (t *toolset) updateEvent(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateEventParams) (*sdkmcp.CallToolResult, EventResponse, error) {
	target, err := parseTargetTime(in.TargetTime)
	if err != nil {
		return nil, EventResponse{}, toolError(err)
	}
	ev, err := t.events.Update(ctx, event.Event{
		ID:         in.ID,
		Title:      in.Title,
		TargetTime: target,
		Color:      colorOrDefault(in.Color),
	})
	if err != nil {
		return nil, EventResponse{}, toolError(err)
	}
	return nil, newEventResponse(*ev, t.mode, t.engine.Now()), nil
}

func (t *toolset) removeEvent(ctx context.Context, _ *sdkmcp.CallToolRequest, in RemoveEventParams) (*sdkmcp.CallToolResult, RemoveEventResponse, error) {
	if err := t.events.Remove(ctx, in.ID); err != nil {
		return nil, RemoveEventResponse{}, toolError(err)
	}
	return nil, RemoveEventResponse{ID: in.ID, Removed: true}, nil
}

func (t *toolset) getEvent(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetEventParams) (*sdkmcp.CallToolResult, EventResponse, error) {
	mode, err := t.resolveMode(in.Mode)
	if err != nil {
		return nil, EventResponse{}, toolError(err)
	}
	ev, err := t.events.Get(ctx, in.ID)
	if err != nil {
		return nil, EventResponse{}, toolError(err)
	}
	return nil, newEventResponse(*ev, mode, t.engine.Now()), nil
}

func (t *toolset) listEvents(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListEventsParams) (*sdkmcp.CallToolResult, ListEventsResponse, error) {
	mode, err := t.resolveMode(in.Mode)
	if err != nil {
		return nil, ListEventsResponse{}, toolError(err)
	}
	events, err := t.events.ListSortedByDate(ctx)
	if err != nil {
		return nil, ListEventsResponse{}, toolError(err)
	}

	now := t.engine.Now()
	resp := ListEventsResponse{Events: make([]EventResponse, 0, len(events))}
	for _, ev := range events {
		resp.Events = append(resp.Events, newEventResponse(ev, mode, now))
	}
	return nil, resp, nil
}

func (t *toolset) getCountdown(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetCountdownParams) (*sdkmcp.CallToolResult, CountdownResponse, error) {
	mode, err := t.resolveMode(in.Mode)
	if err != nil {
		return nil, CountdownResponse{}, toolError(err)
	}

	var target time.Time
	switch {
	case in.ID != "":
		ev, err := t.events.Get(ctx, in.ID)
		if err != nil {
			return nil, CountdownResponse{}, toolError(err)
		}
		target = ev.TargetTime
	case in.TargetTime != "":
		target, err = parseTargetTime(in.TargetTime)
		if err != nil {
			return nil, CountdownResponse{}, toolError(err)
		}
	default:
		return nil, CountdownResponse{}, toolError(fmt.Errorf("%w: id or target_time is required", event.ErrInvalidInput))
	}

	now := t.engine.Now()
	return nil, newCountdownResponse(countdown.ComputeState(target, now), mode, now), nil
}

func (t *toolset) resolveMode(name string) (countdown.Mode, error) {
	if strings.TrimSpace(name) == "" {
		return t.mode, nil
	}
	return countdown.ParseMode(name)
}

func parseTargetTime(value string) (time.Time, error) {
	target, err := time.Parse(time.RFC3339, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: target_time must be RFC 3339: %v", event.ErrInvalidInput, err)
	}
	return target, nil
}

func colorOrDefault(color string) event.Color {
	if strings.TrimSpace(color) == "" {
		return event.ColorBlack
	}
	return event.Color(color)
}
