package mcp

import (
	"time"

	"github.com/rpggio/countdown/internal/domain/countdown"
	"github.com/rpggio/countdown/internal/domain/event"
)

type AddEventParams struct {
	ID         string `json:"id,omitempty" jsonschema:"unique event identifier, generated when omitted"`
	Title      string `json:"title" jsonschema:"display title"`
	TargetTime string `json:"target_time" jsonschema:"RFC 3339 timestamp the countdown measures toward"`
	Color      string `json:"color,omitempty" jsonschema:"display color, stored unchanged (default black)"`
}

type UpdateEventParams struct {
	ID         string `json:"id" jsonschema:"identifier of the event to replace"`
	Title      string `json:"title" jsonschema:"display title"`
	TargetTime string `json:"target_time" jsonschema:"RFC 3339 timestamp the countdown measures toward"`
	Color      string `json:"color,omitempty" jsonschema:"display color, stored unchanged (default black)"`
}

type RemoveEventParams struct {
	ID string `json:"id" jsonschema:"identifier of the event to remove"`
}

type GetEventParams struct {
	ID   string `json:"id" jsonschema:"event identifier"`
	Mode string `json:"mode,omitempty" jsonschema:"countdown format: numeric or relative"`
}

type ListEventsParams struct {
	Mode string `json:"mode,omitempty" jsonschema:"countdown format: numeric or relative"`
}

type GetCountdownParams struct {
	ID         string `json:"id,omitempty" jsonschema:"event identifier; takes precedence over target_time"`
	TargetTime string `json:"target_time,omitempty" jsonschema:"RFC 3339 timestamp to count down to"`
	Mode       string `json:"mode,omitempty" jsonschema:"countdown format: numeric or relative"`
}

type CountdownResponse struct {
	Status           countdown.Status `json:"status"`
	Label            string           `json:"label"`
	Hours            int64            `json:"hours"`
	Minutes          int64            `json:"minutes"`
	Seconds          int64            `json:"seconds"`
	RemainingSeconds int64            `json:"remaining_seconds"`
	Now              string           `json:"now"`
}

type EventResponse struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	TargetTime string            `json:"target_time"`
	Color      string            `json:"color"`
	Countdown  CountdownResponse `json:"countdown"`
}

type ListEventsResponse struct {
	Events []EventResponse `json:"events"`
}

type RemoveEventResponse struct {
	ID      string `json:"id"`
	Removed bool   `json:"removed"`
}

func newCountdownResponse(state countdown.State, mode countdown.Mode, now time.Time) CountdownResponse {
	return CountdownResponse{
		Status:           state.Status,
		Label:            state.Format(mode),
		Hours:            state.Hours,
		Minutes:          state.Minutes,
		Seconds:          state.Seconds,
		RemainingSeconds: int64(state.Remaining / time.Second),
		Now:              now.Format(time.RFC3339),
	}
}

func newEventResponse(ev event.Event, mode countdown.Mode, now time.Time) EventResponse {
	return EventResponse{
		ID:         ev.ID,
		Title:      ev.Title,
		TargetTime: ev.TargetTime.Format(time.RFC3339),
		Color:      string(ev.Color),
		Countdown:  newCountdownResponse(countdown.ComputeState(ev.TargetTime, now), mode, now),
	}
}
