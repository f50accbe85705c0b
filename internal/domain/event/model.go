package event

import "time"

// Color is an opaque display color, passed through unchanged.
type Color string

const (
	ColorBlack Color = "black"
	ColorBlue  Color = "blue"
	ColorRed   Color = "red"
)

// Event is a user-defined countdown target.
type Event struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	TargetTime time.Time `json:"target_time"`
	Color      Color     `json:"color"`
}
