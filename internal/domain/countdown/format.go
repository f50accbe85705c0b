package countdown

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// Mode selects how an active countdown is presented.
type Mode string

const (
	// ModeNumeric renders hh:mm:ss.
	ModeNumeric Mode = "numeric"
	// ModeRelative renders a humanized label such as "in 2 days".
	ModeRelative Mode = "relative"
)

// ExpiredLabel is shown for events whose target time has passed.
const ExpiredLabel = "Event Passed"

var relativeMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Second, Format: "%s a moment", DivBy: time.Second},
	{D: 2 * time.Second, Format: "%s 1 second", DivBy: time.Second},
	{D: time.Minute, Format: "%s %d seconds", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "%s 1 minute", DivBy: time.Minute},
	{D: time.Hour, Format: "%s %d minutes", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "%s 1 hour", DivBy: time.Hour},
	{D: humanize.Day, Format: "%s %d hours", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "%s 1 day", DivBy: humanize.Day},
	{D: math.MaxInt64, Format: "%s %d days", DivBy: humanize.Day},
}

// ParseMode validates a mode name. An empty name selects ModeNumeric.
func ParseMode(name string) (Mode, error) {
	switch Mode(name) {
	case "", ModeNumeric:
		return ModeNumeric, nil
	case ModeRelative:
		return ModeRelative, nil
	default:
		return "", fmt.Errorf("%w: unknown format mode %q", ErrInvalidArgument, name)
	}
}

// CadenceFor returns the tick interval at which mode visibly changes.
func CadenceFor(mode Mode) time.Duration {
	if mode == ModeRelative {
		return time.Minute
	}
	return time.Second
}

// Numeric renders the state as hh:mm:ss.
func (s State) Numeric() string {
	if s.Expired() {
		return ExpiredLabel
	}
	return fmt.Sprintf("%02d:%02d:%02d", s.Hours, s.Minutes, s.Seconds)
}

// Relative renders the state as a label bucketed by seconds, minutes, hours or days.
func (s State) Relative() string {
	if s.Expired() {
		return ExpiredLabel
	}
	var origin time.Time
	return humanize.CustomRelTime(origin, origin.Add(s.Remaining), "in", "ago", relativeMagnitudes)
}

// Format renders the state in the given mode.
func (s State) Format(mode Mode) string {
	if mode == ModeRelative {
		return s.Relative()
	}
	return s.Numeric()
}
