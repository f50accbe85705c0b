package countdown

import "time"

// Status describes whether an event's target time has passed.
type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
)

// State is the countdown toward a target time as seen from one instant.
// Remaining is truncated to whole seconds and is zero when expired.
type State struct {
	Status    Status        `json:"status"`
	Remaining time.Duration `json:"remaining"`
	Hours     int64         `json:"hours"`
	Minutes   int64         `json:"minutes"`
	Seconds   int64         `json:"seconds"`
}

// Expired reports whether the target has been reached.
func (s State) Expired() bool {
	return s.Status == StatusExpired
}

// ComputeState returns the countdown state for target as of now.
// A target equal to now is already expired.
func ComputeState(target, now time.Time) State {
	if !now.Before(target) {
		return State{Status: StatusExpired}
	}

	remaining := target.Sub(now).Truncate(time.Second)
	total := int64(remaining / time.Second)
	return State{
		Status:    StatusActive,
		Remaining: remaining,
		Hours:     total / 3600,
		Minutes:   (total % 3600) / 60,
		Seconds:   total % 60,
	}
}
