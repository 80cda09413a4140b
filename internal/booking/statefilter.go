package booking

import (
	"strings"
	"time"
)

// State is a caller-selected temporal/status bucket for booking list queries.
type State string

const (
	StateAll      State = "ALL"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateCurrent  State = "CURRENT"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState maps a query value onto the closed state-filter set.
// Empty input means ALL.
func ParseState(s string) (State, error) {
	switch State(strings.ToUpper(strings.TrimSpace(s))) {
	case "":
		return StateAll, nil
	case StateAll:
		return StateAll, nil
	case StatePast:
		return StatePast, nil
	case StateFuture:
		return StateFuture, nil
	case StateCurrent:
		return StateCurrent, nil
	case StateWaiting:
		return StateWaiting, nil
	case StateRejected:
		return StateRejected, nil
	default:
		return "", ErrInvalidState
	}
}

// Matches returns the predicate for this state against a fixed now.
// The snapshot keeps one list call internally consistent: every booking is
// classified against the same instant.
func (s State) Matches(now time.Time) func(*Booking) bool {
	switch s {
	case StatePast:
		return func(b *Booking) bool { return b.End.Before(now) }
	case StateFuture:
		return func(b *Booking) bool { return b.Start.After(now) }
	case StateCurrent:
		return func(b *Booking) bool { return b.Start.Before(now) && b.End.After(now) }
	case StateWaiting:
		return func(b *Booking) bool { return b.Status == StatusWaiting }
	case StateRejected:
		return func(b *Booking) bool { return b.Status == StatusRejected }
	default:
		return func(*Booking) bool { return true }
	}
}
