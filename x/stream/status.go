package stream

import (
	tide "github.com/iov-one/tide"
)

// Status describes the phase a stream is in. It is derived from time
// for the live phases and set explicitly for the terminal ones.
type Status uint8

const (
	StatusInvalid Status = iota
	// StatusWaiting means the stream exists but does not accept
	// deposits yet.
	StatusWaiting
	// StatusBootstrapping accepts deposits and withdrawals but does not
	// distribute yet.
	StatusBootstrapping
	// StatusActive distributes the out token continuously.
	StatusActive
	// StatusEnded means the window passed, participants can exit and
	// the creator can finalize.
	StatusEnded
	// StatusFinalizedStreamed is terminal, the creator collected the
	// proceeds.
	StatusFinalizedStreamed
	// StatusFinalizedRefunded is terminal, nothing was distributed and
	// the pot went back to the treasury.
	StatusFinalizedRefunded
	// StatusCancelled is terminal, the stream was stopped before going
	// active.
	StatusCancelled
)

// IsTerminal returns true for statuses that no amount of time can move
// the stream out of.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCancelled, StatusFinalizedStreamed, StatusFinalizedRefunded:
		return true
	}
	return false
}

func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusBootstrapping:
		return "bootstrapping"
	case StatusActive:
		return "active"
	case StatusEnded:
		return "ended"
	case StatusFinalizedStreamed:
		return "finalized streamed"
	case StatusFinalizedRefunded:
		return "finalized refunded"
	case StatusCancelled:
		return "cancelled"
	default:
		return "invalid"
	}
}

// NextStatus returns the phase a stream with the given milestones is in
// at the given moment. Terminal statuses are returned unchanged.
func NextStatus(current Status, now, bootstrapStart, streamStart, streamEnd tide.UnixTime) Status {
	if current.IsTerminal() {
		return current
	}
	switch {
	case now < bootstrapStart:
		return StatusWaiting
	case now < streamStart:
		return StatusBootstrapping
	case now < streamEnd:
		return StatusActive
	default:
		return StatusEnded
	}
}
