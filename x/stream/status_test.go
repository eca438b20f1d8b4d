package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"

	tide "github.com/iov-one/tide"
)

func TestNextStatus(t *testing.T) {
	const (
		bootstrapStart tide.UnixTime = 100
		streamStart    tide.UnixTime = 200
		streamEnd      tide.UnixTime = 300
	)
	cases := map[string]struct {
		current Status
		now     tide.UnixTime
		want    Status
	}{
		"before bootstrap": {
			current: StatusWaiting, now: 99, want: StatusWaiting,
		},
		"bootstrap phase entered": {
			current: StatusWaiting, now: 100, want: StatusBootstrapping,
		},
		"active phase entered": {
			current: StatusBootstrapping, now: 200, want: StatusActive,
		},
		"still active": {
			current: StatusActive, now: 299, want: StatusActive,
		},
		"ended": {
			current: StatusActive, now: 300, want: StatusEnded,
		},
		"jump over phases": {
			current: StatusWaiting, now: 1000, want: StatusEnded,
		},
		"cancelled is frozen": {
			current: StatusCancelled, now: 1000, want: StatusCancelled,
		},
		"finalized streamed is frozen": {
			current: StatusFinalizedStreamed, now: 150, want: StatusFinalizedStreamed,
		},
		"finalized refunded is frozen": {
			current: StatusFinalizedRefunded, now: 250, want: StatusFinalizedRefunded,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := NextStatus(tc.current, tc.now, bootstrapStart, streamStart, streamEnd)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStatusIsTerminal(t *testing.T) {
	terminal := []Status{StatusCancelled, StatusFinalizedStreamed, StatusFinalizedRefunded}
	for _, s := range terminal {
		assert.True(t, s.IsTerminal(), s.String())
	}
	live := []Status{StatusWaiting, StatusBootstrapping, StatusActive, StatusEnded}
	for _, s := range live {
		assert.False(t, s.IsTerminal(), s.String())
	}
}
