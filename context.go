package tide

import (
	"context"
	"time"

	"github.com/iov-one/tide/errors"
	"github.com/tendermint/tmlibs/log"
)

// Context is just an alias for the standard implementation. We use
// functions to extract the values from the context, to validate the
// data format and avoid collisions between extensions.
type Context = context.Context

type contextKey int

const (
	contextKeyHeight contextKey = iota
	contextKeyTime
	contextKeyLogger
)

// DefaultLogger is used for all context that have not set anything
// themselves.
var DefaultLogger = log.NewNopLogger()

// WithHeight sets the block height for the Context.
func WithHeight(ctx Context, height int64) Context {
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current block height. The second return value
// is false when no block height was set for this context.
func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithBlockTime sets the block time for the Context. Block time is
// always represented in UTC.
func WithBlockTime(ctx Context, t time.Time) Context {
	return context.WithValue(ctx, contextKeyTime, t.UTC())
}

// BlockTime returns the current block time. The second return value is
// false when no block time was set for this context.
func BlockTime(ctx Context) (time.Time, bool) {
	val, ok := ctx.Value(contextKeyTime).(time.Time)
	return val, ok
}

// IsExpired returns true if given time is in the past as compared to
// the "now" as declared for the block. Expiration is inclusive, meaning
// that if current time is equal to the expiration time than this
// function returns true.
//
// This function panics if the block time is not provided in the
// context. This must never happen. The panic is here to prevent a
// broken setup from processing data incorrectly.
func IsExpired(ctx Context, t UnixTime) bool {
	blockNow, err := BlockTimeUnix(ctx)
	if err != nil {
		panic(err)
	}
	return t <= blockNow
}

// BlockTimeUnix returns the current block time as UnixTime. It returns
// an error if the block time is not present in the context.
func BlockTimeUnix(ctx Context) (UnixTime, error) {
	now, ok := BlockTime(ctx)
	if !ok {
		return 0, errors.Wrap(errors.ErrHuman, "block time not in context")
	}
	return AsUnixTime(now), nil
}

// WithLogger sets the logger for the Context.
func WithLogger(ctx Context, logger log.Logger) Context {
	// Logger is only a helper to debug issues. There is no need to
	// ensure it was not set before.
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// GetLogger returns the logger of this context, or DefaultLogger when
// none was set.
func GetLogger(ctx Context) log.Logger {
	if logger, ok := ctx.Value(contextKeyLogger).(log.Logger); ok {
		return logger
	}
	return DefaultLogger
}
