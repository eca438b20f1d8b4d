package errors

import (
	"github.com/pkg/errors"
)

// stackTracer is implemented by errors that carry a recorded call
// stack, as produced by the pkg/errors helpers.
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the first stack trace found in the cause chain of
// given error, or nil when there is none. It is used to ensure a stack
// is attached exactly once, at the most inner wrap.
func stackTrace(err error) errors.StackTrace {
	for err != nil {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
	return nil
}
