package errors

import (
	"fmt"
	"strings"
)

// Append clubs together two errors into a single one. Aggregated errors
// act as a collection of those appended, with Is matching any of them.
// Appending nil to an error is a noop, so this function can be chained
// over results of validation calls that may or may not have failed.
func Append(errs ...error) error {
	var collection multiError
	for _, err := range errs {
		switch e := err.(type) {
		case nil:
			// Skip.
		case multiError:
			collection = append(collection, e...)
		default:
			collection = append(collection, e)
		}
	}
	switch len(collection) {
	case 0:
		return nil
	case 1:
		return collection[0]
	default:
		return collection
	}
}

type multiError []error

func (e multiError) Error() string {
	switch len(e) {
	case 0:
		return "<nil>"
	case 1:
		return e[0].Error()
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s", len(e), strings.Join(msgs, "\n\t"))
}

// contains returns true if this collection holds an error of given
// category.
func (e multiError) contains(kind *Error) bool {
	for _, err := range e {
		if kind.Is(err) {
			return true
		}
	}
	return false
}
