package store

import (
	"github.com/iov-one/tide/errors"
)

// sliceIterator wraps an already materialized range of items. All the
// in-memory stores preload their range, iteration itself cannot fail
// other than by reaching the end.
type sliceIterator struct {
	items []item
	idx   int
}

func (s *sliceIterator) Next() (key, value []byte, err error) {
	if s.idx >= len(s.items) {
		return nil, nil, errors.Wrap(errors.ErrIteratorDone, "slice iterator")
	}
	it := s.items[s.idx]
	s.idx++
	return it.key, it.value, nil
}

func (s *sliceIterator) Release() {
	s.items = nil
	s.idx = 0
}
