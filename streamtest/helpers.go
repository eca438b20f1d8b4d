package streamtest

import (
	"encoding/binary"
	"sync/atomic"

	tide "github.com/iov-one/tide"
)

var condCnt uint64

// NewCondition returns a new, unique condition. Calling it twice never
// returns the same value.
func NewCondition() tide.Condition {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, atomic.AddUint64(&condCnt, 1))
	return tide.NewCondition("test", "mock", data)
}

// NewAddress returns a new, unique address.
func NewAddress() tide.Address {
	return NewCondition().Address()
}

// SequenceID returns an ID encoded the way a bucket sequence does it.
func SequenceID(n int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(n))
	return b
}
