package orm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/tide/store"
)

func TestSequenceIncrements(t *testing.T) {
	db := store.NewMemStore()
	s := NewSequence("stream", "id")

	val, err := s.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), val)

	prev, err := s.NextVal(db)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		next, err := s.NextVal(db)
		require.NoError(t, err)
		// Byte representation sorts in acquisition order.
		assert.True(t, bytes.Compare(prev, next) < 0)
		prev = next
	}

	val, raw, err := s.Latest(db)
	require.NoError(t, err)
	assert.Equal(t, int64(12), val)
	assert.Equal(t, prev, raw)
}

func TestSequenceIndependentCounters(t *testing.T) {
	db := store.NewMemStore()
	a := NewSequence("stream", "id")
	b := NewSequence("position", "id")

	_, err := a.NextInt(db)
	require.NoError(t, err)
	_, err = a.NextInt(db)
	require.NoError(t, err)

	val, err := b.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), val)
}

func TestEncodeDecodeSequence(t *testing.T) {
	assert.Equal(t, int64(0), DecodeSequence(nil))
	assert.Equal(t, int64(12345), DecodeSequence(EncodeSequence(12345)))
	assert.Len(t, EncodeSequence(1), 8)
}
