package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tide "github.com/iov-one/tide"
	"github.com/iov-one/tide/errors"
	"github.com/iov-one/tide/store"
)

// writingHandler writes a key and then optionally fails or panics.
type writingHandler struct {
	key, value []byte
	err        error
	panics     bool
}

var _ tide.Handler = writingHandler{}

func (h writingHandler) Check(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*tide.CheckResult, error) {
	if err := h.write(db); err != nil {
		return nil, err
	}
	return &tide.CheckResult{}, h.err
}

func (h writingHandler) Deliver(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*tide.DeliverResult, error) {
	if err := h.write(db); err != nil {
		return nil, err
	}
	if h.panics {
		panic("the disco")
	}
	return &tide.DeliverResult{}, h.err
}

func (h writingHandler) write(db tide.KVStore) error {
	return db.Set(h.key, h.value)
}

func TestSavepointWritesOnSuccess(t *testing.T) {
	db := store.NewMemStore()
	h := writingHandler{key: []byte("a"), value: []byte("1")}
	sp := NewSavepoint().OnDeliver()

	_, err := sp.Deliver(context.Background(), db, nil, h)
	require.NoError(t, err)

	got, err := db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)
}

func TestSavepointDiscardsOnError(t *testing.T) {
	db := store.NewMemStore()
	h := writingHandler{
		key: []byte("a"), value: []byte("1"),
		err: errors.ErrState.New("after the write"),
	}
	sp := NewSavepoint().OnDeliver()

	_, err := sp.Deliver(context.Background(), db, nil, h)
	assert.True(t, errors.ErrState.Is(err))

	// The partial write must not survive the failure.
	has, err := db.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestSavepointInactiveWritesThrough(t *testing.T) {
	db := store.NewMemStore()
	h := writingHandler{
		key: []byte("a"), value: []byte("1"),
		err: errors.ErrState.New("after the write"),
	}
	// Triggers on Check only, Deliver runs without isolation.
	sp := NewSavepoint().OnCheck()

	_, err := sp.Deliver(context.Background(), db, nil, h)
	assert.True(t, errors.ErrState.Is(err))

	has, err := db.Has([]byte("a"))
	require.NoError(t, err)
	assert.True(t, has)
}

func TestSavepointOnCheck(t *testing.T) {
	db := store.NewMemStore()
	h := writingHandler{
		key: []byte("a"), value: []byte("1"),
		err: errors.ErrState.New("after the write"),
	}
	sp := NewSavepoint().OnCheck()

	_, err := sp.Check(context.Background(), db, nil, h)
	assert.True(t, errors.ErrState.Is(err))

	has, err := db.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestRecovery(t *testing.T) {
	db := store.NewMemStore()
	h := writingHandler{key: []byte("a"), value: []byte("1"), panics: true}

	var err error
	require.NotPanics(t, func() {
		_, err = NewRecovery().Deliver(context.Background(), db, nil, h)
	})
	assert.True(t, errors.ErrPanic.Is(err))
}

func TestStackDiscardsOnPanic(t *testing.T) {
	db := store.NewMemStore()
	h := writingHandler{key: []byte("a"), value: []byte("1"), panics: true}

	// The savepoint sits outside the recovery, so the panic surfaces
	// as a regular error and all writes are discarded.
	_, err := NewStack(h).Deliver(context.Background(), db, nil)
	assert.True(t, errors.ErrPanic.Is(err))

	has, err := db.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestStackDiscardsOnError(t *testing.T) {
	db := store.NewMemStore()
	h := writingHandler{
		key: []byte("a"), value: []byte("1"),
		err: errors.ErrState.New("after the write"),
	}

	_, err := NewStack(h).Check(context.Background(), db, nil)
	assert.True(t, errors.ErrState.Is(err))

	has, err := db.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestStackWritesThroughOnSuccess(t *testing.T) {
	db := store.NewMemStore()
	h := writingHandler{key: []byte("a"), value: []byte("1")}

	_, err := NewStack(h).Deliver(context.Background(), db, nil)
	require.NoError(t, err)

	got, err := db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)
}
