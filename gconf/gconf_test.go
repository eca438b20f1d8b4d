package gconf

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tide "github.com/iov-one/tide"
	"github.com/iov-one/tide/errors"
	"github.com/iov-one/tide/store"
)

// demoConf is a minimal configuration to exercise the singleton
// storage. JSON serialization stands in for the wire codec.
type demoConf struct {
	MaxTickers int32 `json:"max_tickers"`
}

var _ Configuration = (*demoConf)(nil)

func (c *demoConf) Validate() error {
	if c.MaxTickers <= 0 {
		return errors.Wrap(errors.ErrState, "max tickers must be positive")
	}
	return nil
}

func (c *demoConf) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

func (c *demoConf) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, c)
}

func TestSaveAndLoad(t *testing.T) {
	db := store.NewMemStore()

	require.NoError(t, Save(db, "demo", &demoConf{MaxTickers: 42}))

	var got demoConf
	require.NoError(t, Load(db, "demo", &got))
	assert.Equal(t, int32(42), got.MaxTickers)
}

func TestSaveValidates(t *testing.T) {
	db := store.NewMemStore()
	err := Save(db, "demo", &demoConf{MaxTickers: 0})
	assert.True(t, errors.ErrState.Is(err))
}

func TestLoadMissing(t *testing.T) {
	db := store.NewMemStore()
	var got demoConf
	err := Load(db, "demo", &got)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestInitConfig(t *testing.T) {
	db := store.NewMemStore()

	opts := tide.Options{
		"conf": json.RawMessage(`{"demo": {"max_tickers": 7}}`),
	}
	require.NoError(t, InitConfig(db, opts, "demo", &demoConf{}))

	var got demoConf
	require.NoError(t, Load(db, "demo", &got))
	assert.Equal(t, int32(7), got.MaxTickers)
}

func TestInitConfigMissingPackage(t *testing.T) {
	db := store.NewMemStore()
	opts := tide.Options{
		"conf": json.RawMessage(`{"other": {}}`),
	}
	err := InitConfig(db, opts, "demo", &demoConf{})
	assert.True(t, errors.ErrNotFound.Is(err))
}
