package stream

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tide "github.com/iov-one/tide"
	"github.com/iov-one/tide/decimal"
	"github.com/iov-one/tide/errors"
	"github.com/iov-one/tide/gconf"
	"github.com/iov-one/tide/store"
	"github.com/iov-one/tide/streamtest"
)

func validConfiguration() Configuration {
	return Configuration{
		Admin:                streamtest.NewAddress(),
		FeeCollector:         streamtest.NewAddress(),
		ExitFeeRatio:         decimal.FromUnits(20000),
		MinWaitDuration:      10,
		MinBootstrapDuration: 60,
		MinStreamDuration:    3600,
	}
}

func TestConfigurationValidate(t *testing.T) {
	conf := validConfiguration()
	assert.NoError(t, conf.Validate())

	conf = validConfiguration()
	conf.Admin = nil
	assert.True(t, errors.ErrEmpty.Is(conf.Validate()))

	conf = validConfiguration()
	conf.ExitFeeRatio = decimal.FromUnits(decimal.Unit + 1)
	assert.True(t, errors.ErrState.Is(conf.Validate()))

	// A ratio of exactly one is allowed.
	conf = validConfiguration()
	conf.ExitFeeRatio = decimal.FromUnits(decimal.Unit)
	assert.NoError(t, conf.Validate())

	conf = validConfiguration()
	conf.MinStreamDuration = 0
	assert.True(t, errors.ErrState.Is(conf.Validate()))
}

func TestConfigurationRoundTrip(t *testing.T) {
	db := store.NewMemStore()
	conf := validConfiguration()
	require.NoError(t, gconf.Save(db, "stream", &conf))

	loaded, err := loadConf(db)
	require.NoError(t, err)
	assert.Equal(t, conf, *loaded)

	_, err = loadConf(store.NewMemStore())
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestInitializerFromGenesis(t *testing.T) {
	db := store.NewMemStore()
	admin := streamtest.NewAddress()
	collector := streamtest.NewAddress()
	genesis := `
	{
		"conf": {
			"stream": {
				"admin": "` + admin.String() + `",
				"fee_collector": "` + collector.String() + `",
				"exit_fee_ratio": "0.02",
				"min_wait_duration": 10,
				"min_bootstrap_duration": "1m",
				"min_stream_duration": "1h"
			}
		}
	}`
	var opts tide.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))
	require.NoError(t, Initializer{}.FromGenesis(opts, db))

	conf, err := loadConf(db)
	require.NoError(t, err)
	assert.Equal(t, admin, conf.Admin)
	assert.Equal(t, collector, conf.FeeCollector)
	assert.Equal(t, uint64(20000), conf.ExitFeeRatio.Units)
	assert.Equal(t, tide.UnixDuration(10), conf.MinWaitDuration)
	assert.Equal(t, tide.UnixDuration(60), conf.MinBootstrapDuration)
	assert.Equal(t, tide.UnixDuration(3600), conf.MinStreamDuration)
}
