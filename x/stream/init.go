package stream

import (
	tide "github.com/iov-one/tide"
	"github.com/iov-one/tide/errors"
	"github.com/iov-one/tide/gconf"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ tide.Initializer = Initializer{}

// FromGenesis will parse the initial configuration from genesis and
// save it to the database.
func (Initializer) FromGenesis(opts tide.Options, db tide.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, "stream", &conf); err != nil {
		return errors.Wrap(err, "stream config")
	}
	return nil
}
