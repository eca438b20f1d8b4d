package gconf

import (
	tide "github.com/iov-one/tide"
	"github.com/iov-one/tide/errors"
)

// Configuration is implemented by extension configuration records.
// Marshal and Unmarshal are implemented by all persisted models.
type Configuration interface {
	Validate() error
	tide.Persistent
}

// Save will validate the object, before writing it to a special
// "configuration" singleton for that package name.
func Save(db tide.KVStore, pkg string, src Configuration) error {
	key := dbKey(pkg)
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: key %q", key)
	}
	raw, err := src.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal: key %q", key)
	}
	return db.Set(key, raw)
}

// Load copies the configuration stored for given package into dst.
func Load(db tide.ReadOnlyKVStore, pkg string, dst Configuration) error {
	key := dbKey(pkg)
	raw, err := db.Get(key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "key %q", key)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "unmarshal: key %q", key)
	}
	return nil
}

// InitConfig will take opts["conf"][pkg], parse it into the given
// Configuration object, validate it, and store it under the proper key
// in the database. Returns an error if anything goes wrong.
func InitConfig(db tide.KVStore, opts tide.Options, pkg string, conf Configuration) error {
	var confOptions tide.Options
	if err := opts.ReadOptions("conf", &confOptions); err != nil {
		return errors.Wrap(err, "read conf")
	}
	if confOptions[pkg] == nil {
		return errors.Wrapf(errors.ErrNotFound, "no configuration in genesis for %q package", pkg)
	}
	if err := confOptions.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "read configuration for %s", pkg)
	}
	if err := Save(db, pkg, conf); err != nil {
		return errors.Wrapf(err, "save configuration for %s", pkg)
	}
	return nil
}

func dbKey(pkg string) []byte {
	return []byte("_c:" + pkg)
}
