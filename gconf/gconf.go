package gconf

import (
	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
)

// Configuration is the state an extension keeps in its configuration
// singleton.
type Configuration interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
	Validate() error
}

// confKey returns the key of the singleton owned by the package. The "_c:"
// prefix keeps configuration apart from extension buckets.
func confKey(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates the configuration and stores it as the singleton of the
// package. Any previous value is replaced.
func Save(db stake.KVStore, pkg string, conf Configuration) error {
	key := confKey(pkg)
	if err := conf.Validate(); err != nil {
		return errors.Wrapf(err, "validate %q", key)
	}
	raw, err := conf.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal %q", key)
	}
	// A zero value may serialize to nil, which the store would treat as
	// a deletion.
	if raw == nil {
		raw = []byte{}
	}
	return db.Set(key, raw)
}

// Load reads the configuration of the package into dst. It fails with
// ErrNotFound if nothing was saved.
func Load(db stake.ReadOnlyKVStore, pkg string, dst Configuration) error {
	key := confKey(pkg)
	raw, err := db.Get(key)
	switch {
	case err != nil:
		return errors.Wrapf(err, "load %q", key)
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "configuration %q", key)
	}
	return errors.Wrapf(dst.Unmarshal(raw), "unmarshal %q", key)
}

// LoadOrZero works like Load but leaves dst at its zero value when nothing
// was saved. Use it for extensions whose configuration is optional.
func LoadOrZero(db stake.ReadOnlyKVStore, pkg string, dst Configuration) error {
	err := Load(db, pkg, dst)
	if errors.ErrNotFound.Is(err) {
		return dst.Unmarshal(nil)
	}
	return err
}

// InitConfig reads the "conf" section of the genesis for the package and
// saves it. It fails with ErrNotFound if the genesis does not configure
// the package.
func InitConfig(db stake.KVStore, opts stake.Options, pkg string, conf Configuration) error {
	var section stake.Options
	if err := opts.ReadOptions("conf", &section); err != nil {
		return errors.Wrap(err, "read conf")
	}
	if section[pkg] == nil {
		return errors.Wrapf(errors.ErrNotFound, "no %q configuration in genesis", pkg)
	}
	if err := section.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "read %q configuration", pkg)
	}
	return errors.Wrapf(Save(db, pkg, conf), "save %q configuration", pkg)
}
