package bet

import (
	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
	"github.com/iov-one/stake/gconf"
)

// Initializer fulfils the Initializer interface to load the extension
// configuration from the genesis file. The configuration is optional.
type Initializer struct{}

var _ stake.Initializer = Initializer{}

// FromGenesis stores the "conf": {"bet": {...}} section if present.
func (Initializer) FromGenesis(opts stake.Options, kv stake.KVStore) error {
	err := gconf.InitConfig(kv, opts, confPkg, &Configuration{})
	if err != nil && !errors.ErrNotFound.Is(err) {
		return err
	}
	return nil
}
