package app

import (
	"github.com/iov-one/stake"
)

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...stake.Initializer) stake.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []stake.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts stake.Options, kv stake.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
