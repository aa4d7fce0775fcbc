package server

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
	"github.com/iov-one/stake/store"
	"github.com/spf13/cobra"
)

// ValidateCmd loads the app_state of each genesis file into a scratch
// store and reports the first file that the initializer rejects.
func ValidateCmd(ini stake.Initializer) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <genesis.json>...",
		Short: "Check genesis files without starting a node",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ValidateGenesis(ini, args)
		},
	}
}

func ValidateGenesis(ini stake.Initializer, paths []string) error {
	for _, p := range paths {
		raw, err := ioutil.ReadFile(p)
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "read %s: %s", p, err)
		}
		if err := validateAppState(ini, raw); err != nil {
			return errors.Wrap(err, p)
		}
	}
	return nil
}

func validateAppState(ini stake.Initializer, genesis []byte) error {
	var doc struct {
		AppState stake.Options `json:"app_state"`
	}
	if err := json.Unmarshal(genesis, &doc); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis json: %s", err)
	}
	return errors.Wrap(ini.FromGenesis(doc.AppState, store.MemStore()), "app_state")
}
