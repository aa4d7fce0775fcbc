package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/stake/errors"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagForce = "force"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisFile returns the location of the tendermint genesis file for the
// given home directory.
func GenesisFile(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

// InitCmd will add the application state to the tendermint genesis file.
// The genesis file must be created by `tendermint init` first. A node
// configuration file is written if none exists.
func InitCmd(gen GenOptions, logger log.Logger, home *string) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [args...]",
		Short: "Initialize app options in genesis file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return InitGenesis(gen, logger, *home, force, args)
		},
	}
	cmd.Flags().BoolVarP(&force, flagForce, "f", false, "overwrite existing app_state")
	return cmd
}

// InitGenesis writes the generated app_state into the genesis file stored
// in the home directory.
func InitGenesis(gen GenOptions, logger log.Logger, home string, force bool, args []string) error {
	options, err := gen(args)
	if err != nil {
		return err
	}
	genFile := GenesisFile(home)
	if err := addGenesisOptions(genFile, options, force); err != nil {
		return err
	}
	logger.Info("App state written to genesis", "path", genFile)

	if _, err := os.Stat(filepath.Join(home, ConfigFile)); os.IsNotExist(err) {
		if err := WriteConfig(home, DefaultConfig()); err != nil {
			return err
		}
		logger.Info("Node configuration written", "path", filepath.Join(home, ConfigFile))
	}
	return nil
}

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage, force bool) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "cannot read genesis file, run tendermint init first")
	}

	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrap(errors.ErrInput, "cannot parse genesis file")
	}

	if state, ok := doc["app_state"]; ok && !force && len(state) > 0 && string(state) != "null" {
		return errors.Wrap(errors.ErrDuplicate, "app_state already set, use --force to overwrite")
	}
	doc["app_state"] = options

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "cannot serialize genesis")
	}
	return ioutil.WriteFile(filename, out, 0600)
}
