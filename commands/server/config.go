package server

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/iov-one/stake/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// ConfigFile is the name of the node configuration file inside the home
// directory.
const ConfigFile = "config.toml"

// Config holds the node settings that are not part of the chain state.
type Config struct {
	// Bind is the address the ABCI server listens on.
	Bind string `toml:"bind"`
	// DBBackend is the tendermint database backend used for the state.
	DBBackend string `toml:"db_backend"`
	// LogLevel is passed to log.AllowLevel.
	LogLevel string `toml:"log_level"`
	// Debug returns the full stack trace with every error.
	Debug bool `toml:"debug"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Bind:      "tcp://localhost:26658",
		DBBackend: "goleveldb",
		LogLevel:  "info",
		Debug:     false,
	}
}

// LoadConfig reads the configuration file from the home directory. Missing
// values, or a missing file, fall back to the defaults.
func LoadConfig(home string) (Config, error) {
	conf := DefaultConfig()
	path := filepath.Join(home, ConfigFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return conf, nil
	}
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return conf, errors.Wrapf(errors.ErrInput, "cannot decode %s: %s", path, err)
	}
	return conf, nil
}

// WriteConfig stores the configuration in the home directory.
func WriteConfig(home string, conf Config) error {
	if err := os.MkdirAll(home, 0755); err != nil {
		return errors.Wrap(err, "cannot create home directory")
	}
	f, err := os.Create(filepath.Join(home, ConfigFile))
	if err != nil {
		return errors.Wrap(err, "cannot create config file")
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(conf); err != nil {
		return errors.Wrap(err, "cannot encode config")
	}
	return nil
}

// NewLogger builds the node logger filtered by the configured level.
func NewLogger(conf Config) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout))
	level, err := log.AllowLevel(conf.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "log level: %s", err)
	}
	return log.NewFilter(logger, level), nil
}
