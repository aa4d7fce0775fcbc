package server

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/iov-one/stake/errors"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind  = "bind"
	flagDebug = "debug"
)

// Options are passed to the AppGenerator to build the application.
type Options struct {
	Home      string
	DBBackend string
	Logger    log.Logger
	Debug     bool
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(*Options) (abci.Application, error)

// StartCmd runs the ABCI server until the process receives a termination
// signal. Flags override the values from the configuration file.
func StartCmd(gen AppGenerator, home *string) *cobra.Command {
	var (
		bind  string
		debug bool
	)
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the abci server",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := LoadConfig(*home)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed(flagBind) {
				conf.Bind = bind
			}
			if cmd.Flags().Changed(flagDebug) {
				conf.Debug = debug
			}
			logger, err := NewLogger(conf)
			if err != nil {
				return err
			}
			return Start(gen, logger, *home, conf)
		},
	}
	cmd.Flags().StringVar(&bind, flagBind, DefaultConfig().Bind, "address server listens on")
	cmd.Flags().BoolVar(&debug, flagDebug, false, "call stack returned on error")
	return cmd
}

// Start initializes the application and serves it over the ABCI socket.
func Start(gen AppGenerator, logger log.Logger, home string, conf Config) error {
	app, err := gen(&Options{
		Home:      home,
		DBBackend: conf.DBBackend,
		Logger:    logger,
		Debug:     conf.Debug,
	})
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", conf.Bind)

	svr, err := server.NewServer(conf.Bind, "socket", app)
	if err != nil {
		return errors.Wrap(err, "cannot create listener")
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrap(err, "cannot start server")
	}

	// Run until interrupted.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("Stopping ABCI app", "signal", <-sig)
	if err := svr.Stop(); err != nil {
		return errors.Wrap(err, "cannot stop server")
	}
	return nil
}
