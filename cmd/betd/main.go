package main

import (
	"fmt"
	"os"
	"path/filepath"

	betd "github.com/iov-one/stake/cmd/betd/app"
	"github.com/iov-one/stake/commands/server"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/libs/log"
)

// Version should be set by build flags: `git describe --tags`
var Version = "please set in makefile"

func rootCmd() *cobra.Command {
	home := new(string)
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "betd")

	root := &cobra.Command{
		Use:           "betd",
		Short:         "Peer to peer betting escrow node",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".betd")
	root.PersistentFlags().StringVar(home, "home", defaultHome, "directory to store files under")

	root.AddCommand(
		server.InitCmd(betd.GenInitOptions, logger, home),
		server.StartCmd(betd.GenerateApp, home),
		server.ValidateCmd(betd.Initializers()),
		addrCmd(),
		keysCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the app version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), Version)
			},
		},
	)
	return root
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}
