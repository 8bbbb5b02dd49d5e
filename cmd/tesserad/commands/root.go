// Package commands provides the CLI command structure for the Tessera daemon.
//
// The daemon uses a single root command: every invocation either prints the
// version, delegates to a worker entry point, or starts the node. Flag
// validation runs in PreRunE so no subsystem is touched before the full
// command line is known to be good, and unknown flags are tolerated during
// parsing because worker delegation forwards the residual argument vector
// untouched.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/tessera-network/tesserad/cmd/tesserad/config"
	"github.com/tessera-network/tesserad/cmd/tesserad/daemon"
	"github.com/tessera-network/tesserad/internal/logging"
)

// eager holds the phase-one validation result between PreRunE and RunE
var eager config.Eager

// RootCmd is the root command for the Tessera daemon
var RootCmd = &cobra.Command{
	Use:   "tesserad",
	Short: "Tessera decentralized compute network node",
	Long: `Tessera daemon (tesserad) runs a node in the Tessera decentralized
compute network. Nodes rent out computing power, execute tasks for
requestors, and settle payments through an Ethereum gateway.

Persisted configuration lives in the data directory; command-line flags
override it for a single run.`,
	SilenceUsage: true, // Don't show usage on errors
	// Worker delegation forwards the raw argument vector to the worker, so
	// flags the daemon does not know about must survive parsing.
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	Example: `  # Start a node with defaults
  tesserad

  # Join the network via seed peers
  tesserad --peer=seed1.tessera.network:40102 --peer=seed2.tessera.network:40102

  # Isolated test network with a custom protocol version
  tesserad --protocol-id=1337 --datadir=/tmp/tessera-test

  # Use a remote chain gateway instead of a local geth node
  tesserad --geth-address=http://gateway.example.com:8545`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		CheckExplicitFlags(cmd)

		var err error
		eager, err = config.ValidateEager(&config.Global)
		if err != nil {
			return err
		}

		opts, err := config.ValidateOptions(&config.Global, eager)
		if err != nil {
			return err
		}

		// Apply the CLI log level immediately so everything after flag
		// validation logs at the requested level. The persisted store's
		// level is applied later only when the CLI gave none.
		if opts.LogLevelSet {
			logging.SetLevel(opts.LogLevel)
		}

		validated = opts
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return daemon.Run(validated, rawArgs)
	},
}

// validated holds the phase-two validation result between PreRunE and RunE
var validated *config.Options

// rawArgs preserves the original argument vector for worker delegation
var rawArgs []string

// SetupCommands initializes all commands and their relationships.
// args is the process argument vector without the program name.
func SetupCommands(args []string) {
	rawArgs = args
	SetupFlags(RootCmd)
}
