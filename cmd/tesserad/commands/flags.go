// Package commands contains Cobra CLI command definitions for tesserad.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/tessera-network/tesserad/cmd/tesserad/config"
	configDefaults "github.com/tessera-network/tesserad/internal/config"
)

// SetupFlags configures all command line flags for the daemon
func SetupFlags(cmd *cobra.Command) {
	// Subsystem toggles
	cmd.Flags().BoolVar(&config.Global.Payments, "payments", true,
		"Process payments for completed tasks (disable for testing only)")
	cmd.Flags().BoolVar(&config.Global.Monitor, "monitor", true,
		"Report node statistics to the network monitor")

	// Storage and identity flags
	cmd.Flags().StringVarP(&config.Global.DataDir, "datadir", "d", "",
		"Directory for node keys, persisted config and task data\n"+
			"Defaults to the platform data directory when not specified")
	cmd.Flags().StringVarP(&config.Global.NodeAddress, "node-address", "a", "",
		"Address this node advertises to peers (hostname or IP)")

	// Network flags
	cmd.Flags().StringVarP(&config.Global.RPCAddress, "rpc-address", "r", "",
		"RPC server endpoint (e.g., 127.0.0.1:61000)\n"+
			"Overrides the persisted configuration for this run")
	cmd.Flags().StringSliceVarP(&config.Global.Peers, "peer", "p", nil,
		"Seed peer to join, host:port (repeatable)\n"+
			"Multiple peers provide fault tolerance - if first peer is down, tries next one")
	cmd.Flags().IntVar(&config.Global.ProtocolID, "protocol-id", 0,
		"Override the P2P protocol version (isolates the node from the main network)")

	// Chain flags
	cmd.Flags().BoolVar(&config.Global.StartGeth, "start-geth", false,
		"Manage a local geth node instead of using a remote gateway")
	cmd.Flags().IntVar(&config.Global.StartGethPort, "start-geth-port", 0,
		"Port for the managed geth node (requires --start-geth)")
	cmd.Flags().StringVar(&config.Global.GethAddress, "geth-address", "",
		"Remote geth gateway URL (e.g., http://gateway:8545)")

	// Operational flags
	cmd.Flags().BoolVarP(&config.Global.Version, "version", "v", false,
		"Print version and exit")
	cmd.Flags().StringVar(&config.Global.LogLevel, "log-level", configDefaults.DefaultLogLevel,
		"Log level: CRITICAL, ERROR, WARNING, INFO, DEBUG")

	// Delegation plumbing: set when the daemon re-executes itself as a
	// worker process. Hidden from help output.
	cmd.Flags().StringVarP(&config.Global.WorkerModule, "worker-module", "m", "",
		"Run a registered worker entry point instead of starting the node")
	cmd.Flags().BoolVarP(&config.Global.Unbuffered, "unbuffered", "u", false,
		"Unbuffered output (delegation plumbing, stripped before the worker runs)")
	cmd.Flags().MarkHidden("worker-module")
	cmd.Flags().MarkHidden("unbuffered")
}

// CheckExplicitFlags records which flags were explicitly set by the user
func CheckExplicitFlags(cmd *cobra.Command) {
	config.Global.SetExplicitlySet(config.DataDirField, cmd.Flags().Changed("datadir"))
	config.Global.SetExplicitlySet(config.RPCAddressField, cmd.Flags().Changed("rpc-address"))
	config.Global.SetExplicitlySet(config.NodeAddressField, cmd.Flags().Changed("node-address"))
	config.Global.SetExplicitlySet(config.LogLevelField, cmd.Flags().Changed("log-level"))
	config.Global.SetExplicitlySet(config.StartGethPortField, cmd.Flags().Changed("start-geth-port"))
	config.Global.SetExplicitlySet(config.ProtocolIDField, cmd.Flags().Changed("protocol-id"))
}
