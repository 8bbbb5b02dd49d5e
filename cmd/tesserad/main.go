// Package main implements the Tessera daemon (tesserad).
// Tessera is a decentralized compute network where nodes rent out computing
// power, execute tasks for requestors, and settle payments on Ethereum.
package main

import (
	"os"

	"github.com/tessera-network/tesserad/cmd/tesserad/commands"
	"github.com/tessera-network/tesserad/internal/logging"
	"github.com/tessera-network/tesserad/internal/platform"
	"github.com/tessera-network/tesserad/internal/relay"
	"github.com/tessera-network/tesserad/internal/worker"
)

func main() {
	// Platform shims must be in place before anything resolves an
	// integration, and the standard log redirect must be installed before
	// any dependency writes through the global logger.
	platform.Shim()
	logging.RedirectStandardLog(logging.NewLevelWriter("INFO", "stdlog"))

	worker.Register(worker.RelayProcess, relay.Run)

	commands.SetupCommands(os.Args[1:])
	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
