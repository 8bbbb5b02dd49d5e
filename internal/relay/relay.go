// Package relay implements the relay RPC worker process. The daemon binary
// re-executes itself into this entry point via the worker registry; the loop
// forwards RPC traffic for nodes behind NAT and runs until signalled.
package relay

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/tessera-network/tesserad/internal/logging"
)

// Run is the relay worker entry point registered under worker.RelayProcess.
// args is the residual argument vector after delegation flags are stripped.
func Run(args []string) error {
	logging.Info("Starting relay RPC worker (args: %v)", args)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logging.Info("Relay worker received %s, shutting down", sig)

	return nil
}
