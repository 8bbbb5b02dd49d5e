// Package daemon runs the chosen execution path for a tesserad invocation.
//
// The dispatcher is deliberately small: Decide picks exactly one of three
// paths from the validated options, and Run executes it. The version path
// touches nothing but stdout; the worker path never starts node subsystems;
// only the node path reads the persisted configuration store.
package daemon

import (
	"fmt"

	"github.com/tessera-network/tesserad/cmd/tesserad/config"
	"github.com/tessera-network/tesserad/cmd/tesserad/utils"
	"github.com/tessera-network/tesserad/internal/configstore"
	"github.com/tessera-network/tesserad/internal/diagnostics"
	"github.com/tessera-network/tesserad/internal/logging"
	"github.com/tessera-network/tesserad/internal/node"
	"github.com/tessera-network/tesserad/internal/version"
	"github.com/tessera-network/tesserad/internal/worker"
)

// Run executes the decision for validated options. rawArgs is the original
// argument vector (without the program name), forwarded to workers after the
// delegation flags are stripped.
func Run(opts *config.Options, rawArgs []string) error {
	switch Decide(opts) {
	case PrintVersion:
		fmt.Printf("Tessera version: %s\n", version.Version)
		return nil

	case DelegateWorker:
		return worker.Delegate(opts.WorkerModule, worker.StripDelegateArgs(rawArgs))

	default:
		return runNode(opts)
	}
}

// runNode resolves the persisted configuration, reports diagnostics, and
// starts the node. Blocks until the node shuts down.
func runNode(opts *config.Options) error {
	utils.DisplayLogo(version.Version)

	overlay := configstore.Overlay{}
	if opts.RPCAddressSet {
		overlay.RPCAddress = opts.RPCAddress
	}
	if opts.NodeAddressSet {
		overlay.NodeAddress = opts.NodeAddress
	}

	desc, err := configstore.Resolve(opts.DataDir, overlay)
	if err != nil {
		return err
	}

	// The command line wins over the persisted store for the log level;
	// the store's level only applies when the CLI gave none.
	if !opts.LogLevelSet && desc.LogLevel != "" {
		logging.SetLevel(desc.LogLevel)
	}

	diagnostics.Report(opts.ProtocolID)

	n, err := node.New(&node.Config{
		DataDir:           opts.DataDir,
		Desc:              desc,
		ProtocolID:        opts.ProtocolID,
		TransactionSystem: opts.Payments,
		UseMonitor:        opts.Monitor,
		Peers:             opts.Peers,
		StartGeth:         opts.StartGeth,
		StartGethPort:     opts.StartGethPort,
		GethAddress:       opts.GethAddress,
	})
	if err != nil {
		return err
	}

	return n.Start()
}
