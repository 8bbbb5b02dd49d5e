package daemon

import (
	"github.com/tessera-network/tesserad/cmd/tesserad/config"
	"github.com/tessera-network/tesserad/internal/worker"
)

// Decision is the single execution path chosen for a daemon invocation
type Decision int

const (
	// StartNode runs the full node bootstrap
	StartNode Decision = iota
	// PrintVersion prints the version banner and exits
	PrintVersion
	// DelegateWorker hands control to a registered worker entry point
	DelegateWorker
)

func (d Decision) String() string {
	switch d {
	case StartNode:
		return "start-node"
	case PrintVersion:
		return "print-version"
	case DelegateWorker:
		return "delegate-worker"
	}
	return "unknown"
}

// Decide picks the execution path for validated options. Version wins over
// worker delegation, which wins over the node bootstrap; the choice depends
// on nothing but the options, so the same options always yield the same
// decision. Only the reserved relay sentinel triggers delegation; any other
// worker-module value falls through to the node bootstrap.
func Decide(opts *config.Options) Decision {
	if opts.Version {
		return PrintVersion
	}
	if opts.WorkerModule == worker.RelayProcess {
		return DelegateWorker
	}
	return StartNode
}
