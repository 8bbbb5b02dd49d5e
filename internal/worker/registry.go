// Package worker maps delegate names to in-process entry points. The daemon
// binary doubles as its own worker executable: when launched with a worker
// module flag, control is handed to the registered entry point instead of the
// node bootstrap, and the process never returns to normal startup.
//
// Names are registered at init time from main; the registry is a closed table
// rather than a dynamic loader so an unknown name fails fast with the full
// set of valid names in hand.
package worker

import (
	"fmt"
	"sort"
	"sync"
)

// RelayProcess is the delegate name of the relay RPC worker loop.
const RelayProcess = "relay.worker.process"

// RunFunc is a worker entry point. It receives the argument vector left over
// after delegation flags are stripped and blocks until the worker exits.
type RunFunc func(args []string) error

// UnknownDelegateError reports a worker module name with no registered entry
// point. Fatal: there is no fallback worker.
type UnknownDelegateError struct {
	Name string
}

func (e *UnknownDelegateError) Error() string {
	return fmt.Sprintf("unknown worker module: %s", e.Name)
}

var (
	mu       sync.Mutex
	registry = make(map[string]RunFunc)
)

// Register binds a delegate name to its entry point. Later registrations for
// the same name overwrite earlier ones.
func Register(name string, run RunFunc) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = run
}

// Registered returns the sorted delegate names currently in the table.
func Registered() []string {
	mu.Lock()
	defer mu.Unlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Delegate looks up name and runs its entry point with args. Returns
// *UnknownDelegateError when no entry point is registered under name.
func Delegate(name string, args []string) error {
	mu.Lock()
	run, ok := registry[name]
	mu.Unlock()

	if !ok {
		return &UnknownDelegateError{Name: name}
	}
	return run(args)
}

// StripDelegateArgs removes the delegation plumbing from a raw argument
// vector before it is handed to the worker: the first "-m" flag and its
// value, and the first "-u" flag. Everything else passes through in order,
// including repeated occurrences beyond the first.
func StripDelegateArgs(args []string) []string {
	out := make([]string, 0, len(args))

	removedModule := false
	removedUnbuffered := false

	for i := 0; i < len(args); i++ {
		if !removedModule && args[i] == "-m" {
			removedModule = true
			if i+1 < len(args) {
				i++ // skip the module name
			}
			continue
		}
		if !removedUnbuffered && args[i] == "-u" {
			removedUnbuffered = true
			continue
		}
		out = append(out, args[i])
	}

	return out
}
