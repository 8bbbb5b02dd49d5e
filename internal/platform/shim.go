// Package platform registers per-OS service integrations. Desktop builds on
// Windows ship without the native integration packages, so placeholder
// integrations are installed there to keep lookups total; on other systems
// the real integrations (when built in) register themselves and the shim is
// a no-op.
package platform

import (
	"runtime"
	"sync"
)

// Integration is a platform service made available to the node runtime.
type Integration interface {
	// Name returns the integration's registry key.
	Name() string

	// Available reports whether the integration is backed by a real
	// implementation. Placeholders installed by Shim return false.
	Available() bool
}

// packagedOnly lists integrations that are absent from Windows builds and
// need placeholders so lookups never miss.
var packagedOnly = []string{
	"com/os",
	"com/types",
	"com/runtime",
}

type noopIntegration struct {
	name string
}

func (n *noopIntegration) Name() string    { return n.name }
func (n *noopIntegration) Available() bool { return false }

var (
	mu       sync.Mutex
	registry = make(map[string]Integration)
)

// Register installs an integration under its name. Real implementations
// overwrite any placeholder installed earlier.
func Register(integ Integration) {
	mu.Lock()
	defer mu.Unlock()
	registry[integ.Name()] = integ
}

// Lookup returns the integration registered under name, if any.
func Lookup(name string) (Integration, bool) {
	mu.Lock()
	defer mu.Unlock()
	integ, ok := registry[name]
	return integ, ok
}

// Shim installs placeholder integrations appropriate for the current OS.
// Called once from main before any flag handling; safe to call again.
func Shim() {
	shimFor(runtime.GOOS)
}

func shimFor(goos string) {
	if goos != "windows" {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	for _, name := range packagedOnly {
		if _, ok := registry[name]; ok {
			continue
		}
		registry[name] = &noopIntegration{name: name}
	}
}
