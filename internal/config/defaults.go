// Package config provides common default configuration values shared across
// tesserad components (bootstrap flags, the persisted config store, the node
// runtime). This centralizes defaults and keeps the flag layer and the store
// agreeing on them.
package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	// DefaultBindAddr is the default bind address for network services.
	// 0.0.0.0 binds to all available interfaces.
	DefaultBindAddr = "0.0.0.0"

	// DefaultLogLevel is the fallback log level when neither the command
	// line nor the persisted configuration supplies one.
	DefaultLogLevel = "INFO"

	// DefaultP2PPort is the default port for peer-to-peer membership.
	DefaultP2PPort = 40102

	// DefaultRPCPort is the default port for the node's RPC server.
	DefaultRPCPort = 61000
)

// DefaultDataDir returns the platform-specific default data directory for
// node state and persisted configuration, e.g. ~/.local/share/tessera on
// Linux. The directory is not created here; flag validation creates it once
// the invocation is known to actually start a node.
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, "tessera")
}
