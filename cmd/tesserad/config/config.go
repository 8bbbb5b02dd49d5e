// Package config provides configuration management for the Tessera daemon.
//
// The package separates three stages of the bootstrap decision pipeline:
//
//   - Config: raw flag targets populated by cobra, including which flags the
//     user set explicitly versus left at their defaults
//   - Eager: the small set of values that must take effect before the rest of
//     validation runs (protocol override, local geth management)
//   - Options: the immutable, fully validated result handed to the dispatcher
//
// Validation is two-phase: ValidateEager resolves the eager values first so
// later checks (like start-geth-port gating) can see them, then
// ValidateOptions normalizes everything else. A flag that fails validation
// produces a *UsageError naming the offending flag.
package config

import (
	"github.com/tessera-network/tesserad/internal/validate"
)

// ConfigField identifies a flag whose explicit-set state is tracked
type ConfigField int

const (
	DataDirField ConfigField = iota
	RPCAddressField
	NodeAddressField
	LogLevelField
	StartGethPortField
	ProtocolIDField
)

// Config holds raw daemon flag values as parsed by cobra
type Config struct {
	Payments bool // Process payments for completed tasks
	Monitor  bool // Report stats to the network monitor

	DataDir     string   // Data directory for persistent storage
	ProtocolID  int      // P2P protocol version override
	NodeAddress string   // Address this node advertises to peers
	RPCAddress  string   // RPC server endpoint (host:port)
	Peers       []string // Seed peers to join (host:port each)

	StartGeth     bool   // Manage a local geth node
	StartGethPort int    // Port for the managed geth node
	GethAddress   string // Remote geth gateway URL (http://host:port)

	Version      bool   // Print version and exit
	WorkerModule string // Delegate to a worker entry point instead of starting
	Unbuffered   bool   // Delegation plumbing flag, stripped before the worker runs
	LogLevel     string // Log level: CRITICAL, ERROR, WARNING, INFO, DEBUG

	// Flags to track if values were explicitly set by user
	dataDirExplicitlySet       bool
	rpcAddressExplicitlySet    bool
	nodeAddressExplicitlySet   bool
	logLevelExplicitlySet      bool
	startGethPortExplicitlySet bool
	protocolIDExplicitlySet    bool
}

// Global configuration instance
var Global Config

// SetExplicitlySet marks a configuration field as explicitly set by the user.
func (c *Config) SetExplicitlySet(field ConfigField, value bool) {
	switch field {
	case DataDirField:
		c.dataDirExplicitlySet = value
	case RPCAddressField:
		c.rpcAddressExplicitlySet = value
	case NodeAddressField:
		c.nodeAddressExplicitlySet = value
	case LogLevelField:
		c.logLevelExplicitlySet = value
	case StartGethPortField:
		c.startGethPortExplicitlySet = value
	case ProtocolIDField:
		c.protocolIDExplicitlySet = value
	}
}

// IsExplicitlySet returns whether a configuration field was explicitly set by
// the user. Distinguishes "left at default" from "set to the default value",
// which matters for overlay precedence and flag gating.
func (c *Config) IsExplicitlySet(field ConfigField) bool {
	switch field {
	case DataDirField:
		return c.dataDirExplicitlySet
	case RPCAddressField:
		return c.rpcAddressExplicitlySet
	case NodeAddressField:
		return c.nodeAddressExplicitlySet
	case LogLevelField:
		return c.logLevelExplicitlySet
	case StartGethPortField:
		return c.startGethPortExplicitlySet
	case ProtocolIDField:
		return c.protocolIDExplicitlySet
	}
	return false
}

// Eager holds values that take effect before full validation runs
type Eager struct {
	ProtocolID int  // Effective protocol version after any override
	StartGeth  bool // Whether a local geth node is managed
}

// Options is the immutable, validated bootstrap configuration handed to the
// dispatcher. Construct via ValidateOptions only.
type Options struct {
	Payments bool
	Monitor  bool

	DataDir     string
	ProtocolID  int
	NodeAddress string
	RPCAddress  *validate.NetworkEndpoint
	Peers       []validate.NetworkEndpoint

	StartGeth     bool
	StartGethPort int
	GethAddress   *validate.HTTPEndpoint

	Version      bool
	WorkerModule string
	LogLevel     string

	// LogLevelSet records whether LogLevel came from the command line, which
	// gives it precedence over the persisted store's level.
	LogLevelSet bool

	// RPCAddressSet and NodeAddressSet record command-line origin for the
	// overlay the resolver applies on top of the persisted store.
	RPCAddressSet  bool
	NodeAddressSet bool
}
