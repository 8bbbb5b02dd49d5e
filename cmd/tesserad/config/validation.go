// Flag validation for the Tessera daemon.
//
// Validation runs in two phases. ValidateEager resolves the protocol version
// override and the local-geth toggle first, because later checks depend on
// them: start-geth-port is only meaningful when a local geth node is managed,
// and the effective protocol version feeds diagnostics and gossip tags.
// ValidateOptions then parses and normalizes everything else into an
// immutable Options value. The first failing flag aborts the whole pipeline
// with a *UsageError; no subsystem is started on any validation failure.
package config

import (
	"fmt"
	"os"
	"strings"

	configDefaults "github.com/tessera-network/tesserad/internal/config"
	"github.com/tessera-network/tesserad/internal/logging"
	"github.com/tessera-network/tesserad/internal/validate"
	"github.com/tessera-network/tesserad/internal/version"
)

// ValidateEager resolves the eager flag values before full validation.
func ValidateEager(c *Config) (Eager, error) {
	eager := Eager{
		ProtocolID: version.DefaultProtocolID,
		StartGeth:  c.StartGeth,
	}

	if c.IsExplicitlySet(ProtocolIDField) {
		if c.ProtocolID < 0 {
			return Eager{}, usageError("protocol-id",
				fmt.Errorf("protocol version must be non-negative, got: %d", c.ProtocolID))
		}
		eager.ProtocolID = c.ProtocolID
	}

	return eager, nil
}

// ValidateOptions validates and normalizes the remaining flags into an
// immutable Options value, using the already resolved eager results.
func ValidateOptions(c *Config, eager Eager) (*Options, error) {
	opts := &Options{
		Payments:   c.Payments,
		Monitor:    c.Monitor,
		ProtocolID: eager.ProtocolID,
		StartGeth:  eager.StartGeth,

		Version:      c.Version,
		WorkerModule: c.WorkerModule,
	}

	// Data directory defaults to the platform data home. Creation is
	// skipped for a version-only invocation so it stays side-effect free.
	opts.DataDir = c.DataDir
	if !c.IsExplicitlySet(DataDirField) || opts.DataDir == "" {
		opts.DataDir = configDefaults.DefaultDataDir()
	}
	if !opts.Version {
		if err := ensureWritableDir(opts.DataDir); err != nil {
			return nil, usageError("datadir", err)
		}
	}

	if c.IsExplicitlySet(NodeAddressField) {
		host, err := validate.ParseNodeAddress(c.NodeAddress)
		if err != nil {
			return nil, usageError("node-address", err)
		}
		opts.NodeAddress = host
		opts.NodeAddressSet = true
	}

	if c.IsExplicitlySet(RPCAddressField) {
		endpoint, err := validate.ParseEndpoint(c.RPCAddress)
		if err != nil {
			return nil, usageError("rpc-address", err)
		}
		opts.RPCAddress = endpoint
		opts.RPCAddressSet = true
	}

	if len(c.Peers) > 0 {
		peers, err := validate.ParsePeerList(c.Peers)
		if err != nil {
			return nil, usageError("peer", err)
		}
		opts.Peers = peers
	}

	// start-geth-port only makes sense when this daemon manages the geth
	// process. Reject early instead of silently ignoring the flag.
	if c.IsExplicitlySet(StartGethPortField) {
		if !eager.StartGeth {
			return nil, usageError("start-geth-port",
				fmt.Errorf("requires --start-geth"))
		}
		if err := validate.ValidateField(c.StartGethPort, "required,min=1,max=65535"); err != nil {
			return nil, usageError("start-geth-port",
				fmt.Errorf("invalid port %d: %w", c.StartGethPort, err))
		}
		opts.StartGethPort = c.StartGethPort
	}

	if c.GethAddress != "" {
		endpoint, err := validate.ParseHTTPEndpoint(c.GethAddress)
		if err != nil {
			return nil, usageError("geth-address", err)
		}
		opts.GethAddress = endpoint
	}

	opts.LogLevel = c.LogLevel
	if c.IsExplicitlySet(LogLevelField) {
		normalized := strings.ToUpper(c.LogLevel)
		if normalized != c.LogLevel {
			logging.Warn("Log level '%s' converted to uppercase: '%s'", c.LogLevel, normalized)
		}
		if err := logging.ValidateLogLevel(normalized); err != nil {
			return nil, usageError("log-level", err)
		}
		opts.LogLevel = normalized
		opts.LogLevelSet = true
	}

	return opts, nil
}

// ensureWritableDir creates dir if missing and probes that it is actually
// writable, since MkdirAll succeeds on an existing read-only directory.
func ensureWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	probe, err := os.CreateTemp(dir, ".write-probe-*")
	if err != nil {
		return fmt.Errorf("data directory %s is not writable: %w", dir, err)
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)

	return nil
}
