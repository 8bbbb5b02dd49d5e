// Package configstore owns the persisted node configuration under the data
// directory. The store is a single TOML file (tessera.toml) loaded with
// viper; a default file is written on first start so operators always have a
// commented, editable baseline.
//
// Bootstrap reads the store exactly once per invocation, overlays the few
// CLI-supplied fields (see Resolve), and hands the resulting Descriptor to
// the node. There is no safe default node identity, so an unreadable or
// corrupt store is fatal: callers receive a *LoadError and must exit.
package configstore

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/spf13/viper"

	"github.com/tessera-network/tesserad/internal/config"
	"github.com/tessera-network/tesserad/internal/logging"
	"github.com/tessera-network/tesserad/internal/validate"
)

const (
	// ConfigFileName is the persisted configuration file under the data dir.
	ConfigFileName = "tessera.toml"

	// DefaultFilePerm is used when writing the default configuration file.
	DefaultFilePerm = 0o644
)

// LoadError reports a persisted store that could not be read, parsed, or
// validated. Fatal: bootstrap has no fallback configuration for a node
// identity.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load config %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Descriptor is the authoritative node configuration handed to the node
// constructor. Populated from the persisted store, then selectively
// overwritten by CLI-supplied fields. Ownership transfers to the node once
// constructed; bootstrap keeps no reference.
type Descriptor struct {
	NodeName    string `mapstructure:"node_name"`
	NodeAddress string `mapstructure:"node_address"`

	RPCAddress string `mapstructure:"rpc_address"`
	RPCPort    int    `mapstructure:"rpc_port"`

	P2PPort int `mapstructure:"p2p_port"`

	LogLevel string `mapstructure:"log_level"`

	// Peer management knobs consumed by the membership layer.
	OptimalPeerNum      int           `mapstructure:"optimal_peer_num"`
	PeerRefreshInterval time.Duration `mapstructure:"peer_refresh_interval"`

	// Task execution knobs consumed by the node runtime.
	AcceptTasks       bool   `mapstructure:"accept_tasks"`
	MaxResourceMemory string `mapstructure:"max_resource_memory"`
}

// DefaultDescriptor returns the baseline configuration written on first
// start. RPC defaults to loopback: the RPC server manages the node and must
// not be reachable from outside unless the operator opts in.
func DefaultDescriptor() *Descriptor {
	return &Descriptor{
		RPCAddress:          "127.0.0.1",
		RPCPort:             config.DefaultRPCPort,
		P2PPort:             config.DefaultP2PPort,
		LogLevel:            config.DefaultLogLevel,
		OptimalPeerNum:      10,
		PeerRefreshInterval: 30 * time.Second,
		AcceptTasks:         true,
		MaxResourceMemory:   "2 GiB",
	}
}

// Validate checks descriptor invariants shared by the store and the overlay
// path. Runs after every load so a hand-edited file fails fast.
func (d *Descriptor) Validate() error {
	if err := validate.ValidateField(d.RPCPort, "required,min=1,max=65535"); err != nil {
		return fmt.Errorf("invalid rpc_port %d: %w", d.RPCPort, err)
	}

	if err := validate.ValidateField(d.P2PPort, "required,min=1,max=65535"); err != nil {
		return fmt.Errorf("invalid p2p_port %d: %w", d.P2PPort, err)
	}

	if d.RPCAddress == "" {
		return fmt.Errorf("rpc_address cannot be empty")
	}

	if d.NodeAddress != "" {
		if _, err := validate.ParseNodeAddress(d.NodeAddress); err != nil {
			return err
		}
	}

	if d.LogLevel != "" {
		if err := logging.ValidateLogLevel(d.LogLevel); err != nil {
			return err
		}
	}

	if d.OptimalPeerNum < 1 {
		return fmt.Errorf("optimal_peer_num must be positive, got: %d", d.OptimalPeerNum)
	}

	if d.PeerRefreshInterval <= 0 {
		return fmt.Errorf("peer_refresh_interval must be positive, got: %s", d.PeerRefreshInterval)
	}

	return nil
}

// Load reads the persisted configuration from dataDir, writing the default
// file first when none exists. Returns *LoadError for an unreadable, corrupt,
// or invalid store.
func Load(dataDir string) (*Descriptor, error) {
	path := filepath.Join(dataDir, ConfigFileName)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logging.Info("No persisted config at %s, writing defaults", path)
		if err := WriteDefaultConfig(path); err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	// Start from defaults so keys omitted from a hand-edited file keep
	// their baseline values instead of zeroing out.
	desc := DefaultDescriptor()
	if err := v.Unmarshal(desc); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	if err := desc.Validate(); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	return desc, nil
}

var configTemplate *template.Template

func init() {
	var err error
	if configTemplate, err = template.New("configFileTemplate").Parse(defaultConfigTemplate); err != nil {
		panic(err)
	}
}

// WriteDefaultConfig renders the default configuration template and writes it
// to path. The parent directory must already exist.
func WriteDefaultConfig(path string) error {
	var buffer bytes.Buffer

	if err := configTemplate.Execute(&buffer, DefaultDescriptor()); err != nil {
		return err
	}

	return os.WriteFile(path, buffer.Bytes(), DefaultFilePerm)
}

// Note: any changes to the comments/variables/mapstructure
// must be reflected in the Descriptor struct above.
const defaultConfigTemplate = `#######################################################
###         Tessera Node Configuration              ###
#######################################################

# Human-readable node name (generated on first start when empty)
node_name = "{{ .NodeName }}"

# Network address this node advertises to peers (empty = auto-detect)
node_address = "{{ .NodeAddress }}"

# RPC server endpoint (loopback by default; widen deliberately)
rpc_address = "{{ .RPCAddress }}"
rpc_port = {{ .RPCPort }}

# Peer-to-peer membership port
p2p_port = {{ .P2PPort }}

# Log level: CRITICAL, ERROR, WARNING, INFO, DEBUG
log_level = "{{ .LogLevel }}"

# Peer management
optimal_peer_num = {{ .OptimalPeerNum }}
peer_refresh_interval = "{{ .PeerRefreshInterval }}"

# Task execution
accept_tasks = {{ .AcceptTasks }}
max_resource_memory = "{{ .MaxResourceMemory }}"
`
