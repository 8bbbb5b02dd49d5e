package configstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tessera-network/tesserad/internal/validate"
)

// TestLoadWritesDefaultFile verifies first-start behavior: loading from an
// empty data directory writes tessera.toml and returns the defaults.
func TestLoadWritesDefaultFile(t *testing.T) {
	dataDir := t.TempDir()

	desc, err := Load(dataDir)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	path := filepath.Join(dataDir, ConfigFileName)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected default config file at %s: %v", path, err)
	}

	if desc.RPCAddress != "127.0.0.1" {
		t.Errorf("expected default rpc_address 127.0.0.1, got: %s", desc.RPCAddress)
	}
	if desc.RPCPort != 61000 {
		t.Errorf("expected default rpc_port 61000, got: %d", desc.RPCPort)
	}
	if desc.P2PPort != 40102 {
		t.Errorf("expected default p2p_port 40102, got: %d", desc.P2PPort)
	}
	if !desc.AcceptTasks {
		t.Error("expected accept_tasks to default to true")
	}
	if desc.PeerRefreshInterval != 30*time.Second {
		t.Errorf("expected default peer_refresh_interval 30s, got: %s", desc.PeerRefreshInterval)
	}
}

// TestLoadRoundTrip verifies the written default file parses back into the
// same descriptor it was rendered from.
func TestLoadRoundTrip(t *testing.T) {
	dataDir := t.TempDir()

	first, err := Load(dataDir)
	if err != nil {
		t.Fatalf("first Load() unexpected error: %v", err)
	}

	second, err := Load(dataDir)
	if err != nil {
		t.Fatalf("second Load() unexpected error: %v", err)
	}

	if *first != *second {
		t.Errorf("descriptor changed across loads: %+v vs %+v", first, second)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "corrupt toml",
			content: "rpc_port = [not toml",
		},
		{
			name:    "invalid rpc port",
			content: "rpc_port = 99999",
		},
		{
			name:    "invalid log level",
			content: `log_level = "TRACE"`,
		},
		{
			name:    "empty rpc address",
			content: `rpc_address = ""`,
		},
		{
			name:    "zero optimal peer num",
			content: "optimal_peer_num = 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dataDir := t.TempDir()
			path := filepath.Join(dataDir, ConfigFileName)
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			_, err := Load(dataDir)
			if err == nil {
				t.Fatal("expected error but got none")
			}

			var loadErr *LoadError
			if !errors.As(err, &loadErr) {
				t.Errorf("expected *LoadError, got: %T", err)
			}
			if loadErr.Path != path {
				t.Errorf("expected error path %s, got: %s", path, loadErr.Path)
			}
		})
	}
}

// TestLoadKeepsDefaultsForOmittedKeys verifies a partial hand-edited file
// does not zero out unmentioned keys.
func TestLoadKeepsDefaultsForOmittedKeys(t *testing.T) {
	dataDir := t.TempDir()
	path := filepath.Join(dataDir, ConfigFileName)
	if err := os.WriteFile(path, []byte("p2p_port = 50000\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	desc, err := Load(dataDir)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if desc.P2PPort != 50000 {
		t.Errorf("expected p2p_port 50000, got: %d", desc.P2PPort)
	}
	if desc.RPCPort != 61000 {
		t.Errorf("expected rpc_port to keep default 61000, got: %d", desc.RPCPort)
	}
	if desc.LogLevel != "INFO" {
		t.Errorf("expected log_level to keep default INFO, got: %s", desc.LogLevel)
	}
}

func TestResolveOverlay(t *testing.T) {
	tests := []struct {
		name        string
		overlay     Overlay
		wantRPCAddr string
		wantRPCPort int
		wantNode    string
	}{
		{
			name:        "empty overlay keeps stored values",
			overlay:     Overlay{},
			wantRPCAddr: "127.0.0.1",
			wantRPCPort: 61000,
			wantNode:    "",
		},
		{
			name: "rpc endpoint overrides both host and port",
			overlay: Overlay{
				RPCAddress: &validate.NetworkEndpoint{Host: "0.0.0.0", Port: 62000},
			},
			wantRPCAddr: "0.0.0.0",
			wantRPCPort: 62000,
			wantNode:    "",
		},
		{
			name: "node address overrides stored value",
			overlay: Overlay{
				NodeAddress: "10.0.0.5",
			},
			wantRPCAddr: "127.0.0.1",
			wantRPCPort: 61000,
			wantNode:    "10.0.0.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dataDir := t.TempDir()

			desc, err := Resolve(dataDir, tt.overlay)
			if err != nil {
				t.Fatalf("Resolve() unexpected error: %v", err)
			}

			if desc.RPCAddress != tt.wantRPCAddr {
				t.Errorf("expected rpc_address %s, got: %s", tt.wantRPCAddr, desc.RPCAddress)
			}
			if desc.RPCPort != tt.wantRPCPort {
				t.Errorf("expected rpc_port %d, got: %d", tt.wantRPCPort, desc.RPCPort)
			}
			if desc.NodeAddress != tt.wantNode {
				t.Errorf("expected node_address %q, got: %q", tt.wantNode, desc.NodeAddress)
			}
		})
	}
}

// TestResolvePropagatesLoadError verifies a corrupt store fails Resolve with
// the same LoadError a direct Load would produce.
func TestResolvePropagatesLoadError(t *testing.T) {
	dataDir := t.TempDir()
	path := filepath.Join(dataDir, ConfigFileName)
	if err := os.WriteFile(path, []byte("p2p_port = \"oops"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := Resolve(dataDir, Overlay{NodeAddress: "10.0.0.5"})
	if err == nil {
		t.Fatal("expected error but got none")
	}

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Errorf("expected *LoadError, got: %T", err)
	}
}
