package membership

import (
	"strings"
	"testing"

	"github.com/tessera-network/tesserad/internal/logging"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*Config)
		expectError   bool
		errorContains string
	}{
		{
			name:        "valid default with node name",
			mutate:      func(c *Config) { c.NodeName = "tiled-kernel" },
			expectError: false,
		},
		{
			name:          "missing node name",
			mutate:        func(c *Config) {},
			expectError:   true,
			errorContains: "node name",
		},
		{
			name: "invalid bind address",
			mutate: func(c *Config) {
				c.NodeName = "tiled-kernel"
				c.BindAddr = "not-an-ip"
			},
			expectError:   true,
			errorContains: "bind address",
		},
		{
			name: "bind port zero",
			mutate: func(c *Config) {
				c.NodeName = "tiled-kernel"
				c.BindPort = 0
			},
			expectError:   true,
			errorContains: "bind port",
		},
		{
			name: "bind port too large",
			mutate: func(c *Config) {
				c.NodeName = "tiled-kernel"
				c.BindPort = 70000
			},
			expectError:   true,
			errorContains: "bind port",
		},
		{
			name: "negative protocol version",
			mutate: func(c *Config) {
				c.NodeName = "tiled-kernel"
				c.ProtocolID = -1
			},
			expectError:   true,
			errorContains: "protocol version",
		},
		{
			name: "zero event buffer",
			mutate: func(c *Config) {
				c.NodeName = "tiled-kernel"
				c.EventBufferSize = 0
			},
			expectError:   true,
			errorContains: "event buffer",
		},
		{
			name: "reserved tag node_id",
			mutate: func(c *Config) {
				c.NodeName = "tiled-kernel"
				c.Tags = map[string]string{"node_id": "x"}
			},
			expectError:   true,
			errorContains: "reserved",
		},
		{
			name: "reserved tag protocol_id",
			mutate: func(c *Config) {
				c.NodeName = "tiled-kernel"
				c.Tags = map[string]string{"protocol_id": "99"}
			},
			expectError:   true,
			errorContains: "reserved",
		},
		{
			name: "custom tag allowed",
			mutate: func(c *Config) {
				c.NodeName = "tiled-kernel"
				c.Tags = map[string]string{"region": "eu-west"}
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if tt.errorContains != "" && !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("expected error containing %q, got: %v", tt.errorContains, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BindPort != 40102 {
		t.Errorf("expected default bind port 40102, got: %d", cfg.BindPort)
	}
	if cfg.BindAddr != "0.0.0.0" {
		t.Errorf("expected default bind address 0.0.0.0, got: %s", cfg.BindAddr)
	}
	if cfg.JoinRetries != 3 {
		t.Errorf("expected 3 join retries, got: %d", cfg.JoinRetries)
	}
}

func TestNewManagerGeneratesNodeID(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NodeName = "tiled-kernel"

	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager() unexpected error: %v", err)
	}

	if len(m.NodeID) != 12 {
		t.Errorf("expected 12-character hex node ID, got: %q", m.NodeID)
	}

	other, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager() unexpected error: %v", err)
	}
	if m.NodeID == other.NodeID {
		t.Error("expected distinct node IDs across managers")
	}
}

// TestShutdownClosesGossipWriter verifies the log pipe created for serf does
// not outlive the manager.
func TestShutdownClosesGossipWriter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NodeName = "tiled-kernel"

	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager() unexpected error: %v", err)
	}
	m.gossipWriter = logging.NewGossipWriter()

	if err := m.Shutdown(); err != nil {
		t.Fatalf("Shutdown() unexpected error: %v", err)
	}

	if _, err := m.gossipWriter.Write([]byte("late line\n")); err == nil {
		t.Error("expected writes after shutdown to fail on the closed pipe")
	}
}

func TestPeerProtocolID(t *testing.T) {
	tests := []struct {
		name string
		tags map[string]string
		want int
	}{
		{name: "valid tag", tags: map[string]string{"protocol_id": "20"}, want: 20},
		{name: "missing tag", tags: map[string]string{}, want: -1},
		{name: "garbage tag", tags: map[string]string{"protocol_id": "abc"}, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Peer{Tags: tt.tags}
			if got := p.ProtocolID(); got != tt.want {
				t.Errorf("ProtocolID() = %d, want %d", got, tt.want)
			}
		})
	}
}
