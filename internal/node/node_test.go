package node

import (
	"strings"
	"testing"

	"github.com/tessera-network/tesserad/internal/configstore"
)

func validConfig() *Config {
	return &Config{
		DataDir:    "/var/lib/tessera",
		Desc:       configstore.DefaultDescriptor(),
		ProtocolID: 20,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*Config)
		expectError   bool
		errorContains string
	}{
		{
			name:        "valid",
			mutate:      func(c *Config) {},
			expectError: false,
		},
		{
			name:          "empty data dir",
			mutate:        func(c *Config) { c.DataDir = "" },
			expectError:   true,
			errorContains: "data directory",
		},
		{
			name:          "nil descriptor",
			mutate:        func(c *Config) { c.Desc = nil },
			expectError:   true,
			errorContains: "descriptor",
		},
		{
			name:          "invalid descriptor",
			mutate:        func(c *Config) { c.Desc.RPCPort = 0 },
			expectError:   true,
			errorContains: "rpc_port",
		},
		{
			name:          "negative protocol version",
			mutate:        func(c *Config) { c.ProtocolID = -5 },
			expectError:   true,
			errorContains: "protocol version",
		},
		{
			name:          "geth port without start geth",
			mutate:        func(c *Config) { c.StartGethPort = 8545 },
			expectError:   true,
			errorContains: "start-geth",
		},
		{
			name: "geth port with start geth",
			mutate: func(c *Config) {
				c.StartGeth = true
				c.StartGethPort = 8545
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
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

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.DataDir = ""

	if _, err := New(cfg); err == nil {
		t.Fatal("expected error but got none")
	}
}

func TestNewAcceptsValidConfig(t *testing.T) {
	n, err := New(validConfig())
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	if n == nil {
		t.Fatal("New() returned nil node")
	}
}
