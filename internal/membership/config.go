package membership

import (
	"fmt"
	"time"

	"github.com/tessera-network/tesserad/internal/config"
	"github.com/tessera-network/tesserad/internal/validate"
)

// Config holds configuration for the membership Manager
type Config struct {
	BindAddr   string            // Bind address
	BindPort   int               // Bind port
	NodeName   string            // Name of the node
	ProtocolID int               // P2P protocol version advertised to peers
	Tags       map[string]string // Tags for the node

	EventBufferSize int           // Event buffer size
	JoinRetries     int           // Join retries
	JoinTimeout     time.Duration // Join timeout
}

// DefaultConfig returns a default configuration for the Manager
func DefaultConfig() *Config {
	return &Config{
		BindAddr:        config.DefaultBindAddr,
		BindPort:        config.DefaultP2PPort,
		ProtocolID:      0,
		EventBufferSize: 1024,
		JoinRetries:     3,
		JoinTimeout:     30 * time.Second,
		Tags:            make(map[string]string),
	}
}

// validateConfig validates manager configuration
func validateConfig(cfg *Config) error {
	if cfg.NodeName == "" {
		return fmt.Errorf("node name cannot be empty")
	}

	if err := validate.ValidateField(cfg.BindAddr, "required,ip"); err != nil {
		return fmt.Errorf("invalid bind address: %w", err)
	}

	if err := validate.ValidateField(cfg.BindPort, "min=1,max=65535"); err != nil {
		return fmt.Errorf("invalid bind port: %w", err)
	}

	if cfg.ProtocolID < 0 {
		return fmt.Errorf("protocol version must be non-negative, got: %d", cfg.ProtocolID)
	}

	if cfg.EventBufferSize < 1 {
		return fmt.Errorf("event buffer size must be positive, got: %d", cfg.EventBufferSize)
	}

	if err := validateTags(cfg.Tags); err != nil {
		return fmt.Errorf("invalid tags: %w", err)
	}

	return nil
}

// validateTags rejects user tags that collide with system tag names.
func validateTags(tags map[string]string) error {
	reservedTags := map[string]bool{
		"node_id":     true,
		"protocol_id": true,
	}

	for tagName := range tags {
		if reservedTags[tagName] {
			return fmt.Errorf("tag name '%s' is reserved and cannot be used", tagName)
		}
	}

	return nil
}
