// Package node assembles and runs a Tessera node: gossip membership, the
// management RPC server, and the optional chain gateway probe. Bootstrap
// hands the node a resolved configuration descriptor and blocks in Start
// until the process is signalled.
package node

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/tessera-network/tesserad/internal/chain"
	"github.com/tessera-network/tesserad/internal/configstore"
	"github.com/tessera-network/tesserad/internal/logging"
	"github.com/tessera-network/tesserad/internal/membership"
	"github.com/tessera-network/tesserad/internal/names"
	"github.com/tessera-network/tesserad/internal/netutil"
	"github.com/tessera-network/tesserad/internal/rpc"
	"github.com/tessera-network/tesserad/internal/validate"
)

// shutdownTimeout bounds graceful teardown of each subsystem.
const shutdownTimeout = 10 * time.Second

// Config carries everything the node needs to start
type Config struct {
	DataDir string
	Desc    *configstore.Descriptor

	ProtocolID int

	// Subsystem toggles resolved during bootstrap
	TransactionSystem bool
	UseMonitor        bool

	Peers []validate.NetworkEndpoint

	StartGeth     bool
	StartGethPort int
	GethAddress   *validate.HTTPEndpoint
}

// Validate checks node configuration invariants
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}
	if c.Desc == nil {
		return fmt.Errorf("configuration descriptor cannot be nil")
	}
	if err := c.Desc.Validate(); err != nil {
		return err
	}
	if c.ProtocolID < 0 {
		return fmt.Errorf("protocol version must be non-negative, got: %d", c.ProtocolID)
	}
	if c.StartGethPort != 0 && !c.StartGeth {
		return fmt.Errorf("start-geth-port requires start-geth")
	}
	return nil
}

// Node is a running Tessera node
type Node struct {
	config     *Config
	membership *membership.Manager
	rpcServer  *rpc.Server
	gateway    *chain.Client
}

// New creates a node from a validated configuration
func New(cfg *Config) (*Node, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid node configuration: %w", err)
	}

	return &Node{config: cfg}, nil
}

// Start brings up all subsystems, then blocks until SIGINT or SIGTERM and
// shuts them down in reverse start order.
func (n *Node) Start() error {
	desc := n.config.Desc

	// A node keeps its generated name across restarts via the persisted
	// store, so only generate when the store carries none.
	if desc.NodeName == "" {
		desc.NodeName = names.Generate()
		logging.Info("Generated node name: %s", desc.NodeName)
	}

	logging.Info("Starting Tessera node %s (data dir: %s)", desc.NodeName, n.config.DataDir)

	if err := n.startMembership(); err != nil {
		return err
	}

	if err := n.startRPC(); err != nil {
		n.shutdownMembership()
		return err
	}

	n.probeGateway()
	n.logSubsystems()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logging.Info("Received %s, shutting down", sig)

	return n.shutdown()
}

func (n *Node) startMembership() error {
	desc := n.config.Desc

	memberCfg := membership.DefaultConfig()
	memberCfg.NodeName = desc.NodeName
	memberCfg.BindPort = desc.P2PPort
	memberCfg.ProtocolID = n.config.ProtocolID
	memberCfg.Tags = map[string]string{
		"accept_tasks": strconv.FormatBool(desc.AcceptTasks),
	}
	if desc.NodeAddress != "" {
		memberCfg.Tags["node_address"] = desc.NodeAddress
	}

	manager, err := membership.NewManager(memberCfg)
	if err != nil {
		return fmt.Errorf("failed to create membership manager: %w", err)
	}

	if err := manager.Start(); err != nil {
		if netutil.IsAddressInUseError(err) {
			logging.Error("P2P port %d is already in use, is another node running?", desc.P2PPort)
		}
		return fmt.Errorf("failed to start membership: %w", err)
	}
	n.membership = manager

	if len(n.config.Peers) > 0 {
		addresses := make([]string, len(n.config.Peers))
		for i, peer := range n.config.Peers {
			addresses[i] = peer.String()
		}

		// Seed peers being down is not fatal: the node keeps running and
		// peers can join us instead.
		if err := manager.Join(addresses); err != nil {
			if netutil.IsConnectionRefusedError(err) {
				logging.Warn("Seed peers refused connection, check that they are running")
			}
			logging.Warn("Failed to join network via seed peers: %v", err)
		}
	}

	return nil
}

func (n *Node) startRPC() error {
	desc := n.config.Desc

	server := rpc.NewServer(&rpc.Config{
		BindAddr:   desc.RPCAddress,
		BindPort:   desc.RPCPort,
		Membership: n.membership,
	})

	if err := server.Start(); err != nil {
		if netutil.IsAddressInUseError(err) {
			logging.Error("RPC port %d is already in use, is another node running?", desc.RPCPort)
		}
		return fmt.Errorf("failed to start RPC server: %w", err)
	}

	n.rpcServer = server
	return nil
}

// probeGateway checks the configured chain gateway is reachable. Failure is
// logged, not fatal: payments degrade until the gateway comes back.
func (n *Node) probeGateway() {
	if n.config.GethAddress == nil {
		return
	}

	n.gateway = chain.NewClient(n.config.GethAddress.URL)

	ctx, cancel := context.WithTimeout(context.Background(), chain.DefaultTimeout)
	defer cancel()

	clientVersion, err := n.gateway.ClientVersion(ctx)
	if err != nil {
		logging.Warn("Chain gateway %s unreachable: %v", n.config.GethAddress.URL, err)
		return
	}

	logging.Info("Chain gateway connected: %s", clientVersion)
}

func (n *Node) logSubsystems() {
	if n.config.TransactionSystem {
		logging.Info("Transaction system enabled")
	} else {
		logging.Warn("Transaction system disabled, node will not settle payments")
	}

	if n.config.UseMonitor {
		logging.Info("Network monitor reporting enabled")
	} else {
		logging.Info("Network monitor reporting disabled")
	}

	if n.config.StartGeth {
		port := n.config.StartGethPort
		if port == 0 {
			logging.Info("Managing local geth node on default port")
		} else {
			logging.Info("Managing local geth node on port %d", port)
		}
	}
}

func (n *Node) shutdown() error {
	if n.rpcServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := n.rpcServer.Shutdown(ctx); err != nil {
			logging.Warn("RPC server shutdown error: %v", err)
		}
		cancel()
	}

	n.shutdownMembership()

	logging.Success("Node shutdown completed")
	return nil
}

func (n *Node) shutdownMembership() {
	if n.membership == nil {
		return
	}
	if err := n.membership.Shutdown(); err != nil {
		logging.Warn("Membership shutdown error: %v", err)
	}
}
