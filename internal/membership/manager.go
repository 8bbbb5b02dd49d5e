// Package membership provides gossip-based peer discovery and failure
// detection for Tessera nodes, built on Serf's SWIM implementation. Nodes
// advertise their protocol version as a gossip tag so mismatched peers are
// visible to operators instead of silently failing wire exchanges.
package membership

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/hashicorp/serf/serf"

	"github.com/tessera-network/tesserad/internal/logging"
)

// Peer represents a node in the Tessera network with its metadata
type Peer struct {
	ID     string            `json:"id"`     // Unique identifier for the node
	Name   string            `json:"name"`   // Name of the node
	Addr   net.IP            `json:"addr"`   // IP address of the node
	Port   uint16            `json:"port"`   // Port number
	Status serf.MemberStatus `json:"status"` // Status of the node
	Tags   map[string]string `json:"tags"`   // Tags for the node

	LastSeen time.Time `json:"lastSeen"` // Last seen time
}

// ProtocolID reports the protocol version the peer advertised when joining,
// or -1 when the tag is missing or unparseable.
func (p *Peer) ProtocolID() int {
	raw, ok := p.Tags["protocol_id"]
	if !ok {
		return -1
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return id
}

// Manager runs the gossip layer for a Tessera node
type Manager struct {
	serf      *serf.Serf // Core Serf instance
	NodeID    string     // Unique identifier for the node
	NodeName  string     // Name of the node
	startTime time.Time  // When the manager was started

	// Serf writes into ingestEventQueue, which is always drained by the
	// internal processor so peer tracking never stalls behind a slow or
	// absent external consumer reading ConsumerEventCh.
	ConsumerEventCh  chan serf.Event
	ingestEventQueue chan serf.Event

	peerLock sync.RWMutex     // Peer tracking
	peers    map[string]*Peer // Map of known peers
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	config   *Config

	gossipWriter *logging.GossipWriter // Closed on shutdown to stop its pump
}

// NewManager creates a new membership Manager instance
func NewManager(cfg *Config) (*Manager, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	nodeID, err := generateNodeID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate node ID: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	manager := &Manager{
		NodeID:   nodeID,
		NodeName: cfg.NodeName,

		ConsumerEventCh:  make(chan serf.Event, cfg.EventBufferSize),
		ingestEventQueue: make(chan serf.Event, cfg.EventBufferSize*2),

		peers:  make(map[string]*Peer),
		ctx:    ctx,
		cancel: cancel,
		config: cfg,
	}

	return manager, nil
}

// Start creates the Serf instance and begins gossiping
func (m *Manager) Start() error {
	m.startTime = time.Now()
	logging.Info("Starting membership manager for node %s", m.NodeID)

	serfConfig := serf.DefaultConfig()

	// Route Serf and memberlist internals through our logging layer so
	// gossip chatter shares the node's format and level filtering.
	m.gossipWriter = logging.NewGossipWriter()
	serfConfig.LogOutput = m.gossipWriter
	serfConfig.MemberlistConfig.LogOutput = m.gossipWriter

	serfConfig.Init()
	serfConfig.NodeName = m.NodeName
	serfConfig.MemberlistConfig.BindAddr = m.config.BindAddr
	serfConfig.MemberlistConfig.BindPort = m.config.BindPort

	serfConfig.EventCh = m.ingestEventQueue
	serfConfig.Tags = m.buildNodeTags()

	var err error
	m.serf, err = serf.Create(serfConfig)
	if err != nil {
		return fmt.Errorf("failed to create serf instance: %w", err)
	}

	m.wg.Add(1)
	go m.processEvents()

	// Initialize with self as first peer
	m.addPeer(m.serf.LocalMember())

	logging.Success("Membership manager listening on %s:%d (protocol %d)",
		m.config.BindAddr, m.config.BindPort, m.config.ProtocolID)

	return nil
}

// Join attempts to join the network via one or more seed addresses. Serf
// tries each address until one succeeds, so a partially unreachable seed
// list still bootstraps. Retries with linear backoff up to JoinRetries.
func (m *Manager) Join(addresses []string) error {
	if len(addresses) == 0 {
		return fmt.Errorf("no join addresses provided")
	}

	logging.Info("Attempting to join network via %v", addresses)

	var lastErr error
	for attempt := 1; attempt <= m.config.JoinRetries; attempt++ {
		ctx, cancel := context.WithTimeout(m.ctx, m.config.JoinTimeout)

		joinDone := make(chan struct {
			n   int
			err error
		}, 1)

		go func() {
			n, err := m.serf.Join(addresses, false)
			joinDone <- struct {
				n   int
				err error
			}{n, err}
		}()

		select {
		case result := <-joinDone:
			cancel()
			if result.err != nil {
				lastErr = result.err
				logging.Warn("Join attempt %d/%d failed: %v",
					attempt, m.config.JoinRetries, result.err)

				if attempt < m.config.JoinRetries {
					time.Sleep(time.Duration(attempt) * time.Second)
				}
				continue
			}

			logging.Success("Joined network, discovered %d nodes", result.n)
			return nil

		case <-ctx.Done():
			cancel()
			lastErr = fmt.Errorf("join attempt timed out after %v", m.config.JoinTimeout)
			logging.Warn("Join attempt %d/%d timed out after %v",
				attempt, m.config.JoinRetries, m.config.JoinTimeout)

			if attempt < m.config.JoinRetries {
				time.Sleep(time.Duration(attempt) * time.Second)
			}
			continue
		}
	}

	return fmt.Errorf("failed to join network after %d attempts: %w",
		m.config.JoinRetries, lastErr)
}

// Leave gracefully leaves the network
func (m *Manager) Leave() error {
	logging.Info("Leaving network gracefully")

	if m.serf != nil {
		if err := m.serf.Leave(); err != nil {
			return fmt.Errorf("failed to leave network: %w", err)
		}
	}

	return nil
}

// Shutdown stops the Manager and cleans up resources
func (m *Manager) Shutdown() error {
	logging.Info("Shutting down membership manager")

	m.cancel()

	if err := m.Leave(); err != nil {
		logging.Warn("Error during graceful leave: %v", err)
	}

	if m.serf != nil {
		if err := m.serf.Shutdown(); err != nil {
			logging.Error("Error shutting down serf: %v", err)
		}
	}

	// Serf is down, nothing writes gossip logs anymore.
	if m.gossipWriter != nil {
		m.gossipWriter.Close()
	}

	m.wg.Wait()

	logging.Success("Membership manager shutdown completed")
	return nil
}

// Peers returns a copy of all known peers
func (m *Manager) Peers() map[string]*Peer {
	m.peerLock.RLock()
	defer m.peerLock.RUnlock()

	peers := make(map[string]*Peer, len(m.peers))
	for id, peer := range m.peers {
		peers[id] = copyPeer(peer)
	}

	return peers
}

// Peer returns a specific peer by ID
func (m *Manager) Peer(nodeID string) (*Peer, bool) {
	m.peerLock.RLock()
	defer m.peerLock.RUnlock()

	peer, exists := m.peers[nodeID]
	if !exists {
		return nil, false
	}

	return copyPeer(peer), true
}

// LocalPeer returns information about the local node
func (m *Manager) LocalPeer() *Peer {
	peer, _ := m.Peer(m.NodeID)
	return peer
}

// PeerCount returns the number of currently known peers, self included.
func (m *Manager) PeerCount() int {
	m.peerLock.RLock()
	defer m.peerLock.RUnlock()
	return len(m.peers)
}

// Uptime returns how long the manager has been running.
func (m *Manager) Uptime() time.Duration {
	if m.startTime.IsZero() {
		return 0
	}
	return time.Since(m.startTime)
}

// copyPeer deep-copies reference fields so callers cannot corrupt tracked
// state; value fields are handled by the struct copy.
func copyPeer(peer *Peer) *Peer {
	peerCopy := *peer

	peerCopy.Tags = make(map[string]string, len(peer.Tags))
	for k, v := range peer.Tags {
		peerCopy.Tags[k] = v
	}

	return &peerCopy
}

// buildNodeTags constructs the tags map for this node
func (m *Manager) buildNodeTags() map[string]string {
	tags := make(map[string]string, len(m.config.Tags)+2)

	for k, v := range m.config.Tags {
		tags[k] = v
	}

	tags["node_id"] = m.NodeID
	tags["protocol_id"] = strconv.Itoa(m.config.ProtocolID)

	return tags
}

// generateNodeID generates a random hex node identifier
func generateNodeID() (string, error) {
	bytes := make([]byte, 6)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
