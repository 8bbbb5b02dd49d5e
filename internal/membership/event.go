package membership

import (
	"fmt"
	"time"

	"github.com/hashicorp/serf/serf"

	"github.com/tessera-network/tesserad/internal/logging"
)

// processEvents drains the internal queue in two phases: peer tracking always
// runs, then events are forwarded to ConsumerEventCh best-effort. A slow or
// absent consumer drops events instead of stalling gossip.
func (m *Manager) processEvents() {
	defer m.wg.Done()

	logging.Info("Starting membership event processor")

	for {
		select {
		case event := <-m.ingestEventQueue:
			m.handleEvent(event)

			select {
			case m.ConsumerEventCh <- event:
			default:
				logging.Warn("Event channel full, dropping event: %T", event)
			}

		case <-m.ctx.Done():
			logging.Info("Membership event processor shutting down")
			return
		}
	}
}

func (m *Manager) handleEvent(event serf.Event) {
	switch e := event.(type) {
	case serf.MemberEvent:
		m.handleMemberEvent(e)
	case serf.UserEvent:
		logging.Debug("Received user event: %s", e.Name)
	case *serf.Query:
		logging.Debug("Received query: %s", e.Name)
	default:
		logging.Debug("Received unhandled event type: %T", event)
	}
}

// handleMemberEvent processes peer join/leave/fail events from Serf
func (m *Manager) handleMemberEvent(event serf.MemberEvent) {
	for _, member := range event.Members {
		switch event.EventType() {
		case serf.EventMemberJoin:
			logging.Info("Peer joined: %s (%s:%d)",
				member.Name, member.Addr, member.Port)
			m.addPeer(member)
			m.checkProtocol(member)

		case serf.EventMemberLeave:
			logging.Info("Peer left: %s (%s:%d)",
				member.Name, member.Addr, member.Port)
			m.removePeer(member)

		case serf.EventMemberFailed:
			logging.Warn("Peer failed: %s (%s:%d)",
				member.Name, member.Addr, member.Port)
			m.updatePeerStatus(member, serf.StatusFailed)

		case serf.EventMemberUpdate:
			logging.Info("Peer updated: %s (%s:%d)",
				member.Name, member.Addr, member.Port)
			m.updatePeer(member)

		case serf.EventMemberReap:
			logging.Info("Peer reaped: %s (%s:%d)",
				member.Name, member.Addr, member.Port)
			m.removePeer(member)
		}
	}
}

// checkProtocol warns when a joining peer advertises a different protocol
// version. Mismatched peers stay in the gossip layer but will be rejected by
// the wire protocol, so the warning is the operator's main clue.
func (m *Manager) checkProtocol(member serf.Member) {
	peer := m.peerFromSerf(member)
	peerProto := peer.ProtocolID()

	if peerProto >= 0 && peerProto != m.config.ProtocolID {
		logging.Warn("Peer %s speaks protocol %d, local node speaks %d",
			member.Name, peerProto, m.config.ProtocolID)
	}
}

func (m *Manager) addPeer(member serf.Member) {
	peer := m.peerFromSerf(member)

	m.peerLock.Lock()
	m.peers[peer.ID] = peer
	m.peerLock.Unlock()
}

func (m *Manager) updatePeer(member serf.Member) {
	peer := m.peerFromSerf(member)

	m.peerLock.Lock()
	if existing, exists := m.peers[peer.ID]; exists {
		if member.Status == serf.StatusAlive {
			peer.LastSeen = time.Now()
		} else {
			peer.LastSeen = existing.LastSeen
		}
	}
	m.peers[peer.ID] = peer
	m.peerLock.Unlock()
}

func (m *Manager) updatePeerStatus(member serf.Member, status serf.MemberStatus) {
	m.peerLock.Lock()
	if peer, exists := m.peers[peerID(member)]; exists {
		peer.Status = status
		if status == serf.StatusAlive {
			peer.LastSeen = time.Now()
		}
	}
	m.peerLock.Unlock()
}

func (m *Manager) removePeer(member serf.Member) {
	m.peerLock.Lock()
	delete(m.peers, peerID(member))
	m.peerLock.Unlock()
}

// peerFromSerf converts a serf.Member to a Peer
func (m *Manager) peerFromSerf(member serf.Member) *Peer {
	peer := &Peer{
		ID:       peerID(member),
		Name:     member.Name,
		Addr:     member.Addr,
		Port:     member.Port,
		Status:   member.Status,
		Tags:     make(map[string]string, len(member.Tags)),
		LastSeen: time.Now(),
	}

	for k, v := range member.Tags {
		peer.Tags[k] = v
	}

	return peer
}

// peerID prefers the gossiped node_id tag and falls back to a synthetic
// name-address identifier for peers running without one.
func peerID(member serf.Member) string {
	if id, ok := member.Tags["node_id"]; ok && id != "" {
		return id
	}
	return fmt.Sprintf("%s@%s:%d", member.Name, member.Addr, member.Port)
}
