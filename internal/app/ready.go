package app

import (
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Beacon/internal/domain"
)

// AckConnected records a peer's connection acknowledgment and returns its
// room ID so the caller can run the readiness check. ok is false when the
// peer no longer has a live session or room.
func (r *Registry) AckConnected(peerID int) (roomID string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, exists := r.peers[peerID]
	if !exists {
		return "", false
	}
	room, exists := r.rooms[session.RoomID]
	if !exists {
		return "", false
	}

	room.ConnectedAck[peerID] = struct{}{}
	room.Touch()
	log.Info().Str("module", "app.ready").
		Int("peer_id", peerID).
		Str("room_id", session.RoomID).
		Int("acks", len(room.ConnectedAck)).
		Int("players", len(room.PeerIDs)).
		Msg("peer connection ack")

	return session.RoomID, true
}

// CheckMatchReady returns the member connections owed a match_ready broadcast,
// or nil. It fires at most once per full/ack-complete cycle: the latch resets
// only when membership changes, so redundant acks never re-trigger it.
func (r *Registry) CheckMatchReady(roomID string) []domain.SignalConnection {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok || !room.IsFull() || room.ReadyEmitted {
		return nil
	}
	for pid := range room.PeerIDs {
		if _, acked := room.ConnectedAck[pid]; !acked {
			return nil
		}
	}

	room.ReadyEmitted = true
	room.Touch()

	recipients := make([]domain.SignalConnection, 0, len(room.PeerIDs))
	for pid := range room.PeerIDs {
		if session, ok := r.peers[pid]; ok {
			recipients = append(recipients, session.Conn)
		}
	}
	log.Info().Str("module", "app.ready").
		Str("room_id", roomID).
		Int("players", len(room.PeerIDs)).
		Msg("match ready")
	return recipients
}
