package app

import (
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Beacon/internal/domain"
)

// DisconnectResult tells the adapter who to notify after a peer is gone.
type DisconnectResult struct {
	PeerID   int
	RoomID   string
	HostLeft bool

	// Remaining holds the connections of the members still in the room (or,
	// when the host left, the members evicted with it) owed a peer_left or
	// room_closed event respectively.
	Remaining []domain.SignalConnection
}

// Disconnect reconciles registry state when a peer's connection ends. Host
// departure or an emptied membership closes the room and purges its sessions;
// otherwise the room unseals and stays open. ok is false when the peer had no
// live session, which also covers peers already evicted with a closed room.
func (r *Registry) Disconnect(peerID int) (*DisconnectResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, exists := r.peers[peerID]
	if !exists {
		return nil, false
	}
	delete(r.peers, peerID)

	room, exists := r.rooms[session.RoomID]
	if !exists {
		return nil, false
	}

	delete(room.PeerIDs, peerID)
	delete(room.ConnectedAck, peerID)
	room.Touch()
	room.ReadyEmitted = false

	res := &DisconnectResult{
		PeerID:   peerID,
		RoomID:   room.RoomID,
		HostLeft: peerID == room.HostID,
	}
	for pid := range room.PeerIDs {
		if s, ok := r.peers[pid]; ok {
			res.Remaining = append(res.Remaining, s.Conn)
		}
	}

	if res.HostLeft || len(room.PeerIDs) == 0 {
		r.removeRoom(room)
	} else {
		room.IsSealed = false
	}

	log.Info().Str("module", "app.disconnect").
		Int("peer_id", peerID).
		Str("room_id", room.RoomID).
		Bool("host_disconnected", res.HostLeft).
		Int("remaining", len(res.Remaining)).
		Msg("peer disconnected")

	return res, true
}
