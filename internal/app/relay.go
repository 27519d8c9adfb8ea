package app

import (
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Beacon/internal/domain"
)

// Relay resolves a signal target for a joined sender. The target must be a
// live peer in the sender's room. A nil connection with a nil error means the
// sender or target vanished between receive and lookup; the message is
// silently dropped.
func (r *Registry) Relay(fromPeerID, targetID int) (domain.SignalConnection, error) {
	if targetID == 0 {
		return nil, ErrTargetIDRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	source, ok := r.peers[fromPeerID]
	if !ok {
		return nil, nil
	}
	target, ok := r.peers[targetID]
	if !ok {
		return nil, nil
	}

	if source.RoomID != target.RoomID {
		log.Warn().Str("module", "app.relay").
			Int("from_peer", fromPeerID).
			Str("from_room", source.RoomID).
			Int("to_peer", targetID).
			Str("to_room", target.RoomID).
			Msg("blocked cross-room signal")
		return nil, ErrCrossRoomSignal
	}

	if room, ok := r.rooms[source.RoomID]; ok {
		room.Touch()
	}
	return target.Conn, nil
}
