package app

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Beacon/internal/domain"
)

type JoinRequest struct {
	RoomID     string
	HostIntent bool
	Topology   domain.Topology
	Capacity   int
	Tags       []string
	Conn       domain.SignalConnection
}

// JoinResult carries everything the adapter needs to reply and notify after
// the critical section ends.
type JoinResult struct {
	PeerID   int
	HostID   int
	Topology domain.Topology
	Capacity int
	RoomFull bool

	// NotifyJoined lists the members owed a peer_joined event: every other
	// member in a mesh room, only the host in a server_authoritative one.
	NotifyJoined []domain.SignalConnection
}

// Join creates or attaches to a room. On rejection the returned error text is
// the wire error code. Peer IDs are allocated before validation and burned on
// rejection; they are never reused.
func (r *Registry) Join(req JoinRequest) (*JoinResult, error) {
	if req.RoomID == "" {
		return nil, ErrRoomIDRequired
	}
	if req.Capacity < domain.MinCapacity {
		req.Capacity = domain.MinCapacity
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	peerID := r.allocatePeerID()
	room, exists := r.rooms[req.RoomID]

	switch {
	case !exists:
		if !req.HostIntent {
			return nil, ErrRoomNotFound
		}
		room = domain.NewRoom(req.RoomID, peerID, req.Topology, req.Capacity, req.Tags)
		r.rooms[req.RoomID] = room
		log.Info().Str("module", "app.join").
			Str("room_id", req.RoomID).
			Int("host_id", peerID).
			Str("topology", string(req.Topology)).
			Int("capacity", room.Capacity).
			Msg("room created")
	case req.Topology != room.Topology:
		log.Warn().Str("module", "app.join").
			Str("room_id", req.RoomID).
			Str("requested", string(req.Topology)).
			Str("actual", string(room.Topology)).
			Msg("rejected join: topology mismatch")
		return nil, ErrTopologyMismatch
	}

	if room.IsSealed || room.IsFull() {
		return nil, ErrRoomUnavailable
	}
	if req.HostIntent && room.HostID != peerID {
		return nil, ErrHostAlreadyExists
	}

	room.PeerIDs[peerID] = struct{}{}
	room.Touch()
	room.Reseal()

	r.peers[peerID] = &domain.PeerSession{
		PeerID:   peerID,
		Conn:     req.Conn,
		RoomID:   req.RoomID,
		JoinedAt: time.Now(),
	}

	res := &JoinResult{
		PeerID:   peerID,
		HostID:   room.HostID,
		Topology: room.Topology,
		Capacity: room.Capacity,
		RoomFull: room.IsFull(),
	}
	for pid := range room.PeerIDs {
		if pid == peerID {
			continue
		}
		if room.Topology == domain.TopologyServerAuth && pid != room.HostID {
			continue
		}
		if session, ok := r.peers[pid]; ok {
			res.NotifyJoined = append(res.NotifyJoined, session.Conn)
		}
	}

	log.Info().Str("module", "app.join").
		Int("peer_id", peerID).
		Str("room_id", req.RoomID).
		Bool("host", peerID == room.HostID).
		Int("players", len(room.PeerIDs)).
		Int("capacity", room.Capacity).
		Msg("peer joined")

	return res, nil
}
