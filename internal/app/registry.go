// Package app owns the shared signaling state and its transitions.
//
// Every read-modify-write on rooms, peers and lobby subscriptions runs under
// one exclusive lock. Operations return plans (payload data plus recipient
// connections) so callers issue network sends only after the lock is released.
package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Beacon/internal/domain"
)

type Registry struct {
	mu    sync.Mutex
	rooms map[string]*domain.Room
	peers map[int]*domain.PeerSession
	subs  map[int]*domain.LobbySubscription

	nextPeerID int
	nextConnID int
}

func NewRegistry() *Registry {
	return &Registry{
		rooms:      make(map[string]*domain.Room),
		peers:      make(map[int]*domain.PeerSession),
		subs:       make(map[int]*domain.LobbySubscription),
		nextPeerID: 1,
		nextConnID: 1,
	}
}

// AllocateConnectionID returns a fresh connection ID, never reused within the
// process lifetime. Connection IDs are distinct from peer IDs.
func (r *Registry) AllocateConnectionID() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextConnID
	r.nextConnID++
	return id
}

// allocatePeerID must be called with the lock held.
func (r *Registry) allocatePeerID() int {
	id := r.nextPeerID
	r.nextPeerID++
	return id
}

// Counts reports aggregate room and peer totals for status endpoints.
func (r *Registry) Counts() (rooms, peers int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms), len(r.peers)
}

// removeRoom drops a room and every member session. Must hold the lock.
func (r *Registry) removeRoom(room *domain.Room) {
	for pid := range room.PeerIDs {
		delete(r.peers, pid)
	}
	delete(r.rooms, room.RoomID)
	log.Debug().Str("module", "app.registry").Str("room_id", room.RoomID).Msg("room removed")
}
