package app

import (
	"strings"

	"github.com/dkeye/Beacon/internal/domain"
)

// NormalizeFilterTags turns a raw tag list into a trimmed set, dropping
// empty entries. A nil or empty result matches every open room.
func NormalizeFilterTags(raw []string) map[string]struct{} {
	tags := make(map[string]struct{}, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t != "" {
			tags[t] = struct{}{}
		}
	}
	return tags
}

// Snapshot returns the summaries of every room visible under the filter.
func (r *Registry) Snapshot(filterTags map[string]struct{}) []domain.LobbySummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked(filterTags)
}

func (r *Registry) snapshotLocked(filterTags map[string]struct{}) []domain.LobbySummary {
	lobbies := make([]domain.LobbySummary, 0, len(r.rooms))
	for _, room := range r.rooms {
		if room.VisibleTo(filterTags) {
			lobbies = append(lobbies, room.Summary())
		}
	}
	return lobbies
}

// Subscribe registers (or replaces) the connection's lobby filter and returns
// the immediate snapshot under it.
func (r *Registry) Subscribe(connID int, conn domain.SignalConnection, filterTags map[string]struct{}) []domain.LobbySummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subs[connID] = &domain.LobbySubscription{
		ConnectionID: connID,
		Conn:         conn,
		FilterTags:   filterTags,
	}
	return r.snapshotLocked(filterTags)
}

func (r *Registry) Unsubscribe(connID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subs, connID)
}

// LobbyDelta is one subscriber's view of a room change. A nil Upsert means a
// remove delta: the room is gone, or no longer visible under that filter.
type LobbyDelta struct {
	Conn   domain.SignalConnection
	RoomID string
	Upsert *domain.LobbySummary
}

// RoomChangedDeltas computes the per-subscriber deltas for a room change.
// The fan-out itself happens outside the lock, in the adapter.
func (r *Registry) RoomChangedDeltas(roomID string) []LobbyDelta {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.rooms[roomID]
	deltas := make([]LobbyDelta, 0, len(r.subs))
	for _, sub := range r.subs {
		d := LobbyDelta{Conn: sub.Conn, RoomID: roomID}
		if room != nil && room.VisibleTo(sub.FilterTags) {
			summary := room.Summary()
			d.Upsert = &summary
		}
		deltas = append(deltas, d)
	}
	return deltas
}
