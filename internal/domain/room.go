// Package domain contains entities without behavior beyond small derived properties.
package domain

import "time"

type Topology string

const (
	TopologyMesh       Topology = "mesh"
	TopologyServerAuth Topology = "server_authoritative"
)

// ParseTopology maps anything that is not server_authoritative to mesh.
func ParseTopology(raw string) Topology {
	if raw == string(TopologyServerAuth) {
		return TopologyServerAuth
	}
	return TopologyMesh
}

const MinCapacity = 2

// Room is a named rendezvous group sharing one topology and capacity.
// All fields are guarded by the registry lock.
type Room struct {
	RoomID       string
	HostID       int
	Topology     Topology
	Capacity     int
	IsSealed     bool
	PeerIDs      map[int]struct{}
	ConnectedAck map[int]struct{}
	Tags         []string
	LastActivity time.Time

	// ReadyEmitted latches the match_ready broadcast for the current
	// full/ack-complete cycle. Cleared on any membership change.
	ReadyEmitted bool
}

func NewRoom(roomID string, hostID int, topology Topology, capacity int, tags []string) *Room {
	if capacity < MinCapacity {
		capacity = MinCapacity
	}
	if tags == nil {
		tags = []string{}
	}
	return &Room{
		RoomID:       roomID,
		HostID:       hostID,
		Topology:     topology,
		Capacity:     capacity,
		PeerIDs:      make(map[int]struct{}),
		ConnectedAck: make(map[int]struct{}),
		Tags:         tags,
		LastActivity: time.Now(),
	}
}

func (r *Room) IsFull() bool {
	return r.Capacity > 0 && len(r.PeerIDs) >= r.Capacity
}

func (r *Room) Touch() {
	r.LastActivity = time.Now()
}

// Reseal recomputes the sealed flag after a membership change: sealed ⇔ full.
func (r *Room) Reseal() {
	r.IsSealed = r.IsFull()
	r.ReadyEmitted = false
}

// VisibleTo reports whether the room belongs in a lobby view under the given
// filter. An empty filter matches every open room.
func (r *Room) VisibleTo(filterTags map[string]struct{}) bool {
	if r.IsSealed || r.IsFull() {
		return false
	}
	if len(filterTags) == 0 {
		return true
	}
	tags := make(map[string]struct{}, len(r.Tags))
	for _, t := range r.Tags {
		tags[t] = struct{}{}
	}
	for t := range filterTags {
		if _, ok := tags[t]; !ok {
			return false
		}
	}
	return true
}

// LobbySummary is the public view of a joinable room (no transport fields).
type LobbySummary struct {
	RoomID   string   `json:"room_id"`
	Topology Topology `json:"topology"`
	Players  int      `json:"players"`
	Capacity int      `json:"capacity"`
	Tags     []string `json:"tags"`
}

func (r *Room) Summary() LobbySummary {
	return LobbySummary{
		RoomID:   r.RoomID,
		Topology: r.Topology,
		Players:  len(r.PeerIDs),
		Capacity: r.Capacity,
		Tags:     r.Tags,
	}
}
