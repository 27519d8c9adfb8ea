package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Beacon/internal/domain"
)

func TestParseTopology(t *testing.T) {
	assert.Equal(t, domain.TopologyMesh, domain.ParseTopology("mesh"))
	assert.Equal(t, domain.TopologyServerAuth, domain.ParseTopology("server_authoritative"))
	assert.Equal(t, domain.TopologyMesh, domain.ParseTopology(""))
	assert.Equal(t, domain.TopologyMesh, domain.ParseTopology("ring"))
}

func TestNewRoomClampsCapacity(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		want      int
	}{
		{"below floor", 1, 2},
		{"zero", 0, 2},
		{"negative", -5, 2},
		{"at floor", 2, 2},
		{"above floor", 8, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := domain.NewRoom("r1", 1, domain.TopologyMesh, tt.requested, nil)
			assert.Equal(t, tt.want, room.Capacity)
		})
	}
}

func TestRoomSealTracksFullness(t *testing.T) {
	room := domain.NewRoom("r1", 1, domain.TopologyMesh, 2, nil)
	room.PeerIDs[1] = struct{}{}
	room.Reseal()
	require.False(t, room.IsSealed)
	require.False(t, room.IsFull())

	room.PeerIDs[2] = struct{}{}
	room.Reseal()
	assert.True(t, room.IsSealed)
	assert.True(t, room.IsFull())

	delete(room.PeerIDs, 2)
	room.Reseal()
	assert.False(t, room.IsSealed)
}

func TestRoomVisibleTo(t *testing.T) {
	newRoom := func(tags ...string) *domain.Room {
		r := domain.NewRoom("r1", 1, domain.TopologyMesh, 4, tags)
		r.PeerIDs[1] = struct{}{}
		return r
	}
	filter := func(tags ...string) map[string]struct{} {
		out := make(map[string]struct{})
		for _, t := range tags {
			out[t] = struct{}{}
		}
		return out
	}

	t.Run("empty filter matches everything", func(t *testing.T) {
		assert.True(t, newRoom().VisibleTo(nil))
		assert.True(t, newRoom("ranked").VisibleTo(filter()))
	})

	t.Run("filter must be subset of room tags", func(t *testing.T) {
		room := newRoom("ranked", "eu")
		assert.True(t, room.VisibleTo(filter("ranked")))
		assert.True(t, room.VisibleTo(filter("ranked", "eu")))
		assert.False(t, room.VisibleTo(filter("ranked", "na")))
		assert.False(t, newRoom().VisibleTo(filter("ranked")))
	})

	t.Run("sealed or full rooms are never visible", func(t *testing.T) {
		room := domain.NewRoom("r1", 1, domain.TopologyMesh, 2, nil)
		room.PeerIDs[1] = struct{}{}
		room.PeerIDs[2] = struct{}{}
		room.Reseal()
		assert.False(t, room.VisibleTo(nil))
	})
}

func TestRoomSummary(t *testing.T) {
	room := domain.NewRoom("arena", 7, domain.TopologyServerAuth, 4, []string{"ranked"})
	room.PeerIDs[7] = struct{}{}
	room.PeerIDs[9] = struct{}{}

	got := room.Summary()
	assert.Equal(t, "arena", got.RoomID)
	assert.Equal(t, domain.TopologyServerAuth, got.Topology)
	assert.Equal(t, 2, got.Players)
	assert.Equal(t, 4, got.Capacity)
	assert.Equal(t, []string{"ranked"}, got.Tags)
}
