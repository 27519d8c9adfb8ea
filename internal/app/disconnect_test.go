package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Beacon/internal/app"
	"github.com/dkeye/Beacon/internal/domain"
)

func TestDisconnectUnknownPeer(t *testing.T) {
	reg := app.NewRegistry()
	res, ok := reg.Disconnect(42)
	assert.False(t, ok)
	assert.Nil(t, res)
}

func TestDisconnectHostClosesRoom(t *testing.T) {
	reg := app.NewRegistry()
	host, _ := join(t, reg, "r1", true, 4)
	join(t, reg, "r1", false, 0)
	join(t, reg, "r1", false, 0)

	res, ok := reg.Disconnect(host.PeerID)
	require.True(t, ok)
	assert.True(t, res.HostLeft)
	assert.Len(t, res.Remaining, 2)

	// The room and every member session are purged.
	rooms, peers := reg.Counts()
	assert.Zero(t, rooms)
	assert.Zero(t, peers)

	// An evicted member's own disconnect later is a no-op.
	_, ok = reg.Disconnect(host.PeerID + 1)
	assert.False(t, ok)
}

func TestDisconnectNonHostUnsealsFullRoom(t *testing.T) {
	reg := app.NewRegistry()
	join(t, reg, "r1", true, 2)
	member, _ := join(t, reg, "r1", false, 0)

	res, ok := reg.Disconnect(member.PeerID)
	require.True(t, ok)
	assert.False(t, res.HostLeft)
	assert.Equal(t, member.PeerID, res.PeerID)
	assert.Len(t, res.Remaining, 1)

	// A freed seat accepts a new joiner.
	replacement, _ := join(t, reg, "r1", false, 0)
	assert.True(t, replacement.RoomFull)
}

func TestDisconnectLastPeerRemovesRoom(t *testing.T) {
	reg := app.NewRegistry()
	host, _ := join(t, reg, "r1", true, 4)
	member, _ := join(t, reg, "r1", false, 0)

	_, ok := reg.Disconnect(member.PeerID)
	require.True(t, ok)
	res, ok := reg.Disconnect(host.PeerID)
	require.True(t, ok)
	assert.Empty(t, res.Remaining)

	rooms, _ := reg.Counts()
	assert.Zero(t, rooms)

	_, err := reg.Join(app.JoinRequest{RoomID: "r1", Topology: domain.TopologyMesh, Conn: &fakeConn{}})
	assert.ErrorIs(t, err, app.ErrRoomNotFound)
}
