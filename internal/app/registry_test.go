package app_test

import (
	"os"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Beacon/internal/app"
	"github.com/dkeye/Beacon/internal/domain"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	os.Exit(m.Run())
}

// fakeConn records every frame it is handed.
type fakeConn struct {
	mu     sync.Mutex
	frames []domain.Frame
	closed bool
}

func (c *fakeConn) TrySend(f domain.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, f)
	return nil
}

func (c *fakeConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// join attaches a fresh fake connection to a room, failing the test on error.
func join(t *testing.T, reg *app.Registry, roomID string, host bool, capacity int, tags ...string) (*app.JoinResult, *fakeConn) {
	t.Helper()
	conn := &fakeConn{}
	res, err := reg.Join(app.JoinRequest{
		RoomID:     roomID,
		HostIntent: host,
		Topology:   domain.TopologyMesh,
		Capacity:   capacity,
		Tags:       tags,
		Conn:       conn,
	})
	require.NoError(t, err)
	return res, conn
}

func TestAllocateConnectionID(t *testing.T) {
	reg := app.NewRegistry()

	first := reg.AllocateConnectionID()
	second := reg.AllocateConnectionID()
	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestPeerIDsStrictlyIncrease(t *testing.T) {
	reg := app.NewRegistry()

	a, _ := join(t, reg, "r1", true, 4)
	b, _ := join(t, reg, "r2", true, 4)
	c, _ := join(t, reg, "r1", false, 0)
	assert.Less(t, a.PeerID, b.PeerID)
	assert.Less(t, b.PeerID, c.PeerID)
}

func TestPeerIDsNotReusedAfterRejectedJoin(t *testing.T) {
	reg := app.NewRegistry()

	a, _ := join(t, reg, "r1", true, 2)

	// Missing room: the allocated peer ID is burned.
	_, err := reg.Join(app.JoinRequest{RoomID: "nope", Conn: &fakeConn{}})
	require.ErrorIs(t, err, app.ErrRoomNotFound)

	b, _ := join(t, reg, "r1", false, 0)
	assert.Greater(t, b.PeerID, a.PeerID+1)
}

func TestCounts(t *testing.T) {
	reg := app.NewRegistry()
	rooms, peers := reg.Counts()
	assert.Zero(t, rooms)
	assert.Zero(t, peers)

	join(t, reg, "r1", true, 4)
	join(t, reg, "r1", false, 0)
	join(t, reg, "r2", true, 4)

	rooms, peers = reg.Counts()
	assert.Equal(t, 2, rooms)
	assert.Equal(t, 3, peers)
}
