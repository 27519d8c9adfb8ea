package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Beacon/internal/app"
)

func TestRelayTargetRequired(t *testing.T) {
	reg := app.NewRegistry()
	host, _ := join(t, reg, "r1", true, 2)

	conn, err := reg.Relay(host.PeerID, 0)
	assert.ErrorIs(t, err, app.ErrTargetIDRequired)
	assert.Nil(t, conn)
}

func TestRelaySameRoomResolvesTarget(t *testing.T) {
	reg := app.NewRegistry()
	host, _ := join(t, reg, "r1", true, 2)
	member, memberConn := join(t, reg, "r1", false, 0)

	conn, err := reg.Relay(host.PeerID, member.PeerID)
	require.NoError(t, err)
	assert.Same(t, memberConn, conn)
}

func TestRelayCrossRoomBlocked(t *testing.T) {
	reg := app.NewRegistry()
	a, _ := join(t, reg, "r1", true, 2)
	b, _ := join(t, reg, "r2", true, 2)

	conn, err := reg.Relay(a.PeerID, b.PeerID)
	assert.ErrorIs(t, err, app.ErrCrossRoomSignal)
	assert.Nil(t, conn)
}

func TestRelayVanishedPeersDropSilently(t *testing.T) {
	reg := app.NewRegistry()
	host, _ := join(t, reg, "r1", true, 4)
	member, _ := join(t, reg, "r1", false, 0)

	// Unknown target.
	conn, err := reg.Relay(host.PeerID, 999)
	require.NoError(t, err)
	assert.Nil(t, conn)

	// Sender without a live session.
	_, ok := reg.Disconnect(member.PeerID)
	require.True(t, ok)
	conn, err = reg.Relay(member.PeerID, host.PeerID)
	require.NoError(t, err)
	assert.Nil(t, conn)
}
