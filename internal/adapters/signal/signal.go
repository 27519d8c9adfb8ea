// Package signal is the WebSocket adapter for the signaling protocol.
package signal

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Beacon/internal/app"
	"github.com/dkeye/Beacon/internal/domain"
)

var ErrBackpressure = errors.New("backpressure")

type SignalWSController struct {
	Registry   *app.Registry
	ICEServers []json.RawMessage
	ReadLimit  int64
}

func NewSignalWSController(registry *app.Registry, iceServers []json.RawMessage, readLimit int64) *SignalWSController {
	return &SignalWSController{
		Registry:   registry,
		ICEServers: iceServers,
		ReadLimit:  readLimit,
	}
}

// wsSignalConn wraps one client socket. Writes go through a buffered channel
// drained by writePump, so fan-out callers never block on a slow connection.
type wsSignalConn struct {
	conn *websocket.Conn
	send chan domain.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *wsSignalConn) TrySend(f domain.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *wsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// connState is the per-connection protocol state. peerID stays zero until a
// join succeeds; signal and peer_connected are rejected before that.
type connState struct {
	connID int
	peerID int
	conn   domain.SignalConnection
	remote string
}

// HandleSignal upgrades the request and services the connection until it
// drops. Peer and subscription cleanup run on every exit path.
func (ctl *SignalWSController) HandleSignal(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	if ctl.ReadLimit > 0 {
		ws.SetReadLimit(ctl.ReadLimit)
	}

	conn := &wsSignalConn{
		conn: ws,
		send: make(chan domain.Frame, 32),
	}
	st := &connState{
		connID: ctl.Registry.AllocateConnectionID(),
		conn:   conn,
		remote: c.Request.RemoteAddr,
	}
	log.Info().Str("module", "signal").Str("remote", st.remote).Int("conn_id", st.connID).Msg("new WS connection")

	go ctl.writePump(conn)
	ctl.readPump(st, conn)
}
