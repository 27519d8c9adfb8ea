package signal

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Beacon/internal/domain"
)

// Frame-level protocol errors. Their text is the wire error code.
var (
	errEmptyPayload       = errors.New("empty_payload")
	errInvalidUTF8Payload = errors.New("invalid_utf8_payload")
	errInvalidJSON        = errors.New("invalid_json")
	errJSONObjectRequired = errors.New("json_object_required")
	errJoinRequired       = errors.New("join_required")
)

func (ctl *SignalWSController) writePump(c *wsSignalConn) {
	for data := range c.send {
		if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
			log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
			return
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
			return
		}
	}
}

func (ctl *SignalWSController) readPump(st *connState, c *wsSignalConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("remote", st.remote).Int("peer_id", st.peerID).Msg("readPump closing")
		if st.peerID != 0 {
			ctl.handleDisconnect(st)
		}
		ctl.Registry.Unsubscribe(st.connID)
		c.Close()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			log.Info().Err(err).Str("module", "signal").Str("remote", st.remote).Int("peer_id", st.peerID).Msg("readPump read error")
			return
		}
		ctl.handleMessage(st, data)
	}
}

// parseEnvelope validates framing and extracts the message type. Binary
// frames are accepted as long as they decode as UTF-8 JSON objects.
func parseEnvelope(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errEmptyPayload
	}
	if !utf8.Valid(data) {
		return "", errInvalidUTF8Payload
	}
	if !json.Valid(data) {
		return "", errInvalidJSON
	}
	// Unmarshal accepts null for any target type, so object-ness is
	// decided on the leading token, not on the decode error.
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return "", errJSONObjectRequired
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return "", errJSONObjectRequired
	}
	return envelopeType(fields["type"]), nil
}

// envelopeType stringifies the type field: a non-string value such as a
// number is dispatched by its JSON text rather than rejected outright.
func envelopeType(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// handleMessage dispatches one decoded frame. Every failure is a non-fatal
// error message back to the sender; the loop keeps running.
func (ctl *SignalWSController) handleMessage(st *connState, data []byte) {
	msgType, err := parseEnvelope(data)
	if err != nil {
		ctl.sendError(st, err.Error())
		return
	}

	switch msgType {
	case "join":
		ctl.handleJoin(st, data)
		return
	case "list_lobbies":
		ctl.handleListLobbies(st, data)
		return
	case "subscribe_lobbies":
		ctl.handleSubscribeLobbies(st, data)
		return
	case "unsubscribe_lobbies":
		ctl.Registry.Unsubscribe(st.connID)
		return
	}

	if st.peerID == 0 {
		ctl.sendError(st, errJoinRequired.Error())
		return
	}

	switch msgType {
	case "signal":
		ctl.handleRelay(st, data)
	case "peer_connected":
		ctl.handlePeerConnected(st)
	default:
		ctl.sendError(st, "unknown_message_type:"+msgType)
	}
}

func (ctl *SignalWSController) sendJSON(c domain.SignalConnection, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}

func (ctl *SignalWSController) sendError(st *connState, code string) {
	log.Warn().Str("module", "signal").Str("remote", st.remote).Str("code", code).Msg("sending protocol error")
	ctl.sendJSON(st.conn, struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}{"error", code})
}
