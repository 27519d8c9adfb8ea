package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// handleRelay forwards an opaque negotiation payload to one peer in the
// sender's room. Whichever of sdp/ice were present are forwarded verbatim;
// unknown fields are dropped. Delivery is best-effort.
func (ctl *SignalWSController) handleRelay(st *connState, data []byte) {
	type relayPayload struct {
		TargetID int             `json:"target_id"`
		SDP      json.RawMessage `json:"sdp"`
		ICE      json.RawMessage `json:"ice"`
	}
	var p relayPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad signal payload")
		ctl.sendError(st, errInvalidJSON.Error())
		return
	}

	target, err := ctl.Registry.Relay(st.peerID, p.TargetID)
	if err != nil {
		ctl.sendError(st, err.Error())
		return
	}
	if target == nil {
		// Sender or target vanished between receive and lookup.
		return
	}

	ctl.sendJSON(target, struct {
		Type   string          `json:"type"`
		FromID int             `json:"from_id"`
		SDP    json.RawMessage `json:"sdp,omitempty"`
		ICE    json.RawMessage `json:"ice,omitempty"`
	}{"signal", st.peerID, p.SDP, p.ICE})
}

func (ctl *SignalWSController) handlePeerConnected(st *connState) {
	roomID, ok := ctl.Registry.AckConnected(st.peerID)
	if !ok {
		return
	}
	ctl.broadcastMatchReady(roomID)
}

func (ctl *SignalWSController) broadcastMatchReady(roomID string) {
	recipients := ctl.Registry.CheckMatchReady(roomID)
	if len(recipients) == 0 {
		return
	}
	ready := struct {
		Type string `json:"type"`
	}{"match_ready"}
	for _, conn := range recipients {
		ctl.sendJSON(conn, ready)
	}
}
