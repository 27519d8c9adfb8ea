package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Beacon/internal/app"
	"github.com/dkeye/Beacon/internal/domain"
)

func (ctl *SignalWSController) handleJoin(st *connState, data []byte) {
	type joinPayload struct {
		RoomID       string   `json:"room_id"`
		IsHostIntent bool     `json:"is_host_intent"`
		Topology     string   `json:"topology"`
		Capacity     int      `json:"capacity"`
		Tags         []string `json:"tags"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.sendError(st, errInvalidJSON.Error())
		return
	}

	res, err := ctl.Registry.Join(app.JoinRequest{
		RoomID:     p.RoomID,
		HostIntent: p.IsHostIntent,
		Topology:   domain.ParseTopology(p.Topology),
		Capacity:   p.Capacity,
		Tags:       p.Tags,
		Conn:       st.conn,
	})
	if err != nil {
		ctl.sendError(st, err.Error())
		return
	}
	st.peerID = res.PeerID

	ctl.NotifyRoomChanged(p.RoomID)

	ctl.sendJSON(st.conn, struct {
		Type       string            `json:"type"`
		PeerID     int               `json:"peer_id"`
		HostID     int               `json:"host_id"`
		Topology   domain.Topology   `json:"topology"`
		Capacity   int               `json:"capacity"`
		ICEServers []json.RawMessage `json:"ice_servers"`
	}{"id_assigned", res.PeerID, res.HostID, res.Topology, res.Capacity, ctl.ICEServers})

	joined := struct {
		Type   string `json:"type"`
		PeerID int    `json:"peer_id"`
	}{"peer_joined", res.PeerID}
	for _, conn := range res.NotifyJoined {
		ctl.sendJSON(conn, joined)
	}

	if res.RoomFull {
		ctl.broadcastMatchReady(p.RoomID)
	}
}

// handleDisconnect reconciles registry state after the connection is gone and
// notifies whoever is left. Host departure closes the room outright.
func (ctl *SignalWSController) handleDisconnect(st *connState) {
	res, ok := ctl.Registry.Disconnect(st.peerID)
	if !ok {
		return
	}

	if res.HostLeft {
		closed := struct {
			Type string `json:"type"`
		}{"room_closed"}
		for _, conn := range res.Remaining {
			ctl.sendJSON(conn, closed)
		}
	} else {
		left := struct {
			Type   string `json:"type"`
			PeerID int    `json:"peer_id"`
		}{"peer_left", res.PeerID}
		for _, conn := range res.Remaining {
			ctl.sendJSON(conn, left)
		}
	}

	ctl.NotifyRoomChanged(res.RoomID)
}
