package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Beacon/internal/app"
	"github.com/dkeye/Beacon/internal/domain"
)

type lobbyFilterPayload struct {
	FilterTags []string `json:"filter_tags"`
}

func (ctl *SignalWSController) handleListLobbies(st *connState, data []byte) {
	var p lobbyFilterPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad list_lobbies payload")
		ctl.sendError(st, errInvalidJSON.Error())
		return
	}

	lobbies := ctl.Registry.Snapshot(app.NormalizeFilterTags(p.FilterTags))

	// lobby_list is kept for older clients; lobby_snapshot is the current
	// event and the only one sent on subscribe.
	ctl.sendJSON(st.conn, lobbyEvent{"lobby_list", lobbies})
	ctl.sendJSON(st.conn, lobbyEvent{"lobby_snapshot", lobbies})
}

func (ctl *SignalWSController) handleSubscribeLobbies(st *connState, data []byte) {
	var p lobbyFilterPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad subscribe_lobbies payload")
		ctl.sendError(st, errInvalidJSON.Error())
		return
	}

	lobbies := ctl.Registry.Subscribe(st.connID, st.conn, app.NormalizeFilterTags(p.FilterTags))
	ctl.sendJSON(st.conn, lobbyEvent{"lobby_snapshot", lobbies})
}

type lobbyEvent struct {
	Type    string                `json:"type"`
	Lobbies []domain.LobbySummary `json:"lobbies"`
}

// NotifyRoomChanged fans a lobby delta out to every subscriber. Deltas are
// computed under the registry lock; sends happen here, outside it, and one
// dead subscriber never blocks the rest.
func (ctl *SignalWSController) NotifyRoomChanged(roomID string) {
	for _, d := range ctl.Registry.RoomChangedDeltas(roomID) {
		if d.Upsert != nil {
			ctl.sendJSON(d.Conn, struct {
				Type   string               `json:"type"`
				Op     string               `json:"op"`
				RoomID string               `json:"room_id"`
				Lobby  *domain.LobbySummary `json:"lobby"`
			}{"lobby_delta", "upsert", d.RoomID, d.Upsert})
		} else {
			ctl.sendJSON(d.Conn, struct {
				Type   string `json:"type"`
				Op     string `json:"op"`
				RoomID string `json:"room_id"`
			}{"lobby_delta", "remove", d.RoomID})
		}
	}
}
