package config

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"
)

// DefaultICEServers is used whenever ICE_SERVERS_JSON is absent or malformed.
// Startup never fails on bad ICE configuration.
var DefaultICEServers = []json.RawMessage{
	json.RawMessage(`{"urls":["stun:stun.l.google.com:19302"]}`),
}

// ParseICEServers parses an ICE_SERVERS_JSON value into opaque server
// descriptors. Entries are not interpreted beyond requiring a JSON array of
// objects; the signaling layer forwards them to clients verbatim.
func ParseICEServers(raw string) []json.RawMessage {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		log.Info().Str("module", "config").Msg("using default ICE servers configuration")
		return DefaultICEServers
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		log.Warn().Err(err).Str("module", "config").Msg("invalid ICE_SERVERS_JSON, falling back to default ICE servers")
		return DefaultICEServers
	}

	valid := make([]json.RawMessage, 0, len(entries))
	for _, entry := range entries {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(entry, &obj); err != nil || obj == nil {
			continue
		}
		valid = append(valid, entry)
	}
	if len(valid) == 0 {
		log.Warn().Str("module", "config").Msg("ICE_SERVERS_JSON contains no object entries, using defaults")
		return DefaultICEServers
	}

	log.Info().Str("module", "config").Int("entries", len(valid)).Msg("loaded ICE server entries from environment")
	return valid
}
