package app

import "errors"

// Protocol errors carried back to the originating connection as an "error"
// message. The error text is the wire code.
var (
	ErrRoomIDRequired    = errors.New("room_id_required")
	ErrRoomNotFound      = errors.New("room_not_found")
	ErrTopologyMismatch  = errors.New("topology_mismatch")
	ErrRoomUnavailable   = errors.New("room_unavailable")
	ErrHostAlreadyExists = errors.New("host_already_exists")
	ErrTargetIDRequired  = errors.New("target_id_required")
	ErrCrossRoomSignal   = errors.New("cross_room_signal_blocked")
)
