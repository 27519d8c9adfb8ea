package domain

import "time"

// Frame is a raw wire payload.
type Frame []byte

// SignalConnection abstracts the messaging transport a session fans out to.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// PeerSession binds an assigned peer ID to its transport endpoint and room.
type PeerSession struct {
	PeerID   int
	Conn     SignalConnection
	RoomID   string
	JoinedAt time.Time
}

// LobbySubscription is a persistent lobby filter for one connection.
// It is not tied to peer identity: a connection may subscribe before joining.
type LobbySubscription struct {
	ConnectionID int
	Conn         SignalConnection
	FilterTags   map[string]struct{}
}
