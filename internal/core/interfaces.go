package core

import "context"

// Frame is a marshaled outbound event, ready for the wire.
type Frame []byte

// ConnID identifies one live signal connection. Assigned by the
// transport adapter on connect, never chosen by the client.
type ConnID string

// SignalConnection abstracts a system messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// RoomView is the slice of a live class the coordinator needs to
// decide host status and join eligibility. Read-only.
type RoomView struct {
	ID            string
	CreatorID     string
	AllowedEmails []string
}

// RoomSource is the authoritative membership record for rooms.
// GetRoom returns an error wrapping domain.ErrNotFound for unknown ids.
type RoomSource interface {
	GetRoom(ctx context.Context, roomID string) (RoomView, error)
}

// UserSource resolves a participant identity to a display name.
type UserSource interface {
	GetDisplayName(ctx context.Context, userID string) (string, error)
}
