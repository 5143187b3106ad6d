package core

import (
	"context"

	"watchroom/internal/domain"
)

// Frame is an encoded outbound payload, ready for the wire.
type Frame []byte

// ConnectionID identifies one live connection. Assigned by the transport
// adapter, never by clients.
type ConnectionID string

// SignalConnection abstracts the per-connection messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// UserDTO is a read-only member view for replies and presence lists
// (no transport fields).
type UserDTO struct {
	Ref         domain.UserRef `json:"user_id"`
	DisplayName string         `json:"display_name"`
}

// RoomInfo is one entry of the public room listing.
type RoomInfo struct {
	Name        domain.RoomName `json:"name"`
	UserCount   int             `json:"user_count"`
	MaxUsers    int             `json:"max_users,omitempty"`
	HasPassword bool            `json:"has_password"`
	Tags        []string        `json:"tags"`
}

// IdentityResolver looks up a display name in the external account service.
// Failures degrade to a fallback label; they never abort an operation.
type IdentityResolver interface {
	ResolveDisplayName(ctx context.Context, ref domain.UserRef) (string, error)
}

// History persists chat lines. Fire-and-forget from the coordinator's
// point of view; errors are logged, never surfaced.
type History interface {
	Append(ctx context.Context, room domain.RoomName, ref domain.UserRef, text string) error
}
