package history

import (
	"context"

	"watchroom/internal/domain"
)

// Noop is used when history persistence is disabled.
type Noop struct{}

func (Noop) Append(context.Context, domain.RoomName, domain.UserRef, string) error { return nil }
