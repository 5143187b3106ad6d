package orch

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"watchroom/internal/core"
	"watchroom/internal/domain"
)

const historyTimeout = 3 * time.Second

// Message echoes a chat line to the whole room, sender included, and
// appends it to history without waiting for the write.
func (o *Orchestrator) Message(id core.ConnectionID, text string) {
	o.mu.Lock()
	s, ok := o.Registry.Find(id)
	var room domain.RoomName
	var ref domain.UserRef
	if ok {
		room, ref = s.Room, s.User
	}
	o.mu.Unlock()
	if !ok {
		return
	}

	o.broadcastRoom(room, "", messageEvent{
		Type:        "message",
		Ref:         ref,
		DisplayName: o.displayName(ref),
		Text:        text,
		Time:        time.Now().Unix(),
	})

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
		defer cancel()
		if err := o.History.Append(ctx, room, ref, text); err != nil {
			log.Warn().Err(err).Str("module", "orch").Str("room", string(room)).Msg("history append failed")
		}
	}()
}

// Activity relays a typing indicator to everyone else in the room.
// A nil ref clears the indicator.
func (o *Orchestrator) Activity(id core.ConnectionID, ref *domain.UserRef) {
	o.mu.Lock()
	s, ok := o.Registry.Find(id)
	var room domain.RoomName
	if ok {
		room = s.Room
	}
	o.mu.Unlock()
	if !ok {
		return
	}
	o.broadcastRoom(room, id, activityEvent{Type: "activity", Ref: ref})
}
