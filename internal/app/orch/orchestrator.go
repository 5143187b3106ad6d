// Package orch is the event router: every inbound client event lands here,
// mutates the shared registry and directory under one lock, and fans the
// results back out to connections. Display names are resolved only after
// the lock is released.
package orch

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"watchroom/internal/app"
	"watchroom/internal/core"
	"watchroom/internal/domain"
)

// AdminName labels system-authored chat notices (join/leave/handoff).
const AdminName = "Admin"

const lookupTimeout = 2 * time.Second

type Orchestrator struct {
	Registry *app.Registry
	Rooms    *app.Directory
	Election *app.Election
	Identity core.IdentityResolver
	History  core.History

	// mu serializes every state mutation. Two near-simultaneous disconnects
	// must not both elect a controller.
	mu sync.Mutex
}

// Connect attaches a fresh connection and pushes it the current room
// listing so the lobby is browsable before any join.
func (o *Orchestrator) Connect(id core.ConnectionID, conn core.SignalConnection) {
	o.Registry.Attach(id, conn)
	o.sendJSON(conn, roomListEvent{Type: "room_list", Rooms: o.Rooms.Snapshot()})
}

// Disconnect is the transport telling us the connection is gone. Treated
// as an implicit leave; unknown connections are a no-op.
func (o *Orchestrator) Disconnect(id core.ConnectionID) {
	o.Leave(id)
	o.Registry.Detach(id)
}

// RoomList returns the current public listing.
func (o *Orchestrator) RoomList() []core.RoomInfo {
	return o.Rooms.Snapshot()
}

func (o *Orchestrator) sendJSON(conn core.SignalConnection, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("marshal outbound")
		return
	}
	if err := conn.TrySend(core.Frame(b)); err != nil {
		log.Debug().Err(err).Str("module", "orch").Msg("send dropped")
	}
}

func (o *Orchestrator) broadcastRoom(room domain.RoomName, except core.ConnectionID, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("marshal broadcast")
		return
	}
	for _, snap := range o.Registry.ConnsByRoom(room) {
		if snap.ID == except {
			continue
		}
		if err := snap.Conn.TrySend(core.Frame(b)); err != nil {
			log.Debug().Err(err).Str("module", "orch").Str("conn", string(snap.ID)).Msg("broadcast dropped")
		}
	}
}

func (o *Orchestrator) broadcastAll(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("marshal broadcast")
		return
	}
	for _, snap := range o.Registry.AllConns() {
		if err := snap.Conn.TrySend(core.Frame(b)); err != nil {
			log.Debug().Err(err).Str("module", "orch").Str("conn", string(snap.ID)).Msg("broadcast dropped")
		}
	}
}

// displayName resolves a user's label best-effort. On any failure the raw
// ref is used so the operation still goes through.
func (o *Orchestrator) displayName(ref domain.UserRef) string {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()
	name, err := o.Identity.ResolveDisplayName(ctx, ref)
	if err != nil || name == "" {
		if err != nil {
			log.Warn().Err(err).Str("module", "orch").Str("user", string(ref)).Msg("display name lookup failed")
		}
		return string(ref)
	}
	return name
}

func (o *Orchestrator) resolveUsers(refs []domain.UserRef) []core.UserDTO {
	users := make([]core.UserDTO, 0, len(refs))
	for _, ref := range refs {
		users = append(users, core.UserDTO{Ref: ref, DisplayName: o.displayName(ref)})
	}
	return users
}

func (o *Orchestrator) notifyController(id core.ConnectionID) {
	conn, ok := o.Registry.ConnOf(id)
	if !ok {
		return
	}
	o.sendJSON(conn, controllerEvent{Type: "controller"})
}

func (o *Orchestrator) adminMessage(room domain.RoomName, text string) {
	o.broadcastRoom(room, "", messageEvent{
		Type:        "message",
		DisplayName: AdminName,
		Text:        text,
		Time:        time.Now().Unix(),
	})
}
