package orch

import (
	"github.com/rs/zerolog/log"

	"watchroom/internal/core"
	"watchroom/internal/domain"
)

// RequestRoom allocates a fresh room name and stores its options. The name
// stays allocatable until somebody actually joins; that is the source
// contract, not a bug.
func (o *Orchestrator) RequestRoom(id core.ConnectionID, opts domain.Options) domain.RoomName {
	o.mu.Lock()
	name := o.Rooms.AllocateName()
	o.Rooms.Configure(name, opts)
	o.mu.Unlock()
	log.Info().Str("module", "orch").Str("conn", string(id)).Str("room", string(name)).Msg("room allocated")
	return name
}

// EnterRoom validates the join, registers the session, runs the election
// and emits the presence broadcasts. A failed gate leaves all state
// untouched. The returned list is the reply payload for the joiner.
func (o *Orchestrator) EnterRoom(id core.ConnectionID, ref domain.UserRef, room domain.RoomName, password string) ([]core.UserDTO, error) {
	o.mu.Lock()
	if err := o.Rooms.CanJoin(room, password); err != nil {
		o.mu.Unlock()
		log.Info().Err(err).Str("module", "orch").Str("conn", string(id)).Str("room", string(room)).Msg("join rejected")
		return nil, err
	}
	var left leaveOutcome
	if prev, ok := o.Registry.Find(id); ok && prev.Room != room {
		left = o.leaveLocked(id)
	}
	s := o.Registry.Register(id, ref, room)
	elected := o.Election.OnJoin(s)
	refs := o.memberRefsLocked(room)
	rooms := o.Rooms.Snapshot()
	o.mu.Unlock()

	o.announceLeave(left)

	if elected {
		o.notifyController(id)
	}
	name := o.displayName(ref)
	users := o.resolveUsers(refs)
	o.adminMessage(room, name+" joined the room")
	o.broadcastRoom(room, "", userListEvent{Type: "user_list", Users: users})
	o.broadcastAll(roomListEvent{Type: "room_list", Rooms: rooms})
	log.Info().Str("module", "orch").Str("conn", string(id)).Str("room", string(room)).Bool("controller", elected).Msg("joined room")
	return users, nil
}

// Leave removes the session and emits the presence broadcasts. Unknown
// connections are a silent no-op: a disconnect racing an explicit leave is
// a normal path.
func (o *Orchestrator) Leave(id core.ConnectionID) {
	o.mu.Lock()
	out := o.leaveLocked(id)
	o.mu.Unlock()
	o.announceLeave(out)
}

// leaveOutcome carries everything announceLeave needs so the lock can be
// dropped before any identity lookup.
type leaveOutcome struct {
	ok           bool
	room         domain.RoomName
	ref          domain.UserRef
	successor    core.ConnectionID
	successorRef domain.UserRef
	members      []domain.UserRef
	rooms        []core.RoomInfo
}

func (o *Orchestrator) leaveLocked(id core.ConnectionID) leaveOutcome {
	s := o.Registry.Remove(id)
	if s == nil {
		return leaveOutcome{}
	}
	out := leaveOutcome{ok: true, room: s.Room, ref: s.User}
	if next, elected := o.Election.OnLeave(s); elected {
		out.successor = next.Conn
		out.successorRef = next.User
	}
	if o.Registry.CountByRoom(s.Room) == 0 {
		o.Rooms.OnEmptied(s.Room)
	}
	out.members = o.memberRefsLocked(s.Room)
	out.rooms = o.Rooms.Snapshot()
	return out
}

func (o *Orchestrator) announceLeave(out leaveOutcome) {
	if !out.ok {
		return
	}
	o.adminMessage(out.room, o.displayName(out.ref)+" left the room")
	if out.successor != "" {
		o.adminMessage(out.room, o.displayName(out.successorRef)+" is now the controller")
		o.notifyController(out.successor)
	}
	if len(out.members) > 0 {
		o.broadcastRoom(out.room, "", userListEvent{Type: "user_list", Users: o.resolveUsers(out.members)})
	}
	o.broadcastAll(roomListEvent{Type: "room_list", Rooms: out.rooms})
	log.Info().Str("module", "orch").Str("room", string(out.room)).Str("user", string(out.ref)).Msg("left room")
}

func (o *Orchestrator) memberRefsLocked(room domain.RoomName) []domain.UserRef {
	sessions := o.Registry.ListByRoom(room)
	refs := make([]domain.UserRef, 0, len(sessions))
	for _, s := range sessions {
		refs = append(refs, s.User)
	}
	return refs
}
