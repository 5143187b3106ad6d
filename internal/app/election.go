package app

import (
	"github.com/rs/zerolog/log"
)

// Election owns controller slot transitions. Succession is strictly join
// order: the longest-present remaining member takes the slot. This is a
// policy constant, not an algorithm to tune.
type Election struct {
	reg *Registry
	dir *Directory
}

func NewElection(reg *Registry, dir *Directory) *Election {
	return &Election{reg: reg, dir: dir}
}

// OnJoin hands the slot to the joiner when it is empty, or back to a
// connection that still holds it from a previous visit. Reports whether
// the joiner ended up controller.
func (e *Election) OnJoin(s *Session) bool {
	cur, ok := e.dir.ControllerOf(s.Room)
	if ok && cur != s.Conn {
		return false
	}
	e.dir.SetController(s.Room, s.Conn)
	s.IsController = true
	log.Info().Str("module", "app.election").Str("room", string(s.Room)).
		Str("conn", string(s.Conn)).Msg("controller assigned")
	return true
}

// OnLeave re-elects after a member left. Call it with the already-removed
// session; it returns the successor when the leaver held the slot and
// other members remain.
func (e *Election) OnLeave(left *Session) (*Session, bool) {
	cur, ok := e.dir.ControllerOf(left.Room)
	if !ok || cur != left.Conn {
		return nil, false
	}
	members := e.reg.ListByRoom(left.Room)
	if len(members) == 0 {
		e.dir.ClearController(left.Room)
		log.Info().Str("module", "app.election").Str("room", string(left.Room)).Msg("controller slot cleared")
		return nil, false
	}
	next := members[0]
	e.dir.SetController(left.Room, next.Conn)
	next.IsController = true
	log.Info().Str("module", "app.election").Str("room", string(left.Room)).
		Str("conn", string(next.Conn)).Msg("controller handed over")
	return next, true
}
