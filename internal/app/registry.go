package app

import (
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"watchroom/internal/core"
	"watchroom/internal/domain"
)

// Session is the coordinator's record of one live connection inside a room.
// Created on enter, destroyed on leave or disconnect.
type Session struct {
	Conn         core.ConnectionID
	User         domain.UserRef
	Room         domain.RoomName
	IsController bool
	Playback     domain.Playback

	seq uint64 // join order, drives controller succession
}

// Registry owns every live connection and every session. Connections exist
// before and after room membership; sessions only while a member.
type Registry struct {
	mu       sync.RWMutex
	conns    map[core.ConnectionID]core.SignalConnection
	sessions map[core.ConnectionID]*Session
	seq      uint64
}

func NewRegistry() *Registry {
	return &Registry{
		conns:    make(map[core.ConnectionID]core.SignalConnection),
		sessions: make(map[core.ConnectionID]*Session),
	}
}

func (r *Registry) Attach(id core.ConnectionID, conn core.SignalConnection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[id] = conn
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("attached connection")
}

func (r *Registry) Detach(id core.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, id)
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("detached connection")
}

func (r *Registry) ConnOf(id core.ConnectionID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conns[id]
	return c, ok
}

// Register replaces any prior session for the same connection. Always
// succeeds; the replacement takes a fresh slot at the back of the join order.
func (r *Registry) Register(id core.ConnectionID, ref domain.UserRef, room domain.RoomName) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	s := &Session{Conn: id, User: ref, Room: room, seq: r.seq}
	r.sessions[id] = s
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Str("room", string(room)).Msg("registered session")
	return s
}

// Remove returns the prior session, or nil for an unknown connection.
// Removing twice is a normal path, not an error.
func (r *Registry) Remove(id core.ConnectionID) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil
	}
	delete(r.sessions, id)
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Str("room", string(s.Room)).Msg("removed session")
	return s
}

func (r *Registry) Find(id core.ConnectionID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// ListByRoom returns the room's sessions in join order.
func (r *Registry) ListByRoom(room domain.RoomName) []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		if s.Room == room {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

func (r *Registry) CountByRoom(room domain.RoomName) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, s := range r.sessions {
		if s.Room == room {
			n++
		}
	}
	return n
}

// RoomActive reports whether at least one session references the room.
func (r *Registry) RoomActive(room domain.RoomName) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sessions {
		if s.Room == room {
			return true
		}
	}
	return false
}

// ActiveRooms returns every room name currently referenced by a session.
func (r *Registry) ActiveRooms() []domain.RoomName {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[domain.RoomName]struct{})
	out := make([]domain.RoomName, 0, len(r.sessions))
	for _, s := range r.sessions {
		if _, ok := seen[s.Room]; ok {
			continue
		}
		seen[s.Room] = struct{}{}
		out = append(out, s.Room)
	}
	return out
}

type ConnSnap struct {
	ID   core.ConnectionID
	Conn core.SignalConnection
}

// ConnsByRoom returns the live connections of the room's members.
func (r *Registry) ConnsByRoom(room domain.RoomName) []ConnSnap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ConnSnap, 0, len(r.sessions))
	for id, s := range r.sessions {
		if s.Room != room {
			continue
		}
		if c, ok := r.conns[id]; ok {
			out = append(out, ConnSnap{ID: id, Conn: c})
		}
	}
	return out
}

// AllConns returns every live connection, members and lobby alike.
func (r *Registry) AllConns() []ConnSnap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ConnSnap, 0, len(r.conns))
	for id, c := range r.conns {
		out = append(out, ConnSnap{ID: id, Conn: c})
	}
	return out
}
