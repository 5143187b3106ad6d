package orch

import (
	"watchroom/internal/core"
)

// SyncTime relays a playback position to the rest of the room. Only the
// controller may drive it; anyone else is dropped silently with no state
// change and no broadcast.
func (o *Orchestrator) SyncTime(id core.ConnectionID, t float64) {
	o.mu.Lock()
	s, ok := o.Registry.Find(id)
	if !ok || !s.IsController {
		o.mu.Unlock()
		return
	}
	s.Playback.Time = t
	room := s.Room
	o.mu.Unlock()
	o.broadcastRoom(room, id, syncTimeEvent{Type: "sync_time", Time: t})
}

// TogglePlayPause relays the play/pause flip, controller-gated like SyncTime.
func (o *Orchestrator) TogglePlayPause(id core.ConnectionID, playing bool) {
	o.mu.Lock()
	s, ok := o.Registry.Find(id)
	if !ok || !s.IsController {
		o.mu.Unlock()
		return
	}
	s.Playback.Playing = playing
	room := s.Room
	o.mu.Unlock()
	o.broadcastRoom(room, id, togglePlayEvent{Type: "toggle_play_pause", Playing: playing})
}
