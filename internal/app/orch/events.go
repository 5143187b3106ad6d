package orch

import (
	"watchroom/internal/core"
	"watchroom/internal/domain"
)

// Outbound envelopes. The type field is the dispatch key on the client.

type messageEvent struct {
	Type        string         `json:"type"`
	Ref         domain.UserRef `json:"user_id,omitempty"`
	DisplayName string         `json:"display_name"`
	Text        string         `json:"text"`
	Time        int64          `json:"time"`
}

type userListEvent struct {
	Type  string         `json:"type"`
	Users []core.UserDTO `json:"users"`
}

type roomListEvent struct {
	Type  string          `json:"type"`
	Rooms []core.RoomInfo `json:"rooms"`
}

type activityEvent struct {
	Type string          `json:"type"`
	Ref  *domain.UserRef `json:"user_id"`
}

type controllerEvent struct {
	Type string `json:"type"`
}

type syncTimeEvent struct {
	Type string  `json:"type"`
	Time float64 `json:"time"`
}

type togglePlayEvent struct {
	Type    string `json:"type"`
	Playing bool   `json:"playing"`
}
