package signal

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"watchroom/internal/app"
	"watchroom/internal/core"
	"watchroom/internal/domain"
)

func (ctl *SignalWSController) handleRequestRoom(st *clientState, data []byte) {
	type requestPayload struct {
		Type     string   `json:"type"`
		MaxUsers int      `json:"max_users"`
		Password string   `json:"password"`
		Tags     []string `json:"tags"`
	}
	var p requestPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad request_room payload")
		ctl.sendError(st.conn, "bad_payload")
		return
	}
	if p.MaxUsers < 0 {
		p.MaxUsers = 0
	}

	name := ctl.Orch.RequestRoom(st.id, domain.Options{
		MaxUsers: p.MaxUsers,
		Password: p.Password,
		Tags:     p.Tags,
	})
	resp := struct {
		Type    string          `json:"type"`
		Success bool            `json:"success"`
		Room    domain.RoomName `json:"room"`
	}{
		"room_created",
		true,
		name,
	}
	ctl.sendJSON(st.conn, resp)
}

func (ctl *SignalWSController) handleEnterRoom(st *clientState, data []byte) {
	type enterPayload struct {
		Type     string `json:"type"`
		UserID   string `json:"user_id"`
		Room     string `json:"room"`
		Password string `json:"password,omitempty"`
	}
	var p enterPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad enter_room payload")
		ctl.sendError(st.conn, "bad_payload")
		return
	}
	if p.Room == "" {
		ctl.sendError(st.conn, "bad_payload")
		return
	}
	ref := domain.UserRef(p.UserID)
	if ref == "" {
		ref = st.token
	}

	users, err := ctl.Orch.EnterRoom(st.id, ref, domain.RoomName(p.Room), p.Password)
	type stateResp struct {
		Type    string          `json:"type"`
		Success bool            `json:"success"`
		Room    domain.RoomName `json:"room"`
		Message string          `json:"message,omitempty"`
		Users   []core.UserDTO  `json:"users,omitempty"`
	}
	if err != nil {
		ctl.sendJSON(st.conn, stateResp{
			Type:    "room_state",
			Success: false,
			Room:    domain.RoomName(p.Room),
			Message: joinErrorCode(err),
		})
		return
	}
	ctl.sendJSON(st.conn, stateResp{
		Type:    "room_state",
		Success: true,
		Room:    domain.RoomName(p.Room),
		Users:   users,
	})
}

func joinErrorCode(err error) string {
	switch {
	case errors.Is(err, app.ErrRoomFull):
		return "room_full"
	case errors.Is(err, app.ErrBadPassword):
		return "bad_password"
	default:
		return "join_failed"
	}
}

// handleLeaveRoom drops membership without tearing the connection down.
// No direct reply; the presence broadcasts are the acknowledgement.
func (ctl *SignalWSController) handleLeaveRoom(st *clientState) {
	log.Info().Str("module", "signal").Str("conn", string(st.id)).Msg("leave")
	ctl.Orch.Leave(st.id)
}
