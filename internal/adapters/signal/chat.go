package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"watchroom/internal/domain"
)

func (ctl *SignalWSController) handleMessage(st *clientState, data []byte) {
	type messagePayload struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	var p messagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad message payload")
		ctl.sendError(st.conn, "bad_payload")
		return
	}
	if p.Text == "" {
		return
	}
	if ctl.Flood != nil && !ctl.Flood.Allow(st.id) {
		log.Warn().Str("module", "signal").Str("conn", string(st.id)).Msg("message flood limited")
		ctl.sendError(st.conn, "rate_limited")
		return
	}
	ctl.Orch.Message(st.id, p.Text)
}

func (ctl *SignalWSController) handleActivity(st *clientState, data []byte) {
	type activityPayload struct {
		Type   string  `json:"type"`
		UserID *string `json:"user_id"`
	}
	var p activityPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad activity payload")
		ctl.sendError(st.conn, "bad_payload")
		return
	}
	var ref *domain.UserRef
	if p.UserID != nil {
		r := domain.UserRef(*p.UserID)
		ref = &r
	}
	ctl.Orch.Activity(st.id, ref)
}
