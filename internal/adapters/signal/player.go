package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleSyncTime(st *clientState, data []byte) {
	type syncPayload struct {
		Type string  `json:"type"`
		Time float64 `json:"time"`
	}
	var p syncPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad sync_time payload")
		return
	}
	ctl.Orch.SyncTime(st.id, p.Time)
}

func (ctl *SignalWSController) handleTogglePlayPause(st *clientState, data []byte) {
	type togglePayload struct {
		Type    string `json:"type"`
		Playing bool   `json:"playing"`
	}
	var p togglePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad toggle_play_pause payload")
		return
	}
	ctl.Orch.TogglePlayPause(st.id, p.Playing)
}
