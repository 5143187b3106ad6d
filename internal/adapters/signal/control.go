package signal

func (ctl *SignalWSController) handlePing(st *clientState) {
	resp := struct {
		Type string `json:"type"`
	}{
		Type: "pong",
	}
	ctl.sendJSON(st.conn, resp)
}
