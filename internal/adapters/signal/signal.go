package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"watchroom/internal/app/orch"
	"watchroom/internal/core"
	"watchroom/internal/domain"
)

var ErrBackpressure = errors.New("backpressure")

// WSConn is an indirection over *websocket.Conn to ease testing.
type WSConn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(mt int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

type SignalWSController struct {
	Orch       *orch.Orchestrator
	Flood      *FloodLimiter
	ReadLimit  int64
	PingPeriod time.Duration
}

func NewSignalWSController(o *orch.Orchestrator, flood *FloodLimiter, readLimit int64, pingPeriod time.Duration) *SignalWSController {
	return &SignalWSController{Orch: o, Flood: flood, ReadLimit: readLimit, PingPeriod: pingPeriod}
}

// clientState is the per-connection context handlers work against.
type clientState struct {
	id    core.ConnectionID
	conn  *WsSignalConn
	token domain.UserRef // cookie client token, identity fallback
}

type WsSignalConn struct {
	conn WSConn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	if ctl.ReadLimit > 0 {
		ws.SetReadLimit(ctl.ReadLimit)
	}

	// One ID per connection; the cookie token only identifies the browser.
	st := &clientState{
		id:    core.ConnectionID(uuid.NewString()),
		conn:  &WsSignalConn{conn: ws, send: make(chan core.Frame, 32)},
		token: domain.UserRef(c.GetString("client_token")),
	}
	log.Info().Str("module", "signal").Str("conn", string(st.id)).Msg("new WS connection")

	ctl.Orch.Connect(st.id, st.conn)

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, st.conn)
	go ctl.readPump(ctx, cancel, st)
}
