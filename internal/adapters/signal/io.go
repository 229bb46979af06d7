package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/openclass/classroom/internal/core"
)

const (
	writeWait     = 5 * time.Second
	lookupTimeout = 5 * time.Second

	joinLimit       = 5
	joinLimitWindow = 10 * time.Second
)

func (ctl *Controller) writePump(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(ctl.PingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug().Err(err).Str("module", "signal").Msg("writePump ping")
				return
			}
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *Controller) readPump(ctx context.Context, cancel context.CancelFunc, id core.ConnID, c *wsConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("conn", string(id)).Msg("readPump closing")
		cancel()
		ctl.Coord.Disconnect(id)
		ctl.joinLimiter.Forget(id)
		c.Close()
	}()

	pongWait := ctl.PingPeriod * 10 / 9
	c.conn.SetReadLimit(ctl.ReadLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Error().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("readPump read error")
				}
				return
			}
			ctl.handleEvent(ctx, id, c, data)
		}
	}
}

// handleEvent dispatches one inbound event. The event set is closed;
// anything else is rejected with an error event, never a teardown.
func (ctl *Controller) handleEvent(ctx context.Context, id core.ConnID, c *wsConn, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad json")
		ctl.sendError(c, "Invalid message.")
		return
	}

	switch env.Type {
	case core.EventJoinRoom:
		ctl.handleJoinRoom(ctx, id, c, data)
	case core.EventOffer:
		ctl.handleOffer(id, c, data)
	case core.EventAnswer:
		ctl.handleAnswer(id, c, data)
	case core.EventSendICECandidate:
		ctl.handleCandidate(id, c, data)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown event")
		ctl.sendError(c, "Unknown event.")
	}
}

func (ctl *Controller) sendError(c *wsConn, msg string) {
	b, err := json.Marshal(core.ErrorEvent{Type: core.EventError, Message: msg})
	if err != nil {
		return
	}
	_ = c.TrySend(core.Frame(b))
}
