package signal

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/openclass/classroom/internal/core"
)

func (ctl *Controller) handleJoinRoom(ctx context.Context, id core.ConnID, c *wsConn, data []byte) {
	type joinPayload struct {
		Type   string `json:"type"`
		RoomID string `json:"roomId"`
		UserID string `json:"userId"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.sendError(c, "Invalid join payload.")
		return
	}
	if p.RoomID == "" || p.UserID == "" {
		ctl.sendError(c, "Invalid join payload.")
		return
	}
	if !ctl.joinLimiter.Allow(id) {
		log.Warn().Str("module", "signal").Str("conn", string(id)).Msg("join rate limited")
		ctl.sendError(c, "Too many join attempts.")
		return
	}

	log.Info().Str("module", "signal").Str("conn", string(id)).Str("room", p.RoomID).Msg("join-room")

	lookupCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()
	if err := ctl.Coord.Join(lookupCtx, id, p.RoomID, p.UserID); err != nil {
		// The coordinator already notified the connection.
		log.Debug().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("join failed")
	}
}
