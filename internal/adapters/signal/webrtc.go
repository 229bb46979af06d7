package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/openclass/classroom/internal/core"
)

// Relay handlers. Payloads are opaque: offers, answers and candidates
// pass through as raw JSON, tagged with the sender's connection id.

func (ctl *Controller) handleOffer(id core.ConnID, c *wsConn, data []byte) {
	type offerPayload struct {
		Type     string          `json:"type"`
		TargetID string          `json:"targetId"`
		Offer    json.RawMessage `json:"offer"`
	}
	var p offerPayload
	if err := json.Unmarshal(data, &p); err != nil || p.TargetID == "" || len(p.Offer) == 0 {
		log.Error().Str("module", "signal").Msg("bad offer payload")
		ctl.sendError(c, "Invalid offer payload.")
		return
	}
	log.Debug().Str("module", "signal").Str("from", string(id)).Str("to", p.TargetID).Msg("offer")
	ctl.Coord.Relay(core.KindOffer, id, core.ConnID(p.TargetID), p.Offer)
}

func (ctl *Controller) handleAnswer(id core.ConnID, c *wsConn, data []byte) {
	type answerPayload struct {
		Type     string          `json:"type"`
		TargetID string          `json:"targetId"`
		Answer   json.RawMessage `json:"answer"`
	}
	var p answerPayload
	if err := json.Unmarshal(data, &p); err != nil || p.TargetID == "" || len(p.Answer) == 0 {
		log.Error().Str("module", "signal").Msg("bad answer payload")
		ctl.sendError(c, "Invalid answer payload.")
		return
	}
	log.Debug().Str("module", "signal").Str("from", string(id)).Str("to", p.TargetID).Msg("answer")
	ctl.Coord.Relay(core.KindAnswer, id, core.ConnID(p.TargetID), p.Answer)
}

// handleCandidate relays an ICE candidate. The target may be empty: a
// viewer that does not yet know the host's connection id addresses the
// room host implicitly.
func (ctl *Controller) handleCandidate(id core.ConnID, c *wsConn, data []byte) {
	type candidatePayload struct {
		Type      string          `json:"type"`
		TargetID  string          `json:"targetId"`
		Candidate json.RawMessage `json:"candidate"`
	}
	var p candidatePayload
	if err := json.Unmarshal(data, &p); err != nil || len(p.Candidate) == 0 {
		log.Error().Str("module", "signal").Msg("bad candidate payload")
		ctl.sendError(c, "Invalid candidate payload.")
		return
	}
	log.Debug().Str("module", "signal").Str("from", string(id)).Str("to", p.TargetID).Msg("ice candidate")
	ctl.Coord.Relay(core.KindICECandidate, id, core.ConnID(p.TargetID), p.Candidate)
}
