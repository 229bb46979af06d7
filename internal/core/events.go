package core

import "encoding/json"

// Wire event names, a closed set. Inbound events are dispatched by the
// signal adapter; outbound events are emitted by the coordinator.
const (
	// inbound
	EventJoinRoom         = "join-room"
	EventOffer            = "offer"
	EventAnswer           = "answer"
	EventSendICECandidate = "send-ice-candidate"

	// outbound
	EventRoleAssignment      = "role-assignment"
	EventUserJoined          = "user-joined"
	EventReceiveICECandidate = "receive-ice-candidate"
	EventHostLeft            = "host-left"
	EventError               = "error"
)

// SignalKind tags a relayed handshake message.
type SignalKind int

const (
	KindOffer SignalKind = iota
	KindAnswer
	KindICECandidate
)

type RoleAssignment struct {
	Type   string `json:"type"`
	IsHost bool   `json:"isHost"`
}

type UserJoined struct {
	Type     string `json:"type"`
	ConnID   ConnID `json:"connId"`
	Username string `json:"username"`
}

type OfferRelay struct {
	Type     string          `json:"type"`
	SenderID ConnID          `json:"senderId"`
	Offer    json.RawMessage `json:"offer"`
}

type AnswerRelay struct {
	Type     string          `json:"type"`
	SenderID ConnID          `json:"senderId"`
	Answer   json.RawMessage `json:"answer"`
}

type CandidateRelay struct {
	Type      string          `json:"type"`
	SenderID  ConnID          `json:"senderId"`
	Candidate json.RawMessage `json:"candidate"`
}

type HostLeft struct {
	Type string `json:"type"`
}

type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
