// Package app holds the live-class session coordination core: who is
// connected to which room, which connection hosts it, and how WebRTC
// handshake messages are relayed between host and viewers. Media never
// passes through here.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/openclass/classroom/internal/core"
	"github.com/openclass/classroom/internal/domain"
)

// ErrConnectionGone reports a Join whose connection disconnected while
// the membership lookup was in flight. No state is mutated in that case.
var ErrConnectionGone = errors.New("connection gone")

type pendingViewer struct {
	id   core.ConnID
	name string
}

// Coordinator is the single owner of the connection registry and the
// room directory. Every mutation of either table goes through its
// mutex, so two concurrent joins can never race to conflicting host
// state for the same room. Collaborator lookups happen before the lock
// is taken; the connection's liveness is re-checked afterwards.
type Coordinator struct {
	mu        sync.Mutex
	conns     map[core.ConnID]core.SignalConnection
	registry  *Registry
	directory *Directory
	// Viewers that joined before any host registered, flushed as
	// user-joined notifications when one does.
	pending map[string][]pendingViewer

	rooms core.RoomSource
	users core.UserSource
}

func NewCoordinator(rooms core.RoomSource, users core.UserSource) *Coordinator {
	return &Coordinator{
		conns:     make(map[core.ConnID]core.SignalConnection),
		registry:  NewRegistry(),
		directory: NewDirectory(),
		pending:   make(map[string][]pendingViewer),
		rooms:     rooms,
		users:     users,
	}
}

// Attach records a freshly connected transport. Must be called before
// the connection's first Join; Disconnect is its inverse.
func (c *Coordinator) Attach(id core.ConnID, conn core.SignalConnection) {
	c.mu.Lock()
	c.conns[id] = conn
	c.mu.Unlock()
	log.Info().Str("module", "app.coordinator").Str("conn", string(id)).Msg("connection attached")
}

// Join resolves the room through the membership source, registers the
// connection and assigns its role. The creator of the room becomes the
// host; everyone else is a viewer. The joining connection always
// receives a role-assignment reply; the host (if registered) is told
// about new viewers.
func (c *Coordinator) Join(ctx context.Context, id core.ConnID, roomID, identity string) error {
	room, err := c.rooms.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Error().Str("module", "app.coordinator").Str("room", roomID).Msg("live class not found")
			c.notify(id, core.ErrorEvent{Type: core.EventError, Message: "Live class not found."})
		} else {
			log.Error().Err(err).Str("module", "app.coordinator").Str("room", roomID).Msg("membership lookup failed")
			c.notify(id, core.ErrorEvent{Type: core.EventError, Message: "Server error during joining."})
		}
		return err
	}

	name, err := c.users.GetDisplayName(ctx, identity)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			name = "Unknown User"
		} else {
			log.Error().Err(err).Str("module", "app.coordinator").Str("user", identity).Msg("display name lookup failed")
			c.notify(id, core.ErrorEvent{Type: core.EventError, Message: "Server error during joining."})
			return err
		}
	}

	isHost := identity == room.CreatorID

	c.mu.Lock()
	if _, live := c.conns[id]; !live {
		// Disconnected while the lookup was in flight; registering now
		// would leave a ghost entry behind.
		c.mu.Unlock()
		return ErrConnectionGone
	}

	// A rejoin overwrites the prior registration. If this connection
	// was a room's registered host, free that slot first so the
	// directory never points at a non-host entry.
	if prev, ok := c.registry.Get(id); ok {
		if prev.IsHost {
			if h, ok := c.directory.Host(prev.RoomID); ok && h == id {
				c.directory.Remove(prev.RoomID)
			}
		} else {
			c.dropPendingLocked(prev.RoomID, id)
		}
	}
	c.registry.Put(id, Entry{RoomID: roomID, Identity: identity, IsHost: isHost})

	var demoted core.ConnID
	var flush []pendingViewer
	var hostID core.ConnID
	hostKnown := false

	if isHost {
		if old, ok := c.directory.Host(roomID); ok && old != id {
			// Reconnect race: last host registration wins, the
			// displaced connection is demoted to a viewer entry.
			if e, ok := c.registry.Get(old); ok {
				e.IsHost = false
				c.registry.Put(old, e)
			}
			demoted = old
		}
		c.directory.SetHost(roomID, id)
		flush = c.pending[roomID]
		delete(c.pending, roomID)
	} else {
		if h, ok := c.directory.Host(roomID); ok {
			hostID = h
			hostKnown = true
		} else {
			c.queuePendingLocked(roomID, id, name)
		}
	}
	c.mu.Unlock()

	c.notify(id, core.RoleAssignment{Type: core.EventRoleAssignment, IsHost: isHost})
	if demoted != "" {
		c.notify(demoted, core.RoleAssignment{Type: core.EventRoleAssignment, IsHost: false})
	}
	if isHost {
		for _, p := range flush {
			c.notify(id, core.UserJoined{Type: core.EventUserJoined, ConnID: p.id, Username: p.name})
		}
		log.Info().Str("module", "app.coordinator").Str("room", roomID).Str("conn", string(id)).Msg("host registered")
	} else if hostKnown {
		c.notify(hostID, core.UserJoined{Type: core.EventUserJoined, ConnID: id, Username: name})
	}
	log.Info().Str("module", "app.coordinator").
		Str("user", identity).Str("room", roomID).Bool("host", isHost).
		Msg("joined live class")
	return nil
}

// Relay forwards a handshake payload verbatim to the target connection,
// tagged with the sender's id. An empty target routes to the sender's
// room host (viewers sending ICE candidates before they learn the
// host's id). Relays to vanished targets or host-less rooms are
// silently dropped; signaling is best-effort during teardown races.
func (c *Coordinator) Relay(kind core.SignalKind, sender, target core.ConnID, payload json.RawMessage) {
	c.mu.Lock()
	if target == "" {
		entry, ok := c.registry.Get(sender)
		if !ok {
			c.mu.Unlock()
			return
		}
		h, ok := c.directory.Host(entry.RoomID)
		if !ok {
			c.mu.Unlock()
			return
		}
		target = h
	}
	conn, ok := c.conns[target]
	c.mu.Unlock()
	if !ok {
		log.Debug().Str("module", "app.coordinator").Str("target", string(target)).Msg("relay target gone, dropped")
		return
	}

	var ev any
	switch kind {
	case core.KindOffer:
		ev = core.OfferRelay{Type: core.EventOffer, SenderID: sender, Offer: payload}
	case core.KindAnswer:
		ev = core.AnswerRelay{Type: core.EventAnswer, SenderID: sender, Answer: payload}
	default:
		ev = core.CandidateRelay{Type: core.EventReceiveICECandidate, SenderID: sender, Candidate: payload}
	}
	c.send(conn, ev)
}

// Disconnect removes every relation involving the connection. If it was
// a registered host, the room's slot is freed and remaining viewers are
// told the host left. Safe to call more than once.
func (c *Coordinator) Disconnect(id core.ConnID) {
	c.mu.Lock()
	delete(c.conns, id)
	entry, ok := c.registry.Get(id)
	var viewers []core.ConnID
	if ok {
		c.registry.Remove(id)
		if entry.IsHost {
			if h, hok := c.directory.Host(entry.RoomID); hok && h == id {
				c.directory.Remove(entry.RoomID)
				viewers = c.registry.MembersOf(entry.RoomID)
			}
		} else {
			c.dropPendingLocked(entry.RoomID, id)
		}
	}
	c.mu.Unlock()

	if !ok {
		return
	}
	for _, v := range viewers {
		c.notify(v, core.HostLeft{Type: core.EventHostLeft})
	}
	if entry.IsHost {
		log.Info().Str("module", "app.coordinator").Str("room", entry.RoomID).Msg("host left live class")
	}
	log.Info().Str("module", "app.coordinator").Str("conn", string(id)).Msg("disconnected")
}

// MembersOfRoom is the room-scoped broadcast group: a snapshot of the
// connections currently joined to the room.
func (c *Coordinator) MembersOfRoom(roomID string) []core.ConnID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.MembersOf(roomID)
}

func (c *Coordinator) queuePendingLocked(roomID string, id core.ConnID, name string) {
	for i, p := range c.pending[roomID] {
		if p.id == id {
			c.pending[roomID][i].name = name
			return
		}
	}
	c.pending[roomID] = append(c.pending[roomID], pendingViewer{id: id, name: name})
}

func (c *Coordinator) dropPendingLocked(roomID string, id core.ConnID) {
	queue := c.pending[roomID]
	for i, p := range queue {
		if p.id == id {
			c.pending[roomID] = append(queue[:i], queue[i+1:]...)
			break
		}
	}
	if len(c.pending[roomID]) == 0 {
		delete(c.pending, roomID)
	}
}

func (c *Coordinator) notify(id core.ConnID, v any) {
	c.mu.Lock()
	conn, ok := c.conns[id]
	c.mu.Unlock()
	if !ok {
		return
	}
	c.send(conn, v)
}

func (c *Coordinator) send(conn core.SignalConnection, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.coordinator").Msg("marshal outbound event")
		return
	}
	if err := conn.TrySend(core.Frame(b)); err != nil {
		log.Debug().Err(err).Str("module", "app.coordinator").Msg("send dropped")
	}
}
