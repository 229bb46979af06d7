package signal

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openclass/classroom/internal/app"
	"github.com/openclass/classroom/internal/core"
	"github.com/openclass/classroom/internal/domain"
)

type staticRooms map[string]core.RoomView

func (s staticRooms) GetRoom(ctx context.Context, roomID string) (core.RoomView, error) {
	r, ok := s[roomID]
	if !ok {
		return core.RoomView{}, fmt.Errorf("live class %s: %w", roomID, domain.ErrNotFound)
	}
	return r, nil
}

type staticUsers map[string]string

func (s staticUsers) GetDisplayName(ctx context.Context, userID string) (string, error) {
	name, ok := s[userID]
	if !ok {
		return "", fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	return name, nil
}

func newTestController() *Controller {
	coord := app.NewCoordinator(
		staticRooms{"R1": {ID: "R1", CreatorID: "U1"}},
		staticUsers{"U1": "Alice", "U2": "Bob"},
	)
	return NewController(coord, 32768, 54*time.Second)
}

func newTestConn() *wsConn {
	return &wsConn{send: make(chan core.Frame, 32)}
}

func drain(t *testing.T, c *wsConn) []map[string]any {
	t.Helper()
	var out []map[string]any
	for {
		select {
		case f := <-c.send:
			var m map[string]any
			require.NoError(t, json.Unmarshal(f, &m))
			out = append(out, m)
		default:
			return out
		}
	}
}

func TestHandleEventJoinRoom(t *testing.T) {
	ctl := newTestController()
	conn := newTestConn()
	ctl.Coord.Attach("A", conn)

	ctl.handleEvent(context.Background(), "A", conn,
		[]byte(`{"type":"join-room","roomId":"R1","userId":"U1"}`))

	events := drain(t, conn)
	require.Len(t, events, 1)
	require.Equal(t, "role-assignment", events[0]["type"])
	require.Equal(t, true, events[0]["isHost"])
}

func TestHandleEventRelaysOffer(t *testing.T) {
	ctl := newTestController()
	host := newTestConn()
	viewer := newTestConn()
	ctl.Coord.Attach("A", host)
	ctl.Coord.Attach("B", viewer)
	ctl.handleEvent(context.Background(), "A", host,
		[]byte(`{"type":"join-room","roomId":"R1","userId":"U1"}`))
	ctl.handleEvent(context.Background(), "B", viewer,
		[]byte(`{"type":"join-room","roomId":"R1","userId":"U2"}`))
	drain(t, host)
	drain(t, viewer)

	ctl.handleEvent(context.Background(), "A", host,
		[]byte(`{"type":"offer","targetId":"B","offer":{"sdp":"v=0","type":"offer"}}`))

	events := drain(t, viewer)
	require.Len(t, events, 1)
	require.Equal(t, "offer", events[0]["type"])
	require.Equal(t, "A", events[0]["senderId"])
}

func TestHandleEventMalformedJSON(t *testing.T) {
	ctl := newTestController()
	conn := newTestConn()
	ctl.Coord.Attach("A", conn)

	ctl.handleEvent(context.Background(), "A", conn, []byte(`{nope`))

	events := drain(t, conn)
	require.Len(t, events, 1)
	require.Equal(t, "error", events[0]["type"])
}

func TestHandleEventUnknownType(t *testing.T) {
	ctl := newTestController()
	conn := newTestConn()
	ctl.Coord.Attach("A", conn)

	ctl.handleEvent(context.Background(), "A", conn, []byte(`{"type":"speak"}`))

	events := drain(t, conn)
	require.Len(t, events, 1)
	require.Equal(t, "error", events[0]["type"])
}

func TestHandleEventJoinMissingFields(t *testing.T) {
	ctl := newTestController()
	conn := newTestConn()
	ctl.Coord.Attach("A", conn)

	ctl.handleEvent(context.Background(), "A", conn, []byte(`{"type":"join-room","roomId":"R1"}`))

	events := drain(t, conn)
	require.Len(t, events, 1)
	require.Equal(t, "error", events[0]["type"])
}

func TestHandleEventOfferWithoutTarget(t *testing.T) {
	ctl := newTestController()
	conn := newTestConn()
	ctl.Coord.Attach("A", conn)

	ctl.handleEvent(context.Background(), "A", conn, []byte(`{"type":"offer","offer":{}}`))

	events := drain(t, conn)
	require.Len(t, events, 1)
	require.Equal(t, "error", events[0]["type"])
}

func TestTrySendBackpressure(t *testing.T) {
	conn := &wsConn{send: make(chan core.Frame, 1)}
	require.NoError(t, conn.TrySend(core.Frame(`{}`)))
	require.ErrorIs(t, conn.TrySend(core.Frame(`{}`)), ErrBackpressure)
}
