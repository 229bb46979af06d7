package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openclass/classroom/internal/core"
)

func TestRegistryPutGetRemove(t *testing.T) {
	r := NewRegistry()

	_, ok := r.Get("A")
	require.False(t, ok)

	r.Put("A", Entry{RoomID: "R1", Identity: "U1", IsHost: true})
	e, ok := r.Get("A")
	require.True(t, ok)
	require.Equal(t, "R1", e.RoomID)
	require.True(t, e.IsHost)

	// Overwrite, not append.
	r.Put("A", Entry{RoomID: "R2", Identity: "U1", IsHost: false})
	e, _ = r.Get("A")
	require.Equal(t, "R2", e.RoomID)
	require.False(t, e.IsHost)
	require.Equal(t, 1, r.Len())

	r.Remove("A")
	_, ok = r.Get("A")
	require.False(t, ok)
	r.Remove("A") // removing twice is fine
}

func TestRegistryMembersOf(t *testing.T) {
	r := NewRegistry()
	r.Put("A", Entry{RoomID: "R1", Identity: "U1", IsHost: true})
	r.Put("B", Entry{RoomID: "R1", Identity: "U2"})
	r.Put("C", Entry{RoomID: "R2", Identity: "U3"})

	members := r.MembersOf("R1")
	require.ElementsMatch(t, []core.ConnID{"A", "B"}, members)
	require.Empty(t, r.MembersOf("R9"))
}
