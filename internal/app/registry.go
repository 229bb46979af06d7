package app

import "github.com/openclass/classroom/internal/core"

// Entry is one connection's membership record: the room it joined, the
// identity it presented, and whether it is that room's host.
type Entry struct {
	RoomID   string
	Identity string
	IsHost   bool
}

// Registry is the inverse index of the room directory plus per-viewer
// metadata. It is exclusively owned by the Coordinator, which
// serializes every access; the type itself carries no lock.
type Registry struct {
	entries map[core.ConnID]Entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[core.ConnID]Entry)}
}

func (r *Registry) Put(id core.ConnID, e Entry) {
	r.entries[id] = e
}

func (r *Registry) Get(id core.ConnID) (Entry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

func (r *Registry) Remove(id core.ConnID) {
	delete(r.entries, id)
}

func (r *Registry) Len() int {
	return len(r.entries)
}

// MembersOf returns the connections currently joined to a room.
func (r *Registry) MembersOf(roomID string) []core.ConnID {
	out := make([]core.ConnID, 0, len(r.entries))
	for id, e := range r.entries {
		if e.RoomID == roomID {
			out = append(out, id)
		}
	}
	return out
}
