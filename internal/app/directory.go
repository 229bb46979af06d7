package app

import "github.com/openclass/classroom/internal/core"

// Directory maps a room id to its registered host connection, if any.
// An entry must always point at a live connection; the Coordinator
// removes it the moment that connection disconnects or changes rooms.
// Like Registry, it is owned and serialized by the Coordinator.
type Directory struct {
	hosts map[string]core.ConnID
}

func NewDirectory() *Directory {
	return &Directory{hosts: make(map[string]core.ConnID)}
}

func (d *Directory) Host(roomID string) (core.ConnID, bool) {
	id, ok := d.hosts[roomID]
	return id, ok
}

func (d *Directory) SetHost(roomID string, id core.ConnID) {
	d.hosts[roomID] = id
}

func (d *Directory) Remove(roomID string) {
	delete(d.hosts, roomID)
}

func (d *Directory) Len() int {
	return len(d.hosts)
}
