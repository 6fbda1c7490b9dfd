package game

import "sync"

// World is the entity table that owns ship lifetime. The AI only ever holds
// EntityID handles into it and re-validates them on every use.
type World struct {
	Mu    sync.RWMutex
	Frame int64

	ships []*Ship
	index map[EntityID]int
}

// NewWorld returns an empty world.
func NewWorld() *World {
	return &World{index: make(map[EntityID]int)}
}

// Add inserts a ship, replacing any existing ship with the same ID.
func (w *World) Add(s *Ship) {
	if s == nil {
		return
	}
	if i, ok := w.index[s.ID]; ok {
		w.ships[i] = s
		return
	}
	w.index[s.ID] = len(w.ships)
	w.ships = append(w.ships, s)
}

// Remove deletes a ship while keeping the insertion order of the rest.
func (w *World) Remove(id EntityID) bool {
	i, ok := w.index[id]
	if !ok {
		return false
	}
	w.ships = append(w.ships[:i], w.ships[i+1:]...)
	delete(w.index, id)
	for j := i; j < len(w.ships); j++ {
		w.index[w.ships[j].ID] = j
	}
	return true
}

// Lookup resolves a handle. NoEntity never resolves.
func (w *World) Lookup(id EntityID) (*Ship, bool) {
	if w == nil || id == NoEntity {
		return nil, false
	}
	i, ok := w.index[id]
	if !ok {
		return nil, false
	}
	return w.ships[i], true
}

// Ships returns the ships in insertion order. The slice must not be modified.
func (w *World) Ships() []*Ship {
	if w == nil {
		return nil
	}
	return w.ships
}

// Len returns the number of ships.
func (w *World) Len() int {
	if w == nil {
		return 0
	}
	return len(w.ships)
}

// Team returns the live ships of a team in insertion order.
func (w *World) Team(team int) []*Ship {
	var out []*Ship
	for _, s := range w.Ships() {
		if s.Team == team && s.Alive() {
			out = append(out, s)
		}
	}
	return out
}

// Hostiles returns every ship not on team, dead ones included. The AI filters
// by liveness itself.
func (w *World) Hostiles(team int) []*Ship {
	var out []*Ship
	for _, s := range w.Ships() {
		if s.Team != team {
			out = append(out, s)
		}
	}
	return out
}
