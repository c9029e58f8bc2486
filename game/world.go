package game

import (
	"flightradar/radar"

	"gonum.org/v1/gonum/spatial/r3"
)

// World owns every entity and exposes them to the radar as contact and
// missile sources.
type World struct {
	// Configuration
	Config Config

	// All entities in the world (for iteration)
	AllEntities []*Entity

	byID map[radar.EntityID]*Entity
}

// NewWorld creates an empty world
func NewWorld(config Config) *World {
	return &World{
		Config:      config,
		AllEntities: make([]*Entity, 0, 256),
		byID:        make(map[radar.EntityID]*Entity),
	}
}

// RegisterEntity adds an entity to the world
func (w *World) RegisterEntity(entity *Entity) {
	if _, ok := w.byID[entity.ID()]; ok {
		return
	}
	w.byID[entity.ID()] = entity
	w.AllEntities = append(w.AllEntities, entity)
}

// UnregisterEntity removes an entity from the world
func (w *World) UnregisterEntity(entity *Entity) {
	if _, ok := w.byID[entity.ID()]; !ok {
		return
	}
	delete(w.byID, entity.ID())
	for i, e := range w.AllEntities {
		if e == entity {
			w.AllEntities = append(w.AllEntities[:i], w.AllEntities[i+1:]...)
			break
		}
	}
}

// Get returns the entity with the given handle
func (w *World) Get(id radar.EntityID) (*Entity, bool) {
	e, ok := w.byID[id]
	return e, ok
}

// Len returns the number of registered entities
func (w *World) Len() int {
	return len(w.AllEntities)
}

// Contacts returns every aircraft. A new slice is returned on each call
// since the radar keeps the result until its next rescan.
func (w *World) Contacts() []radar.Contact {
	out := make([]radar.Contact, 0, len(w.AllEntities))
	for _, e := range w.AllEntities {
		if e.Type != EntityTypeMissile {
			out = append(out, e)
		}
	}
	return out
}

// Missiles returns every missile in flight
func (w *World) Missiles() []radar.Missile {
	out := make([]radar.Missile, 0, 16)
	for _, e := range w.AllEntities {
		if e.Type == EntityTypeMissile && e.Active {
			out = append(out, e)
		}
	}
	return out
}

// FindPlayer returns the first live player aircraft
func (w *World) FindPlayer() *Entity {
	for _, e := range w.AllEntities {
		if e.Type == EntityTypePlayer && !e.IsDead() {
			return e
		}
	}
	return nil
}

// GetEntitiesInRadius returns all live entities within radius of center
func (w *World) GetEntitiesInRadius(center r3.Vec, radius float64) []*Entity {
	entities := make([]*Entity, 0, 16)
	radiusSq := radius * radius
	for _, e := range w.AllEntities {
		if e.IsDead() {
			continue
		}
		d := r3.Sub(e.Pos, center)
		if r3.Dot(d, d) <= radiusSq {
			entities = append(entities, e)
		}
	}
	return entities
}

// RemoveDead unregisters every dead or inactive entity and returns them
func (w *World) RemoveDead() []*Entity {
	var removed []*Entity
	kept := w.AllEntities[:0]
	for _, e := range w.AllEntities {
		if e.IsDead() {
			e.Active = false
			delete(w.byID, e.ID())
			removed = append(removed, e)
			continue
		}
		kept = append(kept, e)
	}
	clear(w.AllEntities[len(kept):])
	w.AllEntities = kept
	return removed
}
