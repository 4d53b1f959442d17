package ecs

import "github.com/milk9111/musclesim/ecs/component"

// World owns entities and their component stores.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

// DestroyEntity kills e and drops all of its components. It reports whether e
// was alive.
func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

// IsAlive reports whether e is a live handle in w.
func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.entities()
}

func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.destroy(e) {
		return false
	}
	for _, s := range w.stores {
		s.removeSlot(e.id())
	}
	return true
}

func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Events returns the world's event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) store(id component.ComponentID) *SparseSet {
	if w == nil {
		return nil
	}
	return w.stores[id]
}

func (w *World) storeOrCreate(id component.ComponentID) *SparseSet {
	s, ok := w.stores[id]
	if !ok {
		s = newSparseSet()
		w.stores[id] = s
	}
	return s
}

// Query returns the live entities that have every kind listed.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	result := w.store(kinds[0].ID())
	if result == nil {
		return nil
	}
	out := append([]Entity(nil), result.Entities()...)
	for _, k := range kinds[1:] {
		s := w.store(k.ID())
		if s == nil {
			return nil
		}
		kept := out[:0]
		for _, e := range out {
			if s.Has(e) {
				kept = append(kept, e)
			}
		}
		out = kept
	}
	alive := out[:0]
	for _, e := range out {
		if w.entities.isAlive(e) {
			alive = append(alive, e)
		}
	}
	return alive
}

// First returns the lowest-slot live entity with every kind listed.
func (w *World) First(kinds ...component.Kind) (Entity, bool) {
	var first Entity
	for _, e := range w.Query(kinds...) {
		if !first.Valid() || e.id() < first.id() {
			first = e
		}
	}
	return first, first.Valid()
}
