package ecs

import "github.com/milk9111/musclesim/ecs/component"

// Add stores value as e's component of the given kind, replacing any previous
// value.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	w.storeOrCreate(kind.ID()).Set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.store(kind.ID()).Remove(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.IsAlive(e) && w.store(kind.ID()).Has(e)
}

// Get returns e's component of the given kind. The pointer is shared with the
// world so callers may update it in place.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	value, ok := w.store(kind.ID()).Get(e).(*T)
	return value, ok
}

// ForEach calls fn for every live entity with the kind. fn may add or destroy
// entities; iteration runs over a snapshot.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	for _, e := range w.Query(kind) {
		if v, ok := Get(w, e, kind); ok {
			fn(e, v)
		}
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	for _, e := range IntersectEntities(w.store(ka.ID()), w.store(kb.ID())) {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}
