package ecs

import "github.com/milk9111/rampage/ecs/component"

// CreateEntity allocates a new live entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return Null
	}
	return w.entities.create()
}

// DestroyEntity kills an entity and drops all of its components. It returns
// false when the handle was already dead.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, st := range w.stores {
		st.remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is live.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) { out = append(out, e) })
	return out
}

func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	storeFor(w, kind, true).set(e.id(), value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	st := storeFor(w, kind, false)
	if st == nil {
		return false
	}
	return st.remove(e.id())
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	st := storeFor(w, kind, false)
	return st != nil && st.has(e.id())
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	st := storeFor(w, kind, false)
	if st == nil {
		return nil, false
	}
	return st.get(e.id())
}

// Count returns how many live entities carry the component.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	st := storeFor(w, kind, false)
	if st == nil {
		return 0
	}
	return st.len()
}

// First returns the first entity carrying the component, if any.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, *T, bool) {
	st := storeFor(w, kind, false)
	if st == nil {
		return Null, nil, false
	}
	for i, id := range st.dense {
		if e, ok := w.entities.handle(id); ok {
			return e, st.values[i], true
		}
	}
	return Null, nil, false
}
