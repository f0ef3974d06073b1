package ecs

import "github.com/milk9111/rampage/ecs/component"

// World owns entities and their component stores.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]componentStore
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]componentStore)}
}

// Len returns the number of live entities.
func (w *World) Len() int {
	if w == nil {
		return 0
	}
	return w.entities.count
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseSet[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]componentStore)
	}
	if st, ok := w.stores[kind.ID()]; ok {
		typed, _ := st.(*sparseSet[T])
		return typed
	}
	if !create {
		return nil
	}
	st := &sparseSet[T]{}
	w.stores[kind.ID()] = st
	return st
}
