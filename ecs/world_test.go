package ecs

import (
	"testing"

	"github.com/milk9111/rampage/ecs/component"
)

func intPtr(i int) *int {
	return &i
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
		wantAlive    int
	}{
		{"single", 1, 0, 0},
		{"three_destroy_middle", 3, 1, 2},
		{"none_destroyed", 2, -1, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("second DestroyEntity must report false")
				}
			}
			if got := len(Entities(w)); got != c.wantAlive {
				t.Fatalf("expected %d entities, got %d", c.wantAlive, got)
			}
			if w.Len() != c.wantAlive {
				t.Fatalf("Len mismatch: %d", w.Len())
			}
		})
	}
}

func TestRecycledSlotDoesNotAliasStaleHandle(t *testing.T) {
	w := NewWorld()
	h := component.NewComponentKind[int]()

	old := CreateEntity(w)
	if err := Add(w, old, h, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected slot reuse, got %v and %v", old, fresh)
	}
	if IsAlive(w, old) {
		t.Fatalf("stale handle reported alive")
	}
	if Has(w, fresh, h) {
		t.Fatalf("recycled entity inherited a component")
	}
	if err := Add(w, old, h, intPtr(2)); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
	if Null.Valid() || IsAlive(w, Null) {
		t.Fatalf("null entity must never be alive")
	}
}

func TestComponentsAddGetRemove(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]()
	strs := component.NewComponent[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, ints.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, ints.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
				*v = 11
				again, _ := Get(w, e1, ints.Kind())
				if *again != 11 {
					t.Fatalf("components must be shared pointers, got %d", *again)
				}
			},
			teardown: func() bool { return Remove(w, e1, ints.Kind()) },
		},
		{
			name: "add_str_to_both",
			setup: func() error {
				a, b := "a", "b"
				if err := Add(w, e1, strs.Kind(), &a); err != nil {
					return err
				}
				return Add(w, e2, strs.Kind(), &b)
			},
			check: func(t *testing.T) {
				if !Has(w, e1, strs.Kind()) || !Has(w, e2, strs.Kind()) {
					t.Fatalf("expected both entities to have string component")
				}
				if Count(w, strs.Kind()) != 2 {
					t.Fatalf("expected count 2")
				}
			},
			teardown: func() bool { return Remove(w, e1, strs.Kind()) },
		},
		{
			name:     "nil_rejected",
			setup:    func() error { return nil },
			check:    func(t *testing.T) { requireErr(t, Add[int](w, e1, ints.Kind(), nil), component.ErrNilComponent) },
			teardown: func() bool { return true },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}
}

func requireErr(t *testing.T, got, want error) {
	t.Helper()
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestForEachAllowsDestroyDuringIteration(t *testing.T) {
	w := NewWorld()
	h := component.NewComponentKind[int]()
	for i := 0; i < 5; i++ {
		e := CreateEntity(w)
		if err := Add(w, e, h, intPtr(i)); err != nil {
			t.Fatal(err)
		}
	}

	visited := 0
	ForEach(w, h, func(e Entity, v *int) {
		visited++
		if *v%2 == 0 {
			DestroyEntity(w, e)
		}
	})
	if visited != 5 {
		t.Fatalf("expected 5 visits, got %d", visited)
	}
	if Count(w, h) != 2 {
		t.Fatalf("expected 2 survivors, got %d", Count(w, h))
	}
}

func TestForEachIntersections(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "two",
			run: func(t *testing.T) {
				w := NewWorld()
				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				_ = Add(w, e1, ka, intPtr(1))
				_ = Add(w, e2, ka, intPtr(2))
				_ = Add(w, e2, kb, intPtr(3))

				var res []Entity
				ForEach2(w, ka, kb, func(e Entity, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 1 || res[0] != e2 {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "three_ignores_dead",
			run: func(t *testing.T) {
				w := NewWorld()
				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()
				e := CreateEntity(w)
				_ = Add(w, e, ka, intPtr(1))
				_ = Add(w, e, kb, intPtr(2))
				_ = Add(w, e, kc, intPtr(3))
				DestroyEntity(w, e)

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "four_missing_store",
			run: func(t *testing.T) {
				w := NewWorld()
				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()
				kd := component.NewComponentKind[int]()
				e := CreateEntity(w)
				_ = Add(w, e, ka, intPtr(1))

				called := false
				ForEach4(w, ka, kb, kc, kd, func(Entity, *int, *int, *int, *int) { called = true })
				if called {
					t.Fatalf("expected no visits when other stores are missing")
				}
			},
		},
		{
			name: "first",
			run: func(t *testing.T) {
				w := NewWorld()
				ka := component.NewComponentKind[int]()
				if _, _, ok := First(w, ka); ok {
					t.Fatalf("empty world must have no first")
				}
				e := CreateEntity(w)
				_ = Add(w, e, ka, intPtr(7))
				got, v, ok := First(w, ka)
				if !ok || got != e || *v != 7 {
					t.Fatalf("unexpected first: %v %v %v", got, v, ok)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestEventQueueDrain(t *testing.T) {
	var q EventQueue
	q.Push(Event{Kind: EventKill})
	q.Push(Event{Kind: EventTierUnlock, Value: 1})
	if q.Len() != 2 {
		t.Fatalf("expected 2 queued")
	}
	got := q.Drain()
	if len(got) != 2 || got[0].Kind != EventKill || got[1].Kind != EventTierUnlock {
		t.Fatalf("unexpected drain order: %v", got)
	}
	if q.Drain() != nil {
		t.Fatalf("queue should be empty after drain")
	}
}

func TestSchedulerRunsInOrder(t *testing.T) {
	var order []int
	s := NewScheduler[*[]int](
		SystemFunc[*[]int](func(o *[]int) { *o = append(*o, 1) }),
		nil,
		SystemFunc[*[]int](func(o *[]int) { *o = append(*o, 2) }),
	)
	s.Update(&order)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("unexpected order %v", order)
	}
	if len(s.Systems()) != 2 {
		t.Fatalf("nil system should be skipped")
	}
}
