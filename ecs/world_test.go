package ecs

import (
	"testing"

	"github.com/milk9111/musclesim/ecs/component"
)

func TestSparseWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
			}
		})
	}
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func float64Ptr(f float64) *float64 {
	return &f
}

func TestSparseWorldComponentsAndQueries(t *testing.T) {
	t.Run("component_table", func(t *testing.T) {
		w := NewWorld()

		h1 := component.NewComponent[int]()
		h2 := component.NewComponent[string]()
		h3 := component.NewComponent[float64]()

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
				setup: func() error { return Add(w, e1, h1.Kind(), intPtr(10)) },
				check: func(t *testing.T) {
					v, ok := Get[int](w, e1, h1.Kind())
					if !ok || *v != 10 {
						t.Fatalf("expected 10, got %v ok=%v", v, ok)
					}
				},
				teardown: func() bool { return Remove[int](w, e1, h1.Kind()) },
			},
			{
				name: "add_str_to_e1_and_e2",
				setup: func() error {
					if err := Add(w, e1, h2.Kind(), stringPtr("a")); err != nil {
						return err
					}
					return Add(w, e2, h2.Kind(), stringPtr("b"))
				},
				check: func(t *testing.T) {
					if !Has[string](w, e1, h2.Kind()) || !Has[string](w, e2, h2.Kind()) {
						t.Fatalf("expected both entities to have string component")
					}
				},
				teardown: func() bool { return Remove[string](w, e1, h2.Kind()) },
			},
			{
				name:  "add_float_and_remove",
				setup: func() error { return Add(w, e1, h3.Kind(), float64Ptr(1.23)) },
				check: func(t *testing.T) {
					if _, ok := Get[float64](w, e1, h3.Kind()); !ok {
						t.Fatalf("expected float present")
					}
				},
				teardown: func() bool { return Remove[float64](w, e1, h3.Kind()) },
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
	})
}

func TestForEach(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]()

		e1 := CreateEntity(w)
		e2 := CreateEntity(w)
		e3 := CreateEntity(w)

		if err := Add(w, e1, h.Kind(), intPtr(1)); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if err := Add(w, e3, h.Kind(), intPtr(3)); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		var ents []Entity
		ForEach(w, h.Kind(), func(e Entity, _ *int) { ents = append(ents, e) })
		set := toSet(ents)

		if _, ok := set[e1]; !ok {
			t.Fatalf("expected e1 in ForEach result")
		}
		if _, ok := set[e3]; !ok {
			t.Fatalf("expected e3 in ForEach result")
		}
		if _, ok := set[e2]; ok {
			t.Fatalf("did not expect e2 in ForEach result")
		}
	})
}

func TestForEach2(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				e3 := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[string]()

				if err := Add(w, e1, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, ka, intPtr(2)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, kb, stringPtr("two")); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e3, kb, stringPtr("three")); err != nil {
					t.Fatal(err)
				}

				var res []Entity
				ForEach2(w, ka, kb, func(e Entity, a *int, b *string) {
					if *a != 2 || *b != "two" {
						t.Fatalf("unexpected values %d %q", *a, *b)
					}
					res = append(res, e)
				})
				if len(res) != 1 || res[0] != e2 {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()

				if err := Add(w, e, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e, kb, intPtr(2)); err != nil {
					t.Fatal(err)
				}
				if !DestroyEntity(w, e) {
					t.Fatal("failed to destroy entity")
				}

				var res []Entity
				ForEach2(w, ka, kb, func(e Entity, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "missing_store",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()

				if err := Add(w, e, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}

				var res []Entity
				ForEach2(w, ka, kb, func(e Entity, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty when other store missing, got %v", res)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestQueryAndFirst(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[int]()

	if _, ok := w.First(ka); ok {
		t.Fatal("expected no entity in empty world")
	}

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)
	for _, e := range []Entity{e1, e2, e3} {
		if err := Add(w, e, ka, intPtr(int(e.id()))); err != nil {
			t.Fatal(err)
		}
	}
	if err := Add(w, e3, kb, intPtr(0)); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e2, kb, intPtr(0)); err != nil {
		t.Fatal(err)
	}

	if got := toSet(w.Query(ka, kb)); len(got) != 2 {
		t.Fatalf("expected e2 and e3, got %v", got)
	}
	first, ok := w.First(ka, kb)
	if !ok || first != e2 {
		t.Fatalf("expected e2 first, got %v ok=%v", first, ok)
	}
	if w.Query() != nil {
		t.Fatal("expected nil for empty kind list")
	}

	DestroyEntity(w, e2)
	first, ok = w.First(ka, kb)
	if !ok || first != e3 {
		t.Fatalf("expected e3 after destroying e2, got %v ok=%v", first, ok)
	}
}

func TestRecycledSlotsDropStaleHandles(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()

	old := CreateEntity(w)
	if err := Add(w, old, k, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	if !DestroyEntity(w, old) {
		t.Fatal("failed to destroy entity")
	}
	if DestroyEntity(w, old) {
		t.Fatal("destroying twice should report false")
	}

	fresh := CreateEntity(w)
	if fresh.id() != old.id() || fresh == old {
		t.Fatalf("expected slot reuse with a new generation, got %v and %v", old, fresh)
	}
	if Has(w, fresh, k) {
		t.Fatal("recycled slot must not inherit components")
	}
	if err := Add(w, old, k, intPtr(2)); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
	if _, ok := Get(w, old, k); ok {
		t.Fatal("stale handle should not resolve")
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	if err := Add(w, e, component.ComponentKind[int]{}, intPtr(1)); err != component.ErrInvalidComponentKind {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
	if err := Add[int](w, e, component.NewComponentKind[int](), nil); err != component.ErrNilComponent {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
}

func TestSchedulerRunsInOrder(t *testing.T) {
	var order []string
	s := NewScheduler(
		SystemFunc(func(*World) { order = append(order, "a") }),
		nil,
		SystemFunc(func(*World) { order = append(order, "b") }),
	)
	s.Add(SystemFunc(func(*World) { order = append(order, "c") }))

	if len(s.Systems()) != 3 {
		t.Fatalf("expected 3 systems, got %d", len(s.Systems()))
	}
	s.Update(NewWorld())
	s.Update(nil)
	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Fatalf("unexpected order %v", order)
	}
}

func TestEventQueue(t *testing.T) {
	w := NewWorld()
	q := w.Events()
	if q.Drain() != nil {
		t.Fatal("expected empty drain")
	}
	q.Push(Event{Kind: EventMuscleRemoved, Data: 1})
	q.Push(Event{Kind: EventAnchorRemoved, Data: 2})
	if q.Len() != 2 {
		t.Fatalf("expected 2 events, got %d", q.Len())
	}
	got := q.Drain()
	if len(got) != 2 || got[0].Kind != EventMuscleRemoved || got[1].Data != 2 {
		t.Fatalf("unexpected events %v", got)
	}
	if q.Len() != 0 {
		t.Fatal("drain should clear the queue")
	}

	var nilQueue *EventQueue
	nilQueue.Push(Event{})
	if nilQueue.Len() != 0 || nilQueue.Drain() != nil {
		t.Fatal("nil queue should be inert")
	}
}
