package model

import "testing"

func TestSignalDisposeStopsDelivery(t *testing.T) {
	var s Signal[int]
	var got []int

	d := s.Subscribe(func(v int) { got = append(got, v) })
	s.Emit(1)
	d.Dispose()
	s.Emit(2)

	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected only first emit delivered, got %v", got)
	}
	if s.Len() != 0 {
		t.Fatalf("expected no live handlers, got %d", s.Len())
	}
}

func TestSignalDisposeDuringEmit(t *testing.T) {
	var s Signal[string]
	var second Disposable
	calls := 0

	s.Subscribe(func(string) { second.Dispose() })
	second = s.Subscribe(func(string) { calls++ })

	s.Emit("x")
	if calls != 0 {
		t.Fatalf("handler disposed mid-emit must not run, ran %d times", calls)
	}
}

func TestCharacterBaseClampsHP(t *testing.T) {
	e := NewEnemy("e1", 201000, 100, 1, 0)
	var seen []int
	e.HPChanged.Subscribe(func(hp int) { seen = append(seen, hp) })

	e.SetCurrentHP(150)
	e.SetCurrentHP(-5)

	if len(seen) != 2 || seen[0] != 100 || seen[1] != 0 {
		t.Fatalf("unexpected hp notifications %v", seen)
	}
	if !e.IsDead() {
		t.Fatalf("expected dead at 0 hp")
	}
}
