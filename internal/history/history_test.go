package history

import "testing"

func TestSetUndoRedo(t *testing.T) {
	s := New(0, DefaultLimit)

	s.Set(1)
	s.Set(2)

	if !s.CanUndo() {
		t.Fatal("expected CanUndo after sets")
	}
	if s.CanRedo() {
		t.Fatal("unexpected CanRedo before any undo")
	}

	v, ok := s.Undo()
	if !ok || v != 1 {
		t.Fatalf("expected undo to 1, got %d (ok=%v)", v, ok)
	}
	v, ok = s.Redo()
	if !ok || v != 2 {
		t.Fatalf("expected redo to 2, got %d (ok=%v)", v, ok)
	}
	if s.Current() != 2 {
		t.Errorf("current should be 2, got %d", s.Current())
	}
}

func TestUndoEmptyIsNoop(t *testing.T) {
	s := New("start", 0)

	v, ok := s.Undo()
	if ok || v != "start" {
		t.Errorf("undo on empty past must be a no-op, got %q (ok=%v)", v, ok)
	}
	v, ok = s.Redo()
	if ok || v != "start" {
		t.Errorf("redo on empty future must be a no-op, got %q (ok=%v)", v, ok)
	}
}

func TestBoundedPast(t *testing.T) {
	s := New(0, 30)

	for i := 1; i <= 35; i++ {
		s.Set(i)
	}
	if s.Depth() != 30 {
		t.Fatalf("expected past depth 30, got %d", s.Depth())
	}

	for i := 0; i < 30; i++ {
		if _, ok := s.Undo(); !ok {
			t.Fatalf("undo #%d should succeed", i+1)
		}
	}
	// 35 sets, 30 retained steps: the oldest recoverable value is 5.
	if s.Current() != 5 {
		t.Errorf("expected oldest recoverable value 5, got %d", s.Current())
	}
	if _, ok := s.Undo(); ok {
		t.Error("31st undo must be a no-op")
	}
}

func TestLinearHistoryNoBranching(t *testing.T) {
	s := New("base", 30)

	s.Set("A")
	s.Set("B")
	if _, ok := s.Undo(); !ok {
		t.Fatal("undo failed")
	}
	s.Set("C")

	if s.CanRedo() {
		t.Error("redo to B must be impossible after a new set")
	}

	v, ok := s.Undo()
	if !ok || v != "A" {
		t.Fatalf("expected undo to A, got %q", v)
	}
	v, ok = s.Undo()
	if !ok || v != "base" {
		t.Fatalf("expected undo to base, got %q", v)
	}
}

func TestResetClearsBothDirections(t *testing.T) {
	s := New(0, 30)

	s.Set(1)
	s.Set(2)
	s.Undo()

	if !s.CanUndo() || !s.CanRedo() {
		t.Fatal("setup should leave both directions populated")
	}

	s.Reset(99)

	if s.CanUndo() || s.CanRedo() {
		t.Error("reset must clear both directions")
	}
	if s.Current() != 99 {
		t.Errorf("expected current 99, got %d", s.Current())
	}
}

func TestRedoChain(t *testing.T) {
	s := New(0, 30)
	for i := 1; i <= 3; i++ {
		s.Set(i)
	}
	for i := 0; i < 3; i++ {
		s.Undo()
	}
	if s.Current() != 0 {
		t.Fatalf("expected 0 after full undo, got %d", s.Current())
	}
	for want := 1; want <= 3; want++ {
		v, ok := s.Redo()
		if !ok || v != want {
			t.Fatalf("expected redo to %d, got %d (ok=%v)", want, v, ok)
		}
	}
	if s.CanRedo() {
		t.Error("future should be exhausted")
	}
}
