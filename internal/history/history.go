// Package history implements a bounded linear undo/redo stack.
// It is generic over the document type and knows nothing about reports;
// callers are expected to pass values that do not share mutable state.
package history

// DefaultLimit is the maximum number of undo steps retained.
const DefaultLimit = 30

// Stack holds the current value plus bounded past and future snapshots.
// It is not safe for concurrent use; the owning controller serializes
// access so the history stays linear.
type Stack[T any] struct {
	current T
	past    []T
	future  []T
	limit   int
}

// New creates a stack adopting initial as the current value. A limit of
// zero or less falls back to DefaultLimit.
func New[T any](initial T, limit int) *Stack[T] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Stack[T]{current: initial, limit: limit}
}

// Current returns the live value.
func (s *Stack[T]) Current() T {
	return s.current
}

// Set records the pre-mutation value as an undo step and adopts v.
// Any redo steps are discarded: edits after an undo start a new forward
// line, never a branch.
func (s *Stack[T]) Set(v T) {
	if len(s.past) >= s.limit {
		s.past = s.past[len(s.past)-(s.limit-1):]
	}
	s.past = append(s.past, s.current)
	s.future = nil
	s.current = v
}

// Undo steps back one value. Returns the new current value and whether a
// step was taken; calling with an empty past is a safe no-op.
func (s *Stack[T]) Undo() (T, bool) {
	if len(s.past) == 0 {
		return s.current, false
	}
	prev := s.past[len(s.past)-1]
	s.past = s.past[:len(s.past)-1]
	s.future = append([]T{s.current}, s.future...)
	s.current = prev
	return s.current, true
}

// Redo steps forward one value. Returns the new current value and whether
// a step was taken; calling with an empty future is a safe no-op.
func (s *Stack[T]) Redo() (T, bool) {
	if len(s.future) == 0 {
		return s.current, false
	}
	next := s.future[0]
	s.future = s.future[1:]
	s.past = append(s.past, s.current)
	s.current = next
	return s.current, true
}

// Reset adopts v and clears both directions, starting a new undo lineage.
// Mode switches and history restores are not undoable.
func (s *Stack[T]) Reset(v T) {
	s.past = nil
	s.future = nil
	s.current = v
}

// CanUndo reports whether an undo step exists.
func (s *Stack[T]) CanUndo() bool {
	return len(s.past) > 0
}

// CanRedo reports whether a redo step exists.
func (s *Stack[T]) CanRedo() bool {
	return len(s.future) > 0
}

// Depth returns the number of retained undo steps.
func (s *Stack[T]) Depth() int {
	return len(s.past)
}
