// Package history keeps a linear undo/redo log of immutable snapshots.
package history

import "fmt"

// History is a list of snapshots with a cursor. Inserting after an undo
// discards the undone snapshots.
type History[T any] struct {
	entries  []T
	position int
}

// New returns a history holding only initial.
func New[T any](initial T) *History[T] {
	return &History[T]{entries: []T{initial}}
}

// Insert drops everything after the current position and appends snapshot
// as the new tip.
func (h *History[T]) Insert(snapshot T) {
	h.entries = append(h.entries[:h.position+1], snapshot)
	h.position++
}

// Undo steps back one snapshot and reports whether it moved.
func (h *History[T]) Undo() bool {
	if h.position == 0 {
		return false
	}
	h.position--
	return true
}

// Redo steps forward one snapshot and reports whether it moved.
func (h *History[T]) Redo() bool {
	if h.position >= len(h.entries)-1 {
		return false
	}
	h.position++
	return true
}

// Tip returns the snapshot at the current position.
func (h *History[T]) Tip() T {
	if h.position < 0 || h.position >= len(h.entries) {
		panic(fmt.Sprintf("history: position %d outside %d entries", h.position, len(h.entries)))
	}
	return h.entries[h.position]
}

func (h *History[T]) CanUndo() bool {
	return h.position > 0
}

func (h *History[T]) CanRedo() bool {
	return h.position < len(h.entries)-1
}

func (h *History[T]) Len() int {
	return len(h.entries)
}

func (h *History[T]) Position() int {
	return h.position
}
