// Package session owns the undo history of timelines being edited.
package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/mgpai22/cuedit/internal/cue"
	"github.com/mgpai22/cuedit/internal/history"
	"github.com/mgpai22/cuedit/internal/logging"
)

// Observer is told about every edit request a session handles.
type Observer func(editType string, applied bool)

// Session applies edit requests to a timeline and records every applied
// edit as an undoable snapshot. It is safe for concurrent use.
type Session struct {
	id       string
	log      *logging.Logger
	observer Observer

	mu      sync.Mutex
	history *history.History[*cue.Set]
}

// New starts a session whose history holds only initial.
func New(initial *cue.Set, log *logging.Logger, observer Observer) *Session {
	if log == nil {
		log = logging.NewNop()
	}
	id := uuid.NewString()
	return &Session{
		id:       id,
		log:      log.With("session", id),
		observer: observer,
		history:  history.New(initial),
	}
}

func (s *Session) ID() string {
	return s.id
}

// Current returns the timeline at the history cursor.
func (s *Session) Current() *cue.Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Tip()
}

// State is a consistent view of a session for rendering.
type State struct {
	Timeline *cue.Set
	CanUndo  bool
	CanRedo  bool
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

func (s *Session) state() State {
	return State{
		Timeline: s.history.Tip(),
		CanUndo:  s.history.CanUndo(),
		CanRedo:  s.history.CanRedo(),
	}
}

// Apply edits the current timeline. A rejected edit leaves the history
// untouched and returns the current timeline with false.
func (s *Session) Apply(e cue.Edit) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.history.Tip().Edit(e)
	if ok {
		s.history.Insert(next)
		s.log.Debugw("Edit applied",
			"type", e.Type(),
			"version", next.Version(),
			"cues", next.Len(),
		)
	} else {
		s.log.Debugw("Edit rejected", "type", e.Type())
	}

	if s.observer != nil {
		s.observer(e.Type(), ok)
	}
	return s.state(), ok
}

// Undo steps back one snapshot and reports whether it moved.
func (s *Session) Undo() (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	moved := s.history.Undo()
	return s.state(), moved
}

// Redo steps forward one snapshot and reports whether it moved.
func (s *Session) Redo() (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	moved := s.history.Redo()
	return s.state(), moved
}

func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// Replace pushes a whole new timeline, such as a fresh import, as an
// undoable step.
func (s *Session) Replace(set *cue.Set) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Insert(set)
	s.log.Debugw("Timeline replaced", "cues", set.Len())
	return s.state()
}
