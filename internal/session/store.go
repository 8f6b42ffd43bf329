package session

import (
	"slices"
	"sync"

	"github.com/mgpai22/cuedit/internal/cue"
	"github.com/mgpai22/cuedit/internal/logging"
)

// Store keeps open sessions in memory, keyed by session id.
type Store struct {
	log      *logging.Logger
	observer Observer

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore returns an empty store. observer is handed to every session it
// creates and may be nil.
func NewStore(log *logging.Logger, observer Observer) *Store {
	if log == nil {
		log = logging.NewNop()
	}
	return &Store{
		log:      log,
		observer: observer,
		sessions: make(map[string]*Session),
	}
}

// Create opens a session over initial.
func (st *Store) Create(initial *cue.Set) *Session {
	s := New(initial, st.log, st.observer)

	st.mu.Lock()
	st.sessions[s.ID()] = s
	st.mu.Unlock()

	st.log.Infow("Session created", "session", s.ID(), "cues", initial.Len())
	return s
}

func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete closes a session and reports whether it existed.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if ok {
		st.log.Infow("Session deleted", "session", id)
	}
	return ok
}

// IDs returns the open session ids in sorted order.
func (st *Store) IDs() []string {
	st.mu.RLock()
	ids := make([]string, 0, len(st.sessions))
	for id := range st.sessions {
		ids = append(ids, id)
	}
	st.mu.RUnlock()

	slices.Sort(ids)
	return ids
}

func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
