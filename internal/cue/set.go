package cue

import (
	"encoding/json"
	"fmt"
)

// Set is an ordered, time-partitioned sequence of cues. A Set is a
// persistent value: Edit returns a new Set and leaves the receiver as it
// was, so older Sets can be kept as undo snapshots without copying.
type Set struct {
	id      string
	version uint64
	cues    []*Cue
}

// NewSet builds a set from cues already sorted by start time.
func NewSet(cues ...*Cue) *Set {
	return &Set{
		id:   newID(),
		cues: append([]*Cue(nil), cues...),
	}
}

// ID changes whenever the content changes structurally. Renderers can
// compare it to skip redraws.
func (s *Set) ID() string {
	return s.id
}

// Version counts the successful edits that led to this set.
func (s *Set) Version() uint64 {
	return s.version
}

func (s *Set) Len() int {
	return len(s.cues)
}

// Cues returns the cues in time order. The slice is a copy.
func (s *Set) Cues() []*Cue {
	return append([]*Cue(nil), s.cues...)
}

// Duration is the end time of the last cue.
func (s *Set) Duration() float64 {
	if len(s.cues) == 0 {
		return 0
	}
	return s.cues[len(s.cues)-1].end
}

// Index returns the position of the cue with the given id, or -1.
func (s *Set) Index(id string) int {
	return indexOf(s.cues, id)
}

func (s *Set) Cue(id string) (*Cue, bool) {
	i := s.Index(id)
	if i < 0 {
		return nil, false
	}
	return s.cues[i], true
}

func (s *Set) PreviousCue(id string) (*Cue, bool) {
	i := s.Index(id)
	if i <= 0 {
		return nil, false
	}
	return s.cues[i-1], true
}

func (s *Set) NextCue(id string) (*Cue, bool) {
	i := s.Index(id)
	if i < 0 || i+1 >= len(s.cues) {
		return nil, false
	}
	return s.cues[i+1], true
}

// CueAt returns the cue active at t.
func (s *Set) CueAt(t float64) (*Cue, bool) {
	i := s.activeIndex(t)
	if i < 0 {
		return nil, false
	}
	return s.cues[i], true
}

func (s *Set) activeIndex(t float64) int {
	for i, c := range s.cues {
		if c.IsActive(t) {
			return i
		}
	}
	return -1
}

// PreviousStart returns the start of the cue active at t, or the start of
// the cue before it when t is already on that boundary. t is returned
// unchanged when nothing is active or there is no earlier boundary.
func (s *Set) PreviousStart(t float64) float64 {
	i := s.activeIndex(t)
	if i < 0 {
		return t
	}
	if t != s.cues[i].start {
		return s.cues[i].start
	}
	if i > 0 {
		return s.cues[i-1].start
	}
	return t
}

// NextEnd is the forward counterpart of PreviousStart.
func (s *Set) NextEnd(t float64) float64 {
	i := s.activeIndex(t)
	if i < 0 {
		return t
	}
	if t != s.cues[i].end {
		return s.cues[i].end
	}
	if i+1 < len(s.cues) {
		return s.cues[i+1].end
	}
	return t
}

// Clone returns a set with equal content, fresh cue storage and a new id.
func (s *Set) Clone() *Set {
	clone := &Set{
		id:      newID(),
		version: s.version,
		cues:    make([]*Cue, len(s.cues)),
	}
	for i, c := range s.cues {
		clone.cues[i] = c.Clone()
	}
	return clone
}

// Edit applies e and returns the resulting set. When a precondition fails
// the receiver is returned with false and nothing changes.
func (s *Set) Edit(e Edit) (*Set, bool) {
	ed := &editor{cues: append([]*Cue(nil), s.cues...)}
	if !ed.apply(e) {
		return s, false
	}

	return &Set{
		id:      newID(),
		version: s.version + 1,
		cues:    ed.cues,
	}, true
}

// Validate checks the ordering invariants the edit algebra maintains.
// Imported or hand-built sets may not satisfy them.
func (s *Set) Validate() error {
	seen := make(map[string]bool, len(s.cues))
	for i, c := range s.cues {
		if c.start > c.end {
			return fmt.Errorf("cue %d (%s) ends before it starts", i, c.id)
		}
		if seen[c.id] {
			return fmt.Errorf("cue %d has duplicate id %s", i, c.id)
		}
		seen[c.id] = true

		if i > 0 && s.cues[i-1].end > c.start {
			return fmt.Errorf("cue %d (%s) overlaps the previous cue", i, c.id)
		}
	}
	return nil
}

type cueJSON struct {
	ID    string   `json:"id"`
	Start float64  `json:"start"`
	End   float64  `json:"end"`
	Words []string `json:"words"`
}

func (c *Cue) MarshalJSON() ([]byte, error) {
	words := c.words
	if words == nil {
		words = []string{}
	}
	return json.Marshal(cueJSON{
		ID:    c.id,
		Start: c.start,
		End:   c.end,
		Words: words,
	})
}

func (c *Cue) UnmarshalJSON(data []byte) error {
	var raw cueJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = *NewCue(raw.ID, raw.Start, raw.End, raw.Words)
	return nil
}

func (s *Set) MarshalJSON() ([]byte, error) {
	cues := s.cues
	if cues == nil {
		cues = []*Cue{}
	}
	return json.Marshal(struct {
		ID      string `json:"id"`
		Version uint64 `json:"version"`
		Cues    []*Cue `json:"cues"`
	}{s.id, s.version, cues})
}

func indexOf(cues []*Cue, id string) int {
	for i, c := range cues {
		if c.id == id {
			return i
		}
	}
	return -1
}
