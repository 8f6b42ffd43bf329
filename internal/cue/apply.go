package cue

import (
	"fmt"
	"math"
	"slices"
)

// how a composite step names the cues it produces
type idPolicy int

const (
	// every produced cue gets a new id
	freshIDs idPolicy = iota
	// the later of the two cues involved keeps its id
	keepSecondID
)

// the longest run carved off by a gap edit, in seconds
const maxGap = 1.0

// editor applies edits to a private copy of a set's cue slice. Cues are
// replaced, never modified.
type editor struct {
	cues []*Cue
}

func (ed *editor) indexOf(id string) int {
	return indexOf(ed.cues, id)
}

func (ed *editor) apply(e Edit) bool {
	switch e := e.(type) {
	case Move:
		return ed.move(e)
	case *Move:
		return ed.move(*e)
	case Join:
		return ed.join(e.Edge, e.ID, freshIDs)
	case *Join:
		return ed.join(e.Edge, e.ID, freshIDs)
	case Split:
		return ed.splitByID(e.ID, e.Index, freshIDs)
	case *Split:
		return ed.splitByID(e.ID, e.Index, freshIDs)
	case SetContents:
		return ed.setContents(e.ID, e.Contents)
	case *SetContents:
		return ed.setContents(e.ID, e.Contents)
	case Retime:
		return ed.retime(e.ID, e.Start, e.End)
	case *Retime:
		return ed.retime(e.ID, e.Start, e.End)
	case Gap:
		return ed.gap(e.ID)
	case *Gap:
		return ed.gap(e.ID)
	case Reflow, *Reflow:
		return ed.reflow()
	default:
		return false
	}
}

func (ed *editor) join(edge Edge, id string, policy idPolicy) bool {
	i := ed.indexOf(id)
	if i < 0 {
		return false
	}

	switch edge {
	case EdgeStart:
		return ed.joinPrevious(i, policy)
	case EdgeEnd:
		return ed.joinPrevious(i+1, policy)
	default:
		return false
	}
}

// joinPrevious merges cue i into cue i-1.
func (ed *editor) joinPrevious(i int, policy idPolicy) bool {
	if i <= 0 || i >= len(ed.cues) {
		return false
	}

	prev, cur := ed.cues[i-1], ed.cues[i]
	id := newID()
	if policy == keepSecondID {
		id = cur.id
	}

	words := make([]string, 0, len(prev.words)+len(cur.words))
	words = append(words, prev.words...)
	words = append(words, cur.words...)

	ed.cues = slices.Replace(ed.cues, i-1, i+1, NewCue(id, prev.start, cur.end, words))
	return true
}

func (ed *editor) splitByID(id string, index int, policy idPolicy) bool {
	i := ed.indexOf(id)
	if i < 0 {
		return false
	}
	return ed.split(i, index, policy)
}

func (ed *editor) split(i, index int, policy idPolicy) bool {
	c := ed.cues[i]
	if index <= 0 || index >= len(c.words) {
		return false
	}

	point := c.TimeForIndex(index)
	secondID := newID()
	if policy == keepSecondID {
		secondID = c.id
	}

	first := NewCue(newID(), c.start, point, c.words[:index])
	second := NewCue(secondID, point, c.end, c.words[index:])
	ed.cues = slices.Replace(ed.cues, i, i+1, first, second)
	return true
}

func (ed *editor) setContents(id string, contents []string) bool {
	i := ed.indexOf(id)
	if i < 0 {
		return false
	}

	c := ed.cues[i]
	ed.cues[i] = NewCue(c.id, c.start, c.end, contents)
	return true
}

func (ed *editor) retime(id string, start, end float64) bool {
	i := ed.indexOf(id)
	if i < 0 {
		return false
	}
	if math.IsNaN(start) || math.IsNaN(end) || start > end {
		return false
	}
	if i > 0 && start < ed.cues[i-1].start {
		return false
	}
	if i+1 < len(ed.cues) && end > ed.cues[i+1].end {
		return false
	}

	c := ed.cues[i]
	ed.cues[i] = NewCue(newID(), start, end, c.words)
	if i > 0 {
		prev := ed.cues[i-1]
		ed.cues[i-1] = prev.withTimes(prev.start, start)
	}
	if i+1 < len(ed.cues) {
		next := ed.cues[i+1]
		ed.cues[i+1] = next.withTimes(end, next.end)
	}
	return true
}

func (ed *editor) gap(id string) bool {
	i := ed.indexOf(id)
	if i < 0 {
		return false
	}

	c := ed.cues[i]
	cut := math.Max(c.end-maxGap, c.start+c.Duration()/2)

	trimmed := NewCue(newID(), c.start, cut, c.words)
	silence := NewCue(newID(), cut, c.end, nil)
	ed.cues = slices.Replace(ed.cues, i, i+1, trimmed, silence)
	return true
}

// move splits the landing cue to create the new boundary, then joins away
// every whole cue between the old and new boundary.
func (ed *editor) move(m Move) bool {
	if !m.Edge.valid() {
		return false
	}

	from, to := ed.indexOf(m.FromID), ed.indexOf(m.ToID)
	if from < 0 || to < 0 {
		return false
	}
	if m.Edge == EdgeStart && to > from {
		return false
	}
	if m.Edge == EdgeEnd && from > to {
		return false
	}

	landing := ed.cues[to]
	n := len(landing.words)
	if m.ToIndex < 0 || m.ToIndex > n {
		return false
	}
	if m.Edge == EdgeStart && m.ToIndex == n {
		return false
	}
	if m.Edge == EdgeEnd && m.ToIndex == 0 {
		return false
	}

	lo, hi := min(from, to), max(from, to)

	// landing on an existing boundary needs no split; the joins alone
	// carry the edge there
	onBoundary := m.ToIndex == 0 || m.ToIndex == n
	if onBoundary && from == to {
		return false
	}
	if !onBoundary {
		if !ed.split(to, m.ToIndex, freshIDs) {
			panic(fmt.Sprintf("cue: split of %s at %d failed after validation", m.ToID, m.ToIndex))
		}

		switch {
		case from > to:
			lo++
			hi++
		case from < to:
		case m.Edge == EdgeEnd:
			lo++
			hi += 2
		default:
			lo--
		}
	}

	// high to low so earlier joins don't shift later targets; a join past
	// the last cue has nothing to absorb and is skipped
	for k := hi - 1; k >= lo; k-- {
		if k < 0 || k >= len(ed.cues) {
			continue
		}
		ed.joinPrevious(k+1, freshIDs)
	}
	return true
}
