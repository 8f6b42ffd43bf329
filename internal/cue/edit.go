package cue

import (
	"encoding/json"
	"errors"
	"fmt"
)

// which boundary of a cue an edit refers to
type Edge string

const (
	EdgeStart Edge = "start"
	EdgeEnd   Edge = "end"
)

func (e Edge) valid() bool {
	return e == EdgeStart || e == EdgeEnd
}

// wire names of the edit variants
const (
	TypeMove        = "move"
	TypeJoin        = "join"
	TypeSplit       = "split"
	TypeSetContents = "setContents"
	TypeRetime      = "retime"
	TypeGap         = "gap"
	TypeReflow      = "reflow"
)

var (
	ErrUnknownEditType = errors.New("unknown edit type")
	ErrInvalidEdge     = errors.New("invalid edge")
)

// Edit is a structural change request against a Set. The set of variants
// is closed: Move, Join, Split, SetContents, Retime, Gap and Reflow.
type Edit interface {
	Type() string
	isEdit()
}

// Move relocates a boundary of cue FromID to word-boundary index ToIndex
// inside cue ToID, absorbing or releasing everything in between.
type Move struct {
	Edge    Edge   `json:"edge"`
	FromID  string `json:"fromId"`
	ToID    string `json:"toId"`
	ToIndex int    `json:"toIndex"`
}

// Join merges a cue with its predecessor (EdgeStart) or successor (EdgeEnd).
type Join struct {
	Edge Edge   `json:"edge"`
	ID   string `json:"id"`
}

// Split cuts a cue in two at a word-boundary index.
type Split struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
}

// SetContents replaces a cue's words, keeping its id and times.
type SetContents struct {
	ID       string   `json:"id"`
	Contents []string `json:"contents"`
}

// Retime moves both boundaries of a cue, dragging its neighbours along.
type Retime struct {
	ID    string  `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Gap carves silence off the end of a cue.
type Gap struct {
	ID string `json:"id"`
}

// Reflow re-segments the whole set on sentence boundaries.
type Reflow struct{}

func (Move) Type() string        { return TypeMove }
func (Join) Type() string        { return TypeJoin }
func (Split) Type() string       { return TypeSplit }
func (SetContents) Type() string { return TypeSetContents }
func (Retime) Type() string      { return TypeRetime }
func (Gap) Type() string         { return TypeGap }
func (Reflow) Type() string      { return TypeReflow }

func (Move) isEdit()        {}
func (Join) isEdit()        {}
func (Split) isEdit()       {}
func (SetContents) isEdit() {}
func (Retime) isEdit()      {}
func (Gap) isEdit()         {}
func (Reflow) isEdit()      {}

type envelope struct {
	Type string `json:"type"`
}

// DecodeEdit parses the JSON wire form of an edit request, e.g.
// {"type":"split","id":"c1","index":2}.
func DecodeEdit(data []byte) (Edit, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode edit: %w", err)
	}

	var (
		edit Edit
		err  error
	)
	switch env.Type {
	case TypeMove:
		var m Move
		err = json.Unmarshal(data, &m)
		if err == nil && !m.Edge.valid() {
			err = fmt.Errorf("%w %q", ErrInvalidEdge, m.Edge)
		}
		edit = m
	case TypeJoin:
		var j Join
		err = json.Unmarshal(data, &j)
		if err == nil && !j.Edge.valid() {
			err = fmt.Errorf("%w %q", ErrInvalidEdge, j.Edge)
		}
		edit = j
	case TypeSplit:
		var s Split
		err = json.Unmarshal(data, &s)
		edit = s
	case TypeSetContents:
		var s SetContents
		err = json.Unmarshal(data, &s)
		edit = s
	case TypeRetime:
		var r Retime
		err = json.Unmarshal(data, &r)
		edit = r
	case TypeGap:
		var g Gap
		err = json.Unmarshal(data, &g)
		edit = g
	case TypeReflow:
		edit = Reflow{}
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownEditType, env.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s edit: %w", env.Type, err)
	}

	return edit, nil
}

// EncodeEdit renders an edit in its JSON wire form.
func EncodeEdit(e Edit) ([]byte, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s edit: %w", e.Type(), err)
	}

	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to encode %s edit: %w", e.Type(), err)
	}
	fields["type"] = e.Type()

	return json.Marshal(fields)
}
