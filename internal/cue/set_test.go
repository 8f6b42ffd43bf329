package cue

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSetClone(t *testing.T) {
	set := NewSet(NewCue("foo", 0, 1, []string{"bar"}))

	clone := set.Clone()
	if clone.ID() == set.ID() {
		t.Error("expected clone to get a new id")
	}
	if clone.Cues()[0] == set.Cues()[0] {
		t.Error("expected clone to copy cues")
	}
	checkCue(t, clone.Cues()[0], 0, 1, "bar")

	edited, ok := clone.Edit(Retime{ID: "foo", Start: 0, End: 3})
	if !ok {
		t.Fatal("expected retime to succeed")
	}
	checkCue(t, edited.Cues()[0], 0, 3, "bar")

	c, ok := set.CueAt(0)
	if !ok {
		t.Fatal("expected a cue at 0")
	}
	checkCue(t, c, 0, 1, "bar")
}

func TestSetCuesIsCopy(t *testing.T) {
	set := NewSet(NewCue("foo", 0, 1, []string{"bar"}))

	cues := set.Cues()
	cues[0] = NewCue("other", 5, 6, nil)

	if set.Cues()[0].ID() != "foo" {
		t.Error("modifying Cues result changed the set")
	}
}

func TestSetCueAt(t *testing.T) {
	set := NewSet(
		NewCue("a", 0, 1, []string{"foo"}),
		NewCue("b", 1, 2, []string{"bar"}),
	)

	tests := []struct {
		time   float64
		wantID string
	}{
		{0, "a"},
		{0.99, "a"},
		{1, "b"},
		{1.5, "b"},
		{2, ""},
		{-1, ""},
	}

	for _, tt := range tests {
		c, ok := set.CueAt(tt.time)
		if tt.wantID == "" {
			if ok {
				t.Errorf("CueAt(%v): expected no cue, got %s", tt.time, c.ID())
			}
			continue
		}
		if !ok || c.ID() != tt.wantID {
			t.Errorf("CueAt(%v): expected %s, got %v", tt.time, tt.wantID, c)
		}
	}
}

func TestSetPreviousStart(t *testing.T) {
	set := NewSet(
		NewCue("foo", 0, 1, []string{"bar"}),
		NewCue("baz", 1, 2, []string{"qux"}),
	)

	tests := []struct {
		time float64
		want float64
	}{
		{0.5, 0},
		{1.5, 1},
		{2.5, 2.5},
		{0, 0},
		{1, 0},
		{-1, -1},
	}

	for _, tt := range tests {
		if got := set.PreviousStart(tt.time); got != tt.want {
			t.Errorf("PreviousStart(%v) = %v, want %v", tt.time, got, tt.want)
		}
	}
}

func TestSetNextEnd(t *testing.T) {
	set := NewSet(
		NewCue("foo", 0, 1, []string{"bar"}),
		NewCue("baz", 1, 2, []string{"qux"}),
	)

	tests := []struct {
		time float64
		want float64
	}{
		{-0.5, -0.5},
		{0.5, 1},
		{1.5, 2},
		{0, 1},
		{1, 2},
		{2, 2},
		{3, 3},
	}

	for _, tt := range tests {
		if got := set.NextEnd(tt.time); got != tt.want {
			t.Errorf("NextEnd(%v) = %v, want %v", tt.time, got, tt.want)
		}
	}
}

func TestSetNeighbours(t *testing.T) {
	c0 := NewCue("foo", 0, 1, []string{"bar"})
	c1 := NewCue("baz", 1, 2, []string{"qux"})
	set := NewSet(c0, c1)

	if _, ok := set.PreviousCue("foo"); ok {
		t.Error("expected no cue before the first")
	}
	if got, ok := set.PreviousCue("baz"); !ok || got != c0 {
		t.Errorf("expected foo before baz, got %v", got)
	}
	if got, ok := set.NextCue("foo"); !ok || got != c1 {
		t.Errorf("expected baz after foo, got %v", got)
	}
	if _, ok := set.NextCue("baz"); ok {
		t.Error("expected no cue after the last")
	}
	if _, ok := set.NextCue("missing"); ok {
		t.Error("expected no cue after an unknown id")
	}
	if _, ok := set.PreviousCue("missing"); ok {
		t.Error("expected no cue before an unknown id")
	}
}

func TestSetValidate(t *testing.T) {
	tests := []struct {
		name    string
		set     *Set
		wantErr string
	}{
		{
			name: "contiguous",
			set: NewSet(
				NewCue("a", 0, 1, nil),
				NewCue("b", 1, 2, nil),
			),
		},
		{
			name:    "inverted",
			set:     NewSet(NewCue("a", 2, 1, nil)),
			wantErr: "ends before",
		},
		{
			name: "overlap",
			set: NewSet(
				NewCue("a", 0, 1.5, nil),
				NewCue("b", 1, 2, nil),
			),
			wantErr: "overlaps",
		},
		{
			name: "duplicate id",
			set: NewSet(
				NewCue("a", 0, 1, nil),
				NewCue("a", 1, 2, nil),
			),
			wantErr: "duplicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.set.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSetDuration(t *testing.T) {
	if d := NewSet().Duration(); d != 0 {
		t.Errorf("expected 0 for empty set, got %v", d)
	}
	set := NewSet(NewCue("a", 0, 1, nil), NewCue("b", 1, 4.5, nil))
	if d := set.Duration(); d != 4.5 {
		t.Errorf("expected 4.5, got %v", d)
	}
}

func TestSetMarshalJSON(t *testing.T) {
	set := NewSet(NewCue("a", 0, 1, []string{"hi"}))

	data, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var out struct {
		ID      string `json:"id"`
		Version uint64 `json:"version"`
		Cues    []struct {
			ID    string   `json:"id"`
			Words []string `json:"words"`
		} `json:"cues"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if out.ID != set.ID() {
		t.Errorf("expected id %s, got %s", set.ID(), out.ID)
	}
	if len(out.Cues) != 1 || out.Cues[0].ID != "a" || out.Cues[0].Words[0] != "hi" {
		t.Errorf("unexpected cues: %+v", out.Cues)
	}

	empty, err := json.Marshal(NewSet())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(empty), `"cues":[]`) {
		t.Errorf("expected empty cue list, got %s", empty)
	}
}
