package cue

import (
	"testing"
)

func TestReflowEmptySet(t *testing.T) {
	set := NewSet()
	got, ok := set.Edit(Reflow{})
	if !ok {
		t.Fatal("expected reflow to succeed on an empty set")
	}
	if got.Len() != 0 {
		t.Errorf("expected 0 cues, got %d", got.Len())
	}
}

func TestReflowSentences(t *testing.T) {
	set := NewSet(
		NewCue("a", 0, 10, []string{"Hello", "there", "my", "friend.", "How", "are"}),
		NewCue("b", 10, 20, []string{"you", "doing", "today?", "Fine."}),
	)

	got, ok := set.Edit(Reflow{})
	if !ok {
		t.Fatal("expected reflow to succeed")
	}
	if got.Len() != 2 {
		t.Fatalf("expected 2 cues, got %d: %v", got.Len(), got.Cues())
	}

	// "today?" ends 14 of 19 characters into cue b
	boundary := 10 + 140.0/19
	cues := got.Cues()
	checkCue(t, cues[0], 0, boundary,
		"Hello", "there", "my", "friend.", "How", "are", "you", "doing", "today?")
	checkCue(t, cues[1], boundary, 20, "Fine.")

	for _, c := range cues {
		if c.ID() == "a" || c.ID() == "b" {
			t.Errorf("expected reflow to replace every id, found %s", c.ID())
		}
	}
}

func TestReflowFoldsShortCues(t *testing.T) {
	set := NewSet(
		NewCue("a", 0, 2, []string{"Yes."}),
		NewCue("gap", 2, 3, nil),
		NewCue("b", 3, 8, []string{"That", "is", "what", "I", "said."}),
	)

	got, ok := set.Edit(Reflow{})
	if !ok {
		t.Fatal("expected reflow to succeed")
	}
	if got.Len() != 1 {
		t.Fatalf("expected 1 cue, got %d", got.Len())
	}
	checkCue(t, got.Cues()[0], 0, 8, "Yes.", "That", "is", "what", "I", "said.")
}

func TestReflowKeepsLongSentences(t *testing.T) {
	set := NewSet(
		NewCue("a", 0, 4, []string{"One", "two", "three", "four", "five.", "Six", "seven", "eight", "nine", "ten."}),
	)

	got, ok := set.Edit(Reflow{})
	if !ok {
		t.Fatal("expected reflow to succeed")
	}
	if got.Len() != 2 {
		t.Fatalf("expected 2 cues, got %d", got.Len())
	}
	cues := got.Cues()
	if cues[0].Text() != "One two three four five." {
		t.Errorf("unexpected first sentence %q", cues[0].Text())
	}
	if cues[1].Text() != "Six seven eight nine ten." {
		t.Errorf("unexpected second sentence %q", cues[1].Text())
	}
	if cues[0].End() != cues[1].Start() {
		t.Errorf("expected contiguous cues, got %v and %v", cues[0].End(), cues[1].Start())
	}
}

func TestEndsSentence(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"done.", true},
		{"what?", true},
		{"wow!", true},
		{"word", false},
		{"", false},
		{"e.g", false},
		{"「終わり」.", true},
	}

	for _, tt := range tests {
		if got := endsSentence(tt.word); got != tt.want {
			t.Errorf("endsSentence(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}
