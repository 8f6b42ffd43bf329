package cue

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// generates identifiers for cues and sets; swapped in tests
var newID = uuid.NewString

// Cue is one timed run of words. A Cue is never modified after
// construction; edits build replacement cues.
//
// Word-boundary indices: for words ["foo", "bar", "baz"], index 0 is before
// "foo", index 1 is before "bar", index 3 is after "baz". Index 0 of the
// next cue is the same instant as index 3 of this one.
type Cue struct {
	id    string
	start float64
	end   float64
	words []string

	totalChars int
	// word index for each character offset, plus a trailing len(words)
	charWord []int
	// cumulative character count through each word
	wordChars []int
}

// NewCue builds a cue from times in seconds and its words. The words slice
// is copied.
func NewCue(id string, start, end float64, words []string) *Cue {
	c := &Cue{
		id:    id,
		start: start,
		end:   end,
		words: append([]string(nil), words...),
	}
	c.index()
	return c
}

func (c *Cue) index() {
	c.wordChars = make([]int, len(c.words))
	for w, word := range c.words {
		c.totalChars += utf8.RuneCountInString(word)
		c.wordChars[w] = c.totalChars
	}

	c.charWord = make([]int, 0, c.totalChars+1)
	for w, word := range c.words {
		for range utf8.RuneCountInString(word) {
			c.charWord = append(c.charWord, w)
		}
	}
	c.charWord = append(c.charWord, len(c.words))
}

func (c *Cue) ID() string { return c.id }
func (c *Cue) Start() float64 { return c.start }
func (c *Cue) End() float64 { return c.end }
func (c *Cue) WordCount() int { return len(c.words) }
func (c *Cue) IsGap() bool { return len(c.words) == 0 }
func (c *Cue) Duration() float64 {
	return c.end - c.start
}

// Words returns a copy of the cue's words.
func (c *Cue) Words() []string {
	return append([]string(nil), c.words...)
}

// TotalCharacters counts characters across all words, spaces excluded.
func (c *Cue) TotalCharacters() int {
	return c.totalChars
}

func (c *Cue) Text() string {
	return strings.Join(c.words, " ")
}

// IsActive reports whether t falls in [start, end).
func (c *Cue) IsActive(t float64) bool {
	return c.start <= t && t < c.end
}

// TimeForIndex maps a word-boundary index to a time, interpolating by
// character count so longer words take longer to read.
func (c *Cue) TimeForIndex(index int) float64 {
	if index <= 0 {
		return c.start
	}
	if index-1 >= len(c.wordChars) || c.totalChars == 0 {
		return c.end
	}

	chars := float64(c.wordChars[index-1])
	return chars/float64(c.totalChars)*c.Duration() + c.start
}

// IndexForTime maps a time back to the word-boundary index at the nearest
// character. It returns false when t lies outside the cue.
func (c *Cue) IndexForTime(t float64) (int, bool) {
	frac := (t - c.start) / c.Duration()
	if math.IsNaN(frac) || math.IsInf(frac, 0) {
		return 0, false
	}

	nearest := math.Floor(frac*float64(c.totalChars) + 0.5)
	if nearest < 0 || nearest > float64(c.totalChars) {
		return 0, false
	}
	return c.charWord[int(nearest)], true
}

// Clone returns an equal cue that shares nothing with c.
func (c *Cue) Clone() *Cue {
	return NewCue(c.id, c.start, c.end, c.words)
}

// with helpers build modified copies
func (c *Cue) withID(id string) *Cue {
	return NewCue(id, c.start, c.end, c.words)
}

func (c *Cue) withTimes(start, end float64) *Cue {
	return NewCue(c.id, start, end, c.words)
}
