package cue

// cues shorter than this are folded into the next one on reflow
const reflowMinWords = 5

func endsSentence(word string) bool {
	if word == "" {
		return false
	}
	switch word[len(word)-1] {
	case '.', '!', '?':
		return true
	}
	return false
}

// reflow re-segments on sentence punctuation in three passes: split after
// every sentence end, join every cue that stops mid-sentence, then join
// every cue that is still short. Cue ids are threaded through the passes
// by keeping the later id on each split or join, and all of them are
// replaced at the end.
func (ed *editor) reflow() bool {
	type splitAt struct {
		id    string
		index int
	}

	var splits []splitAt
	for _, c := range ed.cues {
		offset := 0
		for w, word := range c.words {
			if endsSentence(word) {
				splits = append(splits, splitAt{id: c.id, index: w + 1 - offset})
				offset = w + 1
			}
		}
	}
	for _, s := range splits {
		if i := ed.indexOf(s.id); i >= 0 {
			ed.split(i, s.index, keepSecondID)
		}
	}

	var joins []string
	for _, c := range ed.cues {
		if n := len(c.words); n > 0 && c.words[n-1] != "" && !endsSentence(c.words[n-1]) {
			joins = append(joins, c.id)
		}
	}
	ed.joinEach(joins)

	joins = joins[:0]
	for _, c := range ed.cues {
		if len(c.words) < reflowMinWords {
			joins = append(joins, c.id)
		}
	}
	ed.joinEach(joins)

	for i, c := range ed.cues {
		ed.cues[i] = c.withID(newID())
	}
	return true
}

// joinEach joins each listed cue with its successor, in order.
func (ed *editor) joinEach(ids []string) {
	for _, id := range ids {
		ed.join(EdgeEnd, id, keepSecondID)
	}
}
