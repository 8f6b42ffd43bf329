package translate

import (
	"math"
	"strings"

	"github.com/mgpai22/cuedit/internal/cue"
)

// ItemsFromSet lists every cue with words, indexed by its position in set
// and carrying its duration to the millisecond.
func ItemsFromSet(set *cue.Set) []TranslationItem {
	var items []TranslationItem
	for i, c := range set.Cues() {
		if c.IsGap() {
			continue
		}
		items = append(items, TranslationItem{
			Index:   i,
			Text:    c.Text(),
			Seconds: math.Round(c.Duration()*1000) / 1000,
		})
	}
	return items
}

// EditsFromResults turns results for items built by ItemsFromSet into
// setContents edits. Results whose index is not a cue with words in set,
// or whose text is blank, are returned as skipped.
func EditsFromResults(
	set *cue.Set,
	results []TranslationResult,
) (edits []cue.Edit, skipped []int) {
	cues := set.Cues()
	for _, r := range results {
		if r.Index < 0 || r.Index >= len(cues) || cues[r.Index].IsGap() {
			skipped = append(skipped, r.Index)
			continue
		}

		words := strings.Fields(r.Text)
		if len(words) == 0 {
			skipped = append(skipped, r.Index)
			continue
		}

		edits = append(edits, cue.SetContents{ID: cues[r.Index].ID(), Contents: words})
	}
	return edits, skipped
}
