package subtitle

import (
	"fmt"
	"strings"

	"github.com/mgpai22/cuedit/internal/cue"
)

// positional cue id, stable across imports of the same file
func cueID(position int) string {
	return fmt.Sprintf("c%d", position+1)
}

// blank-line separated run of lines
type chunk struct {
	line  int
	lines []string
}

func splitChunks(text string) []chunk {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var chunks []chunk
	open := false
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			open = false
			continue
		}
		if !open {
			chunks = append(chunks, chunk{line: i + 1})
			open = true
		}
		last := &chunks[len(chunks)-1]
		last.lines = append(last.lines, line)
	}
	return chunks
}

// vtt blocks that carry no cue
func isVTTBlock(line string) bool {
	keyword, _, _ := strings.Cut(line, " ")
	switch strings.TrimSpace(keyword) {
	case "NOTE", "STYLE", "REGION":
		return true
	}
	return false
}

func parseTiming(line string) (float64, float64, error) {
	left, right, _ := strings.Cut(line, "-->")
	start, err := ParseTimecode(left)
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseTimecode(right)
	if err != nil {
		return 0, 0, err
	}
	if start > end {
		return 0, 0, fmt.Errorf(
			"%w: ends at %s before it starts at %s",
			ErrBadTimecode,
			FormatTimestamp(end),
			FormatTimestamp(start),
		)
	}
	return start, end, nil
}

// decodeChunks turns caption text into a contiguous timeline. Holes
// between cues become empty gap cues. Cue ids are c1..cN by position, gaps
// included. Chunks that cannot be imported are skipped and reported;
// overlapping chunks are kept but clamped to the previous end, and
// reported too.
func decodeChunks(text string, format Format) (*cue.Set, []*ChunkError) {
	var (
		cues     []*cue.Cue
		errs     []*ChunkError
		lastEnd  float64
		haveLast bool
	)

	for n, c := range splitChunks(text) {
		fail := func(err error) {
			errs = append(errs, &ChunkError{Chunk: n + 1, Line: c.line, Err: err})
		}

		first := strings.TrimSpace(c.lines[0])
		if format == FormatVTT {
			if n == 0 && strings.HasPrefix(first, vttHeader) {
				continue
			}
			if isVTTBlock(first) {
				continue
			}
		}

		// the timing line may follow a cue identifier or SubRip counter
		timing := 0
		if !strings.Contains(c.lines[0], "-->") {
			if len(c.lines) < 2 || !strings.Contains(c.lines[1], "-->") {
				fail(ErrNoTiming)
				continue
			}
			timing = 1
		}

		start, end, err := parseTiming(c.lines[timing])
		if err != nil {
			fail(err)
			continue
		}
		words := strings.Fields(strings.Join(c.lines[timing+1:], "\n"))

		if haveLast && start < lastEnd {
			fail(fmt.Errorf(
				"%w: starts at %s, previous ends at %s",
				ErrOverlap,
				FormatTimestamp(start),
				FormatTimestamp(lastEnd),
			))

			// wholly inside the previous cue: its words join that cue
			if end <= lastEnd {
				prev := cues[len(cues)-1]
				merged := append(prev.Words(), words...)
				cues[len(cues)-1] = cue.NewCue(prev.ID(), prev.Start(), prev.End(), merged)
				continue
			}
			start = lastEnd
		}
		if haveLast && start > lastEnd {
			cues = append(cues, cue.NewCue(cueID(len(cues)), lastEnd, start, nil))
		}

		cues = append(cues, cue.NewCue(cueID(len(cues)), start, end, words))
		lastEnd, haveLast = end, true
	}

	return cue.NewSet(cues...), errs
}
