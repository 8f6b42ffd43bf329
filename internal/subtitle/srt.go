package subtitle

import (
	"fmt"
	"strings"

	"github.com/mgpai22/cuedit/internal/cue"
)

// DecodeSRT imports SubRip text the same way DecodeVTT imports WebVTT.
func DecodeSRT(text string) (*cue.Set, []*ChunkError) {
	return decodeChunks(text, FormatSRT)
}

// EncodeSRT renders the cues as SubRip. Gap cues are left out since the
// format has no use for empty entries; importing restores them.
func EncodeSRT(set *cue.Set) string {
	var sb strings.Builder

	index := 0
	for _, c := range set.Cues() {
		if c.IsGap() {
			continue
		}
		index++

		// index (1-based)
		sb.WriteString(fmt.Sprintf("%d\n", index))

		// timestamps: 00:00:00,000 --> 00:00:00,000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			FormatSRTTimestamp(c.Start()),
			FormatSRTTimestamp(c.End())))

		// text
		sb.WriteString(c.Text())
		sb.WriteString("\n\n")
	}

	return sb.String()
}
