package subtitle

import (
	"strings"

	"github.com/mgpai22/cuedit/internal/cue"
)

// DecodeVTT imports WebVTT text. Malformed chunks are reported and left
// out; everything else is imported.
func DecodeVTT(text string) (*cue.Set, []*ChunkError) {
	return decodeChunks(text, FormatVTT)
}

// EncodeVTT renders every cue, gaps included, as a WebVTT chunk. The
// output has no trailing newline.
func EncodeVTT(set *cue.Set) string {
	var sb strings.Builder
	sb.WriteString(vttHeader)

	for _, c := range set.Cues() {
		sb.WriteString("\n\n")
		sb.WriteString(FormatTimestamp(c.Start()))
		sb.WriteString(" --> ")
		sb.WriteString(FormatTimestamp(c.End()))
		sb.WriteString("\n")
		sb.WriteString(c.Text())
	}

	return sb.String()
}
