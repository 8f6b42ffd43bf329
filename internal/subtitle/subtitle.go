package subtitle

import (
	"errors"
	"fmt"
)

// represents supported subtitle formats
type Format string

const (
	FormatVTT Format = "vtt"
	FormatSRT Format = "srt"
)

// magic first chunk of a WebVTT file
const vttHeader = "WEBVTT"

var (
	ErrUnsupportedFormat = errors.New("unsupported subtitle format")

	// chunk has no "start --> end" line
	ErrNoTiming = errors.New("no timing line")
	// a side of the timing line is not [HH:]MM:SS.mmm, or start > end
	ErrBadTimecode = errors.New("bad timecode")
	// chunk starts before the previous one ends; it is clamped to that end
	ErrOverlap = errors.New("overlaps previous cue")
)

// ChunkError reports a caption chunk that could not be imported as
// written. The rest of the file is still imported.
type ChunkError struct {
	// 1-based position of the chunk in the file
	Chunk int
	// 1-based line the chunk starts on
	Line int
	Err  error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk %d (line %d): %v", e.Chunk, e.Line, e.Err)
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatVTT, FormatSRT:
		return Format(s), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, s)
	}
}
