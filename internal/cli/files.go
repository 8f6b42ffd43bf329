package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mgpai22/cuedit/internal/cue"
	"github.com/mgpai22/cuedit/internal/subtitle"
)

// openCaptions reads a caption file, logging every chunk that could not be
// imported.
func openCaptions(path string) (*cue.Set, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("caption file not found: %s", path)
	}

	set, chunkErrs, err := subtitle.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse caption file: %w", err)
	}
	for _, ce := range chunkErrs {
		logger.Warnw("Skipping caption chunk",
			"file", path,
			"chunk", ce.Chunk,
			"line", ce.Line,
			"error", ce.Err,
		)
	}

	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("caption file is inconsistent: %w", err)
	}

	logger.Debugw("Parsed caption file",
		"file", path,
		"cues", set.Len(),
		"skipped_chunks", len(chunkErrs),
	)
	return set, nil
}

// outputPath is the --output flag, or input rewritten with suffix and ext
// when the flag is unset. An empty suffix and ext overwrite input.
func outputPath(flag, input, suffix, ext string) string {
	if flag != "" {
		return flag
	}
	if ext == "" {
		ext = filepath.Ext(input)
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if suffix != "" {
		base += "." + suffix
	}
	return base + ext
}

// parseTime accepts plain seconds ("12.5") or a timestamp ("00:00:12.500").
func parseTime(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ":") {
		return subtitle.ParseTimecode(s)
	}
	t, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	if t < 0 {
		return 0, fmt.Errorf("time must not be negative, got %s", s)
	}
	return t, nil
}

func printSaved(verb, path string, set *cue.Set) {
	absOutput, _ := filepath.Abs(path)
	fmt.Printf("Captions %s successfully: %s\n", verb, absOutput)
	fmt.Printf("  Cues: %d\n", set.Len())
	fmt.Printf("  Duration: %s\n", subtitle.FormatTimestamp(set.Duration()))
}
