package subtitle

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// [HH:]MM:SS.mmm anywhere in the text; SubRip's comma is accepted too
var timecodeRegex = regexp.MustCompile(`(?:(\d+):)?(\d+):(\d+[.,]\d+)`)

// ParseTimecode returns the first timestamp in tc as seconds. Hours are
// optional and default to 0.
func ParseTimecode(tc string) (float64, error) {
	m := timecodeRegex.FindStringSubmatch(tc)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrBadTimecode, tc)
	}

	hours := 0
	if m[1] != "" {
		h, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrBadTimecode, tc, err)
		}
		hours = h
	}
	minutes, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrBadTimecode, tc, err)
	}
	seconds, err := strconv.ParseFloat(strings.Replace(m[3], ",", ".", 1), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrBadTimecode, tc, err)
	}

	return float64(hours)*3600 + float64(minutes)*60 + seconds, nil
}

// FormatTimestamp renders seconds as HH:MM:SS.mmm. Hours grow past two
// digits as needed and milliseconds are truncated.
func FormatTimestamp(seconds float64) string {
	h, m, s, ms := splitTime(seconds)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// FormatSRTTimestamp is FormatTimestamp with SubRip's comma separator.
func FormatSRTTimestamp(seconds float64) string {
	h, m, s, ms := splitTime(seconds)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

func splitTime(seconds float64) (h, m, s, ms int64) {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	// the nudge keeps values like 2.3 (2299.999... ms in binary) from
	// truncating a whole millisecond away
	total := int64(math.Floor(seconds*1000 + 1e-6))

	h = total / 3_600_000
	m = total / 60_000 % 60
	s = total / 1000 % 60
	ms = total % 1000
	return h, m, s, ms
}
