package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgpai22/cuedit/internal/cue"
)

// Open imports a caption file, picking the codec from its extension. The
// error is only set when nothing could be read; per-chunk problems come
// back next to the imported timeline.
func Open(path string) (*cue.Set, []*ChunkError, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read subtitle file: %w", err)
	}

	set, errs := Decode(string(data), format)
	return set, errs, nil
}

// Save writes set to path in the format its extension names.
func Save(path string, set *cue.Set) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if err := ensureDir(path); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(Encode(set, format)), 0644); err != nil {
		return fmt.Errorf("failed to write subtitle file: %w", err)
	}
	return nil
}

func Decode(text string, format Format) (*cue.Set, []*ChunkError) {
	if format == FormatSRT {
		return DecodeSRT(text)
	}
	return DecodeVTT(text)
}

func Encode(set *cue.Set, format Format) string {
	if format == FormatSRT {
		return EncodeSRT(set)
	}
	return EncodeVTT(set)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}

// subtitle format based on file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".vtt":
		return FormatVTT, nil
	case ".srt":
		return FormatSRT, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// file extension for a format
func ExtensionForFormat(format Format) string {
	switch format {
	case FormatSRT:
		return ".srt"
	default:
		return ".vtt"
	}
}
