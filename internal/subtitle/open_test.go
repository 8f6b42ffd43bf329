package subtitle

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mgpai22/cuedit/internal/cue"
)

func TestOpenVTT(t *testing.T) {
	content := `WEBVTT

1
00:00:01.000 --> 00:00:04.000
Hello, world!

00:00:05.500 --> 00:00:08.200
This is a test.
`
	tmpDir := t.TempDir()
	vttPath := filepath.Join(tmpDir, "test.vtt")
	if err := os.WriteFile(vttPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	set, errs, err := Open(vttPath)
	if err != nil {
		t.Fatalf("failed to open VTT file: %v", err)
	}
	if len(errs) != 0 {
		t.Errorf("unexpected chunk errors: %v", errs)
	}
	if set.Len() != 3 {
		t.Fatalf("expected 3 cues, got %d", set.Len())
	}
	checkCue(t, set.Cues()[0], 1, 4, "Hello,", "world!")
	checkCue(t, set.Cues()[2], 5.5, 8.2, "This", "is", "a", "test.")
}

func TestOpenErrors(t *testing.T) {
	tmpDir := t.TempDir()

	if _, _, err := Open(filepath.Join(tmpDir, "missing.vtt")); err == nil {
		t.Error("expected an error for a missing file")
	}

	assPath := filepath.Join(tmpDir, "test.ass")
	if err := os.WriteFile(assPath, []byte("[Script Info]"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	if _, _, err := Open(assPath); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestSaveAndOpen(t *testing.T) {
	set := cue.NewSet(
		cue.NewCue("a", 0, 1, []string{"first"}),
		cue.NewCue("b", 1, 2.5, []string{"second", "cue"}),
	)

	for _, name := range []string{"out.vtt", "out.srt"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			if err := Save(path, set); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			got, errs, err := Open(path)
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			if len(errs) != 0 {
				t.Errorf("unexpected chunk errors: %v", errs)
			}
			if got.Len() != 2 {
				t.Fatalf("expected 2 cues, got %d", got.Len())
			}
			checkCue(t, got.Cues()[1], 1, 2.5, "second", "cue")
		})
	}

	if err := Save(filepath.Join(t.TempDir(), "out.txt"), set); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"a.vtt", FormatVTT, true},
		{"A.VTT", FormatVTT, true},
		{"dir/b.srt", FormatSRT, true},
		{"c.ass", "", false},
		{"noext", "", false},
	}

	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v", tt.path, got, err)
		}
	}

	if ExtensionForFormat(FormatSRT) != ".srt" || ExtensionForFormat(FormatVTT) != ".vtt" {
		t.Error("unexpected extension mapping")
	}

	if f, err := ParseFormat("srt"); err != nil || f != FormatSRT {
		t.Errorf("ParseFormat(srt) = %q, %v", f, err)
	}
	if _, err := ParseFormat("ass"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}
