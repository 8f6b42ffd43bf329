package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mgpai22/cuedit/internal/cue"
	"github.com/mgpai22/cuedit/internal/session"
	"github.com/mgpai22/cuedit/internal/subtitle"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [caption_file]",
	Short: "Apply a sequence of edits to a caption file",
	Long: `Apply edits to a caption file and write the result.

Edits use the same JSON form as the HTTP API, one per line in a
script file or one per --edit flag. Cues are addressed by the ids that
"cuedit show" prints: c1, c2, ... in file order, gaps included. Cues
created by an edit get new ids, so later lines of a script should only
name cues that earlier lines left alone. The lines {"type":"undo"} and
{"type":"redo"} step through the history built so far. Blank lines and
lines starting with # are ignored. Edits that cannot be applied are
reported and skipped.

Examples:
  cuedit edit talk.vtt --script fixes.jsonl
  cuedit edit talk.vtt --edit '{"type":"split","id":"c1","index":3}'
  cuedit edit talk.srt --edit '{"type":"reflow"}' -o reflowed.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().
		String("script", "", "File with one JSON edit per line")
	editCmd.Flags().
		StringArray("edit", nil, "JSON edit to apply (repeatable, applied after --script)")
}

// one line of an edit script
type step struct {
	line int
	undo bool
	redo bool
	edit cue.Edit
}

// parseScript reads newline separated edits. Line numbers start at 1.
func parseScript(r io.Reader) ([]step, error) {
	var steps []step

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		s, err := parseStep([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		s.line = line
		steps = append(steps, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	return steps, nil
}

func parseStep(data []byte) (step, error) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return step{}, fmt.Errorf("failed to decode edit: %w", err)
	}
	switch env.Type {
	case "undo":
		return step{undo: true}, nil
	case "redo":
		return step{redo: true}, nil
	}

	e, err := cue.DecodeEdit(data)
	if err != nil {
		return step{}, err
	}
	return step{edit: e}, nil
}

type scriptResult struct {
	applied  int
	rejected int
}

// runScript drives sess through steps, logging every step that had no
// effect.
func runScript(sess *session.Session, steps []step) scriptResult {
	var res scriptResult
	for _, s := range steps {
		var ok bool
		kind := "undo"
		switch {
		case s.undo:
			_, ok = sess.Undo()
		case s.redo:
			kind = "redo"
			_, ok = sess.Redo()
		default:
			kind = s.edit.Type()
			_, ok = sess.Apply(s.edit)
		}

		if ok {
			res.applied++
			continue
		}
		res.rejected++
		logger.Warnw("Edit had no effect",
			"line", s.line,
			"type", kind,
			"edit", describeEdit(s.edit),
		)
	}
	return res
}

func runEdit(cmd *cobra.Command, args []string) error {
	captionPath := args[0]

	scriptPath, _ := cmd.Flags().GetString("script")
	inline, _ := cmd.Flags().GetStringArray("edit")
	outputFlag, _ := cmd.Flags().GetString("output")

	if scriptPath == "" && len(inline) == 0 {
		return fmt.Errorf("nothing to apply: use --script or --edit")
	}

	var steps []step
	if scriptPath != "" {
		f, err := os.Open(scriptPath)
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		steps, err = parseScript(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("invalid script %s: %w", scriptPath, err)
		}
	}
	for i, raw := range inline {
		s, err := parseStep([]byte(raw))
		if err != nil {
			return fmt.Errorf("invalid --edit #%d: %w", i+1, err)
		}
		s.line = i + 1
		steps = append(steps, s)
	}

	set, err := openCaptions(captionPath)
	if err != nil {
		return err
	}

	outPath := outputPath(outputFlag, captionPath, "", "")

	logger.Infow("Applying edits",
		"input", captionPath,
		"output", outPath,
		"steps", len(steps),
	)

	sess := session.New(set, logger, nil)
	res := runScript(sess, steps)

	final := sess.Current()
	if err := subtitle.Save(outPath, final); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	printSaved("edited", outPath, final)
	fmt.Printf("  Applied: %d\n", res.applied)
	if res.rejected > 0 {
		fmt.Printf("  Rejected: %d\n", res.rejected)
	}

	return nil
}

// wire form of e for logs; empty for undo and redo
func describeEdit(e cue.Edit) string {
	if e == nil {
		return ""
	}
	raw, err := cue.EncodeEdit(e)
	if err != nil {
		return e.Type()
	}
	return string(raw)
}
