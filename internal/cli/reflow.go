package cli

import (
	"fmt"

	"github.com/mgpai22/cuedit/internal/cue"
	"github.com/mgpai22/cuedit/internal/subtitle"
	"github.com/spf13/cobra"
)

var reflowCmd = &cobra.Command{
	Use:   "reflow [caption_file]",
	Short: "Re-segment captions on sentence boundaries",
	Long: `Re-segment a caption file so that every cue holds whole sentences.

Cues shorter than the minimum duration are folded into their
neighbours. Word timings are interpolated from each cue's character
counts, so the overall timeline is unchanged.

Examples:
  cuedit reflow talk.vtt
  cuedit reflow talk.srt -o talk.reflowed.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runReflow,
}

func init() {
	rootCmd.AddCommand(reflowCmd)
}

func runReflow(cmd *cobra.Command, args []string) error {
	captionPath := args[0]
	outputFlag, _ := cmd.Flags().GetString("output")

	set, err := openCaptions(captionPath)
	if err != nil {
		return err
	}

	outPath := outputPath(outputFlag, captionPath, "", "")
	logger.Infow("Reflowing captions",
		"input", captionPath,
		"output", outPath,
		"cues", set.Len(),
	)

	reflowed, ok := set.Edit(cue.Reflow{})
	if !ok {
		logger.Warnw("Nothing to reflow", "input", captionPath)
		reflowed = set
	}

	if err := subtitle.Save(outPath, reflowed); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	printSaved("reflowed", outPath, reflowed)
	fmt.Printf("  Cues before: %d\n", set.Len())

	return nil
}
