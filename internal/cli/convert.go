package cli

import (
	"fmt"

	"github.com/mgpai22/cuedit/internal/subtitle"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [caption_file]",
	Short: "Convert captions between VTT and SRT",
	Long: `Convert a caption file to another format.

SRT has no way to express silence, so gap cues are dropped when
converting to SRT and rebuilt from the timing when reading it back.

Examples:
  cuedit convert talk.srt --format vtt
  cuedit convert talk.vtt -f srt -o talk.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		StringP("format", "f", "vtt", "Output format (vtt, srt)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	captionPath := args[0]
	formatStr, _ := cmd.Flags().GetString("format")
	outputFlag, _ := cmd.Flags().GetString("output")

	format, err := subtitle.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	set, err := openCaptions(captionPath)
	if err != nil {
		return err
	}

	outPath := outputPath(
		outputFlag,
		captionPath,
		"",
		subtitle.ExtensionForFormat(format),
	)
	if outPath == captionPath && outputFlag == "" {
		return fmt.Errorf("%s is already %s: use --output to rewrite it", captionPath, format)
	}

	if target, err := subtitle.FormatFromPath(outPath); err != nil || target != format {
		return fmt.Errorf("output path %s does not match format %s", outPath, format)
	}

	logger.Infow("Converting captions",
		"input", captionPath,
		"output", outPath,
		"format", format,
	)

	if err := subtitle.Save(outPath, set); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	printSaved("converted", outPath, set)
	return nil
}
