package cli

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/mgpai22/cuedit/internal/cue"
	"github.com/mgpai22/cuedit/internal/media"
	"github.com/mgpai22/cuedit/internal/subtitle"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new [media_file]",
	Short: "Start an empty caption file for a video or audio file",
	Long: `Create a caption file holding a single silent cue that spans the
whole media file. The duration is read with ffprobe, which must be on
PATH, unless --duration is given.

Examples:
  cuedit new talk.mp4
  cuedit new podcast.mp3 -o podcast.srt
  cuedit new talk.mp4 --duration 95.5`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().
		Float64("duration", 0, "Duration in seconds (skips ffprobe)")
	newCmd.Flags().
		Bool("force", false, "Overwrite an existing caption file")
}

func runNew(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]
	duration, _ := cmd.Flags().GetFloat64("duration")
	force, _ := cmd.Flags().GetBool("force")
	outputFlag, _ := cmd.Flags().GetString("output")

	if duration < 0 {
		return fmt.Errorf("duration must not be negative, got %g", duration)
	}

	if duration == 0 {
		if !media.IsMediaFile(mediaPath) {
			return fmt.Errorf("unsupported media file: %s", mediaPath)
		}

		logger.Infow("Probing media file", "input", mediaPath)
		info, err := media.Probe(mediaPath)
		if err != nil {
			return fmt.Errorf("failed to probe media file: %w", err)
		}
		logger.Debugw("Probed media file",
			"duration", info.Duration,
			"format", info.Format,
			"has_audio", info.HasAudio,
			"has_video", info.HasVideo,
		)
		if !info.HasAudio {
			logger.Warnw("Media file has no audio stream", "input", mediaPath)
		}
		duration = info.Duration
	}

	outPath := outputPath(outputFlag, mediaPath, "", ".vtt")
	if _, err := os.Stat(outPath); err == nil && !force {
		return fmt.Errorf("%s already exists: use --force to overwrite", outPath)
	}

	set := cue.NewSet(cue.NewCue(uuid.NewString(), 0, duration, nil))
	if err := subtitle.Save(outPath, set); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	printSaved("created", outPath, set)
	return nil
}
