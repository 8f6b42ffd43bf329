package cli

import (
	"fmt"

	"github.com/mgpai22/cuedit/internal/cue"
	"github.com/mgpai22/cuedit/internal/subtitle"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [caption_file]",
	Short: "List the cues of a caption file",
	Long: `List every cue of a caption file with its id, times and text.

With --at, show only the cue active at that time together with the
boundaries a player would seek to when stepping backwards or forwards.

Examples:
  cuedit show talk.vtt
  cuedit show talk.srt --at 12.5
  cuedit show talk.vtt --at 00:01:02.250`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().
		String("at", "", "Show the cue active at this time (seconds or HH:MM:SS.mmm)")
}

func runShow(cmd *cobra.Command, args []string) error {
	at, _ := cmd.Flags().GetString("at")

	set, err := openCaptions(args[0])
	if err != nil {
		return err
	}

	if at == "" {
		for i, c := range set.Cues() {
			fmt.Println(formatCueLine(i, c))
		}
		return nil
	}

	t, err := parseTime(at)
	if err != nil {
		return err
	}

	if c, ok := set.CueAt(t); ok {
		fmt.Println(formatCueLine(set.Index(c.ID()), c))
	} else {
		fmt.Printf("No cue at %s\n", subtitle.FormatTimestamp(t))
	}
	fmt.Printf("  Previous start: %s\n", subtitle.FormatTimestamp(set.PreviousStart(t)))
	fmt.Printf("  Next end: %s\n", subtitle.FormatTimestamp(set.NextEnd(t)))

	return nil
}

func formatCueLine(i int, c *cue.Cue) string {
	text := c.Text()
	if c.IsGap() {
		text = "[gap]"
	}
	return fmt.Sprintf("%4d  %s --> %s  %s  %s",
		i,
		subtitle.FormatTimestamp(c.Start()),
		subtitle.FormatTimestamp(c.End()),
		c.ID(),
		text,
	)
}
