package cli

import (
	"github.com/mgpai22/cuedit/internal/logging"
	"github.com/mgpai22/cuedit/internal/platform/config"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cuedit",
	Short: "Caption timeline editor",
	Long: `cuedit edits caption files as a timeline of cues.

Cues can be split, joined, retimed, moved and reflowed on sentence
boundaries. Edits can be scripted from the command line or applied
interactively through the HTTP API started by "cuedit serve".`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// a missing .env is fine
		_ = config.Load()
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("language", "l", "", "Language code of the captions (e.g., en, es, fr)")
}
