package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/mgpai22/cuedit/internal/platform/config"
	"github.com/mgpai22/cuedit/internal/session"
	"github.com/mgpai22/cuedit/internal/subtitle"
	"github.com/mgpai22/cuedit/internal/translate"
	"github.com/spf13/cobra"
)

var translateCmd = &cobra.Command{
	Use:   "translate [caption_file]",
	Short: "Translate captions to another language using AI",
	Long: `Translate the text of every cue in a caption file using AI.

Cue ids and timings are kept; only the words of each cue change. Gap
cues are left alone.

Examples:
  cuedit translate talk.vtt --target-language japanese
  cuedit translate talk.srt -t es --provider openai
  cuedit translate talk.vtt -l english -t german --provider anthropic -o talk.de.vtt`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().
		StringP("target-language", "t", "", "Target language for translation (required)")
	translateCmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY/OPENAI_API_KEY/ANTHROPIC_API_KEY env var)")
	translateCmd.Flags().
		String("model", "", "Model to use for translation (provider-specific, uses sensible defaults)")
	translateCmd.Flags().
		String("prompt", "", "Additional instructions for the translator")
	translateCmd.Flags().
		String("provider", "gemini", "Translation provider (gemini, openai, anthropic)")
	translateCmd.Flags().
		Int("concurrency", translate.DefaultConcurrency, "Number of parallel translation workers")
	translateCmd.Flags().
		Int("batch-size", translate.DefaultBatchSize, "Number of cues per API request")

	_ = translateCmd.MarkFlagRequired("target-language")
}

func apiKeyEnvVar(provider translate.Provider) string {
	switch provider {
	case translate.ProviderGemini:
		return config.EnvGeminiKey
	case translate.ProviderOpenAI:
		return config.EnvOpenAIKey
	case translate.ProviderAnthropic:
		return config.EnvAnthropicKey
	default:
		return "API_KEY"
	}
}

func runTranslate(cmd *cobra.Command, args []string) error {
	captionPath := args[0]

	targetLang, _ := cmd.Flags().GetString("target-language")
	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	prompt, _ := cmd.Flags().GetString("prompt")
	providerStr, _ := cmd.Flags().GetString("provider")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	outputFlag, _ := cmd.Flags().GetString("output")
	inputLang, _ := cmd.Flags().GetString("language")

	provider, err := translate.ParseProvider(providerStr)
	if err != nil {
		return err
	}

	opts := translate.Options{
		InputLanguage:  inputLang,
		TargetLanguage: targetLang,
		Model:          model,
		Prompt:         prompt,
		BatchSize:      batchSize,
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	if apiKey == "" {
		apiKey = config.APIKey(string(provider))
	}
	if apiKey == "" {
		return fmt.Errorf(
			"API key is required: use --api-key flag or set %s environment variable",
			apiKeyEnvVar(provider),
		)
	}

	if concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", concurrency)
	}
	if batchSize == 0 {
		return fmt.Errorf("batch-size must be positive, got %d", batchSize)
	}

	set, err := openCaptions(captionPath)
	if err != nil {
		return err
	}

	items := translate.ItemsFromSet(set)
	if len(items) == 0 {
		return fmt.Errorf("caption file contains no text")
	}

	outPath := outputPath(outputFlag, captionPath, targetLang, "")

	logger.Infow("Starting caption translation",
		"input", captionPath,
		"output", outPath,
		"target_language", targetLang,
		"input_language", inputLang,
		"provider", provider,
		"model", model,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	translator, err := translate.Factory(ctx, provider, apiKey, opts)
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}
	if closer, ok := translator.(io.Closer); ok {
		defer closer.Close()
	}

	logger.Infow("Translating captions",
		"items", len(items),
		"concurrency", concurrency,
	)

	var results []translate.TranslationResult
	if concurrentTranslator, ok := translator.(translate.ConcurrentTranslator); ok {
		results, err = concurrentTranslator.TranslateWithConcurrency(
			ctx,
			items,
			concurrency,
		)
	} else {
		results, err = translator.Translate(ctx, items)
	}
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	logger.Infow("Translation complete",
		"results", len(results),
	)

	edits, skipped := translate.EditsFromResults(set, results)
	for _, index := range skipped {
		logger.Warnw("Skipping invalid result index",
			"index", index,
			"max", set.Len()-1,
		)
	}

	sess := session.New(set, logger, nil)
	for _, e := range edits {
		if _, ok := sess.Apply(e); !ok {
			logger.Debugw("Translation left cue unchanged", "edit", describeEdit(e))
		}
	}

	final := sess.Current()
	if err := subtitle.Save(outPath, final); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	printSaved("translated", outPath, final)
	fmt.Printf("  Translated: %d\n", len(edits))
	fmt.Printf("  Target language: %s\n", targetLang)

	return nil
}
