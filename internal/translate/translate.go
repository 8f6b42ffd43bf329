// Package translate rewrites cue text into another language through LLM
// providers. Results come back as setContents edits so that translation
// goes through the same edit history as any other change.
package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// TranslationItem is one cue's text as sent to a model. Index is the cue's
// position in its set; Seconds is how long the cue stays on screen.
type TranslationItem struct {
	Index   int     `json:"index"`
	Text    string  `json:"text"`
	Seconds float64 `json:"seconds,omitempty"`
}

// TranslationResult is a model's answer for the item with the same Index.
type TranslationResult struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

type Translator interface {
	Translate(
		ctx context.Context,
		items []TranslationItem,
	) ([]TranslationResult, error)
}

// ConcurrentTranslator sends several batches at once.
type ConcurrentTranslator interface {
	Translator
	TranslateWithConcurrency(
		ctx context.Context,
		items []TranslationItem,
		concurrency int,
	) ([]TranslationResult, error)
}

type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

const (
	DefaultBatchSize   = 50
	DefaultConcurrency = 3
)

var ErrUnknownProvider = errors.New("unsupported translation provider")

type constructor func(ctx context.Context, apiKey string, opts Options) (Translator, error)

var constructors = map[Provider]constructor{
	ProviderGemini: func(ctx context.Context, apiKey string, opts Options) (Translator, error) {
		return NewGeminiTranslator(ctx, apiKey, opts)
	},
	ProviderOpenAI: func(ctx context.Context, apiKey string, opts Options) (Translator, error) {
		return NewOpenAITranslator(ctx, apiKey, opts)
	},
	ProviderAnthropic: func(ctx context.Context, apiKey string, opts Options) (Translator, error) {
		return NewAnthropicTranslator(ctx, apiKey, opts)
	},
}

// Providers lists the known providers in name order.
func Providers() []Provider {
	names := make([]Provider, 0, len(constructors))
	for p := range constructors {
		names = append(names, p)
	}
	slices.Sort(names)
	return names
}

// ParseProvider accepts a provider name in any case.
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := constructors[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
	}
	return p, nil
}

type Options struct {
	InputLanguage  string
	TargetLanguage string
	Model          string
	// extra instructions appended to every prompt
	Prompt string
	// cues per request; 0 means DefaultBatchSize
	BatchSize int
}

func (o Options) Validate() error {
	target := strings.TrimSpace(o.TargetLanguage)
	if target == "" {
		return fmt.Errorf("target language is required")
	}
	if strings.EqualFold(strings.TrimSpace(o.InputLanguage), target) {
		return fmt.Errorf(
			"input language %q and target language %q cannot be the same",
			o.InputLanguage,
			o.TargetLanguage,
		)
	}
	if o.BatchSize < 0 {
		return fmt.Errorf("batch size must not be negative, got %d", o.BatchSize)
	}
	return nil
}

// Factory validates opts and builds the provider's translator.
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Translator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	build, ok := constructors[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
	return build(ctx, apiKey, opts)
}

var promptRules = []string{
	"Translate only the text of each cue and keep its meaning.",
	"Each text is one caption cue. Keep sentence-ending punctuation at the end of a cue when the source has it.",
	"Never move words between cues, even when a sentence spans several of them.",
	"Where 'seconds' is given, keep the translation short enough to read in that time.",
	"Return only a JSON array of objects with 'index' and 'text' fields, one per input cue.",
	"The 'index' values must match the input exactly.",
	"Do not add explanations or markdown.",
}

// BuildPrompt renders the request for one batch of cues.
func BuildPrompt(opts Options, items []TranslationItem) string {
	var sb strings.Builder

	source := "caption texts"
	if opts.InputLanguage != "" {
		source = opts.InputLanguage + " " + source
	}
	fmt.Fprintf(&sb, "Translate the following %s to %s.\n\n", source, opts.TargetLanguage)

	sb.WriteString("Rules:\n")
	for i, rule := range promptRules {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, rule)
	}
	sb.WriteString("\n")

	if opts.Prompt != "" {
		fmt.Fprintf(&sb, "Additional instructions: %s\n\n", opts.Prompt)
	}

	sb.WriteString("Input JSON:\n")
	inputJSON, _ := json.MarshalIndent(items, "", "  ")
	sb.Write(inputJSON)
	sb.WriteString("\n\nOutput the translated JSON array only:")

	return sb.String()
}
