package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/autolingo/internal/exercise"
	"codeberg.org/snonux/autolingo/internal/language"
	"codeberg.org/snonux/autolingo/internal/logging"
	"codeberg.org/snonux/autolingo/internal/translation"
)

// BuildCache creates the translation cache for the configured backend
func BuildCache(ctx context.Context, s *Settings, logger *slog.Logger) (*translation.Cache, error) {
	service, err := translation.NewService(ctx, &translation.Config{
		Provider:  s.Translation.Provider,
		Model:     s.Translation.Model,
		OpenAIKey: s.Translation.OpenAIKey,
		GeminiKey: s.Translation.GeminiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create translation service: %w", err)
	}
	return translation.NewCache(service, language.NewLinguaDetector(), logger), nil
}

func loadCommandSettings() (*Settings, *slog.Logger, error) {
	settings, err := LoadSettings()
	if err != nil {
		return nil, nil, err
	}
	return settings, logging.New(settings.Log.Level, settings.Log.Format), nil
}

func newTranslateCommand() *cobra.Command {
	var auto bool

	cmd := &cobra.Command{
		Use:   "translate <text...>",
		Short: "Translate text through the cache in the course direction",
		Long: `Translate text through the translation cache. The words are joined with
single spaces. The lookup runs twice to show the cost of a cached hit.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, logger, err := loadCommandSettings()
			if err != nil {
				return err
			}
			cache, err := BuildCache(cmd.Context(), settings, logger)
			if err != nil {
				return err
			}
			from, to, err := settings.Direction()
			if err != nil {
				return err
			}
			if auto {
				return RunTranslateAuto(cmd.Context(), cmd.OutOrStdout(), cache, args, to)
			}
			return RunTranslate(cmd.Context(), cmd.OutOrStdout(), cache, args, from, to)
		},
	}
	cmd.Flags().BoolVar(&auto, "auto", false, "Detect the source language instead of using --from")
	return cmd
}

// RunTranslate looks words up twice and prints the translation with timings
func RunTranslate(ctx context.Context, w io.Writer, cache *translation.Cache, words []string, from, to language.Language) error {
	return timedTwice(w, func() (string, error) {
		return cache.LookupWords(ctx, words, from, to)
	})
}

// RunTranslateAuto is RunTranslate with the source language detected
func RunTranslateAuto(ctx context.Context, w io.Writer, cache *translation.Cache, words []string, to language.Language) error {
	text := translation.JoinWords(words)
	return timedTwice(w, func() (string, error) {
		return cache.Translate(ctx, text, to)
	})
}

func timedTwice(w io.Writer, lookup func() (string, error)) error {
	start := time.Now()
	translated, err := lookup()
	if err != nil {
		return err
	}
	first := time.Since(start)

	start = time.Now()
	if _, err := lookup(); err != nil {
		return err
	}
	second := time.Since(start)

	fmt.Fprintf(w, "Translation: %s\n", translated)
	fmt.Fprintf(w, "Time to translate: %v\n", first)
	fmt.Fprintf(w, "Time to translate (cached): %v\n", second)
	return nil
}

func newDetectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <text...>",
		Short: "Detect whether a text is English or Dutch",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunDetect(cmd.Context(), cmd.OutOrStdout(), language.NewLinguaDetector(), translation.JoinWords(args))
		},
	}
}

// RunDetect prints the language of text
func RunDetect(ctx context.Context, w io.Writer, detector language.Detector, text string) error {
	lang, err := detector.Detect(ctx, text, language.Supported())
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s (%s)\n", lang.Name(), lang)
	return nil
}

func newClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <marker>",
		Short: "Show the exercise variant for a data-test marker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunClassify(cmd.OutOrStdout(), args[0])
		},
	}
}

// RunClassify prints the variant for marker and whether it can be solved
func RunClassify(w io.Writer, marker string) error {
	variant, err := exercise.Classify(marker)
	if err != nil {
		return err
	}

	support := "supported"
	if !variant.Supported() {
		support = "unsupported"
	}
	fmt.Fprintf(w, "%s (%s)\n", variant, support)
	return nil
}
