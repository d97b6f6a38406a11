package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"codeberg.org/snonux/autolingo/internal/language"
)

// ErrServiceUnavailable is returned when the circuit breaker rejects a call
var ErrServiceUnavailable = errors.New("translation service unavailable")

// Service translates text between two supported languages. Implementations
// are expected to be deterministic for identical input.
type Service interface {
	Translate(ctx context.Context, text string, from, to language.Language) (string, error)

	// Name returns the backend name
	Name() string
}

// Config holds configuration for translation backends
type Config struct {
	Provider string // "openai" or "gemini"
	Model    string // Backend specific model name, empty for the default

	OpenAIKey     string
	OpenAIBaseURL string // Optional, for OpenAI compatible endpoints
	GeminiKey     string

	// DisableBreaker turns off the circuit breaker wrapper
	DisableBreaker bool
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: "openai",
	}
}

// NewService creates the translation backend named in config, wrapped in a
// circuit breaker unless disabled
func NewService(ctx context.Context, config *Config) (Service, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var (
		service Service
		err     error
	)

	switch strings.ToLower(config.Provider) {
	case "openai", "":
		service, err = NewOpenAITranslator(config.OpenAIKey, config.Model, config.OpenAIBaseURL)
	case "gemini":
		service, err = NewGeminiTranslator(ctx, config.GeminiKey, config.Model)
	default:
		return nil, fmt.Errorf("unknown translation provider: %s", config.Provider)
	}
	if err != nil {
		return nil, err
	}

	if config.DisableBreaker {
		return service, nil
	}
	return NewBreakerService(service, DefaultBreakerSettings()), nil
}

// buildPrompt is shared by the chat based backends
func buildPrompt(text string, from, to language.Language) string {
	return fmt.Sprintf("Translate the following %s text to %s. Respond with only the %s translation, nothing else.\n\n%s",
		from.Name(), to.Name(), to.Name(), text)
}

// cleanResult strips whitespace and wrapping quotes models like to add
func cleanResult(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"“”")
	return strings.TrimSpace(s)
}

func checkPair(from, to language.Language) error {
	if !from.Valid() {
		return fmt.Errorf("%w: %q", language.ErrUnsupported, string(from))
	}
	if !to.Valid() {
		return fmt.Errorf("%w: %q", language.ErrUnsupported, string(to))
	}
	return nil
}
