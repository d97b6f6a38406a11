package language

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Detector classifies text into one of the allowed languages
type Detector interface {
	Detect(ctx context.Context, text string, allowed []Language) (Language, error)
}

// LinguaDetector detects languages with lingua-go restricted to the
// supported languages
type LinguaDetector struct {
	detector lingua.LanguageDetector
}

// NewLinguaDetector builds a detector that only knows English and Dutch.
// The models are loaded lazily on first use.
func NewLinguaDetector() *LinguaDetector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.English, lingua.Dutch).
		Build()

	return &LinguaDetector{detector: detector}
}

// Detect returns the language of text. It fails with ErrUndetermined when
// lingua cannot decide and with ErrUnsupported when the result is not in
// allowed.
func (d *LinguaDetector) Detect(ctx context.Context, text string, allowed []Language) (Language, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return "", fmt.Errorf("%w: empty text", ErrUndetermined)
	}

	detected, ok := d.detector.DetectLanguageOf(cleaned)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUndetermined, cleaned)
	}

	lang, err := fromLingua(detected)
	if err != nil {
		return "", err
	}

	if len(allowed) > 0 && !slices.Contains(allowed, lang) {
		return "", fmt.Errorf("%w: detected %s outside allow-list", ErrUnsupported, lang)
	}

	return lang, nil
}

func fromLingua(l lingua.Language) (Language, error) {
	switch l {
	case lingua.English:
		return English, nil
	case lingua.Dutch:
		return Dutch, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, l.String())
	}
}
