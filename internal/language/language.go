package language

import (
	"errors"
	"fmt"
	"strings"
)

// Language is a supported language code
type Language string

const (
	English Language = "en"
	Dutch   Language = "nl"
)

var (
	// ErrUnsupported is returned for any language outside the supported set
	ErrUnsupported = errors.New("unsupported language")

	// ErrUndetermined is returned when a detector cannot decide
	ErrUndetermined = errors.New("language could not be determined")
)

// Supported returns the allow-list in a stable order
func Supported() []Language {
	return []Language{English, Dutch}
}

var names = map[string]Language{
	"en":         English,
	"english":    English,
	"engels":     English,
	"nl":         Dutch,
	"dutch":      Dutch,
	"nederlands": Dutch,
}

// Parse maps a code or a language name (in either language) to a Language
func Parse(s string) (Language, error) {
	if lang, ok := names[strings.ToLower(strings.TrimSpace(s))]; ok {
		return lang, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupported, s)
}

// Valid reports whether l is one of the supported languages
func (l Language) Valid() bool {
	return l == English || l == Dutch
}

// Opposite returns the other supported language
func (l Language) Opposite() (Language, error) {
	switch l {
	case English:
		return Dutch, nil
	case Dutch:
		return English, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupported, string(l))
	}
}

// Name returns the English name of the language
func (l Language) Name() string {
	switch l {
	case English:
		return "English"
	case Dutch:
		return "Dutch"
	default:
		return string(l)
	}
}

func (l Language) String() string {
	return string(l)
}
