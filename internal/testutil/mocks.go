package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"codeberg.org/snonux/autolingo/internal/language"
)

// MockTranslator mocks the translation service. It is safe for concurrent
// use and records every call.
type MockTranslator struct {
	Translations map[string]string
	Errors       map[string]error
	Delay        time.Duration

	mu    sync.Mutex
	calls []string
}

// NewMockTranslator returns a translator answering from translations
func NewMockTranslator(translations map[string]string) *MockTranslator {
	return &MockTranslator{
		Translations: translations,
		Errors:       make(map[string]error),
	}
}

// Translate mocks translating text
func (m *MockTranslator) Translate(ctx context.Context, text string, from, to language.Language) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, fmt.Sprintf("Translate: %s (%s->%s)", text, from, to))
	m.mu.Unlock()

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if err, ok := m.Errors[text]; ok {
		return "", err
	}

	if translation, ok := m.Translations[text]; ok {
		return translation, nil
	}

	// Default mock translation
	return fmt.Sprintf("mock translation of %s", text), nil
}

// Name returns the backend name
func (m *MockTranslator) Name() string {
	return "mock"
}

// Calls returns a copy of the recorded calls
func (m *MockTranslator) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// CallCount returns how often text was translated
func (m *MockTranslator) CallCount(text string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	prefix := fmt.Sprintf("Translate: %s (", text)
	for _, call := range m.calls {
		if len(call) >= len(prefix) && call[:len(prefix)] == prefix {
			count++
		}
	}
	return count
}

// MockDetector mocks the language detector backend
type MockDetector struct {
	Languages map[string]language.Language
	Errors    map[string]error
	Fallback  language.Language // Returned for unknown text when set

	mu    sync.Mutex
	calls map[string]int
}

// NewMockDetector returns a detector answering from languages
func NewMockDetector(languages map[string]language.Language) *MockDetector {
	return &MockDetector{
		Languages: languages,
		Errors:    make(map[string]error),
		calls:     make(map[string]int),
	}
}

// Detect mocks language detection
func (m *MockDetector) Detect(ctx context.Context, text string, allowed []language.Language) (language.Language, error) {
	m.mu.Lock()
	m.calls[text]++
	m.mu.Unlock()

	if err, ok := m.Errors[text]; ok {
		return "", err
	}
	if lang, ok := m.Languages[text]; ok {
		return lang, nil
	}
	if m.Fallback != "" {
		return m.Fallback, nil
	}
	return "", fmt.Errorf("%w: %q", language.ErrUndetermined, text)
}

// CallCount returns how often text was detected
func (m *MockDetector) CallCount(text string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[text]
}
