package batch

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/autolingo/internal/language"
)

// SeedEntry is one line of a seed file
type SeedEntry struct {
	Text        string
	Translation string
	// NeedsTranslation marks a bare line that is translated once to warm the cache
	NeedsTranslation bool
}

// Cache is the part of the translation cache seeding needs
type Cache interface {
	InsertTranslation(text string, from, to language.Language, value string) error
	Lookup(ctx context.Context, text string, from, to language.Language) (string, error)
}

// ReadSeedFile reads seed entries from a file.
// Supports formats:
// - With translation: "hond = dog" (stored as is)
// - Text only: "hond" (translated through the service once)
// Blank lines and lines starting with '#' are skipped.
func ReadSeedFile(filename string) ([]SeedEntry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	defer f.Close()

	var entries []SeedEntry
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		text, translation, found := strings.Cut(line, "=")
		if !found {
			entries = append(entries, SeedEntry{Text: line, NeedsTranslation: true})
			continue
		}

		text, translation = strings.TrimSpace(text), strings.TrimSpace(translation)
		if text == "" || translation == "" {
			return nil, fmt.Errorf("%s:%d: both sides of '=' must be set", filename, n)
		}
		entries = append(entries, SeedEntry{Text: text, Translation: translation})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	return entries, nil
}

// Seed stores the entries in cache for the from->to direction and returns
// how many entries were stored and how many were translated
func Seed(ctx context.Context, cache Cache, entries []SeedEntry, from, to language.Language) (stored, translated int, err error) {
	for _, entry := range entries {
		if entry.NeedsTranslation {
			value, err := cache.Lookup(ctx, entry.Text, from, to)
			if err != nil {
				return stored, translated, fmt.Errorf("failed to translate seed %q: %w", entry.Text, err)
			}
			fmt.Printf("Translated '%s' to %s: %s\n", entry.Text, to.Name(), value)
			translated++
			continue
		}

		if err := cache.InsertTranslation(entry.Text, from, to, entry.Translation); err != nil {
			return stored, translated, fmt.Errorf("failed to seed %q: %w", entry.Text, err)
		}
		stored++
	}
	return stored, translated, nil
}
