package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"codeberg.org/snonux/autolingo/internal/language"
)

// Key identifies a cached translation
type Key struct {
	Text string
	From language.Language
	To   language.Language
}

func (k Key) flightKey() string {
	return k.Text + "\x00" + string(k.From) + "\x00" + string(k.To)
}

// Stats is a point in time view of cache activity
type Stats struct {
	Entries    int
	Detections int
	Hits       int64
	Misses     int64
	Detects    int64 // Detector backend invocations
}

// Cache stores translations and detected languages for one session. It is
// safe for concurrent use. External calls run outside the lock; concurrent
// misses for the same key share a single in-flight call.
type Cache struct {
	service  Service
	detector language.Detector
	logger   *slog.Logger

	mu           sync.RWMutex
	translations map[Key]string
	detections   map[string]language.Language

	lookups singleflight.Group
	detects singleflight.Group

	hits        atomic.Int64
	misses      atomic.Int64
	detectCalls atomic.Int64
}

// NewCache creates an empty cache. detector may be nil when only fixed
// direction lookups are used; logger may be nil.
func NewCache(service Service, detector language.Detector, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		service:      service,
		detector:     detector,
		logger:       logger,
		translations: make(map[Key]string),
		detections:   make(map[string]language.Language),
	}
}

// Lookup returns the translation of text, calling the translation service
// only when the key is not cached yet. Failures are returned and not cached.
func (c *Cache) Lookup(ctx context.Context, text string, from, to language.Language) (string, error) {
	if err := checkPair(from, to); err != nil {
		return "", err
	}

	key := Key{Text: text, From: from, To: to}
	if translated, ok := c.get(key); ok {
		c.hits.Add(1)
		c.logger.Debug("translation cache hit", "text", text, "from", from, "to", to)
		return translated, nil
	}

	ch := c.lookups.DoChan(key.flightKey(), func() (interface{}, error) {
		// The flight is shared; one caller's cancellation must not fail the others
		return c.fill(context.WithoutCancel(ctx), key)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// fill runs inside a lookup flight. Another flight may have committed the
// key between the caller's read and this call.
func (c *Cache) fill(ctx context.Context, key Key) (string, error) {
	if translated, ok := c.get(key); ok {
		c.hits.Add(1)
		return translated, nil
	}

	c.misses.Add(1)
	c.logger.Debug("translation cache miss", "text", key.Text, "from", key.From, "to", key.To, "service", c.service.Name())

	translated, err := c.service.Translate(ctx, key.Text, key.From, key.To)
	if err != nil {
		return "", fmt.Errorf("translate %q from %s to %s: %w", key.Text, key.From, key.To, err)
	}
	return c.commit(key, translated), nil
}

// LookupWords joins words with single spaces and looks the result up, so
// word lists and the equivalent sentence share one entry
func (c *Cache) LookupWords(ctx context.Context, words []string, from, to language.Language) (string, error) {
	return c.Lookup(ctx, JoinWords(words), from, to)
}

// JoinWords canonicalizes a word list into a single key text
func JoinWords(words []string) string {
	var fields []string
	for _, w := range words {
		fields = append(fields, strings.Fields(w)...)
	}
	return strings.Join(fields, " ")
}

// InsertTranslation stores value under the key, replacing any existing entry
func (c *Cache) InsertTranslation(text string, from, to language.Language, value string) error {
	if err := checkPair(from, to); err != nil {
		return err
	}

	c.mu.Lock()
	c.translations[Key{Text: text, From: from, To: to}] = value
	c.mu.Unlock()
	return nil
}

// Detect returns the language of text. The first answer for a given text
// is kept for the lifetime of the cache.
func (c *Cache) Detect(ctx context.Context, text string) (language.Language, error) {
	c.mu.RLock()
	lang, ok := c.detections[text]
	c.mu.RUnlock()
	if ok {
		return lang, nil
	}

	if c.detector == nil {
		return "", errors.New("no language detector configured")
	}

	ch := c.detects.DoChan(text, func() (interface{}, error) {
		c.mu.RLock()
		lang, ok := c.detections[text]
		c.mu.RUnlock()
		if ok {
			return lang, nil
		}

		c.detectCalls.Add(1)
		detected, err := c.detector.Detect(context.WithoutCancel(ctx), text, language.Supported())
		if err != nil {
			return language.Language(""), fmt.Errorf("detect language of %q: %w", text, err)
		}
		if !detected.Valid() {
			return language.Language(""), fmt.Errorf("detect language of %q: %w: %q", text, language.ErrUnsupported, string(detected))
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if existing, ok := c.detections[text]; ok {
			return existing, nil
		}
		c.detections[text] = detected
		return detected, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(language.Language), nil
	}
}

// Translate detects the language of text and translates it into to. Text
// already in the target language is returned unchanged.
func (c *Cache) Translate(ctx context.Context, text string, to language.Language) (string, error) {
	from, err := c.Detect(ctx, text)
	if err != nil {
		return "", err
	}
	if from == to {
		return text, nil
	}
	return c.Lookup(ctx, text, from, to)
}

// Len returns the number of cached translations
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.translations)
}

// Stats returns the current counters
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	entries, detections := len(c.translations), len(c.detections)
	c.mu.RUnlock()

	return Stats{
		Entries:    entries,
		Detections: detections,
		Hits:       c.hits.Load(),
		Misses:     c.misses.Load(),
		Detects:    c.detectCalls.Load(),
	}
}

func (c *Cache) get(key Key) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	translated, ok := c.translations[key]
	return translated, ok
}

// commit stores translated unless an entry appeared meanwhile, in which case
// the existing value wins and is returned
func (c *Cache) commit(key Key, translated string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.translations[key]; ok {
		return existing
	}
	c.translations[key] = translated
	return translated
}
