package solver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/sync/errgroup"

	"codeberg.org/snonux/autolingo/internal/exercise"
	"codeberg.org/snonux/autolingo/internal/language"
)

var (
	// ErrUnrecognizedPrompt is returned when prompt text does not follow a
	// known pattern
	ErrUnrecognizedPrompt = errors.New("unrecognized exercise prompt")

	// ErrOddCards is returned when a match exercise has an odd card count
	ErrOddCards = errors.New("match exercise needs an even number of cards")
)

// Translator is the part of the translation cache solvers need
type Translator interface {
	Lookup(ctx context.Context, text string, from, to language.Language) (string, error)
	Detect(ctx context.Context, text string) (language.Language, error)
}

// Direction is the fixed translation direction of the course
type Direction struct {
	From language.Language
	To   language.Language
}

// Options configures a Solver
type Options struct {
	Direction   Direction
	TypingDelay time.Duration // Pause between typed characters
	IgnorePause time.Duration // Pause on interstitial screens
	Logger      *slog.Logger
}

// DefaultOptions returns the English to Dutch course settings
func DefaultOptions() Options {
	return Options{
		Direction:   Direction{From: language.English, To: language.Dutch},
		TypingDelay: 40 * time.Millisecond,
		IgnorePause: time.Second,
	}
}

// Challenge is the scraped text of one exercise
type Challenge struct {
	Variant   exercise.Variant
	Prompt    string   // Select prompt, Assist word, Translate or PartialReverseTranslate sentence
	Header    string   // Translate header, e.g. "Write this in English"
	Choices   []string // Select and Assist choices, Match cards
	Remainder string   // PartialReverseTranslate text left to type
}

// Solver derives plans from challenges
type Solver struct {
	translator Translator
	opts       Options
	logger     *slog.Logger
}

// New creates a solver backed by translator
func New(translator Translator, opts Options) *Solver {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Solver{translator: translator, opts: opts, logger: logger}
}

// Solve dispatches to the strategy for the challenge's variant
func (s *Solver) Solve(ctx context.Context, ch Challenge) (Plan, error) {
	if err := ch.Variant.Check(); err != nil {
		return Plan{Variant: ch.Variant}, err
	}

	switch ch.Variant {
	case exercise.Ignore:
		return Plan{Variant: exercise.Ignore, Confident: true, Actions: []Action{pause(s.opts.IgnorePause)}}, nil
	case exercise.Select:
		return s.Select(ctx, ch.Prompt, ch.Choices)
	case exercise.Assist:
		return s.Assist(ctx, ch.Prompt, ch.Choices)
	case exercise.Translate:
		return s.Translate(ctx, ch.Header, ch.Prompt)
	case exercise.Match:
		return s.Match(ctx, ch.Choices)
	case exercise.PartialReverseTranslate:
		return s.PartialReverse(ctx, ch.Prompt, ch.Remainder)
	default:
		return Plan{Variant: ch.Variant}, fmt.Errorf("%w: %s", exercise.ErrUnsupportedExercise, ch.Variant)
	}
}

// Select picks the choice whose translation equals the translation of the
// quoted phrase in the prompt. Without a match it falls back to choice 0
// and reports Confident=false.
func (s *Solver) Select(ctx context.Context, prompt string, choices []string) (Plan, error) {
	plan := Plan{Variant: exercise.Select}
	if len(choices) == 0 {
		return plan, fmt.Errorf("select exercise without choices")
	}

	texts := make([]string, 0, len(choices)+1)
	texts = append(texts, QuotedPhrase(prompt))
	for _, choice := range choices {
		texts = append(texts, StripTrailingNumbering(choice))
	}

	translated, err := s.translateAll(ctx, texts, s.opts.Direction)
	if err != nil {
		return plan, err
	}

	want := translated[0]
	plan.Choice, plan.Confident = firstFold(want, translated[1:])
	if !plan.Confident {
		s.logger.Warn("no confident select match, falling back to first choice", "prompt", prompt, "translation", want)
	}
	plan.Answer = choices[plan.Choice]
	plan.Actions = []Action{click(TargetChoice, plan.Choice), {Kind: ActionSubmit}}
	return plan, nil
}

// Assist detects the language of word, translates it into the other
// language and picks the choice that equals the translation exactly
func (s *Solver) Assist(ctx context.Context, word string, choices []string) (Plan, error) {
	plan := Plan{Variant: exercise.Assist}
	if len(choices) == 0 {
		return plan, fmt.Errorf("assist exercise without choices")
	}

	translated, err := s.translateDetected(ctx, word)
	if err != nil {
		return plan, err
	}
	translated = strings.TrimSpace(translated)

	for i, choice := range choices {
		if StripLeadingNumbering(choice) == translated {
			plan.Choice, plan.Confident = i, true
			break
		}
	}
	if !plan.Confident {
		s.logger.Warn("no confident assist match, falling back to first choice", "word", word, "translation", translated)
	}
	plan.Answer = choices[plan.Choice]
	plan.Actions = []Action{click(TargetChoice, plan.Choice), {Kind: ActionSubmit}}
	return plan, nil
}

var headerPattern = regexp.MustCompile(`(?i)write\s+this\s+in\s+(\p{L}+)`)

// Translate reads the target language from the header, translates sentence
// into it and types the result
func (s *Solver) Translate(ctx context.Context, header, sentence string) (Plan, error) {
	plan := Plan{Variant: exercise.Translate}

	to, err := HeaderLanguage(header)
	if err != nil {
		return plan, err
	}
	from, err := to.Opposite()
	if err != nil {
		return plan, err
	}

	translated, err := s.translator.Lookup(ctx, sentence, from, to)
	if err != nil {
		return plan, err
	}

	plan.Answer = translated
	plan.Confident = true
	plan.Actions = append(typeText(translated, s.opts.TypingDelay), Action{Kind: ActionRevealReference})
	return plan, nil
}

// HeaderLanguage maps a "Write this in <language>" header to the language
func HeaderLanguage(header string) (language.Language, error) {
	m := headerPattern.FindStringSubmatch(header)
	if m == nil {
		return "", fmt.Errorf("%w: header %q", ErrUnrecognizedPrompt, header)
	}
	return language.Parse(m[1])
}

// Match pairs every source card with the first target card equal to its
// translation. Target cards are not excluded after binding and unmatched
// source cards are skipped.
func (s *Solver) Match(ctx context.Context, cards []string) (Plan, error) {
	plan := Plan{Variant: exercise.Match}
	if len(cards)%2 != 0 {
		return plan, fmt.Errorf("%w: got %d", ErrOddCards, len(cards))
	}

	half := len(cards) / 2
	sources, targets := cards[:half], cards[half:]

	translated, err := s.translateAll(ctx, sources, s.opts.Direction)
	if err != nil {
		return plan, err
	}

	for i, want := range translated {
		j, ok := firstFold(want, targets)
		if !ok {
			s.logger.Debug("match card without partner", "card", sources[i], "translation", want)
			continue
		}
		plan.Pairs = append(plan.Pairs, Pair{Source: i, Target: j})
		plan.Actions = append(plan.Actions, click(TargetCard, i), click(TargetCard, half+j))
	}

	plan.Confident = len(plan.Pairs) == half
	return plan, nil
}

// PartialReverse warms the cache with the translation of the displayed
// sentence and types the remainder the exercise expects
func (s *Solver) PartialReverse(ctx context.Context, sentence, remainder string) (Plan, error) {
	plan := Plan{Variant: exercise.PartialReverseTranslate}

	if _, err := s.translateDetected(ctx, sentence); err != nil {
		return plan, err
	}

	plan.Answer = remainder
	plan.Confident = true
	plan.Actions = typeText(remainder, s.opts.TypingDelay)
	return plan, nil
}

func (s *Solver) translateDetected(ctx context.Context, text string) (string, error) {
	from, err := s.translator.Detect(ctx, text)
	if err != nil {
		return "", err
	}
	to, err := from.Opposite()
	if err != nil {
		return "", err
	}
	return s.translator.Lookup(ctx, text, from, to)
}

// translateAll looks up all texts concurrently, keeping their order
func (s *Solver) translateAll(ctx context.Context, texts []string, dir Direction) ([]string, error) {
	out := make([]string, len(texts))
	g, ctx := errgroup.WithContext(ctx)
	for i, text := range texts {
		g.Go(func() error {
			translated, err := s.translator.Lookup(ctx, text, dir.From, dir.To)
			if err != nil {
				return err
			}
			out[i] = strings.TrimSpace(translated)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// firstFold returns the index of the first candidate equal to want under
// case folding, or 0 and false
func firstFold(want string, candidates []string) (int, bool) {
	for i, candidate := range candidates {
		if strings.EqualFold(strings.TrimSpace(candidate), want) {
			return i, true
		}
	}
	return 0, false
}

// QuotedPhrase returns the text between smart quotes, or the trimmed prompt
// when it has none
func QuotedPhrase(prompt string) string {
	_, rest, ok := strings.Cut(prompt, "“")
	if !ok {
		return strings.TrimSpace(prompt)
	}
	phrase, _, ok := strings.Cut(rest, "”")
	if !ok {
		return strings.TrimSpace(prompt)
	}
	return strings.TrimSpace(phrase)
}

func isNumbering(r rune) bool {
	return unicode.IsDigit(r) || unicode.IsSpace(r)
}

// StripTrailingNumbering removes keyboard shortcut digits after a choice
func StripTrailingNumbering(s string) string {
	return strings.TrimSpace(strings.TrimRightFunc(s, isNumbering))
}

// StripLeadingNumbering removes keyboard shortcut digits before a choice
func StripLeadingNumbering(s string) string {
	return strings.TrimSpace(strings.TrimLeftFunc(s, isNumbering))
}
