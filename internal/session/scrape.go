package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"codeberg.org/snonux/autolingo/internal/exercise"
	"codeberg.org/snonux/autolingo/internal/page"
	"codeberg.org/snonux/autolingo/internal/solver"
)

// Marker returns the data-test attribute of the current challenge, or ""
// when the page shows no challenge
func Marker(ctx context.Context, p page.Page) (string, error) {
	el, err := p.Find(ctx, page.SelectorChallenge)
	if errors.Is(err, page.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to find challenge: %w", err)
	}

	marker, _, err := el.Attribute(ctx, "data-test")
	if err != nil {
		return "", fmt.Errorf("failed to read challenge marker: %w", err)
	}
	return marker, nil
}

// Scrape reads the texts a solver needs for variant
func Scrape(ctx context.Context, p page.Page, variant exercise.Variant) (solver.Challenge, error) {
	ch := solver.Challenge{Variant: variant}
	var err error

	switch variant {
	case exercise.Select:
		if ch.Prompt, err = textOf(ctx, p, page.SelectorChallengeHeader); err != nil {
			return ch, err
		}
		ch.Choices, err = textsOf(ctx, p, page.SelectorChoice)

	case exercise.Assist:
		var header string
		if header, err = textOf(ctx, p, page.SelectorChallengeHeader); err != nil {
			return ch, err
		}
		ch.Prompt = solver.QuotedPhrase(header)
		ch.Choices, err = textsOf(ctx, p, page.SelectorChoice)

	case exercise.Translate:
		if ch.Header, err = textOf(ctx, p, page.SelectorChallengeHeader); err != nil {
			return ch, err
		}
		ch.Prompt, err = textOf(ctx, p, page.SelectorHintSentence)

	case exercise.Match:
		ch.Choices, err = textsOf(ctx, p, page.SelectorMatchCard)

	case exercise.PartialReverseTranslate:
		if ch.Prompt, err = textOf(ctx, p, page.SelectorHintSentence); err != nil {
			return ch, err
		}
		ch.Remainder, err = textOf(ctx, p, page.SelectorPartialPrefix)
	}

	return ch, err
}

func textOf(ctx context.Context, p page.Page, selector string) (string, error) {
	el, err := p.Find(ctx, selector)
	if err != nil {
		return "", fmt.Errorf("failed to find %s: %w", selector, err)
	}
	text, err := el.Text(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", selector, err)
	}
	return strings.TrimSpace(text), nil
}

func textsOf(ctx context.Context, p page.Page, selector string) ([]string, error) {
	elements, err := p.FindAll(ctx, selector)
	if err != nil {
		return nil, fmt.Errorf("failed to find %s: %w", selector, err)
	}

	texts := make([]string, 0, len(elements))
	for _, el := range elements {
		text, err := el.Text(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", selector, err)
		}
		texts = append(texts, strings.TrimSpace(text))
	}
	return texts, nil
}
