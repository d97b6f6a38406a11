package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"codeberg.org/snonux/autolingo/internal/exercise"
	"codeberg.org/snonux/autolingo/internal/page"
	"codeberg.org/snonux/autolingo/internal/solver"
)

// Executor turns plans into page interactions
type Executor struct {
	page   page.Page
	logger *slog.Logger

	// Reference holds the reference answer read by the last
	// RevealReference action, if the answer was marked incorrect
	Reference string
}

// NewExecutor creates an executor for p
func NewExecutor(p page.Page, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{page: p, logger: logger}
}

// Execute performs the plan's actions in order
func (e *Executor) Execute(ctx context.Context, plan solver.Plan) error {
	e.Reference = ""
	groups := make(map[solver.Target][]page.Element)

	for _, action := range plan.Actions {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch action.Kind {
		case solver.ActionClick:
			if err := e.click(ctx, groups, action); err != nil {
				return err
			}

		case solver.ActionKey:
			input, err := e.page.Find(ctx, inputSelector(plan.Variant))
			if err != nil {
				return fmt.Errorf("failed to find answer input: %w", err)
			}
			if err := input.SendKeys(ctx, string(action.Key)); err != nil {
				return fmt.Errorf("failed to type %q: %w", action.Key, err)
			}
			if err := sleep(ctx, action.Delay); err != nil {
				return err
			}

		case solver.ActionSubmit:
			if err := e.clickSelector(ctx, page.SelectorCheckButton); err != nil {
				return fmt.Errorf("failed to submit: %w", err)
			}

		case solver.ActionPause:
			if err := sleep(ctx, action.Delay); err != nil {
				return err
			}

		case solver.ActionRevealReference:
			if err := e.revealReference(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Executor) click(ctx context.Context, groups map[solver.Target][]page.Element, action solver.Action) error {
	elements, ok := groups[action.Target]
	if !ok {
		selector := page.SelectorChoice
		if action.Target == solver.TargetCard {
			selector = page.SelectorMatchCard
		}
		var err error
		if elements, err = e.page.FindAll(ctx, selector); err != nil {
			return fmt.Errorf("failed to find %s: %w", selector, err)
		}
		groups[action.Target] = elements
	}

	if action.Index < 0 || action.Index >= len(elements) {
		return fmt.Errorf("click index %d out of range (%d elements)", action.Index, len(elements))
	}

	el := elements[action.Index]
	if err := el.WaitClickable(ctx); err != nil {
		return fmt.Errorf("element %d not clickable: %w", action.Index, err)
	}
	return el.Click(ctx)
}

func (e *Executor) clickSelector(ctx context.Context, selector string) error {
	el, err := e.page.Find(ctx, selector)
	if err != nil {
		return err
	}
	if err := el.WaitClickable(ctx); err != nil {
		return err
	}
	return el.Click(ctx)
}

func (e *Executor) revealReference(ctx context.Context) error {
	_, err := e.page.Find(ctx, page.SelectorIncorrect)
	if errors.Is(err, page.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check answer result: %w", err)
	}

	reference, err := textOf(ctx, e.page, page.SelectorReference)
	if err != nil {
		return err
	}
	e.Reference = reference
	e.logger.Info("answer marked incorrect", "reference", reference)
	return nil
}

func inputSelector(variant exercise.Variant) string {
	if variant == exercise.PartialReverseTranslate {
		return page.SelectorPartialInput
	}
	return page.SelectorTextInput
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
