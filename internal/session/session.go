package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"codeberg.org/snonux/autolingo/internal/exercise"
	"codeberg.org/snonux/autolingo/internal/journal"
	"codeberg.org/snonux/autolingo/internal/page"
	"codeberg.org/snonux/autolingo/internal/solver"
)

// ErrLessonStuck is returned when a lesson does not end within MaxSteps
var ErrLessonStuck = errors.New("lesson did not finish")

// Recorder receives the outcome of every exercise
type Recorder interface {
	Record(ctx context.Context, e journal.Entry) error
}

// Options configures a Session
type Options struct {
	Email    string
	Password string

	// SkipUnsupported clicks the skip button on recognised but unsupported
	// exercises instead of failing the run
	SkipUnsupported bool

	PollInterval time.Duration // URL polling while waiting for navigation
	SettleDelay  time.Duration // Pause after reaching the learn page
	MaxSteps     int           // Exercises per lesson before ErrLessonStuck
}

// DefaultOptions returns the options used by the CLI
func DefaultOptions() Options {
	return Options{
		PollInterval: 100 * time.Millisecond,
		SettleDelay:  time.Second,
		MaxSteps:     200,
	}
}

// Session drives one browser page
type Session struct {
	page     page.Page
	solver   *solver.Solver
	executor *Executor
	recorder Recorder
	opts     Options
	logger   *slog.Logger

	state  State
	lesson int
}

// New creates a session for p
func New(p page.Page, s *solver.Solver, opts Options, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultOptions().PollInterval
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = DefaultOptions().MaxSteps
	}
	return &Session{
		page:     p,
		solver:   s,
		executor: NewExecutor(p, logger),
		opts:     opts,
		logger:   logger,
	}
}

// SetRecorder sets where exercise outcomes are recorded
func (s *Session) SetRecorder(r Recorder) {
	s.recorder = r
}

// State returns the state after the last step
func (s *Session) State() State {
	return s.state
}

// Login signs in with the configured credentials and waits for the learn page
func (s *Session) Login(ctx context.Context) error {
	if err := s.page.Navigate(ctx, page.HomeURL); err != nil {
		return fmt.Errorf("failed to open %s: %w", page.HomeURL, err)
	}

	if err := s.clickSelector(ctx, page.SelectorHaveAccount); err != nil {
		return fmt.Errorf("failed to open login form: %w", err)
	}
	if err := s.typeInto(ctx, page.SelectorEmail, s.opts.Email); err != nil {
		return err
	}
	if err := s.typeInto(ctx, page.SelectorPassword, s.opts.Password); err != nil {
		return err
	}
	if err := s.clickSelector(ctx, page.SelectorLogin); err != nil {
		return fmt.Errorf("failed to submit login: %w", err)
	}

	if err := s.WaitForURL(ctx, func(url string) bool { return strings.HasPrefix(url, page.LearnURL) }); err != nil {
		return fmt.Errorf("login did not reach the learn page: %w", err)
	}
	s.logger.Info("logged in", "email", s.opts.Email)
	return sleep(ctx, s.opts.SettleDelay)
}

// WaitForURL polls the current location until match accepts it
func (s *Session) WaitForURL(ctx context.Context, match func(string) bool) error {
	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()

	for {
		url, err := s.page.CurrentURL(ctx)
		if err != nil {
			return err
		}
		if match(url) {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Lessons returns the number of lessons on the learn page
func (s *Session) Lessons(ctx context.Context) (int, error) {
	lessons, err := s.page.FindAll(ctx, page.SelectorLesson)
	if err != nil {
		return 0, fmt.Errorf("failed to find lessons: %w", err)
	}
	return len(lessons), nil
}

// StartLesson opens lesson i from the learn page
func (s *Session) StartLesson(ctx context.Context, i int) error {
	lessons, err := s.page.FindAll(ctx, page.SelectorLesson)
	if err != nil {
		return fmt.Errorf("failed to find lessons: %w", err)
	}
	if i < 0 || i >= len(lessons) {
		return fmt.Errorf("lesson %d out of range (%d lessons)", i, len(lessons))
	}

	if err := lessons[i].Click(ctx); err != nil {
		return fmt.Errorf("failed to select lesson %d: %w", i, err)
	}
	if err := s.clickSelector(ctx, page.SelectorStartLesson); err != nil {
		return fmt.Errorf("failed to start lesson %d: %w", i, err)
	}
	if err := s.WaitForURL(ctx, inLesson); err != nil {
		return fmt.Errorf("lesson %d did not open: %w", i, err)
	}

	s.lesson = i
	fmt.Printf("Entered lesson %d\n", i+1)
	return nil
}

// RunLesson steps through exercises until the page leaves the lesson
func (s *Session) RunLesson(ctx context.Context) error {
	for step := 0; step < s.opts.MaxSteps; step++ {
		url, err := s.page.CurrentURL(ctx)
		if err != nil {
			return err
		}
		if !inLesson(url) {
			return nil
		}

		if _, err := s.Step(ctx); err != nil {
			return fmt.Errorf("lesson %d: %w", s.lesson+1, err)
		}
	}
	return fmt.Errorf("%w after %d steps", ErrLessonStuck, s.opts.MaxSteps)
}

// Step solves the exercise currently shown and advances past it
func (s *Session) Step(ctx context.Context) (solver.Plan, error) {
	s.state = Idle

	marker, err := Marker(ctx, s.page)
	if err != nil {
		return s.fail(ctx, solver.Plan{}, "", err)
	}
	variant, err := exercise.Classify(marker)
	if err != nil {
		return s.fail(ctx, solver.Plan{}, "", err)
	}
	s.state = Classified
	s.logger.Debug("classified exercise", "marker", marker, "variant", variant)

	if err := variant.Check(); err != nil {
		plan := solver.Plan{Variant: variant}
		if !s.opts.SkipUnsupported {
			return s.fail(ctx, plan, "", err)
		}
		s.logger.Warn("skipping unsupported exercise", "variant", variant)
		s.record(ctx, plan, "", err)
		if err := s.clickSelector(ctx, page.SelectorSkipButton); err != nil {
			return s.fail(ctx, plan, "", fmt.Errorf("failed to skip %s exercise: %w", variant, err))
		}
		s.state = Advanced
		return plan, nil
	}

	ch, err := Scrape(ctx, s.page, variant)
	if err != nil {
		return s.fail(ctx, solver.Plan{Variant: variant}, ch.Prompt, err)
	}

	plan, err := s.solver.Solve(ctx, ch)
	if err != nil {
		return s.fail(ctx, plan, ch.Prompt, err)
	}
	if variant != exercise.Ignore {
		s.state = Solved
	}

	if err := s.executor.Execute(ctx, plan); err != nil {
		return s.fail(ctx, plan, ch.Prompt, err)
	}
	if err := s.advance(ctx); err != nil {
		return s.fail(ctx, plan, ch.Prompt, err)
	}

	if variant != exercise.Ignore {
		s.record(ctx, plan, ch.Prompt, nil)
		fmt.Printf("  %s: %q\n", variant, plan.Answer)
	}
	s.state = Advanced
	return plan, nil
}

// advance clicks the continue button if the page shows one
func (s *Session) advance(ctx context.Context) error {
	err := s.clickSelector(ctx, page.SelectorCheckButton)
	if errors.Is(err, page.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to continue: %w", err)
	}
	return nil
}

func (s *Session) fail(ctx context.Context, plan solver.Plan, prompt string, err error) (solver.Plan, error) {
	s.state = Failed
	s.record(ctx, plan, prompt, err)
	return plan, err
}

func (s *Session) record(ctx context.Context, plan solver.Plan, prompt string, err error) {
	if s.recorder == nil {
		return
	}

	entry := journal.Entry{
		Lesson:    s.lesson,
		Variant:   plan.Variant.String(),
		Prompt:    prompt,
		Answer:    plan.Answer,
		Choice:    plan.Choice,
		Confident: plan.Confident,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if rerr := s.recorder.Record(ctx, entry); rerr != nil {
		s.logger.Warn("failed to record exercise", "error", rerr)
	}
}

func (s *Session) clickSelector(ctx context.Context, selector string) error {
	el, err := s.page.Find(ctx, selector)
	if err != nil {
		return err
	}
	if err := el.WaitClickable(ctx); err != nil {
		return err
	}
	return el.Click(ctx)
}

func (s *Session) typeInto(ctx context.Context, selector, text string) error {
	el, err := s.page.Find(ctx, selector)
	if err != nil {
		return fmt.Errorf("failed to find %s: %w", selector, err)
	}
	if err := el.SendKeys(ctx, text); err != nil {
		return fmt.Errorf("failed to type into %s: %w", selector, err)
	}
	return nil
}

func inLesson(url string) bool {
	return strings.HasPrefix(url, page.LessonURL)
}
