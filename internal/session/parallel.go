package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"codeberg.org/snonux/autolingo/internal/page"
)

// Run logs in and solves the lessons assigned to worker: every lesson whose
// index modulo workers equals worker. Run(ctx, 0, 1) solves all of them.
func (s *Session) Run(ctx context.Context, worker, workers int) error {
	if workers < 1 || worker < 0 || worker >= workers {
		return fmt.Errorf("invalid worker %d of %d", worker, workers)
	}

	if err := s.Login(ctx); err != nil {
		return err
	}

	n, err := s.Lessons(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d lessons\n", n)

	for i := worker; i < n; i += workers {
		if err := s.StartLesson(ctx, i); err != nil {
			return err
		}
		if err := s.RunLesson(ctx); err != nil {
			return err
		}
		if err := s.page.Navigate(ctx, page.LearnURL); err != nil {
			return fmt.Errorf("failed to return to the learn page: %w", err)
		}
		if err := sleep(ctx, s.opts.SettleDelay); err != nil {
			return err
		}
	}
	return nil
}

// RunParallel runs every session concurrently, splitting the lessons between
// them. With failFast the first error cancels the other sessions; otherwise
// every session runs to completion and all errors are joined.
func RunParallel(ctx context.Context, sessions []*Session, failFast bool) error {
	if failFast {
		g, gctx := errgroup.WithContext(ctx)
		for i, s := range sessions {
			g.Go(func() error {
				return wrapWorker(i, s.Run(gctx, i, len(sessions)))
			})
		}
		return g.Wait()
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i, s := range sessions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := wrapWorker(i, s.Run(ctx, i, len(sessions))); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}

func wrapWorker(i int, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("session %d: %w", i, err)
}
