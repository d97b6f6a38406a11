package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/autolingo/internal/language"
)

// BreakerService wraps a Service with a circuit breaker. It never retries;
// once the breaker is open calls fail fast with ErrServiceUnavailable.
type BreakerService struct {
	next Service
	cb   *gobreaker.CircuitBreaker
}

// DefaultBreakerSettings opens after three consecutive failures and probes
// again after thirty seconds
func DefaultBreakerSettings() gobreaker.Settings {
	return gobreaker.Settings{
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			// The caller giving up says nothing about the backend
			return err == nil || errors.Is(err, context.Canceled)
		},
	}
}

// NewBreakerService wraps next. An empty settings name is replaced by the
// backend name.
func NewBreakerService(next Service, settings gobreaker.Settings) *BreakerService {
	if settings.Name == "" {
		settings.Name = next.Name()
	}
	if settings.OnStateChange == nil {
		settings.OnStateChange = func(name string, from, to gobreaker.State) {
			slog.Warn("translation circuit breaker state change", "service", name, "from", from.String(), "to", to.String())
		}
	}

	return &BreakerService{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

// Translate forwards to the wrapped service unless the breaker is open
func (b *BreakerService) Translate(ctx context.Context, text string, from, to language.Language) (string, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Translate(ctx, text, from, to)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: %s: %w", ErrServiceUnavailable, b.next.Name(), err)
	}
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// Name returns the wrapped backend name
func (b *BreakerService) Name() string {
	return b.next.Name()
}

// State reports the breaker state, for diagnostics
func (b *BreakerService) State() gobreaker.State {
	return b.cb.State()
}
