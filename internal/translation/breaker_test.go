package translation

import (
	"context"
	"errors"
	"testing"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/autolingo/internal/language"
	"codeberg.org/snonux/autolingo/internal/testutil"
)

func TestBreakerService_PassesThrough(t *testing.T) {
	mock := testutil.NewMockTranslator(map[string]string{"hond": "dog"})
	breaker := NewBreakerService(mock, DefaultBreakerSettings())

	got, err := breaker.Translate(context.Background(), "hond", language.Dutch, language.English)
	if err != nil {
		t.Fatal(err)
	}
	if got != "dog" {
		t.Errorf("Expected dog, got %q", got)
	}
	if breaker.Name() != "mock" {
		t.Errorf("Expected name mock, got %s", breaker.Name())
	}
}

func TestBreakerService_OpensAfterConsecutiveFailures(t *testing.T) {
	mock := testutil.NewMockTranslator(nil)
	outage := errors.New("503 service unavailable")
	mock.Errors["hond"] = outage
	breaker := NewBreakerService(mock, DefaultBreakerSettings())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := breaker.Translate(ctx, "hond", language.Dutch, language.English)
		if !errors.Is(err, outage) {
			t.Fatalf("call %d: expected backend error, got %v", i, err)
		}
	}

	if breaker.State() != gobreaker.StateOpen {
		t.Fatalf("Expected open breaker, got %s", breaker.State())
	}

	_, err := breaker.Translate(ctx, "hond", language.Dutch, language.English)
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Errorf("Expected ErrServiceUnavailable, got %v", err)
	}
	if n := mock.CallCount("hond"); n != 3 {
		t.Errorf("Expected open breaker to skip the backend, got %d calls", n)
	}
}

func TestBreakerService_CancellationDoesNotTrip(t *testing.T) {
	mock := testutil.NewMockTranslator(nil)
	mock.Errors["hond"] = context.Canceled
	breaker := NewBreakerService(mock, DefaultBreakerSettings())

	for i := 0; i < 5; i++ {
		_, _ = breaker.Translate(context.Background(), "hond", language.Dutch, language.English)
	}
	if breaker.State() != gobreaker.StateClosed {
		t.Errorf("Expected closed breaker, got %s", breaker.State())
	}
}
