package resilience

import (
	"testing"
	"time"
)

func testBreaker(threshold int, openTimeout time.Duration, halfOpenMax int) (*CircuitBreaker, *time.Time) {
	b := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: threshold,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpenMax,
	})
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestCircuitBreaker_TripsAfterConsecutiveFailures(t *testing.T) {
	b, _ := testBreaker(3, time.Minute, 1)

	for i := 0; i < 2; i++ {
		b.RecordFailure()
		if err := b.Allow(); err != nil {
			t.Fatalf("breaker opened after %d failures, threshold is 3", i+1)
		}
	}

	b.RecordFailure()
	if err := b.Allow(); err != ErrCircuitOpen {
		t.Fatalf("expected open circuit, got %v", err)
	}
}

func TestCircuitBreaker_SuccessResetsFailureStreak(t *testing.T) {
	b, _ := testBreaker(3, time.Minute, 1)

	b.RecordFailure()
	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()
	b.RecordFailure()

	if err := b.Allow(); err != nil {
		t.Fatalf("expected closed circuit after reset streak, got %v", err)
	}
}

func TestCircuitBreaker_HalfOpenProbeThenClose(t *testing.T) {
	b, now := testBreaker(1, time.Minute, 1)

	b.RecordFailure()
	if err := b.Allow(); err != ErrCircuitOpen {
		t.Fatalf("expected open circuit, got %v", err)
	}

	*now = now.Add(2 * time.Minute)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to be admitted, got %v", err)
	}
	if err := b.Allow(); err != ErrCircuitOpen {
		t.Fatalf("expected second concurrent probe to be rejected, got %v", err)
	}

	b.RecordSuccess()
	if got := b.State(); got != CircuitStateClosed {
		t.Fatalf("expected closed after probe success, got %s", got)
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	b, now := testBreaker(1, time.Minute, 1)

	b.RecordFailure()
	*now = now.Add(2 * time.Minute)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe admitted, got %v", err)
	}

	b.RecordFailure()
	if err := b.Allow(); err != ErrCircuitOpen {
		t.Fatalf("expected reopened circuit, got %v", err)
	}
}
