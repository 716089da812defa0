package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

// quickPolicy keeps test runs fast.
func quickPolicy(retries int) RetryPolicy {
	return RetryPolicy{
		MaxRetries: retries,
		BaseDelay:  time.Millisecond,
		MaxDelay:   5 * time.Millisecond,
	}
}

func TestRetrySucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), quickPolicy(3), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Retry() error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryRecoversFromTransientFailure(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), quickPolicy(3), func() error {
		calls++
		if calls < 3 {
			return errors.New("temporary failure resolving archive.ubuntu.com")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Retry() error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	wantErr := errors.New("mirror down")
	err := Retry(context.Background(), quickPolicy(2), func() error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("Retry() = %v, want last error", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3 (initial + 2 retries)", calls)
	}
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	calls := 0
	inner := errors.New("E: Unable to locate package tesseract-orc")
	err := Retry(context.Background(), quickPolicy(5), func() error {
		calls++
		return Permanent(inner)
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retries on permanent error)", calls)
	}
	if !errors.Is(err, inner) {
		t.Errorf("permanent wrapper should unwrap to inner error, got: %v", err)
	}
}

func TestRetryRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Retry(ctx, quickPolicy(3), func() error {
		t.Error("fn should not run with cancelled context")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry() = %v, want context.Canceled", err)
	}
}

func TestPermanentNil(t *testing.T) {
	if Permanent(nil) != nil {
		t.Error("Permanent(nil) should be nil")
	}
	if IsPermanent(errors.New("plain")) {
		t.Error("plain error should not be permanent")
	}
}

func TestCalculateBackoffGrowth(t *testing.T) {
	base := 100 * time.Millisecond
	max := 10 * time.Second

	d0 := CalculateBackoff(0, base, max, false)
	d1 := CalculateBackoff(1, base, max, false)
	d2 := CalculateBackoff(2, base, max, false)

	if d0 != base {
		t.Errorf("attempt 0 delay = %v, want %v", d0, base)
	}
	if d1 != 2*base || d2 != 4*base {
		t.Errorf("delays should double: %v, %v", d1, d2)
	}
}

func TestCalculateBackoffCap(t *testing.T) {
	d := CalculateBackoff(20, time.Second, 5*time.Second, false)
	if d != 5*time.Second {
		t.Errorf("delay = %v, want capped at 5s", d)
	}
}

func TestCalculateBackoffJitterBounds(t *testing.T) {
	base := 100 * time.Millisecond
	for range 50 {
		d := CalculateBackoff(1, base, time.Minute, true)
		if d < base || d > 300*time.Millisecond {
			t.Fatalf("jittered delay %v outside [0.5x, 1.5x] of 200ms", d)
		}
	}
}
