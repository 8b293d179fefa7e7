package services

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiterWindow(t *testing.T) {
	current := time.Unix(1000, 0)
	rl := NewRateLimiter(2, time.Second)
	rl.now = func() time.Time { return current }

	if !rl.CanProceed() {
		t.Fatal("CanProceed = false on empty limiter")
	}
	rl.Record()
	rl.Record()

	if rl.CanProceed() {
		t.Error("CanProceed = true with window full")
	}
	if got := rl.CurrentCount(); got != 2 {
		t.Errorf("CurrentCount = %d, want 2", got)
	}

	// Advance past the window; both timestamps expire.
	current = current.Add(time.Second)
	if !rl.CanProceed() {
		t.Error("CanProceed = false after window elapsed")
	}
	if got := rl.CurrentCount(); got != 0 {
		t.Errorf("CurrentCount = %d after expiry, want 0", got)
	}
}

func TestRateLimiterPartialExpiry(t *testing.T) {
	current := time.Unix(1000, 0)
	rl := NewRateLimiter(2, time.Second)
	rl.now = func() time.Time { return current }

	rl.Record()
	current = current.Add(600 * time.Millisecond)
	rl.Record()

	if rl.CanProceed() {
		t.Error("CanProceed = true with both requests inside the window")
	}

	// First request ages out, second remains.
	current = current.Add(500 * time.Millisecond)
	if !rl.CanProceed() {
		t.Error("CanProceed = false after oldest request expired")
	}
	if got := rl.CurrentCount(); got != 1 {
		t.Errorf("CurrentCount = %d, want 1", got)
	}
}

func TestTimeUntilNextSlot(t *testing.T) {
	current := time.Unix(1000, 0)
	rl := NewRateLimiter(1, time.Second)
	rl.now = func() time.Time { return current }

	if got := rl.TimeUntilNextSlot(); got != 0 {
		t.Errorf("TimeUntilNextSlot = %v on empty limiter, want 0", got)
	}

	rl.Record()
	if got := rl.TimeUntilNextSlot(); got != time.Second {
		t.Errorf("TimeUntilNextSlot = %v, want 1s", got)
	}

	current = current.Add(400 * time.Millisecond)
	if got := rl.TimeUntilNextSlot(); got != 600*time.Millisecond {
		t.Errorf("TimeUntilNextSlot = %v, want 600ms", got)
	}
}

func TestAwaitSlotImmediate(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	if err := rl.AwaitSlot(context.Background()); err != nil {
		t.Fatalf("AwaitSlot on open limiter returned %v", err)
	}
}

func TestAwaitSlotContextCancel(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	rl.Record()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := rl.AwaitSlot(ctx)
	if err != context.DeadlineExceeded {
		t.Errorf("AwaitSlot = %v, want context.DeadlineExceeded", err)
	}
}

func TestAwaitSlotWakesAfterExpiry(t *testing.T) {
	rl := NewRateLimiter(1, 50*time.Millisecond)
	rl.Record()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	start := time.Now()
	if err := rl.AwaitSlot(ctx); err != nil {
		t.Fatalf("AwaitSlot = %v, want nil", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("AwaitSlot returned after %v, before the window elapsed", elapsed)
	}
}
