package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "clinic-a"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	if err := limiter.Wait(ctx, "clinic-b"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_RateLimit(t *testing.T) {
	limiter := NewLimiter(1, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "clinic-a"); err != nil {
		t.Errorf("first wait failed: %v", err)
	}

	if limiter.Allow("clinic-a") {
		t.Errorf("expected allow to fail (exhausted tokens)")
	}

	// source names are case-insensitive
	if limiter.Allow("  CLINIC-A ") {
		t.Errorf("expected allow to fail for the same source in another case")
	}

	if !limiter.Allow("clinic-b") {
		t.Errorf("expected allow for other source")
	}
}

func TestLimiter_EmptySourceSharesDefault(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if !limiter.Allow("") {
		t.Fatal("expected first unnamed case to be allowed")
	}
	if limiter.Allow("default") {
		t.Errorf("expected unnamed cases to share the default bucket")
	}
}

func TestLimiter_ZeroRateUnthrottled(t *testing.T) {
	limiter := NewLimiter(0, 1)

	for i := 0; i < 100; i++ {
		if !limiter.Allow("clinic-a") {
			t.Fatalf("expected unthrottled limiter to allow case %d", i)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := limiter.Wait(ctx, "clinic-a"); err != nil {
		t.Errorf("expected no wait, got %v", err)
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	limiter.Allow("slow")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx, "slow"); err == nil {
		t.Error("expected wait to fail once the context expires")
	}
}

func TestLimiter_SetSourceRate(t *testing.T) {
	limiter := NewLimiter(0, 1)
	limiter.SetSourceRate("Slow", 0.001, 1)

	if !limiter.Allow("slow") {
		t.Fatal("expected first case to be allowed")
	}
	if limiter.Allow("slow") {
		t.Errorf("expected custom rate to throttle the second case")
	}
	if !limiter.Allow("fast") {
		t.Errorf("expected other sources to stay unthrottled")
	}
}
