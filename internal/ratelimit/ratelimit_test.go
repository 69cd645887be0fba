package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name              string
		requestsPerSecond float64
		expectLimit       float64
	}{
		{name: "unlimited_zero", requestsPerSecond: 0, expectLimit: 0},
		{name: "unlimited_negative", requestsPerSecond: -1, expectLimit: 0},
		{name: "limited_one_per_second", requestsPerSecond: 1, expectLimit: 1},
		{name: "limited_fractional", requestsPerSecond: 0.5, expectLimit: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.requestsPerSecond).Limit(); got != tt.expectLimit {
				t.Errorf("Limit() = %v, want %v", got, tt.expectLimit)
			}
		})
	}
}

func TestLimiter_Wait(t *testing.T) {
	t.Run("unlimited_no_wait", func(t *testing.T) {
		limiter := New(0)
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		for i := 0; i < 100; i++ {
			if err := limiter.Wait(ctx); err != nil {
				t.Fatalf("Wait() failed on request %d: %v", i, err)
			}
		}
	})

	t.Run("limited_waits_appropriately", func(t *testing.T) {
		limiter := New(10) // 100ms between requests
		ctx := context.Background()

		if err := limiter.Wait(ctx); err != nil {
			t.Fatalf("first Wait() failed: %v", err)
		}

		start := time.Now()
		if err := limiter.Wait(ctx); err != nil {
			t.Fatalf("second Wait() failed: %v", err)
		}
		if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
			t.Errorf("second request did not wait: %v", elapsed)
		}
	})

	t.Run("context_cancellation", func(t *testing.T) {
		limiter := New(1)

		// Use up the burst.
		if err := limiter.Wait(context.Background()); err != nil {
			t.Fatalf("first Wait() failed: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		if err := limiter.Wait(ctx); err == nil {
			t.Error("expected context cancellation error")
		}
	})
}
