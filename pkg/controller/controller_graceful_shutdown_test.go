package controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRun_GracefulShutdown verifies that cancelling the context stops the
// loop and the flash timer without leaking goroutines or panicking.
func TestRun_GracefulShutdown(t *testing.T) {
	c, strip, _, display := newTestController()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- c.Run(ctx)
	}()

	// Feed a capture and wait for the loop to pick it up.
	c.Capture().Store(4288)
	assert.Eventually(t, func() bool {
		return len(strip.Frame()) == 3
	}, time.Second, time.Millisecond, "loop must service the capture")

	assert.Equal(t, 1, display.Gear(), "startup shows the initial gear")

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

// TestRun_FlashTimerToggles verifies the flash phase keeps toggling while
// the loop runs.
func TestRun_FlashTimerToggles(t *testing.T) {
	c, _, _, _ := newTestController()
	c.cfg.Flash.Period = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- c.Run(ctx)
	}()

	assert.Eventually(t, func() bool {
		return c.FlashPhase()
	}, time.Second, time.Millisecond, "phase must flip on")

	assert.Eventually(t, func() bool {
		return !c.FlashPhase()
	}, time.Second, time.Millisecond, "phase must flip back off")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
