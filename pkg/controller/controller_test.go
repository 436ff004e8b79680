package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/godash/pkg/config"
	"github.com/itohio/godash/pkg/dash"
)

func newTestController() (*Controller, *dash.MemoryStrip, *dash.MemoryRelays, *dash.MemoryDisplay) {
	cfg := config.Default()
	strip := &dash.MemoryStrip{}
	relays := &dash.MemoryRelays{}
	display := &dash.MemoryDisplay{}
	return New(cfg, strip, relays, display), strip, relays, display
}

func TestStep_NoEventsIsIdle(t *testing.T) {
	c, strip, _, display := newTestController()

	c.step()

	assert.Equal(t, 0, strip.Clears())
	assert.Equal(t, 0, strip.Sends())
	assert.Equal(t, 0, display.Gear())
}

func TestStep_RendersPendingCapture(t *testing.T) {
	c, strip, _, _ := newTestController()

	// 45e6 / (4288*8) ≈ 1311 RPM: lit count 3.
	c.Capture().Store(4288)
	c.step()

	assert.Equal(t, 1, strip.Clears(), "render pass clears first")
	assert.Len(t, strip.Frame(), 3)

	// The capture was consumed; an idle iteration renders nothing new.
	c.step()
	assert.Equal(t, 1, strip.Clears())
}

func TestStep_ZeroCaptureClearsStrip(t *testing.T) {
	c, strip, _, _ := newTestController()

	c.Capture().Store(4288)
	c.step()
	require.Len(t, strip.Frame(), 3)

	// Signal loss: the zero sentinel arrives as a fresh capture and the
	// strip goes dark on the next pass.
	c.Capture().Store(0)
	c.step()
	assert.Empty(t, strip.Frame())
}

func TestStep_ServicesCaptureAndConfirmTogether(t *testing.T) {
	// A confirm arriving in the same iteration as a speed sample is still
	// serviced, after rendering.
	c, strip, _, display := newTestController()

	c.Capture().Store(4288)
	require.NoError(t, c.Machine().ConfirmUp())

	c.step()

	assert.Len(t, strip.Frame(), 3, "render happened")
	assert.Equal(t, 2, c.Machine().Gear(), "shift advanced in the same iteration")
	assert.Equal(t, 2, display.Gear())
}

func TestStep_PaddleWithoutConfirmLeavesGear(t *testing.T) {
	c, _, relays, _ := newTestController()

	require.NoError(t, c.Machine().PaddleUp())
	c.step()

	assert.Equal(t, dash.RelayUp, relays.State())
	assert.Equal(t, 1, c.Machine().Gear())
}

func TestRedlineFlashPhases(t *testing.T) {
	c, strip, _, _ := newTestController()

	// 45e6 / (341*8) ≈ 16495 RPM, far past the ceiling.
	c.Capture().Store(341)
	c.flash.Store(true)
	c.step()
	assert.Len(t, strip.Frame(), 30, "lit phase commands the whole strip")

	c.Capture().Store(341)
	c.flash.Store(false)
	c.step()
	assert.Empty(t, strip.Frame(), "dark phase leaves the strip cleared")
}
