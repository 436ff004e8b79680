package shiftlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/godash/pkg/config"
	"github.com/itohio/godash/pkg/dash"
)

// defaultMapper uses the stock configuration: 18+6+6 segments, 12000 max RPM,
// 1500 redline margin, so the graduated ceiling is 10500.
func defaultMapper() *Mapper {
	cfg := config.Default()
	return New(&cfg.Strip, &cfg.Tach)
}

func TestPalette(t *testing.T) {
	p := Palette(2, 1, 1)

	require.Len(t, p, 4)
	assert.Equal(t, dash.Color{G: 255}, p[0])
	assert.Equal(t, dash.Color{G: 255}, p[1])
	assert.Equal(t, dash.Color{R: 255, G: 255}, p[2])
	assert.Equal(t, dash.Color{R: 255}, p[3])
}

func TestLitCount(t *testing.T) {
	m := defaultMapper()

	tests := []struct {
		name string
		rpm  uint32
		want int
	}{
		{name: "stopped", rpm: 0, want: 0},
		{name: "below first segment", rpm: 349, want: 0},
		{name: "first segment", rpm: 350, want: 1},
		{name: "half scale", rpm: 5250, want: 15},
		{name: "just below ceiling", rpm: 10499, want: 29},
		{name: "at ceiling", rpm: 10500, want: 30},
		{name: "last graduated value", rpm: 10849, want: 30},
		{name: "first redline value", rpm: 10850, want: 31},
		{name: "true max speed", rpm: 12000, want: 34},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.LitCount(tt.rpm))
		})
	}
}

func TestLitCount_MonotonicallyNonDecreasing(t *testing.T) {
	m := defaultMapper()

	prev := m.LitCount(0)
	for rpm := uint32(0); rpm <= 13000; rpm += 50 {
		cur := m.LitCount(rpm)
		assert.GreaterOrEqual(t, cur, prev, "lit count must not shrink as speed rises (rpm=%d)", rpm)
		prev = cur
	}
}

func TestFrame_Stopped(t *testing.T) {
	// Scenario: zero capture, zero speed, nothing lit.
	m := defaultMapper()

	assert.Empty(t, m.Frame(0, true))
	assert.Empty(t, m.Frame(0, false))
}

func TestFrame_Graduated(t *testing.T) {
	// Scenario: 50% of the graduated range lights half the strip in zone
	// colors regardless of the flash phase.
	m := defaultMapper()

	frame := m.Frame(5250, false)
	require.Len(t, frame, 15)
	for i, c := range frame {
		assert.Equal(t, dash.Color{G: 255}, c, "segment %d is in the green zone", i)
	}

	assert.Equal(t, frame, m.Frame(5250, true), "flash phase must not affect the graduated regime")
}

func TestFrame_ZoneColors(t *testing.T) {
	m := defaultMapper()

	// 28 of 30 segments: 18 green, 6 yellow, 4 red.
	frame := m.Frame(9800, false)
	require.Len(t, frame, 28)
	assert.Equal(t, dash.Color{G: 255}, frame[17])
	assert.Equal(t, dash.Color{R: 255, G: 255}, frame[18])
	assert.Equal(t, dash.Color{R: 255, G: 255}, frame[23])
	assert.Equal(t, dash.Color{R: 255}, frame[24])
	assert.Equal(t, dash.Color{R: 255}, frame[27])
}

func TestFrame_Redline(t *testing.T) {
	// Scenario: above the graduated ceiling the whole strip flashes red.
	m := defaultMapper()

	lit := m.Frame(11000, true)
	require.Len(t, lit, 30)
	for i, c := range lit {
		assert.Equal(t, dash.Color{R: 255}, c, "segment %d must be alert red", i)
	}

	dark := m.Frame(11000, false)
	assert.Empty(t, dark, "dark flash phase leaves the strip cleared")
}

func TestFrame_RedlineBoundary(t *testing.T) {
	// The boundary is exclusive: a lit count equal to the segment total is
	// still the graduated regime with every segment lit.
	m := defaultMapper()

	atCeiling := m.Frame(10500, false)
	require.Len(t, atCeiling, 30)
	assert.Equal(t, dash.Color{R: 255, G: 255}, atCeiling[20], "graduated frame keeps zone colors")

	below := m.Frame(10499, false)
	assert.Len(t, below, 29)

	above := m.Frame(10850, true)
	require.Len(t, above, 30)
	assert.Equal(t, dash.Color{R: 255}, above[20], "redline frame is all alert red")
}

func TestFrame_Idempotent(t *testing.T) {
	m := defaultMapper()

	for _, flash := range []bool{false, true} {
		for _, rpm := range []uint32{0, 350, 5250, 10500, 11500} {
			assert.Equal(t, m.Frame(rpm, flash), m.Frame(rpm, flash),
				"identical inputs must render identically (rpm=%d flash=%v)", rpm, flash)
		}
	}
}

func TestRender_ClearsBeforeEveryPass(t *testing.T) {
	m := defaultMapper()
	strip := &dash.MemoryStrip{}

	require.NoError(t, m.Render(strip, 5250, false))
	assert.Equal(t, 1, strip.Clears())
	assert.Len(t, strip.Frame(), 15)

	require.NoError(t, m.Render(strip, 0, false))
	assert.Equal(t, 2, strip.Clears(), "every pass re-sends a full clear")
	assert.Empty(t, strip.Frame(), "stopped engine leaves the strip dark")
}

func TestRender_RedlineDarkPhaseOnlyClears(t *testing.T) {
	m := defaultMapper()
	strip := &dash.MemoryStrip{}

	require.NoError(t, m.Render(strip, 11000, false))
	assert.Equal(t, 0, strip.Sends())
	assert.Empty(t, strip.Frame())

	require.NoError(t, m.Render(strip, 11000, true))
	assert.Equal(t, 1, strip.Sends())
	assert.Len(t, strip.Frame(), 30)
}
