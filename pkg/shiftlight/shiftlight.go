// Package shiftlight maps engine speed onto the multi-zone indicator strip:
// a graduated fill through the green, yellow and red zones, and a full-strip
// flash once the speed climbs past the graduated ceiling into the shift zone.
package shiftlight

import (
	"github.com/itohio/godash/pkg/config"
	"github.com/itohio/godash/pkg/dash"
)

// Zone colors. Assigned per segment once at startup; alert is the full-strip
// redline flash color.
var (
	green  = dash.Color{R: 0, G: 255, B: 0}
	yellow = dash.Color{R: 255, G: 255, B: 0}
	red    = dash.Color{R: 255, G: 0, B: 0}
	alert  = dash.Color{R: 255, G: 0, B: 0}
)

// Palette returns the fixed per-segment zone colors: the first green
// segments, then yellow, then red.
func Palette(greenN, yellowN, redN int) []dash.Color {
	p := make([]dash.Color, 0, greenN+yellowN+redN)
	for i := 0; i < greenN; i++ {
		p = append(p, green)
	}
	for i := 0; i < yellowN; i++ {
		p = append(p, yellow)
	}
	for i := 0; i < redN; i++ {
		p = append(p, red)
	}
	return p
}

// Mapper converts an RPM value plus the flash phase into the color sequence
// to command on the strip.
type Mapper struct {
	palette  []dash.Color
	redFrame []dash.Color
	total    int
	ceiling  int // max RPM less the redline margin; the graduated range
}

// New builds a mapper from the strip and tach configuration.
func New(strip *config.StripConfig, tach *config.TachConfig) *Mapper {
	total := strip.Segments()
	redFrame := make([]dash.Color, total)
	for i := range redFrame {
		redFrame[i] = alert
	}

	return &Mapper{
		palette:  Palette(strip.Green, strip.Yellow, strip.Red),
		redFrame: redFrame,
		total:    total,
		ceiling:  tach.Ceiling(),
	}
}

// LitCount returns how many leading segments the given RPM illuminates.
// The denominator is the graduated ceiling, not true max speed, so the fill
// saturates early and leaves the margin above it to the flashing regime.
// A count above the total segment count means redline, not a wider fill.
func (m *Mapper) LitCount(rpm uint32) int {
	return int(rpm) * m.total / m.ceiling
}

// Frame returns the color sequence to command for the given RPM and flash
// phase. Pure: identical inputs produce identical sequences.
//
// Redline regime (LitCount strictly above the segment count): the whole
// strip at the alert color on the lit phase, nothing on the dark phase.
// Graduated regime: the first LitCount segments in their zone colors.
func (m *Mapper) Frame(rpm uint32, flash bool) []dash.Color {
	lit := m.LitCount(rpm)

	if lit > m.total {
		if !flash {
			return nil
		}
		return m.redFrame
	}

	return m.palette[:lit]
}

// Render sends one complete rendering pass to the strip: a full clear first
// (idempotent refresh, no stale segments), then the frame for this cycle.
// Runs to completion before the next speed sample is consumed.
func (m *Mapper) Render(strip dash.Strip, rpm uint32, flash bool) error {
	if err := strip.Clear(); err != nil {
		return err
	}

	frame := m.Frame(rpm, flash)
	if len(frame) == 0 {
		return nil
	}
	return strip.SendFrame(frame)
}
