package stripwidget

import (
	"fyne.io/fyne/v2"

	"github.com/itohio/godash/pkg/dash"
)

// Compile-time interface checks
var _ dash.Strip = (*Sink)(nil)
var _ dash.GearDisplay = (*Sink)(nil)

// Sink adapts a StripWidget to the strip and gear display interfaces so the
// controller can drive the on-screen dashboard like real hardware. Widget
// updates are scheduled on the main Fyne thread, the controller goroutine
// never touches the canvas directly.
type Sink struct {
	strip *StripWidget
}

// NewSink wraps the given widget.
func NewSink(strip *StripWidget) *Sink {
	return &Sink{strip: strip}
}

// SendFrame schedules a frame update on the main thread.
func (s *Sink) SendFrame(colors []dash.Color) error {
	// Copy before handing off, the controller reuses its frame slice
	frame := make([]dash.Color, len(colors))
	copy(frame, colors)

	fyne.Do(func() {
		s.strip.UpdateFrame(frame)
	})
	return nil
}

// Clear schedules an all-dark update on the main thread.
func (s *Sink) Clear() error {
	fyne.Do(func() {
		s.strip.UpdateFrame(nil)
	})
	return nil
}

// Show schedules a gear digit update on the main thread.
func (s *Sink) Show(gear int) error {
	fyne.Do(func() {
		s.strip.SetGear(gear)
	})
	return nil
}
