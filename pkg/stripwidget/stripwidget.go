// Package stripwidget renders the shift-light strip and gear display on
// screen for the bench simulator.
package stripwidget

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/godash/pkg/config"
	"github.com/itohio/godash/pkg/dash"
)

// StripWidget is a custom Fyne widget that displays the indicator strip as a
// row of colored segments next to a large gear digit.
type StripWidget struct {
	widget.BaseWidget

	segments int

	// Data (protected by mu)
	mu    sync.RWMutex
	frame []dash.Color
	gear  int
}

// New creates a new StripWidget sized for the configured strip.
func New(cfg *config.Config) *StripWidget {
	s := &StripWidget{
		segments: cfg.Strip.Segments(),
		frame:    make([]dash.Color, 0, cfg.Strip.Segments()),
	}
	s.ExtendBaseWidget(s)
	s.Refresh()
	return s
}

// UpdateFrame updates the widget with a new commanded color sequence.
// Segments past the end of the sequence render dark.
// This should be called on the Fyne goroutine, see Sink.
func (s *StripWidget) UpdateFrame(frame []dash.Color) {
	s.mu.Lock()
	s.frame = append(s.frame[:0], frame...)
	s.mu.Unlock()

	// Refresh must happen outside the lock to avoid potential deadlock
	s.Refresh()
}

// SetGear updates the displayed gear digit.
func (s *StripWidget) SetGear(gear int) {
	s.mu.Lock()
	s.gear = gear
	s.mu.Unlock()

	s.Refresh()
}

// snapshot returns a detached copy of the current frame plus the gear. The
// renderer indexes the result outside the lock, so it must not alias the
// backing array UpdateFrame rewrites in place.
func (s *StripWidget) snapshot() ([]dash.Color, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	frame := make([]dash.Color, len(s.frame))
	copy(frame, s.frame)
	return frame, s.gear
}

// CreateRenderer creates the widget renderer.
func (s *StripWidget) CreateRenderer() fyne.WidgetRenderer {
	return newStripRenderer(s)
}
