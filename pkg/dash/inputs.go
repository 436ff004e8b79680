package dash

import (
	"fmt"
	"log"
	"time"

	"github.com/warthog618/gpiod"

	"github.com/itohio/godash/pkg/config"
)

// Inputs owns the edge-triggered GPIO lines: the two paddles, the two
// gear-change hall-effect sensors, and the tachometer pulse line. Kernel
// event timestamps stand in for hardware timer capture; the delta between
// consecutive tach edges is converted to timer ticks and latched into the
// capture sink, newest overwriting stale.
type Inputs struct {
	sink  CaptureSink
	shift ShiftEvents

	paddleUp    int
	paddleDown  int
	confirmUp   int
	confirmDown int

	tickRate  uint64
	lastPulse time.Duration // previous tach edge timestamp; handler-goroutine only

	shiftLines *gpiod.Lines
	tachLine   *gpiod.Line
}

// Paddle and sensor contacts bounce; the kernel debounce period filters
// retriggers without adding perceptible shift latency.
const debouncePeriod = 5 * time.Millisecond

// NewInputs requests the input lines and starts event delivery.
func NewInputs(cfg *config.Config, sink CaptureSink, shift ShiftEvents) (*Inputs, error) {
	in := &Inputs{
		sink:        sink,
		shift:       shift,
		paddleUp:    cfg.Shift.PaddleUp,
		paddleDown:  cfg.Shift.PaddleDown,
		confirmUp:   cfg.Shift.ConfirmUp,
		confirmDown: cfg.Shift.ConfirmDown,
		tickRate:    uint64(cfg.Tach.TickRateHz),
	}

	offsets := []int{cfg.Shift.PaddleUp, cfg.Shift.PaddleDown, cfg.Shift.ConfirmUp, cfg.Shift.ConfirmDown}
	lines, err := gpiod.RequestLines(cfg.Shift.Chip, offsets,
		gpiod.WithPullUp,
		gpiod.WithFallingEdge,
		gpiod.WithDebounce(debouncePeriod),
		gpiod.WithEventHandler(in.handleShift))
	if err != nil {
		return nil, fmt.Errorf("failed to request shift input lines on %s: %w", cfg.Shift.Chip, err)
	}
	in.shiftLines = lines

	tach, err := gpiod.RequestLine(cfg.Tach.Chip, cfg.Tach.Line,
		gpiod.WithRisingEdge,
		gpiod.WithEventHandler(in.handleTach))
	if err != nil {
		lines.Close()
		return nil, fmt.Errorf("failed to request tach line %d on %s: %w", cfg.Tach.Line, cfg.Tach.Chip, err)
	}
	in.tachLine = tach

	return in, nil
}

// handleShift dispatches a paddle or sensor edge. One condition per event,
// first match wins; paddles drive actuation immediately, sensors release the
// relays and flag the confirmed direction.
func (in *Inputs) handleShift(evt gpiod.LineEvent) {
	if evt.Type != gpiod.LineEventFallingEdge {
		return
	}

	var err error
	switch evt.Offset {
	case in.paddleUp:
		err = in.shift.PaddleUp()
	case in.paddleDown:
		err = in.shift.PaddleDown()
	case in.confirmUp:
		err = in.shift.ConfirmUp()
	case in.confirmDown:
		err = in.shift.ConfirmDown()
	}
	if err != nil {
		log.Printf("Shift input on line %d failed: %v", evt.Offset, err)
	}
}

// handleTach latches the interval since the previous tach edge. Events for a
// single line are delivered in order on one goroutine, so lastPulse needs no
// locking. The first edge after startup only seeds the timestamp; a computed
// interval is clamped to 1 tick so a valid pulse never collides with the
// zero stale sentinel.
func (in *Inputs) handleTach(evt gpiod.LineEvent) {
	last := in.lastPulse
	in.lastPulse = evt.Timestamp
	if last == 0 {
		return
	}

	delta := evt.Timestamp - last
	if delta <= 0 {
		return
	}

	ticks := uint64(delta) * in.tickRate / uint64(time.Second)
	if ticks == 0 {
		ticks = 1
	}
	if ticks > 0xFFFFFFFF {
		ticks = 0xFFFFFFFF
	}
	in.sink.Store(uint32(ticks))
}

// Close releases all input lines.
func (in *Inputs) Close() {
	if in.shiftLines != nil {
		in.shiftLines.Close()
	}
	if in.tachLine != nil {
		in.tachLine.Close()
	}
}
