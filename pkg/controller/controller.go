// Package controller ties the event sources to the background consumer loop.
// Event handlers latch captures, toggle the flash phase and raise confirm
// flags; the loop polls those every iteration and runs the estimator, the
// indicator mapper and the shift state machine to completion, one pass per
// pending event.
package controller

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/itohio/godash/pkg/config"
	"github.com/itohio/godash/pkg/dash"
	"github.com/itohio/godash/pkg/gearbox"
	"github.com/itohio/godash/pkg/shiftlight"
	"github.com/itohio/godash/pkg/tacho"
)

// pollInterval paces the busy loop. Short enough that a render or shift is
// never delayed perceptibly, long enough to keep the loop off the CPU.
const pollInterval = 500 * time.Microsecond

// Controller owns the shared state between event sources and the loop.
type Controller struct {
	cfg *config.Config

	capture tacho.Capture
	est     tacho.Estimator
	mapper  *shiftlight.Mapper
	machine *gearbox.Machine

	strip dash.Strip

	// flash is toggled by the flash timer goroutine only; the loop reads it.
	flash atomic.Bool
}

// New wires a controller around the given output drivers.
func New(cfg *config.Config, strip dash.Strip, relays dash.Relays, display dash.GearDisplay) *Controller {
	return &Controller{
		cfg:     cfg,
		est:     tacho.NewEstimator(&cfg.Tach),
		mapper:  shiftlight.New(&cfg.Strip, &cfg.Tach),
		machine: gearbox.New(relays, display),
		strip:   strip,
	}
}

// Capture returns the capture latch for the tach event source.
func (c *Controller) Capture() *tacho.Capture {
	return &c.capture
}

// Machine returns the shift state machine for the input event source.
func (c *Controller) Machine() *gearbox.Machine {
	return c.machine
}

// FlashPhase returns the current redline flash phase.
func (c *Controller) FlashPhase() bool {
	return c.flash.Load()
}

// Run executes the background loop until the context is cancelled. The strip
// starts cleared and the display shows the initial gear. Render or display
// errors are logged and absorbed; the loop self-corrects on the next cycle.
func (c *Controller) Run(ctx context.Context) error {
	if err := c.strip.Clear(); err != nil {
		log.Printf("Initial strip clear failed: %v", err)
	}
	if err := c.machine.ShowGear(); err != nil {
		log.Printf("Initial gear display failed: %v", err)
	}

	stopFlash := c.startFlashTimer(ctx)
	defer stopFlash()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		c.step()
		time.Sleep(pollInterval)
	}
}

// step runs one loop iteration: a full render pass if a capture is pending,
// then one advance of the shift state machine. A confirm arriving together
// with a speed sample is serviced in the same iteration, after rendering.
func (c *Controller) step() {
	if ticks, ok := c.capture.Take(); ok {
		rpm := c.est.RPM(ticks)
		if err := c.mapper.Render(c.strip, rpm, c.flash.Load()); err != nil {
			log.Printf("Strip render failed: %v", err)
		}
	}

	if err := c.machine.Step(); err != nil {
		log.Printf("Shift step failed: %v", err)
	}
}

// startFlashTimer toggles the flash phase at the configured half-period.
// time.Ticker re-arms from the previous deadline, so the blink rate carries
// no cumulative drift.
func (c *Controller) startFlashTimer(ctx context.Context) (stop func()) {
	ticker := time.NewTicker(c.cfg.Flash.Period)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.flash.Store(!c.flash.Load())
			}
		}
	}()

	return func() {
		ticker.Stop()
		<-done
	}
}
