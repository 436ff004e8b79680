package tacho

import (
	"sync/atomic"

	"github.com/itohio/godash/pkg/config"
)

// Capture latches the most recent inter-pulse interval measured on the tach
// line. Single producer (the tach event handler), single consumer (the
// background loop); a new capture overwrites a stale one, never queues. A
// value of zero is the stale sentinel: no valid pulse observed since reset.
type Capture struct {
	ticks atomic.Uint32
	ready atomic.Bool
}

// Store latches a new interval and raises the speed-data-ready flag.
func (c *Capture) Store(ticks uint32) {
	c.ticks.Store(ticks)
	c.ready.Store(true)
}

// Take consumes the ready flag and returns the latest interval. ok is false
// when no new capture arrived since the previous Take. If a fresh capture
// lands between the flag clear and the value load, the newer value wins,
// which is the wanted overwrite semantics.
func (c *Capture) Take() (ticks uint32, ok bool) {
	if !c.ready.Swap(false) {
		return 0, false
	}
	return c.ticks.Load(), true
}

// Estimator converts a captured inter-pulse interval into engine RPM.
// Pure and stateless; invoked once per consumed capture.
type Estimator struct {
	// rate is tickRate * 60, precomputed so the per-sample transform is a
	// single division.
	rate float32
	ppr  float32
}

// NewEstimator builds an estimator from the tach configuration.
func NewEstimator(cfg *config.TachConfig) Estimator {
	return Estimator{
		rate: float32(cfg.TickRateHz) * 60.0,
		ppr:  float32(cfg.PulsesPerRev),
	}
}

// RPM returns the engine speed for the given interval. A zero interval is
// the stale sentinel and maps to 0 RPM: engine stopped or signal lost, the
// fail-safe default rather than an error. The float32 intermediate keeps the
// transform exact across the full tick range, from near-zero intervals at
// max speed to very large ones at idle.
func (e Estimator) RPM(ticks uint32) uint32 {
	if ticks == 0 {
		return 0
	}
	return uint32(e.rate / (float32(ticks) * e.ppr))
}
