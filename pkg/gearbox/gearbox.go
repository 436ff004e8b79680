// Package gearbox arbitrates paddle shift requests against confirmation from
// the physical gear-change sensors. A paddle pull only engages the shift
// relay; the gear index and its display advance once the sensor reports the
// gear actually changed.
package gearbox

import (
	"sync/atomic"

	"github.com/itohio/godash/pkg/dash"
)

// Gear index bounds of the sequential box.
const (
	MinGear = 1
	MaxGear = 6
)

// Machine is the shift state machine. Paddle and sensor edges arrive from
// event-handler context; Step runs on the background loop. The confirm flags
// are the only hand-off between the two: set by the sensor edge, consumed by
// Step with an atomic load-and-clear.
type Machine struct {
	gear        atomic.Int32
	confirmUp   atomic.Bool
	confirmDown atomic.Bool

	relays  dash.Relays
	display dash.GearDisplay
}

var _ dash.ShiftEvents = (*Machine)(nil)

// New creates a machine starting in first gear. The display is not touched
// until ShowGear or the first confirmed shift.
func New(relays dash.Relays, display dash.GearDisplay) *Machine {
	m := &Machine{
		relays:  relays,
		display: display,
	}
	m.gear.Store(MinGear)
	return m
}

// Gear returns the current confirmed gear index.
func (m *Machine) Gear() int {
	return int(m.gear.Load())
}

// ShowGear pushes the current gear to the display.
func (m *Machine) ShowGear() error {
	return m.display.Show(m.Gear())
}

// PaddleUp handles an upshift paddle edge: engage the upshift relay,
// release the downshift relay. The gear index does not move yet.
func (m *Machine) PaddleUp() error {
	return m.relays.Up()
}

// PaddleDown handles a downshift paddle edge.
func (m *Machine) PaddleDown() error {
	return m.relays.Down()
}

// ConfirmUp handles the upshift gear-change sensor edge: release both
// relays and flag the confirmed direction for the next Step.
func (m *Machine) ConfirmUp() error {
	err := m.relays.AllOff()
	m.confirmUp.Store(true)
	return err
}

// ConfirmDown handles the downshift gear-change sensor edge.
func (m *Machine) ConfirmDown() error {
	err := m.relays.AllOff()
	m.confirmDown.Store(true)
	return err
}

// Step evaluates one iteration of the state machine. Each pending confirm
// flag is consumed exactly once, whether or not the gear bound permits the
// shift: a confirm at the end of the range is ignored, and consuming it
// anyway means a stale flag can never fire on a later legitimate shift or
// stall the machine. Up is serviced first; a pending down-confirm rides over
// to the next iteration when an upshift was applied this one.
func (m *Machine) Step() error {
	if m.confirmUp.Swap(false) {
		if g := int(m.gear.Load()); g < MaxGear {
			return m.setGear(g + 1)
		}
	}

	if m.confirmDown.Swap(false) {
		if g := int(m.gear.Load()); g > MinGear {
			return m.setGear(g - 1)
		}
	}

	return nil
}

func (m *Machine) setGear(gear int) error {
	m.gear.Store(int32(gear))
	return m.display.Show(gear)
}
