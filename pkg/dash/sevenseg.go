package dash

import (
	"fmt"

	"gobot.io/x/gobot/sysfs"

	"github.com/itohio/godash/pkg/config"
)

// Digit encoding for the common-cathode 7-segment gear display. Indexed by
// the digit shown; gearOn carries the segments to assert, gearOff the
// superfluous segments to mask afterwards. Values match the dashboard board
// wiring of the digit register.
var (
	gearOn  = [10]uint8{0x77, 0x05, 0xB3, 0xA7, 0xC5, 0xE6, 0xF6, 0x07, 0xF7, 0xE7}
	gearOff = [10]uint8{0x88, 0xFA, 0x4C, 0x58, 0x3A, 0x19, 0x09, 0xF8, 0x08, 0x18}
)

// digitalPin is the subset of sysfs.DigitalPin used by the output drivers.
type digitalPin interface {
	Write(val int) error
	Unexport() error
}

// SevenSeg drives the gear digit through 8 sysfs GPIO pins acting as the
// digit register, bit 0 first.
type SevenSeg struct {
	pins [8]digitalPin
}

// NewSevenSeg exports and configures the digit register pins.
func NewSevenSeg(cfg *config.ShiftConfig) (*SevenSeg, error) {
	if len(cfg.SegmentPins) != 8 {
		return nil, fmt.Errorf("gear display needs 8 segment pins, got %d", len(cfg.SegmentPins))
	}

	d := &SevenSeg{}
	for i, pin := range cfg.SegmentPins {
		p := sysfs.NewDigitalPin(pin)
		if err := p.Export(); err != nil {
			d.Close()
			return nil, fmt.Errorf("failed to export segment pin %d: %w", pin, err)
		}
		if err := p.Direction(sysfs.OUT); err != nil {
			d.Close()
			return nil, fmt.Errorf("failed to configure segment pin %d: %w", pin, err)
		}
		if err := p.Write(0); err != nil {
			d.Close()
			return nil, fmt.Errorf("failed to blank segment pin %d: %w", pin, err)
		}
		d.pins[i] = p
	}

	return d, nil
}

// Show displays the gear digit. Asserts the digit's segments first, then
// masks the previous digit's leftovers; the ordering avoids visible ghost
// segments between digits.
func (d *SevenSeg) Show(gear int) error {
	if gear < 0 || gear >= len(gearOn) {
		return fmt.Errorf("gear %d out of display range", gear)
	}

	return d.apply(gearOn[gear], gearOff[gear])
}

func (d *SevenSeg) apply(assert, mask uint8) error {
	for i, p := range d.pins {
		if p == nil {
			continue
		}
		if assert&(1<<i) != 0 {
			if err := p.Write(1); err != nil {
				return fmt.Errorf("failed to assert segment bit %d: %w", i, err)
			}
		}
	}
	for i, p := range d.pins {
		if p == nil {
			continue
		}
		if mask&(1<<i) != 0 {
			if err := p.Write(0); err != nil {
				return fmt.Errorf("failed to mask segment bit %d: %w", i, err)
			}
		}
	}
	return nil
}

// Close blanks the digit and unexports the pins.
func (d *SevenSeg) Close() {
	for _, p := range d.pins {
		if p == nil {
			continue
		}
		_ = p.Write(0)
		_ = p.Unexport()
	}
}
