package dash

import (
	"fmt"

	"gobot.io/x/gobot/sysfs"

	"github.com/itohio/godash/pkg/config"
)

// SysfsRelays drives the shift-up/shift-down relay pair through sysfs GPIO.
// The opposing relay is always released before the requested one engages, so
// both directions can never be energized at once.
type SysfsRelays struct {
	up   digitalPin
	down digitalPin
}

// NewSysfsRelays exports and configures the relay pins, both released.
func NewSysfsRelays(cfg *config.ShiftConfig) (*SysfsRelays, error) {
	up, err := outputPin(cfg.RelayUpPin)
	if err != nil {
		return nil, fmt.Errorf("up relay: %w", err)
	}
	down, err := outputPin(cfg.RelayDownPin)
	if err != nil {
		_ = up.Unexport()
		return nil, fmt.Errorf("down relay: %w", err)
	}
	return &SysfsRelays{up: up, down: down}, nil
}

func outputPin(pin int) (digitalPin, error) {
	p := sysfs.NewDigitalPin(pin)
	if err := p.Export(); err != nil {
		return nil, fmt.Errorf("failed to export pin %d: %w", pin, err)
	}
	if err := p.Direction(sysfs.OUT); err != nil {
		_ = p.Unexport()
		return nil, fmt.Errorf("failed to configure pin %d: %w", pin, err)
	}
	if err := p.Write(0); err != nil {
		_ = p.Unexport()
		return nil, fmt.Errorf("failed to release pin %d: %w", pin, err)
	}
	return p, nil
}

// Up engages the upshift relay and releases the downshift relay.
func (r *SysfsRelays) Up() error {
	if err := r.down.Write(0); err != nil {
		return err
	}
	return r.up.Write(1)
}

// Down engages the downshift relay and releases the upshift relay.
func (r *SysfsRelays) Down() error {
	if err := r.up.Write(0); err != nil {
		return err
	}
	return r.down.Write(1)
}

// AllOff releases both relays.
func (r *SysfsRelays) AllOff() error {
	if err := r.up.Write(0); err != nil {
		return err
	}
	return r.down.Write(0)
}

// Close releases both relays and unexports the pins.
func (r *SysfsRelays) Close() {
	_ = r.AllOff()
	_ = r.up.Unexport()
	_ = r.down.Unexport()
}
