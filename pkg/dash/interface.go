package dash

// Color is a single indicator segment color.
type Color struct {
	R, G, B uint8
}

// Strip drives the daisy-chained RGB indicator strip. Frame operations are
// atomic from the caller's perspective: one call, one bus transaction.
type Strip interface {
	// SendFrame lights segments in strip order with the given colors.
	// Segments beyond the sequence keep whatever the last Clear left them at.
	SendFrame(colors []Color) error
	// Clear turns every segment off.
	Clear() error
}

// GearDisplay shows a gear index on the 7-segment digit.
type GearDisplay interface {
	Show(gear int) error
}

// Relays drives the shift actuation outputs. The two directions are mutually
// exclusive at any instant.
type Relays interface {
	Up() error
	Down() error
	AllOff() error
}

// ShiftEvents receives paddle and gear-change sensor edges. Implemented by
// the shift state machine; called from event-handler context, so every method
// must be bounded and short.
type ShiftEvents interface {
	PaddleUp() error
	PaddleDown() error
	ConfirmUp() error
	ConfirmDown() error
}

// CaptureSink receives inter-pulse intervals measured on the tach line.
// New captures overwrite stale ones, never queue.
type CaptureSink interface {
	Store(ticks uint32)
}

// Ensure the hardware drivers implement the collaborator interfaces.
var _ Strip = (*SK9822)(nil)
var _ GearDisplay = (*SevenSeg)(nil)
var _ Relays = (*SysfsRelays)(nil)

// Ensure the in-memory fakes implement them too.
var _ Strip = (*MemoryStrip)(nil)
var _ GearDisplay = (*MemoryDisplay)(nil)
var _ Relays = (*MemoryRelays)(nil)
