package dash

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chewxy/math32"

	"github.com/itohio/godash/pkg/config"
)

// MemoryStrip records strip commands for tests and the bench simulator.
type MemoryStrip struct {
	mu     sync.Mutex
	frame  []Color
	clears int
	sends  int
}

// SendFrame records the commanded color sequence.
func (s *MemoryStrip) SendFrame(colors []Color) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = append(s.frame[:0], colors...)
	s.sends++
	return nil
}

// Clear records an all-off command and blanks the remembered frame.
func (s *MemoryStrip) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = s.frame[:0]
	s.clears++
	return nil
}

// Frame returns a copy of the last commanded color sequence.
func (s *MemoryStrip) Frame() []Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Color, len(s.frame))
	copy(out, s.frame)
	return out
}

// Clears returns how many all-off commands were issued.
func (s *MemoryStrip) Clears() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clears
}

// Sends returns how many frame commands were issued.
func (s *MemoryStrip) Sends() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sends
}

// MemoryDisplay records the last shown gear.
type MemoryDisplay struct {
	mu   sync.Mutex
	gear int
}

// Show records the gear index.
func (d *MemoryDisplay) Show(gear int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gear = gear
	return nil
}

// Gear returns the last shown gear, 0 if none was shown yet.
func (d *MemoryDisplay) Gear() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gear
}

// Relay states recorded by MemoryRelays.
const (
	RelayOff  = "off"
	RelayUp   = "up"
	RelayDown = "down"
)

// MemoryRelays records the actuation output state.
type MemoryRelays struct {
	mu    sync.Mutex
	state string
}

// Up engages the recorded upshift relay.
func (r *MemoryRelays) Up() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = RelayUp
	return nil
}

// Down engages the recorded downshift relay.
func (r *MemoryRelays) Down() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = RelayDown
	return nil
}

// AllOff releases both recorded relays.
func (r *MemoryRelays) AllOff() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = RelayOff
	return nil
}

// State returns the current recorded relay state.
func (r *MemoryRelays) State() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == "" {
		return RelayOff
	}
	return r.state
}

// Engine simulates the tachometer and the shift feedback path for bench use.
// It sweeps RPM between idle and max on a cosine profile and feeds the
// resulting inter-pulse intervals into the capture sink at the configured
// rate. A paddle pull asserts actuation immediately and delivers the
// gear-change sensor edge after the configured latency.
type Engine struct {
	cfg *config.Config

	sink  CaptureSink
	shift ShiftEvents

	mu        sync.Mutex
	ctx       context.Context
	cancel    context.CancelFunc
	running   bool
	startTime time.Time
}

// NewEngine creates a simulated engine feeding the given sink and shift path.
func NewEngine(cfg *config.Config, sink CaptureSink, shift ShiftEvents) *Engine {
	return &Engine{
		cfg:   cfg,
		sink:  sink,
		shift: shift,
	}
}

// Start begins producing capture samples. The sweep and sample settings are
// snapshotted here, so configuration edits apply on the next start.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return fmt.Errorf("engine already running")
	}

	e.ctx, e.cancel = context.WithCancel(context.Background())
	e.running = true
	e.startTime = time.Now()

	go e.run(e.ctx, e.cfg.Mock, e.cfg.Tach, e.startTime)

	return nil
}

// Stop halts the simulation and latches the zero stale sentinel, the same
// state a real signal loss produces.
func (e *Engine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return nil
	}

	e.cancel()
	e.running = false
	e.sink.Store(0)

	return nil
}

// Running returns whether the simulation is producing samples.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// PullUp simulates an upshift paddle pull followed by the gear-change sensor
// edge after the configured latency.
func (e *Engine) PullUp() {
	_ = e.shift.PaddleUp()
	time.AfterFunc(e.cfg.Mock.ConfirmLatency, func() {
		_ = e.shift.ConfirmUp()
	})
}

// PullDown simulates a downshift paddle pull and its confirm edge.
func (e *Engine) PullDown() {
	_ = e.shift.PaddleDown()
	time.AfterFunc(e.cfg.Mock.ConfirmLatency, func() {
		_ = e.shift.ConfirmDown()
	})
}

// run works on its own snapshot of the configuration, taken by Start; a
// settings edit during a sweep never races the sample goroutine.
func (e *Engine) run(ctx context.Context, mock config.MockConfig, tach config.TachConfig, start time.Time) {
	ticker := time.NewTicker(mock.SampleRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.sink.Store(ticksAt(mock, tach, time.Since(start)))
		}
	}
}

// ticksAt converts the swept RPM at elapsed time t into an inter-pulse
// interval, the inverse of the speed estimator's transform.
func ticksAt(mock config.MockConfig, tach config.TachConfig, t time.Duration) uint32 {
	rpm := rpmAt(mock, t)
	if rpm <= 0 {
		return 0
	}

	ticks := float32(tach.TickRateHz) * 60.0 / (rpm * float32(tach.PulsesPerRev))
	if ticks < 1 {
		ticks = 1
	}
	return uint32(ticks)
}

// rpmAt evaluates the idle-max-idle cosine sweep at elapsed time t.
func rpmAt(mock config.MockConfig, t time.Duration) float32 {
	idle := float32(mock.IdleRPM)
	span := float32(mock.MaxRPM - mock.IdleRPM)
	phase := float32(t%mock.SweepPeriod) / float32(mock.SweepPeriod)

	return idle + span*(0.5-0.5*math32.Cos(2*math32.Pi*phase))
}
