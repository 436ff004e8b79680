package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/itohio/godash/pkg/config"
	"github.com/itohio/godash/pkg/controller"
	"github.com/itohio/godash/pkg/dash"
)

func main() {
	var (
		chipFlag   = flag.String("chip", "", "GPIO chip override (e.g. gpiochip0)")
		configFlag = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag   = flag.Bool("mock", false, "Drive in-memory fakes from a simulated engine instead of real hardware")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override GPIO chip if provided via command line
	if *chipFlag != "" {
		cfg.Tach.Chip = *chipFlag
		cfg.Shift.Chip = *chipFlag
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *mockFlag {
		err = runMock(ctx, cfg)
	} else {
		err = runHardware(ctx, cfg)
	}
	if err != nil {
		log.Fatalf("Controller failed: %v", err)
	}
}

// runHardware wires the controller to the SPI strip, the sysfs outputs and
// the GPIO event lines.
func runHardware(ctx context.Context, cfg *config.Config) error {
	strip, err := dash.NewSK9822(&cfg.Strip)
	if err != nil {
		return err
	}
	defer strip.Close()

	display, err := dash.NewSevenSeg(&cfg.Shift)
	if err != nil {
		return err
	}
	defer display.Close()

	relays, err := dash.NewSysfsRelays(&cfg.Shift)
	if err != nil {
		return err
	}
	defer relays.Close()

	ctrl := controller.New(cfg, strip, relays, display)

	inputs, err := dash.NewInputs(cfg, ctrl.Capture(), ctrl.Machine())
	if err != nil {
		return err
	}
	defer inputs.Close()

	log.Printf("Dashboard controller running, %d strip segments, redline above %d RPM",
		cfg.Strip.Segments(), cfg.Tach.Ceiling())

	return ctrl.Run(ctx)
}

// runMock replaces every peripheral with an in-memory fake and feeds the
// controller from the simulated engine. Useful for exercising the full loop
// on a development machine with no GPIO.
func runMock(ctx context.Context, cfg *config.Config) error {
	strip := &dash.MemoryStrip{}
	display := &dash.MemoryDisplay{}
	relays := &dash.MemoryRelays{}

	ctrl := controller.New(cfg, strip, relays, display)

	engine := dash.NewEngine(cfg, ctrl.Capture(), ctrl.Machine())
	if err := engine.Start(); err != nil {
		return err
	}
	defer engine.Stop()

	log.Printf("Simulated engine sweeping %d-%d RPM", cfg.Mock.IdleRPM, cfg.Mock.MaxRPM)

	go logMockState(ctx, strip, display)

	return ctrl.Run(ctx)
}

// logMockState periodically reports what the fakes last displayed.
func logMockState(ctx context.Context, strip *dash.MemoryStrip, display *dash.MemoryDisplay) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			log.Printf("Strip: %d segments lit, gear %d", len(strip.Frame()), display.Gear())
		}
	}
}
