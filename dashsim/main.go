package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/godash/pkg/config"
	"github.com/itohio/godash/pkg/controller"
	"github.com/itohio/godash/pkg/dash"
	"github.com/itohio/godash/pkg/stripwidget"
)

func main() {
	var (
		configFlag = flag.String("config", "config.yaml", "Configuration file path")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create Fyne application
	application := app.NewWithID("com.itohio.godash")

	// Create main window
	window := application.NewWindow("Dashboard Bench")
	window.Resize(fyne.NewSize(900, 240))
	window.CenterOnScreen()

	// On-screen dashboard standing in for the LED strip and the gear digit
	strip := stripwidget.New(cfg)
	sink := stripwidget.NewSink(strip)

	relays := &dash.MemoryRelays{}

	ctrl := controller.New(cfg, sink, relays, sink)
	engine := dash.NewEngine(cfg, ctrl.Capture(), ctrl.Machine())

	// Create application state
	state := &appState{
		cfg:    cfg,
		window: window,
		strip:  strip,
		relays: relays,
		engine: engine,
	}

	// Create toolbar
	toolbar := createToolbar(state)

	state.relayLabel = widget.NewLabel("Relays: off")

	content := container.NewBorder(
		toolbar,
		state.relayLabel,
		nil,
		nil,
		strip,
	)
	window.SetContent(content)

	// Run the controller for the lifetime of the window
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := ctrl.Run(ctx); err != nil {
			log.Printf("Controller stopped: %v", err)
		}
	}()
	go watchRelays(ctx, state)

	window.ShowAndRun()

	cancel()
	engine.Stop()
}

// appState holds the application state.
type appState struct {
	cfg    *config.Config
	window fyne.Window
	strip  *stripwidget.StripWidget
	relays *dash.MemoryRelays
	engine *dash.Engine

	engineBtn  *widget.Button
	relayLabel *widget.Label
}

// createToolbar creates the toolbar with engine and settings controls on the
// left and the paddle buttons on the right.
func createToolbar(state *appState) fyne.CanvasObject {
	engineBtn := widget.NewButtonWithIcon("Engine", theme.MediaPlayIcon(), func() {
		handleEngineToggle(state)
	})
	state.engineBtn = engineBtn

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	paddleDownBtn := widget.NewButtonWithIcon("Shift -", theme.NavigateBackIcon(), func() {
		state.engine.PullDown()
	})
	paddleUpBtn := widget.NewButtonWithIcon("Shift +", theme.NavigateNextIcon(), func() {
		state.engine.PullUp()
	})

	return container.NewBorder(
		nil, // top
		nil, // bottom
		container.NewHBox(engineBtn, settingsBtn),     // left
		container.NewHBox(paddleDownBtn, paddleUpBtn), // right
		nil, // center (spacer)
	)
}

// handleEngineToggle starts or stops the simulated engine.
func handleEngineToggle(state *appState) {
	if state.engine.Running() {
		if err := state.engine.Stop(); err != nil {
			log.Printf("Engine stop failed: %v", err)
			return
		}
		state.engineBtn.SetIcon(theme.MediaPlayIcon())
		fmt.Println("Simulated engine stopped")
	} else {
		if err := state.engine.Start(); err != nil {
			log.Printf("Engine start failed: %v", err)
			return
		}
		state.engineBtn.SetIcon(theme.MediaStopIcon())
		fmt.Printf("Simulated engine sweeping %d-%d RPM\n", state.cfg.Mock.IdleRPM, state.cfg.Mock.MaxRPM)
	}
}

// watchRelays mirrors the recorded relay state into the status label.
// Updates go through fyne.Do() since this runs off the main thread.
func watchRelays(ctx context.Context, state *appState) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	last := ""
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			current := state.relays.State()
			if current == last {
				continue
			}
			last = current
			fyne.Do(func() {
				state.relayLabel.SetText("Relays: " + current)
			})
		}
	}
}
