package main

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// showSettingsDialog displays a settings dialog with tabs for all
// configuration options. Strip geometry and speed estimation settings take
// effect on the next start, the mock tab applies to the next engine start.
func showSettingsDialog(state *appState) {
	tabs := container.NewAppTabs(
		createStripTab(state),
		createTachTab(state),
		createFlashTab(state),
		createMockTab(state),
	)

	content := container.NewBorder(nil, nil, nil, nil, tabs)
	content.Resize(fyne.NewSize(500, 400))

	d := dialog.NewCustom("Settings", "Close", content, state.window)
	d.Resize(fyne.NewSize(500, 400))
	d.Show()
}

// createStripTab creates the indicator strip configuration tab.
func createStripTab(state *appState) *container.TabItem {
	brightnessEntry := widget.NewEntry()
	brightnessEntry.SetText(strconv.Itoa(state.cfg.Strip.Brightness))

	greenEntry := widget.NewEntry()
	greenEntry.SetText(strconv.Itoa(state.cfg.Strip.Green))

	yellowEntry := widget.NewEntry()
	yellowEntry.SetText(strconv.Itoa(state.cfg.Strip.Yellow))

	redEntry := widget.NewEntry()
	redEntry.SetText(strconv.Itoa(state.cfg.Strip.Red))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Brightness (0-31)", Widget: brightnessEntry},
			{Text: "Green Segments", Widget: greenEntry},
			{Text: "Yellow Segments", Widget: yellowEntry},
			{Text: "Red Segments", Widget: redEntry},
		},
		OnSubmit: func() {
			if b, err := strconv.Atoi(brightnessEntry.Text); err == nil {
				state.cfg.Strip.Brightness = b
			}
			if g, err := strconv.Atoi(greenEntry.Text); err == nil {
				state.cfg.Strip.Green = g
			}
			if y, err := strconv.Atoi(yellowEntry.Text); err == nil {
				state.cfg.Strip.Yellow = y
			}
			if r, err := strconv.Atoi(redEntry.Text); err == nil {
				state.cfg.Strip.Red = r
			}
			if err := state.cfg.Save("config.yaml"); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
			}
		},
	}

	return container.NewTabItem("Strip", form)
}

// createTachTab creates the speed estimation configuration tab.
func createTachTab(state *appState) *container.TabItem {
	pprEntry := widget.NewEntry()
	pprEntry.SetText(strconv.Itoa(state.cfg.Tach.PulsesPerRev))

	maxRPMEntry := widget.NewEntry()
	maxRPMEntry.SetText(strconv.Itoa(state.cfg.Tach.MaxRPM))

	marginEntry := widget.NewEntry()
	marginEntry.SetText(strconv.Itoa(state.cfg.Tach.RedlineMargin))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Pulses per Revolution", Widget: pprEntry},
			{Text: "Max RPM", Widget: maxRPMEntry},
			{Text: "Redline Margin (RPM)", Widget: marginEntry},
		},
		OnSubmit: func() {
			if ppr, err := strconv.Atoi(pprEntry.Text); err == nil {
				state.cfg.Tach.PulsesPerRev = ppr
			}
			if max, err := strconv.Atoi(maxRPMEntry.Text); err == nil {
				state.cfg.Tach.MaxRPM = max
			}
			if m, err := strconv.Atoi(marginEntry.Text); err == nil {
				state.cfg.Tach.RedlineMargin = m
			}
			if err := state.cfg.Save("config.yaml"); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
			}
		},
	}

	return container.NewTabItem("Tach", form)
}

// createFlashTab creates the redline flash configuration tab.
func createFlashTab(state *appState) *container.TabItem {
	periodEntry := widget.NewEntry()
	periodEntry.SetText(state.cfg.Flash.Period.String())

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Flash Half-Period", Widget: periodEntry},
		},
		OnSubmit: func() {
			if p, err := time.ParseDuration(periodEntry.Text); err == nil {
				state.cfg.Flash.Period = p
			}
			if err := state.cfg.Save("config.yaml"); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
			}
		},
	}

	return container.NewTabItem("Flash", form)
}

// createMockTab creates the simulated engine configuration tab.
func createMockTab(state *appState) *container.TabItem {
	idleEntry := widget.NewEntry()
	idleEntry.SetText(strconv.Itoa(state.cfg.Mock.IdleRPM))

	maxEntry := widget.NewEntry()
	maxEntry.SetText(strconv.Itoa(state.cfg.Mock.MaxRPM))

	sweepEntry := widget.NewEntry()
	sweepEntry.SetText(state.cfg.Mock.SweepPeriod.String())

	confirmEntry := widget.NewEntry()
	confirmEntry.SetText(state.cfg.Mock.ConfirmLatency.String())

	sampleRateEntry := widget.NewEntry()
	sampleRateEntry.SetText(state.cfg.Mock.SampleRate.String())

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Idle RPM", Widget: idleEntry},
			{Text: "Max RPM", Widget: maxEntry},
			{Text: "Sweep Period", Widget: sweepEntry},
			{Text: "Confirm Latency", Widget: confirmEntry},
			{Text: "Sample Rate", Widget: sampleRateEntry},
		},
		OnSubmit: func() {
			if idle, err := strconv.Atoi(idleEntry.Text); err == nil {
				state.cfg.Mock.IdleRPM = idle
			}
			if max, err := strconv.Atoi(maxEntry.Text); err == nil {
				state.cfg.Mock.MaxRPM = max
			}
			if sp, err := time.ParseDuration(sweepEntry.Text); err == nil {
				state.cfg.Mock.SweepPeriod = sp
			}
			if cl, err := time.ParseDuration(confirmEntry.Text); err == nil {
				state.cfg.Mock.ConfirmLatency = cl
			}
			if sr, err := time.ParseDuration(sampleRateEntry.Text); err == nil {
				state.cfg.Mock.SampleRate = sr
			}
			if err := state.cfg.Save("config.yaml"); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
			}
		},
	}

	return container.NewTabItem("Mock", form)
}
