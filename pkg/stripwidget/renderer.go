package stripwidget

import (
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// stripRenderer renders the strip widget.
type stripRenderer struct {
	strip *StripWidget

	// Background
	background *canvas.Rectangle

	// One rectangle per strip segment
	cells []*canvas.Rectangle

	// Gear digit
	gearText *canvas.Text

	// Objects list for Fyne
	objects []fyne.CanvasObject
}

var (
	backgroundColor = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	darkCellColor   = color.RGBA{R: 45, G: 45, B: 45, A: 255}
	gearColor       = color.RGBA{R: 230, G: 230, B: 230, A: 255}
)

func newStripRenderer(s *StripWidget) *stripRenderer {
	r := &stripRenderer{
		strip:      s,
		background: canvas.NewRectangle(backgroundColor),
		cells:      make([]*canvas.Rectangle, s.segments),
		gearText:   canvas.NewText("-", gearColor),
	}

	r.gearText.TextSize = 48
	r.gearText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	r.gearText.Alignment = fyne.TextAlignCenter

	r.objects = append(r.objects, r.background)
	for i := range r.cells {
		r.cells[i] = canvas.NewRectangle(darkCellColor)
		r.objects = append(r.objects, r.cells[i])
	}
	r.objects = append(r.objects, r.gearText)

	return r
}

// MinSize returns the minimum size of the widget.
func (r *stripRenderer) MinSize() fyne.Size {
	return fyne.NewSize(float32(12*len(r.cells)+80), 90)
}

// Layout arranges the segment cells in a row with the gear digit trailing.
func (r *stripRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)

	gearWidth := float32(80.0)
	margin := float32(8.0)
	gap := float32(2.0)

	stripWidth := size.Width - gearWidth - 2*margin
	cellWidth := (stripWidth - gap*float32(len(r.cells)-1)) / float32(len(r.cells))
	cellHeight := size.Height - 2*margin

	x := margin
	for _, cell := range r.cells {
		cell.Resize(fyne.NewSize(cellWidth, cellHeight))
		cell.Move(fyne.NewPos(x, margin))
		x += cellWidth + gap
	}

	r.gearText.Resize(fyne.NewSize(gearWidth, size.Height))
	r.gearText.Move(fyne.NewPos(size.Width-gearWidth, (size.Height-r.gearText.MinSize().Height)/2))
}

// Refresh recolors the cells from the last commanded frame.
func (r *stripRenderer) Refresh() {
	frame, gear := r.strip.snapshot()

	for i, cell := range r.cells {
		if i < len(frame) {
			cell.FillColor = color.RGBA{R: frame[i].R, G: frame[i].G, B: frame[i].B, A: 255}
		} else {
			cell.FillColor = darkCellColor
		}
		cell.Refresh()
	}

	if gear > 0 {
		r.gearText.Text = strconv.Itoa(gear)
	} else {
		r.gearText.Text = "-"
	}
	r.gearText.Refresh()
}

// Objects returns all canvas objects for rendering.
func (r *stripRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy cleans up resources.
func (r *stripRenderer) Destroy() {
	// Cleanup handled by Fyne
}
