package stripwidget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/godash/pkg/config"
	"github.com/itohio/godash/pkg/dash"
)

func TestSnapshotDetachedFromUpdates(t *testing.T) {
	w := New(config.Default())

	w.UpdateFrame([]dash.Color{{G: 255}, {R: 255, G: 255}})
	frame, gear := w.snapshot()
	require.Len(t, frame, 2)
	assert.Equal(t, 0, gear)

	// UpdateFrame rewrites the widget's backing array in place; an earlier
	// snapshot must keep the colors it was taken with
	w.UpdateFrame([]dash.Color{{R: 255}, {R: 255}})

	assert.Equal(t, dash.Color{G: 255}, frame[0])
	assert.Equal(t, dash.Color{R: 255, G: 255}, frame[1])
}

func TestUpdateFrameCopiesInput(t *testing.T) {
	w := New(config.Default())

	in := []dash.Color{{G: 255}}
	w.UpdateFrame(in)
	in[0] = dash.Color{B: 255}

	frame, _ := w.snapshot()
	require.Len(t, frame, 1)
	assert.Equal(t, dash.Color{G: 255}, frame[0])
}

func TestSetGear(t *testing.T) {
	w := New(config.Default())

	w.SetGear(4)
	_, gear := w.snapshot()
	assert.Equal(t, 4, gear)
}
