package dash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendFrame_WireFormat(t *testing.T) {
	colors := []Color{
		{R: 0, G: 255, B: 0},
		{R: 255, G: 255, B: 0},
		{R: 255, G: 0, B: 0},
	}

	buf := appendFrame(nil, colors, 3)

	// 4-byte start marker, 4 bytes per segment, 4-byte end marker.
	require.Len(t, buf, 4+3*4+4)

	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x00}, buf[:4], "start marker")

	// Segment frames carry 0xE0|brightness then BGR.
	assert.Equal(t, []byte{0xE3, 0x00, 0xFF, 0x00}, buf[4:8], "green segment")
	assert.Equal(t, []byte{0xE3, 0x00, 0xFF, 0xFF}, buf[8:12], "yellow segment")
	assert.Equal(t, []byte{0xE3, 0x00, 0x00, 0xFF}, buf[12:16], "red segment")

	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, buf[16:], "end marker")
}

func TestAppendFrame_BrightnessMasked(t *testing.T) {
	// Brightness occupies 5 bits; anything wider must not leak into the
	// frame marker bits.
	buf := appendFrame(nil, []Color{{}}, 31)
	assert.Equal(t, byte(0xFF), buf[4])
}

func TestAppendClear_CoversEverySegment(t *testing.T) {
	buf := appendClear(nil, 30)

	require.Len(t, buf, 4+30*4+4)
	for i := 0; i < 30; i++ {
		seg := buf[4+i*4 : 8+i*4]
		assert.Equal(t, []byte{0xE0, 0x00, 0x00, 0x00}, seg, "segment %d must be off", i)
	}
}

func TestAppendFrame_EmptySequence(t *testing.T) {
	buf := appendFrame(nil, nil, 3)
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF}, buf)
}

func TestAppendFrame_ReusesBuffer(t *testing.T) {
	buf := make([]byte, 0, 64)
	out := appendFrame(buf, []Color{{R: 1}}, 0)
	assert.Equal(t, 12, len(out))
	out2 := appendFrame(out[:0], []Color{{R: 2}}, 0)
	assert.Equal(t, &out[0], &out2[0], "append into the same backing array")
}
