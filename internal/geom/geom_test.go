package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testPattern = Pattern{0x81, 0x42, 0x24, 0x18, 0x3c, 0x5a, 0x99, 0xff}

func TestReverseByte(t *testing.T) {
	cases := []struct{ in, want byte }{
		{0x00, 0x00},
		{0xff, 0xff},
		{0x80, 0x01},
		{0x01, 0x80},
		{0xa5, 0xa5},
		{0xc3, 0xc3},
		{0xf0, 0x0f},
		{0x12, 0x48},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ReverseByte(c.in), "reverse of %#02x", c.in)
	}
}

func TestTransposeInvolution(t *testing.T) {
	assert.Equal(t, testPattern, testPattern.Transpose().Transpose())
}

func TestTransposeMovesBits(t *testing.T) {
	// Single pixel at row 2, column 5 (bit 0x80>>5) lands at row 5, column 2.
	var p Pattern
	p[2] = 0x80 >> 5
	q := p.Transpose()
	for i, row := range q {
		if i == 5 {
			assert.Equal(t, byte(0x80>>2), row)
		} else {
			assert.Zero(t, row)
		}
	}
}

func TestApplyInvertRoundTrip(t *testing.T) {
	layouts := []Layout{
		{},
		{ReverseOrder: true},
		{MirrorRows: true},
		{Rotate: true},
		{ReverseOrder: true, MirrorRows: true},
		{ReverseOrder: true, MirrorRows: true, Rotate: true},
	}
	for _, l := range layouts {
		for logical := 0; logical < PanelCount; logical++ {
			phys, wire := l.Apply(logical, testPattern)
			backIdx, back := l.Invert(phys, wire)
			assert.Equal(t, logical, backIdx, "layout %+v", l)
			assert.Equal(t, testPattern, back, "layout %+v", l)
		}
	}
}

func TestPhysicalIndexReversal(t *testing.T) {
	l := Layout{ReverseOrder: true}
	assert.Equal(t, 3, l.PhysicalIndex(0))
	assert.Equal(t, 0, l.PhysicalIndex(3))

	l = Layout{}
	assert.Equal(t, 1, l.PhysicalIndex(1))
}

func TestRenderDefaultLayout(t *testing.T) {
	l := DefaultLayout()
	var f Frame
	f[0] = Pattern{0x80} // leftmost logical pixel, top row

	out := l.Render(f)
	// Logical panel 0 lands at chain position 3, mirrored to bit 0.
	assert.Equal(t, byte(0x01), out[3][0])
	assert.Zero(t, out[0][0])
}

func TestRenderAllOn(t *testing.T) {
	full := Pattern{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	f := Frame{full, full, full, full}
	for _, p := range DefaultLayout().Render(f) {
		assert.Equal(t, full, p)
	}
}
