package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vortexhw/vortexpanel/internal/geom"
)

// fakeDriver captures the last physical frame flushed.
type fakeDriver struct {
	last    [geom.PanelCount]geom.Pattern
	flushes int
	clears  int
}

func (d *fakeDriver) Flush(panels [geom.PanelCount]geom.Pattern) error {
	d.last = panels
	d.flushes++
	return nil
}

func (d *fakeDriver) Clear() error {
	d.last = [geom.PanelCount]geom.Pattern{}
	d.clears++
	return nil
}

func TestDisplayAppliesLayout(t *testing.T) {
	drv := &fakeDriver{}
	d := NewDisplay(geom.DefaultLayout(), drv)

	var f geom.Frame
	f[0] = geom.Pattern{0x80} // leftmost logical pixel

	assert.NoError(t, d.Draw(f))
	// Reversal puts logical 0 at chain position 3; mirror moves the bit.
	assert.Equal(t, byte(0x01), drv.last[3][0])
	assert.Equal(t, f, d.Last())
}

func TestDisplayClearResetsLast(t *testing.T) {
	drv := &fakeDriver{}
	d := NewDisplay(geom.DefaultLayout(), drv)
	assert.NoError(t, d.Draw(SplashFrame()))
	assert.NoError(t, d.Clear())
	assert.Equal(t, geom.Frame{}, d.Last())
	assert.Equal(t, 1, drv.clears)
}

func TestBarsFrameFillsBottomUp(t *testing.T) {
	f := BarsFrame([4]int{0, 3, 8, 12})
	assert.Equal(t, geom.Pattern{}, f[0])

	// Height 3: bottom three rows lit.
	for y := 0; y < 8; y++ {
		if y >= 5 {
			assert.Equal(t, byte(0xff), f[1][y], "row %d", y)
		} else {
			assert.Zero(t, f[1][y], "row %d", y)
		}
	}

	// Height 8 and over-range both fill the panel.
	full := geom.Pattern{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	assert.Equal(t, full, f[2])
	assert.Equal(t, full, f[3])
}

func TestFrameFromRowsAllOn(t *testing.T) {
	var rows [8]uint32
	for i := range rows {
		rows[i] = 0xffffffff
	}
	f := FrameFromRows(rows)
	for p := 0; p < geom.PanelCount; p++ {
		for y := 0; y < 8; y++ {
			assert.Equal(t, byte(0xff), f[p][y])
		}
	}
}

func TestFrameFromRowsBitOrder(t *testing.T) {
	var rows [8]uint32
	rows[0] = 1 << 31 // leftmost column, top row
	rows[7] = 1       // rightmost column, bottom row

	f := FrameFromRows(rows)
	assert.Equal(t, byte(0x80), f[0][0])
	assert.Equal(t, byte(0x01), f[3][7])
}

func TestFramebufferScenarioAllLit(t *testing.T) {
	// FB: with 64 'f' nibbles lights all 256 pixels after the default
	// geometry transform (reversal on, mirror on, rotation off).
	var rows [8]uint32
	for i := range rows {
		rows[i] = 0xffffffff
	}
	drv := &fakeDriver{}
	d := NewDisplay(geom.DefaultLayout(), drv)
	assert.NoError(t, d.Draw(FrameFromRows(rows)))
	for p := 0; p < geom.PanelCount; p++ {
		for y := 0; y < 8; y++ {
			assert.Equal(t, byte(0xff), drv.last[p][y])
		}
	}
}

func TestDisplayRowsRoundTrip(t *testing.T) {
	rows := [8]uint32{0x80000001, 0xdeadbeef, 0, 0x0f0f0f0f, 1, 2, 3, 4}
	d := NewDisplay(geom.DefaultLayout(), &fakeDriver{})
	assert.NoError(t, d.Draw(FrameFromRows(rows)))
	assert.Equal(t, rows, d.Rows())
}

func TestClockFrameDigitsAndColon(t *testing.T) {
	f := ClockFrame(12, 34, false)
	assert.Equal(t, digitGlyphs[1], f[0])
	assert.Equal(t, digitGlyphs[2], f[1])
	assert.Equal(t, digitGlyphs[3], f[2])
	assert.Equal(t, digitGlyphs[4], f[3])

	on := ClockFrame(12, 34, true)
	assert.Equal(t, f[1][2]|0x01, on[1][2])
	assert.Equal(t, f[1][5]|0x01, on[1][5])
	// Colon only touches panel 1.
	assert.Equal(t, f[0], on[0])
	assert.Equal(t, f[2], on[2])
}
