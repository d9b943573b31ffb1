// Package matrix renders the cascaded 8x8 dot-matrix chain: digit clock,
// level bars, the 32-band spectrum, raw framebuffer pushes and the startup
// splash. All content is composed as a logical geom.Frame and pushed
// through the shared geometry layout before it reaches the driver.
package matrix

import "github.com/vortexhw/vortexpanel/internal/geom"

// Driver abstracts the dot-matrix transport. Flush receives the full
// physical frame, indexed by chain position.
type Driver interface {
	Flush(panels [geom.PanelCount]geom.Pattern) error
	Clear() error
}

// Display owns the layout and the last logical frame drawn, which the
// mirror surface reads back.
type Display struct {
	layout geom.Layout
	drv    Driver
	last   geom.Frame
}

func NewDisplay(layout geom.Layout, drv Driver) *Display {
	return &Display{layout: layout, drv: drv}
}

// Draw transforms the logical frame through the layout and flushes it.
func (d *Display) Draw(f geom.Frame) error {
	d.last = f
	return d.drv.Flush(d.layout.Render(f))
}

// Clear blanks the chain and the retained frame.
func (d *Display) Clear() error {
	d.last = geom.Frame{}
	return d.drv.Clear()
}

// Last returns the most recently drawn logical frame.
func (d *Display) Last() geom.Frame { return d.last }

// Rows flattens the last logical frame into 8 rows of 32 columns, bit 31
// leftmost, the same encoding the FB command uses on the wire.
func (d *Display) Rows() [8]uint32 {
	var rows [8]uint32
	for p := 0; p < geom.PanelCount; p++ {
		for r := 0; r < 8; r++ {
			rows[r] |= uint32(d.last[p][r]) << uint(24-8*p)
		}
	}
	return rows
}

// ClockFrame lays the four time digits out one per panel, with the blink
// colon as two fixed pixels on the right edge of panel 1.
func ClockFrame(hour, minute int, colon bool) geom.Frame {
	var f geom.Frame
	f[0] = digitGlyphs[abs(hour/10)%10]
	f[1] = digitGlyphs[abs(hour)%10]
	f[2] = digitGlyphs[abs(minute/10)%10]
	f[3] = digitGlyphs[abs(minute)%10]
	if colon {
		f[1][2] |= 0x01
		f[1][5] |= 0x01
	}
	return f
}

// BarsFrame fills each panel from the bottom row upward to its level 0..8.
func BarsFrame(levels [4]int) geom.Frame {
	var f geom.Frame
	for p, h := range levels {
		if h < 0 {
			h = 0
		}
		if h > 8 {
			h = 8
		}
		for y := 8 - h; y < 8; y++ {
			f[p][y] = 0xff
		}
	}
	return f
}

// FrameFromRows slices a 32x8 row bitmap into per-panel patterns. Bit 31
// of a row is the leftmost of the 32 columns.
func FrameFromRows(rows [8]uint32) geom.Frame {
	var f geom.Frame
	for r, row := range rows {
		for p := 0; p < geom.PanelCount; p++ {
			f[p][r] = byte(row >> uint(24-8*p))
		}
	}
	return f
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
