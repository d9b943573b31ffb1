package charlcd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeDevice records every physical write so tests can assert on traffic.
type fakeDevice struct {
	cells     [Rows][Cols]byte
	writes    int
	clears    int
	glyphs    map[int][8]byte
	backlight bool
}

func newFakeDevice() *fakeDevice {
	d := &fakeDevice{glyphs: map[int][8]byte{}}
	for r := range d.cells {
		for c := range d.cells[r] {
			d.cells[r][c] = ' '
		}
	}
	return d
}

func (d *fakeDevice) SetCell(row, col int, ch byte) error {
	d.cells[row][col] = ch
	d.writes++
	return nil
}

func (d *fakeDevice) DefineGlyph(slot int, rows [8]byte) error {
	d.glyphs[slot] = rows
	return nil
}

func (d *fakeDevice) SetBacklight(on bool) error {
	d.backlight = on
	return nil
}

func (d *fakeDevice) Clear() error {
	d.clears++
	for r := range d.cells {
		for c := range d.cells[r] {
			d.cells[r][c] = ' '
		}
	}
	return nil
}

func (d *fakeDevice) row(r int) string { return string(d.cells[r][:]) }

func TestWriteLinePadsAndTruncates(t *testing.T) {
	dev := newFakeDevice()
	s := NewScreen(dev)

	assert.NoError(t, s.WriteLine(0, "Clock Mode"))
	assert.Equal(t, "Clock Mode      ", dev.row(0))

	assert.NoError(t, s.WriteLine(1, "0123456789abcdefOVERFLOW"))
	assert.Equal(t, "0123456789abcdef", dev.row(1))
}

func TestDiffingWritesOnlyChangedCells(t *testing.T) {
	dev := newFakeDevice()
	s := NewScreen(dev)

	assert.NoError(t, s.WriteLine(0, "ARI:41 CC:7"))
	first := dev.writes

	// One digit changes; exactly one cell should be rewritten.
	assert.NoError(t, s.WriteLine(0, "ARI:42 CC:7"))
	assert.Equal(t, first+1, dev.writes)

	// Identical content writes nothing.
	assert.NoError(t, s.WriteLine(0, "ARI:42 CC:7"))
	assert.Equal(t, first+1, dev.writes)
}

func TestIconLineLayout(t *testing.T) {
	dev := newFakeDevice()
	s := NewScreen(dev)

	assert.NoError(t, s.WriteIconLine(0, IconNote, "Music Mode"))
	assert.Equal(t, byte(IconNote), dev.cells[0][0])
	assert.Equal(t, byte(' '), dev.cells[0][1])
	assert.Equal(t, "Music Mode    ", string(dev.cells[0][2:]))
}

func TestResetKeepsShadowInSync(t *testing.T) {
	dev := newFakeDevice()
	s := NewScreen(dev)

	assert.NoError(t, s.WriteLine(0, "Text Mode"))
	assert.NoError(t, s.Reset())
	assert.Equal(t, 1, dev.clears)

	// After reset every cell differs from blank content only where text
	// lands, so a full-line render touches exactly the non-space cells.
	before := dev.writes
	assert.NoError(t, s.WriteLine(0, "Text Mode"))
	assert.Equal(t, before+len("Text Mode"), dev.writes)
}

func TestLoadGlyphsBlanksUnusedSlots(t *testing.T) {
	dev := newFakeDevice()
	s := NewScreen(dev)

	assert.NoError(t, s.LoadGlyphs(SystemGlyphs))
	assert.Len(t, dev.glyphs, 8)
	assert.Equal(t, [8]byte{}, dev.glyphs[7])
	assert.NotEqual(t, [8]byte{}, dev.glyphs[IconCPU])
}

func TestBacklightToggle(t *testing.T) {
	dev := newFakeDevice()
	s := NewScreen(dev)

	assert.NoError(t, s.Backlight(false))
	assert.False(t, dev.backlight)
	assert.NoError(t, s.ToggleBacklight())
	assert.True(t, dev.backlight)
	assert.True(t, s.BacklightOn())
}

func TestMarqueeStaticTextNeverMoves(t *testing.T) {
	var m Marquee
	m.SetText("Short")
	w := m.Window(14)
	for i := 0; i < 20; i++ {
		m.Advance(14)
		assert.Equal(t, w, m.Window(14))
	}
}

func TestMarqueeAdvancesOneCharPerTick(t *testing.T) {
	var m Marquee
	m.SetText("A somewhat longer title")

	first := m.Window(14)
	m.Advance(14)
	second := m.Window(14)
	assert.Equal(t, first[1:], second[:13], "window advances by exactly one character")
}

func TestMarqueeWrapsAfterLengthPlusGap(t *testing.T) {
	var m Marquee
	text := "A somewhat longer title"
	m.SetText(text)

	first := m.Window(14)
	period := len(text) + len(marqueeGap)
	for i := 0; i < period; i++ {
		m.Advance(14)
	}
	assert.Equal(t, first, m.Window(14))
}

func TestMarqueeSetTextResetsCursor(t *testing.T) {
	var m Marquee
	m.SetText("first scrolling content here")
	m.Advance(14)
	m.Advance(14)
	m.SetText("second scrolling content here")
	assert.Equal(t, "second scrolli", m.Window(14))
}
