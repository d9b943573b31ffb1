// Package charlcd renders the 16x2 character display through a shadow
// buffer: every render computes the full target row and writes only the
// cells that changed, so scroll ticks and counter updates touch one or two
// characters instead of repainting the line.
package charlcd

// Rows and Cols are the fixed dimensions of the character display.
const (
	Rows = 2
	Cols = 16

	// IconWidth is the cells taken by the icon-plus-space prefix.
	IconWidth = 2
	// ContentWidth is what remains for text on an icon-prefixed line.
	ContentWidth = Cols - IconWidth
)

// Device is the opaque character display driver.
type Device interface {
	// SetCell writes one character code at row, col.
	SetCell(row, col int, ch byte) error
	// DefineGlyph programs a custom 5x8 glyph into CGRAM slot 0..7.
	DefineGlyph(slot int, rows [8]byte) error
	// SetBacklight switches the backlight.
	SetBacklight(on bool) error
	// Clear blanks the display.
	Clear() error
}

// Screen owns the shadow buffer for a Device. It is not safe for
// concurrent use; the controller is its only caller.
type Screen struct {
	dev       Device
	shadow    [Rows][Cols]byte
	backlight bool
}

func NewScreen(dev Device) *Screen {
	s := &Screen{dev: dev, backlight: true}
	s.resetShadow()
	return s
}

func (s *Screen) resetShadow() {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			s.shadow[r][c] = ' '
		}
	}
}

// Reset clears the physical display and the shadow together, keeping the
// invariant that the shadow always mirrors the glass.
func (s *Screen) Reset() error {
	s.resetShadow()
	return s.dev.Clear()
}

// setCell diffs against the shadow before touching the device.
func (s *Screen) setCell(row, col int, ch byte) error {
	if s.shadow[row][col] == ch {
		return nil
	}
	if err := s.dev.SetCell(row, col, ch); err != nil {
		return err
	}
	s.shadow[row][col] = ch
	return nil
}

// WriteLine renders text padded or truncated to exactly 16 cells.
func (s *Screen) WriteLine(row int, text string) error {
	return s.writeCells(row, 0, pad(text, Cols))
}

// WriteIconLine renders a CGRAM icon, a space, and 14 cells of text.
func (s *Screen) WriteIconLine(row int, icon byte, text string) error {
	if err := s.setCell(row, 0, icon); err != nil {
		return err
	}
	if err := s.setCell(row, 1, ' '); err != nil {
		return err
	}
	return s.writeCells(row, IconWidth, pad(text, ContentWidth))
}

// SetCellRaw places a single character code, used for the visit-animation
// cell that cycles through the bar glyph slots.
func (s *Screen) SetCellRaw(row, col int, ch byte) error {
	return s.setCell(row, col, ch)
}

func (s *Screen) writeCells(row, start int, cells []byte) error {
	for i, ch := range cells {
		if err := s.setCell(row, start+i, ch); err != nil {
			return err
		}
	}
	return nil
}

// LoadGlyphs programs a glyph set into the device CGRAM. Unused slots are
// blanked so leftovers from the previous mode cannot show through.
func (s *Screen) LoadGlyphs(set GlyphSet) error {
	for slot := 0; slot < 8; slot++ {
		rows, ok := set[slot]
		if !ok {
			rows = [8]byte{}
		}
		if err := s.dev.DefineGlyph(slot, rows); err != nil {
			return err
		}
	}
	return nil
}

// Backlight sets the backlight state.
func (s *Screen) Backlight(on bool) error {
	s.backlight = on
	return s.dev.SetBacklight(on)
}

// ToggleBacklight flips the backlight state.
func (s *Screen) ToggleBacklight() error {
	return s.Backlight(!s.backlight)
}

// BacklightOn reports the last commanded backlight state.
func (s *Screen) BacklightOn() bool { return s.backlight }

// Snapshot returns the shadow contents, one string per row. Glyph codes
// below 0x20 are rendered as '#' so the snapshot stays printable.
func (s *Screen) Snapshot() [Rows]string {
	var out [Rows]string
	for r := 0; r < Rows; r++ {
		b := make([]byte, Cols)
		for c := 0; c < Cols; c++ {
			ch := s.shadow[r][c]
			if ch < 0x20 {
				ch = '#'
			}
			b[c] = ch
		}
		out[r] = string(b)
	}
	return out
}

func pad(text string, width int) []byte {
	b := make([]byte, width)
	for i := 0; i < width; i++ {
		if i < len(text) {
			b[i] = text[i]
		} else {
			b[i] = ' '
		}
	}
	return b
}
