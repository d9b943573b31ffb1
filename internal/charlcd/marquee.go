package charlcd

// marqueeGap is the blank run appended between the tail and the wrapped
// head of a scrolling line.
const marqueeGap = "    "

// Marquee scrolls one line of text through a fixed-width window. Text that
// fits the window renders statically and never advances.
type Marquee struct {
	text   string
	cursor int
}

// SetText replaces the source text and rewinds the cursor.
func (m *Marquee) SetText(s string) {
	m.text = s
	m.cursor = 0
}

// Text returns the current source text.
func (m *Marquee) Text() string { return m.text }

// Reset rewinds the cursor without changing the text.
func (m *Marquee) Reset() { m.cursor = 0 }

// Window returns the currently visible width characters. The padded text
// is treated as a circular buffer starting at the cursor.
func (m *Marquee) Window(width int) string {
	if len(m.text) <= width {
		return m.text
	}
	buf := m.text + marqueeGap
	out := make([]byte, width)
	for i := 0; i < width; i++ {
		out[i] = buf[(m.cursor+i)%len(buf)]
	}
	return string(out)
}

// Advance moves the cursor one position, wrapping modulo the padded
// length. Static text keeps the cursor at zero.
func (m *Marquee) Advance(width int) {
	if len(m.text) <= width {
		m.cursor = 0
		return
	}
	m.cursor = (m.cursor + 1) % (len(m.text) + len(marqueeGap))
}
