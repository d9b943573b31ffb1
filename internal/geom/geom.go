// Package geom maps the logical 32x8 dot-matrix plane onto the physical
// chain of four cascaded 8x8 modules. All panel renderers compose their
// content in logical coordinates and run it through a Layout before any
// byte reaches the bus.
package geom

// Pattern is one panel's 8x8 bitmap, row-major, top row first. Bit 7 of a
// row byte is the leftmost column of that panel.
type Pattern [8]byte

// Frame is the full logical display: four panel patterns, logical panel 0
// on the left.
type Frame [4]Pattern

// PanelCount is the number of cascaded 8x8 modules in the chain.
const PanelCount = 4

// Layout describes how the logical plane is mounted on the hardware.
// The three knobs are fixed for the lifetime of a process; every matrix
// renderer goes through the same Layout.
type Layout struct {
	// ReverseOrder maps logical panel 0 to the far end of the chain.
	ReverseOrder bool
	// MirrorRows flips each panel horizontally (row bytes bit-reversed).
	MirrorRows bool
	// Rotate transposes each panel 90 degrees, so patterns are written
	// column-major instead of row-major.
	Rotate bool
}

// DefaultLayout matches the reference hardware build: reversed chain order,
// mirrored modules, no rotation.
func DefaultLayout() Layout {
	return Layout{ReverseOrder: true, MirrorRows: true}
}

// ReverseByte mirrors the bits of b (bit 7 swaps with bit 0).
func ReverseByte(b byte) byte {
	b = b>>4 | b<<4
	b = b>>2&0x33 | b<<2&0xcc
	b = b>>1&0x55 | b<<1&0xaa
	return b
}

// Transpose returns the 8x8 pattern rotated so rows become columns.
// Row j bit (7-i) of the input lands at row i bit (7-j) of the output.
// Transposing twice yields the original pattern.
func (p Pattern) Transpose() Pattern {
	var q Pattern
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			if p[j]&(0x80>>uint(i)) != 0 {
				q[i] |= 0x80 >> uint(j)
			}
		}
	}
	return q
}

// Mirror returns the pattern with every row byte bit-reversed.
func (p Pattern) Mirror() Pattern {
	var q Pattern
	for i, row := range p {
		q[i] = ReverseByte(row)
	}
	return q
}

// PhysicalIndex maps a logical panel index to its position in the chain.
func (l Layout) PhysicalIndex(logical int) int {
	if l.ReverseOrder {
		return PanelCount - 1 - logical
	}
	return logical
}

// Apply transforms one logical panel pattern into the chain position and
// byte layout the hardware expects.
func (l Layout) Apply(logical int, p Pattern) (int, Pattern) {
	if l.MirrorRows {
		p = p.Mirror()
	}
	if l.Rotate {
		p = p.Transpose()
	}
	return l.PhysicalIndex(logical), p
}

// Invert undoes Apply: given a physical chain position and the bytes on the
// wire, it recovers the logical panel index and pattern. Apply followed by
// Invert reproduces the input bit for bit.
func (l Layout) Invert(physical int, p Pattern) (int, Pattern) {
	if l.Rotate {
		p = p.Transpose()
	}
	if l.MirrorRows {
		p = p.Mirror()
	}
	// PhysicalIndex is its own inverse.
	return l.PhysicalIndex(physical), p
}

// Render transforms a whole logical frame into physical panel patterns,
// indexed by chain position.
func (l Layout) Render(f Frame) [PanelCount]Pattern {
	var out [PanelCount]Pattern
	for i, p := range f {
		phys, q := l.Apply(i, p)
		out[phys] = q
	}
	return out
}
