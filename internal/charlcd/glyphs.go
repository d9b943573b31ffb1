package charlcd

// GlyphSet maps CGRAM slots to 5x8 glyph rows (low 5 bits of each row
// byte). Each mode loads the set it needs on entry instead of programming
// glyphs ad hoc.
type GlyphSet map[int][8]byte

// VisitBarGlyphs are eight fill levels for the visit-counter animation
// cell, slot n filled from the bottom by n rows.
var VisitBarGlyphs = GlyphSet{
	0: {0, 0, 0, 0, 0, 0, 0, 0},
	1: {0, 0, 0, 0, 0, 0, 0, 31},
	2: {0, 0, 0, 0, 0, 0, 31, 31},
	3: {0, 0, 0, 0, 0, 31, 31, 31},
	4: {0, 0, 0, 0, 31, 31, 31, 31},
	5: {0, 0, 0, 31, 31, 31, 31, 31},
	6: {0, 0, 31, 31, 31, 31, 31, 31},
	7: {0, 31, 31, 31, 31, 31, 31, 31},
}

// Music glyph slots.
const (
	IconNote    = 0
	IconPlay    = 1
	IconSpeaker = 2
	IconVolume  = 3
)

var MusicGlyphs = GlyphSet{
	IconNote:    {0b00000, 0b00111, 0b01101, 0b01001, 0b01011, 0b11011, 0b11000, 0b00000},
	IconPlay:    {0b00000, 0b01000, 0b01100, 0b01110, 0b01110, 0b01100, 0b01000, 0b00000},
	IconSpeaker: {0b00000, 0b00001, 0b00101, 0b10101, 0b10101, 0b10101, 0b00000, 0b00000},
	IconVolume:  {0b00000, 0b00010, 0b00110, 0b11110, 0b11110, 0b00110, 0b00010, 0b00000},
}

// System glyph slots.
const (
	IconCPU = 0
	IconGPU = 1
	IconRAM = 2
)

var SystemGlyphs = GlyphSet{
	IconCPU: {0b00000, 0b01010, 0b11111, 0b01110, 0b11111, 0b01010, 0b00000, 0b00000},
	IconGPU: {0b00000, 0b11111, 0b11111, 0b11111, 0b00100, 0b01110, 0b00000, 0b00000},
	IconRAM: {0b00000, 0b00000, 0b11111, 0b11111, 0b11111, 0b10101, 0b00000, 0b00000},
}
