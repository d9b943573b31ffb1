package matrix

import "github.com/vortexhw/vortexpanel/internal/geom"

// digitGlyphs are the fixed 8x8 time digits, one per panel.
var digitGlyphs = [10]geom.Pattern{
	{0x3c, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x3c}, // 0
	{0x18, 0x38, 0x18, 0x18, 0x18, 0x18, 0x18, 0x7e}, // 1
	{0x3c, 0x66, 0x06, 0x0c, 0x18, 0x30, 0x60, 0x7e}, // 2
	{0x3c, 0x66, 0x06, 0x1c, 0x06, 0x06, 0x66, 0x3c}, // 3
	{0x0c, 0x1c, 0x3c, 0x6c, 0x7e, 0x0c, 0x0c, 0x0c}, // 4
	{0x7e, 0x60, 0x7c, 0x06, 0x06, 0x06, 0x66, 0x3c}, // 5
	{0x3c, 0x66, 0x60, 0x7c, 0x66, 0x66, 0x66, 0x3c}, // 6
	{0x7e, 0x06, 0x0c, 0x18, 0x18, 0x30, 0x30, 0x30}, // 7
	{0x3c, 0x66, 0x66, 0x3c, 0x66, 0x66, 0x66, 0x3c}, // 8
	{0x3c, 0x66, 0x66, 0x66, 0x3e, 0x06, 0x66, 0x3c}, // 9
}

// splashArt is the startup frame, four fixed panel patterns.
var splashArt = geom.Frame{
	{0x00, 0x06, 0x0e, 0x1e, 0x3e, 0x1e, 0x0e, 0x06},
	{0x18, 0x3c, 0x7e, 0xff, 0xff, 0x7e, 0x3c, 0x18},
	{0x18, 0x3c, 0x7e, 0xff, 0xff, 0x7e, 0x3c, 0x18},
	{0x00, 0x60, 0x70, 0x78, 0x7c, 0x78, 0x70, 0x60},
}

// SplashFrame returns the static startup art.
func SplashFrame() geom.Frame { return splashArt }
