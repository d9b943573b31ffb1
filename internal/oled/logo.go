package oled

// logoArt is the 32x16 logo bitmap, bit 31 leftmost.
var logoArt = [16]uint32{
	0x00018000,
	0x0003c000,
	0x0007e000,
	0x000ff000,
	0x0c1ff830,
	0x1e3ffc78,
	0x3f7ffefc,
	0x7ffffffe,
	0x7ffffffe,
	0x3f7ffefc,
	0x1e3ffc78,
	0x0c1ff830,
	0x000ff000,
	0x0007e000,
	0x0003c000,
	0x00018000,
}
