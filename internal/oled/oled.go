// Package oled renders the small graphic panel. The panel is slow and
// tiny, so every screen is a full redraw into a 1-bit image that is then
// pushed to the drawer; there is no diffing here.
package oled

import (
	"image"

	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Panel dimensions.
const (
	Width  = 128
	Height = 64
)

// Screen identifies the mutually exclusive graphic-panel screens.
type Screen int

const (
	ScreenLogo Screen = iota
	ScreenChannels
	ScreenAudio
)

func (s Screen) String() string {
	switch s {
	case ScreenChannels:
		return "channels"
	case ScreenAudio:
		return "audio"
	default:
		return "logo"
	}
}

// Scale maps a 0..100 value onto 0..max, the integer mapping shared by
// every bar on this panel.
func Scale(v, max int) int {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return v * max / 100
}

// Panel draws into an off-screen 1-bit image and flushes whole frames to
// the drawer.
type Panel struct {
	drw display.Drawer
	img *image1bit.VerticalLSB
}

func New(drw display.Drawer) *Panel {
	return &Panel{
		drw: drw,
		img: image1bit.NewVerticalLSB(image.Rect(0, 0, Width, Height)),
	}
}

func (p *Panel) flush() error {
	return p.drw.Draw(p.drw.Bounds(), p.img, image.Point{})
}

func (p *Panel) clearImage() {
	for i := range p.img.Pix {
		p.img.Pix[i] = 0
	}
}

func (p *Panel) fillRect(x, y, w, h int) {
	if y < 0 {
		y = 0
	}
	if y+h > Height {
		h = Height - y
	}
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w && xx < Width; xx++ {
			p.img.SetBit(xx, yy, image1bit.On)
		}
	}
}

// Clear blanks the panel.
func (p *Panel) Clear() error {
	p.clearImage()
	return p.flush()
}

// Logo draws the static logo bitmap centered, doubled to 64x32.
func (p *Panel) Logo() error {
	p.clearImage()
	const (
		x0 = (Width - 64) / 2
		y0 = (Height - 32) / 2
	)
	for r, row := range logoArt {
		for c := 0; c < 32; c++ {
			if row&(1<<uint(31-c)) == 0 {
				continue
			}
			p.fillRect(x0+c*2, y0+r*2, 2, 2)
		}
	}
	return p.flush()
}

// Channel bar screen geometry.
const (
	channelRowHeight = Height / 6
	channelBarMax    = Width - 8
)

// ChannelBars draws one horizontal bar per audio channel, width linear in
// the channel level.
func (p *Panel) ChannelBars(levels [6]int) error {
	p.clearImage()
	for i, v := range levels {
		y := i*channelRowHeight + 2
		p.fillRect(2, y, 2, channelRowHeight-4) // left tick
		p.fillRect(4, y, Scale(v, channelBarMax), channelRowHeight-4)
	}
	return p.flush()
}

// Audio screen geometry: two stacked top bars plus one wider bottom bar,
// each with its own scaling constant, clamped to the panel bounds.
const (
	audioTopBarMax    = Width - 24
	audioBottomBarMax = Width - 8
	audioTopBarH      = 12
	audioBottomBarH   = 16
)

// AudioBars draws the 3-band audio screen: left and right playback levels
// on top, the microphone level across the bottom.
func (p *Panel) AudioBars(left, right, mic int) error {
	p.clearImage()
	p.fillRect(2, 6, Scale(left, audioTopBarMax), audioTopBarH)
	p.fillRect(2, 22, Scale(right, audioTopBarMax), audioTopBarH)
	p.fillRect(2, Height-audioBottomBarH-4, Scale(mic, audioBottomBarMax), audioBottomBarH)
	return p.flush()
}
