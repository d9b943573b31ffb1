package device

import (
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/vortexhw/vortexpanel/internal/geom"
)

// MAX7219 register addresses.
const (
	regNoOp        = 0x00
	regDigit0      = 0x01
	regDecodeMode  = 0x09
	regIntensity   = 0x0a
	regScanLimit   = 0x0b
	regShutdown    = 0x0c
	regDisplayTest = 0x0f
)

// DefaultIntensity is a mid-range brightness (0..15).
const DefaultIntensity = 7

// Max7219 drives a chain of geom.PanelCount cascaded MAX7219 units over
// SPI. It implements matrix.Driver. Chain position 0 is the unit nearest
// the bus input.
type Max7219 struct {
	conn spi.Conn
}

// NewMax7219 connects to the chain and brings every unit out of shutdown
// with decode off and all eight digits scanned.
func NewMax7219(p spi.Port) (*Max7219, error) {
	c, err := p.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	d := &Max7219{conn: c}
	setup := []struct{ reg, data byte }{
		{regDisplayTest, 0x00},
		{regShutdown, 0x00},
		{regDecodeMode, 0x00},
		{regScanLimit, 0x07},
		{regIntensity, DefaultIntensity},
		{regShutdown, 0x01},
	}
	for _, s := range setup {
		if err := d.writeAll(s.reg, s.data); err != nil {
			return nil, err
		}
	}
	if err := d.Clear(); err != nil {
		return nil, err
	}
	return d, nil
}

// writeAll latches the same register/data pair into every unit.
func (d *Max7219) writeAll(reg, data byte) error {
	w := make([]byte, 0, 2*geom.PanelCount)
	for i := 0; i < geom.PanelCount; i++ {
		w = append(w, reg, data)
	}
	return d.conn.Tx(w, nil)
}

// Flush writes one digit register per transaction across the whole chain.
// The first pair clocked out ends up in the unit furthest from the input,
// so pairs go out in descending chain order.
func (d *Max7219) Flush(panels [geom.PanelCount]geom.Pattern) error {
	for row := 0; row < 8; row++ {
		w := make([]byte, 0, 2*geom.PanelCount)
		for unit := geom.PanelCount - 1; unit >= 0; unit-- {
			w = append(w, byte(regDigit0+row), panels[unit][row])
		}
		if err := d.conn.Tx(w, nil); err != nil {
			return err
		}
	}
	return nil
}

// Clear blanks all digits on every unit.
func (d *Max7219) Clear() error {
	for row := 0; row < 8; row++ {
		if err := d.writeAll(byte(regDigit0+row), 0x00); err != nil {
			return err
		}
	}
	return nil
}

// SetIntensity adjusts chain brightness, clamped to the 0..15 range the
// chip accepts.
func (d *Max7219) SetIntensity(level int) error {
	if level < 0 {
		level = 0
	} else if level > 15 {
		level = 15
	}
	return d.writeAll(regIntensity, byte(level))
}
