package device

import (
	"time"

	"periph.io/x/conn/v3/i2c"
)

// PCF8574 backpack pin mapping (the common wiring).
const (
	lcdPinRS        = 0x01
	lcdPinRW        = 0x02
	lcdPinEnable    = 0x04
	lcdPinBacklight = 0x08
)

// HD44780 commands used here.
const (
	lcdCmdClear      = 0x01
	lcdCmdEntryMode  = 0x06
	lcdCmdDisplayOn  = 0x0c
	lcdCmdFunction4b = 0x28
	lcdCmdSetCGRAM   = 0x40
	lcdCmdSetDDRAM   = 0x80
)

// DefaultLCDAddr is where most PCF8574 backpacks sit.
const DefaultLCDAddr = 0x27

var lcdRowOffset = [2]byte{0x00, 0x40}

// LCD drives an HD44780 16x2 character display through a PCF8574 I2C
// backpack in 4-bit mode. It implements charlcd.Device.
type LCD struct {
	dev       *i2c.Dev
	backlight byte
}

// NewLCD initialises the display: forced into 8-bit mode three times, then
// switched to 4-bit, two lines, cursor off.
func NewLCD(bus i2c.Bus, addr uint16) (*LCD, error) {
	if addr == 0 {
		addr = DefaultLCDAddr
	}
	d := &LCD{
		dev:       &i2c.Dev{Bus: bus, Addr: addr},
		backlight: lcdPinBacklight,
	}
	time.Sleep(50 * time.Millisecond)
	for i := 0; i < 3; i++ {
		if err := d.writeNibble(0x03, 0); err != nil {
			return nil, err
		}
		time.Sleep(5 * time.Millisecond)
	}
	if err := d.writeNibble(0x02, 0); err != nil {
		return nil, err
	}
	for _, cmd := range []byte{lcdCmdFunction4b, lcdCmdDisplayOn, lcdCmdEntryMode} {
		if err := d.command(cmd); err != nil {
			return nil, err
		}
	}
	if err := d.Clear(); err != nil {
		return nil, err
	}
	return d, nil
}

// writeNibble puts a 4-bit value on the data pins and pulses Enable.
func (d *LCD) writeNibble(nib, flags byte) error {
	b := (nib&0x0f)<<4 | flags | d.backlight
	if err := d.dev.Tx([]byte{b | lcdPinEnable}, nil); err != nil {
		return err
	}
	return d.dev.Tx([]byte{b}, nil)
}

func (d *LCD) write8(b, flags byte) error {
	if err := d.writeNibble(b>>4, flags); err != nil {
		return err
	}
	return d.writeNibble(b&0x0f, flags)
}

func (d *LCD) command(b byte) error { return d.write8(b, 0) }
func (d *LCD) data(b byte) error    { return d.write8(b, lcdPinRS) }

// SetCell addresses one DDRAM cell and writes a character.
func (d *LCD) SetCell(row, col int, ch byte) error {
	if row < 0 || row > 1 || col < 0 || col > 15 {
		return nil
	}
	if err := d.command(lcdCmdSetDDRAM | (lcdRowOffset[row] + byte(col))); err != nil {
		return err
	}
	return d.data(ch)
}

// DefineGlyph programs one of the eight CGRAM slots. Each row byte uses
// its low five bits.
func (d *LCD) DefineGlyph(slot int, rows [8]byte) error {
	if slot < 0 || slot > 7 {
		return nil
	}
	if err := d.command(lcdCmdSetCGRAM | byte(slot)<<3); err != nil {
		return err
	}
	for _, r := range rows {
		if err := d.data(r); err != nil {
			return err
		}
	}
	return nil
}

// SetBacklight switches the backpack's backlight pin. The new state is
// pushed immediately with a bare write.
func (d *LCD) SetBacklight(on bool) error {
	if on {
		d.backlight = lcdPinBacklight
	} else {
		d.backlight = 0
	}
	return d.dev.Tx([]byte{d.backlight}, nil)
}

// Clear wipes the display. The clear command needs extra settle time.
func (d *LCD) Clear() error {
	if err := d.command(lcdCmdClear); err != nil {
		return err
	}
	time.Sleep(2 * time.Millisecond)
	return nil
}
