package device

import (
	"fmt"
	"io"
	"strings"

	"github.com/vortexhw/vortexpanel/internal/charlcd"
	"github.com/vortexhw/vortexpanel/internal/geom"
)

// ConsoleMatrix renders the matrix chain as text. It stands in when no
// SPI bus is available and backs the simulator.
type ConsoleMatrix struct {
	w io.Writer
}

func NewConsoleMatrix(w io.Writer) *ConsoleMatrix {
	return &ConsoleMatrix{w: w}
}

func (c *ConsoleMatrix) Flush(panels [geom.PanelCount]geom.Pattern) error {
	var b strings.Builder
	b.WriteString("+" + strings.Repeat("-", 8*geom.PanelCount) + "+\n")
	for row := 0; row < 8; row++ {
		b.WriteByte('|')
		for p := 0; p < geom.PanelCount; p++ {
			for bit := 7; bit >= 0; bit-- {
				if panels[p][row]&(1<<bit) != 0 {
					b.WriteByte('#')
				} else {
					b.WriteByte(' ')
				}
			}
		}
		b.WriteString("|\n")
	}
	b.WriteString("+" + strings.Repeat("-", 8*geom.PanelCount) + "+\n")
	_, err := io.WriteString(c.w, b.String())
	return err
}

func (c *ConsoleMatrix) Clear() error {
	return c.Flush([geom.PanelCount]geom.Pattern{})
}

// ConsoleLCD records character display state without printing; the
// simulator calls Render when it wants to show the screen. Per-cell
// printing would reprint the display sixteen times for one written line.
type ConsoleLCD struct {
	cells     [charlcd.Rows][charlcd.Cols]byte
	backlight bool
}

func NewConsoleLCD() *ConsoleLCD {
	c := &ConsoleLCD{backlight: true}
	c.resetCells()
	return c
}

func (c *ConsoleLCD) resetCells() {
	for r := range c.cells {
		for col := range c.cells[r] {
			c.cells[r][col] = ' '
		}
	}
}

func (c *ConsoleLCD) SetCell(row, col int, ch byte) error {
	if row < 0 || row >= charlcd.Rows || col < 0 || col >= charlcd.Cols {
		return nil
	}
	c.cells[row][col] = ch
	return nil
}

func (c *ConsoleLCD) DefineGlyph(slot int, rows [8]byte) error { return nil }

func (c *ConsoleLCD) SetBacklight(on bool) error {
	c.backlight = on
	return nil
}

func (c *ConsoleLCD) Clear() error {
	c.resetCells()
	return nil
}

// Render prints the display as two bracketed lines. Glyph codes below
// 0x20 show as '*'. Not synchronized with the writing goroutine: call it
// from there, or render from a published snapshot instead.
func (c *ConsoleLCD) Render(w io.Writer) error {
	light := "on"
	if !c.backlight {
		light = "off"
	}
	var b strings.Builder
	for r := 0; r < charlcd.Rows; r++ {
		b.WriteByte('[')
		for col := 0; col < charlcd.Cols; col++ {
			ch := c.cells[r][col]
			if ch < 0x20 {
				ch = '*'
			}
			b.WriteByte(ch)
		}
		b.WriteString("]\n")
	}
	_, err := fmt.Fprintf(w, "%sbacklight: %s\n", b.String(), light)
	return err
}
