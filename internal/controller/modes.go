package controller

import (
	"fmt"

	"github.com/vortexhw/vortexpanel/internal/charlcd"
	"github.com/vortexhw/vortexpanel/internal/matrix"
)

// Mode is the active presentation mode. Exactly one is active at a time;
// only the dispatcher mutates it.
type Mode int

const (
	ModeVisit Mode = iota
	ModeNotify
	ModeMusic
	ModeClock
	ModeText
	ModeBacklight
	ModeSystem
	ModeScreenMirror

	modeCount = int(ModeScreenMirror) + 1
)

func (m Mode) String() string {
	switch m {
	case ModeVisit:
		return "visit"
	case ModeNotify:
		return "notify"
	case ModeMusic:
		return "music"
	case ModeClock:
		return "clock"
	case ModeText:
		return "text"
	case ModeBacklight:
		return "backlight"
	case ModeSystem:
		return "system"
	case ModeScreenMirror:
		return "screenmirror"
	}
	return "unknown"
}

// enterMode resets every per-mode transient, clears the character display,
// then runs the target mode's entry action.
func (c *Controller) enterMode(m Mode) {
	c.mode = m
	if err := c.lcd.Reset(); err != nil {
		c.log.Warn().Err(err).Msg("lcd clear failed")
	}
	c.overlayActive = false
	c.visitAnimating = false
	c.visitStep = 0
	c.scrollTop.Reset()
	c.scrollBottom.Reset()
	c.colon = false
	now := c.clk.Now()
	c.animGate.Reset(now)
	c.scrollGate.Reset(now)
	c.blinkGate.Reset(now)

	switch m {
	case ModeVisit:
		c.lcdGlyphs(charlcd.VisitBarGlyphs)
		c.visitAstro, c.visitCore = 0, 0
		c.drawVisitCounts()
	case ModeNotify:
		c.lcdLine(0, "Notifications")
		c.lcdLine(1, "Waiting...")
	case ModeMusic:
		c.lcdGlyphs(charlcd.MusicGlyphs)
		c.lcdIconLine(0, charlcd.IconNote, "Music Mode")
		c.lcdIconLine(1, charlcd.IconPlay, "Loading...")
	case ModeClock:
		c.lcdLine(0, "Clock Mode")
		c.lcdLine(1, "Running")
		if !c.vuEnabled {
			c.drawClockMatrix()
		}
	case ModeText:
		c.lcdLine(0, "Text Mode")
		c.lcdLine(1, "Loading...")
	case ModeBacklight:
		c.lcdLine(0, "Backlight Mode")
		c.lcdLine(1, "Ready")
	case ModeSystem:
		c.lcdGlyphs(charlcd.SystemGlyphs)
		c.lcdIconLine(0, charlcd.IconCPU, "System Mode")
		c.lcdIconLine(1, charlcd.IconRAM, "Loading...")
	case ModeScreenMirror:
		c.lcdLine(0, "Screen Mirror")
		c.lcdLine(1, "Running")
	}
}

// drawVisitCounts paints the visit header and counter row, leaving the
// rightmost cell for the animated fill glyph.
func (c *Controller) drawVisitCounts() {
	c.lcdLine(0, "Live Visit Count")
	counts := fmt.Sprintf("ARI:%d CC:%d", c.visitAstro, c.visitCore)
	if len(counts) > charlcd.Cols-1 {
		counts = counts[:charlcd.Cols-1]
	}
	for i := 0; i < charlcd.Cols-1; i++ {
		ch := byte(' ')
		if i < len(counts) {
			ch = counts[i]
		}
		if err := c.lcd.SetCellRaw(1, i, ch); err != nil {
			c.log.Warn().Err(err).Msg("lcd write failed")
			return
		}
	}
	c.drawVisitAnimCell()
}

func (c *Controller) drawVisitAnimCell() {
	if err := c.lcd.SetCellRaw(1, charlcd.Cols-1, byte(c.visitStep)); err != nil {
		c.log.Warn().Err(err).Msg("lcd write failed")
	}
}

// drawMusicMarquee renders both icon-prefixed scroll windows.
func (c *Controller) drawMusicMarquee() {
	c.lcdIconLine(0, charlcd.IconNote, c.scrollTop.Window(charlcd.ContentWidth))
	c.lcdIconLine(1, charlcd.IconPlay, c.scrollBottom.Window(charlcd.ContentWidth))
}

// drawNotifyMarquee renders both full-width scroll windows.
func (c *Controller) drawNotifyMarquee() {
	c.lcdLine(0, c.scrollTop.Window(charlcd.Cols))
	c.lcdLine(1, c.scrollBottom.Window(charlcd.Cols))
}

func (c *Controller) drawSystemStats() {
	if !c.sys.valid {
		return
	}
	c.lcdIconLine(0, charlcd.IconCPU, fmt.Sprintf("CPU %d%% %.1fGHz", c.sys.cpuPct, c.sys.cpuGHz))
	c.lcdIconLine(1, charlcd.IconRAM, fmt.Sprintf("G:%d%% R:%d%%", c.sys.gpuPct, c.sys.ramPct))
}

func (c *Controller) drawClockMatrix() {
	now := c.clk.Now()
	c.drawMatrix(matrix.ClockFrame(now.Hour(), now.Minute(), c.colon))
}
