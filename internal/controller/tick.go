package controller

import (
	"time"

	"github.com/vortexhw/vortexpanel/internal/charlcd"
)

// Tick evaluates the elapsed-time gates in a fixed order: overlay expiry,
// visit animation, marquee scroll, VU decay and redraw, colon blink. Gates
// poll the injected clock; nothing here blocks.
func (c *Controller) Tick(now time.Time) {
	if c.overlayActive && !now.Before(c.overlayUntil) {
		c.expireOverlay(now)
	}

	if c.mode == ModeVisit && c.visitAnimating && c.animGate.Due(now) {
		c.drawVisitAnimCell()
		if c.visitStep < 7 {
			c.visitStep++
		} else {
			c.visitAnimating = false
		}
	}

	if !c.overlayActive && c.scrollGate.Due(now) {
		switch c.mode {
		case ModeMusic:
			c.drawMusicMarquee()
			c.scrollTop.Advance(charlcd.ContentWidth)
			c.scrollBottom.Advance(charlcd.ContentWidth)
		case ModeNotify:
			c.drawNotifyMarquee()
			c.scrollTop.Advance(charlcd.Cols)
			c.scrollBottom.Advance(charlcd.Cols)
		}
	}

	if c.vuEnabled {
		if c.vu.Decay(now) || c.vu.DrawDue(now) {
			c.drawMatrix(c.vu.Frame())
		}
	} else if c.mode == ModeClock && c.blinkGate.Due(now) {
		c.colon = !c.colon
		c.drawClockMatrix()
	}

	c.publish()
}

// expireOverlay ends the volume pop-up and restores the active mode's
// content where a live render exists to restore. Modes whose content is
// purely host-pushed are repainted by the next snapshot command.
func (c *Controller) expireOverlay(now time.Time) {
	c.overlayActive = false
	switch c.mode {
	case ModeVisit:
		c.lcdGlyphs(charlcd.VisitBarGlyphs)
		c.drawVisitCounts()
	case ModeMusic:
		c.lcdGlyphs(charlcd.MusicGlyphs)
		c.drawMusicMarquee()
		c.scrollGate.Reset(now)
	case ModeNotify:
		c.drawNotifyMarquee()
		c.scrollGate.Reset(now)
	case ModeSystem:
		c.lcdGlyphs(charlcd.SystemGlyphs)
		c.drawSystemStats()
	}
}
