package controller

import (
	"fmt"

	"github.com/vortexhw/vortexpanel/internal/charlcd"
	"github.com/vortexhw/vortexpanel/internal/matrix"
	"github.com/vortexhw/vortexpanel/internal/oled"
	"github.com/vortexhw/vortexpanel/internal/proto"
)

// HandleLine parses one command line and applies it. Unrecognized or
// malformed lines are dropped without touching any state; the protocol is
// snapshot-based and the next valid command self-heals.
func (c *Controller) HandleLine(line string) {
	cmd, ok := proto.Parse(line)
	if !ok {
		c.log.Debug().Str("line", line).Msg("dropped command")
		return
	}
	c.apply(cmd)
	c.publish()
}

func (c *Controller) apply(cmd proto.Command) {
	now := c.clk.Now()
	switch cmd.Kind {
	case proto.KindMode:
		if cmd.Mode >= 1 && cmd.Mode <= modeCount {
			c.enterMode(Mode(cmd.Mode - 1))
		}

	case proto.KindLive:
		c.visitAstro, c.visitCore = cmd.A, cmd.B
		if c.mode == ModeVisit {
			c.visitStep = 0
			c.visitAnimating = true
			c.animGate.Reset(now)
			c.drawVisitCounts()
		}

	case proto.KindClock:
		if c.mode == ModeClock && !c.overlayActive {
			c.lcdLine(0, cmd.Top)
			c.lcdLine(1, cmd.Bottom)
		}

	case proto.KindMusic:
		top, bottom := cmd.Top, cmd.Bottom
		if top == "" {
			top = "Unknown Title"
		}
		if bottom == "" {
			bottom = "Unknown Artist"
		}
		c.scrollTop.SetText(top)
		c.scrollBottom.SetText(bottom)
		c.scrollGate.Reset(now)
		if c.mode == ModeMusic && !c.overlayActive {
			c.drawMusicMarquee()
		}

	case proto.KindNotify:
		c.scrollTop.SetText(cmd.Top)
		c.scrollBottom.SetText(cmd.Bottom)
		c.scrollGate.Reset(now)
		if c.mode == ModeNotify && !c.overlayActive {
			c.drawNotifyMarquee()
		}

	case proto.KindText:
		if c.mode == ModeText {
			top := cmd.Text
			bottom := ""
			if len(top) > charlcd.Cols {
				top, bottom = top[:charlcd.Cols], top[charlcd.Cols:]
			}
			c.lcdLine(0, top)
			c.lcdLine(1, bottom)
		}

	case proto.KindBacklight:
		var err error
		switch cmd.Switch {
		case proto.SwitchOn:
			err = c.lcd.Backlight(true)
		case proto.SwitchOff:
			err = c.lcd.Backlight(false)
		case proto.SwitchToggle:
			err = c.lcd.ToggleBacklight()
		}
		if err != nil {
			c.log.Warn().Err(err).Msg("backlight switch failed")
		}

	case proto.KindVolume:
		c.showVolumeOverlay(cmd.Volume, cmd.Device)

	case proto.KindBars:
		c.drawMatrix(matrix.BarsFrame(cmd.Bars))

	case proto.KindChannels:
		// Shorter lists leave trailing channels at their previous value.
		copy(c.levels[:], cmd.Levels)
		c.redrawGraphLevels()

	case proto.KindChannelScreen:
		if cmd.Switch == proto.SwitchOn {
			c.graphScreen = oled.ScreenChannels
		} else {
			c.graphScreen = oled.ScreenLogo
		}
		c.redrawGraphScreen()

	case proto.KindAudioScreen:
		if cmd.Switch == proto.SwitchOn {
			c.graphScreen = oled.ScreenAudio
		} else {
			c.graphScreen = oled.ScreenLogo
		}
		c.redrawGraphScreen()

	case proto.KindLogoScreen:
		c.graphScreen = oled.ScreenLogo
		if cmd.Switch == proto.SwitchOn {
			c.redrawGraphScreen()
		} else if c.graph != nil {
			if err := c.graph.Clear(); err != nil {
				c.log.Warn().Err(err).Msg("graphic panel write failed")
			}
		}

	case proto.KindVUMode:
		c.vuEnabled = cmd.Switch == proto.SwitchOn
		c.vu.Reset()
		c.clearMatrix()

	case proto.KindVUFrame:
		if c.vuEnabled {
			c.vu.ApplyFrame(cmd.Bands, now)
			if c.vu.DrawDue(now) {
				c.drawMatrix(c.vu.Frame())
			}
		}

	case proto.KindFramebuffer:
		// Raw pushes overwrite the matrix unconditionally.
		c.drawMatrix(matrix.FrameFromRows(cmd.Rows))

	case proto.KindSystem:
		c.sys = sysStats{
			cpuPct: cmd.CPUPct,
			cpuGHz: cmd.CPUGHz,
			gpuPct: cmd.GPUPct,
			ramPct: cmd.RAMPct,
			valid:  true,
		}
		if c.mode == ModeSystem && !c.overlayActive {
			c.drawSystemStats()
		}

	case proto.KindGoodbye:
		c.overlayActive = false
		c.visitAnimating = false
		c.vuEnabled = false
		c.vu.Reset()
		c.clearMatrix()
		if err := c.lcd.Reset(); err != nil {
			c.log.Warn().Err(err).Msg("lcd clear failed")
		}
		c.lcdLine(0, "Disconnected")
		if c.graph != nil {
			if err := c.graph.Clear(); err != nil {
				c.log.Warn().Err(err).Msg("graphic panel write failed")
			}
		}

	case proto.KindReset:
		// Host reconnect probe: fresh splash, back to the default mode.
		c.drawMatrix(matrix.SplashFrame())
		c.enterMode(ModeVisit)
	}
}

func (c *Controller) showVolumeOverlay(volume int, device string) {
	now := c.clk.Now()
	c.overlayActive = true
	c.overlayUntil = now.Add(overlayDuration)
	c.overlayVolume = volume
	c.lcdGlyphs(charlcd.MusicGlyphs)
	c.lcdIconLine(0, charlcd.IconSpeaker, fmt.Sprintf("Volume: %d", volume))
	c.lcdIconLine(1, charlcd.IconVolume, device)
}

// redrawGraphLevels refreshes whichever level-driven screen is active.
func (c *Controller) redrawGraphLevels() {
	if c.graph == nil {
		return
	}
	var err error
	switch c.graphScreen {
	case oled.ScreenChannels:
		err = c.graph.ChannelBars(c.levels)
	case oled.ScreenAudio:
		err = c.graph.AudioBars(c.levels[0], c.levels[1], c.levels[2])
	default:
		return
	}
	if err != nil {
		c.log.Warn().Err(err).Msg("graphic panel write failed")
	}
}

// redrawGraphScreen repaints the active graphic-panel screen in full.
func (c *Controller) redrawGraphScreen() {
	if c.graph == nil {
		return
	}
	var err error
	switch c.graphScreen {
	case oled.ScreenChannels:
		err = c.graph.ChannelBars(c.levels)
	case oled.ScreenAudio:
		err = c.graph.AudioBars(c.levels[0], c.levels[1], c.levels[2])
	default:
		err = c.graph.Logo()
	}
	if err != nil {
		c.log.Warn().Err(err).Msg("graphic panel write failed")
	}
}
