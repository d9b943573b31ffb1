// Package controller owns the presentation state machine: it parses and
// dispatches incoming command lines, tracks the single active mode, and
// drives every time-based render from one goroutine. Commands queued in an
// iteration are always applied to completion before any periodic render
// fires, so a fresh command is never overdrawn by a stale scheduled tick.
package controller

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/display"

	"github.com/vortexhw/vortexpanel/internal/charlcd"
	"github.com/vortexhw/vortexpanel/internal/geom"
	"github.com/vortexhw/vortexpanel/internal/matrix"
	"github.com/vortexhw/vortexpanel/internal/oled"
	"github.com/vortexhw/vortexpanel/internal/timeutil"
)

// Scheduler cadences.
const (
	visitAnimInterval = 900 * time.Millisecond
	scrollInterval    = 750 * time.Millisecond
	colonInterval     = 500 * time.Millisecond
	overlayDuration   = 1500 * time.Millisecond
	loopInterval      = 5 * time.Millisecond
)

// Options wires a Controller to its devices. Graph may be nil when the
// graphic panel failed to initialize; the controller runs without it.
type Options struct {
	Log    zerolog.Logger
	Clock  timeutil.Clock
	Layout geom.Layout
	LCD    charlcd.Device
	Matrix matrix.Driver
	Graph  display.Drawer
}

type sysStats struct {
	cpuPct int
	cpuGHz float64
	gpuPct int
	ramPct int
	valid  bool
}

// Controller is the single writer to all three displays.
type Controller struct {
	log zerolog.Logger
	clk timeutil.Clock

	lcd   *charlcd.Screen
	mat   *matrix.Display
	graph *oled.Panel

	mode Mode

	// Visit mode content.
	visitAstro     int
	visitCore      int
	visitStep      int
	visitAnimating bool

	// Music/Notify marquee content.
	scrollTop    charlcd.Marquee
	scrollBottom charlcd.Marquee

	// Channel levels, partial updates keep trailing values.
	levels [6]int

	sys sysStats

	vu        *matrix.VU
	vuEnabled bool

	overlayActive bool
	overlayUntil  time.Time
	overlayVolume int

	graphScreen oled.Screen

	colon bool

	animGate   timeutil.Gate
	scrollGate timeutil.Gate
	blinkGate  timeutil.Gate

	mu   sync.RWMutex
	snap Snapshot
}

func New(opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = timeutil.SystemClock{}
	}
	c := &Controller{
		log:        opts.Log,
		clk:        opts.Clock,
		lcd:        charlcd.NewScreen(opts.LCD),
		mat:        matrix.NewDisplay(opts.Layout, opts.Matrix),
		vu:         matrix.NewVU(),
		animGate:   timeutil.NewGate(visitAnimInterval),
		scrollGate: timeutil.NewGate(scrollInterval),
		blinkGate:  timeutil.NewGate(colonInterval),
	}
	if opts.Graph != nil {
		c.graph = oled.New(opts.Graph)
	}
	c.enterMode(ModeVisit)
	c.publish()
	return c
}

// Splash draws the startup art and the wait-for-host banner.
func (c *Controller) Splash() {
	c.drawMatrix(matrix.SplashFrame())
	c.lcdLine(0, "Vortex Display")
	c.lcdLine(1, "Waiting for host")
	if c.graph != nil {
		if err := c.graph.Logo(); err != nil {
			c.log.Warn().Err(err).Msg("graphic panel write failed")
		}
	}
	c.publish()
}

// Run drains queued command lines and fires due renders until the context
// is cancelled. All device writes happen on this goroutine.
func (c *Controller) Run(ctx context.Context, lines <-chan string) error {
	tick := time.NewTicker(loopInterval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			for drained := false; !drained; {
				select {
				case line := <-lines:
					c.HandleLine(line)
				default:
					drained = true
				}
			}
			c.Tick(c.clk.Now())
		}
	}
}

// Mode returns the active presentation mode.
func (c *Controller) Mode() Mode { return c.mode }

// Snapshot is the mirror view of all three displays, published after every
// state change for the web surface.
type Snapshot struct {
	Mode        string    `json:"mode"`
	LCD         [2]string `json:"lcd"`
	Backlight   bool      `json:"backlight"`
	Matrix      [8]uint32 `json:"matrix"`
	GraphScreen string    `json:"graph_screen"`
	Levels      [6]int    `json:"levels"`
	VUEnabled   bool      `json:"vu_enabled"`
	Overlay     bool      `json:"overlay"`
	Volume      int       `json:"volume"`
}

// Snapshot returns the last published display state. Safe to call from
// other goroutines.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

func (c *Controller) publish() {
	s := Snapshot{
		Mode:        c.mode.String(),
		LCD:         c.lcd.Snapshot(),
		Backlight:   c.lcd.BacklightOn(),
		Matrix:      c.mat.Rows(),
		GraphScreen: c.graphScreen.String(),
		Levels:      c.levels,
		VUEnabled:   c.vuEnabled,
		Overlay:     c.overlayActive,
		Volume:      c.overlayVolume,
	}
	c.mu.Lock()
	c.snap = s
	c.mu.Unlock()
}

// Device write helpers. Failures are logged and absorbed: no display
// condition is fatal, the next snapshot command repaints.

func (c *Controller) lcdLine(row int, text string) {
	if err := c.lcd.WriteLine(row, text); err != nil {
		c.log.Warn().Err(err).Int("row", row).Msg("lcd write failed")
	}
}

func (c *Controller) lcdIconLine(row int, icon byte, text string) {
	if err := c.lcd.WriteIconLine(row, icon, text); err != nil {
		c.log.Warn().Err(err).Int("row", row).Msg("lcd write failed")
	}
}

func (c *Controller) lcdGlyphs(set charlcd.GlyphSet) {
	if err := c.lcd.LoadGlyphs(set); err != nil {
		c.log.Warn().Err(err).Msg("lcd glyph load failed")
	}
}

func (c *Controller) drawMatrix(f geom.Frame) {
	if err := c.mat.Draw(f); err != nil {
		c.log.Warn().Err(err).Msg("matrix write failed")
	}
}

func (c *Controller) clearMatrix() {
	if err := c.mat.Clear(); err != nil {
		c.log.Warn().Err(err).Msg("matrix clear failed")
	}
}
