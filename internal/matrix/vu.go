package matrix

import (
	"time"

	"github.com/vortexhw/vortexpanel/internal/geom"
)

// BandCount is the number of spectrum columns, one per matrix column.
const BandCount = geom.PanelCount * 8

const (
	// vuIdleBeforeDecay is how long the engine waits after the last
	// received frame before bars start falling.
	vuIdleBeforeDecay = 120 * time.Millisecond
	// vuDecayStep is the minimum spacing between decay steps.
	vuDecayStep = 60 * time.Millisecond
	// vuDrawInterval caps redraws near 30 FPS.
	vuDrawInterval = 33 * time.Millisecond
)

// VU holds the 32-band spectrum state: live bar heights 0..8 and held peak
// positions -1..7 (-1 means no peak). Frames raise peaks to the new bar
// top; decay lowers bars and peaks one step at a time once input goes
// idle.
type VU struct {
	heights [BandCount]int
	peaks   [BandCount]int

	lastFrame time.Time
	lastDecay time.Time
	lastDraw  time.Time
}

func NewVU() *VU {
	v := &VU{}
	v.Reset()
	return v
}

// Reset zeroes all bars and clears all peaks.
func (v *VU) Reset() {
	for i := range v.heights {
		v.heights[i] = 0
		v.peaks[i] = -1
	}
	v.lastFrame = time.Time{}
	v.lastDecay = time.Time{}
}

// ApplyFrame overwrites bar heights from one received frame and raises
// each peak to the new bar top if the bar passed it.
func (v *VU) ApplyFrame(bands [BandCount]int, now time.Time) {
	for i, h := range bands {
		if h < 0 {
			h = 0
		}
		if h > 8 {
			h = 8
		}
		v.heights[i] = h
		if top := h - 1; top > v.peaks[i] {
			v.peaks[i] = top
		}
	}
	v.lastFrame = now
	v.lastDecay = now
}

// Decay applies one decay step if input has been idle long enough and the
// step cadence has elapsed. It reports whether anything changed.
func (v *VU) Decay(now time.Time) bool {
	if v.lastFrame.IsZero() || now.Sub(v.lastFrame) < vuIdleBeforeDecay {
		return false
	}
	if !v.lastDecay.IsZero() && now.Sub(v.lastDecay) < vuDecayStep {
		return false
	}
	v.lastDecay = now
	changed := false
	for i := range v.heights {
		if v.heights[i] > 0 {
			v.heights[i]--
			changed = true
		}
		if v.peaks[i] > -1 {
			v.peaks[i]--
			changed = true
		}
	}
	return changed
}

// DrawDue gates redraws to the frame-rate ceiling.
func (v *VU) DrawDue(now time.Time) bool {
	if !v.lastDraw.IsZero() && now.Sub(v.lastDraw) < vuDrawInterval {
		return false
	}
	v.lastDraw = now
	return true
}

// Frame renders the spectrum: for band height h the bottom h rows of that
// column are lit, plus the held peak row if one is recorded.
func (v *VU) Frame() geom.Frame {
	var f geom.Frame
	for x := 0; x < BandCount; x++ {
		p := x / 8
		bit := byte(0x80) >> uint(x%8)
		for y := 8 - v.heights[x]; y < 8; y++ {
			f[p][y] |= bit
		}
		if pk := v.peaks[x]; pk >= 0 {
			f[p][7-pk] |= bit
		}
	}
	return f
}

// Height reports one band's current bar height.
func (v *VU) Height(band int) int { return v.heights[band] }

// Peak reports one band's held peak position.
func (v *VU) Peak(band int) int { return v.peaks[band] }
