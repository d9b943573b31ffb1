package matrix

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func uniformBands(h int) [BandCount]int {
	var b [BandCount]int
	for i := range b {
		b[i] = h
	}
	return b
}

func TestVUApplyFrameClampsHeights(t *testing.T) {
	v := NewVU()
	var bands [BandCount]int
	bands[0] = 12
	bands[1] = -4
	bands[2] = 5
	v.ApplyFrame(bands, time.Unix(0, 0))

	assert.Equal(t, 8, v.Height(0))
	assert.Equal(t, 0, v.Height(1))
	assert.Equal(t, 5, v.Height(2))
}

func TestVUPeakHoldsAcrossLowerFrames(t *testing.T) {
	v := NewVU()
	now := time.Unix(100, 0)
	v.ApplyFrame(uniformBands(7), now)
	assert.Equal(t, 6, v.Peak(0))

	v.ApplyFrame(uniformBands(2), now.Add(30*time.Millisecond))
	assert.Equal(t, 2, v.Height(0))
	assert.Equal(t, 6, v.Peak(0), "peak stays at the highest recent level")
}

func TestVUDecayWaitsForIdle(t *testing.T) {
	v := NewVU()
	now := time.Unix(100, 0)
	v.ApplyFrame(uniformBands(5), now)

	// Input still fresh: no decay inside the idle window.
	assert.False(t, v.Decay(now.Add(100*time.Millisecond)))
	assert.Equal(t, 5, v.Height(0))

	// Past the idle threshold a step fires.
	assert.True(t, v.Decay(now.Add(130*time.Millisecond)))
	assert.Equal(t, 4, v.Height(0))
	assert.Equal(t, 3, v.Peak(0))
}

func TestVUDecayStepCadence(t *testing.T) {
	v := NewVU()
	now := time.Unix(100, 0)
	v.ApplyFrame(uniformBands(3), now)

	step := now.Add(200 * time.Millisecond)
	assert.True(t, v.Decay(step))
	// Too soon for a second step.
	assert.False(t, v.Decay(step.Add(30*time.Millisecond)))
	assert.True(t, v.Decay(step.Add(60*time.Millisecond)))
	assert.Equal(t, 1, v.Height(0))
}

func TestVUDecaysToFloor(t *testing.T) {
	v := NewVU()
	now := time.Unix(100, 0)
	v.ApplyFrame(uniformBands(2), now)

	at := now.Add(vuIdleBeforeDecay)
	for i := 0; i < 20; i++ {
		v.Decay(at)
		at = at.Add(vuDecayStep)
	}
	assert.Equal(t, 0, v.Height(0))
	assert.Equal(t, -1, v.Peak(0))
	// Fully decayed state reports no further change.
	assert.False(t, v.Decay(at.Add(vuDecayStep)))
}

func TestVUNoDecayBeforeFirstFrame(t *testing.T) {
	v := NewVU()
	assert.False(t, v.Decay(time.Unix(500, 0)))
}

func TestVUFrameColumnsAndPeak(t *testing.T) {
	v := NewVU()
	var bands [BandCount]int
	bands[0] = 8  // logical panel 0, column 0
	bands[9] = 1  // logical panel 1, column 1
	bands[31] = 3 // logical panel 3, column 7
	v.ApplyFrame(bands, time.Unix(100, 0))

	f := v.Frame()
	for y := 0; y < 8; y++ {
		assert.Equal(t, byte(0x80), f[0][y]&0x80, "band 0 column full")
	}
	assert.Equal(t, byte(0x40), f[1][7]&0x40)
	assert.Zero(t, f[1][6]&0x40)
	assert.Equal(t, byte(0x01), f[3][5]&0x01)

	// After bars fall, the held peak row stays lit above the bar.
	v.ApplyFrame(func() [BandCount]int {
		var b [BandCount]int
		b[31] = 1
		return b
	}(), time.Unix(101, 0))
	f = v.Frame()
	assert.Equal(t, byte(0x01), f[3][5]&0x01, "peak row from height 3")
	assert.Zero(t, f[3][6]&0x01, "row between peak and bar dark")
	assert.Equal(t, byte(0x01), f[3][7]&0x01, "bar height 1")
}

func TestVUDrawCeiling(t *testing.T) {
	v := NewVU()
	now := time.Unix(100, 0)
	assert.True(t, v.DrawDue(now))
	assert.False(t, v.DrawDue(now.Add(10*time.Millisecond)))
	assert.True(t, v.DrawDue(now.Add(40*time.Millisecond)))
}
