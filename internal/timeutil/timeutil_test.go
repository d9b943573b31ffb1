package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGateFiresOnCadence(t *testing.T) {
	now := time.Unix(1000, 0)
	g := NewGate(100 * time.Millisecond)

	assert.True(t, g.Due(now), "zero anchor fires immediately")
	assert.False(t, g.Due(now.Add(50*time.Millisecond)))
	assert.True(t, g.Due(now.Add(100*time.Millisecond)))
	assert.False(t, g.Due(now.Add(150*time.Millisecond)))
}

func TestGateReset(t *testing.T) {
	now := time.Unix(1000, 0)
	g := NewGate(100 * time.Millisecond)
	g.Reset(now)
	assert.False(t, g.Due(now.Add(99*time.Millisecond)))
	assert.True(t, g.Due(now.Add(100*time.Millisecond)))
}
