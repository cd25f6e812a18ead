package components

import (
	"math"
	"testing"

	"ratarch/internal/config"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

// Rate 1 with dt 0.5 gives a phase step of exactly 0.5.
func createTestBob(phase float32) *WeaponBob {
	w := NewWeaponBob(config.WeaponBobConfig{
		Enabled:        true,
		Rate:           1,
		Amplitude:      0.05,
		BaseOffset:     -0.2,
		SpeedThreshold: 1,
	})
	w.Phase = phase
	return w
}

func TestWeaponBobSettlesAtRest(t *testing.T) {
	tests := []struct {
		name  string
		phase float32
		want  float64
	}{
		{"rising past pi", 3.0, math.Pi},
		{"rising past two pi", 6.0, math.Pi},
		{"falling below zero", 0.3, math.Pi},
		{"falling toward pi", 4.0, 3.5},
		{"already at rest", float32(math.Pi), math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createTestBob(tt.phase)
			w.Update(rl.Vector3{}, 0.5)
			assert.InDelta(t, tt.want, float64(w.Phase), 1e-5)
		})
	}
}

func TestWeaponBobAdvancesWhileMoving(t *testing.T) {
	w := createTestBob(6.0)
	w.Update(rl.Vector3{X: 2}, 0.5)
	assert.InDelta(t, 6.5-2*math.Pi, float64(w.Phase), 1e-5)

	w = createTestBob(1.0)
	w.Update(rl.Vector3{X: -1.5, Z: 0.5}, 0.5)
	assert.InDelta(t, 1.5, float64(w.Phase), 1e-6)
}

func TestWeaponBobThresholdIsStrict(t *testing.T) {
	w := createTestBob(4.0)
	w.Update(rl.Vector3{X: 0.5, Z: 0.5}, 0.5)
	assert.InDelta(t, 3.5, float64(w.Phase), 1e-6)
}

func TestWeaponBobOffset(t *testing.T) {
	w := createTestBob(math.Pi / 2)
	assert.InDelta(t, -0.15, float64(w.Offset()), 1e-6)

	w.cfg.Enabled = false
	assert.Equal(t, float32(-0.2), w.Offset())

	w.Reset()
	assert.Equal(t, float32(0), w.Phase)
}
