package components

import (
	"math"

	"ratarch/internal/config"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	halfPi      = math.Pi / 2
	threeHalfPi = 3 * math.Pi / 2
	twoPi       = 2 * math.Pi
)

// WeaponBob oscillates the held object while the player walks and eases it
// back to a rest position (a multiple of pi) when they stop.
type WeaponBob struct {
	Phase float32
	cfg   config.WeaponBobConfig
}

func NewWeaponBob(cfg config.WeaponBobConfig) *WeaponBob {
	return &WeaponBob{cfg: cfg}
}

// Update advances the phase from the body velocity over dt.
func (w *WeaponBob) Update(velocity rl.Vector3, dt float32) {
	step := w.cfg.Rate * dt
	phase := float64(w.Phase)

	if abs(velocity.X)+abs(velocity.Z) > w.cfg.SpeedThreshold {
		phase += float64(step)
	} else if phase <= halfPi || (phase >= math.Pi && phase <= threeHalfPi) {
		next := phase - float64(step)
		if between(math.Pi, next, phase) || between(twoPi, next, phase) {
			phase = math.Pi
		} else {
			phase = next
		}
	} else {
		next := phase + float64(step)
		if between(math.Pi, phase, next) || between(twoPi, phase, next) {
			phase = math.Pi
		} else {
			phase = next
		}
	}

	if phase > twoPi {
		phase -= twoPi
	}
	if phase < 0 {
		phase = math.Pi
	}
	w.Phase = float32(phase)
}

// Offset is the vertical offset of the held object.
func (w *WeaponBob) Offset() float32 {
	if !w.cfg.Enabled {
		return w.cfg.BaseOffset
	}
	return w.cfg.BaseOffset + w.cfg.Amplitude*float32(math.Sin(float64(w.Phase)))
}

// Reset puts the bob at rest.
func (w *WeaponBob) Reset() {
	w.Phase = 0
}

func between(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
