package config

import (
	"errors"
	"fmt"
)

// ErrInvalidTuning is returned when tuning values cannot drive a simulation.
var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning holds every simulation constant that designers may adjust.
type Tuning struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Projectile ProjectileConfig `yaml:"projectile"`
	WeaponBob  WeaponBobConfig  `yaml:"weapon_bob"`
	Tiles      TilesConfig      `yaml:"tiles"`
}

// PhysicsConfig controls world-wide stepping.
type PhysicsConfig struct {
	Gravity       float32 `yaml:"gravity"`
	StepsPerFrame int     `yaml:"steps_per_frame"`
	MaxFrameDelta float32 `yaml:"max_frame_delta"`
	KillPlaneY    float32 `yaml:"kill_plane_y"`
}

// PlayerConfig describes the walking capsule and its controls.
type PlayerConfig struct {
	Radius             float32 `yaml:"radius"`
	Height             float32 `yaml:"height"` // distance from capsule start to end
	Damping            float32 `yaml:"damping"`
	AirDampingFactor   float32 `yaml:"air_damping_factor"`
	MaxGroundSpeed     float32 `yaml:"max_ground_speed"`
	GroundAcceleration float32 `yaml:"ground_acceleration"`
	AirAcceleration    float32 `yaml:"air_acceleration"`
	JumpSpeed          float32 `yaml:"jump_speed"`
}

// ProjectileConfig describes the thrown rats.
type ProjectileConfig struct {
	Count           int     `yaml:"count"`
	Radius          float32 `yaml:"radius"`
	Damping         float32 `yaml:"damping"`
	Restitution     float32 `yaml:"restitution"`
	BaseImpulse     float32 `yaml:"base_impulse"`
	ChargeImpulse   float32 `yaml:"charge_impulse"`
	SpawnOffset     float32 `yaml:"spawn_offset"` // in projectile radii ahead of the eye
	InheritVelocity float32 `yaml:"inherit_velocity"`
}

// WeaponBobConfig drives the held object oscillation.
type WeaponBobConfig struct {
	Enabled        bool    `yaml:"enabled"`
	Rate           float32 `yaml:"rate"`
	Amplitude      float32 `yaml:"amplitude"`
	BaseOffset     float32 `yaml:"base_offset"`
	SpeedThreshold float32 `yaml:"speed_threshold"`
}

// TilesConfig controls the tile swap puzzle.
type TilesConfig struct {
	HighlightMaterial string  `yaml:"highlight_material"`
	PickDistance      float32 `yaml:"pick_distance"`
}

// Default returns the tuning the game ships with.
func Default() Tuning {
	return Tuning{
		Physics: PhysicsConfig{
			Gravity:       30,
			StepsPerFrame: 5,
			MaxFrameDelta: 0.05,
			KillPlaneY:    -10,
		},
		Player: PlayerConfig{
			Radius:             0.35,
			Height:             0.65,
			Damping:            7,
			AirDampingFactor:   -0.8,
			MaxGroundSpeed:     10,
			GroundAcceleration: 50,
			AirAcceleration:    10,
			JumpSpeed:          12,
		},
		Projectile: ProjectileConfig{
			Count:           20,
			Radius:          0.4,
			Damping:         0.5,
			Restitution:     1.5,
			BaseImpulse:     15,
			ChargeImpulse:   30,
			SpawnOffset:     1.5,
			InheritVelocity: 2,
		},
		WeaponBob: WeaponBobConfig{
			Enabled:        true,
			Rate:           15,
			Amplitude:      0.05,
			BaseOffset:     -0.2,
			SpeedThreshold: 1,
		},
		Tiles: TilesConfig{
			HighlightMaterial: "selected",
			PickDistance:      500,
		},
	}
}

// Validate reports every value that would break the simulation.
func (t Tuning) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidTuning}, args...)...))
		}
	}

	check(t.Physics.Gravity >= 0, "physics.gravity must not be negative, got %v", t.Physics.Gravity)
	check(t.Physics.StepsPerFrame >= 1, "physics.steps_per_frame must be at least 1, got %d", t.Physics.StepsPerFrame)
	check(t.Physics.MaxFrameDelta > 0, "physics.max_frame_delta must be positive, got %v", t.Physics.MaxFrameDelta)
	check(t.Player.Radius > 0, "player.radius must be positive, got %v", t.Player.Radius)
	check(t.Player.Height > 0, "player.height must be positive, got %v", t.Player.Height)
	check(t.Player.Damping >= 0, "player.damping must not be negative, got %v", t.Player.Damping)
	check(t.Player.MaxGroundSpeed >= 0, "player.max_ground_speed must not be negative, got %v", t.Player.MaxGroundSpeed)
	check(t.Projectile.Count >= 1, "projectile.count must be at least 1, got %d", t.Projectile.Count)
	check(t.Projectile.Radius > 0, "projectile.radius must be positive, got %v", t.Projectile.Radius)
	check(t.Projectile.Damping >= 0, "projectile.damping must not be negative, got %v", t.Projectile.Damping)
	check(t.Projectile.Restitution >= 1 && t.Projectile.Restitution <= 2,
		"projectile.restitution must be within [1, 2], got %v", t.Projectile.Restitution)
	check(t.WeaponBob.Rate >= 0, "weapon_bob.rate must not be negative, got %v", t.WeaponBob.Rate)
	check(t.Tiles.PickDistance > 0, "tiles.pick_distance must be positive, got %v", t.Tiles.PickDistance)

	return errors.Join(errs...)
}
