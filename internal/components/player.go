package components

import (
	"ratarch/internal/config"
	"ratarch/internal/engine"
	"ratarch/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Player is the first person body: a capsule that walks, jumps and slides
// along walls. Its GameObject is the camera rig placed at the capsule top.
type Player struct {
	engine.BaseComponent
	Body physics.CapsuleBody
	Bob  *WeaponBob
	// Held is the object shown in front of the camera, bobbing with movement.
	Held *engine.GameObject

	cfg  config.PlayerConfig
	look rl.Vector3
}

func NewPlayer(cfg config.PlayerConfig, bob config.WeaponBobConfig) *Player {
	p := &Player{cfg: cfg, Bob: NewWeaponBob(bob), look: rl.Vector3{Z: -1}}
	p.Reset()
	return p
}

// SetConfig applies new tuning without moving the body.
func (p *Player) SetConfig(cfg config.PlayerConfig, bob config.WeaponBobConfig) {
	p.cfg = cfg
	p.Body.Collider.Radius = cfg.Radius
	p.Bob.cfg = bob
}

// Reset restores the spawn capsule at the origin and zeroes velocity.
func (p *Player) Reset() {
	r := p.cfg.Radius
	p.Body = physics.CapsuleBody{
		Collider: physics.NewCapsule(rl.Vector3{Y: r}, rl.Vector3{Y: r + p.cfg.Height}, r),
	}
	p.Bob.Reset()
}

// MoveTo translates the capsule so its top sits at pos.
func (p *Player) MoveTo(pos rl.Vector3) {
	p.Body.Collider.Translate(rl.Vector3Subtract(pos, p.Body.Collider.End))
}

// Position is the capsule bottom, used for the fall-out check.
func (p *Player) Position() rl.Vector3 {
	return p.Body.Collider.Start
}

// Eye is where the camera sits.
func (p *Player) Eye() rl.Vector3 {
	return p.Body.Collider.End
}

func (p *Player) Bounds() physics.AABB {
	return p.Body.Collider.Bounds()
}

// ApplyControls turns held keys into acceleration. Grounded players
// accelerate faster than airborne ones.
func (p *Player) ApplyControls(dt float32, in InputState, look rl.Vector3) {
	p.look = look
	accel := p.cfg.AirAcceleration
	if p.Body.OnFloor {
		accel = p.cfg.GroundAcceleration
	}
	speedDelta := dt * accel
	forward, side := LookVectors(look)

	v := p.Body.Velocity
	if in.Forward {
		v = rl.Vector3Add(v, rl.Vector3Scale(forward, speedDelta))
	}
	if in.Back {
		v = rl.Vector3Add(v, rl.Vector3Scale(forward, -speedDelta))
	}
	if in.Left {
		v = rl.Vector3Add(v, rl.Vector3Scale(side, -speedDelta))
	}
	if in.Right {
		v = rl.Vector3Add(v, rl.Vector3Scale(side, speedDelta))
	}
	if in.Jump && p.Body.OnFloor {
		v.Y = p.cfg.JumpSpeed
	}
	p.Body.Velocity = v
}

// Step integrates one sub-step and resolves contacts with both partitions.
func (p *Player) Step(dt, gravity float32, world, dynamic physics.Querier) {
	params := physics.BodyParams{
		Damping:          p.cfg.Damping,
		AirDampingFactor: p.cfg.AirDampingFactor,
		MaxGroundSpeed:   p.cfg.MaxGroundSpeed,
	}
	v, move := physics.Integrate(p.Body.Velocity, p.Body.OnFloor, dt, gravity, params)
	p.Body.Velocity = v
	p.Bob.Update(v, dt)
	p.Body.Collider.Translate(move)
	physics.ResolveCapsuleCumulative(&p.Body, world, dynamic)
}

// SyncTransform places the camera rig at the eye and bobs the held object.
func (p *Player) SyncTransform() {
	g := p.GetGameObject()
	if g == nil {
		return
	}
	g.Transform.Position = p.Eye()
	forward, _ := LookVectors(p.look)
	if rl.Vector3LengthSqr(forward) > 0 {
		g.Transform.Rotation.Y = atan2f(-forward.X, -forward.Z) * rl.Rad2deg
	}
	if p.Held != nil {
		p.Held.Transform.Position.Y = p.Bob.Offset()
	}
}
