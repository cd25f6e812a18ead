package components

import (
	"fmt"

	"ratarch/internal/config"
	"ratarch/internal/engine"
	"ratarch/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Projectile is one thrown rat.
type Projectile struct {
	engine.BaseComponent
	Body  physics.SphereBody
	Index int
	// Active is false until the projectile is first thrown after a reset.
	Active bool
}

// park moves the projectile below the level, staggered by index so parked
// projectiles never overlap each other.
func (p *Projectile) park() {
	p.Body.Collider.Center = rl.Vector3{Y: -10 - 5*float32(p.Index)}
	p.Body.Velocity = rl.Vector3{}
	p.Active = false
}

// Launch places the projectile one radius ahead of origin and gives it the
// throw velocity plus a share of the thrower's velocity.
func (p *Projectile) Launch(direction, origin rl.Vector3, impulse float32, launcherVelocity rl.Vector3, inherit float32) {
	p.Body.Collider.Center = rl.Vector3Add(origin, rl.Vector3Scale(direction, p.Body.Collider.Radius))
	p.Body.Velocity = rl.Vector3Add(rl.Vector3Scale(direction, impulse), rl.Vector3Scale(launcherVelocity, inherit))
	p.Active = true
}

// Step moves the projectile, bounces it off geometry and applies gravity
// (only while free) and drag.
func (p *Projectile) Step(dt, gravity float32, cfg config.ProjectileConfig, world, dynamic physics.Querier) {
	p.Body.Collider.Translate(rl.Vector3Scale(p.Body.Velocity, dt))
	if !physics.ResolveSphereWorldFirst(&p.Body, world, dynamic, cfg.Restitution) {
		p.Body.Velocity = physics.ApplyGravity(p.Body.Velocity, gravity, dt)
	}
	p.Body.Velocity = physics.ApplyDrag(p.Body.Velocity, cfg.Damping, dt)
}

// SyncTransform places the model at the collider and turns it to face its
// horizontal direction of travel.
func (p *Projectile) SyncTransform() {
	g := p.GetGameObject()
	if g == nil {
		return
	}
	g.Transform.Position = p.Body.Collider.Center
	flat := rl.Vector3{X: p.Body.Velocity.X, Z: p.Body.Velocity.Z}
	if rl.Vector3LengthSqr(flat) > 1e-8 {
		g.Transform.Rotation.Y = atan2f(flat.X, flat.Z)*rl.Rad2deg - 90
	}
}

// ProjectilePool is a fixed ring of projectiles. Firing reuses the slot at
// the cursor, so the oldest throw is recycled once all are in flight.
type ProjectilePool struct {
	items  []*Projectile
	bodies []*physics.SphereBody
	cursor int
	cfg    config.ProjectileConfig
}

func NewProjectilePool(cfg config.ProjectileConfig) *ProjectilePool {
	count := cfg.Count
	if count < 1 {
		count = 1
	}
	pool := &ProjectilePool{
		items:  make([]*Projectile, count),
		bodies: make([]*physics.SphereBody, count),
		cfg:    cfg,
	}
	for i := range pool.items {
		p := &Projectile{Index: i}
		p.Body.Collider.Radius = cfg.Radius
		p.park()
		pool.items[i] = p
		pool.bodies[i] = &p.Body
	}
	return pool
}

// Attach gives each projectile a GameObject in the scene for render sync.
func (pp *ProjectilePool) Attach(scene *engine.Scene) {
	for _, p := range pp.items {
		g := p.GetGameObject()
		if g == nil {
			g = engine.NewGameObject(fmt.Sprintf("Rat_%d", p.Index))
			g.Tags = []string{"projectile"}
			g.Transform.Scale = rl.Vector3{X: 0.2, Y: 0.2, Z: 0.2}
			g.AddComponent(p)
		}
		scene.AddGameObject(g)
	}
}

func (pp *ProjectilePool) Len() int {
	return len(pp.items)
}

func (pp *ProjectilePool) At(i int) *Projectile {
	return pp.items[i%len(pp.items)]
}

// SetConfig applies new projectile tuning. The pool keeps its size; a
// different count takes effect when the pool is rebuilt.
func (pp *ProjectilePool) SetConfig(cfg config.ProjectileConfig) {
	pp.cfg = cfg
	for _, p := range pp.items {
		p.Body.Collider.Radius = cfg.Radius
	}
}

// Cursor is the slot the next Fire will use.
func (pp *ProjectilePool) Cursor() int {
	return pp.cursor
}

// Impulse maps how long the throw was charged to a launch speed.
func (pp *ProjectilePool) Impulse(holdSeconds float32) float32 {
	if holdSeconds < 0 {
		holdSeconds = 0
	}
	return pp.cfg.BaseImpulse + pp.cfg.ChargeImpulse*(1-expf(-holdSeconds))
}

// Fire relaunches the projectile at the cursor and advances it.
func (pp *ProjectilePool) Fire(direction, origin rl.Vector3, impulse float32, launcherVelocity rl.Vector3) *Projectile {
	p := pp.items[pp.cursor]
	p.Launch(direction, origin, impulse, launcherVelocity, pp.cfg.InheritVelocity)
	pp.cursor = (pp.cursor + 1) % len(pp.items)
	return p
}

// FireFrom throws from a player: just ahead of the eye along the look direction.
func (pp *ProjectilePool) FireFrom(player *Player, look rl.Vector3, holdSeconds float32) *Projectile {
	direction := rl.Vector3Normalize(look)
	origin := rl.Vector3Add(player.Eye(), rl.Vector3Scale(direction, player.Body.Collider.Radius*pp.cfg.SpawnOffset))
	return pp.Fire(direction, origin, pp.Impulse(holdSeconds), player.Body.Velocity)
}

// Step advances every thrown projectile against the world and dynamic partitions.
func (pp *ProjectilePool) Step(dt, gravity float32, world, dynamic physics.Querier) {
	for _, p := range pp.items {
		if p.Active {
			p.Step(dt, gravity, pp.cfg, world, dynamic)
		}
	}
}

// ResolvePairs separates overlapping thrown projectiles.
func (pp *ProjectilePool) ResolvePairs() int {
	active := make([]*physics.SphereBody, 0, len(pp.items))
	for i, p := range pp.items {
		if p.Active {
			active = append(active, pp.bodies[i])
		}
	}
	return physics.ResolveSpheres(active)
}

// ResolvePlayer bounces thrown projectiles off the player.
func (pp *ProjectilePool) ResolvePlayer(player *Player) int {
	fired := 0
	for _, p := range pp.items {
		if p.Active {
			fired += physics.ResolveSphereCapsule(&p.Body, &player.Body)
		}
	}
	return fired
}

// Each calls fn for every thrown projectile.
func (pp *ProjectilePool) Each(fn func(*Projectile)) {
	for _, p := range pp.items {
		if p.Active {
			fn(p)
		}
	}
}

// Reset parks every projectile and rewinds the cursor.
func (pp *ProjectilePool) Reset() {
	for _, p := range pp.items {
		p.park()
	}
	pp.cursor = 0
}
