package components

import (
	"ratarch/internal/engine"
	"ratarch/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Collectible is a pickup that disappears when the player or a thrown rat
// touches it.
type Collectible struct {
	engine.BaseComponent
	Bounds    physics.AABB
	Collected bool
}

func (c *Collectible) SyncTransform() {
	if g := c.GetGameObject(); g != nil {
		g.Transform.Position = c.Bounds.Center()
		g.Active = !c.Collected
	}
}

// Collectibles tracks every pickup in the level.
type Collectibles struct {
	items []*Collectible
	// OnCollected fires with the pickup that was just taken.
	OnCollected engine.EventWithArg[*Collectible]
}

func NewCollectibles() *Collectibles {
	return &Collectibles{}
}

// Add places a pickup centred on position.
func (cs *Collectibles) Add(position, size rl.Vector3) *Collectible {
	c := &Collectible{Bounds: physics.NewAABBFromCenter(position, size)}
	cs.items = append(cs.items, c)
	return c
}

func (cs *Collectibles) Items() []*Collectible {
	return cs.items
}

// CollectBox takes every pickup overlapping the box and returns how many.
func (cs *Collectibles) CollectBox(box physics.AABB) int {
	bb := box.BoundingBox()
	n := 0
	for _, c := range cs.items {
		if c.Collected || !rl.CheckCollisionBoxes(bb, c.Bounds.BoundingBox()) {
			continue
		}
		cs.collect(c)
		n++
	}
	return n
}

// CollectSphere takes every pickup touched by the sphere.
func (cs *Collectibles) CollectSphere(s physics.Sphere) int {
	n := 0
	for _, c := range cs.items {
		if c.Collected || !rl.CheckCollisionBoxSphere(c.Bounds.BoundingBox(), s.Center, s.Radius) {
			continue
		}
		cs.collect(c)
		n++
	}
	return n
}

func (cs *Collectibles) collect(c *Collectible) {
	c.Collected = true
	cs.OnCollected.Invoke(c)
}

// Remaining is how many pickups are still in the level.
func (cs *Collectibles) Remaining() int {
	n := 0
	for _, c := range cs.items {
		if !c.Collected {
			n++
		}
	}
	return n
}

func (cs *Collectibles) Reset() {
	for _, c := range cs.items {
		c.Collected = false
		if g := c.GetGameObject(); g != nil {
			g.Active = true
		}
	}
}

// Clear drops every pickup, used when a new level is loaded.
func (cs *Collectibles) Clear() {
	cs.items = nil
}

// GoalSpinRate is how fast the goal marker turns, in degrees per second.
const GoalSpinRate = 90

// Goal is the exit. Touching it wins only when nothing is left to collect.
type Goal struct {
	engine.BaseComponent
	Bounds physics.AABB
	Spin   float32 // marker yaw in degrees, advanced once per frame
}

func NewGoal(position, size rl.Vector3) *Goal {
	return &Goal{Bounds: physics.NewAABBFromCenter(position, size)}
}

// MoveTo recentres the goal on position.
func (g *Goal) MoveTo(position rl.Vector3) {
	g.Bounds = g.Bounds.Translate(rl.Vector3Subtract(position, g.Bounds.Center()))
}

func (g *Goal) Touched(box physics.AABB) bool {
	return rl.CheckCollisionBoxes(box.BoundingBox(), g.Bounds.BoundingBox())
}

// Update turns the marker. It has no effect on the goal's bounds.
func (g *Goal) Update(deltaTime float32) {
	g.Spin = wrapDegrees(g.Spin + GoalSpinRate*deltaTime)
}

func (g *Goal) SyncTransform() {
	if obj := g.GetGameObject(); obj != nil {
		obj.Transform.Position = g.Bounds.Center()
		obj.Transform.Rotation.Y = g.Spin
	}
}
