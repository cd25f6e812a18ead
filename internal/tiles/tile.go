package tiles

import (
	"ratarch/internal/engine"
	"ratarch/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
)

// Tile is one swappable piece of level geometry. Its render transform and
// world-space collider always describe the same placement.
type Tile struct {
	ID       uuid.UUID
	Kind     string
	Object   *engine.GameObject
	Material string

	mesh   physics.ColliderMesh
	world  []physics.Triangle
	bounds physics.AABB
}

func newTile(kind string, mesh physics.ColliderMesh, parent *engine.GameObject, position, rotation rl.Vector3) *Tile {
	obj := engine.NewGameObject("Tile_" + kind)
	obj.Tags = []string{"tile"}
	obj.Transform.Position = position
	obj.Transform.Rotation = rotation
	parent.AddChild(obj)

	t := &Tile{
		ID:       uuid.New(),
		Kind:     kind,
		Object:   obj,
		Material: kind,
		mesh:     mesh,
	}
	t.syncCollider()
	return t
}

// syncCollider re-places the collider from the object's world transform.
func (t *Tile) syncCollider() {
	t.world = t.mesh.Transformed(t.Object.WorldPosition(), t.Object.WorldRotation())
	t.bounds = physics.EmptyAABB()
	for i := range t.world {
		t.bounds = t.bounds.Union(t.world[i].Bounds())
	}
}

func (t *Tile) Position() rl.Vector3 {
	return t.Object.Transform.Position
}

func (t *Tile) Rotation() rl.Vector3 {
	return t.Object.Transform.Rotation
}

// Triangles is the world-space collider.
func (t *Tile) Triangles() []physics.Triangle {
	return t.world
}

func (t *Tile) Bounds() physics.AABB {
	return t.bounds
}

// raycast returns the nearest hit on this tile's collider.
func (t *Tile) raycast(ray rl.Ray, maxDistance float32) (physics.RaycastHit, bool) {
	if len(t.world) == 0 {
		return physics.RaycastHit{}, false
	}
	if !rl.GetRayCollisionBox(ray, t.bounds.BoundingBox()).Hit {
		return physics.RaycastHit{}, false
	}
	best := physics.RaycastHit{Distance: maxDistance}
	found := false
	for i := range t.world {
		if hit, ok := physics.RaycastTriangle(ray, &t.world[i]); ok && hit.Distance < best.Distance {
			best = hit
			found = true
		}
	}
	return best, found
}
