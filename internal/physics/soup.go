package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// Soup is a Querier that tests every triangle in order with no hierarchy.
// It is the reference Partition is measured against, and is good enough for
// a handful of triangles.
type Soup []Triangle

func (s Soup) IntersectSphere(sp Sphere) (Contact, bool) {
	center := sp.Center
	hit := false
	for i := range s {
		if n, depth, ok := sphereTriangle(center, sp.Radius, &s[i]); ok {
			center = rl.Vector3Add(center, rl.Vector3Scale(n, depth))
			hit = true
		}
	}
	if !hit {
		return Contact{}, false
	}
	return contactFromDisplacement(rl.Vector3Subtract(center, sp.Center))
}

func (s Soup) IntersectCapsule(c Capsule) (Contact, bool) {
	moved := c
	hit := false
	for i := range s {
		if n, depth, ok := capsuleTriangle(moved, &s[i]); ok {
			moved.Translate(rl.Vector3Scale(n, depth))
			hit = true
		}
	}
	if !hit {
		return Contact{}, false
	}
	return contactFromDisplacement(rl.Vector3Subtract(moved.Start, c.Start))
}
