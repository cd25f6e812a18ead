package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// Capsule is a segment swept by a radius. The player collides as one.
type Capsule struct {
	Start  rl.Vector3
	End    rl.Vector3
	Radius float32
}

func NewCapsule(start, end rl.Vector3, radius float32) Capsule {
	return Capsule{Start: start, End: end, Radius: radius}
}

// Translate moves both endpoints by offset.
func (c *Capsule) Translate(offset rl.Vector3) {
	c.Start = rl.Vector3Add(c.Start, offset)
	c.End = rl.Vector3Add(c.End, offset)
}

// Center is the midpoint of the segment.
func (c Capsule) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(c.Start, c.End), 0.5)
}

func (c Capsule) Bounds() AABB {
	r := rl.Vector3{X: c.Radius, Y: c.Radius, Z: c.Radius}
	return AABB{
		Min: rl.Vector3Subtract(rl.Vector3Min(c.Start, c.End), r),
		Max: rl.Vector3Add(rl.Vector3Max(c.Start, c.End), r),
	}
}

// Sphere is a projectile's collision volume.
type Sphere struct {
	Center rl.Vector3
	Radius float32
}

func NewSphere(center rl.Vector3, radius float32) Sphere {
	return Sphere{Center: center, Radius: radius}
}

func (s *Sphere) Translate(offset rl.Vector3) {
	s.Center = rl.Vector3Add(s.Center, offset)
}

func (s Sphere) Bounds() AABB {
	r := rl.Vector3{X: s.Radius, Y: s.Radius, Z: s.Radius}
	return AABB{Min: rl.Vector3Subtract(s.Center, r), Max: rl.Vector3Add(s.Center, r)}
}

// Contact describes how far a collider sits inside geometry and which way is out.
// Normal is unit length and points into free space.
type Contact struct {
	Normal rl.Vector3
	Depth  float32
}

// Valid reports whether the contact can be applied without corrupting body state.
func (c Contact) Valid() bool {
	if !IsFinite(c.Normal) || !finite(c.Depth) || c.Depth < 0 {
		return false
	}
	return rl.Vector3LengthSqr(c.Normal) > epsilon
}

// Correction is the push-out translation.
func (c Contact) Correction() rl.Vector3 {
	return rl.Vector3Scale(c.Normal, c.Depth)
}

// contactFromDisplacement turns an accumulated push-out into a contact.
func contactFromDisplacement(d rl.Vector3) (Contact, bool) {
	n, depth, ok := normalizeSafe(d)
	if !ok {
		return Contact{}, false
	}
	return Contact{Normal: n, Depth: depth}, true
}
