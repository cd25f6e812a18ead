package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// ExchangeAlongNormal swaps the components of two velocities along the unit
// normal n. Tangential components are left untouched.
func ExchangeAlongNormal(v1, v2, n rl.Vector3) (rl.Vector3, rl.Vector3) {
	p1 := project(v1, n)
	p2 := project(v2, n)
	v1 = rl.Vector3Add(v1, rl.Vector3Subtract(p2, p1))
	v2 = rl.Vector3Add(v2, rl.Vector3Subtract(p1, p2))
	return v1, v2
}

// ResolveSpherePair exchanges momentum between two overlapping spheres and
// moves each back half the overlap so they end up just touching.
func ResolveSpherePair(a, b *SphereBody) bool {
	diff := rl.Vector3Subtract(a.Collider.Center, b.Collider.Center)
	sum := a.Collider.Radius + b.Collider.Radius
	if rl.Vector3LengthSqr(diff) >= sum*sum {
		return false
	}
	n, dist, ok := normalizeSafe(diff)
	if !ok {
		return false
	}

	a.Velocity, b.Velocity = ExchangeAlongNormal(a.Velocity, b.Velocity, n)

	half := (sum - dist) / 2
	a.Collider.Translate(rl.Vector3Scale(n, half))
	b.Collider.Translate(rl.Vector3Scale(n, -half))
	return true
}

// ResolveSpheres runs ResolveSpherePair over every unique pair and returns
// how many pairs were in contact.
func ResolveSpheres(bodies []*SphereBody) int {
	contacts := 0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			if ResolveSpherePair(bodies[i], bodies[j]) {
				contacts++
			}
		}
	}
	return contacts
}

// CapsuleSamplePoints are the points a capsule is reduced to for body contacts.
func CapsuleSamplePoints(c Capsule) [3]rl.Vector3 {
	return [3]rl.Vector3{c.Start, c.End, c.Center()}
}

// ResolveSphereCapsule tests the sphere against each capsule sample point on
// its own. Every overlapping point exchanges momentum and pushes the sphere
// back by half the penetration, so one sphere can resolve more than once per
// call. It returns the number of sample points that fired.
func ResolveSphereCapsule(s *SphereBody, c *CapsuleBody) int {
	sum := s.Collider.Radius + c.Collider.Radius
	fired := 0
	for _, point := range CapsuleSamplePoints(c.Collider) {
		diff := rl.Vector3Subtract(point, s.Collider.Center)
		if rl.Vector3LengthSqr(diff) >= sum*sum {
			continue
		}
		n, dist, ok := normalizeSafe(diff)
		if !ok {
			continue
		}

		c.Velocity, s.Velocity = ExchangeAlongNormal(c.Velocity, s.Velocity, n)
		s.Collider.Translate(rl.Vector3Scale(n, -(sum-dist)/2))
		fired++
	}
	return fired
}
