package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// FloorNormalY is the minimum normal slope that counts as standing ground.
const FloorNormalY = 0.1

// ProjectileRestitution is the normal velocity multiplier removed on a bounce.
const ProjectileRestitution = 1.5

// CapsuleBody is a walking body: the player.
type CapsuleBody struct {
	Collider Capsule
	Velocity rl.Vector3
	OnFloor  bool
}

// SphereBody is a free flying body: a projectile.
type SphereBody struct {
	Collider Sphere
	Velocity rl.Vector3
}

// ResolveCapsuleCumulative applies the world contact and then the dynamic
// contact to a walking body. Both partitions are queried against the
// incoming capsule before either correction moves it, and both corrections
// stick. Floor contacts keep velocity; wall contacts slide.
func ResolveCapsuleCumulative(b *CapsuleBody, world, dynamic Querier) {
	b.OnFloor = false
	var contacts [2]Contact
	var hits [2]bool
	for i, q := range [2]Querier{world, dynamic} {
		if q != nil {
			contacts[i], hits[i] = q.IntersectCapsule(b.Collider)
		}
	}
	for i := range contacts {
		if hits[i] {
			applyCapsuleContact(b, contacts[i])
		}
	}
}

func applyCapsuleContact(b *CapsuleBody, c Contact) {
	if !c.Valid() {
		return
	}
	b.OnFloor = b.OnFloor || c.Normal.Y > FloorNormalY
	if !b.OnFloor {
		b.Velocity = rl.Vector3Subtract(b.Velocity, project(b.Velocity, c.Normal))
	}
	b.Collider.Translate(c.Correction())
}

// ResolveSphereWorldFirst bounces a projectile off the world partition, and
// off the dynamic partition only when the world reported nothing. It reports
// whether any contact was applied.
func ResolveSphereWorldFirst(b *SphereBody, world, dynamic Querier, restitution float32) bool {
	for _, q := range [2]Querier{world, dynamic} {
		if q == nil {
			continue
		}
		if contact, ok := q.IntersectSphere(b.Collider); ok && contact.Valid() {
			Bounce(b, contact, restitution)
			return true
		}
	}
	return false
}

// Bounce removes restitution times the normal velocity component and pushes
// the sphere out of the surface.
func Bounce(b *SphereBody, c Contact, restitution float32) {
	b.Velocity = rl.Vector3Subtract(b.Velocity, rl.Vector3Scale(project(b.Velocity, c.Normal), restitution))
	b.Collider.Translate(c.Correction())
}
