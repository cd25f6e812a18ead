package physics

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

// stubQuerier returns fixed contacts and counts how often it was asked.
type stubQuerier struct {
	contact *Contact
	calls   int
}

func (s *stubQuerier) IntersectCapsule(Capsule) (Contact, bool) {
	s.calls++
	if s.contact == nil {
		return Contact{}, false
	}
	return *s.contact, true
}

func (s *stubQuerier) IntersectSphere(Sphere) (Contact, bool) {
	s.calls++
	if s.contact == nil {
		return Contact{}, false
	}
	return *s.contact, true
}

func createTestPlayerBody() *CapsuleBody {
	return &CapsuleBody{
		Collider: NewCapsule(rl.Vector3{Y: 0.3}, rl.Vector3{Y: 0.95}, 0.35),
	}
}

func TestPlayerLandsOnFloor(t *testing.T) {
	b := createTestPlayerBody()
	b.Velocity = rl.Vector3{X: 2, Z: -1}
	floor := &stubQuerier{contact: &Contact{Normal: rl.Vector3{Y: 1}, Depth: 0.05}}

	ResolveCapsuleCumulative(b, floor, &stubQuerier{})

	assert.True(t, b.OnFloor)
	assert.InDelta(t, 0.35, b.Collider.Start.Y, 1e-6)
	assert.InDelta(t, 1.0, b.Collider.End.Y, 1e-6)
	assert.Equal(t, rl.Vector3{X: 2, Z: -1}, b.Velocity)
}

func TestPlayerSlidesAlongWall(t *testing.T) {
	b := createTestPlayerBody()
	b.Velocity = rl.Vector3{X: -5, Y: 1, Z: 2}
	wall := &stubQuerier{contact: &Contact{Normal: rl.Vector3{X: 1}, Depth: 0.1}}

	ResolveCapsuleCumulative(b, wall, nil)

	assert.False(t, b.OnFloor)
	assert.InDelta(t, 0, b.Velocity.X, 1e-6)
	assert.InDelta(t, 1, b.Velocity.Y, 1e-6)
	assert.InDelta(t, 2, b.Velocity.Z, 1e-6)
	assert.InDelta(t, 0.1, b.Collider.Start.X, 1e-6)
}

func TestPlayerContactsAreCumulative(t *testing.T) {
	b := createTestPlayerBody()
	b.Velocity = rl.Vector3{X: -5}
	world := &stubQuerier{contact: &Contact{Normal: rl.Vector3{Y: 1}, Depth: 0.05}}
	dynamic := &stubQuerier{contact: &Contact{Normal: rl.Vector3{X: 1}, Depth: 0.2}}

	ResolveCapsuleCumulative(b, world, dynamic)

	assert.Equal(t, 1, world.calls)
	assert.Equal(t, 1, dynamic.calls)
	assert.True(t, b.OnFloor)
	assert.InDelta(t, 0.35, b.Collider.Start.Y, 1e-6)
	assert.InDelta(t, 0.2, b.Collider.Start.X, 1e-6)
	// Already standing, so the wall does not cancel velocity.
	assert.InDelta(t, -5, b.Velocity.X, 1e-6)
}

func TestCoincidentFloorsBothLift(t *testing.T) {
	world := BuildPartition(createTestFloor(t, 10).Triangles)
	dynamic := BuildPartition(createTestFloor(t, 2).Triangles)
	b := createTestPlayerBody()

	ResolveCapsuleCumulative(b, world, dynamic)

	// Each floor reports 0.05 against the unmoved capsule.
	assert.True(t, b.OnFloor)
	assert.InDelta(t, 0.40, b.Collider.Start.Y, 1e-5)
	assert.InDelta(t, 1.05, b.Collider.End.Y, 1e-5)
}

func TestPlayerLeavesFloorWithoutContact(t *testing.T) {
	b := createTestPlayerBody()
	b.OnFloor = true

	ResolveCapsuleCumulative(b, &stubQuerier{}, &stubQuerier{})
	assert.False(t, b.OnFloor)
}

func TestDegenerateContactIsSkipped(t *testing.T) {
	b := createTestPlayerBody()
	b.Velocity = rl.Vector3{X: 1, Y: 2, Z: 3}
	nan := float32(math.NaN())
	bad := &stubQuerier{contact: &Contact{Normal: rl.Vector3{X: nan}, Depth: 0.1}}
	zero := &stubQuerier{contact: &Contact{Depth: 0.1}}

	ResolveCapsuleCumulative(b, bad, zero)

	assert.False(t, b.OnFloor)
	assert.Equal(t, rl.Vector3{X: 1, Y: 2, Z: 3}, b.Velocity)
	assert.True(t, IsFinite(b.Collider.Start))

	s := &SphereBody{Collider: NewSphere(rl.Vector3{}, 0.4), Velocity: rl.Vector3{Z: -10}}
	assert.False(t, ResolveSphereWorldFirst(s, bad, zero, ProjectileRestitution))
	assert.Equal(t, rl.Vector3{Z: -10}, s.Velocity)
}

func TestProjectileBouncesOffWall(t *testing.T) {
	s := &SphereBody{Collider: NewSphere(rl.Vector3{Y: 1}, 0.4), Velocity: rl.Vector3{X: 1, Y: 2, Z: -10}}
	wall := &stubQuerier{contact: &Contact{Normal: rl.Vector3{Z: 1}}}

	assert.True(t, ResolveSphereWorldFirst(s, wall, nil, ProjectileRestitution))

	// -10 - (-10 * 1.5): reversed and weaker.
	assert.InDelta(t, 5, s.Velocity.Z, 1e-5)
	assert.InDelta(t, 1, s.Velocity.X, 1e-6)
	assert.InDelta(t, 2, s.Velocity.Y, 1e-6)
	assert.Equal(t, rl.Vector3{Y: 1}, s.Collider.Center)
}

func TestProjectileWorldTakesPrecedence(t *testing.T) {
	s := &SphereBody{Collider: NewSphere(rl.Vector3{}, 0.4), Velocity: rl.Vector3{Y: -4}}
	world := &stubQuerier{contact: &Contact{Normal: rl.Vector3{Y: 1}, Depth: 0.1}}
	dynamic := &stubQuerier{contact: &Contact{Normal: rl.Vector3{X: 1}, Depth: 0.3}}

	assert.True(t, ResolveSphereWorldFirst(s, world, dynamic, ProjectileRestitution))

	assert.Equal(t, 0, dynamic.calls)
	assert.InDelta(t, 0.1, s.Collider.Center.Y, 1e-6)
	assert.InDelta(t, 0, s.Collider.Center.X, 1e-6)
	assert.InDelta(t, 2, s.Velocity.Y, 1e-5)
}

func TestProjectileFallsBackToDynamic(t *testing.T) {
	s := &SphereBody{Collider: NewSphere(rl.Vector3{}, 0.4), Velocity: rl.Vector3{X: -4}}
	world := &stubQuerier{}
	dynamic := &stubQuerier{contact: &Contact{Normal: rl.Vector3{X: 1}, Depth: 0.3}}

	assert.True(t, ResolveSphereWorldFirst(s, world, dynamic, ProjectileRestitution))
	assert.Equal(t, 1, dynamic.calls)
	assert.InDelta(t, 0.3, s.Collider.Center.X, 1e-6)
	assert.InDelta(t, 2, s.Velocity.X, 1e-5)
}

func TestBounceLosesEnergy(t *testing.T) {
	for _, speed := range []float32{0.5, 3, 40} {
		s := &SphereBody{Velocity: rl.Vector3{Y: -speed}}
		Bounce(s, Contact{Normal: rl.Vector3{Y: 1}}, ProjectileRestitution)
		assert.Greater(t, s.Velocity.Y, float32(0))
		assert.Less(t, s.Velocity.Y, speed)
	}
}
