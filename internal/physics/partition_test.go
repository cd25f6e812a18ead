package physics

import (
	"math/rand"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestFloor(t *testing.T, half float32) ColliderMesh {
	t.Helper()
	mesh, err := NewIndexedMesh("floor", []rl.Vector3{
		{X: -half, Z: -half},
		{X: half, Z: -half},
		{X: half, Z: half},
		{X: -half, Z: half},
	}, []int{0, 2, 1, 0, 3, 2})
	require.NoError(t, err)
	return mesh
}

func TestIndexedMeshRejectsBadIndices(t *testing.T) {
	_, err := NewIndexedMesh("bad", []rl.Vector3{{}, {X: 1}}, []int{0, 1})
	assert.Error(t, err)

	_, err = NewIndexedMesh("bad", []rl.Vector3{{}, {X: 1}, {Z: 1}}, []int{0, 1, 3})
	assert.Error(t, err)
}

func TestFloorNormalsPointUp(t *testing.T) {
	floor := createTestFloor(t, 10)
	for _, tri := range floor.Triangles {
		assert.InDelta(t, 1.0, tri.Normal.Y, 1e-6)
	}
}

func TestBoxMeshFacesOutward(t *testing.T) {
	center := rl.Vector3{X: 2, Y: 1, Z: -3}
	box := NewBoxMesh("box", center, rl.Vector3{X: 2, Y: 2, Z: 2}, rl.Vector3{Y: 30})
	require.Len(t, box.Triangles, 12)
	for _, tri := range box.Triangles {
		out := rl.Vector3Subtract(tri.Centroid(), center)
		assert.Greater(t, rl.Vector3DotProduct(out, tri.Normal), float32(0))
	}
}

func TestCapsuleRestingOnFloor(t *testing.T) {
	p := BuildPartition(createTestFloor(t, 10).Triangles)

	capsule := NewCapsule(rl.Vector3{X: 3, Y: 0.30, Z: -3}, rl.Vector3{X: 3, Y: 0.95, Z: -3}, 0.35)
	contact, ok := p.IntersectCapsule(capsule)
	require.True(t, ok)
	assert.InDelta(t, 1.0, contact.Normal.Y, 1e-5)
	assert.InDelta(t, 0.05, contact.Depth, 1e-5)
}

func TestCapsuleAboveFloorHasNoContact(t *testing.T) {
	p := BuildPartition(createTestFloor(t, 10).Triangles)

	capsule := NewCapsule(rl.Vector3{X: 3, Y: 0.5, Z: -3}, rl.Vector3{X: 3, Y: 1.2, Z: -3}, 0.35)
	_, ok := p.IntersectCapsule(capsule)
	assert.False(t, ok)
}

func TestCapsuleAgainstWall(t *testing.T) {
	wall := NewBoxMesh("wall", rl.Vector3{X: 0, Y: 1, Z: -5}, rl.Vector3{X: 10, Y: 2, Z: 1}, rl.Vector3{})
	p := BuildPartition(wall.Triangles)

	// Front face of the wall is at z = -4.5.
	capsule := NewCapsule(rl.Vector3{Y: 0.6, Z: -4.3}, rl.Vector3{Y: 1.2, Z: -4.3}, 0.35)
	contact, ok := p.IntersectCapsule(capsule)
	require.True(t, ok)
	assert.InDelta(t, 1.0, contact.Normal.Z, 1e-5)
	assert.InDelta(t, 0.15, contact.Depth, 1e-4)
}

func TestSphereOnFloor(t *testing.T) {
	p := BuildPartition(createTestFloor(t, 10).Triangles)

	contact, ok := p.IntersectSphere(NewSphere(rl.Vector3{X: 4, Y: 0.3, Z: -2}, 0.4))
	require.True(t, ok)
	assert.InDelta(t, 1.0, contact.Normal.Y, 1e-5)
	assert.InDelta(t, 0.1, contact.Depth, 1e-5)

	_, ok = p.IntersectSphere(NewSphere(rl.Vector3{X: 4, Y: 2, Z: -2}, 0.4))
	assert.False(t, ok)
}

func TestEmptyPartitionReportsNothing(t *testing.T) {
	var nilPartition *Partition
	for _, p := range []*Partition{NewPartition(), nilPartition} {
		_, ok := p.IntersectSphere(NewSphere(rl.Vector3{}, 1))
		assert.False(t, ok)
		_, ok = p.IntersectCapsule(NewCapsule(rl.Vector3{}, rl.Vector3{Y: 1}, 1))
		assert.False(t, ok)
		_, ok = p.Raycast(rl.NewRay(rl.Vector3{Y: 1}, rl.Vector3{Y: -1}), 10)
		assert.False(t, ok)
	}
}

func TestInsertMatchesRebuild(t *testing.T) {
	floor := createTestFloor(t, 10)
	wall := NewBoxMesh("wall", rl.Vector3{Z: -5}, rl.Vector3{X: 4, Y: 2, Z: 1}, rl.Vector3{})

	incremental := NewPartition()
	incremental.Insert(floor.Triangles)
	incremental.Insert(wall.Triangles)

	rebuilt := BuildPartition(floor.Triangles, wall.Triangles)

	assert.Equal(t, rebuilt.TriangleCount(), incremental.TriangleCount())
	assert.Equal(t, rebuilt.Fingerprint(), incremental.Fingerprint())

	other := BuildPartition(wall.Triangles, floor.Triangles)
	assert.NotEqual(t, rebuilt.Fingerprint(), other.Fingerprint())
}

func TestCloneIsIndependent(t *testing.T) {
	p := BuildPartition(createTestFloor(t, 10).Triangles)
	before := p.Fingerprint()

	c := p.Clone()
	c.Insert(NewBoxMesh("box", rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{}).Triangles)

	assert.Equal(t, 2, p.TriangleCount())
	assert.Equal(t, 14, c.TriangleCount())
	assert.Equal(t, before, p.Fingerprint())
}

func TestRaycastHitsNearestTriangle(t *testing.T) {
	floor := createTestFloor(t, 10)
	box := NewBoxMesh("box", rl.Vector3{X: 3, Y: 1, Z: -3}, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{})
	p := BuildPartition(floor.Triangles, box.Triangles)

	hit, ok := p.Raycast(rl.NewRay(rl.Vector3{X: 3, Y: 5, Z: -3}, rl.Vector3{Y: -1}), 100)
	require.True(t, ok)
	assert.InDelta(t, 1.5, hit.Point.Y, 1e-4)
	assert.InDelta(t, 3.5, hit.Distance, 1e-4)

	hit, ok = p.Raycast(rl.NewRay(rl.Vector3{X: -3, Y: 5, Z: 3}, rl.Vector3{Y: -1}), 100)
	require.True(t, ok)
	assert.InDelta(t, 0, hit.Point.Y, 1e-4)

	_, ok = p.Raycast(rl.NewRay(rl.Vector3{X: -3, Y: 5, Z: 3}, rl.Vector3{Y: -1}), 2)
	assert.False(t, ok)
}

func TestClosestPointsSegmentSegment(t *testing.T) {
	a, b := closestPointsSegmentSegment(
		rl.Vector3{X: -1}, rl.Vector3{X: 1},
		rl.Vector3{Y: 1, Z: -1}, rl.Vector3{Y: 1, Z: 1},
	)
	assert.InDelta(t, 0, rl.Vector3Length(a), 1e-6)
	assert.InDelta(t, 1, b.Y, 1e-6)
	assert.InDelta(t, 0, b.Z, 1e-6)
}

func TestSegmentCrossingTriangle(t *testing.T) {
	tri := NewTriangle(rl.Vector3{X: -1, Z: -1}, rl.Vector3{X: 0, Z: 1}, rl.Vector3{X: 1, Z: -1})
	s, q := closestSegmentTriangle(rl.Vector3{Y: -1}, rl.Vector3{Y: 1}, &tri)
	assert.InDelta(t, 0, rl.Vector3Distance(s, q), 1e-6)
	assert.InDelta(t, 0, s.Y, 1e-6)
}

// createTestBoxGrid scatters non-overlapping boxes, each at least one unit
// thick, on a 4 unit grid.
func createTestBoxGrid(rng *rand.Rand, n int) []Triangle {
	var tris []Triangle
	for x := 0; x < n; x++ {
		for z := 0; z < n; z++ {
			size := rl.Vector3{X: 1 + rng.Float32(), Y: 1 + rng.Float32(), Z: 1 + rng.Float32()}
			center := rl.Vector3{X: float32(x) * 4, Y: rng.Float32() * 2, Z: float32(z) * 4}
			rotation := rl.Vector3{Y: rng.Float32() * 90}
			tris = append(tris, NewBoxMesh("box", center, size, rotation).Triangles...)
		}
	}
	return tris
}

func TestPartitionAgreesWithSoup(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tris := createTestBoxGrid(rng, 6)
	bvh := BuildPartition(tris)
	soup := Soup(tris)

	hits := 0
	for i := 0; i < 2000; i++ {
		s := NewSphere(rl.Vector3{
			X: rng.Float32()*24 - 2,
			Y: rng.Float32()*4 - 1,
			Z: rng.Float32()*24 - 2,
		}, 0.3)
		_, want := soup.IntersectSphere(s)
		_, got := bvh.IntersectSphere(s)
		require.Equal(t, want, got, "sphere at %v", s.Center)
		if got {
			hits++
		}
	}
	assert.Greater(t, hits, 0)
}
