package physics

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Querier answers contact queries against collision geometry.
type Querier interface {
	IntersectCapsule(c Capsule) (Contact, bool)
	IntersectSphere(s Sphere) (Contact, bool)
}

// bvhNode is a node in the bounding volume hierarchy
type bvhNode struct {
	bounds    AABB
	left      *bvhNode
	right     *bvhNode
	triangles []int // indices into the triangle array (only for leaf nodes)
}

// Partition is a triangle BVH over world-space collision geometry.
// A Partition is not safe for concurrent mutation; callers that share one
// publish finished partitions and treat them as read-only.
type Partition struct {
	triangles []Triangle
	root      *bvhNode
}

func NewPartition() *Partition {
	return &Partition{}
}

// BuildPartition rebuilds a partition from scratch out of the given triangle sets.
func BuildPartition(sets ...[]Triangle) *Partition {
	p := &Partition{}
	for _, set := range sets {
		p.triangles = append(p.triangles, set...)
	}
	p.build()
	return p
}

// Insert adds triangles to the partition and refreshes the hierarchy.
func (p *Partition) Insert(tris []Triangle) {
	if len(tris) == 0 {
		return
	}
	p.triangles = append(p.triangles, tris...)
	p.build()
}

// Clone returns an independent copy that can be modified without touching p.
func (p *Partition) Clone() *Partition {
	c := &Partition{triangles: make([]Triangle, len(p.triangles))}
	copy(c.triangles, p.triangles)
	c.build()
	return c
}

func (p *Partition) TriangleCount() int {
	return len(p.triangles)
}

// Bounds returns the AABB of all geometry, or an empty box.
func (p *Partition) Bounds() AABB {
	if p == nil || p.root == nil {
		return EmptyAABB()
	}
	return p.root.bounds
}

// Triangles returns the world-space triangles in insertion order.
func (p *Partition) Triangles() []Triangle {
	return p.triangles
}

// build constructs a bounding volume hierarchy for fast queries
func (p *Partition) build() {
	p.root = nil
	if len(p.triangles) == 0 {
		return
	}

	indices := make([]int, len(p.triangles))
	for i := range indices {
		indices[i] = i
	}
	p.root = p.buildNode(indices, 0)
}

func (p *Partition) buildNode(indices []int, depth int) *bvhNode {
	node := &bvhNode{bounds: p.computeBounds(indices)}

	if len(indices) <= 4 || depth > 20 {
		node.triangles = indices
		return node
	}

	// Find longest axis
	size := node.bounds.Size()
	axis := 0
	if size.Y > size.X {
		axis = 1
	}
	if size.Z > getAxisValue(size, axis) {
		axis = 2
	}

	mid := p.partitionTriangles(indices, axis)
	if mid == 0 || mid == len(indices) {
		node.triangles = indices
		return node
	}

	node.left = p.buildNode(indices[:mid], depth+1)
	node.right = p.buildNode(indices[mid:], depth+1)
	return node
}

func (p *Partition) computeBounds(indices []int) AABB {
	bounds := EmptyAABB()
	for _, idx := range indices {
		bounds = bounds.Union(p.triangles[idx].Bounds())
	}
	return bounds
}

// partitionTriangles splits indices around the mean centroid on axis.
func (p *Partition) partitionTriangles(indices []int, axis int) int {
	center := float32(0)
	for _, idx := range indices {
		center += getAxisValue(p.triangles[idx].Centroid(), axis)
	}
	center /= float32(len(indices))

	left := 0
	right := len(indices) - 1
	for left <= right {
		if getAxisValue(p.triangles[indices[left]].Centroid(), axis) < center {
			left++
		} else {
			indices[left], indices[right] = indices[right], indices[left]
			right--
		}
	}
	return left
}

// query appends the triangle indices of every leaf overlapping box.
func (p *Partition) query(node *bvhNode, box AABB, out []int) []int {
	if node == nil || !node.bounds.Intersects(box) {
		return out
	}
	if node.triangles != nil {
		return append(out, node.triangles...)
	}
	out = p.query(node.left, box, out)
	return p.query(node.right, box, out)
}

// IntersectSphere pushes a copy of s out of every overlapping triangle in turn
// and reports the total displacement as one contact.
func (p *Partition) IntersectSphere(s Sphere) (Contact, bool) {
	if p == nil || p.root == nil {
		return Contact{}, false
	}

	center := s.Center
	hit := false
	for _, idx := range p.query(p.root, s.Bounds(), nil) {
		if n, depth, ok := sphereTriangle(center, s.Radius, &p.triangles[idx]); ok {
			center = rl.Vector3Add(center, rl.Vector3Scale(n, depth))
			hit = true
		}
	}
	if !hit {
		return Contact{}, false
	}
	return contactFromDisplacement(rl.Vector3Subtract(center, s.Center))
}

// IntersectCapsule is the capsule counterpart of IntersectSphere.
func (p *Partition) IntersectCapsule(c Capsule) (Contact, bool) {
	if p == nil || p.root == nil {
		return Contact{}, false
	}

	moved := c
	hit := false
	for _, idx := range p.query(p.root, c.Bounds(), nil) {
		if n, depth, ok := capsuleTriangle(moved, &p.triangles[idx]); ok {
			moved.Translate(rl.Vector3Scale(n, depth))
			hit = true
		}
	}
	if !hit {
		return Contact{}, false
	}
	return contactFromDisplacement(rl.Vector3Subtract(moved.Start, c.Start))
}

// RaycastHit is the closest triangle struck by a ray.
type RaycastHit struct {
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// Raycast returns the nearest hit within maxDistance.
func (p *Partition) Raycast(ray rl.Ray, maxDistance float32) (RaycastHit, bool) {
	if p == nil || p.root == nil {
		return RaycastHit{}, false
	}
	return raycastNode(p, p.root, ray, maxDistance)
}

func raycastNode(p *Partition, node *bvhNode, ray rl.Ray, maxDistance float32) (RaycastHit, bool) {
	if node == nil {
		return RaycastHit{}, false
	}
	if box := rl.GetRayCollisionBox(ray, node.bounds.BoundingBox()); !box.Hit && !containsPoint(node.bounds, ray.Position) {
		return RaycastHit{}, false
	}
	if node.triangles != nil {
		best := RaycastHit{Distance: maxDistance}
		found := false
		for _, idx := range node.triangles {
			if hit, ok := RaycastTriangle(ray, &p.triangles[idx]); ok && hit.Distance < best.Distance {
				best = hit
				found = true
			}
		}
		return best, found
	}

	left, lok := raycastNode(p, node.left, ray, maxDistance)
	if lok {
		maxDistance = left.Distance
	}
	right, rok := raycastNode(p, node.right, ray, maxDistance)
	if rok {
		return right, true
	}
	return left, lok
}

// RaycastTriangle tests a ray against a single triangle from either side.
func RaycastTriangle(ray rl.Ray, tri *Triangle) (RaycastHit, bool) {
	col := rl.GetRayCollisionTriangle(ray, tri.V0, tri.V1, tri.V2)
	if !col.Hit {
		return RaycastHit{}, false
	}
	return RaycastHit{Point: col.Point, Normal: col.Normal, Distance: col.Distance}, true
}

func containsPoint(a AABB, p rl.Vector3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// Fingerprint hashes the triangle soup in insertion order. Two partitions
// built from the same geometry produce the same value.
func (p *Partition) Fingerprint() uint64 {
	h := xxhash.New()
	var buf [4]byte
	write := func(f float32) {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(f))
		_, _ = h.Write(buf[:])
	}
	for _, tri := range p.triangles {
		for _, v := range [3]rl.Vector3{tri.V0, tri.V1, tri.V2} {
			write(v.X)
			write(v.Y)
			write(v.Z)
		}
	}
	return h.Sum64()
}
