package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Triangle represents a single triangle with precomputed normal
type Triangle struct {
	V0, V1, V2 rl.Vector3
	Normal     rl.Vector3
}

func NewTriangle(v0, v1, v2 rl.Vector3) Triangle {
	normal := rl.Vector3CrossProduct(rl.Vector3Subtract(v1, v0), rl.Vector3Subtract(v2, v0))
	return Triangle{V0: v0, V1: v1, V2: v2, Normal: rl.Vector3Normalize(normal)}
}

// Transform returns the triangle moved into the space described by m.
func (t Triangle) Transform(m rl.Matrix) Triangle {
	return NewTriangle(
		rl.Vector3Transform(t.V0, m),
		rl.Vector3Transform(t.V1, m),
		rl.Vector3Transform(t.V2, m),
	)
}

func (t Triangle) Bounds() AABB {
	return AABB{
		Min: rl.Vector3Min(rl.Vector3Min(t.V0, t.V1), t.V2),
		Max: rl.Vector3Max(rl.Vector3Max(t.V0, t.V1), t.V2),
	}
}

func (t Triangle) Centroid() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(rl.Vector3Add(t.V0, t.V1), t.V2), 1.0/3.0)
}

// degenerate triangles have no area and no usable normal.
func (t Triangle) degenerate() bool {
	return rl.Vector3LengthSqr(t.Normal) < 0.5
}

// sphereTriangle tests sphere vs triangle and returns the push-out direction and depth.
func sphereTriangle(center rl.Vector3, radius float32, tri *Triangle) (rl.Vector3, float32, bool) {
	closest := closestPointOnTriangle(center, tri.V0, tri.V1, tri.V2)
	return pushOut(center, closest, radius, tri)
}

// capsuleTriangle tests capsule vs triangle using the closest points between
// the capsule segment and the triangle.
func capsuleTriangle(c Capsule, tri *Triangle) (rl.Vector3, float32, bool) {
	onSegment, onTriangle := closestSegmentTriangle(c.Start, c.End, tri)
	n, depth, ok := pushOut(onSegment, onTriangle, c.Radius, tri)
	if !ok {
		return n, depth, ok
	}
	// Segment pierces the face: push toward the side the capsule center is on.
	if depth >= c.Radius && rl.Vector3DotProduct(rl.Vector3Subtract(c.Center(), tri.V0), n) < 0 {
		n = rl.Vector3Negate(n)
	}
	return n, depth, true
}

func pushOut(point, closest rl.Vector3, radius float32, tri *Triangle) (rl.Vector3, float32, bool) {
	diff := rl.Vector3Subtract(point, closest)
	distSq := rl.Vector3DotProduct(diff, diff)
	if distSq >= radius*radius {
		return rl.Vector3{}, 0, false
	}

	dist := float32(math.Sqrt(float64(distSq)))
	if dist < 0.0001 {
		// Point is on the triangle, push along normal
		if tri.degenerate() {
			return rl.Vector3{}, 0, false
		}
		return tri.Normal, radius, true
	}
	return rl.Vector3Scale(diff, 1.0/dist), radius - dist, true
}

// closestSegmentTriangle finds the closest pair of points between segment ab
// and a triangle. When the segment crosses the face both points coincide.
func closestSegmentTriangle(a, b rl.Vector3, tri *Triangle) (rl.Vector3, rl.Vector3) {
	if !tri.degenerate() {
		ab := rl.Vector3Subtract(b, a)
		denom := rl.Vector3DotProduct(tri.Normal, ab)
		if abs(denom) > epsilon {
			t := rl.Vector3DotProduct(tri.Normal, rl.Vector3Subtract(tri.V0, a)) / denom
			if t >= 0 && t <= 1 {
				p := rl.Vector3Add(a, rl.Vector3Scale(ab, t))
				q := closestPointOnTriangle(p, tri.V0, tri.V1, tri.V2)
				if rl.Vector3DistanceSqr(p, q) < 1e-10 {
					return p, q
				}
			}
		}
	}

	bestSeg := a
	bestTri := closestPointOnTriangle(a, tri.V0, tri.V1, tri.V2)
	best := rl.Vector3DistanceSqr(bestSeg, bestTri)

	consider := func(s, t rl.Vector3) {
		if d := rl.Vector3DistanceSqr(s, t); d < best {
			best, bestSeg, bestTri = d, s, t
		}
	}

	consider(b, closestPointOnTriangle(b, tri.V0, tri.V1, tri.V2))
	consider(closestPointsSegmentSegment(a, b, tri.V0, tri.V1))
	consider(closestPointsSegmentSegment(a, b, tri.V1, tri.V2))
	consider(closestPointsSegmentSegment(a, b, tri.V2, tri.V0))
	return bestSeg, bestTri
}

// closestPointsSegmentSegment returns the closest points on segments p1q1 and p2q2.
func closestPointsSegmentSegment(p1, q1, p2, q2 rl.Vector3) (rl.Vector3, rl.Vector3) {
	d1 := rl.Vector3Subtract(q1, p1)
	d2 := rl.Vector3Subtract(q2, p2)
	r := rl.Vector3Subtract(p1, p2)
	a := rl.Vector3DotProduct(d1, d1)
	e := rl.Vector3DotProduct(d2, d2)
	f := rl.Vector3DotProduct(d2, r)

	var s, t float32
	switch {
	case a <= epsilon && e <= epsilon:
		return p1, p2
	case a <= epsilon:
		t = clamp(f/e, 0, 1)
	default:
		c := rl.Vector3DotProduct(d1, r)
		if e <= epsilon {
			s = clamp(-c/a, 0, 1)
			break
		}
		b := rl.Vector3DotProduct(d1, d2)
		if denom := a*e - b*b; denom != 0 {
			s = clamp((b*f-c*e)/denom, 0, 1)
		}
		t = (b*s + f) / e
		if t < 0 {
			t = 0
			s = clamp(-c/a, 0, 1)
		} else if t > 1 {
			t = 1
			s = clamp((b-c)/a, 0, 1)
		}
	}
	return rl.Vector3Add(p1, rl.Vector3Scale(d1, s)), rl.Vector3Add(p2, rl.Vector3Scale(d2, t))
}

// closestPointOnTriangle finds the closest point on a triangle to point p
func closestPointOnTriangle(p, a, b, c rl.Vector3) rl.Vector3 {
	ab := rl.Vector3Subtract(b, a)
	ac := rl.Vector3Subtract(c, a)
	ap := rl.Vector3Subtract(p, a)

	d1 := rl.Vector3DotProduct(ab, ap)
	d2 := rl.Vector3DotProduct(ac, ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := rl.Vector3Subtract(p, b)
	d3 := rl.Vector3DotProduct(ab, bp)
	d4 := rl.Vector3DotProduct(ac, bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return rl.Vector3Add(a, rl.Vector3Scale(ab, v))
	}

	cp := rl.Vector3Subtract(p, c)
	d5 := rl.Vector3DotProduct(ab, cp)
	d6 := rl.Vector3DotProduct(ac, cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return rl.Vector3Add(a, rl.Vector3Scale(ac, w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return rl.Vector3Add(b, rl.Vector3Scale(rl.Vector3Subtract(c, b), w))
	}

	// Inside face region
	denom := 1.0 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return rl.Vector3Add(a, rl.Vector3Add(rl.Vector3Scale(ab, v), rl.Vector3Scale(ac, w)))
}
