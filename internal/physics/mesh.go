package physics

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ColliderMesh is low-detail local-space geometry used only for collision.
type ColliderMesh struct {
	Name      string
	Triangles []Triangle
}

// NewIndexedMesh builds a mesh from a vertex list and triangle indices.
func NewIndexedMesh(name string, vertices []rl.Vector3, indices []int) (ColliderMesh, error) {
	if len(indices)%3 != 0 {
		return ColliderMesh{}, fmt.Errorf("mesh %q: index count %d is not a multiple of 3", name, len(indices))
	}
	mesh := ColliderMesh{Name: name, Triangles: make([]Triangle, 0, len(indices)/3)}
	for i := 0; i < len(indices); i += 3 {
		for _, idx := range indices[i : i+3] {
			if idx < 0 || idx >= len(vertices) {
				return ColliderMesh{}, fmt.Errorf("mesh %q: index %d out of range", name, idx)
			}
		}
		mesh.Triangles = append(mesh.Triangles, NewTriangle(vertices[indices[i]], vertices[indices[i+1]], vertices[indices[i+2]]))
	}
	return mesh, nil
}

// NewBoxMesh builds the twelve outward-facing triangles of a box centered on center.
func NewBoxMesh(name string, center, size, rotation rl.Vector3) ColliderMesh {
	h := rl.Vector3Scale(size, 0.5)
	corner := func(sx, sy, sz float32) rl.Vector3 {
		return rl.Vector3{X: sx * h.X, Y: sy * h.Y, Z: sz * h.Z}
	}
	faces := [6][4]rl.Vector3{
		{corner(-1, 1, -1), corner(-1, 1, 1), corner(1, 1, 1), corner(1, 1, -1)},     // top
		{corner(-1, -1, -1), corner(1, -1, -1), corner(1, -1, 1), corner(-1, -1, 1)}, // bottom
		{corner(1, -1, -1), corner(1, 1, -1), corner(1, 1, 1), corner(1, -1, 1)},     // right
		{corner(-1, -1, -1), corner(-1, -1, 1), corner(-1, 1, 1), corner(-1, 1, -1)}, // left
		{corner(-1, -1, 1), corner(1, -1, 1), corner(1, 1, 1), corner(-1, 1, 1)},     // front
		{corner(-1, -1, -1), corner(-1, 1, -1), corner(1, 1, -1), corner(1, -1, -1)}, // back
	}

	m := TransformMatrix(center, rotation, rl.Vector3{X: 1, Y: 1, Z: 1})
	mesh := ColliderMesh{Name: name, Triangles: make([]Triangle, 0, 12)}
	for _, f := range faces {
		for _, tri := range [2]Triangle{
			outward(f[0], f[1], f[2]),
			outward(f[0], f[2], f[3]),
		} {
			mesh.Triangles = append(mesh.Triangles, tri.Transform(m))
		}
	}
	return mesh
}

// outward winds a triangle of a box centered on the origin so its normal faces away from it.
func outward(a, b, c rl.Vector3) Triangle {
	tri := NewTriangle(a, b, c)
	if rl.Vector3DotProduct(tri.Normal, tri.Centroid()) < 0 {
		return NewTriangle(a, c, b)
	}
	return tri
}

// Merge combines meshes into one under a new name.
func Merge(name string, meshes ...ColliderMesh) ColliderMesh {
	out := ColliderMesh{Name: name}
	for _, m := range meshes {
		out.Triangles = append(out.Triangles, m.Triangles...)
	}
	return out
}

// Transformed returns the mesh triangles placed by position and Euler rotation in degrees.
func (m ColliderMesh) Transformed(position, rotation rl.Vector3) []Triangle {
	mat := TransformMatrix(position, rotation, rl.Vector3{X: 1, Y: 1, Z: 1})
	out := make([]Triangle, len(m.Triangles))
	for i, tri := range m.Triangles {
		out[i] = tri.Transform(mat)
	}
	return out
}

func (m ColliderMesh) Bounds() AABB {
	bounds := EmptyAABB()
	for _, tri := range m.Triangles {
		bounds = bounds.Union(tri.Bounds())
	}
	return bounds
}

// TransformMatrix composes scale, XYZ Euler rotation in degrees and translation.
func TransformMatrix(position, rotation, scale rl.Vector3) rl.Matrix {
	scaleMatrix := rl.MatrixScale(scale.X, scale.Y, scale.Z)
	rotX := rl.MatrixRotateX(rotation.X * rl.Deg2rad)
	rotY := rl.MatrixRotateY(rotation.Y * rl.Deg2rad)
	rotZ := rl.MatrixRotateZ(rotation.Z * rl.Deg2rad)
	rotMatrix := rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)
	transMatrix := rl.MatrixTranslate(position.X, position.Y, position.Z)
	return rl.MatrixMultiply(rl.MatrixMultiply(scaleMatrix, rotMatrix), transMatrix)
}
