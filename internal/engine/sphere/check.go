package sphere

import (
	"fmt"

	"github.com/Faultbox/sunsphere/pkg/math"
)

// DefaultTolerance is the float tolerance Check uses for unit length and
// normal comparisons.
const DefaultTolerance = 1e-5

// Check verifies the mesh invariants and returns the first violation found.
// Triangles fanning into a pole have two coincident corners and are only
// checked in texture space.
func (m *Mesh) Check(tolerance float32) error {
	p := m.precision
	stride := p + 1

	if want := stride * stride; len(m.vertices) != want {
		return fmt.Errorf("vertex count %d, want %d", len(m.vertices), want)
	}
	if len(m.normals) != len(m.vertices) || len(m.texCoords) != len(m.vertices) {
		return fmt.Errorf("attribute counts differ: %d vertices, %d normals, %d texcoords",
			len(m.vertices), len(m.normals), len(m.texCoords))
	}
	if want := 6 * p * p; len(m.indices) != want {
		return fmt.Errorf("index count %d, want %d", len(m.indices), want)
	}

	for i, v := range m.vertices {
		if l := v.Length(); l < 1-tolerance || l > 1+tolerance {
			return fmt.Errorf("vertex %d: length %v, want 1", i, l)
		}
		if !m.normals[i].ApproxEqual(v, tolerance) {
			return fmt.Errorf("vertex %d: normal %v differs from position %v", i, m.normals[i], v)
		}
		if !m.texCoords[i].InUnitSquare() {
			return fmt.Errorf("vertex %d: texcoord %v outside [0,1]", i, m.texCoords[i])
		}
	}

	for i, idx := range m.indices {
		if int(idx) >= len(m.vertices) {
			return fmt.Errorf("index %d: %d out of range [0, %d)", i, idx, len(m.vertices))
		}
	}

	for t := 0; t < m.NumTriangles(); t++ {
		tri := m.Triangle(t)
		if area := m.uvArea(tri); area <= 0 {
			return fmt.Errorf("triangle %d %v: texture-space winding is clockwise (area %v)", t, tri, area)
		}
		if m.touchesPoleTwice(tri, stride) {
			continue
		}
		if facing := m.outwardFacing(tri); facing < -tolerance {
			return fmt.Errorf("triangle %d %v: faces inward (%v)", t, tri, facing)
		}
	}

	return nil
}

// uvArea returns twice the signed texture-space area of a triangle.
func (m *Mesh) uvArea(tri [3]uint32) float32 {
	a, b, c := m.texCoords[tri[0]], m.texCoords[tri[1]], m.texCoords[tri[2]]
	e1, e2 := b.Sub(a), c.Sub(a)
	return e1.X*e2.Y - e1.Y*e2.X
}

// outwardFacing returns the triangle's face normal dotted with the
// direction from the origin to its centroid, normalized by the normal's
// length. Positive means counter-clockwise seen from outside.
func (m *Mesh) outwardFacing(tri [3]uint32) float32 {
	a, b, c := m.vertices[tri[0]], m.vertices[tri[1]], m.vertices[tri[2]]
	n := b.Sub(a).Cross(c.Sub(a))
	l := n.Length()
	if l == 0 {
		return 0
	}
	centroid := a.Add(b).Add(c).Scale(1.0 / 3.0)
	return n.Scale(1 / l).Dot(centroid)
}

func (m *Mesh) touchesPoleTwice(tri [3]uint32, stride int) bool {
	var south, north int
	for _, idx := range tri {
		switch int(idx) / stride {
		case 0:
			south++
		case m.precision:
			north++
		}
	}
	return south >= 2 || north >= 2
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (m *Mesh) Bounds() (lo, hi math.Vec3) {
	lo = math.Vec3{X: 1e10, Y: 1e10, Z: 1e10}
	hi = math.Vec3{X: -1e10, Y: -1e10, Z: -1e10}
	for _, v := range m.vertices {
		lo = math.Vec3{X: min(lo.X, v.X), Y: min(lo.Y, v.Y), Z: min(lo.Z, v.Z)}
		hi = math.Vec3{X: max(hi.X, v.X), Y: max(hi.Y, v.Y), Z: max(hi.Z, v.Z)}
	}
	return lo, hi
}
