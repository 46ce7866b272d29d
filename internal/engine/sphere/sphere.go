// Package sphere generates latitude/longitude tessellated unit spheres.
//
// Vertices are laid out row-major: row i runs from the south pole (i=0) to
// the north pole (i=precision), column j runs once around the Y axis with
// the seam duplicated at j=precision. Poles are not collapsed, so every row
// has precision+1 vertices.
package sphere

import (
	gomath "math"

	"github.com/Faultbox/sunsphere/pkg/math"
)

// Accepted tessellation range. Values outside it are clamped.
// MaxPrecision is the largest grid whose (precision+1)^2 vertices are all
// addressable by uint32 indices.
const (
	MinPrecision = 1
	MaxPrecision = 1<<16 - 1
)

// ClampPrecision limits precision to [MinPrecision, MaxPrecision].
func ClampPrecision(precision int) int {
	return min(max(precision, MinPrecision), MaxPrecision)
}

// Mesh is an immutable sphere mesh. Build it with New.
type Mesh struct {
	precision int
	vertices  []math.Vec3
	normals   []math.Vec3
	texCoords []math.Vec2
	indices   []uint32
}

// New builds a sphere with the given number of latitude and longitude
// subdivisions. Precision is clamped with ClampPrecision, so New never fails.
func New(precision int) *Mesh {
	p := ClampPrecision(precision)
	stride := p + 1
	numVertices := stride * stride

	m := &Mesh{
		precision: p,
		vertices:  make([]math.Vec3, numVertices),
		normals:   make([]math.Vec3, numVertices),
		texCoords: make([]math.Vec2, numVertices),
		indices:   make([]uint32, 0, 6*p*p),
	}

	latStep := gomath.Pi / float64(p)
	lonStep := 2 * gomath.Pi / float64(p)

	for i := 0; i <= p; i++ {
		phi := -gomath.Pi/2 + float64(i)*latStep
		sinPhi, cosPhi := gomath.Sincos(phi)

		for j := 0; j <= p; j++ {
			theta := float64(j) * lonStep
			sinTheta, cosTheta := gomath.Sincos(theta)

			pos := math.Vec3{
				X: float32(cosPhi * sinTheta),
				Y: float32(sinPhi),
				Z: float32(cosPhi * cosTheta),
			}

			idx := i*stride + j
			m.vertices[idx] = pos
			m.normals[idx] = pos
			// j/p and i/p equal theta/2pi and phi/pi+0.5 but hit 0 and 1 exactly.
			m.texCoords[idx] = math.Vec2{
				X: float32(j) / float32(p),
				Y: float32(i) / float32(p),
			}
		}
	}

	// Both triangles wind counter-clockwise seen from outside: the
	// parameterization's d/dtheta x d/dphi points along the outward radius.
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			a := uint32(i*stride + j)     // (i, j)
			b := a + 1                    // (i, j+1)
			c := uint32((i+1)*stride + j) // (i+1, j)
			d := c + 1                    // (i+1, j+1)

			m.indices = append(m.indices,
				a, b, c,
				b, d, c,
			)
		}
	}

	return m
}

// Precision returns the tessellation the mesh was built with.
func (m *Mesh) Precision() int {
	return m.precision
}

// NumVertices returns (precision+1)^2.
func (m *Mesh) NumVertices() int {
	return len(m.vertices)
}

// NumIndices returns 6*precision^2.
func (m *Mesh) NumIndices() int {
	return len(m.indices)
}

// NumTriangles returns NumIndices()/3.
func (m *Mesh) NumTriangles() int {
	return len(m.indices) / 3
}

// Vertices returns a copy of the vertex positions.
func (m *Mesh) Vertices() []math.Vec3 {
	return append([]math.Vec3(nil), m.vertices...)
}

// Normals returns a copy of the vertex normals.
func (m *Mesh) Normals() []math.Vec3 {
	return append([]math.Vec3(nil), m.normals...)
}

// TexCoords returns a copy of the texture coordinates.
func (m *Mesh) TexCoords() []math.Vec2 {
	return append([]math.Vec2(nil), m.texCoords...)
}

// Indices returns a copy of the triangle index list.
func (m *Mesh) Indices() []uint32 {
	return append([]uint32(nil), m.indices...)
}

// Triangle returns the vertex indices of triangle n.
// It panics if n is out of range, like a slice index would.
func (m *Mesh) Triangle(n int) [3]uint32 {
	return [3]uint32{m.indices[3*n], m.indices[3*n+1], m.indices[3*n+2]}
}

// VertexIndex returns the flat vertex index of grid point (row, col).
func (m *Mesh) VertexIndex(row, col int) int {
	return row*(m.precision+1) + col
}
