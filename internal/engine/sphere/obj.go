package sphere

import (
	"bufio"
	"fmt"
	"io"
)

// WriteOBJ writes the mesh as a Wavefront OBJ object with positions,
// texture coordinates and normals sharing one index space.
func (m *Mesh) WriteOBJ(w io.Writer, name string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# sphere precision=%d vertices=%d triangles=%d\n",
		m.precision, m.NumVertices(), m.NumTriangles())
	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}

	for _, v := range m.vertices {
		fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", v.X, v.Y, v.Z)
	}
	for _, t := range m.texCoords {
		fmt.Fprintf(bw, "vt %.6f %.6f\n", t.X, t.Y)
	}
	for _, n := range m.normals {
		fmt.Fprintf(bw, "vn %.6f %.6f %.6f\n", n.X, n.Y, n.Z)
	}

	// OBJ indices are 1-based.
	for t := 0; t < m.NumTriangles(); t++ {
		tri := m.Triangle(t)
		a, b, c := tri[0]+1, tri[1]+1, tri[2]+1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}

	return bw.Flush()
}
