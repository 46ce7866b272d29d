package sphere

import "fmt"

// Attribute component counts.
const (
	PositionSize = 3
	TexCoordSize = 2
	NormalSize   = 3
)

// VertexData holds flat attribute arrays ready for GPU upload.
// Indices is empty for expanded (non-indexed) data.
type VertexData struct {
	Positions []float32
	TexCoords []float32
	Normals   []float32
	Indices   []uint32
}

// Count returns the number of vertices described by the arrays.
func (d *VertexData) Count() int {
	return len(d.Positions) / PositionSize
}

// Indexed reports whether the data should be drawn with an element buffer.
func (d *VertexData) Indexed() bool {
	return len(d.Indices) > 0
}

// DrawCount returns the number of elements a draw call must cover.
func (d *VertexData) DrawCount() int {
	if d.Indexed() {
		return len(d.Indices)
	}
	return d.Count()
}

// Validate checks attribute strides, array alignment and index bounds.
func (d *VertexData) Validate() error {
	if len(d.Positions)%PositionSize != 0 {
		return fmt.Errorf("positions: length %d not a multiple of %d", len(d.Positions), PositionSize)
	}
	n := d.Count()
	if len(d.TexCoords) != n*TexCoordSize {
		return fmt.Errorf("texcoords: length %d, want %d", len(d.TexCoords), n*TexCoordSize)
	}
	if len(d.Normals) != n*NormalSize {
		return fmt.Errorf("normals: length %d, want %d", len(d.Normals), n*NormalSize)
	}
	if len(d.Indices)%3 != 0 {
		return fmt.Errorf("indices: length %d not a multiple of 3", len(d.Indices))
	}
	for i, idx := range d.Indices {
		if int(idx) >= n {
			return fmt.Errorf("indices[%d] = %d out of range [0, %d)", i, idx, n)
		}
	}
	return nil
}

// Flatten returns one attribute entry per unique vertex plus the index list,
// for drawing with glDrawElements.
func (m *Mesh) Flatten() VertexData {
	n := len(m.vertices)
	d := VertexData{
		Positions: make([]float32, 0, n*PositionSize),
		TexCoords: make([]float32, 0, n*TexCoordSize),
		Normals:   make([]float32, 0, n*NormalSize),
		Indices:   m.Indices(),
	}
	for i := 0; i < n; i++ {
		d.appendVertex(m, uint32(i))
	}
	return d
}

// Expand returns one attribute entry per index and no index list, for
// drawing with glDrawArrays.
func (m *Mesh) Expand() VertexData {
	n := len(m.indices)
	d := VertexData{
		Positions: make([]float32, 0, n*PositionSize),
		TexCoords: make([]float32, 0, n*TexCoordSize),
		Normals:   make([]float32, 0, n*NormalSize),
	}
	for _, idx := range m.indices {
		d.appendVertex(m, idx)
	}
	return d
}

func (d *VertexData) appendVertex(m *Mesh, idx uint32) {
	v, t, n := m.vertices[idx], m.texCoords[idx], m.normals[idx]
	d.Positions = append(d.Positions, v.X, v.Y, v.Z)
	d.TexCoords = append(d.TexCoords, t.X, t.Y)
	d.Normals = append(d.Normals, n.X, n.Y, n.Z)
}
