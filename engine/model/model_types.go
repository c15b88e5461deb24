package model

// Mesh is an indexed triangle list ready to be packed into vertex and index buffers.
type Mesh struct {
	// Name is the mesh identifier.
	Name string

	// Vertices are the mesh vertices.
	Vertices []GPUVertex

	// Indices are the triangle indices (32-bit).
	Indices []uint32

	// BoundingMin is the minimum corner of the axis-aligned bounding box.
	BoundingMin [3]float32

	// BoundingMax is the maximum corner of the axis-aligned bounding box.
	BoundingMax [3]float32
}

// VertexData returns the packed vertex buffer payload.
func (m Mesh) VertexData() []byte {
	return MarshalVertices(m.Vertices)
}

// IndexData returns the packed index buffer payload.
func (m Mesh) IndexData() []byte {
	return MarshalIndices(m.Indices)
}

// cube faces, four corners each in clockwise order seen from outside (left-handed, y up)
var cubeFaces = [6][4][3]float32{
	{{-1, -1, -1}, {-1, +1, -1}, {+1, +1, -1}, {+1, -1, -1}}, // -Z
	{{+1, -1, +1}, {+1, +1, +1}, {-1, +1, +1}, {-1, -1, +1}}, // +Z
	{{-1, -1, +1}, {-1, +1, +1}, {-1, +1, -1}, {-1, -1, -1}}, // -X
	{{+1, -1, -1}, {+1, +1, -1}, {+1, +1, +1}, {+1, -1, +1}}, // +X
	{{-1, +1, -1}, {-1, +1, +1}, {+1, +1, +1}, {+1, +1, -1}}, // +Y
	{{-1, -1, +1}, {-1, -1, -1}, {+1, -1, -1}, {+1, -1, +1}}, // -Y
}

var cubeFaceUVs = [4][2]float32{{0, 1}, {0, 0}, {1, 0}, {1, 1}}

// CubeIndexCount is the number of indices in the cube mesh: 6 faces, 2 triangles each.
const CubeIndexCount = 36

// NewCubeMesh builds the textured cube spanning [-1, 1] on every axis.
// Each face has its own four vertices so every face maps the full texture.
//
// Returns:
//   - Mesh: 24 vertices and 36 indices
func NewCubeMesh() Mesh {
	m := Mesh{
		Name:        "cube",
		Vertices:    make([]GPUVertex, 0, len(cubeFaces)*4),
		Indices:     make([]uint32, 0, CubeIndexCount),
		BoundingMin: [3]float32{-1, -1, -1},
		BoundingMax: [3]float32{1, 1, 1},
	}
	for f, face := range cubeFaces {
		base := uint32(f * 4)
		for c, pos := range face {
			m.Vertices = append(m.Vertices, GPUVertex{Position: pos, UV: cubeFaceUVs[c]})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}
