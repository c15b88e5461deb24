package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct for the mobile pipeline.
// Matches GPUVertex layout exactly (20 bytes, tightly packed).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertex is the GPU representation of a single textured mesh vertex.
// Matches the WGSL VertexInput struct layout exactly (see GPUVertexSource).
// Size: 20 bytes (no padding, vertex buffers are not subject to std430 alignment).
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	UV       [2]float32 // offset 12: texture coordinate (8 bytes)
}

// GPUVertexSize is the stride of one GPUVertex in a vertex buffer.
const GPUVertexSize = 20

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 20-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, GPUVertexSize)
	g.marshalInto(buf)
	return buf
}

func (g *GPUVertex) marshalInto(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.UV[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.UV[1]))
}

// MarshalVertices packs a vertex slice into one contiguous vertex buffer payload.
//
// Parameters:
//   - vertices: the vertices to pack
//
// Returns:
//   - []byte: len(vertices) * GPUVertexSize bytes
func MarshalVertices(vertices []GPUVertex) []byte {
	buf := make([]byte, len(vertices)*GPUVertexSize)
	for i := range vertices {
		vertices[i].marshalInto(buf[i*GPUVertexSize:])
	}
	return buf
}

// MarshalIndices packs 32-bit triangle indices into an index buffer payload.
//
// Parameters:
//   - indices: the indices to pack
//
// Returns:
//   - []byte: len(indices) * 4 bytes
func MarshalIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}
