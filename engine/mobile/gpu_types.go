package mobile

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUInstanceSource is the canonical WGSL definition of the InstanceInput struct.
// Matches GPUInstance layout exactly (68 bytes, tightly packed vertex attributes).
//
//go:embed assets/instance.wgsl
var GPUInstanceSource string

// GPUInstanceSize is the byte stride of one instance in the vertex buffer.
const GPUInstanceSize = 68

// GPUInstance is the tightly packed per-instance vertex layout.
// The shader reads the matrix as four vec4<f32> attributes at locations 2-5 and the type at location 6.
// Size: 68 bytes.
type GPUInstance struct {
	Transform  [16]float32 // offset  0: column-major model matrix
	ObjectType uint32      // offset 64: object type tag
}

// Size returns the size of the GPUInstance struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (68)
func (g *GPUInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUInstance struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUInstance) Marshal() []byte {
	buf := make([]byte, g.Size())
	g.put(buf)
	return buf
}

func (g *GPUInstance) put(buf []byte) {
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Transform[i]))
	}
	binary.LittleEndian.PutUint32(buf[64:], g.ObjectType)
}

// MarshalInstances packs records back to back for the instance buffer.
// The result is exactly GPUInstanceSize * len(records) bytes.
//
// Parameters:
//   - records: the records to pack
//
// Returns:
//   - []byte: the packed bytes, or nil for no records
func MarshalInstances(records []InstanceRecord) []byte {
	if len(records) == 0 {
		return nil
	}
	buf := make([]byte, GPUInstanceSize*len(records))
	for i, r := range records {
		g := GPUInstance{Transform: r.Transform, ObjectType: r.ObjectType}
		g.put(buf[i*GPUInstanceSize:])
	}
	return buf
}
