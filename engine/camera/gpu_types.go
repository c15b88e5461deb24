package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-mobile/common"
)

// GPUViewportConstantsSource is the canonical WGSL definition of the ViewportConstants struct.
// Matches GPUViewportConstants layout exactly (128 bytes).
//
//go:embed assets/viewport_constants.wgsl
var GPUViewportConstantsSource string

// GPUViewportConstants is the per-viewport uniform block: the combined view-projection and the global rotation.
// Size: 128 bytes.
type GPUViewportConstants struct {
	ViewProj [16]float32 // offset  0: view, then pretransform, then projection (mat4x4<f32>)
	Rotation [16]float32 // offset 64: global scene rotation (mat4x4<f32>)
}

// NewViewportConstants builds the constants for one viewport.
//
// Parameters:
//   - view: the viewport camera's view matrix
//   - pretransform: the surface pretransform
//   - projection: the shared projection matrix
//   - rotation: the global scene rotation
//
// Returns:
//   - GPUViewportConstants: the constants ready to marshal
func NewViewportConstants(view, pretransform, projection, rotation common.Mat4) GPUViewportConstants {
	return GPUViewportConstants{
		ViewProj: common.Chain(view, pretransform, projection),
		Rotation: rotation,
	}
}

// Size returns the size of the GPUViewportConstants struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (128)
func (g *GPUViewportConstants) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUViewportConstants struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUViewportConstants) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ViewProj[i]))
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Rotation[i]))
	}
	return buf
}
