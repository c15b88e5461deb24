package common

import "github.com/chewxy/math32"

// Mat4 is a 4x4 float32 matrix stored in column-major order, matching the WGSL mat4x4<f32> layout.
// Vectors are treated as columns, so m.Mul(n) applies n first and m second. Use Then or Chain to
// compose transforms in the order they are applied.
type Mat4 [16]float32

// Identity4 returns the 4x4 identity matrix.
//
// Returns:
//   - Mat4: the identity matrix
func Identity4() Mat4 {
	return Mat4{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
}

// Translation returns a matrix translating by (x, y, z).
//
// Parameters:
//   - x, y, z: translation along each axis
//
// Returns:
//   - Mat4: the translation matrix
func Translation(x, y, z float32) Mat4 {
	m := Identity4()
	m[12], m[13], m[14] = x, y, z
	return m
}

// Scale returns a matrix scaling by (x, y, z).
//
// Parameters:
//   - x, y, z: scale factor along each axis
//
// Returns:
//   - Mat4: the scale matrix
func Scale(x, y, z float32) Mat4 {
	m := Identity4()
	m[0], m[5], m[10] = x, y, z
	return m
}

// UniformScale returns a matrix scaling all three axes by s.
//
// Parameters:
//   - s: the scale factor
//
// Returns:
//   - Mat4: the scale matrix
func UniformScale(s float32) Mat4 {
	return Scale(s, s, s)
}

// RotationX returns a right-handed rotation about the X axis (Y toward Z for positive angles).
//
// Parameters:
//   - angle: rotation in radians
//
// Returns:
//   - Mat4: the rotation matrix
func RotationX(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	m := Identity4()
	m[5], m[6] = c, s
	m[9], m[10] = -s, c
	return m
}

// RotationY returns a rotation about the Y axis (Z toward X for positive angles).
//
// Parameters:
//   - angle: rotation in radians
//
// Returns:
//   - Mat4: the rotation matrix
func RotationY(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	m := Identity4()
	m[0], m[2] = c, -s
	m[8], m[10] = s, c
	return m
}

// RotationZ returns a rotation about the Z axis (X toward Y for positive angles).
//
// Parameters:
//   - angle: rotation in radians
//
// Returns:
//   - Mat4: the rotation matrix
func RotationZ(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	m := Identity4()
	m[0], m[1] = c, s
	m[4], m[5] = -s, c
	return m
}

// Mul returns the matrix product m * n. Applied to a vector, n acts first.
//
// Parameters:
//   - n: right-hand matrix
//
// Returns:
//   - Mat4: the product
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	Mul4(out[:], m[:], n[:])
	return out
}

// Then returns the transform that applies m first and n second (n * m).
// Hierarchies read naturally with it: local.Then(parent).
//
// Parameters:
//   - n: the transform applied after m
//
// Returns:
//   - Mat4: the composed transform
func (m Mat4) Then(n Mat4) Mat4 {
	return n.Mul(m)
}

// Chain composes transforms in application order: Chain(a, b, c) applies a, then b, then c.
// An empty chain is the identity.
//
// Parameters:
//   - transforms: the transforms in the order they are applied
//
// Returns:
//   - Mat4: the composed transform
func Chain(transforms ...Mat4) Mat4 {
	out := Identity4()
	for _, t := range transforms {
		out = out.Then(t)
	}
	return out
}

// TransformPoint applies m to the point (x, y, z, 1) and returns the resulting xyz.
//
// Parameters:
//   - x, y, z: the point
//
// Returns:
//   - float32, float32, float32: the transformed point (w is not divided out)
func (m Mat4) TransformPoint(x, y, z float32) (float32, float32, float32) {
	return m[0]*x + m[4]*y + m[8]*z + m[12],
		m[1]*x + m[5]*y + m[9]*z + m[13],
		m[2]*x + m[6]*y + m[10]*z + m[14]
}

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (OpenGL/WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective creates a left-handed perspective projection matrix. The camera looks down +Z and
// depth maps to the WebGPU clip range [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / math32.Tan(fovY/2.0)
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (far - near)
	out[11] = 1.0
	out[14] = -(near * far) / (far - near)
	out[15] = 0.0
}

// SurfaceTransform describes how the presentation surface is rotated relative to the display.
// Desktop surfaces are always SurfaceTransformIdentity.
type SurfaceTransform int

const (
	// SurfaceTransformIdentity means the surface is presented as rendered.
	SurfaceTransformIdentity SurfaceTransform = iota
	// SurfaceTransformRotate90 means the surface is rotated 90 degrees clockwise on present.
	SurfaceTransformRotate90
	// SurfaceTransformRotate180 means the surface is rotated 180 degrees on present.
	SurfaceTransformRotate180
	// SurfaceTransformRotate270 means the surface is rotated 270 degrees clockwise on present.
	SurfaceTransformRotate270
)

// SurfacePretransform returns the matrix that pre-rotates the scene about the view axis (+Z)
// so it appears upright once the surface transform is applied by the display.
//
// Parameters:
//   - t: the surface transform
//
// Returns:
//   - Mat4: the pretransform matrix (identity for SurfaceTransformIdentity)
func SurfacePretransform(t SurfaceTransform) Mat4 {
	switch t {
	case SurfaceTransformRotate90:
		return RotationZ(-math32.Pi / 2)
	case SurfaceTransformRotate180:
		return RotationZ(-math32.Pi)
	case SurfaceTransformRotate270:
		return RotationZ(-3 * math32.Pi / 2)
	default:
		return Identity4()
	}
}

// AdjustedProjection builds the perspective projection for a surface of the given pixel size,
// swapping the aspect ratio when the surface transform rotates by 90 or 270 degrees.
//
// Parameters:
//   - t: the surface transform
//   - fovY: vertical field of view in radians
//   - width, height: surface size in pixels
//   - near, far: clipping plane distances
//
// Returns:
//   - Mat4: the projection matrix
func AdjustedProjection(t SurfaceTransform, fovY float32, width, height int, near, far float32) Mat4 {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	if t == SurfaceTransformRotate90 || t == SurfaceTransformRotate270 {
		aspect = 1 / aspect
	}
	var out Mat4
	Perspective(out[:], fovY, aspect, near, far)
	return out
}
