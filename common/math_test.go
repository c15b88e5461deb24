package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

const epsilon = 1e-5

func assertPoint(t *testing.T, want [3]float32, x, y, z float32) {
	t.Helper()
	assert.InDelta(t, want[0], x, epsilon)
	assert.InDelta(t, want[1], y, epsilon)
	assert.InDelta(t, want[2], z, epsilon)
}

func TestChainAppliesInOrder(t *testing.T) {
	// scale first, then translate: (1,0,0) -> (2,0,0) -> (2,5,0)
	m := Chain(UniformScale(2), Translation(0, 5, 0))
	x, y, z := m.TransformPoint(1, 0, 0)
	assertPoint(t, [3]float32{2, 5, 0}, x, y, z)

	// translate first, then scale: (1,0,0) -> (1,5,0) -> (2,10,0)
	m = Translation(0, 5, 0).Then(UniformScale(2))
	x, y, z = m.TransformPoint(1, 0, 0)
	assertPoint(t, [3]float32{2, 10, 0}, x, y, z)

	assert.Equal(t, Identity4(), Chain())
}

func TestMulMatchesThen(t *testing.T) {
	a := RotationY(0.4)
	b := Translation(1, 2, 3)
	assert.Equal(t, b.Mul(a), a.Then(b))
	assert.Equal(t, a, a.Mul(Identity4()))
}

func TestRotations(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   [3]float32
		want [3]float32
	}{
		{"x quarter turn", RotationX(math32.Pi / 2), [3]float32{0, 1, 0}, [3]float32{0, 0, 1}},
		{"y quarter turn", RotationY(math32.Pi / 2), [3]float32{0, 0, 1}, [3]float32{1, 0, 0}},
		{"z quarter turn", RotationZ(math32.Pi / 2), [3]float32{1, 0, 0}, [3]float32{0, 1, 0}},
		{"scale", Scale(1, 2, 3), [3]float32{1, 1, 1}, [3]float32{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, z := tt.m.TransformPoint(tt.in[0], tt.in[1], tt.in[2])
			assertPoint(t, tt.want, x, y, z)
		})
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	var p Mat4
	Perspective(p[:], math32.Pi/4, 1, 0.1, 100)

	depth := func(z float32) float32 {
		_, _, cz := p.TransformPoint(0, 0, z)
		return cz / z // w = z for this projection
	}
	assert.InDelta(t, 0, depth(0.1), epsilon)
	assert.InDelta(t, 1, depth(100), 1e-4)
}

func TestAdjustedProjection(t *testing.T) {
	wide := AdjustedProjection(SurfaceTransformIdentity, math32.Pi/4, 200, 100, 0.1, 100)
	assert.InDelta(t, wide[5]/2, wide[0], epsilon)

	rotated := AdjustedProjection(SurfaceTransformRotate90, math32.Pi/4, 200, 100, 0.1, 100)
	assert.InDelta(t, rotated[5]*2, rotated[0], epsilon)

	empty := AdjustedProjection(SurfaceTransformIdentity, math32.Pi/4, 0, 0, 0.1, 100)
	assert.InDelta(t, empty[5], empty[0], epsilon)
}

func TestSurfacePretransform(t *testing.T) {
	assert.Equal(t, Identity4(), SurfacePretransform(SurfaceTransformIdentity))

	x, y, z := SurfacePretransform(SurfaceTransformRotate90).TransformPoint(1, 0, 0)
	assertPoint(t, [3]float32{0, -1, 0}, x, y, z)

	x, y, z = SurfacePretransform(SurfaceTransformRotate180).TransformPoint(1, 0, 0)
	assertPoint(t, [3]float32{-1, 0, 0}, x, y, z)
}

func TestClampAndCoalesce(t *testing.T) {
	assert.Equal(t, 5, Clamp(9, 0, 5))
	assert.Equal(t, float32(-1), Clamp(float32(-3), -1, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))

	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}
