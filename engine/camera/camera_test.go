package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-mobile/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWindowPartition(t *testing.T) {
	tests := []struct {
		fraction float32
		want     WindowIndex
	}{
		{0, WindowPanZoom},
		{0.2, WindowPanZoom},
		{0.3333, WindowPanZoom},
		{1.0 / 3.0, WindowOrbital},
		{0.5, WindowOrbital},
		{0.6666, WindowOrbital},
		{2.0 / 3.0, WindowFree},
		{0.9, WindowFree},
		{1, WindowFree},
		{-0.01, WindowNone},
		{1.01, WindowNone},
		{math32.NaN(), WindowNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveWindow(tt.fraction), "fraction %v", tt.fraction)
	}

	// every fraction in [0, 1) selects exactly one valid window
	for i := range 1000 {
		assert.True(t, ResolveWindow(float32(i)/1000).Valid())
	}
}

func TestResolveWindowAt(t *testing.T) {
	assert.Equal(t, WindowPanZoom, ResolveWindowAt(0, 900))
	assert.Equal(t, WindowOrbital, ResolveWindowAt(300, 900))
	assert.Equal(t, WindowFree, ResolveWindowAt(899, 900))
	assert.Equal(t, WindowNone, ResolveWindowAt(100, 0))
	assert.Equal(t, WindowNone, ResolveWindowAt(-5, 900))
}

func TestPanZoomWheelClamp(t *testing.T) {
	cc := NewCameraController()
	require.Equal(t, float32(1.0), cc.PanZoom().Zoom)

	cc.OnWheel(WindowPanZoom, 3)
	assert.InDelta(t, 1.3, cc.PanZoom().Zoom, 1e-6)

	// 1.3 + 30*0.1 stays inside the range
	cc.OnWheel(WindowPanZoom, 30)
	assert.InDelta(t, 4.3, cc.PanZoom().Zoom, 1e-5)

	cc.OnWheel(WindowPanZoom, 40)
	assert.Equal(t, float32(MaxZoom), cc.PanZoom().Zoom)
	cc.OnWheel(WindowPanZoom, 40)
	assert.Equal(t, float32(MaxZoom), cc.PanZoom().Zoom)

	cc.OnWheel(WindowPanZoom, -100)
	assert.Equal(t, float32(MinZoom), cc.PanZoom().Zoom)
	cc.OnWheel(WindowPanZoom, -100)
	assert.Equal(t, float32(MinZoom), cc.PanZoom().Zoom)
}

func TestOrbitalAndFreeWheel(t *testing.T) {
	cc := NewCameraController()

	cc.OnWheel(WindowOrbital, 2)
	assert.InDelta(t, 18.0, cc.Orbital().Distance, 1e-6)
	cc.OnWheel(WindowOrbital, 100)
	assert.Equal(t, float32(MinOrbitDistance), cc.Orbital().Distance)
	cc.OnWheel(WindowOrbital, -100)
	assert.Equal(t, float32(MaxOrbitDistance), cc.Orbital().Distance)

	// the default view zoom sits above the wheel range, so any wheel step clamps it
	cc.OnWheel(WindowFree, -1)
	assert.Equal(t, float32(MaxViewZoom), cc.Free().ViewZoom)
	cc.OnWheel(WindowFree, -1)
	assert.InDelta(t, 0.08, cc.Free().ViewZoom, 1e-6)
	cc.OnWheel(WindowFree, 1)
	assert.InDelta(t, 0.096, cc.Free().ViewZoom, 1e-6)
	for range 100 {
		cc.OnWheel(WindowFree, -1)
	}
	assert.Equal(t, float32(MinViewZoom), cc.Free().ViewZoom)
}

func TestWheelIgnoresInvalidWindowAndZeroDelta(t *testing.T) {
	cc := NewCameraController()
	before := [3]any{cc.PanZoom(), cc.Orbital(), cc.Free()}

	cc.OnWheel(WindowNone, 5)
	cc.OnWheel(WindowIndex(3), 5)
	cc.OnWheel(WindowPanZoom, 0)
	cc.OnWheel(WindowFree, 0)

	assert.Equal(t, before, [3]any{cc.PanZoom(), cc.Orbital(), cc.Free()})
}

func TestWheelIndependentOfCapture(t *testing.T) {
	cc := NewCameraController()
	cc.OnPointerDown(WindowFree, 10, 10)
	cc.OnWheel(WindowPanZoom, 1)
	assert.InDelta(t, 1.1, cc.PanZoom().Zoom, 1e-6)
	assert.Equal(t, WindowFree, cc.DragState().ActiveWindow)
}

func TestOrbitalDragRoundTrip(t *testing.T) {
	cc := NewCameraController()
	start := cc.Orbital()

	cc.OnPointerDown(WindowOrbital, 400, 300)
	cc.OnPointerMove(425, 280)
	cc.OnPointerUp()

	got := cc.Orbital()
	assert.InDelta(t, start.AngleY+25*0.01, got.AngleY, 1e-5)
	assert.InDelta(t, start.AngleX-20*0.01, got.AngleX, 1e-5)
	assert.Equal(t, start.Distance, got.Distance)

	drag := cc.DragState()
	assert.False(t, drag.Captured)
	assert.Equal(t, WindowNone, drag.ActiveWindow)

	// moves after release change nothing
	cc.OnPointerMove(1000, 1000)
	assert.Equal(t, got, cc.Orbital())
}

func TestPanZoomDrag(t *testing.T) {
	cc := NewCameraController()
	cc.OnPointerDown(WindowPanZoom, 10, 10)
	cc.OnPointerMove(30, 50)
	cc.OnPointerMove(40, 50)

	pz := cc.PanZoom()
	assert.InDelta(t, 0.3, pz.PanX, 1e-6)
	assert.InDelta(t, -0.4, pz.PanY, 1e-6)
	assert.Equal(t, [2]float32{40, 50}, cc.DragState().LastPointer)
}

func TestFreeCameraDragScenario(t *testing.T) {
	const width = 1200
	cc := NewCameraController()
	start := cc.Free()

	x := float32(0.9 * width)
	cc.HandlePointerEvent(PointerEvent{X: x, Y: 400, ButtonDown: true}, width)
	require.Equal(t, WindowFree, cc.DragState().ActiveWindow)

	cc.HandlePointerEvent(PointerEvent{X: x + 10, Y: 390}, width)
	got := cc.Free()
	assert.InDelta(t, start.RotY+0.10, got.RotY, 1e-5)
	assert.InDelta(t, start.RotX-0.10, got.RotX, 1e-5)
	assert.Equal(t, start.RotZ, got.RotZ)

	// a purely horizontal move leaves RotX alone
	cc.HandlePointerEvent(PointerEvent{X: x + 20, Y: 390}, width)
	assert.Equal(t, got.RotX, cc.Free().RotX)
}

func TestHandlePointerEventCaptureStaysWithWindow(t *testing.T) {
	const width = 900
	cc := NewCameraController()
	startOrbit := cc.Orbital()

	cc.HandlePointerEvent(PointerEvent{X: 100, Y: 100, ButtonDown: true}, width)
	// dragging across into the orbital viewport still pans
	cc.HandlePointerEvent(PointerEvent{X: 500, Y: 100}, width)
	assert.InDelta(t, 4.0, cc.PanZoom().PanX, 1e-5)
	assert.Equal(t, startOrbit, cc.Orbital())

	// a second button-down recaptures on the viewport under the pointer
	cc.HandlePointerEvent(PointerEvent{X: 500, Y: 100, ButtonDown: true}, width)
	assert.Equal(t, WindowOrbital, cc.DragState().ActiveWindow)
	assert.Equal(t, startOrbit, cc.Orbital())

	cc.HandlePointerEvent(PointerEvent{X: 510, Y: 100}, width)
	assert.InDelta(t, startOrbit.AngleY+0.1, cc.Orbital().AngleY, 1e-5)

	// button-up releases before the sample's motion is applied
	cc.HandlePointerEvent(PointerEvent{X: 600, Y: 100, ButtonUp: true}, width)
	assert.False(t, cc.DragState().Captured)
	assert.InDelta(t, startOrbit.AngleY+0.1, cc.Orbital().AngleY, 1e-5)
	assert.InDelta(t, 4.0, cc.PanZoom().PanX, 1e-5)

	// the wheel routes by the window under the pointer
	cc.HandlePointerEvent(PointerEvent{X: 500, Y: 100, WheelDelta: 1}, width)
	assert.InDelta(t, startOrbit.Distance-1, cc.Orbital().Distance, 1e-5)

	// button-down outside every viewport is ignored
	cc.HandlePointerEvent(PointerEvent{X: 2000, Y: 0, ButtonDown: true}, width)
	assert.False(t, cc.DragState().Captured)
}

func TestPointerDownInvalidWindowIgnored(t *testing.T) {
	cc := NewCameraController()
	cc.OnPointerDown(WindowNone, 1, 1)
	cc.OnPointerDown(WindowIndex(7), 1, 1)
	assert.Equal(t, DragState{ActiveWindow: WindowNone}, cc.DragState())

	cc.OnPointerUp()
	assert.Equal(t, DragState{ActiveWindow: WindowNone}, cc.DragState())
}

func TestSettersAndResets(t *testing.T) {
	cc := NewCameraController(
		WithSensitivity(0.5),
		WithOrbitalCamera(OrbitalCamera{AngleX: 1, AngleY: 2, Distance: 10}),
	)
	assert.Equal(t, float32(0.5), cc.Sensitivity())
	assert.Equal(t, OrbitalCamera{AngleX: 1, AngleY: 2, Distance: 10}, cc.Orbital())

	cc.SetPanZoom(PanZoomCamera{PanX: 3, PanY: -3, Zoom: 2})
	cc.SetOrbital(OrbitalCamera{Distance: 30})
	cc.SetFree(FreeCamera{ViewZoom: 0.4})

	assert.Equal(t, float32(2), cc.PanZoom().Zoom)
	assert.Equal(t, float32(0.4), cc.Free().ViewZoom)

	cc.ResetPanZoom()
	cc.ResetOrbital()
	cc.ResetFree()
	assert.Equal(t, DefaultPanZoomCamera(), cc.PanZoom())
	assert.Equal(t, OrbitalCamera{AngleX: 1, AngleY: 2, Distance: 10}, cc.Orbital())
	assert.Equal(t, DefaultFreeCamera(), cc.Free())

	assert.Panics(t, func() { NewCameraController(WithSensitivity(0)) })
}

func TestViewMatrices(t *testing.T) {
	cc := NewCameraController()
	views := cc.ViewMatrices()

	// the pan/zoom camera frames the origin 20 units ahead
	x, y, z := views[WindowPanZoom].TransformPoint(0, 0, 0)
	assert.InDelta(t, 0, x, 1e-5)
	assert.InDelta(t, 0, y, 1e-5)
	assert.InDelta(t, 20, z, 1e-5)

	// the orbital camera keeps the origin at its orbit distance
	x, y, z = views[WindowOrbital].TransformPoint(0, 0, 0)
	assert.InDelta(t, 20, math32.Sqrt(x*x+y*y+z*z), 1e-4)
	o := cc.Orbital()
	assert.InDelta(t, -20*math32.Sin(o.AngleX), y, 1e-4)

	// with no rotation and unit zoom the free camera maps its position to the origin
	cc.SetFree(FreeCamera{Position: [3]float32{1, 2, 3}, ViewZoom: 1})
	x, y, z = cc.ViewMatrices()[WindowFree].TransformPoint(1, 2, 3)
	assert.InDelta(t, 0, x, 1e-6)
	assert.InDelta(t, 0, y, 1e-6)
	assert.InDelta(t, 0, z, 1e-6)

	// zoom scales before the fixed tilt
	cc.SetPanZoom(PanZoomCamera{Zoom: 2})
	pz := cc.ViewMatrices()[WindowPanZoom]
	x, _, _ = pz.TransformPoint(1, 0, 0)
	assert.InDelta(t, 2, x, 1e-5)
}

func TestProjection(t *testing.T) {
	p := NewProjection()
	assert.InDelta(t, math.Pi/4, p.Fov(), 1e-6)
	assert.Equal(t, float32(0.1), p.Near())
	assert.Equal(t, float32(100), p.Far())
	assert.Equal(t, common.Identity4(), p.Pretransform())

	m := p.Matrix(1600, 800)
	assert.InDelta(t, m[5]/2, m[0], 1e-6)

	p.SetSurfaceTransform(common.SurfaceTransformRotate90)
	m = p.Matrix(1600, 800)
	assert.InDelta(t, m[5]*2, m[0], 1e-5)
	assert.NotEqual(t, common.Identity4(), p.Pretransform())

	assert.Panics(t, func() { NewProjection(WithNear(0)) })
	assert.Panics(t, func() { NewProjection(WithNear(10), WithFar(5)) })
	assert.Panics(t, func() { NewProjection(WithFov(0)) })
}

func TestViewportConstantsMarshal(t *testing.T) {
	rot := common.RotationY(0.5)
	c := NewViewportConstants(common.Translation(1, 2, 3), common.Identity4(), common.Identity4(), rot)
	assert.Equal(t, 128, c.Size())

	buf := c.Marshal()
	require.Len(t, buf, 128)
	assert.Equal(t, math.Float32bits(1), binary.LittleEndian.Uint32(buf[48:]))
	assert.Equal(t, math.Float32bits(3), binary.LittleEndian.Uint32(buf[56:]))
	assert.Equal(t, math.Float32bits(rot[0]), binary.LittleEndian.Uint32(buf[64:]))
	assert.Equal(t, math.Float32bits(rot[8]), binary.LittleEndian.Uint32(buf[64+32:]))
	assert.NotEmpty(t, GPUViewportConstantsSource)
}
