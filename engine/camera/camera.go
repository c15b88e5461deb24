package camera

import (
	"github.com/Carmen-Shannon/oxy-mobile/common"
)

// WindowIndex identifies one of the three viewports and the camera that drives it.
type WindowIndex int

const (
	// WindowNone means no viewport matched.
	WindowNone WindowIndex = -1
	// WindowPanZoom is the left viewport, driven by the PanZoomCamera.
	WindowPanZoom WindowIndex = 0
	// WindowOrbital is the middle viewport, driven by the OrbitalCamera.
	WindowOrbital WindowIndex = 1
	// WindowFree is the right viewport, driven by the FreeCamera.
	WindowFree WindowIndex = 2
)

// NumWindows is the number of viewports, one per camera.
const NumWindows = 3

// Valid reports whether w names one of the three viewports.
func (w WindowIndex) Valid() bool {
	return w >= WindowPanZoom && w <= WindowFree
}

func (w WindowIndex) String() string {
	switch w {
	case WindowPanZoom:
		return "pan_zoom"
	case WindowOrbital:
		return "orbital"
	case WindowFree:
		return "free"
	default:
		return "none"
	}
}

// Wheel clamp ranges.
const (
	MinZoom = 0.1
	MaxZoom = 5.0

	MinOrbitDistance = 5.0
	MaxOrbitDistance = 40.0

	// MinViewZoom and MaxViewZoom bound the free camera on the wheel path only.
	// The UI slider uses its own, wider range.
	MinViewZoom = 0.001
	MaxViewZoom = 0.1
)

// fixed framing of the pan/zoom camera
const (
	panZoomTilt     = -0.8
	panZoomDistance = 20.0
)

// PanZoomCamera looks at the mobile from a fixed tilt and distance, with a 2D pan and a zoom factor.
type PanZoomCamera struct {
	PanX float32
	PanY float32
	Zoom float32
}

// DefaultPanZoomCamera returns the initial pan/zoom camera: no pan, zoom 1.
func DefaultPanZoomCamera() PanZoomCamera {
	return PanZoomCamera{Zoom: 1.0}
}

// ViewMatrix returns Translation(pan), then Scale(zoom), then the fixed tilt and distance.
//
// Returns:
//   - common.Mat4: the view matrix
func (c PanZoomCamera) ViewMatrix() common.Mat4 {
	return common.Chain(
		common.Translation(c.PanX, c.PanY, 0),
		common.UniformScale(c.Zoom),
		common.RotationX(panZoomTilt),
		common.Translation(0, 0, panZoomDistance),
	)
}

// OrbitalCamera orbits the origin at a distance.
type OrbitalCamera struct {
	AngleX   float32
	AngleY   float32
	Distance float32
}

// DefaultOrbitalCamera returns the initial orbital camera.
func DefaultOrbitalCamera() OrbitalCamera {
	return OrbitalCamera{AngleX: 3.0, AngleY: 0.0, Distance: 20.0}
}

// ViewMatrix returns Translation(0, 0, -distance), then RotationX, then RotationY, then a Y flip.
//
// Returns:
//   - common.Mat4: the view matrix
func (c OrbitalCamera) ViewMatrix() common.Mat4 {
	return common.Chain(
		common.Translation(0, 0, -c.Distance),
		common.RotationX(c.AngleX),
		common.RotationY(c.AngleY),
		common.Scale(1, -1, 1),
	)
}

// FreeCamera is positioned and rotated freely in the scene.
type FreeCamera struct {
	Position [3]float32
	RotX     float32
	RotY     float32
	RotZ     float32
	ViewZoom float32
}

// DefaultFreeCamera returns the initial free camera.
func DefaultFreeCamera() FreeCamera {
	return FreeCamera{
		Position: [3]float32{-0.77, 0.83, -4.57},
		RotX:     -1.43,
		RotY:     0.05,
		RotZ:     0.05,
		ViewZoom: 0.226,
	}
}

// ViewMatrix returns RotationZ, RotationY, RotationX, Scale(view zoom) and finally Translation(-position).
//
// Returns:
//   - common.Mat4: the view matrix
func (c FreeCamera) ViewMatrix() common.Mat4 {
	return common.Chain(
		common.RotationZ(c.RotZ),
		common.RotationY(c.RotY),
		common.RotationX(c.RotX),
		common.UniformScale(c.ViewZoom),
		common.Translation(-c.Position[0], -c.Position[1], -c.Position[2]),
	)
}

// ResolveWindow maps a horizontal surface fraction to a viewport:
// [0, 1/3) is WindowPanZoom, [1/3, 2/3) is WindowOrbital and [2/3, 1] is WindowFree.
// Fractions outside [0, 1] resolve to WindowNone.
//
// Parameters:
//   - fraction: the pointer x divided by the surface width
//
// Returns:
//   - WindowIndex: the matching viewport, or WindowNone
func ResolveWindow(fraction float32) WindowIndex {
	switch {
	case fraction < 0 || fraction > 1 || fraction != fraction:
		return WindowNone
	case fraction < 1.0/3.0:
		return WindowPanZoom
	case fraction < 2.0/3.0:
		return WindowOrbital
	default:
		return WindowFree
	}
}

// ResolveWindowAt maps a pointer x position in pixels to a viewport.
//
// Parameters:
//   - x: pointer x in surface pixels
//   - surfaceWidth: surface width in pixels
//
// Returns:
//   - WindowIndex: the matching viewport, or WindowNone for a zero-width surface
func ResolveWindowAt(x float32, surfaceWidth int) WindowIndex {
	if surfaceWidth <= 0 {
		return WindowNone
	}
	return ResolveWindow(x / float32(surfaceWidth))
}
