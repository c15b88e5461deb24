package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-mobile/common"
)

// DefaultSensitivity is the drag sensitivity applied to pixel deltas.
const DefaultSensitivity = 0.01

// wheel steps
const (
	panZoomWheelStep = 0.1
	orbitalWheelStep = 1.0
	freeZoomIn       = 1.2
	freeZoomOut      = 0.8
)

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	panZoom PanZoomCamera
	orbital OrbitalCamera
	free    FreeCamera

	// initial states restored by the Reset* methods
	initialPanZoom PanZoomCamera
	initialOrbital OrbitalCamera
	initialFree    FreeCamera

	drag        DragState
	sensitivity float32
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a controller holding the three default cameras, no capture and
// the default sensitivity. Panics if the configured sensitivity is not positive.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:             &sync.Mutex{},
		initialPanZoom: DefaultPanZoomCamera(),
		initialOrbital: DefaultOrbitalCamera(),
		initialFree:    DefaultFreeCamera(),
		drag:           DragState{ActiveWindow: WindowNone},
		sensitivity:    DefaultSensitivity,
	}

	for _, option := range options {
		option(cc)
	}

	if cc.sensitivity <= 0 {
		panic("camera: sensitivity must be positive")
	}

	cc.panZoom = cc.initialPanZoom
	cc.orbital = cc.initialOrbital
	cc.free = cc.initialFree
	return cc
}

func (cc *cameraControllerImpl) OnPointerDown(window WindowIndex, x, y float32) {
	if !window.Valid() {
		return
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.drag = DragState{Captured: true, ActiveWindow: window, LastPointer: [2]float32{x, y}}
}

func (cc *cameraControllerImpl) OnPointerUp() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.drag.Captured {
		return
	}
	cc.drag.Captured = false
	cc.drag.ActiveWindow = WindowNone
}

func (cc *cameraControllerImpl) OnPointerMove(x, y float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.drag.Captured {
		return
	}

	dx := x - cc.drag.LastPointer[0]
	dy := y - cc.drag.LastPointer[1]
	k := cc.sensitivity

	switch cc.drag.ActiveWindow {
	case WindowPanZoom:
		cc.panZoom.PanX += dx * k
		cc.panZoom.PanY -= dy * k
	case WindowOrbital:
		cc.orbital.AngleY += dx * k
		cc.orbital.AngleX += dy * k
	case WindowFree:
		// each axis only moves on its own nonzero delta
		if dx != 0 {
			cc.free.RotY += dx * k
		}
		if dy != 0 {
			cc.free.RotX += dy * k
		}
	}

	cc.drag.LastPointer = [2]float32{x, y}
}

func (cc *cameraControllerImpl) OnWheel(window WindowIndex, delta float32) {
	if delta == 0 || !window.Valid() {
		return
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()

	switch window {
	case WindowPanZoom:
		cc.panZoom.Zoom = common.Clamp(cc.panZoom.Zoom+delta*panZoomWheelStep, MinZoom, MaxZoom)
	case WindowOrbital:
		cc.orbital.Distance = common.Clamp(cc.orbital.Distance-delta*orbitalWheelStep, MinOrbitDistance, MaxOrbitDistance)
	case WindowFree:
		factor := float32(freeZoomOut)
		if delta > 0 {
			factor = freeZoomIn
		}
		cc.free.ViewZoom = common.Clamp(cc.free.ViewZoom*factor, MinViewZoom, MaxViewZoom)
	}
}

func (cc *cameraControllerImpl) HandlePointerEvent(ev PointerEvent, surfaceWidth int) {
	window := ResolveWindowAt(ev.X, surfaceWidth)

	if ev.ButtonDown {
		cc.OnPointerDown(window, ev.X, ev.Y)
	} else if ev.ButtonUp {
		cc.OnPointerUp()
	}
	cc.OnPointerMove(ev.X, ev.Y)
	if ev.WheelDelta != 0 {
		cc.OnWheel(window, ev.WheelDelta)
	}
}

func (cc *cameraControllerImpl) ViewMatrices() [NumWindows]common.Mat4 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return [NumWindows]common.Mat4{
		cc.panZoom.ViewMatrix(),
		cc.orbital.ViewMatrix(),
		cc.free.ViewMatrix(),
	}
}

func (cc *cameraControllerImpl) PanZoom() PanZoomCamera {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.panZoom
}

func (cc *cameraControllerImpl) Orbital() OrbitalCamera {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.orbital
}

func (cc *cameraControllerImpl) Free() FreeCamera {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.free
}

func (cc *cameraControllerImpl) SetPanZoom(c PanZoomCamera) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.panZoom = c
}

func (cc *cameraControllerImpl) SetOrbital(c OrbitalCamera) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.orbital = c
}

func (cc *cameraControllerImpl) SetFree(c FreeCamera) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.free = c
}

func (cc *cameraControllerImpl) ResetPanZoom() {
	cc.SetPanZoom(cc.initialPanZoom)
}

func (cc *cameraControllerImpl) ResetOrbital() {
	cc.SetOrbital(cc.initialOrbital)
}

func (cc *cameraControllerImpl) ResetFree() {
	cc.SetFree(cc.initialFree)
}

func (cc *cameraControllerImpl) DragState() DragState {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.drag
}

func (cc *cameraControllerImpl) Sensitivity() float32 {
	return cc.sensitivity
}
