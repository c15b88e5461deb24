package camera

import "github.com/Carmen-Shannon/oxy-mobile/common"

// DragState tracks pointer capture for drag input.
type DragState struct {
	// Captured is true between a pointer-down on a viewport and the matching pointer-up.
	Captured bool
	// ActiveWindow is the viewport captured at pointer-down, or WindowNone.
	ActiveWindow WindowIndex
	// LastPointer is the pointer position of the previous down or move event, in surface pixels.
	LastPointer [2]float32
}

// PointerEvent is one raw pointer sample in surface pixel coordinates.
type PointerEvent struct {
	X, Y       float32
	ButtonDown bool
	ButtonUp   bool
	WheelDelta float32
}

// CameraController owns the three viewport cameras and the drag state machine.
// Pointer input and UI edits both go through it, so all camera state has a single owner.
type CameraController interface {
	// OnPointerDown captures the pointer for a viewport.
	// An invalid window is ignored.
	//
	// Parameters:
	//   - window: the viewport under the pointer
	//   - x, y: pointer position in surface pixels
	OnPointerDown(window WindowIndex, x, y float32)

	// OnPointerUp releases the capture. No-op if the pointer is not captured.
	OnPointerUp()

	// OnPointerMove applies the delta since the last pointer position to the captured viewport's camera.
	// No-op if the pointer is not captured.
	//
	// Parameters:
	//   - x, y: pointer position in surface pixels
	OnPointerMove(x, y float32)

	// OnWheel applies a wheel step to a viewport's camera, regardless of capture.
	// An invalid window or a zero delta is ignored.
	//
	// Parameters:
	//   - window: the viewport under the pointer
	//   - delta: wheel steps, positive away from the user
	OnWheel(window WindowIndex, delta float32)

	// HandlePointerEvent dispatches one raw pointer sample: it resolves the viewport under the pointer,
	// (re)captures on button-down or releases on button-up, then forwards motion while captured
	// and routes the wheel.
	//
	// Parameters:
	//   - ev: the raw pointer sample
	//   - surfaceWidth: surface width in pixels, used to resolve the viewport
	HandlePointerEvent(ev PointerEvent, surfaceWidth int)

	// ViewMatrices returns the view matrices of the three cameras in viewport order.
	//
	// Returns:
	//   - [NumWindows]common.Mat4: the view matrices
	ViewMatrices() [NumWindows]common.Mat4

	// PanZoom returns a copy of the pan/zoom camera.
	PanZoom() PanZoomCamera

	// Orbital returns a copy of the orbital camera.
	Orbital() OrbitalCamera

	// Free returns a copy of the free camera.
	Free() FreeCamera

	// SetPanZoom replaces the pan/zoom camera as-is. Callers apply their own range policy.
	SetPanZoom(c PanZoomCamera)

	// SetOrbital replaces the orbital camera as-is. Callers apply their own range policy.
	SetOrbital(c OrbitalCamera)

	// SetFree replaces the free camera as-is. Callers apply their own range policy.
	SetFree(c FreeCamera)

	// ResetPanZoom restores the initial pan/zoom camera.
	ResetPanZoom()

	// ResetOrbital restores the initial orbital camera.
	ResetOrbital()

	// ResetFree restores the initial free camera.
	ResetFree()

	// DragState returns a copy of the drag state.
	DragState() DragState

	// Sensitivity returns the drag sensitivity in units per pixel.
	Sensitivity() float32
}
