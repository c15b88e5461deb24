package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithSensitivity sets the drag sensitivity applied to pixel deltas.
//
// Parameters:
//   - k: units (or radians) per pixel of pointer motion
//
// Returns:
//   - CameraControllerOption: functional option to set the sensitivity
func WithSensitivity(k float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.sensitivity = k
	}
}

// WithPanZoomCamera sets the initial pan/zoom camera, also used by ResetPanZoom.
//
// Parameters:
//   - c: the initial camera
//
// Returns:
//   - CameraControllerOption: functional option to set the camera
func WithPanZoomCamera(c PanZoomCamera) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.initialPanZoom = c
	}
}

// WithOrbitalCamera sets the initial orbital camera, also used by ResetOrbital.
//
// Parameters:
//   - c: the initial camera
//
// Returns:
//   - CameraControllerOption: functional option to set the camera
func WithOrbitalCamera(c OrbitalCamera) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.initialOrbital = c
	}
}

// WithFreeCamera sets the initial free camera, also used by ResetFree.
//
// Parameters:
//   - c: the initial camera
//
// Returns:
//   - CameraControllerOption: functional option to set the camera
func WithFreeCamera(c FreeCamera) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.initialFree = c
	}
}
