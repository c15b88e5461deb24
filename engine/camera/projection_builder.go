package camera

import "github.com/Carmen-Shannon/oxy-mobile/common"

// ProjectionBuilderOption is a functional option for configuring a Projection.
type ProjectionBuilderOption func(*projectionImpl)

// WithFov sets the vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - ProjectionBuilderOption: a function that sets the field of view
func WithFov(fov float32) ProjectionBuilderOption {
	return func(p *projectionImpl) {
		p.fov = fov
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: the near plane distance
//
// Returns:
//   - ProjectionBuilderOption: a function that sets the near plane
func WithNear(near float32) ProjectionBuilderOption {
	return func(p *projectionImpl) {
		p.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: the far plane distance
//
// Returns:
//   - ProjectionBuilderOption: a function that sets the far plane
func WithFar(far float32) ProjectionBuilderOption {
	return func(p *projectionImpl) {
		p.far = far
	}
}

// WithSurfaceTransform sets the initial surface transform.
//
// Parameters:
//   - t: the surface transform
//
// Returns:
//   - ProjectionBuilderOption: a function that sets the surface transform
func WithSurfaceTransform(t common.SurfaceTransform) ProjectionBuilderOption {
	return func(p *projectionImpl) {
		p.transform = t
	}
}
