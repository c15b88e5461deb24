package camera

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-mobile/common"
	"github.com/chewxy/math32"
)

// Projection defaults shared by all viewports.
const (
	DefaultFov  = math32.Pi / 4
	DefaultNear = 0.1
	DefaultFar  = 100.0
)

type projectionImpl struct {
	mu *sync.Mutex

	fov       float32
	near      float32
	far       float32
	transform common.SurfaceTransform
}

// Projection holds the perspective settings and surface pretransform shared by the three viewports.
type Projection interface {
	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// SurfaceTransform returns the presentation rotation of the surface.
	//
	// Returns:
	//   - common.SurfaceTransform: the surface transform
	SurfaceTransform() common.SurfaceTransform

	// SetSurfaceTransform updates the presentation rotation, e.g. after a surface reconfigure.
	//
	// Parameters:
	//   - t: the new surface transform
	SetSurfaceTransform(t common.SurfaceTransform)

	// Pretransform returns the rotation applied after the view matrix so the image appears upright.
	//
	// Returns:
	//   - common.Mat4: the pretransform matrix
	Pretransform() common.Mat4

	// Matrix returns the perspective projection for a surface size, with the aspect
	// ratio swapped for 90 and 270 degree surface transforms.
	//
	// Parameters:
	//   - width, height: surface size in pixels
	//
	// Returns:
	//   - common.Mat4: the projection matrix
	Matrix(width, height int) common.Mat4
}

var _ Projection = &projectionImpl{}

// NewProjection creates a Projection with a 45 degree field of view, near 0.1 and far 100.
// Panics if the configured planes or field of view are invalid.
//
// Parameters:
//   - options: functional options to configure the projection
//
// Returns:
//   - Projection: the new projection
func NewProjection(options ...ProjectionBuilderOption) Projection {
	p := &projectionImpl{
		mu:        &sync.Mutex{},
		fov:       DefaultFov,
		near:      DefaultNear,
		far:       DefaultFar,
		transform: common.SurfaceTransformIdentity,
	}
	for _, option := range options {
		option(p)
	}
	if p.fov <= 0 || p.fov >= math32.Pi {
		panic(fmt.Sprintf("camera: field of view %v out of range (0, pi)", p.fov))
	}
	if p.near <= 0 || p.far <= p.near {
		panic(fmt.Sprintf("camera: invalid clip planes near=%v far=%v", p.near, p.far))
	}
	return p
}

func (p *projectionImpl) Fov() float32 {
	return p.fov
}

func (p *projectionImpl) Near() float32 {
	return p.near
}

func (p *projectionImpl) Far() float32 {
	return p.far
}

func (p *projectionImpl) SurfaceTransform() common.SurfaceTransform {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.transform
}

func (p *projectionImpl) SetSurfaceTransform(t common.SurfaceTransform) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transform = t
}

func (p *projectionImpl) Pretransform() common.Mat4 {
	return common.SurfacePretransform(p.SurfaceTransform())
}

func (p *projectionImpl) Matrix(width, height int) common.Mat4 {
	return common.AdjustedProjection(p.SurfaceTransform(), p.fov, width, height, p.near, p.far)
}
