package scene

import (
	"github.com/Carmen-Shannon/oxy-mobile/engine/camera"
	"github.com/Carmen-Shannon/oxy-mobile/engine/mobile"
	"github.com/Carmen-Shannon/oxy-mobile/engine/ui"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is ticked by the engine. Scenes start active.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithController sets the camera controller. The default UI binds to it.
func WithController(cc camera.CameraController) SceneBuilderOption {
	return func(s *scene) {
		s.controller = cc
	}
}

// WithGenerator sets the instance generator.
func WithGenerator(g mobile.Generator) SceneBuilderOption {
	return func(s *scene) {
		s.generator = g
	}
}

// WithUI sets the camera panels. They should be bound to the scene's controller.
func WithUI(u ui.UI) SceneBuilderOption {
	return func(s *scene) {
		s.panels = u
	}
}

// WithPipelineKey sets the registered pipeline the scene draws with.
//
// Parameters:
//   - key: the pipeline key
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPipelineKey(key string) SceneBuilderOption {
	return func(s *scene) {
		s.pipelineKey = key
	}
}

// WithGlobalRotationRates sets the scene rotation rates in radians per second.
// The frame rotation is RotationY(t*rateY) followed by RotationX(-t*rateX); zero rates keep the identity.
//
// Parameters:
//   - rateY: rotation rate about Y
//   - rateX: rotation rate about X
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithGlobalRotationRates(rateY, rateX float32) SceneBuilderOption {
	return func(s *scene) {
		s.rotationRateY = rateY
		s.rotationRateX = rateX
	}
}
