package renderer

import (
	"github.com/Carmen-Shannon/oxy-mobile/engine/camera"
	"github.com/Carmen-Shannon/oxy-mobile/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPipeline queues a Pipeline for registration. Queued pipelines are created on the GPU
// by the next RegisterPipelines or Prepare call.
//
// Parameters:
//   - p: the Pipeline to register
//
// Returns:
//   - RendererBuilderOption: a function that applies the pipeline option to a renderer
func WithPipeline(p pipeline.Pipeline) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPipelines = append(r.pendingPipelines, p)
	}
}

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithMSAA sets the multisample anti-aliasing sample count for the renderer.
// When not specified, the default is MSAA4x. Use MSAAOff to disable MSAA entirely.
// Higher values (MSAA8x, MSAA16x) are adapter-dependent and may not be supported
// by all hardware.
//
// Parameters:
//   - count: the MSAASampleCount to use (MSAAOff, MSAA4x, MSAA8x, or MSAA16x)
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingMSAA = &count
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithBackend supplies the GPU backend instead of creating a WebGPU one from the window.
func WithBackend(backend RendererBackend) RendererBuilderOption {
	return func(r *renderer) {
		r.backend = backend
	}
}

// WithSurfaceSize sets the initial surface size. A window passed to NewRenderer overrides it.
func WithSurfaceSize(width, height int) RendererBuilderOption {
	return func(r *renderer) {
		r.width, r.height = width, height
	}
}

// WithClearColor sets the color every frame is cleared to before the viewports are drawn.
//
// Parameters:
//   - c: the clear color
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(c wgpu.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = c
	}
}

// WithProjection sets the projection shared by the three viewports.
func WithProjection(p camera.Projection) RendererBuilderOption {
	return func(r *renderer) {
		r.projection = p
	}
}
