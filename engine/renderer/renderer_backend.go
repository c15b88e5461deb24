package renderer

import (
	"github.com/Carmen-Shannon/oxy-mobile/common"
	"github.com/Carmen-Shannon/oxy-mobile/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-mobile/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// Only specific power-of-two values are valid for GPU hardware. WebGPU guarantees support for
// 1 (off) and 4; higher values (8, 16) are adapter-dependent and may not be available.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4

	// MSAA8x enables 8× multisample anti-aliasing. Adapter-dependent; not all hardware supports this.
	MSAA8x MSAASampleCount = 8

	// MSAA16x enables 16× multisample anti-aliasing. Adapter-dependent; not all hardware supports this.
	MSAA16x MSAASampleCount = 16
)

// DrawCommand is one indexed, instanced draw inside the frame pass.
type DrawCommand struct {
	// Pipeline is the registered render pipeline to draw with.
	Pipeline pipeline.Pipeline
	// Mesh holds the vertex, index and instance buffers.
	Mesh bind_group_provider.BindGroupProvider
	// BindGroups are set in order as groups 0..n-1.
	BindGroups []bind_group_provider.BindGroupProvider
	// DynamicOffsets are passed with the bind group of the same index; nil entries pass none.
	DynamicOffsets [][]uint32
	// IndexCount is the number of indices to draw (32-bit indices).
	IndexCount uint32
	// InstanceCount is the number of instance records to draw.
	InstanceCount uint32
}

// RendererBackend is the GPU service the Renderer drives. The WebGPU implementation
// is created by NewRenderer; tests substitute a recording fake through WithBackend.
type RendererBackend interface {
	// ConfigureSurface (re)creates the swap chain and depth target for a surface size.
	ConfigureSurface(width, height int)

	// SetPresentMode selects the present mode used by the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the color the frame pass clears to.
	SetClearColor(c wgpu.Color)

	// RegisterRenderPipeline creates the GPU pipeline and stores it on p.
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitMeshBuffers uploads vertex and index data into new buffers stored on provider.
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitInstanceBuffer creates a per-instance vertex buffer of capacity*stride bytes on provider.
	InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, capacity, stride int) error

	// WriteInstances uploads packed instance records to the start of provider's instance buffer.
	WriteInstances(provider bind_group_provider.BindGroupProvider, data []byte) error

	// InitBindGroup creates the buffers and the bind group described by descriptor. Textures and
	// samplers must already be stored on provider. Sizes can be overridden per binding.
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error

	// InitTextureView uploads RGBA pixels into a new texture and stores its view at bindingKey.
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error

	// InitSampler creates a sampler and stores it at bindingKey.
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error

	// WriteBuffers queues buffer writes. Every write lands before the next submitted frame executes.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the swap chain texture and opens the frame pass.
	BeginFrame() error

	// SetViewport restricts rasterization to a region of the surface.
	SetViewport(vp Viewport)

	// DrawIndexedInstanced records one draw in the frame pass.
	DrawIndexedInstanced(cmd DrawCommand)

	// EndFrame closes the frame pass and submits it.
	EndFrame() error

	// Present shows the submitted frame.
	Present()

	// Release frees the device-level resources.
	Release()
}
