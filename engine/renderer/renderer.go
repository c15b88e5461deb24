package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-mobile/common"
	"github.com/Carmen-Shannon/oxy-mobile/engine/camera"
	"github.com/Carmen-Shannon/oxy-mobile/engine/model"
	"github.com/Carmen-Shannon/oxy-mobile/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-mobile/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-mobile/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-mobile/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-mobile/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// ConstantSlotStride is the byte distance between the per-viewport constant slots.
// WebGPU requires dynamic uniform offsets to be multiples of 256.
const ConstantSlotStride = 256

// DefaultClearValue is the grey level the frame is cleared to.
const DefaultClearValue = 0.35

// shader binding role of each material texture slot
var materialRoles = [material.NumTextureSlots]shader.AnnotationArg{
	material.TextureBase:   shader.AnnotationArgBaseTexture,
	material.TextureDetail: shader.AnnotationArgDetailTexture,
	material.TextureBlend:  shader.AnnotationArgBlendTexture,
	material.TextureAlt:    shader.AnnotationArgAltTexture,
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	projection     camera.Projection
	width, height  int
	clearColor     wgpu.Color
	globalRotation common.Mat4

	// frame resources, set by Prepare
	framePipeline     pipeline.Pipeline
	mesh              model.Model
	constantsProvider bind_group_provider.BindGroupProvider
	materialProvider  bind_group_provider.BindGroupProvider
	bindGroups        []bind_group_provider.BindGroupProvider
	constantsGroup    int
	constantsBinding  int
	instanceStride    int

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPipelines     []pipeline.Pipeline
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
}

// Renderer draws the instanced mobile into three side-by-side viewports.
//
// Setup happens once: RegisterPipelines creates the GPU pipeline, then Prepare uploads the
// mesh, allocates the instance buffer and builds the constant and material bind groups.
// Each frame the caller uploads the instance records with WriteInstances and calls RenderFrame
// with the three camera view matrices.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// Pipelines retrieves the entire cache of Pipelines.
	//
	// Returns:
	//   - map[string]pipeline.Pipeline: a map of pipeline keys to their corresponding Pipeline objects
	Pipelines() map[string]pipeline.Pipeline

	// RegisterPipelines creates the GPU render pipeline of each Pipeline via the backend, then caches
	// them by PipelineKey. Pipelines whose keys are already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Prepare creates the GPU resources the frame needs: mesh and instance buffers, the three
	// per-viewport constant slots, and the material textures and sampler. The model's first
	// render material is decoded first if it has not been already.
	//
	// Parameters:
	//   - pipelineKey: the registered pipeline to draw with
	//   - m: the instanced mesh and its material
	//   - maxInstances: the instance buffer capacity in records
	//
	// Returns:
	//   - error: an error if the pipeline is unknown, the model is incomplete or a GPU resource fails
	Prepare(pipelineKey string, m model.Model, maxInstances int) error

	// WriteInstances uploads packed instance records for the next frame.
	//
	// Parameters:
	//   - data: a whole number of records, at most the capacity given to Prepare
	//
	// Returns:
	//   - error: an error if the renderer is not prepared or data does not fit
	WriteInstances(data []byte) error

	// RenderFrame draws one frame: for each viewport left to right it sets the viewport, writes
	// view-projection and global rotation into that viewport's constant slot and issues one
	// indexed instanced draw. A zero-sized surface skips the frame.
	//
	// Parameters:
	//   - views: the camera view matrices in camera.WindowIndex order
	//   - instanceCount: the number of records written by WriteInstances to draw
	//
	// Returns:
	//   - error: an error if the renderer is not prepared, the count exceeds capacity or the frame fails
	RenderFrame(views [camera.NumWindows]common.Mat4, instanceCount uint32) error

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SurfaceSize returns the current surface size in pixels.
	//
	// Returns:
	//   - int: width
	//   - int: height
	SurfaceSize() (int, int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// A call to Resize is required after changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Projection returns the projection shared by the three viewports.
	//
	// Returns:
	//   - camera.Projection: the projection
	Projection() camera.Projection

	// SetGlobalRotation sets the scene rotation applied to every vertex before its instance transform.
	//
	// Parameters:
	//   - m: the rotation matrix
	SetGlobalRotation(m common.Mat4)

	// GlobalRotation returns the current scene rotation.
	//
	// Returns:
	//   - common.Mat4: the rotation matrix
	GlobalRotation() common.Mat4

	// Release frees the frame resources and the backend.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer. Unless WithBackend supplies one, a WebGPU backend is created
// for the window's surface. The surface size comes from the window, or from WithSurfaceSize when
// no window is given. Panics if neither a window nor a backend is provided.
//
// Parameters:
//   - win: the window to render into, may be nil when WithBackend is used
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(win window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:             &sync.Mutex{},
		pipelineCache:  make(map[string]pipeline.Pipeline),
		backendType:    BackendTypeWGPU,
		clearColor:     wgpu.Color{R: DefaultClearValue, G: DefaultClearValue, B: DefaultClearValue, A: 1},
		globalRotation: common.Identity4(),
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	if win != nil {
		r.width, r.height = win.Width(), win.Height()
	}
	if r.projection == nil {
		r.projection = camera.NewProjection()
	}

	if r.backend == nil {
		if win == nil {
			panic("renderer: a window or a backend is required")
		}
		msaa := MSAA4x // default
		if r.pendingMSAA != nil {
			msaa = *r.pendingMSAA
		}
		switch r.backendType {
		case BackendTypeWGPU:
			fallthrough
		default:
			r.backend = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
		}
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	r.backend.SetClearColor(r.clearColor)
	r.backend.ConfigureSurface(r.width, r.height)
	return r
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Pipelines() map[string]pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registerPipelines(pipelines...)
}

// registerPipelines registers the queued pipelines followed by the given ones. Callers hold mu.
func (r *renderer) registerPipelines(pipelines ...pipeline.Pipeline) error {
	if len(r.pendingPipelines) > 0 {
		pipelines = append(r.pendingPipelines, pipelines...)
		r.pendingPipelines = nil
	}
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("failed to register pipeline %q: %w", key, err)
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) Prepare(pipelineKey string, m model.Model, maxInstances int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.registerPipelines(); err != nil {
		return err
	}
	p, exists := r.pipelineCache[pipelineKey]
	if !exists {
		return fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}
	if m == nil || m.IndexCount() == 0 {
		return errors.New("model has no mesh data")
	}
	if len(m.RenderMaterials()) == 0 {
		return fmt.Errorf("model %s has no render material", m.Name())
	}
	if maxInstances <= 0 {
		return fmt.Errorf("instance capacity must be positive, got %d", maxInstances)
	}

	stride, err := instanceStride(p.VertexLayouts())
	if err != nil {
		return fmt.Errorf("pipeline %q: %w", pipelineKey, err)
	}

	descriptors := p.BindGroupLayoutDescriptors()
	bindGroups := make([]bind_group_provider.BindGroupProvider, len(descriptors))

	// mesh, vertex slot 0, and instances, vertex slot 1
	meshProvider := bind_group_provider.NewBindGroupProvider(m.Name() + " Mesh")
	if err := r.backend.InitMeshBuffers(meshProvider, m.VertexData(), m.IndexData(), m.IndexCount()); err != nil {
		return fmt.Errorf("failed to create mesh buffers: %w", err)
	}
	if err := r.backend.InitInstanceBuffer(meshProvider, maxInstances, stride); err != nil {
		return fmt.Errorf("failed to create instance buffer: %w", err)
	}
	m.SetMeshProvider(meshProvider)

	// one constant slot per viewport, selected with a dynamic offset
	cGroup, cBinding, ok := constantsBinding(p.Shader(shader.ShaderTypeVertex))
	if !ok || cGroup >= len(descriptors) {
		return fmt.Errorf("pipeline %q declares no dynamic %s binding", pipelineKey, shader.AnnotationArgViewportConstants)
	}
	constants := bind_group_provider.NewBindGroupProvider("Viewport Constants")
	sizes := map[int]uint64{cBinding: camera.NumWindows * ConstantSlotStride}
	if err := r.backend.InitBindGroup(constants, descriptors[cGroup], nil, sizes); err != nil {
		return fmt.Errorf("failed to create viewport constants: %w", err)
	}
	bindGroups[cGroup] = constants

	// material textures and sampler
	mat := m.RenderMaterials()[0]
	if !mat.Decoded() {
		if err := mat.DecodeTextures(); err != nil {
			return err
		}
	}
	mGroup, matProvider, err := r.initMaterial(p, mat, descriptors)
	if err != nil {
		return fmt.Errorf("material %s: %w", mat.Name(), err)
	}
	if bindGroups[mGroup] != nil {
		return fmt.Errorf("material and viewport constants both use group %d", mGroup)
	}
	bindGroups[mGroup] = matProvider

	for g, bg := range bindGroups {
		if bg == nil && len(descriptors[g].Entries) > 0 {
			return fmt.Errorf("pipeline %q group %d has no provider", pipelineKey, g)
		}
	}

	r.framePipeline = p
	r.mesh = m
	r.constantsProvider = constants
	r.materialProvider = matProvider
	r.bindGroups = bindGroups
	r.constantsGroup = cGroup
	r.constantsBinding = cBinding
	r.instanceStride = stride
	return nil
}

// initMaterial uploads the material textures and sampler to the bindings the fragment shader
// assigns to their roles, then creates the material bind group.
func (r *renderer) initMaterial(p pipeline.Pipeline, mat material.Material, descriptors []wgpu.BindGroupLayoutDescriptor) (int, bind_group_provider.BindGroupProvider, error) {
	fs := p.Shader(shader.ShaderTypeFragment)
	provider := bind_group_provider.NewBindGroupProvider(mat.Name() + " Material")

	group := -1
	useGroup := func(g int) error {
		if group != -1 && group != g {
			return fmt.Errorf("material bindings span groups %d and %d", group, g)
		}
		if g >= len(descriptors) {
			return fmt.Errorf("material group %d has no layout", g)
		}
		group = g
		return nil
	}

	for slot, role := range materialRoles {
		g, b, ok := fs.BindingForRole(role)
		if !ok {
			return 0, nil, fmt.Errorf("fragment shader has no %s binding", role)
		}
		if err := useGroup(g); err != nil {
			return 0, nil, err
		}
		data, ok := mat.StagingData(material.TextureSlot(slot))
		if !ok {
			return 0, nil, fmt.Errorf("material %s has no %s texture staged", mat.Name(), material.TextureSlot(slot))
		}
		if err := r.backend.InitTextureView(provider, b, data); err != nil {
			return 0, nil, fmt.Errorf("failed to create %s: %w", role, err)
		}
	}

	g, b, ok := fs.BindingForRole(shader.AnnotationArgTextureSampler)
	if !ok {
		return 0, nil, fmt.Errorf("fragment shader has no %s binding", shader.AnnotationArgTextureSampler)
	}
	if err := useGroup(g); err != nil {
		return 0, nil, err
	}
	if err := r.backend.InitSampler(provider, b, mat.SamplerStagingData()); err != nil {
		return 0, nil, fmt.Errorf("failed to create sampler: %w", err)
	}

	if err := r.backend.InitBindGroup(provider, descriptors[group], nil, nil); err != nil {
		return 0, nil, err
	}
	mat.SetPipelineKey(p.PipelineKey())
	mat.SetBindGroupProvider(provider)
	return group, provider, nil
}

func (r *renderer) WriteInstances(data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.framePipeline == nil {
		return errors.New("renderer is not prepared")
	}
	if len(data)%r.instanceStride != 0 {
		return fmt.Errorf("instance data of %d bytes is not a multiple of the %d-byte record", len(data), r.instanceStride)
	}
	if n, capacity := len(data)/r.instanceStride, r.mesh.MeshProvider().InstanceCapacity(); n > capacity {
		return fmt.Errorf("%d instance records exceed the capacity of %d", n, capacity)
	}
	return r.backend.WriteInstances(r.mesh.MeshProvider(), data)
}

func (r *renderer) RenderFrame(views [camera.NumWindows]common.Mat4, instanceCount uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.framePipeline == nil {
		return errors.New("renderer is not prepared")
	}
	if capacity := r.mesh.MeshProvider().InstanceCapacity(); int(instanceCount) > capacity {
		return fmt.Errorf("instance count %d exceeds the capacity of %d", instanceCount, capacity)
	}
	if r.width <= 0 || r.height <= 0 {
		return nil
	}

	projection := r.projection.Matrix(r.width, r.height)
	pretransform := r.projection.Pretransform()

	if err := r.backend.BeginFrame(); err != nil {
		return fmt.Errorf("failed to begin frame: %w", err)
	}

	for i, vp := range SplitViewports(r.width, r.height) {
		if vp.Empty() {
			continue
		}
		r.backend.SetViewport(vp)

		constants := camera.NewViewportConstants(views[i], pretransform, projection, r.globalRotation)
		offset := uint32(i * ConstantSlotStride)
		r.backend.WriteBuffers([]bind_group_provider.BufferWrite{{
			Provider: r.constantsProvider,
			Binding:  r.constantsBinding,
			Offset:   uint64(offset),
			Data:     constants.Marshal(),
		}})

		dynamicOffsets := make([][]uint32, len(r.bindGroups))
		dynamicOffsets[r.constantsGroup] = []uint32{offset}
		r.backend.DrawIndexedInstanced(DrawCommand{
			Pipeline:       r.framePipeline,
			Mesh:           r.mesh.MeshProvider(),
			BindGroups:     r.bindGroups,
			DynamicOffsets: dynamicOffsets,
			IndexCount:     uint32(r.mesh.IndexCount()),
			InstanceCount:  instanceCount,
		})
	}

	if err := r.backend.EndFrame(); err != nil {
		return fmt.Errorf("failed to submit frame: %w", err)
	}
	r.backend.Present()
	return nil
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = width, height
	if width > 0 && height > 0 {
		r.backend.ConfigureSurface(width, height)
	}
}

func (r *renderer) SurfaceSize() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Projection() camera.Projection {
	return r.projection
}

func (r *renderer) SetGlobalRotation(m common.Mat4) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.globalRotation = m
}

func (r *renderer) GlobalRotation() common.Mat4 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.globalRotation
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mesh != nil && r.mesh.MeshProvider() != nil {
		r.mesh.MeshProvider().Release()
	}
	for _, p := range []bind_group_provider.BindGroupProvider{r.constantsProvider, r.materialProvider} {
		if p != nil {
			p.Release()
		}
	}
	r.framePipeline = nil
	r.bindGroups = nil
	r.backend.Release()
}

// instanceStride returns the array stride of the per-instance vertex buffer layout.
func instanceStride(layouts []wgpu.VertexBufferLayout) (int, error) {
	for _, l := range layouts {
		if l.StepMode == wgpu.VertexStepModeInstance {
			return int(l.ArrayStride), nil
		}
	}
	return 0, errors.New("vertex shader has no per-instance input")
}

// constantsBinding finds the dynamic viewport constants declaration of the vertex shader.
func constantsBinding(vs shader.Shader) (int, int, bool) {
	if vs == nil {
		return -1, -1, false
	}
	for _, d := range vs.Declarations() {
		if d.Type != shader.AnnotationTypeBindingGroup || !d.Dynamic || len(d.Args) != 3 {
			continue
		}
		if d.Args[2] == shader.AnnotationArgViewportConstants {
			return *d.Group, *d.Binding, true
		}
	}
	return -1, -1, false
}
