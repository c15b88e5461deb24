package pipeline

import (
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/oxy-mobile/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
// It holds the underlying WebGPU render pipeline and the state used to create it.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	// both shaders are required before the pipeline can be registered with a renderer
	vertexShader, fragmentShader shader.Shader

	// renderPipeline is nil until the renderer registers the pipeline
	renderPipeline *wgpu.RenderPipeline

	// the following properties configure the pipeline during creation and are set with the builder options

	depthTestEnabled  bool
	depthWriteEnabled bool
	cullMode          wgpu.CullMode
	frontFace         wgpu.FrontFace
}

// Pipeline defines the interface for a GPU render pipeline (vertex + fragment shaders). It holds
// all configuration state required for pipeline creation including depth and face culling settings.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader retrieves the shader associated with the specified type if it exists, nil otherwise.
	//
	// Parameters:
	//   - shaderType: the type of shader to retrieve (vertex or fragment)
	//
	// Returns:
	//   - shader.Shader: the shader associated with the specified type, or nil if not set
	Shader(shaderType shader.ShaderType) shader.Shader

	// RenderPipeline returns the underlying GPU pipeline, or nil before registration.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the underlying pipeline object
	RenderPipeline() *wgpu.RenderPipeline

	// VertexLayouts returns the vertex buffer layouts of the vertex shader in slot order.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the layouts
	VertexLayouts() []wgpu.VertexBufferLayout

	// BindGroupLayoutDescriptors merges the bind group layouts of both stages. An entry declared
	// by both stages at the same group and binding is kept once with the union of their visibilities.
	//
	// Returns:
	//   - []wgpu.BindGroupLayoutDescriptor: descriptors indexed by group, with empty descriptors filling gaps
	BindGroupLayoutDescriptors() []wgpu.BindGroupLayoutDescriptor

	// DepthTestEnabled returns whether depth testing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth testing is enabled, false otherwise
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether depth writing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth writing is enabled, false otherwise
	DepthWriteEnabled() bool

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode for this pipeline (e.g., wgpu.CullModeNone, wgpu.CullModeFront, wgpu.CullModeBack)
	CullMode() wgpu.CullMode

	// FrontFace returns the front face winding order configured for this pipeline.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order for this pipeline (e.g., wgpu.FrontFaceCCW, wgpu.FrontFaceCW)
	FrontFace() wgpu.FrontFace

	// SetRenderPipeline sets the render pipeline
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)
}

var _ Pipeline = &pipeline{}

// NewPipeline is the entry point to create a new render Pipeline. Both a vertex and a fragment shader must be supplied.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
//   - error: if a shader is missing or has the wrong stage, or the two stages disagree on a binding's resource type
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) (Pipeline, error) {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		cullMode:          wgpu.CullModeNone,
		frontFace:         wgpu.FrontFaceCCW,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.vertexShader == nil || p.fragmentShader == nil {
		return nil, fmt.Errorf("pipeline %s: vertex and fragment shaders are required", pipelineKey)
	}
	if p.vertexShader.ShaderType() != shader.ShaderTypeVertex {
		return nil, fmt.Errorf("pipeline %s: shader %s is not a vertex shader", pipelineKey, p.vertexShader.Key())
	}
	if p.fragmentShader.ShaderType() != shader.ShaderTypeFragment {
		return nil, fmt.Errorf("pipeline %s: shader %s is not a fragment shader", pipelineKey, p.fragmentShader.Key())
	}
	if _, err := mergeBindGroupLayouts(p.vertexShader.BindGroupLayoutDescriptors(), p.fragmentShader.BindGroupLayoutDescriptors()); err != nil {
		return nil, fmt.Errorf("pipeline %s: %w", pipelineKey, err)
	}
	return p, nil
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) VertexLayouts() []wgpu.VertexBufferLayout {
	return p.vertexShader.VertexLayouts()
}

func (p *pipeline) BindGroupLayoutDescriptors() []wgpu.BindGroupLayoutDescriptor {
	merged, _ := mergeBindGroupLayouts(p.vertexShader.BindGroupLayoutDescriptors(), p.fragmentShader.BindGroupLayoutDescriptors())
	return merged
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

// mergeBindGroupLayouts combines the per-stage layouts into one descriptor per group index.
// Gaps in the group indices are filled with empty descriptors so the slice index is the group.
func mergeBindGroupLayouts(stages ...map[int]wgpu.BindGroupLayoutDescriptor) ([]wgpu.BindGroupLayoutDescriptor, error) {
	maxGroup := -1
	byGroup := make(map[int]map[uint32]wgpu.BindGroupLayoutEntry)
	for _, stage := range stages {
		for group, desc := range stage {
			if group > maxGroup {
				maxGroup = group
			}
			if byGroup[group] == nil {
				byGroup[group] = make(map[uint32]wgpu.BindGroupLayoutEntry)
			}
			for _, entry := range desc.Entries {
				existing, ok := byGroup[group][entry.Binding]
				if !ok {
					byGroup[group][entry.Binding] = entry
					continue
				}
				if existing.Buffer.Type != entry.Buffer.Type ||
					existing.Texture.SampleType != entry.Texture.SampleType ||
					existing.Sampler.Type != entry.Sampler.Type {
					return nil, fmt.Errorf("group %d binding %d declared with different resource types", group, entry.Binding)
				}
				existing.Visibility |= entry.Visibility
				existing.Buffer.HasDynamicOffset = existing.Buffer.HasDynamicOffset || entry.Buffer.HasDynamicOffset
				existing.Buffer.MinBindingSize = max(existing.Buffer.MinBindingSize, entry.Buffer.MinBindingSize)
				byGroup[group][entry.Binding] = existing
			}
		}
	}

	result := make([]wgpu.BindGroupLayoutDescriptor, maxGroup+1)
	for group, entries := range byGroup {
		list := make([]wgpu.BindGroupLayoutEntry, 0, len(entries))
		for _, e := range entries {
			list = append(list, e)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].Binding < list[j].Binding })
		result[group] = wgpu.BindGroupLayoutDescriptor{Entries: list}
	}
	return result, nil
}
