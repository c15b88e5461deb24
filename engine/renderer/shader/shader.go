package shader

import (
	"fmt"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies which render stage a shader feeds.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment shader type, used for fragment processing in pair with a vertex shader.
	ShaderTypeFragment
)

// String returns the stage name used in logs and errors.
func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderType(%d)", int(t))
	}
}

// shader is the implementation of the Shader interface.
// It holds all of the persistent shader data required for pipeline creation and material binding.
type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	vertexLayouts              []wgpu.VertexBufferLayout
	entryPoint                 string
	module                     *wgpu.ShaderModuleDescriptor
	extraVisibility            wgpu.ShaderStage

	pp PreProcessor
}

// Shader defines the interface for a loaded and parsed WGSL shader. It exposes the shader's
// unique key, source code, entry point, bind group layout descriptors, vertex buffer layouts,
// and pre-processor declarations needed for pipeline creation and resource wiring.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for caching and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the pre-processed WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// BindGroupLayoutDescriptor retrieves the bind group layout descriptor for a group index.
	//
	// Parameters:
	//   - group: the bind group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor, or an empty descriptor if the shader declares nothing in that group
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors retrieves all parsed bind group layout descriptors keyed by group index.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindingForRole resolves a provider binding role (e.g. AnnotationArgBaseTexture) to its group and binding.
	//
	// Parameters:
	//   - role: the binding role declared by an @oxy:provider annotation
	//
	// Returns:
	//   - int: the bind group index
	//   - int: the binding index
	//   - bool: true if the shader declares the role
	BindingForRole(role AnnotationArg) (int, int, bool)

	// VertexLayouts returns the vertex buffer layouts in slot order.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the layouts, empty for fragment shaders
	VertexLayouts() []wgpu.VertexBufferLayout

	// EntryPoint returns the entry point name for this shader.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	EntryPoint() string

	// Module returns the wgpu.ShaderModuleDescriptor built from the processed source.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the shader module descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor

	// ShaderType returns the type of the shader.
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType

	// Declarations returns the group and provider annotations parsed from the shader source.
	//
	// Returns:
	//   - []Annotation: the declarations in source order
	Declarations() []Annotation
}

var _ Shader = &shader{}

// NewShader creates a Shader from WGSL source. The source is pre-processed, then the entry
// point, vertex layouts (vertex shaders only) and bind group layouts are parsed from it.
//
// Parameters:
//   - key: a unique identifier for the shader, used for caching and lookups
//   - shaderType: the stage the shader feeds
//   - source: the WGSL source, which may contain @oxy: annotations
//   - options: functional options applied before parsing
//
// Returns:
//   - Shader: the parsed shader
//   - error: if pre-processing fails, the entry point is missing, or a vertex layout is invalid
func NewShader(key string, shaderType ShaderType, source string, options ...ShaderBuilderOption) (Shader, error) {
	if source == "" {
		return nil, fmt.Errorf("shader %s: empty source", key)
	}
	s := &shader{
		key:                        key,
		shaderType:                 shaderType,
		bindGroupLayoutDescriptors: make(map[int]wgpu.BindGroupLayoutDescriptor),
		pp:                         NewPreProcessor(),
	}
	for _, option := range options {
		option(s)
	}
	if err := s.parseSource(source); err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	return s, nil
}

// NewShaderFromPath reads WGSL source from disk and creates a Shader from it.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - shaderType: the stage the shader feeds
//   - sourcePath: the file path to read WGSL source from
//   - options: functional options applied before parsing
//
// Returns:
//   - Shader: the parsed shader
//   - error: if the file cannot be read or the source fails to parse
func NewShaderFromPath(key string, shaderType ShaderType, sourcePath string, options ...ShaderBuilderOption) (Shader, error) {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("shader %s: failed to read source file %q: %w", key, sourcePath, err)
	}
	return NewShader(key, shaderType, string(data), options...)
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindingForRole(role AnnotationArg) (int, int, bool) {
	for _, d := range s.pp.Declarations() {
		if d.Type == AnnotationTypeProvider && len(d.Args) == 2 && d.Args[1] == role {
			return *d.Group, *d.Binding, true
		}
	}
	return -1, -1, false
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) Declarations() []Annotation {
	return s.pp.Declarations()
}

// parseSource pre-processes the WGSL source, builds the shader module descriptor and extracts
// layout metadata for the shader's stage.
func (s *shader) parseSource(source string) error {
	processed, err := s.pp.Process(source)
	if err != nil {
		return fmt.Errorf("failed to pre-process source: %w", err)
	}
	s.source = processed
	s.module = &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}

	s.entryPoint = parseEntryPoint(s.source, s.shaderType)
	if s.entryPoint == "" {
		return fmt.Errorf("no @%s entry point found", s.shaderType)
	}

	var visibility wgpu.ShaderStage
	switch s.shaderType {
	case ShaderTypeVertex:
		visibility = wgpu.ShaderStageVertex
		if s.vertexLayouts, err = parseVertexLayouts(s.source); err != nil {
			return fmt.Errorf("invalid vertex layout: %w", err)
		}
	case ShaderTypeFragment:
		visibility = wgpu.ShaderStageFragment
	default:
		return fmt.Errorf("unsupported shader type %v", s.shaderType)
	}
	s.bindGroupLayoutDescriptors = parseBindGroupLayouts(s.source, visibility|s.extraVisibility)
	s.applyDynamicOffsets()
	return nil
}

// applyDynamicOffsets marks buffer entries declared with the dynamic flag.
func (s *shader) applyDynamicOffsets() {
	for _, d := range s.pp.Declarations() {
		if d.Type != AnnotationTypeBindingGroup || !d.Dynamic {
			continue
		}
		desc, ok := s.bindGroupLayoutDescriptors[*d.Group]
		if !ok {
			continue
		}
		for i := range desc.Entries {
			if desc.Entries[i].Binding == uint32(*d.Binding) {
				desc.Entries[i].Buffer.HasDynamicOffset = true
			}
		}
	}
}
