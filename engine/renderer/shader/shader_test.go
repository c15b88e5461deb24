package shader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMobileVertexShaderLayouts(t *testing.T) {
	vs, _, err := NewMobileShaders()
	require.NoError(t, err)

	assert.Equal(t, "vs_main", vs.EntryPoint())
	assert.Equal(t, ShaderTypeVertex, vs.ShaderType())
	assert.NotContains(t, vs.Source(), annotationPrefix)
	assert.Contains(t, vs.Source(), "@group(0) @binding(0) var<uniform> constants: ViewportConstants;")

	layouts := vs.VertexLayouts()
	require.Len(t, layouts, 2)

	mesh := layouts[0]
	assert.Equal(t, uint64(20), mesh.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, mesh.StepMode)
	require.Len(t, mesh.Attributes, 2)
	assert.Equal(t, wgpu.VertexFormatFloat32x3, mesh.Attributes[0].Format)
	assert.Equal(t, uint32(0), mesh.Attributes[0].ShaderLocation)
	assert.Equal(t, uint64(12), mesh.Attributes[1].Offset)
	assert.Equal(t, uint32(1), mesh.Attributes[1].ShaderLocation)

	inst := layouts[1]
	assert.Equal(t, uint64(68), inst.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeInstance, inst.StepMode)
	require.Len(t, inst.Attributes, 5)
	for i := range 4 {
		assert.Equal(t, wgpu.VertexFormatFloat32x4, inst.Attributes[i].Format)
		assert.Equal(t, uint32(2+i), inst.Attributes[i].ShaderLocation)
		assert.Equal(t, uint64(16*i), inst.Attributes[i].Offset)
	}
	assert.Equal(t, wgpu.VertexFormatUint32, inst.Attributes[4].Format)
	assert.Equal(t, uint32(6), inst.Attributes[4].ShaderLocation)
	assert.Equal(t, uint64(64), inst.Attributes[4].Offset)
}

func TestMobileVertexConstantsBinding(t *testing.T) {
	vs, _, err := NewMobileShaders()
	require.NoError(t, err)

	desc := vs.BindGroupLayoutDescriptor(0)
	require.Len(t, desc.Entries, 1)
	entry := desc.Entries[0]
	assert.Equal(t, wgpu.BufferBindingTypeUniform, entry.Buffer.Type)
	assert.Equal(t, uint64(128), entry.Buffer.MinBindingSize)
	assert.True(t, entry.Buffer.HasDynamicOffset)
	assert.Equal(t, wgpu.ShaderStageVertex, entry.Visibility)

	decls := vs.Declarations()
	require.Len(t, decls, 1)
	assert.Equal(t, AnnotationTypeBindingGroup, decls[0].Type)
	assert.True(t, decls[0].Dynamic)
}

func TestMobileFragmentMaterialBindings(t *testing.T) {
	_, fs, err := NewMobileShaders()
	require.NoError(t, err)

	assert.Equal(t, "fs_main", fs.EntryPoint())
	assert.Empty(t, fs.VertexLayouts())

	desc := fs.BindGroupLayoutDescriptor(1)
	require.Len(t, desc.Entries, 5)
	for i := range 4 {
		assert.Equal(t, uint32(i), desc.Entries[i].Binding)
		assert.Equal(t, wgpu.TextureSampleTypeFloat, desc.Entries[i].Texture.SampleType)
		assert.Equal(t, wgpu.TextureViewDimension2D, desc.Entries[i].Texture.ViewDimension)
	}
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, desc.Entries[4].Sampler.Type)
	assert.Empty(t, fs.BindGroupLayoutDescriptor(0).Entries)

	roles := []AnnotationArg{
		AnnotationArgBaseTexture,
		AnnotationArgDetailTexture,
		AnnotationArgBlendTexture,
		AnnotationArgAltTexture,
		AnnotationArgTextureSampler,
	}
	for i, role := range roles {
		group, binding, ok := fs.BindingForRole(role)
		require.True(t, ok, "role %s", role)
		assert.Equal(t, 1, group)
		assert.Equal(t, i, binding)
	}

	_, _, ok := fs.BindingForRole(AnnotationArgViewportConstants)
	assert.False(t, ok)
}

func TestNewShaderErrors(t *testing.T) {
	tests := []struct {
		name   string
		typ    ShaderType
		source string
		errMsg string
	}{
		{"empty", ShaderTypeVertex, "", "empty source"},
		{"missing entry point", ShaderTypeFragment, "fn helper() {}", "entry point"},
		{"unknown annotation", ShaderTypeVertex, "//@oxy:frobnicate x\n@vertex fn main() {}", "unknown @oxy annotation"},
		{"unknown struct", ShaderTypeVertex, "//@oxy:include light\n@vertex fn main() {}", "unknown struct type"},
		{"double include", ShaderTypeVertex, "//@oxy:include vertex\n//@oxy:include vertex\n@vertex fn main() {}", "more than once"},
		{
			"duplicate location",
			ShaderTypeVertex,
			"struct A { @location(0) a: vec3<f32>, }\nstruct B { @location(0) b: vec2<f32>, }\n@vertex fn main(a: A, b: B) {}",
			"location 0",
		},
		{
			"unsupported attribute type",
			ShaderTypeVertex,
			"struct A { @location(0) a: mat4x4<f32>, }\n@vertex fn main(a: A) {}",
			"unsupported vertex type",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewShader("test", tt.typ, tt.source)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestParseAnnotation(t *testing.T) {
	a, err := parseAnnotation("    let x = 1.0;", 1)
	assert.NoError(t, err)
	assert.Nil(t, a)

	a, err = parseAnnotation("//@oxy:group 0 2 storage_read data instance", 4)
	require.NoError(t, err)
	assert.Equal(t, 0, *a.Group)
	assert.Equal(t, 2, *a.Binding)
	assert.False(t, a.Dynamic)

	_, err = parseAnnotation("//@oxy:group 0 0 storage_uniform c viewport_constants static", 5)
	assert.ErrorContains(t, err, "unknown flag")

	_, err = parseAnnotation("//@oxy:group x 0 storage_uniform c viewport_constants", 6)
	assert.ErrorContains(t, err, "invalid group number")

	_, err = parseAnnotation("//@oxy:provider 1 0 material normal_texture", 7)
	assert.ErrorContains(t, err, "unknown binding role")
}

func TestWithExtraVisibility(t *testing.T) {
	vs, err := NewShader("vs", ShaderTypeVertex, MobileVertexSource, WithExtraVisibility(wgpu.ShaderStageFragment))
	require.NoError(t, err)
	entry := vs.BindGroupLayoutDescriptor(0).Entries[0]
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, entry.Visibility)
}

func TestNewShaderFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frag.wgsl")
	require.NoError(t, os.WriteFile(path, []byte(MobileFragmentSource), 0o644))

	fs, err := NewShaderFromPath("frag", ShaderTypeFragment, path)
	require.NoError(t, err)
	assert.Equal(t, "frag", fs.Module().Label)
	assert.True(t, strings.Contains(fs.Module().WGSLDescriptor.Code, "fs_main"))

	_, err = NewShaderFromPath("missing", ShaderTypeFragment, filepath.Join(t.TempDir(), "nope.wgsl"))
	assert.ErrorContains(t, err, "failed to read source file")
}

func TestComputeStructSizes(t *testing.T) {
	structs := parseStructBlocks(stripComments(`
struct Inner { a: vec3<f32>, b: f32, }
struct Outer { m: mat4x4<f32>, inner: Inner, tail: array<vec4<f32>, 2>, }
`))
	sizes := computeStructSizes(structs)
	assert.Equal(t, uint64(16), sizes["Inner"].size)
	assert.Equal(t, uint64(64+16+32), sizes["Outer"].size)
}
