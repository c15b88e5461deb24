package shader

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// wgslVertexFormatMap maps WGSL type names to their corresponding wgpu vertex format and byte size
var wgslVertexFormatMap = map[string]vertexFormatInfo{
	"f32":       {wgpu.VertexFormatFloat32, 4},
	"vec2f":     {wgpu.VertexFormatFloat32x2, 8},
	"vec2<f32>": {wgpu.VertexFormatFloat32x2, 8},
	"vec3f":     {wgpu.VertexFormatFloat32x3, 12},
	"vec3<f32>": {wgpu.VertexFormatFloat32x3, 12},
	"vec4f":     {wgpu.VertexFormatFloat32x4, 16},
	"vec4<f32>": {wgpu.VertexFormatFloat32x4, 16},
	"i32":       {wgpu.VertexFormatSint32, 4},
	"vec2<i32>": {wgpu.VertexFormatSint32x2, 8},
	"vec4<i32>": {wgpu.VertexFormatSint32x4, 16},
	"u32":       {wgpu.VertexFormatUint32, 4},
	"vec2<u32>": {wgpu.VertexFormatUint32x2, 8},
	"vec4<u32>": {wgpu.VertexFormatUint32x4, 16},
}

// wgslSampledTextureMap maps WGSL sampled texture base names to their view dimension and multisampled flag
var wgslSampledTextureMap = map[string]sampledTextureInfo{
	"texture_2d":              {wgpu.TextureViewDimension2D, false},
	"texture_2d_array":        {wgpu.TextureViewDimension2DArray, false},
	"texture_cube":            {wgpu.TextureViewDimensionCube, false},
	"texture_multisampled_2d": {wgpu.TextureViewDimension2D, true},
}

// wgslSampleTypeMap maps WGSL scalar type parameters to their wgpu texture sample type
var wgslSampleTypeMap = map[string]wgpu.TextureSampleType{
	"f32": wgpu.TextureSampleTypeFloat,
	"i32": wgpu.TextureSampleTypeSint,
	"u32": wgpu.TextureSampleTypeUint,
}

// instanceStructPrefix marks vertex input structs that advance once per instance.
const instanceStructPrefix = "Instance"

var (
	// structBlockRegex matches struct declarations and captures the name and body
	structBlockRegex = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)

	// locationRegex matches @location(N) attributes
	locationRegex = regexp.MustCompile(`@location\((\d+)\)`)

	// builtinRegex matches @builtin(...) attributes
	builtinRegex = regexp.MustCompile(`@builtin\(\w+\)`)

	// fieldRegex matches a struct field line: optional attributes, name, colon, type.
	fieldRegex = regexp.MustCompile(`(?:(?:@\w+\([^)]*\)\s*)*)*\s*(\w+)\s*:\s*(.+)`)

	// vertexEntryRegex matches @vertex functions and captures the entry point name
	vertexEntryRegex = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`)

	// fragmentEntryRegex matches @fragment functions and captures the entry point name
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`)

	// bindGroupDeclRegex captures group, binding, optional address space, variable name, and type
	// from declarations like: @group(0) @binding(0) var<uniform> constants: ViewportConstants;
	// or handle types: @group(1) @binding(0) var base_texture: texture_2d<f32>;
	bindGroupDeclRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
)

// parseVertexLayouts extracts vertex buffer layouts from WGSL source code, one per pure vertex
// input struct (has @location fields and no @builtin fields), in source order. The slice index
// is the vertex buffer slot. Structs whose name starts with "Instance" step per instance.
//
// Parameters:
//   - source: the WGSL source code string
//
// Returns:
//   - []wgpu.VertexBufferLayout: vertex layouts in slot order
//   - error: if a field type has no vertex format or a location is used twice
func parseVertexLayouts(source string) ([]wgpu.VertexBufferLayout, error) {
	cleaned := stripComments(source)
	structs := parseStructBlocks(cleaned)

	var result []wgpu.VertexBufferLayout
	seen := make(map[uint32]string)
	for _, ps := range structs {
		if !isVertexInputStruct(ps) {
			continue
		}
		layout, err := buildVertexBufferLayout(ps)
		if err != nil {
			return nil, err
		}
		for _, attr := range layout.Attributes {
			if owner, dup := seen[attr.ShaderLocation]; dup {
				return nil, fmt.Errorf("location %d declared by both %s and %s", attr.ShaderLocation, owner, ps.name)
			}
			seen[attr.ShaderLocation] = ps.name
		}
		result = append(result, layout)
	}

	return result, nil
}

// parseBindGroupLayouts extracts all @group(N) @binding(M) resource declarations from WGSL
// source and returns them as wgpu.BindGroupLayoutDescriptor values grouped by group index.
// Each descriptor's entries are sorted by binding index. The provided visibility flag is
// applied to all entries.
//
// Parameters:
//   - source: the WGSL source code string
//   - visibility: the shader stage visibility flag to set on each entry
//
// Returns:
//   - map[int]wgpu.BindGroupLayoutDescriptor: layout descriptors keyed by group index
func parseBindGroupLayouts(source string, visibility wgpu.ShaderStage) map[int]wgpu.BindGroupLayoutDescriptor {
	groups := make(map[int][]wgpu.BindGroupLayoutEntry)
	cleaned := stripComments(source)

	structs := parseStructBlocks(cleaned)
	structSizes := computeStructSizes(structs)

	matches := bindGroupDeclRegex.FindAllStringSubmatch(cleaned, -1)
	for _, match := range matches {
		group, _ := strconv.Atoi(match[1])
		binding, _ := strconv.Atoi(match[2])
		addressSpace := strings.TrimSpace(match[3])
		typeName := strings.TrimSpace(match[5])

		entry := classifyResource(uint32(binding), visibility, addressSpace, typeName)

		if entry.Buffer.Type != wgpu.BufferBindingTypeUndefined {
			if layout, ok := resolveTypeLayout(typeName, structSizes); ok && layout.size > 0 {
				entry.Buffer.MinBindingSize = layout.size
			}
		}

		groups[group] = append(groups[group], entry)
	}

	result := make(map[int]wgpu.BindGroupLayoutDescriptor, len(groups))
	for g, entries := range groups {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Binding < entries[j].Binding
		})
		result[g] = wgpu.BindGroupLayoutDescriptor{
			Entries: entries,
		}
	}

	return result
}

// parseEntryPoint extracts the entry point function name for the given shader type
// from WGSL source. Returns an empty string if no matching entry point is found.
//
// Parameters:
//   - source: the WGSL source code string
//   - shaderType: ShaderTypeVertex or ShaderTypeFragment
//
// Returns:
//   - string: the entry point function name, or empty string if not found
func parseEntryPoint(source string, shaderType ShaderType) string {
	cleaned := stripComments(source)

	var re *regexp.Regexp
	switch shaderType {
	case ShaderTypeVertex:
		re = vertexEntryRegex
	case ShaderTypeFragment:
		re = fragmentEntryRegex
	default:
		return ""
	}

	if match := re.FindStringSubmatch(cleaned); match != nil {
		return match[1]
	}
	return ""
}

// parseStructBlocks finds all struct { ... } blocks in the cleaned WGSL source
//
// Parameters:
//   - source: WGSL source with comments already stripped
//
// Returns:
//   - []parsedStruct: all struct blocks found in the source
func parseStructBlocks(source string) []parsedStruct {
	matches := structBlockRegex.FindAllStringSubmatch(source, -1)
	structs := make([]parsedStruct, 0, len(matches))

	for _, match := range matches {
		structs = append(structs, parsedStruct{
			name:   match[1],
			fields: parseStructFields(match[2]),
		})
	}

	return structs
}

// parseStructFields parses the body of a struct block into individual fields,
// extracting @location and @builtin attributes along with the field name and type
//
// Parameters:
//   - body: the content between { and } of a struct declaration
//
// Returns:
//   - []parsedField: all fields found in the struct body
func parseStructFields(body string) []parsedField {
	lines := splitAtTopLevelCommas(body)
	fields := make([]parsedField, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var field parsedField
		field.isBuiltin = builtinRegex.MatchString(line)

		field.location = -1
		if locMatch := locationRegex.FindStringSubmatch(line); locMatch != nil {
			if loc, err := strconv.Atoi(locMatch[1]); err == nil {
				field.location = loc
			}
		}

		fm := fieldRegex.FindStringSubmatch(line)
		if fm == nil {
			continue
		}
		field.name = fm[1]
		field.typeName = strings.TrimSpace(fm[2])

		fields = append(fields, field)
	}

	return fields
}
