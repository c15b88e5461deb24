package shader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// wgslPrimitiveLayoutMap maps WGSL primitive, vector, matrix, and atomic type names
// to their byte size and alignment as WGSL defines them.
//
// Reference: https://www.w3.org/TR/WGSL/#alignment-and-size
var wgslPrimitiveLayoutMap = map[string]wgslTypeLayout{
	// Scalars
	"f32":  {4, 4},
	"i32":  {4, 4},
	"u32":  {4, 4},
	"bool": {4, 4},

	// Vectors – f32
	"vec2<f32>": {8, 8},
	"vec2f":     {8, 8},
	"vec3<f32>": {12, 16},
	"vec3f":     {12, 16},
	"vec4<f32>": {16, 16},
	"vec4f":     {16, 16},

	// Vectors – u32
	"vec2<u32>": {8, 8},
	"vec2u":     {8, 8},
	"vec4<u32>": {16, 16},
	"vec4u":     {16, 16},

	// Matrices – matCxR<f32>: C columns of vecR<f32>, stride = roundUp(align(vecR), size(vecR))
	"mat3x3<f32>": {48, 16},
	"mat4x4<f32>": {64, 16},
}

// roundUpAlign rounds value up to the next multiple of alignment.
// Alignment must be a power of two.
//
// Parameters:
//   - alignment: the required alignment (must be a power of two)
//   - value: the value to align
//
// Returns:
//   - uint64: value rounded up to the next multiple of alignment
func roundUpAlign(alignment, value uint64) uint64 {
	if alignment == 0 {
		return value
	}
	return (value + alignment - 1) &^ (alignment - 1)
}

// resolveTypeLayout returns the size and alignment of a WGSL type: a primitive, a struct
// already in knownTypes, or a fixed-size array<T, N> of those.
//
// Parameters:
//   - typeName: e.g. "f32", "ViewportConstants", "array<vec4<f32>, 6>"
//   - knownTypes: struct layouts resolved so far
//
// Returns:
//   - wgslTypeLayout: the resolved layout
//   - bool: false for unknown types and runtime-sized arrays
func resolveTypeLayout(typeName string, knownTypes map[string]wgslTypeLayout) (wgslTypeLayout, bool) {
	if layout, ok := wgslPrimitiveLayoutMap[typeName]; ok {
		return layout, true
	}
	if layout, ok := knownTypes[typeName]; ok {
		return layout, true
	}

	inner, ok := strings.CutPrefix(typeName, "array<")
	if !ok || !strings.HasSuffix(inner, ">") {
		return wgslTypeLayout{}, false
	}
	elemType, countStr, ok := strings.Cut(inner[:len(inner)-1], ",")
	if !ok {
		return wgslTypeLayout{}, false
	}
	elem, ok := resolveTypeLayout(strings.TrimSpace(elemType), knownTypes)
	if !ok {
		return wgslTypeLayout{}, false
	}
	count, err := strconv.ParseUint(strings.TrimSpace(countStr), 10, 64)
	if err != nil {
		return wgslTypeLayout{}, false
	}
	return wgslTypeLayout{count * roundUpAlign(elem.align, elem.size), elem.align}, true
}

// computeStructLayout lays a struct out field by field: each field starts at its next aligned
// offset and the total is rounded up to the largest field alignment. @builtin fields take no
// buffer space.
//
// Parameters:
//   - ps: the parsed struct
//   - knownTypes: struct layouts resolved so far
//
// Returns:
//   - wgslTypeLayout: the computed layout
//   - bool: false if any field type is not resolvable yet
func computeStructLayout(ps parsedStruct, knownTypes map[string]wgslTypeLayout) (wgslTypeLayout, bool) {
	offset := uint64(0)
	maxAlign := uint64(1)

	for _, field := range ps.fields {
		if field.isBuiltin {
			continue
		}
		fieldLayout, ok := resolveTypeLayout(field.typeName, knownTypes)
		if !ok {
			return wgslTypeLayout{}, false
		}
		offset = roundUpAlign(fieldLayout.align, offset) + fieldLayout.size
		maxAlign = max(maxAlign, fieldLayout.align)
	}

	return wgslTypeLayout{roundUpAlign(maxAlign, offset), maxAlign}, true
}

// computeStructSizes computes the byte size and alignment of all parsed WGSL structs.
// It resolves dependencies between structs iteratively, handling cases where one struct
// contains fields typed as another struct. Returns a map from struct name to layout.
//
// Parameters:
//   - structs: all parsed struct blocks from the WGSL source
//
// Returns:
//   - map[string]wgslTypeLayout: a map from struct name to computed layout
func computeStructSizes(structs []parsedStruct) map[string]wgslTypeLayout {
	resolved := make(map[string]wgslTypeLayout, len(structs))
	remaining := make([]parsedStruct, len(structs))
	copy(remaining, structs)

	for {
		progress := false
		next := remaining[:0]

		for _, ps := range remaining {
			if layout, ok := computeStructLayout(ps, resolved); ok {
				resolved[ps.name] = layout
				progress = true
			} else {
				next = append(next, ps)
			}
		}

		remaining = next
		if !progress || len(remaining) == 0 {
			break
		}
	}

	return resolved
}

// classifyResource creates a wgpu.BindGroupLayoutEntry for a uniform buffer, a sampled
// texture or a filtering sampler.
//
// Parameters:
//   - binding: the binding index from @binding(N)
//   - visibility: the shader stage visibility flag
//   - addressSpace: "uniform" for buffers, empty for handle types
//   - typeName: the WGSL type string (e.g. "ViewportConstants", "texture_2d<f32>", "sampler")
//
// Returns:
//   - wgpu.BindGroupLayoutEntry: a fully populated layout entry for the resource
func classifyResource(binding uint32, visibility wgpu.ShaderStage, addressSpace, typeName string) wgpu.BindGroupLayoutEntry {
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: visibility,
	}

	switch {
	case addressSpace == "uniform":
		entry.Buffer.Type = wgpu.BufferBindingTypeUniform
	case typeName == "sampler":
		entry.Sampler.Type = wgpu.SamplerBindingTypeFiltering
	case strings.HasPrefix(typeName, "texture_"):
		classifySampledTexture(typeName, &entry)
	}

	return entry
}

// classifySampledTexture parses a sampled texture type (e.g. "texture_2d<f32>") and populates
// the texture layout fields on the entry
//
// Parameters:
//   - typeName: the full WGSL texture type string
//   - entry: the bind group layout entry to populate
func classifySampledTexture(typeName string, entry *wgpu.BindGroupLayoutEntry) {
	base, param := splitTypeParams(typeName)

	if info, ok := wgslSampledTextureMap[base]; ok {
		entry.Texture.ViewDimension = info.viewDimension
		entry.Texture.Multisampled = info.multisampled
	}
	if st, ok := wgslSampleTypeMap[param]; ok {
		entry.Texture.SampleType = st
	}
}

// splitTypeParams splits a WGSL parameterized type into its base name and parameter string.
// For "texture_2d<f32>" returns ("texture_2d", "f32").
// For "texture_depth_2d" (no params) returns ("texture_depth_2d", "").
//
// Parameters:
//   - typeName: the WGSL type string to split
//
// Returns:
//   - base: the type name before the first angle bracket
//   - params: the content between angle brackets, or empty if none
func splitTypeParams(typeName string) (base string, params string) {
	before, after, ok := strings.Cut(typeName, "<")
	if !ok {
		return typeName, ""
	}
	base = before
	params = strings.TrimSuffix(after, ">")
	params = strings.TrimSpace(params)
	return base, params
}

// stripComments removes both single-line (//) and block (/* */) comments from WGSL source.
// Block comments may be nested as WGSL defines them.
//
// Parameters:
//   - source: raw WGSL source string
//
// Returns:
//   - string: source with all comments removed
func stripComments(source string) string {
	return stripLineComments(stripBlockComments(source))
}

// stripLineComments removes single-line // comments from WGSL source so they
// do not interfere with struct and field parsing
//
// Parameters:
//   - source: raw WGSL source string
//
// Returns:
//   - string: source with line comments removed
func stripLineComments(source string) string {
	var sb strings.Builder
	lines := strings.SplitSeq(source, "\n")
	for line := range lines {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// stripBlockComments removes block comments (/* ... */) from WGSL source,
// handling nested block comments as WGSL defines them
//
// Parameters:
//   - source: raw WGSL source string
//
// Returns:
//   - string: source with block comments removed
func stripBlockComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	i := 0
	for i < len(source) {
		if i+1 < len(source) {
			if source[i] == '/' && source[i+1] == '*' {
				depth++
				i += 2
				continue
			}
			if source[i] == '*' && source[i+1] == '/' {
				if depth > 0 {
					depth--
				}
				i += 2
				continue
			}
		}
		if depth == 0 {
			sb.WriteByte(source[i])
		}
		i++
	}
	return sb.String()
}

// isVertexInputStruct returns true if the struct is a pure vertex input, meaning
// it has at least one @location field and zero @builtin fields. This distinguishes
// vertex input structs from vertex output structs which mix @location with @builtin(position).
//
// Parameters:
//   - ps: the parsed struct to check
//
// Returns:
//   - bool: true if this is a vertex input struct
func isVertexInputStruct(ps parsedStruct) bool {
	hasLocation := false
	for _, f := range ps.fields {
		if f.isBuiltin {
			return false
		}
		if f.location >= 0 {
			hasLocation = true
		}
	}
	return hasLocation
}

// buildVertexBufferLayout converts a parsed vertex input struct into a wgpu.VertexBufferLayout.
// It maps each field's WGSL type to a wgpu.VertexFormat using wgslVertexFormatMap, calculates
// tightly packed byte offsets, and sets the total array stride. Structs named Instance* use
// the per-instance step mode.
//
// Parameters:
//   - ps: the parsed struct containing vertex input fields
//
// Returns:
//   - wgpu.VertexBufferLayout: the constructed vertex buffer layout
//   - error: if a field type could not be mapped to a vertex format or lacks a location
func buildVertexBufferLayout(ps parsedStruct) (wgpu.VertexBufferLayout, error) {
	attrs := make([]wgpu.VertexAttribute, 0, len(ps.fields))
	var offset uint64

	for _, f := range ps.fields {
		if f.location < 0 {
			return wgpu.VertexBufferLayout{}, fmt.Errorf("%s.%s has no @location", ps.name, f.name)
		}
		info, ok := wgslVertexFormatMap[f.typeName]
		if !ok {
			return wgpu.VertexBufferLayout{}, fmt.Errorf("%s.%s has unsupported vertex type %q", ps.name, f.name, f.typeName)
		}

		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         info.format,
			Offset:         offset,
			ShaderLocation: uint32(f.location),
		})
		offset += info.size
	}

	stepMode := wgpu.VertexStepModeVertex
	if strings.HasPrefix(ps.name, instanceStructPrefix) {
		stepMode = wgpu.VertexStepModeInstance
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    stepMode,
		Attributes:  attrs,
	}, nil
}

// splitAtTopLevelCommas splits a string at commas that are not nested inside angle brackets.
// This correctly handles WGSL types like array<vec4<f32>, 6> where the comma is part of
// the type syntax rather than a field separator.
//
// Parameters:
//   - s: the string to split (typically the body of a WGSL struct)
//
// Returns:
//   - []string: substrings between top-level commas
func splitAtTopLevelCommas(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
