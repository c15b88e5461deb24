// annotations.go defines the annotation types, argument constants, and parser for the
// WGSL shader pre-processor. Annotations are single-line WGSL comments prefixed with @oxy:
// that drive struct injection, bind group declaration, and material binding roles.
package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// annotationPrefix is the marker that identifies an annotation within a WGSL comment line.
const annotationPrefix = "@oxy:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	// annotationTypeInclude injects the WGSL source of a registered struct definition
	// into the shader at the annotation site. It produces no declaration.
	//
	// Syntax: //@oxy:include <struct_type>
	//
	// Example: //@oxy:include viewport_constants
	annotationTypeInclude AnnotationType = "include"

	// AnnotationTypeBindingGroup generates a WGSL @group/@binding variable declaration
	// and records an Annotation in the declarations list. A trailing "dynamic" flag
	// marks the binding as using a dynamic offset.
	//
	// Syntax: //@oxy:group <group> <binding> <address_space> <var_name> <type> [dynamic]
	//
	// Example: //@oxy:group 0 0 storage_uniform constants viewport_constants dynamic
	AnnotationTypeBindingGroup AnnotationType = "group"

	// AnnotationTypeProvider records the provider identity and role of a hand-written
	// binding without generating WGSL output. The declaration itself sits on the next line.
	//
	// Syntax: //@oxy:provider <group> <binding> <provider_identity> <binding_role>
	//
	// Example: //@oxy:provider 1 0 material base_texture
	AnnotationTypeProvider AnnotationType = "provider"
)

// Annotation represents a single parsed @oxy: annotation from a WGSL shader source line.
type Annotation struct {
	// Type identifies which annotation was parsed (include, group, or provider).
	Type AnnotationType

	// Args holds the annotation's arguments. The contents depend on Type:
	//   - include:  [0] = struct type key
	//   - group:    [0] = address space, [1] = var name, [2] = WGSL type key
	//   - provider: [0] = provider identity, [1] = binding role
	Args []AnnotationArg

	// Line is the 1-based source line number, used for error reporting.
	Line int

	// Group is the @group index for group and provider annotations. Nil for include annotations.
	Group *int

	// Binding is the @binding index for group and provider annotations. Nil for include annotations.
	Binding *int

	// Dynamic is set for group annotations carrying the dynamic flag.
	Dynamic bool
}

// AnnotationArg is a typed string constant used as an argument in annotations.
type AnnotationArg string

// struct type arguments, each backed by an embedded .wgsl asset of a Go GPU type
const (
	// AnnotationArgViewportConstants identifies the ViewportConstants struct.
	// Source: engine/camera/assets/viewport_constants.wgsl
	AnnotationArgViewportConstants AnnotationArg = "viewport_constants"

	// annotationArgVertex identifies the VertexInput struct of the cube mesh.
	// Source: engine/model/assets/vertex.wgsl
	annotationArgVertex AnnotationArg = "vertex"

	// annotationArgInstance identifies the InstanceInput struct of the per-instance vertex stream.
	// Source: engine/mobile/assets/instance.wgsl
	annotationArgInstance AnnotationArg = "instance"
)

// address space arguments
const (
	// annotationArgStorageTypeUniform maps to var<uniform> in WGSL.
	annotationArgStorageTypeUniform AnnotationArg = "storage_uniform"

	// annotationArgStorageTypeRead maps to var<storage, read> in WGSL.
	annotationArgStorageTypeRead AnnotationArg = "storage_read"
)

// annotationFlagDynamic marks a group annotation as using a dynamic buffer offset.
const annotationFlagDynamic = "dynamic"

// provider identities
const (
	// AnnotationArgMaterial identifies the material provider (four textures and a sampler).
	AnnotationArgMaterial AnnotationArg = "material"
)

// material binding roles
const (
	// AnnotationArgBaseTexture identifies the base texture binding.
	AnnotationArgBaseTexture AnnotationArg = "base_texture"

	// AnnotationArgDetailTexture identifies the detail texture binding.
	AnnotationArgDetailTexture AnnotationArg = "detail_texture"

	// AnnotationArgBlendTexture identifies the blend mask texture binding.
	AnnotationArgBlendTexture AnnotationArg = "blend_texture"

	// AnnotationArgAltTexture identifies the alternate texture binding.
	AnnotationArgAltTexture AnnotationArg = "alt_texture"

	// AnnotationArgTextureSampler identifies the sampler shared by the material textures.
	AnnotationArgTextureSampler AnnotationArg = "texture_sampler"
)

var validStructTypes = []AnnotationArg{
	AnnotationArgViewportConstants,
	annotationArgVertex,
	annotationArgInstance,
}

var validAddressSpaces = []AnnotationArg{
	annotationArgStorageTypeUniform,
	annotationArgStorageTypeRead,
}

var validProviderIdentities = []AnnotationArg{
	AnnotationArgMaterial,
}

var validBindingRoles = []AnnotationArg{
	AnnotationArgBaseTexture,
	AnnotationArgDetailTexture,
	AnnotationArgBlendTexture,
	AnnotationArgAltTexture,
	AnnotationArgTextureSampler,
}

// parseAnnotation attempts to parse a single line of WGSL source as an @oxy: annotation.
// Returns nil with no error for lines that do not contain the annotation prefix.
//
// Parameters:
//   - line: the raw WGSL source line to parse
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "//") {
		return nil, nil
	}
	_, after, ok := strings.Cut(trimmed, annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @oxy annotation", lineNum)
	}

	switch args[0] {
	case string(annotationTypeInclude):
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @oxy include annotation requires exactly one argument", lineNum)
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[1])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in @oxy include annotation", lineNum, args[1])
		}
		return &Annotation{
			Type: annotationTypeInclude,
			Args: []AnnotationArg{AnnotationArg(args[1])},
			Line: lineNum,
		}, nil
	case string(AnnotationTypeBindingGroup):
		if len(args) != 6 && len(args) != 7 {
			return nil, fmt.Errorf("line %d: @oxy group annotation requires group, binding, address space, var name and type", lineNum)
		}
		groupInt, bindingInt, err := parseGroupBinding(args[1], args[2], lineNum)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(validAddressSpaces, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown address space %q in @oxy group annotation", lineNum, args[3])
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[5])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in @oxy group annotation", lineNum, args[5])
		}
		dynamic := false
		if len(args) == 7 {
			if args[6] != annotationFlagDynamic {
				return nil, fmt.Errorf("line %d: unknown flag %q in @oxy group annotation", lineNum, args[6])
			}
			dynamic = true
		}
		return &Annotation{
			Type:    AnnotationTypeBindingGroup,
			Args:    []AnnotationArg{AnnotationArg(args[3]), AnnotationArg(args[4]), AnnotationArg(args[5])},
			Line:    lineNum,
			Group:   &groupInt,
			Binding: &bindingInt,
			Dynamic: dynamic,
		}, nil
	case string(AnnotationTypeProvider):
		if len(args) != 5 {
			return nil, fmt.Errorf("line %d: @oxy provider annotation requires group, binding, provider identity and binding role", lineNum)
		}
		groupInt, bindingInt, err := parseGroupBinding(args[1], args[2], lineNum)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(validProviderIdentities, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown provider identity %q in @oxy provider annotation", lineNum, args[3])
		}
		if !slices.Contains(validBindingRoles, AnnotationArg(args[4])) {
			return nil, fmt.Errorf("line %d: unknown binding role %q in @oxy provider annotation", lineNum, args[4])
		}
		return &Annotation{
			Type:    AnnotationTypeProvider,
			Args:    []AnnotationArg{AnnotationArg(args[3]), AnnotationArg(args[4])},
			Line:    lineNum,
			Group:   &groupInt,
			Binding: &bindingInt,
		}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown @oxy annotation type %q", lineNum, args[0])
	}
}

func parseGroupBinding(group, binding string, lineNum int) (int, int, error) {
	groupInt, err := strconv.Atoi(group)
	if err != nil || groupInt < 0 {
		return 0, 0, fmt.Errorf("line %d: invalid group number %q", lineNum, group)
	}
	bindingInt, err := strconv.Atoi(binding)
	if err != nil || bindingInt < 0 {
		return 0, 0, fmt.Errorf("line %d: invalid binding number %q", lineNum, binding)
	}
	return groupInt, bindingInt, nil
}
