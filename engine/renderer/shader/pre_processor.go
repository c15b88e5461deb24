// pre_processor.go implements the WGSL shader pre-processor. It scans shader source for
// @oxy: annotations, replaces them with injected struct source or generated declarations,
// and collects a declarations list that the renderer uses to wire bind groups.
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-mobile/engine/camera"
	"github.com/Carmen-Shannon/oxy-mobile/engine/mobile"
	"github.com/Carmen-Shannon/oxy-mobile/engine/model"
)

// registryEntry pairs an embedded WGSL struct source with the type name used in generated declarations.
type registryEntry struct {
	Source string
	Type   string
}

type preProcessor struct {
	structRegistry       map[AnnotationArg]registryEntry
	addressSpaceRegistry map[AnnotationArg]string

	// declarations is reset at the start of each Process call.
	declarations []Annotation
}

// PreProcessor processes raw WGSL shader source code containing @oxy: annotations.
type PreProcessor interface {
	// Process replaces @oxy: annotations with their WGSL output. Include annotations become
	// the embedded struct source, group annotations become @group/@binding declarations, and
	// provider annotations are recorded without output.
	//
	// Parameters:
	//   - source: the raw WGSL shader source code
	//
	// Returns:
	//   - string: the processed WGSL source
	//   - error: an error if any annotation is malformed or a struct is included twice
	Process(source string) (string, error)

	// Declarations returns the group and provider annotations from the most recent Process call, in source order.
	//
	// Returns:
	//   - []Annotation: the declarations collected during the last Process call
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with the engine's GPU struct types registered.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		structRegistry: map[AnnotationArg]registryEntry{
			AnnotationArgViewportConstants: {Source: camera.GPUViewportConstantsSource, Type: "ViewportConstants"},
			annotationArgVertex:            {Source: model.GPUVertexSource, Type: "VertexInput"},
			annotationArgInstance:          {Source: mobile.GPUInstanceSource, Type: "InstanceInput"},
		},
		addressSpaceRegistry: map[AnnotationArg]string{
			annotationArgStorageTypeUniform: "var<uniform>",
			annotationArgStorageTypeRead:    "var<storage, read>",
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]
	included := make(map[AnnotationArg]bool)

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			if included[a.Args[0]] {
				return "", fmt.Errorf("line %d: struct %q included more than once", a.Line, a.Args[0])
			}
			included[a.Args[0]] = true
			out = append(out, strings.TrimRight(p.structRegistry[a.Args[0]].Source, "\n"))
		case AnnotationTypeBindingGroup:
			addrSpace := p.addressSpaceRegistry[a.Args[0]]
			wgslType := p.structRegistry[a.Args[2]].Type
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;", *a.Group, *a.Binding, addrSpace, a.Args[1], wgslType))
			p.declarations = append(p.declarations, *a)
		case AnnotationTypeProvider:
			p.declarations = append(p.declarations, *a)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}
