package shader

import (
	_ "embed"
	"fmt"
)

// Keys of the built-in mobile shaders.
const (
	MobileVertexKey   = "mobile_vertex"
	MobileFragmentKey = "mobile_fragment"
)

// MobileVertexSource is the vertex stage of the instanced mobile pipeline.
//
//go:embed assets/mobile_vertex.wgsl
var MobileVertexSource string

// MobileFragmentSource is the fragment stage of the instanced mobile pipeline.
//
//go:embed assets/mobile_fragment.wgsl
var MobileFragmentSource string

// NewMobileShaders parses the built-in vertex and fragment shaders of the mobile pipeline.
//
// Returns:
//   - Shader: the vertex shader
//   - Shader: the fragment shader
//   - error: if either embedded source fails to parse
func NewMobileShaders() (Shader, Shader, error) {
	vs, err := NewShader(MobileVertexKey, ShaderTypeVertex, MobileVertexSource)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build mobile shaders: %w", err)
	}
	fs, err := NewShader(MobileFragmentKey, ShaderTypeFragment, MobileFragmentSource)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build mobile shaders: %w", err)
	}
	return vs, fs, nil
}
