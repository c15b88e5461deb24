package shader

import "github.com/cogentcore/webgpu/wgpu"

// ShaderBuilderOption is a functional option for configuring a Shader.
type ShaderBuilderOption func(*shader)

// WithExtraVisibility adds shader stages to the visibility of every bind group entry
// this shader declares, for resources the other stage of the pipeline also reads.
//
// Parameters:
//   - stages: the additional shader stages
//
// Returns:
//   - ShaderBuilderOption: option function to apply
func WithExtraVisibility(stages wgpu.ShaderStage) ShaderBuilderOption {
	return func(s *shader) {
		s.extraVisibility |= stages
	}
}

// WithPreProcessor replaces the default pre-processor.
//
// Parameters:
//   - pp: the pre-processor to run over the source
//
// Returns:
//   - ShaderBuilderOption: option function to apply
func WithPreProcessor(pp PreProcessor) ShaderBuilderOption {
	return func(s *shader) {
		if pp != nil {
			s.pp = pp
		}
	}
}
