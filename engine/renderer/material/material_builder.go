package material

import (
	"github.com/Carmen-Shannon/oxy-mobile/common"
	"github.com/Carmen-Shannon/oxy-mobile/engine/renderer/bind_group_provider"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithTexture is an option builder that sets the texture source of one slot.
// Invalid slots are ignored.
//
// Parameters:
//   - slot: the texture slot
//   - tex: the texture source
//
// Returns:
//   - MaterialBuilderOption: a function that applies the texture option to a material
func WithTexture(slot TextureSlot, tex *common.ImportedTexture) MaterialBuilderOption {
	return func(m *material) {
		if slot.Valid() {
			m.textures[slot] = tex
		}
	}
}

// WithTexturePaths is an option builder that points every slot at an image file, in slot order.
// Empty paths leave the slot unset so it receives a generated texture.
//
// Parameters:
//   - paths: one path per slot (base, detail, blend, alt)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the texture paths to a material
func WithTexturePaths(paths [NumTextureSlots]string) MaterialBuilderOption {
	return func(m *material) {
		for slot, p := range paths {
			if p == "" {
				continue
			}
			m.textures[slot] = &common.ImportedTexture{Name: TextureSlot(slot).String(), Path: p}
		}
	}
}

// WithSampler is an option builder that sets the sampler configuration. Zero fields take the renderer defaults.
//
// Parameters:
//   - s: the sampler configuration
//
// Returns:
//   - MaterialBuilderOption: a function that applies the sampler option to a material
func WithSampler(s common.SamplerStagingData) MaterialBuilderOption {
	return func(m *material) {
		m.sampler = s
	}
}

// WithMaxTextureSize is an option builder that bounds the decoded texture size.
// Larger images are resampled down; zero or negative keeps images at their native size.
//
// Parameters:
//   - size: the largest allowed width or height in pixels
//
// Returns:
//   - MaterialBuilderOption: a function that applies the size bound to a material
func WithMaxTextureSize(size int) MaterialBuilderOption {
	return func(m *material) {
		m.maxTextureSize = size
	}
}

// WithFallbackSize is an option builder that sets the side of generated fallback textures.
//
// Parameters:
//   - size: the fallback texture side in pixels, at least 1
//
// Returns:
//   - MaterialBuilderOption: a function that applies the fallback size to a material
func WithFallbackSize(size int) MaterialBuilderOption {
	return func(m *material) {
		m.fallbackSize = max(size, 1)
	}
}

// WithDecodeWorkers is an option builder that sets how many workers decode textures in parallel.
//
// Parameters:
//   - n: the worker count, at least 1
//
// Returns:
//   - MaterialBuilderOption: a function that applies the worker count to a material
func WithDecodeWorkers(n int) MaterialBuilderOption {
	return func(m *material) {
		m.decodeWorkers = max(n, 1)
	}
}

// WithPipelineKey is an option builder that sets the render pipeline key for the material.
//
// Parameters:
//   - key: the pipeline key to associate with the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the pipeline key option to a material
func WithPipelineKey(key string) MaterialBuilderOption {
	return func(m *material) {
		m.pipelineKey = key
	}
}

// WithBindGroupProvider is an option builder that sets the bind group provider for the material.
//
// Parameters:
//   - provider: the bind group provider containing GPU resources for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the bind group provider option to a material
func WithBindGroupProvider(provider bind_group_provider.BindGroupProvider) MaterialBuilderOption {
	return func(m *material) {
		m.bindGroupProvider = provider
	}
}
