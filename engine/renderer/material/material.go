package material

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-mobile/common"
	"github.com/Carmen-Shannon/oxy-mobile/engine/renderer/bind_group_provider"
)

// TextureSlot identifies one of the four textures a material binds in the fragment stage.
type TextureSlot int

const (
	// TextureBase is the primary surface texture.
	TextureBase TextureSlot = iota
	// TextureDetail is tiled over the base texture.
	TextureDetail
	// TextureBlend is a mask whose red channel mixes base and detail.
	TextureBlend
	// TextureAlt is used on its own by connector parts.
	TextureAlt

	// NumTextureSlots is the number of texture slots per material.
	NumTextureSlots
)

func (s TextureSlot) String() string {
	switch s {
	case TextureBase:
		return "base"
	case TextureDetail:
		return "detail"
	case TextureBlend:
		return "blend"
	case TextureAlt:
		return "alt"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// Valid reports whether s names one of the four slots.
func (s TextureSlot) Valid() bool {
	return s >= TextureBase && s < NumTextureSlots
}

const (
	// DefaultMaxTextureSize is the largest texture side kept after decoding.
	DefaultMaxTextureSize = 1024
	// DefaultFallbackSize is the side of generated fallback textures.
	DefaultFallbackSize = 256
)

// material is the implementation of the Material interface.
type material struct {
	mu *sync.Mutex

	name           string
	textures       [NumTextureSlots]*common.ImportedTexture
	staging        [NumTextureSlots]*common.TextureStagingData
	sampler        common.SamplerStagingData
	maxTextureSize int
	fallbackSize   int
	decodeWorkers  int

	pipelineKey       string
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Material is the four-texture multitexture material of the mobile: base, detail, blend mask
// and alternate texture, sharing one sampler. Texture sources are decoded once at startup into
// RGBA staging data; the GPU resources are created by the Renderer and held in the bind group provider.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Texture retrieves the texture source for a slot, or nil if none is set.
	//
	// Parameters:
	//   - slot: the texture slot
	//
	// Returns:
	//   - *common.ImportedTexture: the texture source, or nil
	Texture(slot TextureSlot) *common.ImportedTexture

	// DecodeTextures decodes every slot on a worker pool and waits for all of them.
	// Slots with no source, or whose file does not exist, receive a generated texture.
	// Calling it again after a successful decode is a no-op.
	//
	// Returns:
	//   - error: the joined decode errors of every slot that failed
	DecodeTextures() error

	// Decoded reports whether staging data is available for every slot.
	//
	// Returns:
	//   - bool: true after a successful DecodeTextures
	Decoded() bool

	// StagingData returns the decoded RGBA pixels for a slot.
	//
	// Parameters:
	//   - slot: the texture slot
	//
	// Returns:
	//   - common.TextureStagingData: the pixel data
	//   - bool: false if the slot has not been decoded
	StagingData(slot TextureSlot) (common.TextureStagingData, bool)

	// SamplerStagingData returns the sampler configuration shared by all four textures.
	//
	// Returns:
	//   - common.SamplerStagingData: the sampler configuration
	SamplerStagingData() common.SamplerStagingData

	// PipelineKey retrieves the key identifying the render pipeline this material uses.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// SetPipelineKey sets the render pipeline key for this material.
	//
	// Parameters:
	//   - key: the pipeline key to associate with this material
	SetPipelineKey(key string)

	// BindGroupProvider retrieves the bind group provider holding GPU-side resources for this material.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider, or nil if not yet initialized
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetBindGroupProvider sets the bind group provider for this material.
	//
	// Parameters:
	//   - provider: the bind group provider containing GPU resources for this material
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		mu:             &sync.Mutex{},
		maxTextureSize: DefaultMaxTextureSize,
		fallbackSize:   DefaultFallbackSize,
		decodeWorkers:  min(int(NumTextureSlots), max(runtime.NumCPU()-1, 1)),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Texture(slot TextureSlot) *common.ImportedTexture {
	if !slot.Valid() {
		return nil
	}
	return m.textures[slot]
}

func (m *material) DecodeTextures() error {
	if m.Decoded() {
		return nil
	}

	pool := worker.NewDynamicWorkerPool(m.decodeWorkers, int(NumTextureSlots), time.Second)
	defer pool.Stop()

	// pool.Wait only returns once workers idle-exit, so a WaitGroup joins the batch
	var wg sync.WaitGroup
	var results [NumTextureSlots]common.TextureStagingData
	var errs [NumTextureSlots]error

	for slot := range NumTextureSlots {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID:      int(slot),
			Payload: slot,
			Do: func() (any, error) {
				defer wg.Done()
				results[slot], errs[slot] = m.decodeSlot(slot)
				return nil, errs[slot]
			},
		})
	}
	wg.Wait()

	if err := errors.Join(errs[:]...); err != nil {
		return fmt.Errorf("material %s: %w", m.name, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for slot := range NumTextureSlots {
		data := results[slot]
		m.staging[slot] = &data
	}
	return nil
}

// decodeSlot decodes one slot, falling back to a generated texture when the source is absent.
func (m *material) decodeSlot(slot TextureSlot) (common.TextureStagingData, error) {
	tex := m.textures[slot]
	if tex == nil || (tex.Path == "" && len(tex.Data) == 0) {
		return GenerateTexture(slot, m.fallbackSize), nil
	}

	data, err := tex.Decode(m.maxTextureSize)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("[Textures] %s texture %q not found, using generated texture", slot, tex.Path)
		return GenerateTexture(slot, m.fallbackSize), nil
	}
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("%s texture: %w", slot, err)
	}
	return data, nil
}

func (m *material) Decoded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.staging {
		if s == nil {
			return false
		}
	}
	return true
}

func (m *material) StagingData(slot TextureSlot) (common.TextureStagingData, bool) {
	if !slot.Valid() {
		return common.TextureStagingData{}, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.staging[slot] == nil {
		return common.TextureStagingData{}, false
	}
	return *m.staging[slot], true
}

func (m *material) SamplerStagingData() common.SamplerStagingData {
	return m.sampler
}

func (m *material) PipelineKey() string {
	return m.pipelineKey
}

func (m *material) SetPipelineKey(key string) {
	m.pipelineKey = key
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.bindGroupProvider
}

func (m *material) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	m.bindGroupProvider = provider
}
