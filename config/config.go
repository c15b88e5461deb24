package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-mobile/common"
	"github.com/Carmen-Shannon/oxy-mobile/engine/camera"
	"github.com/Carmen-Shannon/oxy-mobile/engine/mobile"
	"github.com/Carmen-Shannon/oxy-mobile/engine/renderer/material"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pelletier/go-toml/v2"
)

// Config is the startup configuration read from a TOML file.
// Fields missing from the file keep their Default values.
type Config struct {
	Window    WindowConfig    `toml:"window"`
	Renderer  RendererConfig  `toml:"renderer"`
	Animation AnimationConfig `toml:"animation"`
	Camera    CameraConfig    `toml:"camera"`
	Textures  TexturesConfig  `toml:"textures"`
	Profiler  ProfilerConfig  `toml:"profiler"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type RendererConfig struct {
	VSync            bool       `toml:"vsync"`
	MSAA             int        `toml:"msaa"`
	FrameLimit       float64    `toml:"frame_limit"`
	SoftwareFallback bool       `toml:"software_fallback"`
	ClearColor       [4]float64 `toml:"clear_color"`
	// SurfaceRotation is the display rotation in degrees: 0, 90, 180 or 270.
	SurfaceRotation int `toml:"surface_rotation"`
	// CullMode is "none", "back" or "front".
	CullMode  string `toml:"cull_mode"`
	DepthTest bool   `toml:"depth_test"`
}

// AnimationConfig holds the per-frame tier rates and the per-second global rotation rates, in radians.
type AnimationConfig struct {
	MainRate            float32 `toml:"main_rate"`
	FirstTierRate       float32 `toml:"first_tier_rate"`
	SecondTierRate      float32 `toml:"second_tier_rate"`
	GlobalRotationRateY float32 `toml:"global_rotation_rate_y"`
	GlobalRotationRateX float32 `toml:"global_rotation_rate_x"`
}

type CameraConfig struct {
	Sensitivity float32 `toml:"sensitivity"`
}

// TexturesConfig names the four material textures. Empty or missing files fall back to generated textures.
type TexturesConfig struct {
	Base          string `toml:"base"`
	Detail        string `toml:"detail"`
	Blend         string `toml:"blend"`
	Alt           string `toml:"alt"`
	MaxSize       int    `toml:"max_size"`
	FallbackSize  int    `toml:"fallback_size"`
	DecodeWorkers int    `toml:"decode_workers"`
}

type ProfilerConfig struct {
	Enabled    bool `toml:"enabled"`
	IntervalMs int  `toml:"interval_ms"`
}

// Default returns the configuration used when no file is given.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	rates := mobile.DefaultAnimationRates()
	return Config{
		Window: WindowConfig{Title: "Mobile", Width: 1280, Height: 720},
		Renderer: RendererConfig{
			VSync:      true,
			MSAA:       4,
			ClearColor: [4]float64{0.35, 0.35, 0.35, 1},
			CullMode:   "none",
			DepthTest:  true,
		},
		Animation: AnimationConfig{
			MainRate:       rates.Main,
			FirstTierRate:  rates.FirstTier,
			SecondTierRate: rates.SecondTier,
		},
		Camera: CameraConfig{Sensitivity: camera.DefaultSensitivity},
		Textures: TexturesConfig{
			MaxSize:       material.DefaultMaxTextureSize,
			FallbackSize:  material.DefaultFallbackSize,
			DecodeWorkers: int(material.NumTextureSlots),
		},
		Profiler: ProfilerConfig{IntervalMs: 1000},
	}
}

// Load reads and validates the TOML file at path on top of Default.
// An empty path returns the defaults.
//
// Parameters:
//   - path: the configuration file, or ""
//
// Returns:
//   - Config: the merged configuration
//   - error: an error if the file cannot be read, has unknown keys or fails validation
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML from r on top of Default and validates the result.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every out-of-range value.
//
// Returns:
//   - error: the joined problems, or nil
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	switch c.Renderer.MSAA {
	case 1, 4, 8, 16:
	default:
		errs = append(errs, fmt.Errorf("msaa must be 1, 4, 8 or 16, got %d", c.Renderer.MSAA))
	}
	if c.Renderer.FrameLimit < 0 {
		errs = append(errs, fmt.Errorf("frame_limit %v is negative", c.Renderer.FrameLimit))
	}
	for i, v := range c.Renderer.ClearColor {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("clear_color[%d] %v is outside [0, 1]", i, v))
		}
	}
	if _, ok := surfaceRotations[c.Renderer.SurfaceRotation]; !ok {
		errs = append(errs, fmt.Errorf("surface_rotation must be 0, 90, 180 or 270, got %d", c.Renderer.SurfaceRotation))
	}
	if _, ok := cullModes[c.Renderer.CullMode]; !ok {
		errs = append(errs, fmt.Errorf("cull_mode must be none, back or front, got %q", c.Renderer.CullMode))
	}
	if err := c.Rates().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("animation: %w", err))
	}
	if c.Camera.Sensitivity <= 0 {
		errs = append(errs, fmt.Errorf("camera sensitivity %v must be positive", c.Camera.Sensitivity))
	}
	if c.Textures.MaxSize <= 0 || c.Textures.FallbackSize <= 0 {
		errs = append(errs, errors.New("texture sizes must be positive"))
	}
	if c.Textures.DecodeWorkers <= 0 {
		errs = append(errs, fmt.Errorf("decode_workers %d must be positive", c.Textures.DecodeWorkers))
	}
	if c.Profiler.IntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("profiler interval_ms %d must be positive", c.Profiler.IntervalMs))
	}
	return errors.Join(errs...)
}

var surfaceRotations = map[int]common.SurfaceTransform{
	0:   common.SurfaceTransformIdentity,
	90:  common.SurfaceTransformRotate90,
	180: common.SurfaceTransformRotate180,
	270: common.SurfaceTransformRotate270,
}

var cullModes = map[string]wgpu.CullMode{
	"none":  wgpu.CullModeNone,
	"back":  wgpu.CullModeBack,
	"front": wgpu.CullModeFront,
}

// Rates returns the generator's per-frame tier rates.
func (c Config) Rates() mobile.AnimationRates {
	return mobile.AnimationRates{
		Main:       c.Animation.MainRate,
		FirstTier:  c.Animation.FirstTierRate,
		SecondTier: c.Animation.SecondTierRate,
	}
}

// TexturePaths returns the texture files in material slot order.
func (c Config) TexturePaths() [material.NumTextureSlots]string {
	return [material.NumTextureSlots]string{c.Textures.Base, c.Textures.Detail, c.Textures.Blend, c.Textures.Alt}
}

// SurfaceTransform returns the configured display rotation. Unknown values map to the identity.
func (c Config) SurfaceTransform() common.SurfaceTransform {
	return surfaceRotations[c.Renderer.SurfaceRotation]
}

// CullMode returns the pipeline cull mode. Unknown values map to no culling.
func (c Config) CullMode() wgpu.CullMode {
	if mode, ok := cullModes[c.Renderer.CullMode]; ok {
		return mode
	}
	return wgpu.CullModeNone
}

// ProfilerInterval returns the profiler reporting interval.
func (c Config) ProfilerInterval() time.Duration {
	return time.Duration(c.Profiler.IntervalMs) * time.Millisecond
}
