package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-mobile/common"
	"github.com/Carmen-Shannon/oxy-mobile/engine/mobile"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, mobile.DefaultAnimationRates(), cfg.Rates())
	assert.Equal(t, [4]float64{0.35, 0.35, 0.35, 1}, cfg.Renderer.ClearColor)
	assert.Equal(t, common.SurfaceTransformIdentity, cfg.SurfaceTransform())
	assert.Equal(t, time.Second, cfg.ProfilerInterval())
	assert.Equal(t, wgpu.CullModeNone, cfg.CullMode())
	assert.True(t, cfg.Renderer.DepthTest)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseOverridesOnlyGivenKeys(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
[window]
width = 1500

[renderer]
msaa = 1
surface_rotation = 90
cull_mode = "back"

[animation]
global_rotation_rate_y = 0.5

[textures]
base = "assets/base.png"
`))
	require.NoError(t, err)
	assert.Equal(t, 1500, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, "Mobile", cfg.Window.Title)
	assert.Equal(t, 1, cfg.Renderer.MSAA)
	assert.Equal(t, common.SurfaceTransformRotate90, cfg.SurfaceTransform())
	assert.Equal(t, wgpu.CullModeBack, cfg.CullMode())
	assert.True(t, cfg.Renderer.DepthTest)
	assert.Equal(t, float32(0.5), cfg.Animation.GlobalRotationRateY)
	assert.Equal(t, mobile.DefaultAnimationRates(), cfg.Rates())
	assert.Equal(t, [4]string{"assets/base.png", "", "", ""}, cfg.TexturePaths())
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("[window]\nfullscreen = true\n"))
	assert.Error(t, err)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Window.Width = 0
	cfg.Renderer.MSAA = 3
	cfg.Renderer.SurfaceRotation = 45
	cfg.Renderer.ClearColor[0] = 2
	cfg.Renderer.CullMode = "both"
	cfg.Animation.FirstTierRate = 0.001
	cfg.Camera.Sensitivity = 0

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"window size", "msaa", "surface_rotation", "clear_color[0]", "cull_mode", "animation", "sensitivity"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mobile.toml")
	require.NoError(t, os.WriteFile(path, []byte("[profiler]\nenabled = true\ninterval_ms = 250\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Profiler.Enabled)
	assert.Equal(t, 250*time.Millisecond, cfg.ProfilerInterval())

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(path, []byte("[renderer]\nmsaa = 2\n"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "msaa")
}
