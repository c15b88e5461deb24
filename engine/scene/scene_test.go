package scene

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/Carmen-Shannon/oxy-mobile/common"
	"github.com/Carmen-Shannon/oxy-mobile/engine/camera"
	"github.com/Carmen-Shannon/oxy-mobile/engine/mobile"
	"github.com/Carmen-Shannon/oxy-mobile/engine/model"
	"github.com/Carmen-Shannon/oxy-mobile/engine/renderer"
	"github.com/Carmen-Shannon/oxy-mobile/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-mobile/engine/ui"
	"github.com/Carmen-Shannon/oxy-mobile/engine/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRenderer records the frame calls the scene makes.
type stubRenderer struct {
	width, height int

	prepared   string
	capacity   int
	instances  [][]byte
	rotation   common.Mat4
	views      [][camera.NumWindows]common.Mat4
	counts     []uint32
	renderErr  error
	released   bool
	resizedTo  [2]int
	projection camera.Projection
}

var _ renderer.Renderer = &stubRenderer{}

func (r *stubRenderer) Pipeline(string) pipeline.Pipeline            { return nil }
func (r *stubRenderer) Pipelines() map[string]pipeline.Pipeline      { return nil }
func (r *stubRenderer) RegisterPipelines(...pipeline.Pipeline) error { return nil }
func (r *stubRenderer) SetPresentMode(renderer.PresentMode)          {}
func (r *stubRenderer) Projection() camera.Projection                { return r.projection }
func (r *stubRenderer) GlobalRotation() common.Mat4                  { return r.rotation }
func (r *stubRenderer) SetGlobalRotation(m common.Mat4)              { r.rotation = m }
func (r *stubRenderer) SurfaceSize() (int, int)                      { return r.width, r.height }
func (r *stubRenderer) Release()                                     { r.released = true }

func (r *stubRenderer) Prepare(key string, _ model.Model, maxInstances int) error {
	r.prepared, r.capacity = key, maxInstances
	return nil
}

func (r *stubRenderer) WriteInstances(data []byte) error {
	r.instances = append(r.instances, data)
	return nil
}

func (r *stubRenderer) RenderFrame(views [camera.NumWindows]common.Mat4, n uint32) error {
	r.views = append(r.views, views)
	r.counts = append(r.counts, n)
	return r.renderErr
}

func (r *stubRenderer) Resize(width, height int) {
	r.width, r.height = width, height
	r.resizedTo = [2]int{width, height}
}

func newTestScene(options ...SceneBuilderOption) (Scene, *stubRenderer) {
	r := &stubRenderer{width: 900, height: 300}
	m := model.NewModel(model.WithMesh(model.NewCubeMesh()))
	return NewScene("test", r, m, options...), r
}

func TestNewSceneDefaults(t *testing.T) {
	s, _ := newTestScene()
	assert.Equal(t, "test", s.Name())
	assert.True(t, s.Active())
	assert.NotNil(t, s.Controller())
	assert.NotNil(t, s.Generator())
	assert.NotNil(t, s.UI())
	assert.Equal(t, "cube", s.Model().Name())

	s.SetActive(false)
	assert.False(t, s.Active())

	assert.Panics(t, func() { NewScene("x", nil, model.NewModel(model.WithMesh(model.NewCubeMesh()))) })
	assert.Panics(t, func() { NewScene("x", &stubRenderer{}, nil) })
}

func TestPrepareUsesPipelineAndCapacity(t *testing.T) {
	s, r := newTestScene(WithPipelineKey("custom"))
	require.NoError(t, s.Prepare())
	assert.Equal(t, "custom", r.prepared)
	assert.Equal(t, mobile.MaxInstances, r.capacity)
}

func TestTickUploadsAndDraws(t *testing.T) {
	s, r := newTestScene()

	require.NoError(t, s.Tick(0.016))
	require.NoError(t, s.Tick(0.016))

	require.Len(t, r.instances, 2)
	assert.Len(t, r.instances[0], mobile.MaxInstances*mobile.GPUInstanceSize)
	assert.NotEqual(t, r.instances[0], r.instances[1])
	assert.Equal(t, []uint32{mobile.MaxInstances, mobile.MaxInstances}, r.counts)
	assert.Equal(t, s.Controller().ViewMatrices(), r.views[1])
	assert.InDelta(t, 0.032, s.Elapsed(), 1e-6)

	// no rotation rates keep the identity
	assert.Equal(t, common.Identity4(), r.rotation)
	assert.InDelta(t, 0.006, s.Generator().Angles().Main, 1e-6)
}

func TestTickAppliesGlobalRotation(t *testing.T) {
	s, r := newTestScene(WithGlobalRotationRates(0.5, 0.25))
	require.NoError(t, s.Tick(2))
	assert.Equal(t, mobile.GlobalRotation(2, 0.5, 0.25), r.rotation)
}

func TestTickWrapsRenderErrors(t *testing.T) {
	s, r := newTestScene()
	r.renderErr = errors.New("device lost")
	err := s.Tick(0.016)
	require.Error(t, err)
	assert.ErrorIs(t, err, r.renderErr)
}

func TestInputRouting(t *testing.T) {
	s, r := newTestScene()
	cc := s.Controller()

	// drag in the middle third orbits
	start := cc.Orbital()
	s.HandlePointer(window.PointerEvent{X: 450, Y: 100, Down: true})
	assert.Equal(t, camera.WindowOrbital, cc.DragState().ActiveWindow)
	s.HandlePointer(window.PointerEvent{X: 460, Y: 100})
	s.HandlePointer(window.PointerEvent{X: 460, Y: 100, Up: true})
	assert.False(t, cc.DragState().Captured)
	assert.NotEqual(t, start.AngleY, cc.Orbital().AngleY)

	// the wheel over the left third zooms the pan/zoom camera
	s.HandleScroll(10, 10, 1)
	assert.Greater(t, cc.PanZoom().Zoom, camera.DefaultPanZoomCamera().Zoom)

	assert.True(t, s.HandleKey(ui.KeyR))
	assert.Equal(t, camera.DefaultOrbitalCamera(), cc.Orbital())
	assert.Equal(t, camera.DefaultPanZoomCamera(), cc.PanZoom())

	s.Resize(600, 200)
	assert.Equal(t, [2]int{600, 200}, r.resizedTo)

	s.Release()
	assert.True(t, r.released)
}

func TestKeyboardEditsReachCameraState(t *testing.T) {
	var buf bytes.Buffer
	cc := camera.NewCameraController()
	panels := ui.NewUI(cc, ui.WithLogger(log.New(&buf, "", 0)))
	s, _ := newTestScene(WithController(cc), WithUI(panels))

	start := cc.PanZoom().PanX
	require.True(t, s.HandleKey(ui.KeyIncrease))
	assert.InDelta(t, start+0.2, cc.PanZoom().PanX, 1e-5)

	// back from Pan X past Reset Free onto the free camera zoom slider
	require.True(t, s.HandleKey(ui.KeyPrevious))
	require.True(t, s.HandleKey(ui.KeyPrevious))
	panel, label := s.UI().Focused()
	require.Equal(t, ui.PanelFree, panel)
	require.Equal(t, "Zoom", label)

	// the slider reaches past the wheel ceiling
	for range ui.SliderSteps {
		s.HandleKey(ui.KeyIncrease)
	}
	assert.Equal(t, float32(ui.MaxFreeZoom), cc.Free().ViewZoom)
	assert.Greater(t, cc.Free().ViewZoom, float32(camera.MaxViewZoom))
	assert.Contains(t, buf.String(), "[UI] Free Camera > Zoom 0.500")

	// the next wheel step over the right third clamps it back
	s.HandleScroll(800, 100, 1)
	assert.Equal(t, float32(camera.MaxViewZoom), cc.Free().ViewZoom)

	require.True(t, s.HandleKey(ui.KeyNext))
	require.True(t, s.HandleKey(ui.KeyPress))
	assert.Equal(t, camera.DefaultFreeCamera(), cc.Free())
}

func TestOptionsReplaceCollaborators(t *testing.T) {
	cc := camera.NewCameraController(camera.WithSensitivity(0.02))
	gen := mobile.NewGenerator(mobile.WithCapacity(30))
	s, r := newTestScene(WithController(cc), WithGenerator(gen), WithActive(false))

	assert.Same(t, cc, s.Controller())
	assert.Same(t, gen, s.Generator())
	assert.False(t, s.Active())
	require.NoError(t, s.Prepare())
	assert.Equal(t, 30, r.capacity)

	u := ui.NewUI(cc)
	s, _ = newTestScene(WithController(cc), WithUI(u))
	assert.Same(t, u, s.UI())
}
