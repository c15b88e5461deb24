package scene

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-mobile/engine/camera"
	"github.com/Carmen-Shannon/oxy-mobile/engine/mobile"
	"github.com/Carmen-Shannon/oxy-mobile/engine/model"
	"github.com/Carmen-Shannon/oxy-mobile/engine/renderer"
	"github.com/Carmen-Shannon/oxy-mobile/engine/ui"
	"github.com/Carmen-Shannon/oxy-mobile/engine/window"
)

// DefaultPipelineKey is the pipeline the scene draws with unless WithPipelineKey overrides it.
const DefaultPipelineKey = "mobile"

// Scene owns one mobile: its generator, the three cameras, the UI panels bound to them and the
// renderer that draws them. Tick runs one frame; the Handle* methods route window input.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active returns whether this scene is ticked by the engine.
	Active() bool

	// SetActive sets whether this scene is ticked by the engine.
	SetActive(active bool)

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// Controller returns the camera controller.
	Controller() camera.CameraController

	// Generator returns the instance generator.
	Generator() mobile.Generator

	// UI returns the camera panels.
	UI() ui.UI

	// Model returns the instanced model.
	Model() model.Model

	// Prepare creates the renderer's frame resources for the model with room for
	// the generator's capacity.
	//
	// Returns:
	//   - error: an error if the renderer cannot be prepared
	Prepare() error

	// Tick runs one frame: it advances the animation, uploads the instance records, updates
	// the global rotation and draws the three viewports.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous frame
	//
	// Returns:
	//   - error: an error if the upload or the frame fails
	Tick(deltaTime float32) error

	// Elapsed returns the accumulated frame time in seconds.
	Elapsed() float32

	// HandlePointer routes a button or cursor sample to the camera controller.
	HandlePointer(ev window.PointerEvent)

	// HandleScroll routes a wheel step to the viewport under the cursor.
	HandleScroll(x, y, delta float32)

	// HandleKey runs the UI shortcut bound to a key.
	//
	// Returns:
	//   - bool: true if the key is bound
	HandleKey(keyCode uint32) bool

	// Resize forwards a new surface size to the renderer.
	Resize(width, height int)

	// Release frees the renderer.
	Release()
}

type scene struct {
	mu *sync.Mutex

	name   string
	active bool

	r          renderer.Renderer
	m          model.Model
	controller camera.CameraController
	generator  mobile.Generator
	panels     ui.UI

	pipelineKey string

	// global rotation rates in rad/s about Y and X
	rotationRateY float32
	rotationRateX float32
	elapsed       float32
}

var _ Scene = &scene{}

// NewScene creates a Scene drawing m with r. A default controller, generator and UI are
// created unless options supply them. Panics if r or m is nil.
//
// Parameters:
//   - name: the name of the scene
//   - r: the renderer to draw with
//   - m: the instanced model
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, r renderer.Renderer, m model.Model, options ...SceneBuilderOption) Scene {
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}
	if m == nil {
		panic("scene: NewScene requires a non-nil Model")
	}

	s := &scene{
		mu:          &sync.Mutex{},
		name:        name,
		active:      true,
		r:           r,
		m:           m,
		pipelineKey: DefaultPipelineKey,
	}
	for _, option := range options {
		option(s)
	}

	if s.controller == nil {
		s.controller = camera.NewCameraController()
	}
	if s.generator == nil {
		s.generator = mobile.NewGenerator()
	}
	if s.panels == nil {
		s.panels = ui.NewUI(s.controller)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Renderer() renderer.Renderer {
	return s.r
}

func (s *scene) Controller() camera.CameraController {
	return s.controller
}

func (s *scene) Generator() mobile.Generator {
	return s.generator
}

func (s *scene) UI() ui.UI {
	return s.panels
}

func (s *scene) Model() model.Model {
	return s.m
}

func (s *scene) Prepare() error {
	if err := s.r.Prepare(s.pipelineKey, s.m, s.generator.Capacity()); err != nil {
		return fmt.Errorf("scene %s: %w", s.name, err)
	}
	return nil
}

func (s *scene) Tick(deltaTime float32) error {
	s.mu.Lock()
	s.elapsed += deltaTime
	elapsed := s.elapsed
	s.mu.Unlock()

	records := s.generator.GenerateInstances()
	if err := s.r.WriteInstances(mobile.MarshalInstances(records)); err != nil {
		return fmt.Errorf("failed to upload instances: %w", err)
	}

	s.r.SetGlobalRotation(mobile.GlobalRotation(elapsed, s.rotationRateY, s.rotationRateX))

	if err := s.r.RenderFrame(s.controller.ViewMatrices(), uint32(len(records))); err != nil {
		return fmt.Errorf("failed to render frame: %w", err)
	}
	return nil
}

func (s *scene) Elapsed() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

func (s *scene) HandlePointer(ev window.PointerEvent) {
	width, _ := s.r.SurfaceSize()
	s.controller.HandlePointerEvent(camera.PointerEvent{
		X:          ev.X,
		Y:          ev.Y,
		ButtonDown: ev.Down,
		ButtonUp:   ev.Up,
	}, width)
}

func (s *scene) HandleScroll(x, y, delta float32) {
	width, _ := s.r.SurfaceSize()
	s.controller.HandlePointerEvent(camera.PointerEvent{X: x, Y: y, WheelDelta: delta}, width)
}

func (s *scene) HandleKey(keyCode uint32) bool {
	return s.panels.HandleKey(keyCode)
}

func (s *scene) Resize(width, height int) {
	s.r.Resize(width, height)
}

func (s *scene) Release() {
	s.r.Release()
}
