package engine

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-mobile/engine/profiler"
	"github.com/Carmen-Shannon/oxy-mobile/engine/scene"
	"github.com/Carmen-Shannon/oxy-mobile/engine/window"
)

// engine implements the Engine interface.
// Every frame runs on the window thread inside the message loop.
type engine struct {
	mu *sync.Mutex

	running  bool
	quitOnce sync.Once
	err      error

	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameCallback func(deltaTime float32)

	scenes map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	lastFrame        time.Time
	now              func() time.Time
	sleep            func(time.Duration)
}

// Engine is the main entry point for the engine.
// It wires window input to the scenes and runs one frame per message loop iteration.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetFrameCallback registers a function called after the scenes of each frame are drawn.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetFrameCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key.
	// Active scenes are ticked in ascending key order.
	//
	// Parameters:
	//   - key: the z-index determining tick order (lower ticks first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Run wires the window callbacks and runs the message loop until the window closes or a
	// frame fails. Scenes are released and the window closed before it returns.
	//
	// Returns:
	//   - error: the frame error that stopped the loop, or an error closing the window
	Run() error

	// Quit asks the message loop to stop after the current frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (window, scenes, profiling, frame cap)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:       &sync.Mutex{},
		scenes:   make(map[int]scene.Scene),
		profiler: profiler.NewProfiler(),
		now:      time.Now,
		sleep:    time.Sleep,
	}

	for _, opt := range options {
		opt(e)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() error {
	if e.window == nil {
		return errors.New("engine has no window")
	}

	e.window.SetResizeCallback(func(width, height int) {
		for _, s := range e.activeScenes() {
			s.Resize(width, height)
		}
	})
	e.window.SetPointerCallback(func(ev window.PointerEvent) {
		for _, s := range e.activeScenes() {
			s.HandlePointer(ev)
		}
	})
	e.window.SetScrollCallback(func(x, y, delta float32) {
		for _, s := range e.activeScenes() {
			s.HandleScroll(x, y, delta)
		}
	})
	e.window.SetKeyDownCallback(func(keyCode uint32) {
		for _, s := range e.activeScenes() {
			s.HandleKey(keyCode)
		}
	})
	e.window.SetUpdateCallback(e.frame)

	e.mu.Lock()
	e.running = true
	e.lastFrame = e.now()
	e.mu.Unlock()

	e.window.ProcessMessages()

	e.mu.Lock()
	e.running = false
	runErr := e.err
	e.mu.Unlock()

	for _, s := range e.Scenes() {
		s.Release()
	}
	if err := e.window.Close(); err != nil {
		return errors.Join(runErr, fmt.Errorf("failed to close window: %w", err))
	}
	return runErr
}

// frame ticks the active scenes once. A failing scene stops the loop.
func (e *engine) frame() {
	start := e.now()
	e.mu.Lock()
	dt := float32(start.Sub(e.lastFrame).Seconds())
	e.lastFrame = start
	e.mu.Unlock()

	for _, s := range e.activeScenes() {
		if err := s.Tick(dt); err != nil {
			log.Printf("[Engine] scene %s: %v", s.Name(), err)
			e.mu.Lock()
			e.err = err
			e.mu.Unlock()
			e.Quit()
			return
		}
	}

	if e.frameCallback != nil {
		e.frameCallback(dt)
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(start); remaining > 0 {
			e.sleep(remaining)
		}
	}
}

// activeScenes returns the active scenes in ascending key order.
func (e *engine) activeScenes() []scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()

	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	active := make([]scene.Scene, 0, len(keys))
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			active = append(active, s)
		}
	}
	return active
}

// Quit stops the message loop. Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		if e.window != nil {
			e.window.RequestClose()
		}
	})
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetFrameCallback(callback func(deltaTime float32)) {
	e.frameCallback = callback
}

// SetRenderFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}
