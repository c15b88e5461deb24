package ui

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-mobile/common"
	"github.com/Carmen-Shannon/oxy-mobile/engine/camera"
	"github.com/chewxy/math32"
)

// Panel titles.
const (
	PanelPanZoom = "Pan & Zoom"
	PanelOrbital = "Orbit"
	PanelFree    = "Free Camera"
)

// Key codes handled by HandleKey.
const (
	KeyR = common.KeyR
	Key1 = common.Key1
	Key2 = common.Key2
	Key3 = common.Key3
	KeyH = common.KeyH

	KeyNext     = common.KeyRightBracket
	KeyPrevious = common.KeyLeftBracket
	KeyIncrease = common.KeyEqual
	KeyDecrease = common.KeyMinus
	KeyPress    = common.KeyEnter
)

// Slider ranges. The free camera zoom slider is wider than the wheel range on purpose:
// values above camera.MaxViewZoom set from here stay until the wheel is used.
const (
	PanRange      = 10.0
	MinZoom       = 0.1
	MaxZoom       = 5.0
	MinDistance   = 5.0
	MaxDistance   = 40.0
	FreeXYRange   = 15.0
	FreeZRange    = 40.0
	MinFreeZoom   = 0.01
	MaxFreeZoom   = 0.5
	rotationRange = math32.Pi
)

// UI exposes the camera parameters as slider panels and maps keyboard shortcuts to camera resets.
// Every control reads and writes through the CameraController, so pointer input and the UI
// always see the same state.
type UI interface {
	// Panels returns the panels in viewport order.
	//
	// Returns:
	//   - []*Panel: the pan/zoom, orbital and free camera panels
	Panels() []*Panel

	// Panel returns the panel with the given title, or nil.
	//
	// Parameters:
	//   - title: one of PanelPanZoom, PanelOrbital or PanelFree
	//
	// Returns:
	//   - *Panel: the panel, or nil if no panel has that title
	Panel(title string) *Panel

	// HandleKey runs the shortcut bound to a key: R resets every camera, 1, 2 and 3 reset one
	// camera and H logs the panels. ] and [ move the focus through every slider and button in
	// panel order, = and - (or keypad + and -) step the focused slider, Enter presses the
	// focused button. Focus moves and edits log the focused control.
	//
	// Parameters:
	//   - keyCode: the key pressed
	//
	// Returns:
	//   - bool: true if the key is bound
	HandleKey(keyCode uint32) bool

	// ResetAll resets all three cameras to their defaults.
	ResetAll()

	// Focused returns the panel title and label of the control keyboard edits apply to.
	Focused() (panel, label string)

	// Describe renders the panels as text, one line per control.
	//
	// Returns:
	//   - string: the rendered panels
	Describe() string

	// LogPanels writes Describe to the log under the [UI] prefix.
	LogPanels()
}

// control is one focusable entry: a slider or a button of a panel.
type control struct {
	panel  *Panel
	slider *Slider
	button *Button
}

func (c control) label() string {
	if c.slider != nil {
		return c.slider.Label
	}
	return c.button.Label
}

type uiImpl struct {
	mu *sync.Mutex

	controller camera.CameraController
	panels     []*Panel
	controls   []control
	focus      int
	logger     *log.Logger
}

var _ UI = &uiImpl{}

// NewUI builds the three camera panels bound to the controller.
// Panics if controller is nil.
//
// Parameters:
//   - controller: the camera state owner
//   - options: functional options to configure the UI
//
// Returns:
//   - UI: the new UI
func NewUI(controller camera.CameraController, options ...UIBuilderOption) UI {
	if controller == nil {
		panic("ui: NewUI requires a non-nil CameraController")
	}
	u := &uiImpl{
		mu:         &sync.Mutex{},
		controller: controller,
		logger:     log.Default(),
	}
	for _, opt := range options {
		opt(u)
	}
	u.panels = []*Panel{u.panZoomPanel(), u.orbitalPanel(), u.freePanel()}
	for _, p := range u.panels {
		for _, sl := range p.Sliders {
			u.controls = append(u.controls, control{panel: p, slider: sl})
		}
		for _, b := range p.Buttons {
			u.controls = append(u.controls, control{panel: p, button: b})
		}
	}
	return u
}

// panZoomField binds a slider to one field of the pan/zoom camera.
func (u *uiImpl) panZoomField(label string, lo, hi float32, field func(*camera.PanZoomCamera) *float32) *Slider {
	c := u.controller
	return NewSlider(label, lo, hi,
		func() float32 { cam := c.PanZoom(); return *field(&cam) },
		func(v float32) { cam := c.PanZoom(); *field(&cam) = v; c.SetPanZoom(cam) },
	)
}

func (u *uiImpl) orbitalField(label string, lo, hi float32, field func(*camera.OrbitalCamera) *float32) *Slider {
	c := u.controller
	return NewSlider(label, lo, hi,
		func() float32 { cam := c.Orbital(); return *field(&cam) },
		func(v float32) { cam := c.Orbital(); *field(&cam) = v; c.SetOrbital(cam) },
	)
}

func (u *uiImpl) freeField(label string, lo, hi float32, field func(*camera.FreeCamera) *float32) *Slider {
	c := u.controller
	return NewSlider(label, lo, hi,
		func() float32 { cam := c.Free(); return *field(&cam) },
		func(v float32) { cam := c.Free(); *field(&cam) = v; c.SetFree(cam) },
	)
}

func (u *uiImpl) panZoomPanel() *Panel {
	return &Panel{
		Title: PanelPanZoom,
		Sliders: []*Slider{
			u.panZoomField("Pan X", -PanRange, PanRange, func(c *camera.PanZoomCamera) *float32 { return &c.PanX }),
			u.panZoomField("Pan Y", -PanRange, PanRange, func(c *camera.PanZoomCamera) *float32 { return &c.PanY }),
			u.panZoomField("Zoom", MinZoom, MaxZoom, func(c *camera.PanZoomCamera) *float32 { return &c.Zoom }),
		},
		Buttons: []*Button{NewButton("Reset Camera", u.controller.ResetPanZoom)},
	}
}

func (u *uiImpl) orbitalPanel() *Panel {
	return &Panel{
		Title: PanelOrbital,
		Sliders: []*Slider{
			u.orbitalField("Orbit X", -rotationRange, rotationRange, func(c *camera.OrbitalCamera) *float32 { return &c.AngleX }),
			u.orbitalField("Orbit Y", -rotationRange, rotationRange, func(c *camera.OrbitalCamera) *float32 { return &c.AngleY }),
			u.orbitalField("Distance", MinDistance, MaxDistance, func(c *camera.OrbitalCamera) *float32 { return &c.Distance }),
		},
		Buttons: []*Button{NewButton("Reset Orbit", u.controller.ResetOrbital)},
	}
}

func (u *uiImpl) freePanel() *Panel {
	return &Panel{
		Title: PanelFree,
		Sliders: []*Slider{
			u.freeField("X", -FreeXYRange, FreeXYRange, func(c *camera.FreeCamera) *float32 { return &c.Position[0] }),
			u.freeField("Y", -FreeXYRange, FreeXYRange, func(c *camera.FreeCamera) *float32 { return &c.Position[1] }),
			u.freeField("Z", -FreeZRange, FreeZRange, func(c *camera.FreeCamera) *float32 { return &c.Position[2] }),
			u.freeField("Rot X", -rotationRange, rotationRange, func(c *camera.FreeCamera) *float32 { return &c.RotX }),
			u.freeField("Rot Y", -rotationRange, rotationRange, func(c *camera.FreeCamera) *float32 { return &c.RotY }),
			u.freeField("Rot Z", -rotationRange, rotationRange, func(c *camera.FreeCamera) *float32 { return &c.RotZ }),
			u.freeField("Zoom", MinFreeZoom, MaxFreeZoom, func(c *camera.FreeCamera) *float32 { return &c.ViewZoom }),
		},
		Buttons: []*Button{NewButton("Reset Free", u.controller.ResetFree)},
	}
}

func (u *uiImpl) Panels() []*Panel {
	return u.panels
}

func (u *uiImpl) Panel(title string) *Panel {
	for _, p := range u.panels {
		if p.Title == title {
			return p
		}
	}
	return nil
}

func (u *uiImpl) HandleKey(keyCode uint32) bool {
	switch keyCode {
	case KeyR:
		u.ResetAll()
	case Key1:
		u.controller.ResetPanZoom()
	case Key2:
		u.controller.ResetOrbital()
	case Key3:
		u.controller.ResetFree()
	case KeyH:
		u.LogPanels()
	case KeyNext:
		u.logControl(u.moveFocus(1))
	case KeyPrevious:
		u.logControl(u.moveFocus(-1))
	case KeyIncrease, common.KeyKPAdd:
		u.stepFocused(1)
	case KeyDecrease, common.KeyKPSubtract:
		u.stepFocused(-1)
	case KeyPress:
		c := u.focused()
		if c.button != nil {
			c.button.Press()
			u.logControl(c)
		}
	default:
		return false
	}
	return true
}

func (u *uiImpl) focused() control {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.controls[u.focus]
}

// moveFocus shifts the focus by delta controls, wrapping at both ends.
func (u *uiImpl) moveFocus(delta int) control {
	u.mu.Lock()
	defer u.mu.Unlock()
	n := len(u.controls)
	u.focus = ((u.focus+delta)%n + n) % n
	return u.controls[u.focus]
}

func (u *uiImpl) stepFocused(n int) {
	c := u.focused()
	if c.slider == nil {
		return
	}
	c.slider.Step(n)
	u.logControl(c)
}

func (u *uiImpl) logControl(c control) {
	if c.slider != nil {
		u.logger.Printf("[UI] %s > %s %.3f [%g, %g]", c.panel.Title, c.slider.Label, c.slider.Value(), c.slider.Min, c.slider.Max)
		return
	}
	u.logger.Printf("[UI] %s > [%s]", c.panel.Title, c.button.Label)
}

func (u *uiImpl) Focused() (string, string) {
	c := u.focused()
	return c.panel.Title, c.label()
}

func (u *uiImpl) ResetAll() {
	u.controller.ResetPanZoom()
	u.controller.ResetOrbital()
	u.controller.ResetFree()
}

func (u *uiImpl) Describe() string {
	focus := u.focused()
	marker := func(c control) string {
		if c == focus {
			return "> "
		}
		return "  "
	}

	var sb strings.Builder
	for _, p := range u.panels {
		fmt.Fprintf(&sb, "%s\n", p.Title)
		for _, s := range p.Sliders {
			fmt.Fprintf(&sb, "%s%-8s %8.3f  [%g, %g]\n", marker(control{panel: p, slider: s}), s.Label, s.Value(), s.Min, s.Max)
		}
		for _, b := range p.Buttons {
			fmt.Fprintf(&sb, "%s[%s]\n", marker(control{panel: p, button: b}), b.Label)
		}
	}
	return sb.String()
}

func (u *uiImpl) LogPanels() {
	text := u.Describe()
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		u.logger.Printf("[UI] %s", line)
	}
}
