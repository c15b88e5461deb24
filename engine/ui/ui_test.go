package ui

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-mobile/common"
	"github.com/Carmen-Shannon/oxy-mobile/engine/camera"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanelsLayout(t *testing.T) {
	u := NewUI(camera.NewCameraController())

	panels := u.Panels()
	require.Len(t, panels, 3)
	assert.Equal(t, PanelPanZoom, panels[0].Title)
	assert.Equal(t, PanelOrbital, panels[1].Title)
	assert.Equal(t, PanelFree, panels[2].Title)

	assert.Len(t, u.Panel(PanelPanZoom).Sliders, 3)
	assert.Len(t, u.Panel(PanelOrbital).Sliders, 3)
	assert.Len(t, u.Panel(PanelFree).Sliders, 7)
	assert.Nil(t, u.Panel("Lighting"))
	assert.Nil(t, u.Panel(PanelFree).Slider("Pan X"))
	assert.Nil(t, u.Panel(PanelFree).Button("Reset Camera"))
}

func TestSliderWritesClampToRange(t *testing.T) {
	tests := []struct {
		panel, slider string
		in, want      float32
	}{
		{PanelPanZoom, "Pan X", 12, 10},
		{PanelPanZoom, "Pan Y", -3.5, -3.5},
		{PanelPanZoom, "Zoom", 0, 0.1},
		{PanelOrbital, "Orbit X", 4, math32.Pi},
		{PanelOrbital, "Distance", 100, 40},
		{PanelFree, "Z", -50, -40},
		{PanelFree, "Rot Z", -4, -math32.Pi},
		{PanelFree, "Zoom", 0.3, 0.3},
		{PanelFree, "Zoom", 0.001, 0.01},
	}
	for _, tt := range tests {
		t.Run(tt.panel+"/"+tt.slider, func(t *testing.T) {
			u := NewUI(camera.NewCameraController())
			s := u.Panel(tt.panel).Slider(tt.slider)
			require.NotNil(t, s)
			assert.Equal(t, tt.want, s.Set(tt.in))
			assert.Equal(t, tt.want, s.Value())
		})
	}
}

func TestSlidersWriteThroughController(t *testing.T) {
	cc := camera.NewCameraController()
	u := NewUI(cc)

	u.Panel(PanelPanZoom).Slider("Pan X").Set(2)
	u.Panel(PanelOrbital).Slider("Orbit Y").Set(1)
	u.Panel(PanelFree).Slider("Y").Set(-7)

	assert.Equal(t, float32(2), cc.PanZoom().PanX)
	assert.Equal(t, float32(1), cc.Orbital().AngleY)
	assert.Equal(t, float32(-7), cc.Free().Position[1])

	// the free zoom slider goes above the wheel ceiling, the next wheel step clamps it
	u.Panel(PanelFree).Slider("Zoom").Set(0.4)
	assert.Equal(t, float32(0.4), cc.Free().ViewZoom)
	cc.OnWheel(camera.WindowFree, 1)
	assert.Equal(t, float32(camera.MaxViewZoom), cc.Free().ViewZoom)

	// pointer edits show up in the sliders
	cc.SetOrbital(camera.OrbitalCamera{AngleX: 0.5, Distance: 12})
	assert.Equal(t, float32(12), u.Panel(PanelOrbital).Slider("Distance").Value())
}

func TestResetButtonsAndKeys(t *testing.T) {
	cc := camera.NewCameraController()
	u := NewUI(cc)

	u.Panel(PanelPanZoom).Slider("Zoom").Set(3)
	u.Panel(PanelPanZoom).Button("Reset Camera").Press()
	assert.Equal(t, camera.DefaultPanZoomCamera(), cc.PanZoom())

	u.Panel(PanelOrbital).Slider("Distance").Set(30)
	u.Panel(PanelFree).Slider("X").Set(3)
	assert.True(t, u.HandleKey(Key2))
	assert.Equal(t, camera.DefaultOrbitalCamera(), cc.Orbital())
	assert.NotEqual(t, camera.DefaultFreeCamera(), cc.Free())
	assert.True(t, u.HandleKey(Key3))
	assert.Equal(t, camera.DefaultFreeCamera(), cc.Free())

	u.Panel(PanelPanZoom).Slider("Pan Y").Set(1)
	u.Panel(PanelOrbital).Slider("Orbit X").Set(1)
	assert.True(t, u.HandleKey(KeyR))
	assert.Equal(t, camera.DefaultPanZoomCamera(), cc.PanZoom())
	assert.Equal(t, camera.DefaultOrbitalCamera(), cc.Orbital())

	u.Panel(PanelPanZoom).Slider("Pan Y").Set(1)
	assert.True(t, u.HandleKey(Key1))
	assert.Equal(t, camera.DefaultPanZoomCamera(), cc.PanZoom())

	assert.False(t, u.HandleKey(90))
}

func TestLogPanels(t *testing.T) {
	var buf bytes.Buffer
	u := NewUI(camera.NewCameraController(), WithLogger(log.New(&buf, "", 0)))

	assert.True(t, u.HandleKey(KeyH))
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, "[UI] "), l)
	}
	assert.Contains(t, out, "[UI] Pan & Zoom")
	assert.Contains(t, out, "Distance")
	assert.Contains(t, out, "[Reset Free]")
	assert.Equal(t, 3+13+3, len(lines))
}

func TestKeyboardFocusAndEdits(t *testing.T) {
	var buf bytes.Buffer
	cc := camera.NewCameraController()
	u := NewUI(cc, WithLogger(log.New(&buf, "", 0)))

	panel, label := u.Focused()
	assert.Equal(t, PanelPanZoom, panel)
	assert.Equal(t, "Pan X", label)

	// stepping moves by a hundredth of the range
	start := cc.PanZoom().PanX
	assert.True(t, u.HandleKey(KeyIncrease))
	assert.True(t, u.HandleKey(common.KeyKPAdd))
	assert.InDelta(t, start+0.4, cc.PanZoom().PanX, 1e-5)
	assert.True(t, u.HandleKey(KeyDecrease))
	assert.InDelta(t, start+0.2, cc.PanZoom().PanX, 1e-5)

	// Enter on a slider changes nothing
	before := cc.PanZoom()
	assert.True(t, u.HandleKey(KeyPress))
	assert.Equal(t, before, cc.PanZoom())

	// focus wraps backwards onto the last control
	assert.True(t, u.HandleKey(KeyPrevious))
	panel, label = u.Focused()
	assert.Equal(t, PanelFree, panel)
	assert.Equal(t, "Reset Free", label)

	// stepping a button changes nothing, Enter presses it
	u.Panel(PanelFree).Slider("Rot Z").Set(1)
	assert.True(t, u.HandleKey(KeyIncrease))
	assert.Equal(t, float32(1), cc.Free().RotZ)
	assert.True(t, u.HandleKey(KeyPress))
	assert.Equal(t, camera.DefaultFreeCamera(), cc.Free())

	// and wraps forwards onto the first
	assert.True(t, u.HandleKey(KeyNext))
	_, label = u.Focused()
	assert.Equal(t, "Pan X", label)

	out := buf.String()
	assert.Contains(t, out, "[UI] Pan & Zoom > Pan X")
	assert.Contains(t, out, "[UI] Free Camera > [Reset Free]")
	assert.Contains(t, u.Describe(), "> Pan X")
	assert.Equal(t, 1, strings.Count(u.Describe(), "> "))
}

func TestSliderStepClamps(t *testing.T) {
	cc := camera.NewCameraController()
	zoom := NewUI(cc).Panel(PanelOrbital).Slider("Distance")

	assert.Equal(t, float32(MaxDistance), zoom.Step(1000))
	assert.InDelta(t, MaxDistance-0.35, zoom.Step(-1), 1e-5)
	assert.Equal(t, float32(MinDistance), zoom.Step(-1000))
}

func TestConstructorPanics(t *testing.T) {
	assert.Panics(t, func() { NewUI(nil) })
	assert.Panics(t, func() { NewSlider("x", 1, 0, func() float32 { return 0 }, func(float32) {}) })
	assert.Panics(t, func() { NewSlider("x", 0, 1, nil, func(float32) {}) })
	assert.Panics(t, func() { NewButton("x", nil) })
}
