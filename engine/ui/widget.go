package ui

import "github.com/Carmen-Shannon/oxy-mobile/common"

// Slider is a labeled float control bound to a value owned elsewhere.
// Writes are clamped to [Min, Max]; reads return the bound value unchanged.
type Slider struct {
	Label    string
	Min, Max float32

	get func() float32
	set func(float32)
}

// NewSlider creates a Slider reading and writing through get and set.
// Panics if either accessor is nil or the range is inverted.
//
// Parameters:
//   - label: the text shown next to the slider
//   - lo, hi: the slider range
//   - get: reads the bound value
//   - set: writes the bound value
//
// Returns:
//   - *Slider: the new slider
func NewSlider(label string, lo, hi float32, get func() float32, set func(float32)) *Slider {
	if get == nil || set == nil {
		panic("ui: slider " + label + " needs both accessors")
	}
	if lo > hi {
		panic("ui: slider " + label + " has an inverted range")
	}
	return &Slider{Label: label, Min: lo, Max: hi, get: get, set: set}
}

// Value returns the bound value.
func (s *Slider) Value() float32 {
	return s.get()
}

// Set writes v clamped to the slider range and returns the value written.
func (s *Slider) Set(v float32) float32 {
	v = common.Clamp(v, s.Min, s.Max)
	s.set(v)
	return v
}

// SliderSteps is the number of Step increments spanning a slider's range.
const SliderSteps = 100

// Step moves the bound value by n increments of (Max-Min)/SliderSteps, clamped to the range.
//
// Parameters:
//   - n: the number of increments, negative to decrease
//
// Returns:
//   - float32: the value written
func (s *Slider) Step(n int) float32 {
	return s.Set(s.Value() + float32(n)*(s.Max-s.Min)/SliderSteps)
}

// Button runs an action when pressed.
type Button struct {
	Label string

	onPress func()
}

// NewButton creates a Button. Panics if onPress is nil.
func NewButton(label string, onPress func()) *Button {
	if onPress == nil {
		panic("ui: button " + label + " has no action")
	}
	return &Button{Label: label, onPress: onPress}
}

// Press runs the button's action.
func (b *Button) Press() {
	b.onPress()
}

// Panel groups the controls of one camera under a title.
type Panel struct {
	Title   string
	Sliders []*Slider
	Buttons []*Button
}

// Slider returns the slider with the given label, or nil.
func (p *Panel) Slider(label string) *Slider {
	for _, s := range p.Sliders {
		if s.Label == label {
			return s
		}
	}
	return nil
}

// Button returns the button with the given label, or nil.
func (p *Panel) Button(label string) *Button {
	for _, b := range p.Buttons {
		if b.Label == label {
			return b
		}
	}
	return nil
}
