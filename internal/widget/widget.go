// Package widget provides the integer slider controls driving a browser.
package widget

import (
	"errors"
	"fmt"

	"go.trai.ch/zerr"
)

// ErrOutOfRange indicates a slider value outside [Min, Max].
var ErrOutOfRange = zerr.New("widget: value out of range")

// Change describes a slider value transition.
type Change struct {
	Owner *IntSlider
	Old   int
	New   int
}

// Observer receives value changes of a slider.
type Observer func(Change) error

// IntSlider holds an integer value in [Min, Max].
type IntSlider struct {
	Min         int
	Max         int
	Description string

	value     int
	observers []Observer
}

// NewIntSlider returns a slider over [lo, hi] positioned at lo.
func NewIntSlider(lo, hi int, description string) *IntSlider {
	return &IntSlider{Min: lo, Max: hi, Description: description, value: lo}
}

func (s *IntSlider) Value() int { return s.value }

// SetValue moves the slider and notifies every observer in registration
// order. Setting the current value is a no-op.
func (s *IntSlider) SetValue(v int) error {
	if v < s.Min || v > s.Max {
		return zerr.With(zerr.Wrap(ErrOutOfRange, fmt.Sprintf("%s: %d not in [%d, %d]", s.Description, v, s.Min, s.Max)), "slider", s.Description)
	}
	if v == s.value {
		return nil
	}
	change := Change{Owner: s, Old: s.value, New: v}
	s.value = v
	var errs []error
	for _, obs := range s.observers {
		if err := obs(change); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Step moves the slider by delta, clamped to its range.
func (s *IntSlider) Step(delta int) error {
	return s.SetValue(max(s.Min, min(s.Max, s.value+delta)))
}

// Observe registers an observer for value changes.
func (s *IntSlider) Observe(obs Observer) {
	s.observers = append(s.observers, obs)
}

// Fraction returns the slider position in [0, 1].
func (s *IntSlider) Fraction() float64 {
	if s.Max <= s.Min {
		return 0
	}
	return float64(s.value-s.Min) / float64(s.Max-s.Min)
}

func (s *IntSlider) String() string {
	return fmt.Sprintf("%s=%d [%d..%d]", s.Description, s.value, s.Min, s.Max)
}

// VBox lays its children out vertically.
type VBox struct {
	Children []*IntSlider
}
