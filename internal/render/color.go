package render

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// lerp blends two hex colours in RGB. A stop that does not parse as hex is
// returned as is.
func lerp(from, to lipgloss.Color, t float64) lipgloss.Color {
	a, err := colorful.Hex(string(from))
	if err != nil {
		return from
	}
	b, err := colorful.Hex(string(to))
	if err != nil {
		return to
	}
	return lipgloss.Color(a.BlendRgb(b, t).Clamped().Hex())
}
