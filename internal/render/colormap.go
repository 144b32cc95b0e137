package render

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Colormap maps normalised values in [0, 1] onto colours by linear
// interpolation between evenly spaced stops.
type Colormap struct {
	Name  string
	Stops []lipgloss.Color
}

// Available colormaps
var (
	Viridis = Colormap{
		Name:  "viridis",
		Stops: []lipgloss.Color{"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"},
	}

	Magma = Colormap{
		Name:  "magma",
		Stops: []lipgloss.Color{"#000004", "#51127c", "#b73779", "#fc8961", "#fcfdbf"},
	}

	Coolwarm = Colormap{
		Name:  "coolwarm",
		Stops: []lipgloss.Color{"#3b4cc0", "#8db0fe", "#dddddd", "#f49a7b", "#b40426"},
	}

	Greys = Colormap{
		Name:  "greys",
		Stops: []lipgloss.Color{"#1a1a1a", "#ffffff"},
	}

	Retro = Colormap{
		Name:  "retro",
		Stops: []lipgloss.Color{"#001100", "#005500", "#00cc00", "#88ff88"},
	}

	// Colormaps lists every colormap, the default first.
	Colormaps = []Colormap{
		Viridis,
		Magma,
		Coolwarm,
		Greys,
		Retro,
	}
)

// GetColormap returns a colormap by name, falling back to viridis.
func GetColormap(name string) Colormap {
	for _, c := range Colormaps {
		if c.Name == name {
			return c
		}
	}
	return Viridis
}

// ColormapNames returns list of available colormap names
func ColormapNames() []string {
	names := make([]string, len(Colormaps))
	for i, c := range Colormaps {
		names[i] = c.Name
	}
	return names
}

// At returns the colour at t, clamped to [0, 1].
func (c Colormap) At(t float64) lipgloss.Color {
	if len(c.Stops) == 0 {
		return lipgloss.Color("#ffffff")
	}
	if len(c.Stops) == 1 || math.IsNaN(t) {
		return c.Stops[0]
	}
	t = math.Max(0, math.Min(1, t))
	pos := t * float64(len(c.Stops)-1)
	i := int(pos)
	if i >= len(c.Stops)-1 {
		return c.Stops[len(c.Stops)-1]
	}
	return lerp(c.Stops[i], c.Stops[i+1], pos-float64(i))
}

// Gradient renders width blocks sweeping the colormap.
func (c Colormap) Gradient(width int) string {
	var out string
	for i := range width {
		t := 0.0
		if width > 1 {
			t = float64(i) / float64(width-1)
		}
		out += lipgloss.NewStyle().Foreground(c.At(t)).Render("█")
	}
	return out
}
