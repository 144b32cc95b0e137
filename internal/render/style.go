package render

// DefaultLevels is the number of contour bands when a style leaves it unset.
const DefaultLevels = 8

// Style carries the rendering options of a plot.
type Style struct {
	Colormap string `yaml:"colormap,omitempty"`
	Levels   int    `yaml:"levels,omitempty"`
	Title    string `yaml:"title,omitempty"`
}

func (s Style) levels() int {
	if s.Levels < 2 {
		return DefaultLevels
	}
	return s.Levels
}

func (s Style) colormap() Colormap { return GetColormap(s.Colormap) }

// Merge fills the unset fields of s from defaults.
func (s Style) Merge(defaults Style) Style {
	if s.Colormap == "" {
		s.Colormap = defaults.Colormap
	}
	if s.Levels == 0 {
		s.Levels = defaults.Levels
	}
	if s.Title == "" {
		s.Title = defaults.Title
	}
	return s
}
