package config

import (
	"fmt"
	"maps"
	"slices"

	"go.trai.ch/zerr"

	"github.com/san-kum/cubebrowser/internal/render"
)

var Presets = map[string]*Session{
	"single": {
		Width: DefaultWidth, Height: DefaultHeight, Colormap: DefaultColormap, Levels: DefaultLevels,
		Cubes: []CubeConfig{{Name: "air", Stock: "realistic_3d"}},
		Plots: []PlotConfig{{Cube: "air", Kind: "contourf"}},
	},
	"shared": {
		Width: DefaultWidth, Height: DefaultHeight, Colormap: DefaultColormap, Levels: DefaultLevels,
		Cubes: []CubeConfig{{Name: "air", Stock: "realistic_3d"}},
		Plots: []PlotConfig{
			{Cube: "air", Kind: "contourf", Axes: "overlay"},
			{Cube: "air", Kind: "contour", Axes: "overlay"},
			{Cube: "air", Kind: "pcolormesh", Style: render.Style{Colormap: "coolwarm", Title: "mesh"}},
		},
	},
	"levels": {
		Width: 36, Height: 12, Colormap: DefaultColormap, Levels: DefaultLevels,
		Cubes: []CubeConfig{
			{Name: "air", Stock: "realistic_3d"},
			{Name: "stack", Stock: "realistic_3d", Levels: 5},
		},
		Plots: []PlotConfig{
			{Cube: "air", Kind: "contourf"},
			{Cube: "stack", Kind: "contourf", Style: render.Style{Colormap: "magma"}},
		},
	},
	"aliased": {
		Width: 36, Height: 12, Colormap: DefaultColormap, Levels: 6,
		Cubes: []CubeConfig{
			{Name: "air", Stock: "realistic_3d", RemoveCoords: []string{"time"}},
			{Name: "stack", Stock: "realistic_3d", Levels: 4, RemoveCoords: []string{"time"}},
		},
		Plots: []PlotConfig{
			{Cube: "air", Kind: "contourf", Aliases: map[string]any{"step": 0}},
			{Cube: "stack", Kind: "contour", Aliases: map[string]any{"level": 0, "step": 1}},
		},
	},
	"mesh": {
		Width: DefaultWidth, Height: DefaultHeight, Colormap: "greys", Levels: DefaultLevels,
		Cubes: []CubeConfig{
			{Name: "air", Stock: "realistic_3d"},
			{Name: "flat", Stock: "simple_2d"},
		},
		Plots: []PlotConfig{
			{Cube: "air", Kind: "pcolormesh", Coords: []any{"grid_longitude", "grid_latitude"}},
			{Cube: "flat", Kind: "pcolormesh", Coords: []any{1, 0}, Style: render.Style{Colormap: "retro"}},
		},
	},
}

// GetPreset returns a copy of the named preset.
func GetPreset(name string) (*Session, error) {
	s, ok := Presets[name]
	if !ok {
		return nil, zerr.With(zerr.Wrap(ErrUnknownPreset, fmt.Sprintf("no preset %q", name)), "preset", name)
	}
	out := *s
	out.Cubes = slices.Clone(s.Cubes)
	out.Plots = slices.Clone(s.Plots)
	for i := range out.Plots {
		out.Plots[i].Coords = slices.Clone(s.Plots[i].Coords)
		out.Plots[i].Aliases = maps.Clone(s.Plots[i].Aliases)
	}
	return &out, nil
}

func ListPresets() []string {
	return slices.Sorted(maps.Keys(Presets))
}
