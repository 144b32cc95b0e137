// Package plot resolves which cube dimensions a 2d plot draws and which
// become sliders.
//
// A [Plot] pairs a cube with a render surface and a [Drawer]. Two
// dimensions are plotted; every other dimension is a slider dimension,
// named by its dimension coordinate or by a user alias:
//
//	p, err := plot.NewContourf(c, axes, plot.WithCoords(plot.Name("grid_longitude"), plot.Dim(1)))
//	err = p.Alias("level", 0)
//	_, err = p.Render(map[string]int{"level": 3, "time": 2})
//
// [Plot.SlidersAxis] describes the slider dimensions as [Axis] values so a
// browser can decide whether two plots share a slider. Sub-slices are
// memoised in a weak [Cache] that plots of one cube may share.
package plot
