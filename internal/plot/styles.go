package plot

import (
	"fmt"

	"go.trai.ch/zerr"

	"github.com/san-kum/cubebrowser/internal/cube"
	"github.com/san-kum/cubebrowser/internal/render"
)

// Artifact is a drawn element that can be taken off its axes.
type Artifact interface {
	Remove()
}

// Drawer draws a 2d sub-slice onto axes. Dimension specs in coords index
// the sub-slice.
type Drawer interface {
	Draw(axes *render.Axes, sub *cube.Cube, coords [2]Spec, style render.Style) (Artifact, error)
}

// Contourf draws filled contours.
type Contourf struct{}

func (Contourf) String() string { return "Contourf" }

func (Contourf) Draw(axes *render.Axes, sub *cube.Cube, coords [2]Spec, style render.Style) (Artifact, error) {
	g, err := gridOf(sub, coords)
	if err != nil {
		return nil, err
	}
	layer, err := axes.Contourf(g, style)
	if err != nil {
		return nil, err
	}
	return layer, nil
}

// Contour draws contour lines.
type Contour struct{}

func (Contour) String() string { return "Contour" }

func (Contour) Draw(axes *render.Axes, sub *cube.Cube, coords [2]Spec, style render.Style) (Artifact, error) {
	g, err := gridOf(sub, coords)
	if err != nil {
		return nil, err
	}
	layer, err := axes.Contour(g, style)
	if err != nil {
		return nil, err
	}
	return layer, nil
}

// Pcolormesh draws a pseudocolour mesh. Plotted coordinates of the
// sub-slice that lack bounds get guessed ones first.
type Pcolormesh struct{}

func (Pcolormesh) String() string { return "Pcolormesh" }

func (Pcolormesh) Draw(axes *render.Axes, sub *cube.Cube, coords [2]Spec, style render.Style) (Artifact, error) {
	for _, spec := range coords {
		if spec.IsDim() {
			continue
		}
		co, _, err := plotted(sub, spec)
		if err != nil {
			return nil, err
		}
		if !co.HasBounds() {
			if err := co.GuessBounds(); err != nil {
				return nil, err
			}
		}
	}
	g, err := gridOf(sub, coords)
	if err != nil {
		return nil, err
	}
	for _, ax := range []*render.Axis{&g.X, &g.Y} {
		if len(ax.Bounds) == 0 {
			ax.Bounds = pointBounds(ax.Points)
		}
	}
	layer, err := axes.Pcolormesh(g, style)
	if err != nil {
		return nil, err
	}
	return layer, nil
}

// plotted finds the coordinate of a named spec on a sub-slice together with
// the dimension it spans.
func plotted(sub *cube.Cube, spec Spec) (*cube.Coord, int, error) {
	for _, co := range sub.Coords(cube.Named(spec.Name())) {
		if span := sub.CoordDims(co); len(span) == 1 {
			return co, span[0], nil
		}
	}
	return nil, 0, zerr.With(zerr.Wrap(ErrCoordinateNotFound, fmt.Sprintf("sub-slice has no 1d coordinate %q", spec.Name())), "cube", sub.Name())
}

// gridOf lays the samples of a 2d sub-slice out along the plot axes.
func gridOf(sub *cube.Cube, coords [2]Spec) (render.Grid, error) {
	var g render.Grid
	if sub.Ndim() != 2 {
		return g, zerr.With(zerr.Wrap(ErrNotPlottable, fmt.Sprintf("got a %dd sub-slice", sub.Ndim())), "cube", sub.Name())
	}
	var dims [2]int
	var axes [2]render.Axis
	shape := sub.Shape()
	for i, spec := range coords {
		if spec.IsDim() {
			d := spec.Dim()
			dims[i] = d
			if co := sub.DimCoord(d); co != nil {
				axes[i] = render.Axis{Label: co.Name(), Points: co.Points, Bounds: co.Bounds}
				continue
			}
			points := make([]float64, shape[d])
			for k := range points {
				points[k] = float64(k)
			}
			axes[i] = render.Axis{Label: fmt.Sprintf("dim %d", d), Points: points}
			continue
		}
		co, d, err := plotted(sub, spec)
		if err != nil {
			return g, err
		}
		dims[i] = d
		axes[i] = render.Axis{Label: co.Name(), Points: co.Points, Bounds: co.Bounds}
	}
	if dims[0] == dims[1] {
		return g, zerr.With(zerr.Wrap(ErrDuplicateAxis, "sub-slice axes collapse onto one dimension"), "dim", dims[0])
	}

	g.X, g.Y = axes[0], axes[1]
	g.Values = make([][]float64, shape[dims[1]])
	index := make([]int, 2)
	for y := range g.Values {
		row := make([]float64, shape[dims[0]])
		for x := range row {
			index[dims[0]], index[dims[1]] = x, y
			row[x] = sub.At(index...)
		}
		g.Values[y] = row
	}
	return g, nil
}

// pointBounds guesses bounds for an axis without a coordinate to hold them.
func pointBounds(points []float64) [][2]float64 {
	tmp := &cube.Coord{Points: points}
	if err := tmp.GuessBounds(); err == nil {
		return tmp.Bounds
	}
	out := make([][2]float64, len(points))
	for i, p := range points {
		out[i] = [2]float64{p - 0.5, p + 0.5}
	}
	return out
}
