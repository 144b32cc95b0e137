package plot

import (
	"cmp"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"go.trai.ch/zerr"

	"github.com/san-kum/cubebrowser/internal/cube"
	"github.com/san-kum/cubebrowser/internal/logging"
	"github.com/san-kum/cubebrowser/internal/render"
)

// Plot renders two dimensions of a cube onto an axes surface and slices the
// remaining dimensions by named slider values.
type Plot struct {
	cube   *cube.Cube
	axes   *render.Axes
	drawer Drawer
	style  render.Style
	logger *slog.Logger

	requested []Spec
	coords    [2]Spec
	plotDims  [2]int

	sliderDimByName map[string]int
	sliderNameByDim map[int]string
	dimByAlias      map[string]int

	cache *Cache

	subcube    *cube.Cube
	element    Artifact
	lastValues map[string]int
}

// Option configures a Plot.
type Option func(*Plot)

// WithCoords nominates the x-axis and y-axis, in that order.
func WithCoords(specs ...Spec) Option {
	return func(p *Plot) {
		if specs == nil {
			specs = []Spec{}
		}
		p.requested = specs
	}
}

// WithStyle sets the rendering options passed through to the drawer.
func WithStyle(style render.Style) Option {
	return func(p *Plot) { p.style = style }
}

// WithLogger sets the logger used for advisory warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Plot) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a plot of c drawn by drawer onto axes. Without WithCoords the
// plot uses the X and Y dimension coordinates when both exist, else the
// last two dimensions.
func New(c *cube.Cube, axes *render.Axes, drawer Drawer, opts ...Option) (*Plot, error) {
	p := &Plot{
		cube:       c,
		axes:       axes,
		drawer:     drawer,
		logger:     logging.Discard(),
		dimByAlias: make(map[string]int),
	}
	for _, opt := range opts {
		opt(p)
	}
	if c.Ndim() < 2 {
		return nil, zerr.With(zerr.Wrap(ErrDimensionality, fmt.Sprintf("%s requires at least a 2d cube, got %dd", p.Kind(), c.Ndim())), "cube", c.Name())
	}
	specs := p.requested
	if specs == nil {
		specs = p.defaultCoords()
	}
	coords, dims, err := p.checkCoords(specs)
	if err != nil {
		return nil, err
	}
	p.coords = coords
	p.plotDims = dims
	p.sliderDimByName, p.sliderNameByDim = p.slidersDim()
	return p, nil
}

// NewContourf creates a filled contour plot.
func NewContourf(c *cube.Cube, axes *render.Axes, opts ...Option) (*Plot, error) {
	return New(c, axes, Contourf{}, opts...)
}

// NewContour creates a line contour plot.
func NewContour(c *cube.Cube, axes *render.Axes, opts ...Option) (*Plot, error) {
	return New(c, axes, Contour{}, opts...)
}

// NewPcolormesh creates a pseudocolour plot on a quadrilateral mesh.
func NewPcolormesh(c *cube.Cube, axes *render.Axes, opts ...Option) (*Plot, error) {
	return New(c, axes, Pcolormesh{}, opts...)
}

func (p *Plot) defaultCoords() []Spec {
	xs := p.cube.Coords(cube.OnAxis("x"), cube.DimCoords())
	ys := p.cube.Coords(cube.OnAxis("y"), cube.DimCoords())
	if len(xs) > 0 && len(ys) > 0 {
		return []Spec{Ref(xs[0]), Ref(ys[0])}
	}
	ndim := p.cube.Ndim()
	pick := func(dim int) Spec {
		if co := p.cube.DimCoord(dim); co != nil {
			return Ref(co)
		}
		return Dim(dim)
	}
	return []Spec{pick(ndim - 1), pick(ndim - 2)}
}

func (p *Plot) checkCoords(specs []Spec) ([2]Spec, [2]int, error) {
	var result [2]Spec
	var dims [2]int
	if len(specs) != 2 {
		return result, dims, zerr.With(zerr.Wrap(ErrArity, fmt.Sprintf("%s requires 2 coordinates, one for each plot axis, got %d", p.Kind(), len(specs))), "cube", p.cube.Name())
	}
	ndim := p.cube.Ndim()
	translate := false
	for i, axis := range []string{"x", "y"} {
		spec := specs[i]
		if spec.IsDim() {
			d := spec.Dim()
			if d < 0 {
				d += ndim
			}
			if d < 0 || d >= ndim {
				return result, dims, zerr.With(zerr.Wrap(ErrAxisRange, fmt.Sprintf("nominated %s-axis plot dimension for %dd cube out of range, got %d", axis, ndim, spec.Dim())), "axis", axis)
			}
			result[i] = Dim(d)
			dims[i] = d
			translate = true
			continue
		}

		found := p.cube.Coords(spec.filter())
		switch {
		case len(found) == 0:
			return result, dims, zerr.With(zerr.Wrap(ErrCoordinateNotFound, fmt.Sprintf("nominated %s-axis plot coordinate %q not found on cube", axis, spec.Name())), "axis", axis)
		case len(found) > 1:
			return result, dims, zerr.With(zerr.Wrap(ErrCoordinateNotFound, fmt.Sprintf("nominated %s-axis plot coordinate %q does not resolve to a unique coordinate", axis, spec.Name())), "axis", axis)
		}
		co := found[0]
		if co.Kind != cube.KindDim {
			return result, dims, zerr.With(zerr.Wrap(ErrCoordinateKind, fmt.Sprintf("nominated %s-axis plot coordinate %q must be a dimension coordinate", axis, co.Name())), "axis", axis)
		}
		span := p.cube.CoordDims(co)
		switch {
		case len(span) == 0:
			return result, dims, zerr.With(zerr.Wrap(ErrScalarCoordinate, fmt.Sprintf("nominated %s-axis plot coordinate %q cannot be a scalar coordinate", axis, co.Name())), "axis", axis)
		case len(span) > 1:
			return result, dims, zerr.With(zerr.Wrap(ErrCoordinateKind, fmt.Sprintf("nominated %s-axis plot coordinate %q spans %d dimensions", axis, co.Name(), len(span))), "axis", axis)
		}
		result[i] = Ref(co)
		dims[i] = span[0]
	}
	if dims[0] == dims[1] {
		return result, dims, zerr.With(zerr.Wrap(ErrDuplicateAxis, fmt.Sprintf("nominated x-axis and y-axis reference the same cube dimension, got %d", dims[0])), "dim", dims[0])
	}
	if translate {
		// dimension specs index the 2d sub-slice, not the cube
		t := [2]int{0, 1}
		if dims[0] > dims[1] {
			t = [2]int{1, 0}
		}
		for i := range result {
			if result[i].IsDim() {
				result[i] = Dim(t[i])
			}
		}
	}
	return result, dims, nil
}

// slidersDim names every non-plot dimension by its dimension coordinate,
// falling back to the first dimension-coordinate typed auxiliary
// coordinate spanning exactly that dimension.
func (p *Plot) slidersDim() (map[string]int, map[int]string) {
	byName := make(map[string]int)
	byDim := make(map[int]string)
	for _, dim := range p.SliderDims() {
		if co := p.cube.DimCoord(dim); co != nil {
			byName[co.Name()] = dim
			byDim[dim] = co.Name()
			continue
		}
		var candidates []*cube.Coord
		for _, co := range p.cube.Coords(cube.OnDims(dim), cube.AuxCoords()) {
			if co.Kind == cube.KindDim {
				candidates = append(candidates, co)
			}
		}
		if len(candidates) == 0 {
			continue
		}
		slices.SortStableFunc(candidates, func(a, b *cube.Coord) int {
			return cmp.Compare(a.DefnKey(), b.DefnKey())
		})
		byName[candidates[0].Name()] = dim
		byDim[dim] = candidates[0].Name()
	}
	return byName, byDim
}

// PlotDims returns the cube dimensions of the x-axis and y-axis.
func (p *Plot) PlotDims() [2]int { return p.plotDims }

// SliderDims returns the cube dimensions that are not plotted, in order.
func (p *Plot) SliderDims() []int {
	var dims []int
	for d := range p.cube.Ndim() {
		if d != p.plotDims[0] && d != p.plotDims[1] {
			dims = append(dims, d)
		}
	}
	return dims
}

// SlidersAxis describes every slider dimension in dimension order. An
// aliased dimension yields an alias axis, otherwise the naming coordinate
// yields a definition axis.
func (p *Plot) SlidersAxis() ([]Axis, error) {
	aliasByDim := invert(p.dimByAlias)
	shape := p.cube.Shape()
	var result []Axis
	for _, dim := range p.SliderDims() {
		if name, ok := aliasByDim[dim]; ok {
			result = append(result, NewAlias(dim, name, shape[dim]))
			continue
		}
		name, ok := p.sliderNameByDim[dim]
		if !ok {
			return nil, zerr.With(zerr.Wrap(ErrMissingMetadata, fmt.Sprintf("%s cube %q has no meta-data for dimension %d", p.Kind(), p.cube.Name(), dim)), "dim", dim)
		}
		found := p.cube.Coords(cube.Named(name), cube.OnDims(dim))
		if len(found) == 0 {
			return nil, zerr.With(zerr.Wrap(ErrMissingMetadata, fmt.Sprintf("%s cube %q lost coordinate %q for dimension %d", p.Kind(), p.cube.Name(), name, dim)), "dim", dim)
		}
		coord := found[0].Lenient()
		result = append(result, NewDefn(dim, name, coord.Size(), coord))
	}
	return result, nil
}

// Kind names the plot style.
func (p *Plot) Kind() string {
	if s, ok := p.drawer.(fmt.Stringer); ok {
		return s.String()
	}
	return "Plot"
}

func (p *Plot) Cube() *cube.Cube { return p.cube }

func (p *Plot) Axes() *render.Axes { return p.axes }

func (p *Plot) Style() render.Style { return p.style }

// Coords returns the resolved x-axis and y-axis. Dimension specs are
// relative to the rendered 2d sub-slice.
func (p *Plot) Coords() [2]Spec { return p.coords }

// Subcube returns the most recently rendered sub-slice.
func (p *Plot) Subcube() *cube.Cube { return p.subcube }

// Element returns the most recently drawn artifact.
func (p *Plot) Element() Artifact { return p.element }

// LastValues returns the slider values of the most recent render.
func (p *Plot) LastValues() map[string]int { return maps.Clone(p.lastValues) }

// Cache returns the sub-slice cache, creating it on first use.
func (p *Plot) Cache() *Cache {
	if p.cache == nil {
		p.cache = NewCache()
	}
	return p.cache
}

// SetCache replaces the sub-slice cache so plots of one cube can share it.
func (p *Plot) SetCache(c *Cache) error {
	if c == nil {
		return zerr.With(zerr.Wrap(ErrCacheType, "cannot assign a nil cache"), "cube", p.cube.Name())
	}
	p.cache = c
	return nil
}

func (p *Plot) String() string {
	return fmt.Sprintf("%s(%s)", p.Kind(), p.cube.Name())
}

func invert[K comparable, V comparable](m map[K]V) map[V]K {
	out := make(map[V]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}
