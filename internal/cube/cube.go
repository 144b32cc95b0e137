package cube

import (
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

type auxCoord struct {
	coord *Coord
	dims  []int
}

// Cube is an N-dimensional array of float64 samples with coordinate metadata.
type Cube struct {
	name      string
	shape     []int
	data      []float64
	dimCoords []*Coord
	aux       []auxCoord
}

// New creates a cube. The data is taken over, not copied.
func New(name string, shape []int, data []float64) (*Cube, error) {
	size := 1
	for _, n := range shape {
		if n <= 0 {
			return nil, zerr.With(zerr.Wrap(ErrShapeMismatch, "cube extents must be positive"), "shape", shape)
		}
		size *= n
	}
	if len(data) != size {
		return nil, zerr.With(zerr.Wrap(ErrShapeMismatch, fmt.Sprintf("cube %q expects %d samples, got %d", name, size, len(data))), "shape", shape)
	}
	return &Cube{
		name:      name,
		shape:     slices.Clone(shape),
		data:      data,
		dimCoords: make([]*Coord, len(shape)),
	}, nil
}

func (c *Cube) Name() string { return c.name }

func (c *Cube) Ndim() int { return len(c.shape) }

func (c *Cube) Shape() []int { return slices.Clone(c.shape) }

func (c *Cube) Size() int { return len(c.data) }

// Data returns the row-major samples. Callers must not modify them.
func (c *Cube) Data() []float64 { return c.data }

// AddDimCoord attaches a dimension coordinate to dim.
func (c *Cube) AddDimCoord(coord *Coord, dim int) error {
	if dim < 0 || dim >= len(c.shape) {
		return zerr.With(zerr.Wrap(ErrShapeMismatch, fmt.Sprintf("dimension %d out of range for %dd cube", dim, len(c.shape))), "coord", coord.Name())
	}
	if coord.Kind != KindDim {
		return zerr.With(zerr.Wrap(ErrShapeMismatch, "only dimension coordinates may describe a dimension"), "coord", coord.Name())
	}
	if c.dimCoords[dim] != nil {
		return zerr.With(zerr.Wrap(ErrDimOccupied, fmt.Sprintf("dimension %d is taken", dim)), "coord", coord.Name())
	}
	if len(coord.Points) != c.shape[dim] {
		return zerr.With(zerr.Wrap(ErrShapeMismatch, fmt.Sprintf("coordinate %q has %d points, dimension %d has %d", coord.Name(), len(coord.Points), dim, c.shape[dim])), "coord", coord.Name())
	}
	if !monotonic(coord.Points) {
		return zerr.With(zerr.Wrap(ErrNotMonotonic, "cannot attach coordinate"), "coord", coord.Name())
	}
	c.dimCoords[dim] = coord
	return nil
}

// AddAuxCoord attaches an auxiliary coordinate spanning dims. No dims means
// a scalar coordinate.
func (c *Cube) AddAuxCoord(coord *Coord, dims ...int) error {
	want := 1
	for i, d := range dims {
		if d < 0 || d >= len(c.shape) || slices.Contains(dims[:i], d) {
			return zerr.With(zerr.Wrap(ErrShapeMismatch, fmt.Sprintf("invalid dimensions %v for %dd cube", dims, len(c.shape))), "coord", coord.Name())
		}
		want *= c.shape[d]
	}
	if len(coord.Points) != want {
		return zerr.With(zerr.Wrap(ErrShapeMismatch, fmt.Sprintf("coordinate %q has %d points, expected %d", coord.Name(), len(coord.Points), want)), "coord", coord.Name())
	}
	c.aux = append(c.aux, auxCoord{coord: coord, dims: slices.Clone(dims)})
	return nil
}

// RemoveCoord detaches every coordinate called name.
func (c *Cube) RemoveCoord(name string) error {
	found := false
	for d, co := range c.dimCoords {
		if co != nil && co.Name() == name {
			c.dimCoords[d] = nil
			found = true
		}
	}
	kept := c.aux[:0]
	for _, a := range c.aux {
		if a.coord.Name() == name {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	c.aux = kept
	if !found {
		return zerr.With(zerr.Wrap(ErrCoordNotFound, "cannot remove coordinate"), "coord", name)
	}
	return nil
}

// CoordDims returns the dimensions spanned by a coordinate attached to the
// cube. A scalar coordinate spans none.
func (c *Cube) CoordDims(coord *Coord) []int {
	for d, co := range c.dimCoords {
		if co == coord {
			return []int{d}
		}
	}
	for _, a := range c.aux {
		if a.coord == coord {
			return slices.Clone(a.dims)
		}
	}
	return nil
}

// Coord returns the single coordinate called name.
func (c *Cube) Coord(name string) (*Coord, error) {
	found := c.Coords(Named(name))
	switch len(found) {
	case 0:
		return nil, zerr.With(zerr.Wrap(ErrCoordNotFound, fmt.Sprintf("cube %q has no coordinate %q", c.name, name)), "coord", name)
	case 1:
		return found[0], nil
	}
	return nil, zerr.With(zerr.Wrap(ErrAmbiguousCoord, fmt.Sprintf("%d coordinates named %q", len(found), name)), "coord", name)
}

// At returns the sample at the given per-dimension index.
func (c *Cube) At(index ...int) float64 {
	return c.data[c.offset(index)]
}

func (c *Cube) offset(index []int) int {
	off := 0
	for d, i := range index {
		off = off*c.shape[d] + i
	}
	return off
}

// Mean returns the arithmetic mean of all samples.
func (c *Cube) Mean() float64 {
	sum := 0.0
	for _, v := range c.data {
		sum += v
	}
	return sum / float64(len(c.data))
}

// Copy returns a deep copy of the cube and its coordinates.
func (c *Cube) Copy() *Cube {
	out := &Cube{
		name:      c.name,
		shape:     slices.Clone(c.shape),
		data:      slices.Clone(c.data),
		dimCoords: make([]*Coord, len(c.dimCoords)),
		aux:       make([]auxCoord, len(c.aux)),
	}
	for d, co := range c.dimCoords {
		if co != nil {
			out.dimCoords[d] = co.Copy()
		}
	}
	for i, a := range c.aux {
		out.aux[i] = auxCoord{coord: a.coord.Copy(), dims: slices.Clone(a.dims)}
	}
	return out
}

// Equal reports structural equality of shape, data and coordinates.
func (c *Cube) Equal(o *Cube) bool {
	if c == o {
		return true
	}
	if c == nil || o == nil || c.name != o.name || !slices.Equal(c.shape, o.shape) || !slices.Equal(c.data, o.data) {
		return false
	}
	for d := range c.dimCoords {
		if !c.dimCoords[d].Equal(o.dimCoords[d]) {
			return false
		}
	}
	if len(c.aux) != len(o.aux) {
		return false
	}
	for i := range c.aux {
		if !slices.Equal(c.aux[i].dims, o.aux[i].dims) || !c.aux[i].coord.Equal(o.aux[i].coord) {
			return false
		}
	}
	return true
}

func (c *Cube) String() string {
	parts := make([]string, len(c.shape))
	for d, n := range c.shape {
		label := fmt.Sprintf("-- %d", d)
		if co := c.dimCoords[d]; co != nil {
			label = co.Name()
		}
		parts[d] = fmt.Sprintf("%s: %d", label, n)
	}
	return fmt.Sprintf("%s / (%s)", c.name, strings.Join(parts, "; "))
}

func monotonic(points []float64) bool {
	if len(points) < 2 {
		return true
	}
	inc := points[1] > points[0]
	for i := 1; i < len(points); i++ {
		if inc && points[i] <= points[i-1] || !inc && points[i] >= points[i-1] {
			return false
		}
	}
	return true
}
