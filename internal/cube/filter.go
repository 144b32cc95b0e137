package cube

import (
	"slices"
	"strings"
)

// Filter narrows a coordinate search. Filters passed to [Cube.Coords] are
// combined with logical and.
type Filter func(c *Cube, coord *Coord, dims []int) bool

// Named matches coordinates whose name is name.
func Named(name string) Filter {
	return func(_ *Cube, coord *Coord, _ []int) bool { return coord.Name() == name }
}

// Like matches the given coordinate itself or any coordinate equal to it.
func Like(target *Coord) Filter {
	return func(_ *Cube, coord *Coord, _ []int) bool {
		return coord == target || coord.Equal(target)
	}
}

// OnAxis matches coordinates with the given axis letter, ignoring case.
func OnAxis(axis string) Filter {
	return func(_ *Cube, coord *Coord, _ []int) bool { return strings.EqualFold(coord.Axis, axis) }
}

// OnDims matches coordinates spanning exactly dims, in order.
func OnDims(dims ...int) Filter {
	return func(_ *Cube, _ *Coord, span []int) bool { return slices.Equal(span, dims) }
}

// DimCoords matches dimension coordinates only.
func DimCoords() Filter {
	return func(c *Cube, coord *Coord, _ []int) bool { return slices.Contains(c.dimCoords, coord) }
}

// AuxCoords matches auxiliary coordinates only.
func AuxCoords() Filter {
	return func(c *Cube, coord *Coord, _ []int) bool { return !slices.Contains(c.dimCoords, coord) }
}

// Coords returns the coordinates matching every filter. Dimension coordinates
// come first in dimension order, followed by auxiliary coordinates in the
// order they were added.
func (c *Cube) Coords(filters ...Filter) []*Coord {
	var out []*Coord
	match := func(coord *Coord, dims []int) {
		for _, f := range filters {
			if !f(c, coord, dims) {
				return
			}
		}
		out = append(out, coord)
	}
	for d, coord := range c.dimCoords {
		if coord != nil {
			match(coord, []int{d})
		}
	}
	for _, a := range c.aux {
		match(a.coord, a.dims)
	}
	return out
}

// DimCoord returns the dimension coordinate describing dim, or nil.
func (c *Cube) DimCoord(dim int) *Coord {
	if dim < 0 || dim >= len(c.dimCoords) {
		return nil
	}
	return c.dimCoords[dim]
}
