package cube

import (
	"fmt"
	"slices"

	"go.trai.ch/zerr"
)

// Selector picks positions along one dimension.
type Selector struct {
	kind  selectorKind
	start int
	stop  int
}

type selectorKind int

const (
	selFull selectorKind = iota
	selIndex
	selRange
)

// Full keeps the whole dimension.
func Full() Selector { return Selector{kind: selFull} }

// Index keeps a single position and drops the dimension.
func Index(i int) Selector { return Selector{kind: selIndex, start: i} }

// Range keeps positions start <= i < stop.
func Range(start, stop int) Selector { return Selector{kind: selRange, start: start, stop: stop} }

func (s Selector) IsIndex() bool { return s.kind == selIndex }

// Pos returns the position of an index selector.
func (s Selector) Pos() int { return s.start }

func (s Selector) String() string {
	switch s.kind {
	case selIndex:
		return fmt.Sprint(s.start)
	case selRange:
		return fmt.Sprintf("%d:%d", s.start, s.stop)
	}
	return ":"
}

func (s Selector) picks(n int) ([]int, error) {
	switch s.kind {
	case selIndex:
		if s.start < 0 || s.start >= n {
			return nil, zerr.With(zerr.Wrap(ErrBadSelector, fmt.Sprintf("index %d out of range [0, %d)", s.start, n)), "selector", s.String())
		}
		return []int{s.start}, nil
	case selRange:
		if s.start < 0 || s.stop > n || s.start >= s.stop {
			return nil, zerr.With(zerr.Wrap(ErrBadSelector, fmt.Sprintf("range %d:%d invalid for extent %d", s.start, s.stop, n)), "selector", s.String())
		}
		out := make([]int, 0, s.stop-s.start)
		for i := s.start; i < s.stop; i++ {
			out = append(out, i)
		}
		return out, nil
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out, nil
}

// Slice returns a new cube selected by one selector per dimension. Indexed
// dimensions are dropped and their dimension coordinates become scalar
// coordinates of the result.
func (c *Cube) Slice(sel []Selector) (*Cube, error) {
	if len(sel) != len(c.shape) {
		return nil, zerr.With(zerr.Wrap(ErrBadSelector, fmt.Sprintf("%d selectors for %dd cube", len(sel), len(c.shape))), "cube", c.name)
	}
	picks := make([][]int, len(sel))
	for d, s := range sel {
		p, err := s.picks(c.shape[d])
		if err != nil {
			return nil, zerr.With(err, "dim", d)
		}
		picks[d] = p
	}

	// old dim -> new dim, or -1 when dropped
	remap := make([]int, len(sel))
	var shape []int
	for d, s := range sel {
		if s.IsIndex() {
			remap[d] = -1
			continue
		}
		remap[d] = len(shape)
		shape = append(shape, len(picks[d]))
	}

	out := &Cube{
		name:      c.name,
		shape:     shape,
		data:      gather(c.data, c.shape, picks),
		dimCoords: make([]*Coord, len(shape)),
	}

	var scalars []auxCoord
	for d, coord := range c.dimCoords {
		if coord == nil {
			continue
		}
		sub := subsetCoord(coord, []int{d}, c.shape, picks)
		if remap[d] < 0 {
			scalars = append(scalars, auxCoord{coord: sub})
			continue
		}
		out.dimCoords[remap[d]] = sub
	}
	for _, a := range c.aux {
		sub := subsetCoord(a.coord, a.dims, c.shape, picks)
		var dims []int
		for _, d := range a.dims {
			if remap[d] >= 0 {
				dims = append(dims, remap[d])
			}
		}
		out.aux = append(out.aux, auxCoord{coord: sub, dims: dims})
	}
	out.aux = append(out.aux, scalars...)
	return out, nil
}

func subsetCoord(coord *Coord, dims []int, shape []int, picks [][]int) *Coord {
	out := coord.Copy()
	if len(dims) == 0 {
		return out
	}
	spanShape := make([]int, len(dims))
	spanPicks := make([][]int, len(dims))
	for i, d := range dims {
		spanShape[i] = shape[d]
		spanPicks[i] = picks[d]
	}
	out.Points = gather(coord.Points, spanShape, spanPicks)
	if len(dims) == 1 && coord.HasBounds() {
		out.Bounds = make([][2]float64, 0, len(picks[dims[0]]))
		for _, i := range picks[dims[0]] {
			out.Bounds = append(out.Bounds, coord.Bounds[i])
		}
	} else {
		out.Bounds = nil
	}
	return out
}

// gather collects the row-major elements of data at the cartesian product
// of picks.
func gather(data []float64, shape []int, picks [][]int) []float64 {
	n := 1
	for _, p := range picks {
		n *= len(p)
	}
	out := make([]float64, 0, n)
	if n == 0 {
		return out
	}
	counter := make([]int, len(picks))
	for {
		off := 0
		for d, k := range counter {
			off = off*shape[d] + picks[d][k]
		}
		out = append(out, data[off])

		d := len(counter) - 1
		for ; d >= 0; d-- {
			counter[d]++
			if counter[d] < len(picks[d]) {
				break
			}
			counter[d] = 0
		}
		if d < 0 {
			return slices.Clip(out)
		}
	}
}
