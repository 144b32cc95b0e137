package render

import (
	"fmt"
	"math"

	"go.trai.ch/zerr"
)

// Axis is one plotted axis of a grid.
type Axis struct {
	Label  string
	Points []float64
	Bounds [][2]float64
}

// Grid holds 2d samples. Values is indexed [y][x].
type Grid struct {
	X, Y   Axis
	Values [][]float64
}

func (g Grid) validate() error {
	if len(g.Values) == 0 || len(g.Values[0]) == 0 {
		return zerr.Wrap(ErrEmptyGrid, "nothing to draw")
	}
	if len(g.Values) != len(g.Y.Points) {
		return zerr.With(zerr.Wrap(ErrGridShape, fmt.Sprintf("%d rows for %d y points", len(g.Values), len(g.Y.Points))), "axis", g.Y.Label)
	}
	for _, row := range g.Values {
		if len(row) != len(g.X.Points) {
			return zerr.With(zerr.Wrap(ErrGridShape, fmt.Sprintf("%d columns for %d x points", len(row), len(g.X.Points))), "axis", g.X.Label)
		}
	}
	return nil
}

// Range returns the smallest and largest finite sample.
func (g Grid) Range() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range g.Values {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}

// extent returns the coordinate span of an axis.
func (a Axis) extent(useBounds bool) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	if useBounds {
		for _, b := range a.Bounds {
			lo = math.Min(lo, math.Min(b[0], b[1]))
			hi = math.Max(hi, math.Max(b[0], b[1]))
		}
		return lo, hi
	}
	for _, p := range a.Points {
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	return lo, hi
}

// nearest returns the index of the point closest to v.
func (a Axis) nearest(v float64) int {
	best, dist := 0, math.Inf(1)
	for i, p := range a.Points {
		if d := math.Abs(p - v); d < dist {
			best, dist = i, d
		}
	}
	return best
}

// cell returns the index whose bounds contain v, or -1.
func (a Axis) cell(v float64) int {
	for i, b := range a.Bounds {
		lo, hi := math.Min(b[0], b[1]), math.Max(b[0], b[1])
		if v >= lo && v <= hi {
			return i
		}
	}
	return -1
}

// sampleAt maps position i of n evenly spaced cell centres onto [lo, hi].
func sampleAt(i, n int, lo, hi float64) float64 {
	return lo + (float64(i)+0.5)/float64(n)*(hi-lo)
}

func normalise(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0.5
	}
	return (v - lo) / (hi - lo)
}

// band returns the contour band of t in [0, 1] among levels bands.
func band(t float64, levels int) int {
	b := int(t * float64(levels))
	if b >= levels {
		b = levels - 1
	}
	if b < 0 {
		b = 0
	}
	return b
}
