package cube

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Kind distinguishes dimension-coordinate typed coordinates from auxiliary ones.
// A KindDim coordinate may still be attached to a cube as an auxiliary
// coordinate, for instance as a scalar left over from slicing.
type Kind int

const (
	KindAux Kind = iota
	KindDim
)

func (k Kind) String() string {
	if k == KindDim {
		return "dim"
	}
	return "aux"
}

// Coord is named metadata describing the positions along one or more cube
// dimensions. Points of a multi-dimensional coordinate are row-major over
// the dimensions it spans.
type Coord struct {
	StandardName string
	LongName     string
	VarName      string
	Units        string
	// Axis is one of "X", "Y", "Z", "T" or empty.
	Axis       string
	Points     []float64
	Bounds     [][2]float64
	Attributes map[string]string
	Kind       Kind
}

// NewDimCoord returns a dimension-coordinate typed coordinate.
func NewDimCoord(standardName string, points []float64) *Coord {
	return &Coord{StandardName: standardName, Points: slices.Clone(points), Kind: KindDim}
}

// NewAuxCoord returns an auxiliary coordinate.
func NewAuxCoord(longName string, points []float64) *Coord {
	return &Coord{LongName: longName, Points: slices.Clone(points), Kind: KindAux}
}

// Name returns the first non-empty of standard name, long name and var name.
func (c *Coord) Name() string {
	switch {
	case c.StandardName != "":
		return c.StandardName
	case c.LongName != "":
		return c.LongName
	case c.VarName != "":
		return c.VarName
	}
	return "unknown"
}

func (c *Coord) Size() int { return len(c.Points) }

func (c *Coord) HasBounds() bool { return len(c.Bounds) > 0 }

// GuessBounds derives contiguous bounds half way between neighbouring points.
// The outer bounds mirror the first and last half steps.
func (c *Coord) GuessBounds() error {
	n := len(c.Points)
	if n < 2 {
		return zerr.With(zerr.Wrap(ErrNoBounds, fmt.Sprintf("coordinate %q needs at least 2 points", c.Name())), "points", n)
	}
	bounds := make([][2]float64, n)
	for i := range n {
		var lo, hi float64
		if i == 0 {
			lo = c.Points[0] - (c.Points[1]-c.Points[0])/2
		} else {
			lo = (c.Points[i-1] + c.Points[i]) / 2
		}
		if i == n-1 {
			hi = c.Points[n-1] + (c.Points[n-1]-c.Points[n-2])/2
		} else {
			hi = (c.Points[i] + c.Points[i+1]) / 2
		}
		bounds[i] = [2]float64{lo, hi}
	}
	c.Bounds = bounds
	return nil
}

// Copy returns a deep copy.
func (c *Coord) Copy() *Coord {
	out := *c
	out.Points = slices.Clone(c.Points)
	out.Bounds = slices.Clone(c.Bounds)
	if c.Attributes != nil {
		out.Attributes = maps.Clone(c.Attributes)
	}
	return &out
}

// Lenient returns a copy with bounds, var name and attributes cleared.
func (c *Coord) Lenient() *Coord {
	out := c.Copy()
	out.Bounds = nil
	out.VarName = ""
	out.Attributes = nil
	return out
}

// Equal reports whether both coordinates carry identical metadata and values.
// A nil map of attributes equals an empty one.
func (c *Coord) Equal(o *Coord) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.StandardName != o.StandardName || c.LongName != o.LongName || c.VarName != o.VarName ||
		c.Units != o.Units || c.Axis != o.Axis || c.Kind != o.Kind {
		return false
	}
	return slices.Equal(c.Points, o.Points) && slices.Equal(c.Bounds, o.Bounds) &&
		maps.Equal(c.Attributes, o.Attributes)
}

// DefnKey returns the defining properties of the coordinate as a sortable key.
func (c *Coord) DefnKey() string {
	keys := slices.Sorted(maps.Keys(c.Attributes))
	attrs := make([]string, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, k+"="+c.Attributes[k])
	}
	return strings.Join([]string{c.StandardName, c.LongName, c.VarName, c.Units, strings.Join(attrs, ",")}, "\x00")
}

func (c *Coord) String() string {
	return fmt.Sprintf("%s(%s, %d points)", c.Kind, c.Name(), len(c.Points))
}
