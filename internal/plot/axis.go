package plot

import (
	"fmt"

	"github.com/san-kum/cubebrowser/internal/cube"
)

// AxisKind tags the two slider axis variants.
type AxisKind int

const (
	// AxisAlias is a slider dimension named by a user alias.
	AxisAlias AxisKind = iota
	// AxisDefn is a slider dimension named by its coordinate.
	AxisDefn
)

func (k AxisKind) String() string {
	if k == AxisDefn {
		return "defn"
	}
	return "alias"
}

// Axis describes one slider dimension of a plot. Coord is only set for
// AxisDefn and holds the lenient projection of the naming coordinate.
type Axis struct {
	Kind  AxisKind
	Dim   int
	Name  string
	Size  int
	Coord *cube.Coord
}

// NewAlias returns an alias axis.
func NewAlias(dim int, name string, size int) Axis {
	return Axis{Kind: AxisAlias, Dim: dim, Name: name, Size: size}
}

// NewDefn returns a definition axis.
func NewDefn(dim int, name string, size int, coord *cube.Coord) Axis {
	return Axis{Kind: AxisDefn, Dim: dim, Name: name, Size: size, Coord: coord}
}

// Equal reports whether two axes may share one slider. The dimension never
// takes part. Axes of different kinds are never equal.
func Equal(a, b Axis) bool {
	if a.Kind != b.Kind || a.Name != b.Name || a.Size != b.Size {
		return false
	}
	if a.Kind == AxisAlias {
		return true
	}
	return a.Coord.Equal(b.Coord)
}

func (a Axis) String() string {
	return fmt.Sprintf("%s(dim=%d, name=%q, size=%d)", a.Kind, a.Dim, a.Name, a.Size)
}
