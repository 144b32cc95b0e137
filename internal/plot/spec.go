package plot

import (
	"fmt"

	"github.com/san-kum/cubebrowser/internal/cube"
)

type specKind int

const (
	specDim specKind = iota
	specName
	specRef
)

// Spec nominates a plot axis by dimension index, coordinate name or
// coordinate value.
type Spec struct {
	kind  specKind
	dim   int
	name  string
	coord *cube.Coord
}

// Dim nominates a cube dimension. Negative values count from the end.
func Dim(d int) Spec { return Spec{kind: specDim, dim: d} }

// Name nominates the coordinate called name.
func Name(name string) Spec { return Spec{kind: specName, name: name} }

// Ref nominates a coordinate by value.
func Ref(coord *cube.Coord) Spec { return Spec{kind: specRef, coord: coord} }

func (s Spec) IsDim() bool { return s.kind == specDim }

// Dim returns the dimension of a dimension spec.
func (s Spec) Dim() int { return s.dim }

// Name returns the coordinate name of a named or coordinate spec.
func (s Spec) Name() string {
	if s.kind == specRef {
		return s.coord.Name()
	}
	return s.name
}

// Coord returns the coordinate of a resolved or coordinate spec.
func (s Spec) Coord() *cube.Coord { return s.coord }

func (s Spec) String() string {
	if s.kind == specDim {
		return fmt.Sprint(s.dim)
	}
	return fmt.Sprintf("%q", s.Name())
}

func (s Spec) filter() cube.Filter {
	if s.kind == specRef {
		return cube.Like(s.coord)
	}
	return cube.Named(s.name)
}
