package render

import "go.trai.ch/zerr"

var (
	// ErrEmptyGrid indicates a grid without samples.
	ErrEmptyGrid = zerr.New("render: grid has no samples")

	// ErrGridShape indicates values that do not match the axis points.
	ErrGridShape = zerr.New("render: grid values do not match axes")

	// ErrMissingBounds indicates a mesh drawn from an axis without bounds.
	ErrMissingBounds = zerr.New("render: axis has no bounds")
)
