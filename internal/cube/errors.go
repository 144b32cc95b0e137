package cube

import "go.trai.ch/zerr"

// Domain errors for cube construction and slicing.
var (
	// ErrShapeMismatch indicates data or coordinate points that do not fit the cube shape.
	ErrShapeMismatch = zerr.New("cube: shape mismatch")

	// ErrNotMonotonic indicates dimension coordinate points that are not strictly monotonic.
	ErrNotMonotonic = zerr.New("cube: dimension coordinate must be strictly monotonic")

	// ErrDimOccupied indicates a dimension that already carries a dimension coordinate.
	ErrDimOccupied = zerr.New("cube: dimension already has a dimension coordinate")

	// ErrCoordNotFound indicates a coordinate lookup with no match.
	ErrCoordNotFound = zerr.New("cube: coordinate not found")

	// ErrAmbiguousCoord indicates a coordinate lookup matching several coordinates.
	ErrAmbiguousCoord = zerr.New("cube: coordinate lookup is ambiguous")

	// ErrBadSelector indicates a selector list that does not fit the cube.
	ErrBadSelector = zerr.New("cube: invalid selector")

	// ErrNoBounds indicates bounds could not be derived for a coordinate.
	ErrNoBounds = zerr.New("cube: cannot guess bounds")
)
