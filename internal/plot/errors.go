package plot

import "go.trai.ch/zerr"

// Plot construction errors.
var (
	// ErrDimensionality indicates a cube with fewer than two dimensions.
	ErrDimensionality = zerr.New("plot: requires at least a 2d cube")

	// ErrArity indicates a coordinate list that does not name exactly two plot axes.
	ErrArity = zerr.New("plot: requires 2 coordinates, one for each plot axis")

	// ErrAxisRange indicates a dimension index or slider value out of range.
	ErrAxisRange = zerr.New("plot: dimension out of range")

	// ErrCoordinateNotFound indicates a plot coordinate that is not on the cube.
	ErrCoordinateNotFound = zerr.New("plot: coordinate not found on cube")

	// ErrScalarCoordinate indicates a plot coordinate that spans no dimension.
	ErrScalarCoordinate = zerr.New("plot: coordinate cannot be a scalar coordinate")

	// ErrCoordinateKind indicates a coordinate of the wrong kind or span.
	ErrCoordinateKind = zerr.New("plot: coordinate must be a 1d dimension coordinate")

	// ErrDuplicateAxis indicates x and y resolving to the same dimension.
	ErrDuplicateAxis = zerr.New("plot: x-axis and y-axis reference the same cube dimension")
)

// Alias errors.
var (
	// ErrAliasType indicates an alias given a non-integer dimension.
	ErrAliasType = zerr.New("plot: alias requires an integer dimension value")

	// ErrAliasMismatch indicates an alias named after a coordinate on another dimension.
	ErrAliasMismatch = zerr.New("plot: alias must cover the same dimension as the existing coordinate")

	// ErrAliasConflict indicates a dimension that already carries another alias.
	ErrAliasConflict = zerr.New("plot: dimension already has an alias")

	// ErrUnknownAlias indicates removal of an alias that does not exist.
	ErrUnknownAlias = zerr.New("plot: unknown dimension alias")
)

// Slider and render errors.
var (
	// ErrMissingMetadata indicates a slider dimension with no usable name.
	ErrMissingMetadata = zerr.New("plot: no meta-data for dimension")

	// ErrUnknownSliderName indicates a render call with a name the plot does not know.
	ErrUnknownSliderName = zerr.New("plot: called with unknown name")

	// ErrCacheType indicates an invalid cache assignment.
	ErrCacheType = zerr.New("plot: require a non-nil cache")

	// ErrNotPlottable indicates a sub-slice that is not 2d.
	ErrNotPlottable = zerr.New("plot: sub-slice is not 2d")
)
