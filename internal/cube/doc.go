// Package cube provides an in-memory N-dimensional labelled array.
//
// A [Cube] holds row-major float64 samples together with named coordinate
// metadata:
//
//   - dimension coordinates: monotonic, 1:1 with exactly one dimension
//   - auxiliary coordinates: spanning zero, one or several dimensions
//
// Cubes are sliced with one [Selector] per dimension:
//
//	sub, err := c.Slice([]cube.Selector{cube.Index(3), cube.Full(), cube.Full()})
//
// Indexing a dimension drops it and turns its dimension coordinate into a
// scalar auxiliary coordinate on the result.
//
// # Lenient Equality
//
// [Coord.Lenient] strips bounds, var name and attributes so that two
// coordinates differing only in cosmetic metadata compare equal.
package cube
