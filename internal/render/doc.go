// Package render draws 2d grids onto terminal surfaces.
//
// An [Axes] is a fixed-size cell surface holding a stack of [Layer]s. Each
// drawing call adds one layer and returns it; removing the layer restores
// the surface beneath it:
//
//	layer, err := axes.Contourf(grid, render.Style{Colormap: "magma"})
//	...
//	layer.Remove()
//
// Three drawings are available: filled contour bands, braille contour
// lines on a [Canvas], and a pseudocolour mesh spanning cell bounds.
package render
