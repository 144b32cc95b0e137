package render

import (
	"fmt"
	"math"

	"go.trai.ch/zerr"
)

// Contourf draws filled contour bands of g.
func (a *Axes) Contourf(g Grid, style Style) (*Layer, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	if style.Title != "" {
		a.SetTitle(style.Title)
	}
	lo, hi := g.Range()
	levels, cmap := style.levels(), style.colormap()
	xlo, xhi := g.X.extent(false)
	ylo, yhi := g.Y.extent(false)

	cells := make([][]Cell, a.height)
	for r := range cells {
		cells[r] = make([]Cell, a.width)
		// row 0 is the top of the plot
		yv := sampleAt(a.height-1-r, a.height, ylo, yhi)
		yi := g.Y.nearest(yv)
		for c := range cells[r] {
			v := g.Values[yi][g.X.nearest(sampleAt(c, a.width, xlo, xhi))]
			if math.IsNaN(v) {
				continue
			}
			b := band(normalise(v, lo, hi), levels)
			cells[r][c] = Cell{Rune: '█', Color: cmap.At((float64(b) + 0.5) / float64(levels))}
		}
	}
	return a.add("contourf", cells, lo, hi, cmap), nil
}

// Contour draws the boundaries between contour bands of g as braille lines.
func (a *Axes) Contour(g Grid, style Style) (*Layer, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	if style.Title != "" {
		a.SetTitle(style.Title)
	}
	lo, hi := g.Range()
	levels, cmap := style.levels(), style.colormap()
	xlo, xhi := g.X.extent(false)
	ylo, yhi := g.Y.extent(false)

	pw, ph := a.width*2, a.height*4
	bands := make([][]int, ph)
	for y := range bands {
		bands[y] = make([]int, pw)
		yi := g.Y.nearest(sampleAt(ph-1-y, ph, ylo, yhi))
		for x := range bands[y] {
			v := g.Values[yi][g.X.nearest(sampleAt(x, pw, xlo, xhi))]
			if math.IsNaN(v) {
				bands[y][x] = -1
				continue
			}
			bands[y][x] = band(normalise(v, lo, hi), levels)
		}
	}

	canvas := NewCanvas(a.width, a.height)
	for y := range ph {
		for x := range pw {
			b := bands[y][x]
			if b < 0 {
				continue
			}
			if x+1 < pw && bands[y][x+1] > b || y+1 < ph && bands[y+1][x] > b {
				canvas.Set(x, y)
			}
		}
	}

	cells := make([][]Cell, a.height)
	for r := range cells {
		cells[r] = make([]Cell, a.width)
		for c := range cells[r] {
			dot := canvas.Cell(c, r)
			if dot == 0 {
				continue
			}
			b := max(bands[r*4+2][c*2], 0)
			cells[r][c] = Cell{Rune: dot, Color: cmap.At((float64(b) + 1) / float64(levels))}
		}
	}
	return a.add("contour", cells, lo, hi, cmap), nil
}

// Pcolormesh draws one coloured quadrilateral per sample, spanning the
// sample's bounds on both axes.
func (a *Axes) Pcolormesh(g Grid, style Style) (*Layer, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	for _, ax := range []Axis{g.X, g.Y} {
		if len(ax.Bounds) != len(ax.Points) {
			return nil, zerr.With(zerr.Wrap(ErrMissingBounds, fmt.Sprintf("axis %q has %d bounds for %d points", ax.Label, len(ax.Bounds), len(ax.Points))), "axis", ax.Label)
		}
	}
	if style.Title != "" {
		a.SetTitle(style.Title)
	}
	lo, hi := g.Range()
	cmap := style.colormap()
	xlo, xhi := g.X.extent(true)
	ylo, yhi := g.Y.extent(true)

	cells := make([][]Cell, a.height)
	for r := range cells {
		cells[r] = make([]Cell, a.width)
		yi := g.Y.cell(sampleAt(a.height-1-r, a.height, ylo, yhi))
		if yi < 0 {
			continue
		}
		for c := range cells[r] {
			xi := g.X.cell(sampleAt(c, a.width, xlo, xhi))
			if xi < 0 {
				continue
			}
			v := g.Values[yi][xi]
			if math.IsNaN(v) {
				continue
			}
			cells[r][c] = Cell{Rune: '▇', Color: cmap.At(normalise(v, lo, hi))}
		}
	}
	return a.add("pcolormesh", cells, lo, hi, cmap), nil
}
