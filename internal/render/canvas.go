package render

// Braille dot bits by sub-pixel row and column. Dots 1-3 and 4-6 fill the
// top three rows, dots 7 and 8 the last.
var dotBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const brailleBase = 0x2800

// Canvas is a braille dot surface. Every terminal cell holds 2x4 dots, so
// a canvas of cols x rows cells is addressed in (cols*2) x (rows*4) dots.
type Canvas struct {
	cols, rows int
	dots       []uint8
}

func NewCanvas(cols, rows int) *Canvas {
	return &Canvas{cols: cols, rows: rows, dots: make([]uint8, cols*rows)}
}

// Set raises the dot at (x, y). Dots outside the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.cols*2 || y >= c.rows*4 {
		return
	}
	c.dots[(y/4)*c.cols+x/2] |= dotBits[y%4][x%2]
}

// Cell returns the braille rune of a cell, or 0 when none of its dots is set.
func (c *Canvas) Cell(col, row int) rune {
	bits := c.dots[row*c.cols+col]
	if bits == 0 {
		return 0
	}
	return brailleBase + rune(bits)
}
