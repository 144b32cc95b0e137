package render

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Cell is one terminal cell of a layer. A zero Rune is transparent.
type Cell struct {
	Rune  rune
	Color lipgloss.Color
}

// Layer is a removable drawing on an Axes.
type Layer struct {
	axes  *Axes
	kind  string
	cells [][]Cell
	lo    float64
	hi    float64
	cmap  Colormap
}

// Kind names the drawing operation that produced the layer.
func (l *Layer) Kind() string { return l.kind }

// Range returns the data range the layer was coloured with.
func (l *Layer) Range() (lo, hi float64) { return l.lo, l.hi }

// Remove detaches the layer from its axes. Removing twice is a no-op.
func (l *Layer) Remove() {
	a := l.axes
	a.mu.Lock()
	defer a.mu.Unlock()
	a.layers = slices.DeleteFunc(a.layers, func(o *Layer) bool { return o == l })
}

// Attached reports whether the layer is still drawn on its axes.
func (l *Layer) Attached() bool {
	a := l.axes
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Contains(a.layers, l)
}

// Axes is a terminal drawing surface holding a stack of layers. Later
// layers are composited over earlier ones.
type Axes struct {
	mu     sync.Mutex
	title  string
	width  int
	height int
	layers []*Layer
}

var (
	axesPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	axesTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff"))

	axesMuted = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666688"))
)

// NewAxes returns an empty surface of width x height cells.
func NewAxes(title string, width, height int) *Axes {
	return &Axes{title: title, width: max(width, 4), height: max(height, 2)}
}

func (a *Axes) Title() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.title
}

func (a *Axes) SetTitle(title string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.title = title
}

// Size returns the drawing area in cells.
func (a *Axes) Size() (width, height int) { return a.width, a.height }

// Layers returns the number of attached layers.
func (a *Axes) Layers() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.layers)
}

// Kinds returns the kind of every attached layer, bottom first.
func (a *Axes) Kinds() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	kinds := make([]string, len(a.layers))
	for i, l := range a.layers {
		kinds[i] = l.kind
	}
	return kinds
}

func (a *Axes) add(kind string, cells [][]Cell, lo, hi float64, cmap Colormap) *Layer {
	l := &Layer{axes: a, kind: kind, cells: cells, lo: lo, hi: hi, cmap: cmap}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.layers = append(a.layers, l)
	return l
}

func (a *Axes) composite() ([][]Cell, *Layer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([][]Cell, a.height)
	for r := range out {
		out[r] = make([]Cell, a.width)
	}
	var top *Layer
	for _, l := range a.layers {
		top = l
		for r, row := range l.cells {
			for c, cell := range row {
				if cell.Rune != 0 {
					out[r][c] = cell
				}
			}
		}
	}
	return out, top
}

// Plain returns the composited runes without colour, one line per row.
// Transparent cells are spaces.
func (a *Axes) Plain() string {
	cells, _ := a.composite()
	var b strings.Builder
	for _, row := range cells {
		for _, cell := range row {
			if cell.Rune == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteRune(cell.Rune)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// View renders the axes as a titled panel with a colour legend.
func (a *Axes) View() string {
	cells, top := a.composite()
	var b strings.Builder
	b.WriteString(axesTitle.Render(a.Title()) + "\n")
	for _, row := range cells {
		var run strings.Builder
		var color lipgloss.Color
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(lipgloss.NewStyle().Foreground(color).Render(run.String()))
			run.Reset()
		}
		for _, cell := range row {
			if cell.Rune == 0 {
				cell = Cell{Rune: ' '}
			}
			if cell.Color != color {
				flush()
				color = cell.Color
			}
			run.WriteRune(cell.Rune)
		}
		flush()
		b.WriteByte('\n')
	}
	if top != nil {
		legend := max(a.width-16, 4)
		b.WriteString(axesMuted.Render(fmt.Sprintf("%7.2f ", top.lo)) + top.cmap.Gradient(legend) + axesMuted.Render(fmt.Sprintf(" %-7.2f", top.hi)))
	} else {
		b.WriteString(axesMuted.Render("(empty)"))
	}
	return axesPanel.Render(b.String())
}
