package plot

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/zerr"

	"github.com/san-kum/cubebrowser/internal/cube"
)

// Resolve returns the sub-slice of the cube at the given slider values.
// Names resolve as aliases first, then as natural slider names. Dimensions
// without a value keep their full extent. Sub-slices are shared through
// the plot cache.
func (p *Plot) Resolve(values map[string]int) (*cube.Cube, error) {
	sel := make([]cube.Selector, p.cube.Ndim())
	for d := range sel {
		sel[d] = cube.Full()
	}
	shape := p.cube.Shape()
	aliasByDim := invert(p.dimByAlias)

	for _, name := range slices.Sorted(maps.Keys(values)) {
		dim, ok := p.dimByAlias[name]
		if !ok {
			dim, ok = p.sliderDimByName[name]
			if !ok {
				return nil, zerr.With(zerr.Wrap(ErrUnknownSliderName, fmt.Sprintf("%s called with unknown name %q", p.Kind(), name)), "name", name)
			}
			if alias, aliased := aliasByDim[dim]; aliased {
				p.logger.Warn("plot called with coordinate name instead of alias",
					"plot", p.Kind(), "alias", alias, "dim", dim, "name", name)
			}
		}
		v := values[name]
		idx := v
		if idx < 0 {
			idx += shape[dim]
		}
		if idx < 0 || idx >= shape[dim] {
			return nil, zerr.With(zerr.Wrap(ErrAxisRange, fmt.Sprintf("%s value %d for %q out of range for dimension %d of size %d", p.Kind(), v, name, dim, shape[dim])), "name", name)
		}
		sel[dim] = cube.Index(idx)
	}

	return p.Cache().Lookup(cacheKey(sel), func() (*cube.Cube, error) {
		return p.cube.Slice(sel)
	})
}

// Render resolves the sub-slice at the given slider values and draws it in
// place of the previous artifact.
func (p *Plot) Render(values map[string]int) (Artifact, error) {
	sub, err := p.Resolve(values)
	if err != nil {
		return nil, err
	}
	p.subcube = sub
	p.lastValues = maps.Clone(values)

	p.Clear()
	element, err := p.drawer.Draw(p.axes, sub, p.coords, p.style)
	if err != nil {
		return nil, err
	}
	p.element = element
	return element, nil
}

// Clear removes the most recently drawn artifact from the axes.
func (p *Plot) Clear() {
	if p.element != nil {
		p.element.Remove()
		p.element = nil
	}
}

// cacheKey names a sub-slice by the position indexed on each dimension.
// Slider names and their order play no part, so two aliases that resolve
// to different dimensions never share an entry.
func cacheKey(sel []cube.Selector) string {
	var b strings.Builder
	for d, s := range sel {
		if s.IsIndex() {
			fmt.Fprintf(&b, "%d=%d;", d, s.Pos())
		}
	}
	return b.String()
}
