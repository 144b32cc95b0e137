package plot

import (
	"fmt"
	"maps"
	"slices"

	"go.trai.ch/zerr"

	"github.com/san-kum/cubebrowser/internal/cube"
)

// Alias associates name with a cube dimension. Negative dimensions count
// from the end. A coordinate already called name must span exactly that
// dimension, and a dimension carries at most one alias.
func (p *Plot) Alias(name string, dim int) error {
	ndim := p.cube.Ndim()
	original := dim
	if dim < 0 {
		dim += ndim
	}
	if dim < 0 || dim >= ndim {
		return zerr.With(zerr.Wrap(ErrAxisRange, fmt.Sprintf("dimension alias %q value for %dd cube out of range, got %d", name, ndim, original)), "alias", name)
	}
	if coords := p.cube.Coords(cube.Named(name)); len(coords) > 0 {
		span := p.cube.CoordDims(coords[0])
		if len(span) != 1 {
			kind := "scalar"
			if len(span) > 1 {
				kind = fmt.Sprintf("%dd", len(span))
			}
			return zerr.With(zerr.Wrap(ErrCoordinateKind, fmt.Sprintf("dimension alias %q cannot cover a %s coordinate", name, kind)), "alias", name)
		}
		if span[0] != dim {
			return zerr.With(zerr.Wrap(ErrAliasMismatch, fmt.Sprintf("dimension alias %q must cover the same dimension as existing cube coordinate, got dimension %d expected %d", name, dim, span[0])), "alias", name)
		}
	}
	for other, d := range p.dimByAlias {
		if d == dim && other != name {
			return zerr.With(zerr.Wrap(ErrAliasConflict, fmt.Sprintf("dimension alias %q covers the same dimension as alias %q", name, other)), "dim", dim)
		}
	}
	p.dimByAlias[name] = dim
	return nil
}

// AliasAll applies every alias in name order. Either all aliases are
// applied or none.
func (p *Plot) AliasAll(aliases map[string]int) error {
	saved := maps.Clone(p.dimByAlias)
	for _, name := range slices.Sorted(maps.Keys(aliases)) {
		if err := p.Alias(name, aliases[name]); err != nil {
			p.dimByAlias = saved
			return err
		}
	}
	return nil
}

// RemoveAlias forgets the named alias.
func (p *Plot) RemoveAlias(name string) error {
	if _, ok := p.dimByAlias[name]; !ok {
		return zerr.With(zerr.Wrap(ErrUnknownAlias, fmt.Sprintf("unknown dimension alias %q", name)), "alias", name)
	}
	delete(p.dimByAlias, name)
	return nil
}

// Aliases returns a copy of the alias to dimension mapping, or nil when the
// plot has no aliases.
func (p *Plot) Aliases() map[string]int {
	if len(p.dimByAlias) == 0 {
		return nil
	}
	return maps.Clone(p.dimByAlias)
}
