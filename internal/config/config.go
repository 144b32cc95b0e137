package config

import (
	"fmt"
	"log/slog"
	"os"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/cubebrowser/internal/cube"
	"github.com/san-kum/cubebrowser/internal/cube/stock"
	"github.com/san-kum/cubebrowser/internal/logging"
	"github.com/san-kum/cubebrowser/internal/plot"
	"github.com/san-kum/cubebrowser/internal/render"
)

const (
	DefaultWidth    = 44
	DefaultHeight   = 14
	DefaultLevels   = render.DefaultLevels
	DefaultColormap = "viridis"
)

// Session describes the cubes and plots one browser shows.
type Session struct {
	Width    int          `yaml:"width"`
	Height   int          `yaml:"height"`
	Colormap string       `yaml:"colormap"`
	Levels   int          `yaml:"levels"`
	Cubes    []CubeConfig `yaml:"cubes"`
	Plots    []PlotConfig `yaml:"plots"`
}

// CubeConfig builds one cube from a stock cube. Plots refer to it by Name,
// which defaults to Stock.
type CubeConfig struct {
	Name         string   `yaml:"name,omitempty"`
	Stock        string   `yaml:"stock"`
	Levels       int      `yaml:"levels,omitempty"`
	RemoveCoords []string `yaml:"remove_coords,omitempty"`
}

// PlotConfig describes one plot. Coords holds dimension indices or
// coordinate names. Plots naming the same Axes draw onto one surface.
type PlotConfig struct {
	Cube    string         `yaml:"cube"`
	Kind    string         `yaml:"kind"`
	Axes    string         `yaml:"axes,omitempty"`
	Coords  []any          `yaml:"coords,omitempty"`
	Aliases map[string]any `yaml:"aliases,omitempty"`
	Style   render.Style   `yaml:"style,omitempty"`
}

func DefaultSession() *Session {
	return &Session{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Colormap: DefaultColormap,
		Levels:   DefaultLevels,
		Cubes:    []CubeConfig{{Name: "air", Stock: "realistic_3d"}},
		Plots:    []PlotConfig{{Cube: "air", Kind: "contourf"}},
	}
}

func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "read session"), "path", path)
	}
	s := DefaultSession()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "parse session"), "path", path)
	}
	return s, nil
}

func Save(path string, s *Session) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return zerr.Wrap(err, "encode session")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return zerr.With(zerr.Wrap(err, "write session"), "path", path)
	}
	return nil
}

// Style returns the session wide rendering defaults.
func (s *Session) Style() render.Style {
	return render.Style{Colormap: s.Colormap, Levels: s.Levels}
}

// BuildCubes creates every configured cube once, keyed by name.
func (s *Session) BuildCubes() (map[string]*cube.Cube, error) {
	cubes := make(map[string]*cube.Cube, len(s.Cubes))
	for _, cc := range s.Cubes {
		name := cc.Name
		if name == "" {
			name = cc.Stock
		}
		c, ok := stock.Get(cc.Stock)
		if !ok {
			return nil, zerr.With(zerr.Wrap(ErrUnknownCube, fmt.Sprintf("no stock cube %q", cc.Stock)), "cube", name)
		}
		if cc.Levels > 0 {
			c = stock.WithLevels(c, cc.Levels)
		}
		for _, coord := range cc.RemoveCoords {
			if err := c.RemoveCoord(coord); err != nil {
				return nil, zerr.With(err, "cube", name)
			}
		}
		cubes[name] = c
	}
	return cubes, nil
}

// Build creates the configured plots. Plots of the same cube share the
// cube, and plots naming the same Axes share one drawing surface.
func (s *Session) Build(logger *slog.Logger) ([]*plot.Plot, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	cubes, err := s.BuildCubes()
	if err != nil {
		return nil, err
	}
	width, height := s.Width, s.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	shared := make(map[string]*render.Axes)
	plots := make([]*plot.Plot, 0, len(s.Plots))
	for i, pc := range s.Plots {
		c, ok := cubes[pc.Cube]
		if !ok {
			return nil, zerr.With(zerr.Wrap(ErrUnknownCube, fmt.Sprintf("plot %d refers to unknown cube %q", i, pc.Cube)), "plot", i)
		}
		drawer, err := drawerFor(pc.Kind)
		if err != nil {
			return nil, zerr.With(err, "plot", i)
		}

		var axes *render.Axes
		if pc.Axes != "" {
			axes = shared[pc.Axes]
		}
		if axes == nil {
			title := pc.Axes
			if title == "" {
				title = fmt.Sprintf("%s %s", pc.Kind, pc.Cube)
			}
			axes = render.NewAxes(title, width, height)
			if pc.Axes != "" {
				shared[pc.Axes] = axes
			}
		}

		opts := []plot.Option{plot.WithLogger(logger), plot.WithStyle(pc.Style.Merge(s.Style()))}
		if pc.Coords != nil {
			specs, err := coordSpecs(pc.Coords)
			if err != nil {
				return nil, zerr.With(err, "plot", i)
			}
			opts = append(opts, plot.WithCoords(specs...))
		}
		p, err := plot.New(c, axes, drawer, opts...)
		if err != nil {
			return nil, zerr.With(err, "plot", i)
		}

		aliases, err := aliasDims(pc.Aliases)
		if err != nil {
			return nil, zerr.With(err, "plot", i)
		}
		if err := p.AliasAll(aliases); err != nil {
			return nil, zerr.With(err, "plot", i)
		}
		logger.Debug("plot configured", "plot", i, "kind", p.Kind(), "cube", pc.Cube, "aliases", len(aliases))
		plots = append(plots, p)
	}
	return plots, nil
}

func drawerFor(kind string) (plot.Drawer, error) {
	switch kind {
	case "contourf", "":
		return plot.Contourf{}, nil
	case "contour":
		return plot.Contour{}, nil
	case "pcolormesh":
		return plot.Pcolormesh{}, nil
	}
	return nil, zerr.With(zerr.Wrap(ErrUnknownKind, fmt.Sprintf("unknown plot kind %q", kind)), "kind", kind)
}

func coordSpecs(raw []any) ([]plot.Spec, error) {
	specs := make([]plot.Spec, 0, len(raw))
	for _, v := range raw {
		switch v := v.(type) {
		case int:
			specs = append(specs, plot.Dim(v))
		case string:
			specs = append(specs, plot.Name(v))
		default:
			return nil, zerr.With(zerr.Wrap(ErrBadCoordSpec, fmt.Sprintf("coords entries must be dimensions or names, got %T", v)), "coord", v)
		}
	}
	return specs, nil
}

func aliasDims(raw map[string]any) (map[string]int, error) {
	aliases := make(map[string]int, len(raw))
	for name, v := range raw {
		dim, ok := v.(int)
		if !ok {
			return nil, zerr.With(zerr.Wrap(plot.ErrAliasType, fmt.Sprintf("dimension alias %q must be an integer, got %T", name, v)), "alias", name)
		}
		aliases[name] = dim
	}
	return aliases, nil
}
