// Package browser orchestrates several plots behind one set of sliders.
//
// Plots that name a slider dimension alike share a single slider. Moving a
// slider clears every plot that depends on it and then redraws each of them
// with its complete set of slider values. Plots of the same cube share one
// sub-slice cache.
package browser

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"go.trai.ch/zerr"

	"github.com/san-kum/cubebrowser/internal/cube"
	"github.com/san-kum/cubebrowser/internal/logging"
	"github.com/san-kum/cubebrowser/internal/plot"
	"github.com/san-kum/cubebrowser/internal/widget"
)

// State is the lifecycle stage of a Browser.
type State int

const (
	// StateBuilt is a browser whose mappings and sliders exist but nothing is drawn.
	StateBuilt State = iota
	// StateDisplayed is a browser whose plots received their initial render.
	StateDisplayed
	// StateReactive is a browser that has handled at least one slider change.
	StateReactive
)

func (s State) String() string {
	switch s {
	case StateDisplayed:
		return "displayed"
	case StateReactive:
		return "reactive"
	}
	return "built"
}

// Handler is notified after the plots depending on a slider were redrawn.
type Handler func(name string, value int) error

// Browser compiles plots and their shared sliders.
type Browser struct {
	plots  []*plot.Plot
	logger *slog.Logger

	axisByName  map[string]plot.Axis
	cacheByCube map[*cube.Cube]*plot.Cache
	namesByPlot map[*plot.Plot][]string
	plotsByName map[string][]*plot.Plot

	sliderByName map[string]*widget.IntSlider
	nameBySlider map[*widget.IntSlider]string
	form         *widget.VBox

	handlers map[string][]Handler
	state    State
}

// Option configures a Browser.
type Option func(*Browser)

// WithLogger sets the logger for dispatch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Browser) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New builds the slider mappings for plots. The aliases of each plot are
// read once here; later alias changes need a new Browser.
func New(plots []*plot.Plot, opts ...Option) (*Browser, error) {
	b := &Browser{
		plots:        slices.Clone(plots),
		logger:       logging.Discard(),
		axisByName:   make(map[string]plot.Axis),
		cacheByCube:  make(map[*cube.Cube]*plot.Cache),
		namesByPlot:  make(map[*plot.Plot][]string),
		plotsByName:  make(map[string][]*plot.Plot),
		sliderByName: make(map[string]*widget.IntSlider),
		nameBySlider: make(map[*widget.IntSlider]string),
		handlers:     make(map[string][]Handler),
	}
	for _, opt := range opts {
		opt(b)
	}
	if err := b.buildMappings(); err != nil {
		return nil, err
	}

	b.form = &widget.VBox{}
	for _, name := range slices.Sorted(maps.Keys(b.axisByName)) {
		axis := b.axisByName[name]
		slider := widget.NewIntSlider(0, axis.Size-1, axis.Name)
		slider.Observe(func(change widget.Change) error {
			return b.OnChange(&change)
		})
		b.sliderByName[name] = slider
		b.nameBySlider[slider] = name
		b.form.Children = append(b.form.Children, slider)
	}
	b.logger.Debug("browser built", "plots", len(b.plots), "sliders", len(b.sliderByName))
	return b, nil
}

func (b *Browser) buildMappings() error {
	for _, p := range b.plots {
		axes, err := p.SlidersAxis()
		if err != nil {
			return err
		}
		var names []string
		for _, axis := range axes {
			if axis.Kind == plot.AxisAlias && axis.Name == "" {
				return zerr.With(zerr.Wrap(plot.ErrMissingMetadata, fmt.Sprintf("%s cube %q has no meta-data for dimension %d", p.Kind(), p.Cube().Name(), axis.Dim)), "dim", axis.Dim)
			}
			existing, ok := b.axisByName[axis.Name]
			if !ok {
				b.axisByName[axis.Name] = axis
			} else if !plot.Equal(existing, axis) {
				err := zerr.Wrap(ErrIncompatibleAxis, fmt.Sprintf("%s cube %q has an incompatible axis %q on dimension %d", p.Kind(), p.Cube().Name(), axis.Name, axis.Dim))
				return zerr.With(zerr.With(err, "cube", p.Cube().Name()), "name", axis.Name)
			}
			b.plotsByName[axis.Name] = append(b.plotsByName[axis.Name], p)
			names = append(names, axis.Name)
		}
		if len(names) > 0 {
			b.namesByPlot[p] = names
		}
	}

	for _, p := range b.plots {
		if cache, ok := b.cacheByCube[p.Cube()]; ok {
			if err := p.SetCache(cache); err != nil {
				return err
			}
			continue
		}
		b.cacheByCube[p.Cube()] = p.Cache()
	}
	return nil
}

// Display performs the initial render of every plot and returns the slider
// form. Only the first call renders.
func (b *Browser) Display() (*widget.VBox, error) {
	if b.state == StateBuilt {
		if err := b.OnChange(nil); err != nil {
			return nil, err
		}
		b.state = StateDisplayed
	}
	return b.form, nil
}

// OnChange refreshes the plots affected by a slider change. A nil change
// renders every plot, including plots without sliders.
func (b *Browser) OnChange(change *widget.Change) error {
	if change == nil {
		return b.update(b.plots, true)
	}
	name, ok := b.nameBySlider[change.Owner]
	if !ok {
		return zerr.With(zerr.Wrap(ErrUnknownSlider, "change from a slider this browser did not build"), "slider", change.Owner.Description)
	}
	if err := b.update(b.plotsByName[name], false); err != nil {
		return err
	}
	b.state = StateReactive

	var errs []error
	for _, h := range b.handlers[name] {
		if err := h(name, change.New); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// update clears every plot before drawing any of them so plots sharing
// axes never see a stale layer.
func (b *Browser) update(plots []*plot.Plot, force bool) error {
	for _, p := range plots {
		p.Clear()
	}
	var errs []error
	for _, p := range plots {
		names, ok := b.namesByPlot[p]
		if !ok && !force {
			continue
		}
		values := b.valuesFor(names)
		if _, err := p.Render(values); err != nil {
			errs = append(errs, zerr.With(err, "plot", p.String()))
			continue
		}
		b.logger.Debug("plot rendered", "plot", p.String(), "values", values)
	}
	return errors.Join(errs...)
}

// Register subscribes h to value changes of the named slider.
func (b *Browser) Register(name string, h Handler) error {
	if _, ok := b.sliderByName[name]; !ok {
		return zerr.With(zerr.Wrap(ErrUnknownSlider, fmt.Sprintf("no slider %q", name)), "name", name)
	}
	b.handlers[name] = append(b.handlers[name], h)
	return nil
}

// Notify moves the named slider, which redraws the dependent plots.
func (b *Browser) Notify(name string, value int) error {
	slider, ok := b.sliderByName[name]
	if !ok {
		return zerr.With(zerr.Wrap(ErrUnknownSlider, fmt.Sprintf("no slider %q", name)), "name", name)
	}
	return slider.SetValue(value)
}

// Profile returns the mean of the plot's sub-slice at every position of the
// named slider, holding the plot's other sliders at their current values.
func (b *Browser) Profile(p *plot.Plot, name string) ([]float64, error) {
	names, ok := b.namesByPlot[p]
	if !ok || !slices.Contains(names, name) {
		return nil, zerr.With(zerr.Wrap(ErrUnknownSlider, fmt.Sprintf("%s does not slide over %q", p, name)), "name", name)
	}
	values := b.valuesFor(names)
	axis := b.axisByName[name]
	out := make([]float64, axis.Size)
	for i := range out {
		values[name] = i
		sub, err := p.Resolve(values)
		if err != nil {
			return nil, err
		}
		out[i] = sub.Mean()
	}
	return out, nil
}

func (b *Browser) valuesFor(names []string) map[string]int {
	values := make(map[string]int, len(names))
	for _, name := range names {
		values[name] = b.sliderByName[name].Value()
	}
	return values
}

func (b *Browser) Plots() []*plot.Plot { return slices.Clone(b.plots) }

func (b *Browser) State() State { return b.state }

func (b *Browser) Form() *widget.VBox { return b.form }

// Names returns every slider name in sorted order.
func (b *Browser) Names() []string { return slices.Sorted(maps.Keys(b.sliderByName)) }

// Slider returns the slider for name.
func (b *Browser) Slider(name string) (*widget.IntSlider, bool) {
	s, ok := b.sliderByName[name]
	return s, ok
}

// Axis returns the axis that defined the slider for name.
func (b *Browser) Axis(name string) (plot.Axis, bool) {
	a, ok := b.axisByName[name]
	return a, ok
}

// PlotsFor returns the plots redrawn when the named slider moves.
func (b *Browser) PlotsFor(name string) []*plot.Plot { return slices.Clone(b.plotsByName[name]) }

// NamesFor returns the slider names a plot depends on, or nil.
func (b *Browser) NamesFor(p *plot.Plot) []string { return slices.Clone(b.namesByPlot[p]) }

// CacheFor returns the cache shared by the plots of c.
func (b *Browser) CacheFor(c *cube.Cube) (*plot.Cache, bool) {
	cache, ok := b.cacheByCube[c]
	return cache, ok
}

// Values returns the current value of every slider.
func (b *Browser) Values() map[string]int { return b.valuesFor(b.Names()) }
