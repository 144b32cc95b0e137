package plot_test

import (
	"bytes"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/cubebrowser/internal/cube"
	"github.com/san-kum/cubebrowser/internal/cube/stock"
	"github.com/san-kum/cubebrowser/internal/logging"
	"github.com/san-kum/cubebrowser/internal/plot"
	"github.com/san-kum/cubebrowser/internal/render"
)

func TestRender_MatchesNativeSlice(t *testing.T) {
	c := stock.Realistic3D()
	axes := newAxes()
	p, err := plot.NewContourf(c, axes)
	require.NoError(t, err)

	element, err := p.Render(map[string]int{"time": 3})
	require.NoError(t, err)
	require.NotNil(t, element)

	want, err := c.Slice([]cube.Selector{cube.Index(3), cube.Full(), cube.Full()})
	require.NoError(t, err)
	assert.True(t, want.Equal(p.Subcube()))
	assert.Equal(t, map[string]int{"time": 3}, p.LastValues())
	assert.Equal(t, []string{"contourf"}, axes.Kinds())
	assert.Same(t, element, p.Element())
}

func TestRender_ReplacesElement(t *testing.T) {
	axes := newAxes()
	p, err := plot.NewContour(stock.Realistic3D(), axes)
	require.NoError(t, err)

	first, err := p.Render(map[string]int{"time": 0})
	require.NoError(t, err)
	_, err = p.Render(map[string]int{"time": 1})
	require.NoError(t, err)

	assert.Equal(t, 1, axes.Layers())
	assert.False(t, first.(*render.Layer).Attached())

	p.Clear()
	assert.Equal(t, 0, axes.Layers())
	assert.Nil(t, p.Element())
	p.Clear()
}

func TestRender_CacheKeyCanonical(t *testing.T) {
	c := stock.WithLevels(stock.Realistic3D(), 3)
	p, err := plot.NewContourf(c, newAxes())
	require.NoError(t, err)

	first := map[string]int{}
	first["time"] = 1
	first["model_level_number"] = 2
	second := map[string]int{}
	second["model_level_number"] = 2
	second["time"] = 1

	_, err = p.Render(first)
	require.NoError(t, err)
	sub := p.Subcube()
	_, err = p.Render(second)
	require.NoError(t, err)

	assert.Same(t, sub, p.Subcube())
	assert.Equal(t, 1, p.Cache().Len())
	assert.Equal(t, []string{"0=2;1=1;"}, p.Cache().Keys())
	hits, misses := p.Cache().Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)

	_, err = p.Render(map[string]int{"model_level_number": -1, "time": -6})
	require.NoError(t, err)
	assert.Same(t, sub, p.Subcube(), "negative values wrap onto the same entry")
	assert.Equal(t, 1, p.Cache().Len())
}

func TestRender_Errors(t *testing.T) {
	c := stock.Realistic3D()
	p, err := plot.NewContourf(c, newAxes())
	require.NoError(t, err)

	_, err = p.Render(map[string]int{"wibble": 0})
	require.ErrorIs(t, err, plot.ErrUnknownSliderName)
	assert.Contains(t, err.Error(), `called with unknown name "wibble"`)

	_, err = p.Render(map[string]int{"time": 7})
	require.ErrorIs(t, err, plot.ErrAxisRange)

	_, err = p.Render(map[string]int{"time": -1})
	require.NoError(t, err)
	tc, err := p.Subcube().Coord("time")
	require.NoError(t, err)
	assert.Equal(t, []float64{402198.5}, tc.Points)

	// a 3d sub-slice cannot be drawn
	_, err = p.Render(nil)
	require.ErrorIs(t, err, plot.ErrNotPlottable)
}

func TestRender_AliasPreferred(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, 0, false)
	c := stock.Realistic3D()
	p, err := plot.NewContourf(c, newAxes(), plot.WithLogger(logger))
	require.NoError(t, err)
	require.NoError(t, p.Alias("hour", 0))

	_, err = p.Render(map[string]int{"hour": 2})
	require.NoError(t, err)
	assert.Empty(t, buf.String())
	byAlias := p.Subcube()

	_, err = p.Render(map[string]int{"time": 2})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "alias=hour")
	assert.Contains(t, buf.String(), "name=time")

	// alias and natural name share a dimension but not a cache key
	assert.Equal(t, 2, p.Cache().Len())
	assert.NotSame(t, byAlias, p.Subcube())
}

func TestRender_AliasOnPlotDimension(t *testing.T) {
	p, err := plot.NewContourf(stock.Realistic3D(), newAxes())
	require.NoError(t, err)
	require.NoError(t, p.Alias("row", 1))

	_, err = p.Render(map[string]int{"row": 0, "time": 0})
	require.ErrorIs(t, err, plot.ErrNotPlottable)
}

func TestRender_Pcolormesh(t *testing.T) {
	c := stock.Realistic3D()
	axes := newAxes()
	p, err := plot.NewPcolormesh(c, axes, plot.WithStyle(render.Style{Colormap: "magma", Title: "theta"}))
	require.NoError(t, err)

	_, err = p.Render(map[string]int{"time": 0})
	require.NoError(t, err)
	assert.Equal(t, []string{"pcolormesh"}, axes.Kinds())
	assert.Equal(t, "theta", axes.Title())

	glon, err := p.Subcube().Coord("grid_longitude")
	require.NoError(t, err)
	assert.True(t, glon.HasBounds())

	orig := coordOf(t, c, "grid_longitude")
	assert.False(t, orig.HasBounds(), "bounds are guessed on the sub-slice only")
}

func TestRender_TwoDimensionalCube(t *testing.T) {
	axes := newAxes()
	p, err := plot.NewPcolormesh(stock.Simple2D(), axes, plot.WithCoords(plot.Dim(0), plot.Dim(1)))
	require.NoError(t, err)

	axs, err := p.SlidersAxis()
	require.NoError(t, err)
	assert.Empty(t, axs)

	_, err = p.Render(map[string]int{})
	require.NoError(t, err)
	assert.Equal(t, 1, axes.Layers())
}

func TestCache_WeakEviction(t *testing.T) {
	cache := plot.NewCache()
	fill := func() (*cube.Cube, error) {
		return cube.New("tmp", []int{64, 64}, make([]float64, 64*64))
	}
	_, err := cache.Lookup("k", fill)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		runtime.GC()
		runtime.GC()
		return cache.Len() == 0
	}, 10*time.Second, 50*time.Millisecond)

	_, err = cache.Lookup("k", fill)
	require.NoError(t, err)
	_, misses := cache.Stats()
	assert.Equal(t, 2, misses)
}

func TestCache_FillError(t *testing.T) {
	cache := plot.NewCache()
	_, err := cache.Lookup("k", func() (*cube.Cube, error) {
		return cube.New("bad", []int{2}, nil)
	})
	require.ErrorIs(t, err, cube.ErrShapeMismatch)
	assert.Zero(t, cache.Len())
}
