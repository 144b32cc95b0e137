// Package stock builds small, deterministic cubes for tests, presets and the demo.
package stock

import (
	"math"
	"slices"

	"github.com/san-kum/cubebrowser/internal/cube"
)

// Realistic3D returns a 7x9x11 (time, grid_latitude, grid_longitude) air
// potential temperature cube on a rotated pole grid. Besides its dimension
// coordinates it carries a forecast_period coordinate on the time
// dimension, a scalar air_pressure and a 2d surface_altitude.
func Realistic3D() *cube.Cube {
	const nt, ny, nx = 7, 9, 11

	data := make([]float64, 0, nt*ny*nx)
	for t := range nt {
		for y := range ny {
			for x := range nx {
				lat := float64(y) / (ny - 1) * math.Pi
				lon := float64(x) / (nx - 1) * 2 * math.Pi
				v := 280 + 6*math.Sin(lat)*math.Cos(lon-0.4*float64(t)) + 0.25*float64(t)
				data = append(data, math.Round(v*1000)/1000)
			}
		}
	}
	c := must(cube.New("air_potential_temperature", []int{nt, ny, nx}, data))

	times := make([]float64, nt)
	periods := make([]float64, nt)
	for i := range nt {
		times[i] = 402192.5 + float64(i)
		periods[i] = 0.5 + float64(i)
	}
	tc := cube.NewDimCoord("time", times)
	tc.VarName = "time"
	tc.Units = "hours since 1970-01-01 00:00:00"
	tc.Axis = "T"
	tc.Attributes = map[string]string{"calendar": "gregorian"}
	mustDo(c.AddDimCoord(tc, 0))

	lats := linspace(-0.1, 0.14, ny)
	yc := cube.NewDimCoord("grid_latitude", lats)
	yc.Units = "degrees"
	yc.Axis = "Y"
	mustDo(yc.GuessBounds())
	mustDo(c.AddDimCoord(yc, 1))

	xc := cube.NewDimCoord("grid_longitude", linspace(359.58, 359.88, nx))
	xc.Units = "degrees"
	xc.Axis = "X"
	mustDo(c.AddDimCoord(xc, 2))

	fp := cube.NewDimCoord("forecast_period", periods)
	fp.Units = "hours"
	mustDo(c.AddAuxCoord(fp, 0))

	ap := cube.NewDimCoord("air_pressure", []float64{85000})
	ap.Units = "Pa"
	ap.Axis = "Z"
	mustDo(c.AddAuxCoord(ap))

	alt := make([]float64, 0, ny*nx)
	for y := range ny {
		for x := range nx {
			alt = append(alt, float64(400+13*y+7*x))
		}
	}
	sa := cube.NewAuxCoord("surface_altitude", alt)
	sa.StandardName = "surface_altitude"
	sa.Units = "m"
	mustDo(c.AddAuxCoord(sa, 1, 2))

	return c
}

// Simple2D returns a 3x4 cube with a bar coordinate on dimension 0 and a
// foo coordinate on dimension 1. Neither has an axis.
func Simple2D() *cube.Cube {
	data := make([]float64, 12)
	for i := range data {
		data[i] = float64(i)
	}
	c := must(cube.New("thingness", []int{3, 4}, data))
	foo := cube.NewDimCoord("", []float64{-7.5, 7.5, 22.5, 37.5})
	foo.LongName = "foo"
	mustDo(c.AddDimCoord(foo, 1))
	bar := cube.NewDimCoord("", []float64{2.5, 7.5, 12.5})
	bar.LongName = "bar"
	mustDo(c.AddDimCoord(bar, 0))
	return c
}

// WithLevels stacks n copies of c along a new leading model_level_number
// dimension. Level k holds the samples of c offset by k.
func WithLevels(c *cube.Cube, n int) *cube.Cube {
	src := c.Data()
	data := make([]float64, 0, n*len(src))
	for k := range n {
		for _, v := range src {
			data = append(data, v+float64(k))
		}
	}
	out := must(cube.New(c.Name(), append([]int{n}, c.Shape()...), data))

	levels := make([]float64, n)
	for k := range levels {
		levels[k] = float64(k)
	}
	mln := cube.NewDimCoord("model_level_number", levels)
	mln.Units = "1"
	mln.Axis = "Z"
	mustDo(out.AddDimCoord(mln, 0))

	for _, co := range c.Coords(cube.DimCoords()) {
		mustDo(out.AddDimCoord(co.Copy(), c.CoordDims(co)[0]+1))
	}
	for _, co := range c.Coords(cube.AuxCoords()) {
		dims := c.CoordDims(co)
		for i := range dims {
			dims[i]++
		}
		mustDo(out.AddAuxCoord(co.Copy(), dims...))
	}
	return out
}

var registry = map[string]func() *cube.Cube{
	"realistic_3d": Realistic3D,
	"simple_2d":    Simple2D,
}

// Get returns a fresh copy of the named stock cube.
func Get(name string) (*cube.Cube, bool) {
	fn, ok := registry[name]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// Names lists the stock cubes in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = math.Round((lo+step*float64(i))*1e6) / 1e6
	}
	return out
}

func must(c *cube.Cube, err error) *cube.Cube {
	mustDo(err)
	return c
}

func mustDo(err error) {
	if err != nil {
		panic(err)
	}
}
