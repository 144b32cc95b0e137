package cube_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/cubebrowser/internal/cube"
	"github.com/san-kum/cubebrowser/internal/cube/stock"
)

func TestNew(t *testing.T) {
	c, err := cube.New("x", []int{2, 3}, make([]float64, 6))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Ndim())
	assert.Equal(t, []int{2, 3}, c.Shape())
	assert.Equal(t, 6, c.Size())

	_, err = cube.New("x", []int{2, 3}, make([]float64, 5))
	require.ErrorIs(t, err, cube.ErrShapeMismatch)

	_, err = cube.New("x", []int{0, 3}, nil)
	require.ErrorIs(t, err, cube.ErrShapeMismatch)
}

func TestAddDimCoord(t *testing.T) {
	c, err := cube.New("x", []int{3}, make([]float64, 3))
	require.NoError(t, err)

	require.ErrorIs(t, c.AddDimCoord(cube.NewDimCoord("a", []float64{1, 2}), 0), cube.ErrShapeMismatch)
	require.ErrorIs(t, c.AddDimCoord(cube.NewDimCoord("a", []float64{1, 3, 2}), 0), cube.ErrNotMonotonic)
	require.ErrorIs(t, c.AddDimCoord(cube.NewAuxCoord("a", []float64{1, 2, 3}), 0), cube.ErrShapeMismatch)
	require.NoError(t, c.AddDimCoord(cube.NewDimCoord("a", []float64{3, 2, 1}), 0))
	require.ErrorIs(t, c.AddDimCoord(cube.NewDimCoord("b", []float64{1, 2, 3}), 0), cube.ErrDimOccupied)
}

func TestCoords(t *testing.T) {
	c := stock.Realistic3D()

	names := func(coords []*cube.Coord) []string {
		out := make([]string, len(coords))
		for i, co := range coords {
			out[i] = co.Name()
		}
		return out
	}

	assert.Equal(t,
		[]string{"time", "grid_latitude", "grid_longitude", "forecast_period", "air_pressure", "surface_altitude"},
		names(c.Coords()))
	assert.Equal(t, []string{"grid_longitude"}, names(c.Coords(cube.OnAxis("x"), cube.DimCoords())))
	assert.Equal(t, []string{"time", "forecast_period"}, names(c.Coords(cube.OnDims(0))))
	assert.Equal(t, []string{"forecast_period"}, names(c.Coords(cube.OnDims(0), cube.AuxCoords())))
	assert.Equal(t, []string{"surface_altitude"}, names(c.Coords(cube.OnDims(1, 2))))
	assert.Equal(t, []string{"air_pressure"}, names(c.Coords(cube.OnDims())))

	tc, err := c.Coord("time")
	require.NoError(t, err)
	assert.Equal(t, []int{0}, c.CoordDims(tc))
	assert.Equal(t, []string{"time"}, names(c.Coords(cube.Like(tc.Copy()))))

	_, err = c.Coord("nope")
	require.ErrorIs(t, err, cube.ErrCoordNotFound)
}

func TestRemoveCoord(t *testing.T) {
	c := stock.Realistic3D()
	require.NoError(t, c.RemoveCoord("time"))
	assert.Nil(t, c.DimCoord(0))
	assert.Empty(t, c.Coords(cube.Named("time")))
	require.ErrorIs(t, c.RemoveCoord("time"), cube.ErrCoordNotFound)
}

func TestSlice_Index(t *testing.T) {
	c := stock.Realistic3D()

	sub, err := c.Slice([]cube.Selector{cube.Index(3), cube.Full(), cube.Full()})
	require.NoError(t, err)
	assert.Equal(t, []int{9, 11}, sub.Shape())
	assert.Equal(t, c.At(3, 4, 5), sub.At(4, 5))
	assert.Equal(t, c.At(3, 0, 0), sub.At(0, 0))
	assert.Equal(t, c.At(3, 8, 10), sub.At(8, 10))

	// time becomes a scalar coordinate
	tc, err := sub.Coord("time")
	require.NoError(t, err)
	assert.Empty(t, sub.CoordDims(tc))
	assert.Equal(t, []float64{402195.5}, tc.Points)
	assert.Equal(t, cube.KindDim, tc.Kind)

	lat, err := sub.Coord("grid_latitude")
	require.NoError(t, err)
	assert.Equal(t, []int{0}, sub.CoordDims(lat))
	assert.True(t, lat.HasBounds())

	alt, err := sub.Coord("surface_altitude")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, sub.CoordDims(alt))
}

func TestSlice_Middle(t *testing.T) {
	c := stock.Realistic3D()

	sub, err := c.Slice([]cube.Selector{cube.Full(), cube.Index(2), cube.Full()})
	require.NoError(t, err)
	assert.Equal(t, []int{7, 11}, sub.Shape())
	assert.Equal(t, c.At(6, 2, 9), sub.At(6, 9))

	alt, err := sub.Coord("surface_altitude")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, sub.CoordDims(alt))
	assert.Len(t, alt.Points, 11)
	assert.Equal(t, float64(400+13*2+7*4), alt.Points[4])
}

func TestSlice_Range(t *testing.T) {
	c := stock.Realistic3D()

	sub, err := c.Slice([]cube.Selector{cube.Range(1, 7), cube.Full(), cube.Full()})
	require.NoError(t, err)
	assert.Equal(t, []int{6, 9, 11}, sub.Shape())
	assert.Equal(t, c.At(1, 0, 0), sub.At(0, 0, 0))

	tc, err := sub.Coord("time")
	require.NoError(t, err)
	assert.Len(t, tc.Points, 6)
}

func TestSlice_Errors(t *testing.T) {
	c := stock.Realistic3D()

	_, err := c.Slice([]cube.Selector{cube.Full()})
	require.ErrorIs(t, err, cube.ErrBadSelector)

	_, err = c.Slice([]cube.Selector{cube.Index(7), cube.Full(), cube.Full()})
	require.ErrorIs(t, err, cube.ErrBadSelector)

	_, err = c.Slice([]cube.Selector{cube.Range(3, 3), cube.Full(), cube.Full()})
	require.ErrorIs(t, err, cube.ErrBadSelector)
}

func TestSlice_LeavesSourceIntact(t *testing.T) {
	c := stock.Realistic3D()
	before := c.Copy()

	sub, err := c.Slice([]cube.Selector{cube.Index(0), cube.Full(), cube.Full()})
	require.NoError(t, err)
	lat, err := sub.Coord("grid_latitude")
	require.NoError(t, err)
	lat.Points[0] = 99

	assert.True(t, c.Equal(before))
}

func TestEqual(t *testing.T) {
	a := stock.Realistic3D()
	b := stock.Realistic3D()
	assert.True(t, a.Equal(b))

	require.NoError(t, b.RemoveCoord("forecast_period"))
	assert.False(t, a.Equal(b))
}

func TestMean(t *testing.T) {
	c := stock.Simple2D()
	assert.InDelta(t, 5.5, c.Mean(), 1e-12)
}

func TestWithLevels(t *testing.T) {
	c := stock.WithLevels(stock.Realistic3D(), 4)
	assert.Equal(t, []int{4, 7, 9, 11}, c.Shape())

	mln := c.DimCoord(0)
	require.NotNil(t, mln)
	assert.Equal(t, "model_level_number", mln.Name())

	tc, err := c.Coord("time")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, c.CoordDims(tc))

	alt, err := c.Coord("surface_altitude")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, c.CoordDims(alt))

	base := stock.Realistic3D()
	assert.InDelta(t, base.At(2, 3, 4)+3, c.At(3, 2, 3, 4), 1e-9)
}

func TestString(t *testing.T) {
	c := stock.Simple2D()
	assert.Equal(t, "thingness / (bar: 3; foo: 4)", c.String())
}
