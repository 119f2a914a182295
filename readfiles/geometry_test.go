package readfiles

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/notargets/mulgrid/mesh"
	"github.com/notargets/mulgrid/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func testGrid(t *testing.T) *mesh.Grid {
	opts := mesh.DefaultRectangularOptions()
	opts.Atmosphere = types.AtmosphereSingle
	g, err := mesh.NewRectangular([]float64{100, 150, 200}, []float64{120, 80}, []float64{10, 20, 30}, opts)
	require.NoError(t, err)
	g.Out = &bytes.Buffer{}
	return g
}

func roundTrip(t *testing.T, g *mesh.Grid) (text string, g2 *mesh.Grid) {
	var buf bytes.Buffer
	require.NoError(t, WriteGeometry(&buf, g))
	text = buf.String()
	g2, err := ReadGeometry(strings.NewReader(text), false)
	require.NoError(t, err)
	return
}

func TestGeometryRoundTrip(t *testing.T) {
	{ // Everything written is read back
		g := testGrid(t)
		require.NoError(t, g.SetColumnSurface("  b", -3.25))
		require.NoError(t, g.AddWell(mesh.NewWell("WEL 1",
			r3.Vec{X: 50, Y: 60, Z: 0}, r3.Vec{X: 55.5, Y: 60, Z: -40.5})))
		text, g2 := roundTrip(t, g)
		assert.True(t, strings.HasPrefix(text, "GENER00"))
		assert.Contains(t, text, "SURFA\n")
		assert.True(t, strings.HasSuffix(text, "\n\n\n"))

		assert.Equal(t, g.Convention(), g2.Convention())
		assert.Equal(t, g.AtmosphereType(), g2.AtmosphereType())
		assert.InDelta(t, g.AtmosphereVolume, g2.AtmosphereVolume, 1.e20)
		require.Equal(t, g.NumNodes(), g2.NumNodes())
		for i, n := range g.Nodes() {
			n2 := g2.Nodes()[i]
			assert.Equal(t, n.Name, n2.Name)
			assert.InDelta(t, n.Pos.X, n2.Pos.X, 0.005)
			assert.InDelta(t, n.Pos.Y, n2.Pos.Y, 0.005)
		}
		require.Equal(t, g.NumColumns(), g2.NumColumns())
		for i, col := range g.Columns() {
			col2 := g2.Columns()[i]
			assert.Equal(t, col.Name, col2.Name)
			assert.InDelta(t, col.Area, col2.Area, 1.e-6)
			assert.Equal(t, col.NumNeighbours(), col2.NumNeighbours())
			assert.Equal(t, col.DefaultSurface, col2.DefaultSurface)
			assert.InDelta(t, col.Surface(), col2.Surface(), 0.005)
		}
		assert.Equal(t, g.NumConnections(), g2.NumConnections())
		require.Equal(t, g.NumLayers(), g2.NumLayers())
		for i, lay := range g.Layers() {
			lay2 := g2.Layers()[i]
			assert.Equal(t, lay.Name, lay2.Name)
			assert.InDelta(t, lay.Bottom, lay2.Bottom, 0.005)
			assert.InDelta(t, lay.Centre, lay2.Centre, 0.005)
			assert.InDelta(t, lay.Top, lay2.Top, 0.005)
		}
		assert.Equal(t, g.BlockNameList(), g2.BlockNameList())
		wl, ok := g2.Well("WEL 1")
		require.True(t, ok)
		require.Equal(t, 1, wl.NumDeviations())
		assert.InDelta(t, 55.5, wl.Bottom().X, 0.05)
		assert.InDelta(t, -40.5, wl.Bottom().Z, 0.05)
		// A second pass writes identical text
		text2, _ := roundTrip(t, g2)
		assert.Equal(t, text, text2)
	}
	{ // Default surfaces are not written
		text, g2 := roundTrip(t, testGrid(t))
		assert.NotContains(t, text, "SURFA")
		assert.NotContains(t, text, "WELLS")
		assert.True(t, g2.DefaultSurface())
	}
	{ // Feet are converted to metres on reading and back on writing
		g := testGrid(t)
		require.NoError(t, g.SetUnitType("FEET "))
		text, g2 := roundTrip(t, g)
		assert.Equal(t, "FEET ", text[27:32])
		assert.Equal(t, "FEET ", g2.UnitType())
		assert.Contains(t, text, "  b    328.08      0.00\n")
		n, _ := g2.Node("  b")
		assert.InDelta(t, 100., n.Pos.X, 0.002)
		lay := g2.Layers()[1]
		assert.InDelta(t, -10., lay.Bottom, 0.002)
	}
	{ // Specified column centres are kept
		g := testGrid(t)
		col, _ := g.Column("  a")
		col.SetCentre(r2.Add(col.Centre(), r2.Vec{X: 1.5, Y: -2}))
		_, g2 := roundTrip(t, g)
		col2, _ := g2.Column("  a")
		assert.True(t, col2.CentreSpecified)
		assert.InDelta(t, col.Centre().X, col2.Centre().X, 0.005)
		assert.InDelta(t, col.Centre().Y, col2.Centre().Y, 0.005)
	}
}

var minimalGeometry = `GENER02  1.00E+25  1.00E-06
VERTICES
  1      0.00      0.00
  2      1.00      0.00
  3      1.00      1.00
  4      0.00      1.00

GRID
  10 4
  1
  4
  3
  2

LAYERS
 0      0.00
 1    -10.00

`

func TestReadGeometry(t *testing.T) {
	{ // Short lines, numbered names and missing layer centres
		g, err := ReadGeometry(strings.NewReader(minimalGeometry), false)
		require.NoError(t, err)
		assert.Equal(t, 4, g.NumNodes())
		assert.Equal(t, 1, g.NumColumns())
		col, ok := g.Column("  1")
		require.True(t, ok)
		assert.InDelta(t, 1., col.Area, 1.e-12)
		require.Equal(t, 2, g.NumLayers())
		assert.Equal(t, 0., g.Layers()[0].Centre)
		assert.Equal(t, -5., g.Layers()[1].Centre)
		assert.Equal(t, []string{"  1 1"}, g.BlockNameList())
	}
	header := func(typ string, gdcx float64, cntype int) string {
		return fmt.Sprintf("%-5.5s%1d%1d%10.2e%10.2e%5s%10.2f%10.2f%1d%10.2f\n",
			typ, 0, 0, 1.e25, 1.e-6, "", gdcx, 0., cntype, 0.)
	}
	for _, tc := range []struct {
		name  string
		input string
		err   error
		msg   string
	}{
		{"empty", "", nil, "empty"},
		{"grid type", header("RECT", 0, 0), ErrUnsupportedGrid, ""},
		{"gdcx", header("GENER", 2.5, 0), ErrUnsupportedGrid, "GDCX"},
		{"cntype", header("GENER", 0, 1), ErrUnsupportedGrid, "CNTYPE"},
		{"unknown section", header("GENER", 0, 0) + "ROCKS\n", nil, "unrecognised"},
		{"missing node", header("GENER", 0, 0) + "GRID\n  a0 3\n  a\n  b\n  c\n\n", mesh.ErrNotFound, "section GRID"},
		{"duplicate node", header("GENER", 0, 0) + "VERTICES\n  a      0.00      0.00\n  a      1.00      1.00\n\n", mesh.ErrDuplicate, "line 4"},
		{"short column", header("GENER", 0, 0) + "VERTICES\n  a      0.00      0.00\n\nGRID\n  b0 3\n  a\n", nil, "ends after 1 of 3"},
		{"missing number", header("GENER", 0, 0) + "VERTICES\n  a      0.00\n\n", nil, "missing number"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadGeometry(strings.NewReader(tc.input), false)
			require.Error(t, err)
			if tc.err != nil {
				assert.True(t, errors.Is(err, tc.err), err.Error())
			}
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestFortranFloat(t *testing.T) {
	for _, tc := range []struct {
		in  string
		out float64
	}{
		{"  1.25 ", 1.25},
		{"-3.5E+02", -350},
		{"1.5-300", 1.5e-300},
		{"-2.5-5", -2.5e-5},
		{"1.5+10", 1.5e10},
		{"2.0D+03", 2000},
		{"4.0d0", 4},
		{"junk", 0},
		{"", 0},
	} {
		assert.Equal(t, tc.out, FortranFloat(tc.in), tc.in)
	}
}
