package mesh

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/notargets/mulgrid/geometry2D"
	"github.com/notargets/mulgrid/naming"
	"github.com/notargets/mulgrid/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

// assertConforming checks the invariants every refined grid must keep
func assertConforming(t *testing.T, g *Grid, area float64) {
	assert.InDelta(t, area, g.Area(), 1.e-9)
	for _, col := range g.Columns() {
		nn := col.NumNodes()
		assert.True(t, nn == 3 || nn == 4, "column %q has %d nodes", col.Name, nn)
		assert.Greater(t, col.Area, 0.)
		assert.True(t, col.ContainsPoint(col.Centre()), "column %q", col.Name)
	}
	assert.Empty(t, g.MissingConnections())
	assert.Empty(t, g.ExtraConnections())
	assert.Empty(t, g.Orphans())
	// Every interior side is shared by exactly two columns
	for _, con := range g.Connections() {
		assert.Len(t, con.Nodes, 2, "connection %s", con)
	}
}

func TestRefine(t *testing.T) {
	{ // One corner column of a 2x2 grid
		g := rectGrid(t, 2, 2, types.AtmosphereSingle)
		require.NoError(t, g.Refine("  a"))
		assert.Equal(t, 13, g.NumColumns())
		assert.Equal(t, 18, g.NumNodes())
		assertConforming(t, g, 4)
		_, ok := g.Column("  a")
		assert.False(t, ok)
		_, ok = g.Column("  d")
		assert.True(t, ok)
		// New names continue from the highest existing number
		_, ok = g.Column("  e")
		assert.True(t, ok)
		_, ok = g.Node("  j")
		assert.True(t, ok)
		assert.Equal(t, 1+13*3, g.NumBlocks())
		for _, col := range g.Columns() {
			assert.Equal(t, 3, col.NumLayers)
		}
	}
	{ // Whole grid
		g := rectGrid(t, 3, 3, types.AtmosphereNone)
		require.NoError(t, g.Refine())
		assert.Equal(t, 36, g.NumColumns())
		assert.Equal(t, 49, g.NumNodes())
		assertConforming(t, g, 9)
		for _, col := range g.Columns() {
			assert.InDelta(t, 0.25, col.Area, 1.e-12)
		}
	}
	{ // Interior column, transitions all round
		g := rectGrid(t, 3, 3, types.AtmosphereNone)
		require.NoError(t, g.Refine("  e"))
		assertConforming(t, g, 9)
		// Side neighbours are also split along their outer boundary sides
		assert.Equal(t, 4+4*2+4, g.NumColumns())
	}
	{ // Refining twice
		g := rectGrid(t, 2, 2, types.AtmosphereNone)
		require.NoError(t, g.Refine("  b"))
		col, ok := g.ColumnContainingPoint(r2.Vec{X: 1.7, Y: 0.3}, nil)
		require.True(t, ok)
		require.NoError(t, g.Refine(col.Name))
		assertConforming(t, g, 4)
	}
	{ // Upper case names are continued in upper case
		opts := DefaultRectangularOptions()
		opts.Case = naming.Upper
		g, err := NewRectangular([]float64{1, 1}, []float64{1}, []float64{10}, opts)
		require.NoError(t, err)
		require.NoError(t, g.Refine("  A"))
		for _, col := range g.Columns() {
			assert.Equal(t, strings.ToUpper(col.Name), col.Name)
		}
		_, ok := g.Column("  C")
		assert.True(t, ok)
		assertConforming(t, g, 2)
	}
	{ // Numbered names under the other conventions
		opts := DefaultRectangularOptions()
		opts.Convention = naming.LayerPrefix
		g, err := NewRectangular([]float64{1, 1}, []float64{1, 1}, []float64{10}, opts)
		require.NoError(t, err)
		require.NoError(t, g.Refine("  1"))
		_, ok := g.Column("  5")
		assert.True(t, ok)
		assertConforming(t, g, 4)
	}
	{ // Surfaces are inherited
		g := rectGrid(t, 2, 1, types.AtmosphereNone)
		require.NoError(t, g.SetColumnSurface("  a", -5))
		require.NoError(t, g.Refine("  a"))
		col, ok := g.ColumnContainingPoint(r2.Vec{X: 0.25, Y: 0.25}, nil)
		require.True(t, ok)
		assert.Equal(t, -5., col.Surface())
		assert.False(t, col.DefaultSurface)
		assert.Equal(t, 3, col.NumLayers)
	}
}

// skewedGrid builds a 3x3 grid of unit cells with jittered interior nodes
func skewedGrid(t *testing.T) (g *Grid) {
	g = NewGrid(naming.ColumnLetters, types.AtmosphereNone)
	g.Out = &bytes.Buffer{}
	jitter := map[[2]int]r2.Vec{
		{1, 1}: {X: 0.15, Y: -0.1}, {2, 1}: {X: -0.1, Y: 0.2},
		{1, 2}: {X: 0.2, Y: 0.15}, {2, 2}: {X: -0.15, Y: -0.2},
	}
	nodeName := func(i, j int) string { return g.ColumnNameFromNumber(j*4+i+1, naming.Right, naming.Lower) }
	for j := 0; j <= 3; j++ {
		for i := 0; i <= 3; i++ {
			pos := r2.Add(r2.Vec{X: float64(i), Y: float64(j)}, jitter[[2]int{i, j}])
			require.NoError(t, g.AddNode(NewNode(nodeName(i, j), pos)))
		}
	}
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			var nodes []*Node
			for _, ij := range [][2]int{{i, j}, {i + 1, j}, {i + 1, j + 1}, {i, j + 1}} {
				n, _ := g.Node(nodeName(ij[0], ij[1]))
				nodes = append(nodes, n)
			}
			name := g.ColumnNameFromNumber(j*3+i+1, naming.Right, naming.Lower)
			require.NoError(t, g.AddColumn(NewColumn(name, nodes)))
		}
	}
	added, err := g.AddMissingConnections()
	require.NoError(t, err)
	assert.Equal(t, 12, added)
	require.NoError(t, g.AddLayers([]float64{10}, 0, naming.Right, naming.Lower))
	g.SetDefaultSurface()
	g.IdentifyNeighbours()
	g.SetupBlockNameIndex()
	return
}

func TestRefineSkewed(t *testing.T) {
	{ // The middle column has two opposite refined sides
		g := skewedGrid(t)
		e, _ := g.Column("  e")
		area, poly := e.Area, e.Polygon()
		require.NoError(t, g.Refine("  d", "  f"))
		assertConforming(t, g, 9)
		var sub float64
		for _, col := range g.Columns() {
			if geometry2D.PointInPolygon(col.Centre(), poly) {
				sub += col.Area
			}
		}
		assert.InDelta(t, area, sub, 1.e-9)
	}
	{ // Adjacent refined sides
		g := skewedGrid(t)
		require.NoError(t, g.Refine("  d", "  h"))
		assertConforming(t, g, 9)
	}
	{ // Everything
		g := skewedGrid(t)
		require.NoError(t, g.Refine())
		assert.Equal(t, 36, g.NumColumns())
		assertConforming(t, g, 9)
	}
}

func TestRefineErrors(t *testing.T) {
	g := rectGrid(t, 2, 1, types.AtmosphereNone)
	{ // Unknown column
		assert.True(t, errors.Is(g.Refine("zzz"), ErrNotFound))
	}
	{ // A pentagon next to the refined column leaves the grid unchanged
		n1 := NewNode("  x", r2.Vec{X: 3, Y: 0})
		n2 := NewNode("  y", r2.Vec{X: 3, Y: 1})
		n3 := NewNode("  z", r2.Vec{X: 2.5, Y: 1.5})
		for _, n := range []*Node{n1, n2, n3} {
			require.NoError(t, g.AddNode(n))
		}
		c, _ := g.Node("  c")
		f, _ := g.Node("  f")
		require.NoError(t, g.AddColumn(NewColumn("  p", []*Node{c, n1, n2, n3, f})))
		_, err := g.AddConnection("  b", "  p")
		require.NoError(t, err)
		var (
			nCols  = g.NumColumns()
			nNodes = g.NumNodes()
		)
		err = g.Refine("  b")
		assert.True(t, errors.Is(err, ErrUnsupportedShape))
		assert.Equal(t, nCols, g.NumColumns())
		assert.Equal(t, nNodes, g.NumNodes())
		_, ok := g.Column("  b")
		assert.True(t, ok)
		// Refining away from the pentagon is fine
		require.NoError(t, g.Refine("  a"))
	}
}

func TestTransitionType(t *testing.T) {
	for _, tc := range []struct {
		nn    int
		sides []int
		key   transitionKey
		start int
	}{
		{3, []int{1}, transitionKey{3, 1, 0}, 1},
		{3, []int{0, 2}, transitionKey{3, 2, 1}, 2},
		{3, []int{0, 1, 2}, transitionKey{3, 3, 2}, 0},
		{4, []int{2}, transitionKey{4, 1, 0}, 2},
		{4, []int{0, 3}, transitionKey{4, 2, 1}, 3},
		{4, []int{1, 2}, transitionKey{4, 2, 1}, 1},
		{4, []int{1, 3}, transitionKey{4, 2, 2}, 1},
		{4, []int{0, 1, 3}, transitionKey{4, 3, 2}, 3},
		{4, []int{0, 1, 2, 3}, transitionKey{4, 4, 3}, 0},
	} {
		key, start, err := transitionType(tc.nn, tc.sides)
		require.NoError(t, err)
		assert.Equal(t, tc.key, key, "%v", tc.sides)
		assert.Equal(t, tc.start, start, "%v", tc.sides)
		_, ok := transitionPatterns[key]
		assert.True(t, ok)
	}
	assert.True(t, transitionKey{4, 4, 3}.needsCentreNode())
	assert.True(t, transitionKey{4, 2, 1}.needsCentreNode())
	assert.False(t, transitionKey{4, 2, 2}.needsCentreNode())
	assert.False(t, transitionKey{3, 3, 2}.needsCentreNode())
}
