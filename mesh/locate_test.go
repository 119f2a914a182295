package mesh

import (
	"math/rand"
	"testing"

	"github.com/notargets/mulgrid/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestColumnContainingPoint(t *testing.T) {
	g, err := NewRectangular([]float64{1, 2, 0.5, 1.5}, []float64{2, 1, 1}, []float64{10}, DefaultRectangularOptions())
	require.NoError(t, err)
	require.NoError(t, g.Refine("  f"))
	var (
		rnd      = rand.New(rand.NewSource(7))
		qt       = g.NewQuadTree()
		rt       = g.NewRTree()
		boundary = g.BoundaryPolygon()
		bb       = g.Bounds()
	)
	require.Len(t, boundary, 4)
	for i := 0; i < 500; i++ {
		p := r2.Vec{
			X: bb.Min.X - 0.5 + rnd.Float64()*(bb.Width()+1),
			Y: bb.Min.Y - 0.5 + rnd.Float64()*(bb.Height()+1),
		}
		want, found := g.ColumnContainingPoint(p, nil)
		if found {
			assert.True(t, want.ContainsPoint(p))
		}
		for _, ps := range []*PointSearch{
			{Index: qt},
			{Index: rt},
			{Boundary: boundary},
			{Guess: g.Columns()[i%g.NumColumns()]},
			{Guess: g.Columns()[0], Index: qt, Boundary: boundary},
		} {
			col, ok := g.ColumnContainingPoint(p, ps)
			require.Equal(t, found, ok, "point %v", p)
			if found {
				assert.Equal(t, want.Name, col.Name, "point %v", p)
			}
		}
	}
	{ // Shared edges belong to exactly one column
		p := r2.Vec{X: 1, Y: 1}
		var count int
		for _, col := range g.Columns() {
			if col.ContainsPoint(p) {
				count++
			}
		}
		assert.Equal(t, 1, count)
	}
	{ // Restricted search
		a, _ := g.Column("  a")
		_, ok := g.ColumnContainingPoint(r2.Vec{X: 4, Y: 3.5}, &PointSearch{Columns: []*Column{a}})
		assert.False(t, ok)
		col, ok := g.ColumnContainingPoint(r2.Vec{X: 0.5, Y: 0.5}, &PointSearch{Columns: []*Column{a}})
		require.True(t, ok)
		assert.Equal(t, "  a", col.Name)
	}
}

func TestLayerContainingElevation(t *testing.T) {
	g := rectGrid(t, 2, 2, types.AtmosphereNone)
	lay, ok := g.LayerContainingElevation(-15)
	require.True(t, ok)
	assert.Equal(t, " 2", lay.Name)
	assert.Equal(t, -20., lay.Bottom)
	assert.Equal(t, -10., lay.Top)
	lay, ok = g.LayerContainingElevation(-10)
	require.True(t, ok)
	assert.Equal(t, " 1", lay.Name)
	_, ok = g.LayerContainingElevation(5)
	assert.False(t, ok)
	_, ok = g.LayerContainingElevation(-31)
	assert.False(t, ok)

	name, ok := g.BlockNameContainingPoint(r3.Vec{X: 1.5, Y: 0.5, Z: -25})
	require.True(t, ok)
	assert.Equal(t, "  b 3", name)
	_, ok = g.BlockNameContainingPoint(r3.Vec{X: 3, Y: 0.5, Z: -25})
	assert.False(t, ok)
}

func TestBoundary(t *testing.T) {
	g := rectGrid(t, 2, 2, types.AtmosphereNone)
	bdy := g.BoundaryNodes()
	require.Len(t, bdy, 8)
	assert.Equal(t, 0., bdy[0].Pos.X)
	for _, n := range bdy {
		assert.NotEqual(t, "  e", n.Name)
	}
	poly := g.BoundaryPolygon()
	assert.Len(t, poly, 4)
	assert.Len(t, g.BoundaryColumns(), 4)
	a, _ := g.Node("  a")
	b, _ := g.Node("  b")
	e, _ := g.Node("  e")
	_, ok := g.ConnectionWithNodes(a, b)
	assert.False(t, ok)
	con, ok := g.ConnectionWithNodes(b, e)
	require.True(t, ok)
	assert.Equal(t, "  a:  b", con.String())
}

func TestColumnTrack(t *testing.T) {
	g := rectGrid(t, 3, 1, types.AtmosphereNone)
	track := g.ColumnTrack([2]r2.Vec{{X: 2.5, Y: 0.5}, {X: -1, Y: 0.5}})
	require.Len(t, track, 3)
	assert.Equal(t, "  c", track[0].Column.Name)
	assert.Equal(t, "  a", track[2].Column.Name)
	assert.InDelta(t, 2.5, track[0].Entry.X, 1.e-12)
	assert.InDelta(t, 0., track[2].Exit.X, 1.e-12)
	poly := []r2.Vec{{X: 0, Y: 0}, {X: 1.6, Y: 0}, {X: 1.6, Y: 1}, {X: 0, Y: 1}}
	assert.Len(t, g.ColumnsInPolygon(poly), 2)
	assert.Len(t, g.NodesInPolygon(poly), 2)
}
