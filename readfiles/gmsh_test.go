package readfiles

import (
	"bytes"
	"strings"
	"testing"

	"github.com/notargets/mulgrid/mesh"
	"github.com/notargets/mulgrid/naming"
	"github.com/notargets/mulgrid/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadGmsh(t *testing.T) {
	opts := GmshOptions{
		Convention: naming.ColumnLetters,
		Atmosphere: types.AtmosphereSingle,
		Layers:     []float64{10, 10},
		Top:        5,
	}
	{ // Triangles and quadrilaterals become columns, the rest is ignored
		g, err := ReadGmsh(bytes.NewReader(gmshFile), opts)
		require.NoError(t, err)
		// The orphan node 7 is removed
		assert.Equal(t, 6, g.NumNodes())
		assert.Equal(t, 3, g.NumColumns())
		for _, name := range []string{"  c", "  d", "  e"} {
			_, ok := g.Column(name)
			assert.True(t, ok, name)
		}
		_, ok := g.Column("  a")
		assert.False(t, ok)
		assert.InDelta(t, 2., g.Area(), 1.e-12)
		assert.Equal(t, 2, g.NumConnections())
		_, ok = g.Connection("  c", "  e")
		assert.True(t, ok)
		_, ok = g.Connection("  c", "  d")
		assert.False(t, ok)
		require.Equal(t, 3, g.NumLayers())
		assert.Equal(t, 5., g.Layers()[0].Bottom)
		assert.Equal(t, -15., g.Layers()[2].Bottom)
		assert.Equal(t, 1+3*2, g.NumBlocks())
		assert.Empty(t, g.MissingConnections())
	}
	{ // Numbered names for the other conventions
		opts.Convention = naming.LayerPrefix
		g, err := ReadGmsh(bytes.NewReader(gmshFile), opts)
		require.NoError(t, err)
		_, ok := g.Column("  4")
		assert.True(t, ok)
		_, ok = g.Node("  6")
		assert.True(t, ok)
	}
	{ // Elements referring to missing nodes
		bad := strings.Replace(string(gmshFile), "5 2 2 0 1 2 6 5", "5 2 2 0 1 2 6 9", 1)
		_, err := ReadGmsh(strings.NewReader(bad), opts)
		assert.ErrorIs(t, err, mesh.ErrNotFound)
	}
	{ // Numbers too wide for the column names are rejected, not truncated
		opts.Convention = naming.LayerLetters
		wide := strings.Replace(string(gmshFile), "5 2 2 0 1 2 6 5", "100 2 2 0 1 2 6 5", 1)
		_, err := ReadGmsh(strings.NewReader(wide), opts)
		assert.ErrorIs(t, err, mesh.ErrNameOverflow)
		wide = strings.Replace(string(gmshFile), "7 5 5 0", "100 5 5 0", 1)
		_, err = ReadGmsh(strings.NewReader(wide), opts)
		assert.ErrorIs(t, err, mesh.ErrNameOverflow)
		_, err = ReadGmsh(bytes.NewReader(gmshFile), opts)
		assert.NoError(t, err)
	}
}

var gmshFile = []byte(`$MeshFormat
2.2 0 8
$EndMeshFormat
$Nodes
7
1 0 0 0
2 1 0 0
3 2 0 0
4 0 1 0
5 1 1 0
6 2 1 0
7 5 5 0
$EndNodes
$Elements
5
1 15 2 0 1 1
2 1 2 0 1 1 2
3 3 2 0 1 1 2 5 4
4 2 2 0 1 2 3 6
5 2 2 0 1 2 6 5
$EndElements
`)
