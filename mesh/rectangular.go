package mesh

import (
	"fmt"

	"github.com/notargets/mulgrid/naming"
	"github.com/notargets/mulgrid/types"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

type RectangularOptions struct {
	Convention naming.Convention
	Atmosphere types.AtmosphereType
	// Origin is the lower left corner of the grid and the elevation of the
	// top of the first layer
	Origin  r3.Vec
	Justify naming.Justification
	Case    naming.Case
}

func DefaultRectangularOptions() RectangularOptions {
	return RectangularOptions{
		Convention: naming.ColumnLetters,
		Atmosphere: types.AtmosphereNone,
		Justify:    naming.Right,
		Case:       naming.Lower,
	}
}

/*
NewRectangular creates a rectangular grid from lists of column widths in x
and y, and layer thicknesses in z. Nodes and columns are numbered row by row
from the origin, starting from 1.
*/
func NewRectangular(dx, dy, dz []float64, opts RectangularOptions) (g *Grid, err error) {
	if len(dx) == 0 || len(dy) == 0 {
		return nil, fmt.Errorf("rectangular grid needs at least one column width in each direction")
	}
	g = NewGrid(opts.Convention, opts.Atmosphere)
	var (
		nxv, nyv = len(dx) + 1, len(dy) + 1
		maxLen   = opts.Convention.ColumnNameLength()
		name     = func(num int) (s string, err error) {
			s = g.ColumnNameFromNumber(num, opts.Justify, opts.Case)
			if len(s) > maxLen {
				err = fmt.Errorf("name %q for number %d: %w", s, num, ErrNameOverflow)
			}
			return
		}
		verts = make([]*Node, 0, nxv*nyv)
		y     = opts.Origin.Y
	)
	for j := 0; j < nyv; j++ {
		x := opts.Origin.X
		for i := 0; i < nxv; i++ {
			var nn string
			if nn, err = name(len(verts) + 1); err != nil {
				return nil, err
			}
			n := NewNode(nn, r2.Vec{X: x, Y: y})
			if err = g.AddNode(n); err != nil {
				return nil, err
			}
			verts = append(verts, n)
			if i < len(dx) {
				x += dx[i]
			}
		}
		if j < len(dy) {
			y += dy[j]
		}
	}
	colName := func(i, j int) (string, error) { return name(j*len(dx) + i + 1) }
	for j := range dy {
		for i := range dx {
			var cn string
			if cn, err = colName(i, j); err != nil {
				return nil, err
			}
			nodes := []*Node{verts[j*nxv+i], verts[(j+1)*nxv+i], verts[(j+1)*nxv+i+1], verts[j*nxv+i+1]}
			if err = g.AddColumn(NewColumn(cn, nodes)); err != nil {
				return nil, err
			}
		}
	}
	connect := func(i1, j1, i2, j2 int) (err error) {
		var c1, c2 string
		if c1, err = colName(i1, j1); err != nil {
			return
		}
		if c2, err = colName(i2, j2); err != nil {
			return
		}
		_, err = g.AddConnection(c1, c2)
		return
	}
	for j := range dy {
		for i := 0; i < len(dx)-1; i++ {
			if err = connect(i, j, i+1, j); err != nil {
				return nil, err
			}
		}
	}
	for j := 0; j < len(dy)-1; j++ {
		for i := range dx {
			if err = connect(i, j, i, j+1); err != nil {
				return nil, err
			}
		}
	}
	if err = g.AddLayers(dz, opts.Origin.Z, opts.Justify, opts.Case); err != nil {
		return nil, err
	}
	g.SetDefaultSurface()
	g.IdentifyNeighbours()
	g.SetupBlockNameIndex()
	return
}

/*
AddLayers replaces the grid layers with a surface layer at elevation top and
one layer per thickness below it. Layer names are generated from numbers
counting from 1, skipping the surface layer name.
*/
func (g *Grid) AddLayers(thicknesses []float64, top float64, j naming.Justification, cs naming.Case) (err error) {
	for _, lay := range g.Layers() {
		_ = g.DeleteLayer(lay.Name)
	}
	surfaceName := g.convention.SurfaceLayerName()
	if err = g.AddLayer(NewLayer(surfaceName, top, top)); err != nil {
		return
	}
	var (
		z   = top
		num = 1
	)
	for _, dz := range thicknesses {
		var name string
		for {
			name = g.convention.LayerNameFromNumber(num, j, cs)
			num++
			if name != surfaceName {
				break
			}
		}
		if len(name) > g.convention.LayerNameLength() {
			return fmt.Errorf("layer name %q: %w", name, ErrNameOverflow)
		}
		if err = g.AddLayer(NewLayer(name, z-dz, z-0.5*dz)); err != nil {
			return
		}
		z -= dz
	}
	g.IdentifyLayerTops()
	return
}
