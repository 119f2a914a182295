package mesh

import (
	"fmt"

	"github.com/notargets/mulgrid/geometry2D"
	"github.com/notargets/mulgrid/types"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func (g *Grid) BlockName(layerName, columnName string) string {
	return g.convention.BlockName(layerName, columnName)
}

func (g *Grid) ColumnNameOfBlock(blockName string) string { return g.convention.ColumnName(blockName) }
func (g *Grid) LayerNameOfBlock(blockName string) string  { return g.convention.LayerName(blockName) }

/*
SetupBlockNameIndex builds the ordered block name list: the atmosphere
block(s) first, then for each layer below the surface layer the blocks of
the columns whose surfaces lie above the layer bottom.
*/
func (g *Grid) SetupBlockNameIndex() {
	g.blockNameList = nil
	g.blockNameIndex = make(map[string]int)
	if len(g.layerList) == 0 {
		return
	}
	surface := g.layerList[0]
	switch g.atmosphereType {
	case types.AtmosphereSingle:
		g.blockNameList = append(g.blockNameList, g.BlockName(surface.Name, g.AtmosphereColumnName()))
	case types.AtmosphereColumns:
		for _, col := range g.columnList {
			g.blockNameList = append(g.blockNameList, g.BlockName(surface.Name, col.Name))
		}
	}
	for _, lay := range g.layerList[1:] {
		for _, col := range g.columnList {
			if col.surface > lay.Bottom {
				g.blockNameList = append(g.blockNameList, g.BlockName(lay.Name, col.Name))
			}
		}
	}
	for i, blk := range g.blockNameList {
		g.blockNameIndex[blk] = i
	}
}

func (g *Grid) BlockNameList() []string { return append([]string{}, g.blockNameList...) }

func (g *Grid) BlockIndex(blockName string) (i int, ok bool) {
	i, ok = g.blockNameIndex[blockName]
	return
}

func (g *Grid) NumBlocks() int { return len(g.blockNameList) }

func (g *Grid) NumAtmosphereBlocks() int {
	switch g.atmosphereType {
	case types.AtmosphereSingle:
		return 1
	case types.AtmosphereColumns:
		return g.NumColumns()
	}
	return 0
}

func (g *Grid) NumUndergroundBlocks() int { return g.NumBlocks() - g.NumAtmosphereBlocks() }

func (g *Grid) isSurfaceLayer(lay *Layer) bool {
	return len(g.layerList) > 0 && lay.Name == g.layerList[0].Name
}

// BlockSurface returns the elevation of the top of the block, if the block exists
func (g *Grid) BlockSurface(lay *Layer, col *Column) (z float64, ok bool) {
	if g.isSurfaceLayer(lay) {
		if g.atmosphereType == types.AtmosphereColumns {
			return lay.Top, true
		}
		return
	}
	switch {
	case col.surface < lay.Top:
		if lay.Bottom < col.surface {
			return col.surface, true
		}
		return
	case col.surface > g.layerList[0].Top:
		return col.surface, true
	}
	return lay.Top, true
}

func (g *Grid) BlockVolume(lay *Layer, col *Column) (vol float64, ok bool) {
	if g.isSurfaceLayer(lay) {
		switch {
		case g.atmosphereType == types.AtmosphereSingle && col.Name == g.AtmosphereColumnName():
			return g.AtmosphereVolume, true
		case g.atmosphereType == types.AtmosphereColumns:
			return g.AtmosphereVolume, true
		}
		return
	}
	surf, ok := g.BlockSurface(lay, col)
	if !ok {
		return
	}
	return (surf - lay.Bottom) * col.Area, true
}

/*
BlockCentre returns the block centre. The elevation is the layer centre,
except for a surface block whose column surface is below the layer top,
which is centred between the layer bottom and the surface.
*/
func (g *Grid) BlockCentre(lay *Layer, col *Column) (c r3.Vec, ok bool) {
	var z float64
	if g.isSurfaceLayer(lay) {
		if g.atmosphereType != types.AtmosphereColumns {
			return
		}
		z = lay.Centre
	} else {
		switch {
		case lay.Bottom < col.surface && col.surface <= lay.Top:
			z = 0.5 * (lay.Bottom + col.surface)
		case col.surface <= lay.Bottom:
			return
		default:
			z = lay.Centre
		}
	}
	cc := col.Centre()
	return r3.Vec{X: cc.X, Y: cc.Y, Z: z}, true
}

// ConnectionParams returns the distances from each column centre to the
// connection face, and the face area, within a layer
func (g *Grid) ConnectionParams(con *Connection, lay *Layer) (dist [2]float64, area float64) {
	if _, ok := g.connections[con.Key()]; !ok || len(con.Nodes) < 2 {
		return
	}
	var (
		face       = [2]r2.Vec{con.Nodes[0].Pos, con.Nodes[1].Pos}
		sideLength = r2.Norm(r2.Sub(face[1], face[0]))
		height     float64
	)
	for i, col := range con.Columns {
		var h float64
		if surf, ok := g.BlockSurface(lay, col); ok {
			h = surf - lay.Bottom
		}
		if i == 0 || h < height {
			height = h
		}
		c := col.Centre()
		dist[i] = r2.Norm(r2.Sub(geometry2D.LineProjection(c, face), c))
	}
	return dist, sideLength * height
}

// ColumnValuesToBlock expands one value per column into one value per block.
// Blocks without a grid column (the single atmosphere block) get zero.
func (g *Grid) ColumnValuesToBlock(values []float64) (blockValues []float64) {
	var (
		index = g.ColumnIndex()
	)
	blockValues = make([]float64, g.NumBlocks())
	for i, blk := range g.blockNameList {
		if ci, ok := index[g.ColumnNameOfBlock(blk)]; ok && ci < len(values) {
			blockValues[i] = values[ci]
		}
	}
	return
}

// BlockNameContainingPoint returns the block containing a 3D point
func (g *Grid) BlockNameContainingPoint(p r3.Vec) (name string, ok bool) {
	col, found := g.ColumnContainingPoint(r2.Vec{X: p.X, Y: p.Y}, nil)
	if !found {
		return
	}
	lay, found := g.LayerContainingElevation(p.Z)
	if !found || col.surface <= lay.Bottom {
		return
	}
	return g.BlockName(lay.Name, col.Name), true
}

/*
LineValues samples values, one per block, at divisions+1 evenly spaced
points from start to end. Points outside the grid are skipped. It returns
the distance of each sampled point from start with the value of its block.
*/
func (g *Grid) LineValues(start, end r3.Vec, values []float64, divisions int) (dist, vals []float64) {
	return g.PolylineValues([]r3.Vec{start, end}, values, divisions)
}

// PolylineValues samples values along each segment of a polyline as in
// LineValues, with distances measured along the polyline from its first point
func (g *Grid) PolylineValues(points []r3.Vec, values []float64, divisions int) (dist, vals []float64) {
	if divisions < 1 {
		divisions = 1
	}
	var offset float64
	for i := 1; i < len(points); i++ {
		var (
			start, end = points[i-1], points[i]
			d          = r3.Sub(end, start)
			length     = r3.Norm(d)
			first      = 0
		)
		if i > 1 {
			// the first point of a segment is the last of the one before
			first = 1
		}
		for k := first; k <= divisions; k++ {
			f := float64(k) / float64(divisions)
			blk, found := g.BlockNameContainingPoint(r3.Add(start, r3.Scale(f, d)))
			if !found {
				continue
			}
			if bi, ok := g.BlockIndex(blk); ok && bi < len(values) {
				dist = append(dist, offset+f*length)
				vals = append(vals, values[bi])
			}
		}
		offset += length
	}
	return
}

// WellValues samples values along a well trajectory from the wellhead, with
// distances measured along the well
func (g *Grid) WellValues(wellName string, values []float64, divisions int) (dist, vals []float64, err error) {
	wl, ok := g.Well(wellName)
	if !ok {
		return nil, nil, fmt.Errorf("well %q: %w", wellName, ErrNotFound)
	}
	dist, vals = g.PolylineValues(wl.Pos, values, divisions)
	return
}
