package mesh

import (
	"math"

	"github.com/notargets/mulgrid/types"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
)

// ColumnMapping maps each column name of other to the name of the column of
// g with the nearest centre
func (g *Grid) ColumnMapping(other *Grid) (mapping map[string]string) {
	mapping = make(map[string]string)
	if len(g.columnList) == 0 {
		return
	}
	if g.atmosphereType == types.AtmosphereSingle && other.atmosphereType == types.AtmosphereSingle {
		mapping[other.AtmosphereColumnName()] = g.AtmosphereColumnName()
	}
	dist := make([]float64, len(g.columnList))
	for _, col := range other.columnList {
		for i, c := range g.columnList {
			dist[i] = r2.Norm(r2.Sub(c.centre, col.centre))
		}
		mapping[col.Name] = g.columnList[floats.MinIdx(dist)].Name
	}
	return
}

// LayerMapping maps each layer name of other to the name of the layer of g
// with the nearest centre. Surface layers map to each other.
func (g *Grid) LayerMapping(other *Grid) (mapping map[string]string) {
	mapping = make(map[string]string)
	if len(g.layerList) == 0 || len(other.layerList) == 0 {
		return
	}
	mapping[other.layerList[0].Name] = g.layerList[0].Name
	if len(g.layerList) < 2 {
		return
	}
	dist := make([]float64, len(g.layerList)-1)
	for _, lay := range other.layerList[1:] {
		for i, l := range g.layerList[1:] {
			dist[i] = math.Abs(l.Centre - lay.Centre)
		}
		mapping[lay.Name] = g.layerList[1+floats.MinIdx(dist)].Name
	}
	return
}

/*
BlockMapping maps each block name of other to the name of the nearest block
of g. The nearest column is found first, then the nearest layer in it. A
source block above the ground surface is replaced by the top block of its
column. Blocks of other that cannot be mapped are left out.
*/
func (g *Grid) BlockMapping(other *Grid) (mapping map[string]string) {
	mapping = make(map[string]string)
	if len(g.layerList) == 0 || len(other.layerList) == 0 {
		return
	}
	var (
		colMap       = g.ColumnMapping(other)
		layMap       = g.LayerMapping(other)
		surface      = g.layerList[0]
		otherSurface = other.layerList[0].Name
	)
	for _, dest := range other.blockNameList {
		destCol, destLay := other.ColumnNameOfBlock(dest), other.LayerNameOfBlock(dest)
		srcColName, colOK := colMap[destCol]
		srcLayName, layOK := layMap[destLay]
		if destLay == otherSurface {
			srcLayName, layOK = surface.Name, true
			if g.atmosphereType == types.AtmosphereSingle {
				srcColName, colOK = g.AtmosphereColumnName(), true
			}
		}
		if !colOK || !layOK {
			continue
		}
		if srcLayName != surface.Name {
			col, lay := g.columns[srcColName], g.layers[srcLayName]
			if col.surface <= lay.Bottom {
				top := len(g.layerList) - col.NumLayers
				if top >= len(g.layerList) {
					continue
				}
				srcLayName = g.layerList[top].Name
			}
		}
		mapping[dest] = g.BlockName(srcLayName, srcColName)
	}
	return
}
