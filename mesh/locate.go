package mesh

import (
	"sort"

	"github.com/notargets/mulgrid/geometry2D"
	"github.com/notargets/mulgrid/spatial"
	"gonum.org/v1/gonum/spatial/r2"
)

// ColumnIndex is a spatial index over columns, such as a quadtree or R-tree
type ColumnIndex interface {
	Search(p r2.Vec) (*Column, bool)
}

/*
PointSearch narrows or accelerates ColumnContainingPoint. All fields are
optional; every combination gives the same answer for the same grid.
*/
type PointSearch struct {
	// Columns restricts the search, nil means all grid columns
	Columns []*Column
	// Guess is tested first, then its neighbours
	Guess *Column
	// Boundary rejects points outside it before any column is tested
	Boundary []r2.Vec
	// Index replaces the brute force search when the guess fails
	Index ColumnIndex
}

// NewQuadTree builds a quadtree over the columns, all grid columns if none given
func (g *Grid) NewQuadTree(cols ...*Column) *spatial.QuadTree[*Column] {
	if len(cols) == 0 {
		cols = g.Columns()
	}
	return spatial.NewQuadTree(columnBounds(cols), cols)
}

func (g *Grid) NewRTree(cols ...*Column) *spatial.RTree[*Column] {
	if len(cols) == 0 {
		cols = g.Columns()
	}
	return spatial.NewRTree(cols)
}

func columnBounds(cols []*Column) (bb geometry2D.BoundingBox) {
	for i, col := range cols {
		if i == 0 {
			bb = col.BoundingBox()
		} else {
			bb.Grow(col.BoundingBox())
		}
	}
	return
}

// sortByDistance orders columns by the distance of their centres from p
func sortByDistance(cols []*Column, p r2.Vec) {
	sort.SliceStable(cols, func(i, j int) bool {
		return r2.Norm(r2.Sub(cols[i].Centre(), p)) < r2.Norm(r2.Sub(cols[j].Centre(), p))
	})
}

/*
ColumnContainingPoint returns the column containing horizontal position p.
The guess and its nearby neighbours are tried first, nearest centre first.
Then the index is searched if given, otherwise every candidate column whose
bounding box contains p, nearest centre first.
*/
func (g *Grid) ColumnContainingPoint(p r2.Vec, ps *PointSearch) (col *Column, ok bool) {
	if ps == nil {
		ps = &PointSearch{}
	}
	if ps.Boundary != nil && !geometry2D.PointInPolygon(p, ps.Boundary) {
		return
	}
	var (
		searchCols = ps.Columns
		member     = func(*Column) bool { return true }
	)
	if searchCols == nil {
		searchCols = g.columnList
	} else {
		in := make(map[*Column]bool, len(searchCols))
		for _, c := range searchCols {
			in[c] = true
		}
		member = func(c *Column) bool { return in[c] }
	}
	done := make(map[*Column]bool)
	if ps.Guess != nil && member(ps.Guess) {
		if ps.Guess.ContainsPoint(p) {
			return ps.Guess, true
		}
		done[ps.Guess] = true
		var near []*Column
		for _, nbr := range ps.Guess.Neighbours() {
			if member(nbr) && nbr.NearPoint(p) {
				near = append(near, nbr)
			}
		}
		sortByDistance(near, p)
		for _, nbr := range near {
			if nbr.ContainsPoint(p) {
				return nbr, true
			}
			done[nbr] = true
		}
	}
	if ps.Index != nil {
		return ps.Index.Search(p)
	}
	var near []*Column
	for _, c := range searchCols {
		if !done[c] && c.NearPoint(p) {
			near = append(near, c)
		}
	}
	sortByDistance(near, p)
	for _, c := range near {
		if c.ContainsPoint(p) {
			return c, true
		}
	}
	return
}

// LayerContainingElevation returns the first layer below the surface layer
// whose elevation range includes z
func (g *Grid) LayerContainingElevation(z float64) (lay *Layer, ok bool) {
	for i, l := range g.layerList {
		if i > 0 && l.ContainsElevation(z) {
			return l, true
		}
	}
	return
}

// TrackSegment is the part of a line crossing one column
type TrackSegment struct {
	Column      *Column
	Entry, Exit r2.Vec
}

// ColumnTrack returns the columns crossed by a line, ordered by the distance
// of their entry points from the start of the line
func (g *Grid) ColumnTrack(line [2]r2.Vec) (track []TrackSegment) {
	for _, col := range g.columnList {
		if crossings := geometry2D.LinePolygonIntersections(col.Polygon(), line); crossings != nil {
			track = append(track, TrackSegment{Column: col, Entry: crossings[0], Exit: crossings[1]})
		}
	}
	sort.SliceStable(track, func(i, j int) bool {
		return r2.Norm(r2.Sub(track[i].Entry, line[0])) < r2.Norm(r2.Sub(track[j].Entry, line[0]))
	})
	return
}
