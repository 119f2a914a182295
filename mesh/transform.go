package mesh

import (
	"github.com/notargets/mulgrid/geometry2D"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Translate shifts nodes and column centres horizontally, layers vertically
// and wells in all three directions
func (g *Grid) Translate(shift r3.Vec) {
	xy := r2.Vec{X: shift.X, Y: shift.Y}
	for _, n := range g.nodeList {
		n.Pos = r2.Add(n.Pos, xy)
	}
	for _, col := range g.columnList {
		col.centre = r2.Add(col.centre, xy)
	}
	for _, lay := range g.layerList {
		lay.Translate(shift.Z)
	}
	for _, wl := range g.wellList {
		for i := range wl.Pos {
			wl.Pos[i] = r3.Add(wl.Pos[i], shift)
		}
	}
}

// Rotate turns the grid by angle degrees clockwise about centre, or about the
// grid centre if none is given. Column surfaces and layers are unchanged.
func (g *Grid) Rotate(angle float64, centre ...r2.Vec) {
	var c r2.Vec
	if len(centre) != 0 {
		c = centre[0]
	} else {
		c, _ = g.Centre()
	}
	rot := geometry2D.NewRotation(angle, c)
	for _, n := range g.nodeList {
		n.Pos = rot.Apply(n.Pos)
	}
	for _, col := range g.columnList {
		col.centre = rot.Apply(col.centre)
	}
	for _, wl := range g.wellList {
		for i, p := range wl.Pos {
			xy := rot.Apply(r2.Vec{X: p.X, Y: p.Y})
			wl.Pos[i] = r3.Vec{X: xy.X, Y: xy.Y, Z: p.Z}
		}
	}
}
