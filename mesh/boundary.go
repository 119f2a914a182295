package mesh

import (
	"github.com/notargets/mulgrid/geometry2D"
	"gonum.org/v1/gonum/spatial/r2"
)

// ConnectionWithNodes returns the connection whose shared side holds both nodes
func (g *Grid) ConnectionWithNodes(n1, n2 *Node) (con *Connection, ok bool) {
	for _, col := range n1.Columns() {
		for _, c := range col.connections {
			if c.HasNodes(n1, n2) {
				return c, true
			}
		}
	}
	return
}

// nextBoundaryNode follows the side leaving n, in some column, that has no
// connection across it
func (g *Grid) nextBoundaryNode(n *Node) *Node {
	for _, col := range n.Columns() {
		nn := col.NumNodes()
		for i, cn := range col.Nodes {
			if cn != n {
				continue
			}
			n2 := col.Nodes[(i+1)%nn]
			if _, ok := g.ConnectionWithNodes(n, n2); !ok {
				return n2
			}
		}
	}
	return nil
}

/*
BoundaryNodes returns the nodes of the outer boundary in counterclockwise
order. The loop starts from a node on the left hand edge of the grid, which
avoids picking up interior boundaries.
*/
func (g *Grid) BoundaryNodes() (bdy []*Node) {
	if len(g.nodeList) == 0 {
		return
	}
	var (
		xmin  = g.Bounds().Min.X
		start *Node
	)
	for _, n := range g.nodeList {
		if n.Pos.X == xmin && g.nextBoundaryNode(n) != nil {
			start = n
			break
		}
	}
	if start == nil {
		return
	}
	n := start
	for range g.nodeList {
		bdy = append(bdy, n)
		if n = g.nextBoundaryNode(n); n == nil {
			return nil
		}
		if n == start {
			return
		}
	}
	// The walk did not close
	return nil
}

// BoundaryPolygon is the boundary node loop with collinear nodes removed
func (g *Grid) BoundaryPolygon() []r2.Vec {
	var pts []r2.Vec
	for _, n := range g.BoundaryNodes() {
		pts = append(pts, n.Pos)
	}
	return geometry2D.SimplifyPolygon(pts)
}

// BoundaryColumns returns the columns holding at least two boundary nodes
func (g *Grid) BoundaryColumns() (cols []*Column) {
	bdy := make(map[*Node]bool)
	for _, n := range g.BoundaryNodes() {
		bdy[n] = true
	}
	for _, col := range g.columnList {
		var count int
		for _, n := range col.Nodes {
			if bdy[n] {
				count++
			}
		}
		if count >= 2 {
			cols = append(cols, col)
		}
	}
	return
}
