package mesh

import (
	"github.com/notargets/mulgrid/types"
	"gonum.org/v1/gonum/spatial/r2"
)

// Connection joins two columns across their shared side
type Connection struct {
	Columns [2]*Column
	Nodes   []*Node
}

func newConnection(col1, col2 *Column) *Connection {
	return &Connection{
		Columns: [2]*Column{col1, col2},
		Nodes:   col1.sharedNodes(col2),
	}
}

func (con *Connection) Key() types.NamePair {
	return types.NewNamePair(con.Columns[0].Name, con.Columns[1].Name)
}

func (con *Connection) String() string {
	return con.Columns[0].Name + ":" + con.Columns[1].Name
}

func (con *Connection) HasNodes(nodes ...*Node) bool {
	for _, n := range nodes {
		var found bool
		for _, cn := range con.Nodes {
			if cn == n {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// AngleCosine is the cosine of the angle between the shared face and the
// line joining the column centres, zero for an orthogonal connection
func (con *Connection) AngleCosine() float64 {
	if len(con.Nodes) < 2 {
		return 0
	}
	var (
		n = r2.Unit(r2.Sub(con.Nodes[1].Pos, con.Nodes[0].Pos))
		d = r2.Unit(r2.Sub(con.Columns[1].Centre(), con.Columns[0].Centre()))
	)
	return r2.Dot(n, d)
}
