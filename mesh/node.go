package mesh

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// Node is a named horizontal vertex shared by the columns around it
type Node struct {
	Name    string
	Pos     r2.Vec
	columns map[string]*Column
}

func NewNode(name string, pos r2.Vec) *Node {
	return &Node{
		Name:    name,
		Pos:     pos,
		columns: make(map[string]*Column),
	}
}

func (n *Node) String() string { return n.Name }

func (n *Node) NumColumns() int { return len(n.columns) }

// Columns returns the columns using this node, ordered by name
func (n *Node) Columns() (cols []*Column) {
	cols = make([]*Column, 0, len(n.columns))
	for _, col := range n.columns {
		cols = append(cols, col)
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].Name < cols[j].Name })
	return
}

func (n *Node) InColumn(name string) bool {
	_, ok := n.columns[name]
	return ok
}
