package mesh

import (
	"fmt"
	"sort"

	"github.com/notargets/mulgrid/naming"
	"github.com/notargets/mulgrid/types"
	"gonum.org/v1/gonum/spatial/r2"
)

type vertexKind uint8

const (
	cornerVertex vertexKind = iota
	sideVertex
	centreVertex
)

// patternVertex is a sub-column vertex given relative to the starting corner
// of the parent: a corner, the midside node between two corners, or the centre
type patternVertex struct {
	kind vertexKind
	i, j int
}

func corner(i int) patternVertex  { return patternVertex{kind: cornerVertex, i: i} }
func side(i, j int) patternVertex { return patternVertex{kind: sideVertex, i: i, j: j} }

var centreNode = patternVertex{kind: centreVertex}

// transitionKey classifies a column by number of sides, number of refined
// sides and the span of its refined sides
type transitionKey struct {
	sides, refined, span int
}

var transitionPatterns = map[transitionKey][][]patternVertex{
	{3, 1, 0}: {
		{corner(0), side(0, 1), corner(2)},
		{side(0, 1), corner(1), corner(2)},
	},
	{3, 2, 1}: {
		{corner(0), side(0, 1), side(1, 2), corner(2)},
		{side(0, 1), corner(1), side(1, 2)},
	},
	{3, 3, 2}: {
		{corner(0), side(0, 1), side(2, 0)},
		{side(0, 1), corner(1), side(1, 2)},
		{side(1, 2), corner(2), side(2, 0)},
		{side(0, 1), side(1, 2), side(2, 0)},
	},
	{4, 1, 0}: {
		{corner(0), side(0, 1), corner(3)},
		{side(0, 1), corner(1), corner(2)},
		{side(0, 1), corner(2), corner(3)},
	},
	{4, 2, 1}: {
		{corner(0), side(0, 1), centreNode},
		{side(0, 1), corner(1), side(1, 2), centreNode},
		{side(1, 2), corner(2), centreNode},
		{corner(2), corner(3), centreNode},
		{corner(0), centreNode, corner(3)},
	},
	{4, 2, 2}: {
		{corner(0), side(0, 1), side(2, 3), corner(3)},
		{side(0, 1), corner(1), corner(2), side(2, 3)},
	},
	{4, 3, 2}: {
		{corner(0), side(0, 1), side(2, 3), corner(3)},
		{side(0, 1), corner(1), side(1, 2)},
		{side(1, 2), corner(2), side(2, 3)},
		{side(0, 1), side(1, 2), side(2, 3)},
	},
	{4, 4, 3}: {
		{corner(0), side(0, 1), centreNode, side(3, 0)},
		{side(0, 1), corner(1), side(1, 2), centreNode},
		{side(1, 2), corner(2), side(2, 3), centreNode},
		{side(2, 3), corner(3), side(3, 0), centreNode},
	},
}

/*
transitionType classifies the refined sides of a column, side i running from
node i to node i+1. It returns the number of refined sides, the side the
pattern starts from and the span between the first and last refined sides.
*/
func transitionType(nn int, sides []int) (key transitionKey, start int, err error) {
	var (
		nref    = len(sides)
		missing []int
		isRef   = make(map[int]bool)
	)
	for _, s := range sides {
		isRef[s] = true
	}
	for i := 0; i < nn; i++ {
		if !isRef[i] {
			missing = append(missing, i)
		}
	}
	key = transitionKey{sides: nn, refined: nref}
	switch {
	case nref == 1:
		start, key.span = sides[0], 0
	case nref == nn:
		start, key.span = 0, nn-1
	case len(missing) == 1:
		start, key.span = (missing[0]+1)%nn, nn-2
	case nn == 4 && nref == 2:
		if diff := sides[1] - sides[0]; diff < 3 {
			start, key.span = sides[0], diff
		} else {
			start, key.span = sides[1], 1
		}
	default:
		err = fmt.Errorf("%d of %d sides refined: %w", nref, nn, ErrUnsupportedShape)
	}
	return
}

// needsCentreNode is true for quadrilaterals split through a new centre node
func (k transitionKey) needsCentreNode() bool {
	return k.sides == 4 && (k.refined == 4 || (k.refined == 2 && k.span == 1))
}

type plannedColumn struct {
	name   string
	nodes  []string
	parent *Column
}

type refinePlan struct {
	newNodes   []*Node
	newColumns []plannedColumn
	deleted    []*Column
}

/*
Refine splits the named columns (all columns if none are named) into four,
adding transition columns around the refined region so the mesh stays
conforming. Midside nodes are placed on the connections of the refined
columns and on outer boundary sides of the affected columns. Only 3 and 4
sided columns can be refined; the grid is left unchanged on any error.
*/
func (g *Grid) Refine(columnNames ...string) (err error) {
	var plan *refinePlan
	if plan, err = g.planRefinement(columnNames); err != nil {
		return
	}
	for _, n := range plan.newNodes {
		if err = g.AddNode(n); err != nil {
			return
		}
	}
	var subColumns []*Column
	for _, pc := range plan.newColumns {
		nodes := make([]*Node, len(pc.nodes))
		for i, name := range pc.nodes {
			nodes[i] = g.nodes[name]
		}
		col := NewColumn(pc.name, nodes)
		col.surface, col.DefaultSurface = pc.parent.surface, pc.parent.DefaultSurface
		col.NumLayers = pc.parent.NumLayers
		subColumns = append(subColumns, col)
	}
	for _, col := range plan.deleted {
		if err = g.DeleteColumn(col.Name); err != nil {
			return
		}
	}
	for _, col := range subColumns {
		if err = g.AddColumn(col); err != nil {
			return
		}
	}
	if _, err = g.AddMissingConnections(); err != nil {
		return
	}
	g.IdentifyNeighbours()
	g.SetupBlockNameIndex()
	return
}

func (g *Grid) planRefinement(columnNames []string) (plan *refinePlan, err error) {
	var (
		selected []*Column
		affected = make(map[*Column]bool)
		cons     = make(map[types.NamePair]*Connection)
	)
	if len(columnNames) == 0 {
		selected = g.columnList
	} else {
		for _, name := range columnNames {
			col, ok := g.columns[name]
			if !ok {
				return nil, fmt.Errorf("column %q: %w", name, ErrNotFound)
			}
			selected = append(selected, col)
		}
	}
	for _, col := range selected {
		affected[col] = true
		for key, con := range col.connections {
			cons[key] = con
			affected[con.Columns[0]], affected[con.Columns[1]] = true, true
		}
	}
	for col := range affected {
		if nn := col.NumNodes(); nn != 3 && nn != 4 {
			return nil, fmt.Errorf("refining column %q with %d nodes: %w", col.Name, nn, ErrUnsupportedShape)
		}
	}
	var nextNode, nextCol int
	for _, n := range g.nodeList {
		var num int
		if num, err = g.ColumnNumberFromName(n.Name); err != nil {
			return nil, fmt.Errorf("numbering new nodes from %q: %w", n.Name, err)
		}
		nextNode = max(nextNode, num+1)
	}
	for _, col := range g.columnList {
		var num int
		if num, err = g.ColumnNumberFromName(col.Name); err != nil {
			return nil, fmt.Errorf("numbering new columns from %q: %w", col.Name, err)
		}
		nextCol = max(nextCol, num+1)
	}
	var (
		cs       = naming.Lower
		just     = naming.Left
		maxLen   = g.convention.ColumnNameLength()
		sideNode = make(map[types.NamePair]string)
	)
	plan = &refinePlan{}
	if g.UppercaseNames() {
		cs = naming.Upper
	}
	if g.RightJustifiedNames() {
		just = naming.Right
	}
	newName := func(num int, exists func(string) bool) (name string, err error) {
		name = g.ColumnNameFromNumber(num, just, cs)
		if len(name) > maxLen {
			err = fmt.Errorf("name %q for number %d: %w", name, num, ErrNameOverflow)
		} else if exists(name) {
			err = fmt.Errorf("generated name %q: %w", name, ErrDuplicate)
		}
		return
	}
	nodeExists := func(name string) bool { _, ok := g.nodes[name]; return ok }
	colExists := func(name string) bool { _, ok := g.columns[name]; return ok }
	addMidNode := func(n1, n2 *Node) (err error) {
		key := types.NewNamePair(n1.Name, n2.Name)
		if _, ok := sideNode[key]; ok {
			return
		}
		var name string
		if name, err = newName(nextNode, nodeExists); err != nil {
			return
		}
		nextNode++
		sideNode[key] = name
		plan.newNodes = append(plan.newNodes, NewNode(name, r2.Scale(0.5, r2.Add(n1.Pos, n2.Pos))))
		return
	}
	conKeys := make([]types.NamePair, 0, len(cons))
	for key := range cons {
		conKeys = append(conKeys, key)
	}
	sortPairs(conKeys)
	for _, key := range conKeys {
		con := cons[key]
		if len(con.Nodes) < 2 {
			continue
		}
		if err = addMidNode(con.Nodes[0], con.Nodes[1]); err != nil {
			return
		}
	}
	var affectedList []*Column
	for _, col := range g.columnList {
		if affected[col] {
			affectedList = append(affectedList, col)
		}
	}
	bdy := make(map[*Node]bool)
	for _, n := range g.BoundaryNodes() {
		bdy[n] = true
	}
	for _, col := range affectedList {
		nn := col.NumNodes()
		for i, n1 := range col.Nodes {
			n2 := col.Nodes[(i+1)%nn]
			if !bdy[n1] || !bdy[n2] {
				continue
			}
			if _, interior := g.ConnectionWithNodes(n1, n2); interior {
				continue
			}
			if err = addMidNode(n1, n2); err != nil {
				return
			}
		}
	}
	for _, col := range affectedList {
		nn := col.NumNodes()
		var refined []int
		for i, n1 := range col.Nodes {
			if _, ok := sideNode[types.NewNamePair(n1.Name, col.Nodes[(i+1)%nn].Name)]; ok {
				refined = append(refined, i)
			}
		}
		if len(refined) == 0 {
			continue
		}
		key, start, terr := transitionType(nn, refined)
		if terr != nil {
			return nil, fmt.Errorf("refining column %q: %w", col.Name, terr)
		}
		pattern, ok := transitionPatterns[key]
		if !ok {
			return nil, fmt.Errorf("refining column %q, %d of %d sides refined: %w",
				col.Name, key.refined, nn, ErrUnsupportedShape)
		}
		var centreName string
		if key.needsCentreNode() {
			if centreName, err = newName(nextNode, nodeExists); err != nil {
				return
			}
			nextNode++
			plan.newNodes = append(plan.newNodes, NewNode(centreName, col.Centre()))
		}
		nodeAt := func(k int) *Node { return col.Nodes[(start+k)%nn] }
		for _, sub := range pattern {
			var name string
			if name, err = newName(nextCol, colExists); err != nil {
				return
			}
			nextCol++
			pc := plannedColumn{name: name, parent: col}
			for _, v := range sub {
				switch v.kind {
				case cornerVertex:
					pc.nodes = append(pc.nodes, nodeAt(v.i).Name)
				case sideVertex:
					pc.nodes = append(pc.nodes, sideNode[types.NewNamePair(nodeAt(v.i).Name, nodeAt(v.j).Name)])
				case centreVertex:
					pc.nodes = append(pc.nodes, centreName)
				}
			}
			plan.newColumns = append(plan.newColumns, pc)
		}
		plan.deleted = append(plan.deleted, col)
	}
	sort.SliceStable(plan.deleted, func(i, j int) bool { return plan.deleted[i].Name < plan.deleted[j].Name })
	return plan, nil
}
