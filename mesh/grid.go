package mesh

import (
	"fmt"
	"io"
	"os"

	"github.com/notargets/mulgrid/geometry2D"
	"github.com/notargets/mulgrid/naming"
	"github.com/notargets/mulgrid/types"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	DefaultGridType             = "GENER"
	DefaultAtmosphereVolume     = 1.e25
	DefaultAtmosphereConnection = 1.e-6
)

var unitScales = map[string]float64{
	"":      1.0,
	"FEET ": 0.3048,
}

/*
Grid owns the nodes, columns, layers, connections and wells of a layered
mesh. Ordered lists preserve insertion order; the name maps are the lookup
indices. All structural changes go through the Add and Delete methods so that
node to column, column to connection and neighbour references stay symmetric.
*/
type Grid struct {
	Type                 string
	AtmosphereVolume     float64
	AtmosphereConnection float64
	PermeabilityAngle    float64
	// Out receives reports from the checker, fitter and readers
	Out io.Writer

	convention     naming.Convention
	atmosphereType types.AtmosphereType
	unitType       string

	nodeList       []*Node
	nodes          map[string]*Node
	columnList     []*Column
	columns        map[string]*Column
	layerList      []*Layer
	layers         map[string]*Layer
	connectionList []*Connection
	connections    map[types.NamePair]*Connection
	wellList       []*Well
	wells          map[string]*Well

	blockNameList  []string
	blockNameIndex map[string]int
}

func NewGrid(convention naming.Convention, atmos types.AtmosphereType) (g *Grid) {
	g = &Grid{
		Type:                 DefaultGridType,
		AtmosphereVolume:     DefaultAtmosphereVolume,
		AtmosphereConnection: DefaultAtmosphereConnection,
		Out:                  os.Stdout,
		convention:           convention,
		atmosphereType:       atmos,
	}
	g.Empty()
	return
}

// Empty removes all grid contents, keeping the header options
func (g *Grid) Empty() {
	g.nodeList, g.nodes = nil, make(map[string]*Node)
	g.columnList, g.columns = nil, make(map[string]*Column)
	g.layerList, g.layers = nil, make(map[string]*Layer)
	g.connectionList, g.connections = nil, make(map[types.NamePair]*Connection)
	g.wellList, g.wells = nil, make(map[string]*Well)
	g.blockNameList, g.blockNameIndex = nil, make(map[string]int)
}

func (g *Grid) Convention() naming.Convention { return g.convention }

// SetConvention changes the naming convention and rebuilds the block names
func (g *Grid) SetConvention(c naming.Convention) {
	g.convention = c
	g.SetupBlockNameIndex()
}

func (g *Grid) AtmosphereType() types.AtmosphereType { return g.atmosphereType }

func (g *Grid) SetAtmosphereType(at types.AtmosphereType) {
	g.atmosphereType = at
	g.SetupBlockNameIndex()
}

// AtmosphereColumnName is the column part of the single atmosphere block name
func (g *Grid) AtmosphereColumnName() string { return g.convention.AtmosphereColumnName() }

func (g *Grid) UnitType() string { return g.unitType }

func (g *Grid) SetUnitType(unit string) error {
	if _, ok := unitScales[unit]; !ok {
		return fmt.Errorf("unit type %q: %w", unit, ErrNotFound)
	}
	g.unitType = unit
	return nil
}

// UnitScale converts file coordinates to metres
func (g *Grid) UnitScale() float64 { return unitScales[g.unitType] }

func (g *Grid) String() string {
	var atm string
	switch g.atmosphereType {
	case types.AtmosphereSingle:
		atm = "single atmosphere block"
	case types.AtmosphereColumns:
		atm = "one atmosphere block over each column"
	default:
		atm = "no atmosphere blocks"
	}
	return fmt.Sprintf("%d nodes; %d columns; %d layers; %d blocks; %d wells\n"+
		"Naming convention: %s\nAtmosphere type: %s",
		g.NumNodes(), g.NumColumns(), g.NumLayers(), g.NumBlocks(), g.NumWells(),
		g.convention, atm)
}

func (g *Grid) NumNodes() int       { return len(g.nodeList) }
func (g *Grid) NumColumns() int     { return len(g.columnList) }
func (g *Grid) NumLayers() int      { return len(g.layerList) }
func (g *Grid) NumConnections() int { return len(g.connectionList) }
func (g *Grid) NumWells() int       { return len(g.wellList) }

func (g *Grid) Nodes() []*Node             { return append([]*Node{}, g.nodeList...) }
func (g *Grid) Columns() []*Column         { return append([]*Column{}, g.columnList...) }
func (g *Grid) Layers() []*Layer           { return append([]*Layer{}, g.layerList...) }
func (g *Grid) Connections() []*Connection { return append([]*Connection{}, g.connectionList...) }
func (g *Grid) Wells() []*Well             { return append([]*Well{}, g.wellList...) }

func (g *Grid) Node(name string) (n *Node, ok bool) {
	n, ok = g.nodes[name]
	return
}

func (g *Grid) Column(name string) (col *Column, ok bool) {
	col, ok = g.columns[name]
	return
}

func (g *Grid) Layer(name string) (lay *Layer, ok bool) {
	lay, ok = g.layers[name]
	return
}

func (g *Grid) Connection(colName1, colName2 string) (con *Connection, ok bool) {
	con, ok = g.connections[types.NewNamePair(colName1, colName2)]
	return
}

func (g *Grid) Well(name string) (wl *Well, ok bool) {
	wl, ok = g.wells[name]
	return
}

// SurfaceLayer is the first (atmosphere) layer, nil for a grid without layers
func (g *Grid) SurfaceLayer() *Layer {
	if len(g.layerList) == 0 {
		return nil
	}
	return g.layerList[0]
}

func (g *Grid) ColumnIndex() (index map[string]int) {
	index = make(map[string]int, len(g.columnList))
	for i, col := range g.columnList {
		index[col.Name] = i
	}
	return
}

func (g *Grid) LayerIndex() (index map[string]int) {
	index = make(map[string]int, len(g.layerList))
	for i, lay := range g.layerList {
		index[lay.Name] = i
	}
	return
}

// Connects is true if a connection joins the two columns
func (g *Grid) Connects(col1, col2 *Column) bool {
	_, ok := g.connections[types.NewNamePair(col1.Name, col2.Name)]
	return ok
}

func (g *Grid) AddNode(n *Node) error {
	if _, ok := g.nodes[n.Name]; ok {
		return fmt.Errorf("node %q: %w", n.Name, ErrDuplicate)
	}
	if n.columns == nil {
		n.columns = make(map[string]*Column)
	}
	g.nodeList = append(g.nodeList, n)
	g.nodes[n.Name] = n
	return nil
}

// DeleteNode removes a node that no longer belongs to any column
func (g *Grid) DeleteNode(name string) error {
	n, ok := g.nodes[name]
	if !ok {
		return fmt.Errorf("node %q: %w", name, ErrNotFound)
	}
	if n.NumColumns() > 0 {
		return fmt.Errorf("deleting node %q: %w", name, ErrNodeInUse)
	}
	delete(g.nodes, name)
	g.nodeList = removeItem(g.nodeList, n)
	return nil
}

// AddColumn adds a column whose nodes must already belong to the grid
func (g *Grid) AddColumn(col *Column) error {
	if _, ok := g.columns[col.Name]; ok {
		return fmt.Errorf("column %q: %w", col.Name, ErrDuplicate)
	}
	for _, n := range col.Nodes {
		if gn, ok := g.nodes[n.Name]; !ok || gn != n {
			return fmt.Errorf("node %q of column %q: %w", n.Name, col.Name, ErrNotFound)
		}
	}
	if col.neighbours == nil {
		col.neighbours = make(map[string]*Column)
	}
	if col.connections == nil {
		col.connections = make(map[types.NamePair]*Connection)
	}
	g.columnList = append(g.columnList, col)
	g.columns[col.Name] = col
	for _, n := range col.Nodes {
		n.columns[col.Name] = col
	}
	return nil
}

// DeleteColumn removes a column with its connections, neighbour references
// and node references. Nodes left orphaned remain in the grid.
func (g *Grid) DeleteColumn(name string) error {
	col, ok := g.columns[name]
	if !ok {
		return fmt.Errorf("column %q: %w", name, ErrNotFound)
	}
	for _, con := range col.Connections() {
		if err := g.DeleteConnection(con.Columns[0].Name, con.Columns[1].Name); err != nil {
			return err
		}
	}
	for _, nbr := range col.neighbours {
		delete(nbr.neighbours, name)
	}
	col.neighbours = make(map[string]*Column)
	for _, n := range col.Nodes {
		delete(n.columns, name)
	}
	delete(g.columns, name)
	g.columnList = removeItem(g.columnList, col)
	return nil
}

func (g *Grid) AddLayer(lay *Layer) error {
	if _, ok := g.layers[lay.Name]; ok {
		return fmt.Errorf("layer %q: %w", lay.Name, ErrDuplicate)
	}
	g.layerList = append(g.layerList, lay)
	g.layers[lay.Name] = lay
	return nil
}

func (g *Grid) DeleteLayer(name string) error {
	lay, ok := g.layers[name]
	if !ok {
		return fmt.Errorf("layer %q: %w", name, ErrNotFound)
	}
	delete(g.layers, name)
	g.layerList = removeItem(g.layerList, lay)
	return nil
}

func (g *Grid) RenameLayer(oldName, newName string) error {
	lay, ok := g.layers[oldName]
	if !ok {
		return fmt.Errorf("layer %q: %w", oldName, ErrNotFound)
	}
	if oldName == newName {
		return nil
	}
	if _, ok = g.layers[newName]; ok {
		return fmt.Errorf("layer %q: %w", newName, ErrDuplicate)
	}
	lay.Name = newName
	delete(g.layers, oldName)
	g.layers[newName] = lay
	return nil
}

// AddConnection connects two columns of the grid, which become neighbours
func (g *Grid) AddConnection(colName1, colName2 string) (con *Connection, err error) {
	var (
		key      = types.NewNamePair(colName1, colName2)
		col1, c1 = g.columns[colName1]
		col2, c2 = g.columns[colName2]
	)
	switch {
	case !c1:
		err = fmt.Errorf("column %q: %w", colName1, ErrNotFound)
	case !c2:
		err = fmt.Errorf("column %q: %w", colName2, ErrNotFound)
	case col1 == col2:
		err = fmt.Errorf("connection of column %q to itself", colName1)
	}
	if err != nil {
		return
	}
	if _, ok := g.connections[key]; ok {
		err = fmt.Errorf("connection %s: %w", key, ErrDuplicate)
		return
	}
	con = newConnection(col1, col2)
	g.connectionList = append(g.connectionList, con)
	g.connections[key] = con
	col1.connections[key], col2.connections[key] = con, con
	col1.neighbours[col2.Name], col2.neighbours[col1.Name] = col2, col1
	return
}

func (g *Grid) DeleteConnection(colName1, colName2 string) error {
	key := types.NewNamePair(colName1, colName2)
	con, ok := g.connections[key]
	if !ok {
		return fmt.Errorf("connection %s: %w", key, ErrNotFound)
	}
	col1, col2 := con.Columns[0], con.Columns[1]
	delete(col1.connections, key)
	delete(col2.connections, key)
	delete(col1.neighbours, col2.Name)
	delete(col2.neighbours, col1.Name)
	delete(g.connections, key)
	g.connectionList = removeItem(g.connectionList, con)
	return nil
}

func (g *Grid) AddWell(wl *Well) error {
	if _, ok := g.wells[wl.Name]; ok {
		return fmt.Errorf("well %q: %w", wl.Name, ErrDuplicate)
	}
	g.wellList = append(g.wellList, wl)
	g.wells[wl.Name] = wl
	return nil
}

func (g *Grid) DeleteWell(name string) error {
	wl, ok := g.wells[name]
	if !ok {
		return fmt.Errorf("well %q: %w", name, ErrNotFound)
	}
	delete(g.wells, name)
	g.wellList = removeItem(g.wellList, wl)
	return nil
}

// DeleteOrphanWells deletes wells whose heads are not inside the grid
func (g *Grid) DeleteOrphanWells() (deleted []string) {
	for _, wl := range g.Wells() {
		head := wl.Head()
		if _, ok := g.ColumnContainingPoint(r2.Vec{X: head.X, Y: head.Y}, nil); !ok {
			_ = g.DeleteWell(wl.Name)
			deleted = append(deleted, wl.Name)
		}
	}
	return
}

// IdentifyNeighbours rebuilds the neighbour sets from the connections
func (g *Grid) IdentifyNeighbours() {
	for _, col := range g.columnList {
		col.neighbours = make(map[string]*Column)
	}
	for _, con := range g.connectionList {
		col1, col2 := con.Columns[0], con.Columns[1]
		col1.neighbours[col2.Name], col2.neighbours[col1.Name] = col2, col1
	}
}

// IdentifyLayerTops sets each layer top to the bottom of the layer above.
// The surface layer top equals its bottom.
func (g *Grid) IdentifyLayerTops() {
	for i, lay := range g.layerList {
		if i == 0 {
			lay.Top = lay.Bottom
		} else {
			lay.Top = g.layerList[i-1].Bottom
		}
	}
}

// SetDefaultSurface puts every column surface at the bottom of the surface layer
func (g *Grid) SetDefaultSurface() {
	var ground float64
	if lay := g.SurfaceLayer(); lay != nil {
		ground = lay.Bottom
	}
	for _, col := range g.columnList {
		col.surface = ground
		col.DefaultSurface = true
		col.NumLayers = max(g.NumLayers()-1, 0)
	}
}

// DefaultSurface is true when no column overrides the default surface
func (g *Grid) DefaultSurface() bool {
	for _, col := range g.columnList {
		if !col.DefaultSurface {
			return false
		}
	}
	return true
}

// activeLayers counts the layers below the surface layer with bottoms below z
func (g *Grid) activeLayers(z float64) (n int) {
	for i, lay := range g.layerList {
		if i > 0 && lay.Bottom < z {
			n++
		}
	}
	return
}

// SetColumnSurface overrides a column surface and updates its active layers
func (g *Grid) SetColumnSurface(name string, z float64) error {
	col, ok := g.columns[name]
	if !ok {
		return fmt.Errorf("column %q: %w", name, ErrNotFound)
	}
	col.SetSurface(z)
	col.NumLayers = g.activeLayers(z)
	return nil
}

func (g *Grid) Area() (area float64) {
	for _, col := range g.columnList {
		area += col.Area
	}
	return
}

// Centre is the area weighted mean of the column centres
func (g *Grid) Centre() (c r2.Vec, ok bool) {
	area := g.Area()
	if len(g.columnList) == 0 || area == 0 {
		return
	}
	for _, col := range g.columnList {
		c = r2.Add(c, r2.Scale(col.Area, col.Centre()))
	}
	return r2.Scale(1/area, c), true
}

// Bounds is the horizontal bounding box of the nodes
func (g *Grid) Bounds() geometry2D.BoundingBox {
	pts := make([]r2.Vec, len(g.nodeList))
	for i, n := range g.nodeList {
		pts[i] = n.Pos
	}
	return geometry2D.NewBoundingBox(pts)
}

func (g *Grid) ColumnAngleRatios() (ratios []float64) {
	for _, col := range g.columnList {
		ratios = append(ratios, col.AngleRatio())
	}
	return
}

func (g *Grid) ColumnSideRatios() (ratios []float64) {
	for _, col := range g.columnList {
		ratios = append(ratios, col.SideRatio())
	}
	return
}

func (g *Grid) ConnectionAngleCosines() (cosines []float64) {
	for _, con := range g.connectionList {
		cosines = append(cosines, con.AngleCosine())
	}
	return
}

// ColumnsInPolygon returns the columns with centres inside poly
func (g *Grid) ColumnsInPolygon(poly []r2.Vec) (cols []*Column) {
	for _, col := range g.columnList {
		if col.InPolygon(poly) {
			cols = append(cols, col)
		}
	}
	return
}

func (g *Grid) NodesInPolygon(poly []r2.Vec) (nodes []*Node) {
	for _, n := range g.nodeList {
		if geometry2D.PointInPolygon(n.Pos, poly) {
			nodes = append(nodes, n)
		}
	}
	return
}

func (g *Grid) ColumnNameFromNumber(num int, j naming.Justification, cs naming.Case) string {
	return g.convention.ColumnNameFromNumber(num, j, cs)
}

func (g *Grid) ColumnNumberFromName(name string) (int, error) {
	return g.convention.ColumnNumberFromName(name)
}

// nameSamples are the names whose character parts determine the naming
// style: block names when there are any, otherwise column names
func (g *Grid) nameSamples() (names []string) {
	if len(g.blockNameList) > 0 {
		for _, blk := range g.blockNameList {
			names = append(names, naming.Justify(blk, 5, naming.Left)[0:3])
		}
		return
	}
	for _, col := range g.columnList {
		names = append(names, col.Name)
	}
	return
}

// UppercaseNames is true if the character parts of the names are upper case
func (g *Grid) UppercaseNames() bool {
	for _, name := range g.nameSamples() {
		for _, ch := range name {
			if ch >= 'a' && ch <= 'z' {
				return false
			}
		}
	}
	return true
}

// RightJustifiedNames is true if the character parts of the names carry no
// trailing blanks
func (g *Grid) RightJustifiedNames() bool {
	for _, name := range g.nameSamples() {
		if len(name) > 0 && name[len(name)-1] == ' ' {
			return false
		}
	}
	return true
}

func removeItem[T comparable](list []T, item T) []T {
	for i, it := range list {
		if it == item {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
