package mesh

import (
	"math"
	"sort"

	"github.com/notargets/mulgrid/geometry2D"
	"github.com/notargets/mulgrid/types"
	"github.com/notargets/mulgrid/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	newtonMaxIterations = 15
)

/*
Column is a polygonal cell of the horizontal mesh. Nodes are held in
counterclockwise order; a clockwise node list is reversed at construction.
*/
type Column struct {
	Name            string
	Nodes           []*Node
	CentreSpecified bool
	Area            float64
	DefaultSurface  bool
	NumLayers       int
	centre          r2.Vec
	surface         float64
	neighbours      map[string]*Column
	connections     map[types.NamePair]*Connection
}

// NewColumn creates a column over the nodes. The centre defaults to the mean
// of the node positions unless one is given.
func NewColumn(name string, nodes []*Node, centre ...r2.Vec) (col *Column) {
	col = &Column{
		Name:           name,
		Nodes:          append([]*Node{}, nodes...),
		DefaultSurface: true,
		neighbours:     make(map[string]*Column),
		connections:    make(map[types.NamePair]*Connection),
	}
	if len(centre) != 0 {
		col.centre = centre[0]
		col.CentreSpecified = true
	} else if len(nodes) != 0 {
		col.centre = col.Centroid()
	}
	col.Area = geometry2D.PolygonArea(col.Polygon())
	if col.Area < 0 {
		for l, r := 0, len(col.Nodes)-1; l < r; l, r = l+1, r-1 {
			col.Nodes[l], col.Nodes[r] = col.Nodes[r], col.Nodes[l]
		}
		col.Area = -col.Area
	}
	return
}

func (col *Column) String() string { return col.Name }

func (col *Column) NumNodes() int { return len(col.Nodes) }

func (col *Column) Centre() r2.Vec { return col.centre }

func (col *Column) SetCentre(c r2.Vec) {
	col.centre = c
	col.CentreSpecified = true
}

func (col *Column) Surface() float64 { return col.surface }

// SetSurface overrides the default surface elevation. The number of active
// layers is maintained by Grid.SetColumnSurface.
func (col *Column) SetSurface(z float64) {
	col.surface = z
	col.DefaultSurface = false
}

func (col *Column) Polygon() (poly []r2.Vec) {
	poly = make([]r2.Vec, len(col.Nodes))
	for i, n := range col.Nodes {
		poly[i] = n.Pos
	}
	return
}

// Centroid is the mean of the node positions
func (col *Column) Centroid() r2.Vec { return geometry2D.Mean(col.Polygon()) }

func (col *Column) BoundingBox() geometry2D.BoundingBox {
	return geometry2D.NewBoundingBox(col.Polygon())
}

// NearPoint is true when p lies within the column bounding box
func (col *Column) NearPoint(p r2.Vec) bool { return col.BoundingBox().PointInside(p) }

func (col *Column) ContainsPoint(p r2.Vec) bool {
	return geometry2D.PointInPolygon(p, col.Polygon())
}

// InPolygon is true when the column centre lies inside poly
func (col *Column) InPolygon(poly []r2.Vec) bool {
	return geometry2D.PointInPolygon(col.centre, poly)
}

// IsAgainst is true when the columns share more than one node
func (col *Column) IsAgainst(other *Column) bool {
	return len(col.sharedNodes(other)) > 1
}

// sharedNodes returns the nodes common to both columns, in this column's order
func (col *Column) sharedNodes(other *Column) (shared []*Node) {
	for _, n := range col.Nodes {
		if other.hasNode(n) {
			shared = append(shared, n)
		}
	}
	return
}

func (col *Column) hasNode(n *Node) bool {
	for _, cn := range col.Nodes {
		if cn == n {
			return true
		}
	}
	return false
}

func (col *Column) NumNeighbours() int { return len(col.neighbours) }

// Neighbours returns the connected columns ordered by name
func (col *Column) Neighbours() (nbrs []*Column) {
	nbrs = make([]*Column, 0, len(col.neighbours))
	for _, nbr := range col.neighbours {
		nbrs = append(nbrs, nbr)
	}
	sort.Slice(nbrs, func(i, j int) bool { return nbrs[i].Name < nbrs[j].Name })
	return
}

func (col *Column) IsNeighbour(other *Column) bool {
	_, ok := col.neighbours[other.Name]
	return ok
}

func (col *Column) Connections() (cons []*Connection) {
	cons = make([]*Connection, 0, len(col.connections))
	for _, con := range col.connections {
		cons = append(cons, con)
	}
	sort.Slice(cons, func(i, j int) bool { return cons[i].Key().String() < cons[j].Key().String() })
	return
}

// Sides returns the node to node vectors, side i ending at node i
func (col *Column) Sides() (sides []r2.Vec) {
	nn := col.NumNodes()
	sides = make([]r2.Vec, nn)
	for i := 0; i < nn; i++ {
		sides[i] = r2.Sub(col.Nodes[i].Pos, col.Nodes[(i+nn-1)%nn].Pos)
	}
	return
}

func (col *Column) ExteriorAngles() (angles []float64) {
	var (
		sides = col.Sides()
		nn    = len(sides)
		h     = make([]float64, nn)
	)
	for i, s := range sides {
		h[i] = geometry2D.VectorHeading(s)
	}
	angles = make([]float64, nn)
	for i := range angles {
		a := math.Pi - (h[(i+1)%nn] - h[i])
		angles[i] = math.Mod(a, 2*math.Pi)
		if angles[i] < 0 {
			angles[i] += 2 * math.Pi
		}
	}
	return
}

func (col *Column) InteriorAngles() (angles []float64) {
	angles = col.ExteriorAngles()
	for i, a := range angles {
		angles[i] = 2*math.Pi - a
	}
	return
}

// AngleRatio is the ratio of the largest to the smallest interior angle
func (col *Column) AngleRatio() float64 {
	angles := col.InteriorAngles()
	return floats.Max(angles) / floats.Min(angles)
}

// SideRatio is the ratio of the longest to the shortest side
func (col *Column) SideRatio() float64 {
	sides := col.Sides()
	l := make([]float64, len(sides))
	for i, s := range sides {
		l[i] = r2.Norm(s)
	}
	return floats.Max(l) / floats.Min(l)
}

/*
Basis returns the finite element basis functions at local coordinate xi:
barycentric for triangles, bilinear over [-1,1]x[-1,1] for quadrilaterals.
Other shapes have no basis.
*/
func (col *Column) Basis(xi r2.Vec) (psi []float64) {
	switch col.NumNodes() {
	case 3:
		psi = []float64{xi.X, xi.Y, 1 - xi.X - xi.Y}
	case 4:
		a0, a1, b0, b1 := 1-xi.X, 1+xi.X, 1-xi.Y, 1+xi.Y
		psi = []float64{0.25 * a0 * b0, 0.25 * a1 * b0, 0.25 * a1 * b1, 0.25 * a0 * b1}
	}
	return
}

// BasisDerivatives returns d(psi_k)/d(xi_j) as row k
func (col *Column) BasisDerivatives(xi r2.Vec) (dpsi [][2]float64) {
	switch col.NumNodes() {
	case 3:
		dpsi = [][2]float64{{1, 0}, {0, 1}, {-1, -1}}
	case 4:
		a0, a1, b0, b1 := 1-xi.X, 1+xi.X, 1-xi.Y, 1+xi.Y
		dpsi = [][2]float64{
			{-0.25 * b0, -0.25 * a0},
			{0.25 * b0, -0.25 * a1},
			{0.25 * b1, 0.25 * a1},
			{-0.25 * b1, 0.25 * a0},
		}
	}
	return
}

// Jacobian returns d(x_i)/d(xi_j) at local coordinate xi
func (col *Column) Jacobian(xi r2.Vec) (J *mat.Dense) {
	J = mat.NewDense(2, 2, nil)
	for k, dp := range col.BasisDerivatives(xi) {
		pos := col.Nodes[k].Pos
		for j := 0; j < 2; j++ {
			J.Set(0, j, J.At(0, j)+dp[j]*pos.X)
			J.Set(1, j, J.At(1, j)+dp[j]*pos.Y)
		}
	}
	return
}

// GlobalPos maps local coordinate xi to a horizontal position
func (col *Column) GlobalPos(xi r2.Vec) (p r2.Vec) {
	for i, psi := range col.Basis(xi) {
		p = r2.Add(p, r2.Scale(psi, col.Nodes[i].Pos))
	}
	return
}

// LocalInside tests whether a local coordinate lies in the reference element
func (col *Column) LocalInside(xi r2.Vec) bool {
	switch col.NumNodes() {
	case 3:
		return xi.X >= 0 && xi.Y >= 0 && xi.X+xi.Y <= 1
	case 4:
		return math.Abs(xi.X) <= 1 && math.Abs(xi.Y) <= 1
	}
	return false
}

/*
LocalPos inverts GlobalPos with Newton iteration. It fails if the column is
not a triangle or quadrilateral, the Jacobian is singular, the iteration does
not converge, or the converged point is outside the reference element.
*/
func (col *Column) LocalPos(p r2.Vec) (xi r2.Vec, ok bool) {
	switch col.NumNodes() {
	case 3:
		xi = r2.Vec{X: 1. / 3, Y: 1. / 3}
	case 4:
		xi = r2.Vec{}
	default:
		return r2.Vec{}, false
	}
	var (
		found bool
		step  mat.VecDense
	)
	for n := 0; n < newtonMaxIterations; n++ {
		dx := r2.Sub(col.GlobalPos(xi), p)
		if r2.Norm(dx) <= utils.NEWTONTOL {
			found = true
			break
		}
		J := col.Jacobian(xi)
		if mat.Det(J) == 0 {
			break
		}
		if err := step.SolveVec(J, mat.NewVecDense(2, []float64{dx.X, dx.Y})); err != nil {
			if _, ill := err.(mat.Condition); !ill {
				break
			}
		}
		xi = r2.Sub(xi, r2.Vec{X: step.AtVec(0), Y: step.AtVec(1)})
	}
	if !found || !col.LocalInside(xi) {
		return r2.Vec{}, false
	}
	return xi, true
}
