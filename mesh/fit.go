package mesh

import (
	"fmt"

	"github.com/notargets/mulgrid/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	fitTolerance     = 1.e-10
	fitIterationsPer = 10
)

type FitOptions struct {
	// Alpha and Beta weight the first and second derivative smoothing
	Alpha, Beta float64
	// Columns to fit, all columns if empty
	Columns []string
	// MinColumns take the minimum of their fitted nodal elevations,
	// other columns take the mean
	MinColumns []string
	// GridBoundary skips data outside the grid boundary polygon
	GridBoundary bool
	Silent       bool
}

func DefaultFitOptions() FitOptions {
	return FitOptions{Alpha: 0.1, Beta: 0.1}
}

// smoothingMatrix returns the Sobolev smoothing stencil of a triangle or quadrilateral
func smoothingMatrix(nn int, alpha, beta float64) (S [][]float64) {
	switch nn {
	case 3:
		S = [][]float64{{1, 0, -1}, {0, 1, -1}, {-1, -1, 2}}
		for i := range S {
			floats.Scale(0.5*alpha, S[i])
		}
	case 4:
		first := [][]float64{{4, -1, -2, -1}, {-1, 4, -1, -2}, {-2, -1, 4, -1}, {-1, -2, -1, 4}}
		second := [][]float64{{1, -1, 1, -1}, {-1, 1, -1, 1}, {1, -1, 1, -1}, {-1, 1, -1, 1}}
		S = make([][]float64, 4)
		for i := range S {
			S[i] = make([]float64, 4)
			floats.AddScaled(S[i], alpha/6, first[i])
			floats.AddScaled(S[i], beta, second[i])
		}
	}
	return
}

/*
FitSurface fits column surface elevations to scattered (x,y,z) data by
least squares finite element fitting with Sobolev smoothing. A sparse system
over the nodes of the fitted columns is assembled from the basis functions at
each data point plus a smoothing stencil per column, and solved once for the
nodal elevations. Each fitted column then takes the mean (or minimum) of its
nodal elevations as its surface.
*/
func (g *Grid) FitSurface(data []r3.Vec, opts FitOptions) (err error) {
	var cols []*Column
	if len(opts.Columns) == 0 {
		cols = g.Columns()
	} else {
		for _, name := range opts.Columns {
			col, ok := g.columns[name]
			if !ok {
				return fmt.Errorf("column %q: %w", name, ErrNotFound)
			}
			cols = append(cols, col)
		}
	}
	for _, col := range cols {
		if nn := col.NumNodes(); nn != 3 && nn != 4 {
			return fmt.Errorf("fitting column %q with %d nodes: %w", col.Name, nn, ErrUnsupportedShape)
		}
	}
	if len(cols) == 0 {
		return
	}
	var (
		nodeIndex = make(map[*Node]int)
		minCols   = make(map[string]bool)
	)
	for _, col := range cols {
		for _, n := range col.Nodes {
			if _, ok := nodeIndex[n]; !ok {
				nodeIndex[n] = len(nodeIndex)
			}
		}
	}
	for _, name := range opts.MinColumns {
		minCols[name] = true
	}
	A, b := g.assembleFit(cols, nodeIndex, data, opts)
	z := make([]float64, len(b))
	if _, err = utils.SolveCG(A.ToCSR(), b, z, fitTolerance, fitIterationsPer*len(b)+100); err != nil {
		return fmt.Errorf("fitting surface: %w", err)
	}
	if utils.IsNan(z) {
		return fmt.Errorf("fitting surface: solution is not a number")
	}
	for _, col := range cols {
		nodeZ := make([]float64, col.NumNodes())
		for i, n := range col.Nodes {
			nodeZ[i] = z[nodeIndex[n]]
		}
		var surf float64
		if minCols[col.Name] {
			surf = floats.Min(nodeZ)
		} else {
			surf = floats.Sum(nodeZ) / float64(len(nodeZ))
		}
		col.SetSurface(surf)
		col.NumLayers = g.activeLayers(surf)
	}
	g.SetupBlockNameIndex()
	return
}

// assembleFit builds the read only fitting matrix and right hand side over
// the nodes numbered by nodeIndex
func (g *Grid) assembleFit(cols []*Column, nodeIndex map[*Node]int, data []r3.Vec,
	opts FitOptions) (A utils.DOK, b []float64) {
	var (
		nNodes  = len(nodeIndex)
		ps      = &PointSearch{Columns: cols, Index: g.NewQuadTree(cols...)}
		nd      = len(data)
		percent = -1
	)
	A, b = utils.NewDOK(nNodes, nNodes), make([]float64, nNodes)
	if opts.GridBoundary {
		ps.Boundary = g.BoundaryPolygon()
	}
	for id, d := range data {
		if !opts.Silent && g.Out != nil {
			if p := 100 * id / nd; p != percent {
				percent = p
				fmt.Fprintf(g.Out, "fit_surface %3d%% done\r", percent)
			}
		}
		col, ok := g.ColumnContainingPoint(r2.Vec{X: d.X, Y: d.Y}, ps)
		if !ok {
			continue
		}
		xi, ok := col.LocalPos(r2.Vec{X: d.X, Y: d.Y})
		if !ok {
			continue
		}
		ps.Guess = col
		psi := col.Basis(xi)
		for i, ni := range col.Nodes {
			I := nodeIndex[ni]
			for j, nj := range col.Nodes {
				A.AddAt(I, nodeIndex[nj], psi[i]*psi[j])
			}
			b[I] += psi[i] * d.Z
		}
	}
	if !opts.Silent && g.Out != nil && nd > 0 {
		fmt.Fprintf(g.Out, "fit_surface 100%% done\n")
	}
	for _, col := range cols {
		S := smoothingMatrix(col.NumNodes(), opts.Alpha, opts.Beta)
		for i, ni := range col.Nodes {
			for j, nj := range col.Nodes {
				A.AddAt(nodeIndex[ni], nodeIndex[nj], S[i][j])
			}
		}
	}
	return A.SetReadOnly("fit_surface"), b
}
