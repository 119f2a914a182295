package utils

import (
	"fmt"
	"math"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

type DOK struct {
	M        *sparse.DOK
	readOnly bool
	name     string
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		sparse.NewDOK(nr, nc),
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims and At minimally satisfy the mat.Matrix interface, with T.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }

func (m DOK) SetReadOnly(name ...string) DOK {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return m
}

// AddAt accumulates val into the (i,j) entry, used when assembling element
// contributions into a global matrix
func (m DOK) AddAt(i, j int, val float64) {
	m.checkWritable()
	if val == 0 {
		return
	}
	m.M.Set(i, j, m.M.At(i, j)+val)
}

func (m DOK) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

func (m DOK) ToCSR() CSR {
	return CSR{
		M:    m.M.ToCSR(),
		name: m.name,
	}
}

type CSR struct {
	M    *sparse.CSR
	name string
}

func (m CSR) Name() string        { return m.name }
func (m CSR) Dims() (r, c int)    { return m.M.Dims() }
func (m CSR) At(i, j int) float64 { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix       { return m.M.T() }

// MulVec returns A*x in a new slice
func (m CSR) MulVec(x []float64) (y []float64) {
	nr, _ := m.Dims()
	y = make([]float64, nr)
	m.M.MulVecTo(y, false, x)
	return
}

// Diagonal returns the diagonal entries of the square matrix
func (m CSR) Diagonal() (d []float64) {
	nr, _ := m.Dims()
	d = make([]float64, nr)
	m.M.DoNonZero(func(i, j int, v float64) {
		if i == j {
			d[i] = v
		}
	})
	return
}

type CGResult struct {
	Iterations int
	Residual   float64
}

/*
SolveCG solves A.x = b with the Jacobi preconditioned conjugate gradient method,
for a symmetric positive (semi) definite A. x holds the initial guess on entry
and the solution on exit. Converges when |r| <= tol*|b|.
*/
func SolveCG(A CSR, b, x []float64, tol float64, maxIter int) (res CGResult, err error) {
	var (
		n    = len(b)
		diag = A.Diagonal()
		r    = make([]float64, n)
		z    = make([]float64, n)
		p    = make([]float64, n)
		Ap   = make([]float64, n)
	)
	if len(x) != n {
		err = fmt.Errorf("dimension mismatch: len(x) = %d, len(b) = %d", len(x), n)
		return
	}
	precondition := func() {
		for i := range r {
			if diag[i] != 0 {
				z[i] = r[i] / diag[i]
			} else {
				z[i] = r[i]
			}
		}
	}
	bNorm := floats.Norm(b, 2)
	if bNorm == 0 {
		bNorm = 1
	}
	A.M.MulVecTo(Ap, false, x)
	floats.SubTo(r, b, Ap)
	precondition()
	copy(p, z)
	rz := floats.Dot(r, z)
	for res.Iterations = 0; res.Iterations < maxIter; res.Iterations++ {
		res.Residual = floats.Norm(r, 2) / bNorm
		if res.Residual <= tol {
			return
		}
		for i := range Ap {
			Ap[i] = 0
		}
		A.M.MulVecTo(Ap, false, p)
		pAp := floats.Dot(p, Ap)
		if pAp <= 0 || math.IsNaN(pAp) {
			// Search direction lies in the null space, nothing more to gain
			return
		}
		alpha := rz / pAp
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, Ap)
		precondition()
		rzNew := floats.Dot(r, z)
		beta := rzNew / rz
		rz = rzNew
		for i := range p {
			p[i] = z[i] + beta*p[i]
		}
	}
	res.Residual = floats.Norm(r, 2) / bNorm
	if res.Residual > tol {
		err = fmt.Errorf("conjugate gradient on %q did not converge in %d iterations, residual = %8.5g",
			A.name, maxIter, res.Residual)
	}
	return
}
