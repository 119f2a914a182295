package geometry2D

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// LinearTrans2 is an affine map x -> A x + B in the plane
type LinearTrans2 struct {
	A *mat.Dense
	B r2.Vec
}

func NewIdentity() (lt LinearTrans2) {
	return LinearTrans2{A: mat.NewDense(2, 2, []float64{1, 0, 0, 1})}
}

// NewRotation returns a rigid rotation by angle degrees clockwise about centre
func NewRotation(angle float64, centre r2.Vec) (lt LinearTrans2) {
	theta := angle * math.Pi / 180
	c, s := math.Cos(theta), math.Sin(theta)
	lt.A = mat.NewDense(2, 2, []float64{
		c, s,
		-s, c,
	})
	lt.B = r2.Sub(centre, lt.linear(centre))
	return
}

func (lt LinearTrans2) linear(p r2.Vec) r2.Vec {
	var v mat.VecDense
	v.MulVec(lt.A, mat.NewVecDense(2, []float64{p.X, p.Y}))
	return r2.Vec{X: v.AtVec(0), Y: v.AtVec(1)}
}

func (lt LinearTrans2) Apply(p r2.Vec) r2.Vec {
	return r2.Add(lt.linear(p), lt.B)
}
