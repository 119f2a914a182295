package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparse(t *testing.T) {
	{ // Assembly accumulates into entries
		A := NewDOK(2, 2)
		A.AddAt(0, 0, 1)
		A.AddAt(0, 0, 2)
		A.AddAt(1, 1, 0)
		assert.Equal(t, 3., A.At(0, 0))
		assert.Equal(t, 0., A.At(1, 1))
		Ar := A.SetReadOnly("A")
		assert.Panics(t, func() { Ar.AddAt(0, 1, 1) })
	}
	{ // CG on the 1D Laplacian
		n := 20
		A := NewDOK(n, n)
		for i := 0; i < n; i++ {
			A.AddAt(i, i, 2)
			if i > 0 {
				A.AddAt(i, i-1, -1)
			}
			if i < n-1 {
				A.AddAt(i, i+1, -1)
			}
		}
		Acsr := A.ToCSR()
		xExact := make([]float64, n)
		for i := range xExact {
			xExact[i] = float64(i*i) * 0.01
		}
		b := Acsr.MulVec(xExact)
		x := make([]float64, n)
		res, err := SolveCG(Acsr, b, x, 1.e-12, 200)
		require.NoError(t, err)
		assert.LessOrEqual(t, res.Residual, 1.e-12)
		assert.InDeltaSlice(t, xExact, x, 1.e-8)
		assert.Equal(t, []float64{2, 2}, Acsr.Diagonal()[:2])
	}
	{ // Failing to converge names the matrix
		A := NewDOK(2, 2)
		A.AddAt(0, 0, 1)
		A.AddAt(1, 1, 1)
		A = A.SetReadOnly("A")
		_, err := SolveCG(A.ToCSR(), []float64{1, 1}, []float64{0, 0}, 1.e-8, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"A"`)
	}
	{ // Dimension mismatch is an error
		A := NewDOK(2, 2)
		A.AddAt(0, 0, 1)
		A.AddAt(1, 1, 1)
		_, err := SolveCG(A.ToCSR(), []float64{1, 1}, []float64{0}, 1.e-8, 10)
		assert.Error(t, err)
	}
	{ // Zero right hand side returns immediately
		A := NewDOK(1, 1)
		A.AddAt(0, 0, 4)
		x := []float64{0}
		res, err := SolveCG(A.ToCSR(), []float64{0}, x, 1.e-8, 10)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Iterations)
	}
}

func TestSystem(t *testing.T) {
	assert.Contains(t, GetMemUsage(), "MiB")
	assert.False(t, IsNan([]float64{1, 2}))
	assert.True(t, IsNan([]float64{1, math.NaN()}))
	assert.True(t, IsNan(math.NaN()))
}
