package spatialmath

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Jacobian is a 6×n matrix stored as its n spatial-vector columns.
type Jacobian []SpatialVector

// NewJacobian returns a zero Jacobian with n columns.
func NewJacobian(n int) Jacobian {
	return make(Jacobian, n)
}

// Cols returns the number of columns.
func (j Jacobian) Cols() int {
	return len(j)
}

// Mul returns J·x. It panics if x does not have one entry per column.
func (j Jacobian) Mul(x []float64) SpatialVector {
	if len(x) != len(j) {
		panic(fmt.Sprintf("jacobian has %d columns but got %d values", len(j), len(x)))
	}
	var out SpatialVector
	for i, col := range j {
		out = out.Add(col.Mul(x[i]))
	}
	return out
}

// AdTJacobian applies AdT column by column.
func AdTJacobian(t Transform, j Jacobian) Jacobian {
	out := make(Jacobian, len(j))
	for i, col := range j {
		out[i] = AdT(t, col)
	}
	return out
}

// Sub returns j - o. Both must have the same number of columns.
func (j Jacobian) Sub(o Jacobian) Jacobian {
	out := make(Jacobian, len(j))
	for i := range j {
		out[i] = j[i].Sub(o[i])
	}
	return out
}

// Scale multiplies every entry by s.
func (j Jacobian) Scale(s float64) Jacobian {
	out := make(Jacobian, len(j))
	for i := range j {
		out[i] = j[i].Mul(s)
	}
	return out
}

// Data returns the entries column-major.
func (j Jacobian) Data() []float64 {
	data := make([]float64, 0, 6*len(j))
	for _, col := range j {
		a := col.Array()
		data = append(data, a[:]...)
	}
	return data
}

// Dense returns the Jacobian as a 6×n gonum matrix. A zero-column Jacobian gives an empty matrix.
func (j Jacobian) Dense() *mat.Dense {
	if len(j) == 0 {
		return &mat.Dense{}
	}
	m := mat.NewDense(6, len(j), nil)
	for c, col := range j {
		a := col.Array()
		m.SetCol(c, a[:])
	}
	return m
}

// MaxAbsDiff returns the largest entrywise difference, or +Inf when the shapes differ.
func (j Jacobian) MaxAbsDiff(o Jacobian) float64 {
	if len(j) != len(o) {
		return math.Inf(1)
	}
	if len(j) == 0 {
		return 0
	}
	return floats.Distance(j.Data(), o.Data(), math.Inf(1))
}

// AlmostEqual compares shapes and every entry within tol.
func (j Jacobian) AlmostEqual(o Jacobian, tol float64) bool {
	return j.MaxAbsDiff(o) <= tol
}
