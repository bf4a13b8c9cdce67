package linalg

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/jet-ml/jet/internal/fwd"
	"github.com/jet-ml/jet/internal/ndarray"
)

// Apply multiplies a non-differentiated matrix into a rank-1 jet. The primal
// is M·x and, because the map is linear, each direction's derivative column
// is M times the corresponding column of x's derivative.
func Apply(m mat.Matrix, x *fwd.Jet) (*fwd.Jet, error) {
	r, c := m.Dims()
	s := x.Shape()
	if len(s) != 1 || s[0] != c {
		return nil, errors.Wrapf(ndarray.ErrShapeMismatch,
			"apply: %dx%d matrix against jet shape %v", r, c, s)
	}

	v, err := VecFromArray(x.Value())
	if err != nil {
		return nil, err
	}
	var y mat.VecDense
	y.MulVec(m, v)

	d := x.Directions()
	if d == 0 {
		return fwd.New(VecToArray(&y), ndarray.New(r, 0))
	}
	var dy mat.Dense
	dy.Mul(m, derivMatrix(x.Deriv()))
	return fwd.New(VecToArray(&y), ToArray(&dy))
}
