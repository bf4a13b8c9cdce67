// Package linalg bridges jets to an external dense linear-algebra
// collaborator built on gonum/mat. The collaborator only ever sees primal
// float64 storage; this package batches it over the trailing direction axis
// so that matrix application and system solving propagate derivatives.
package linalg

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"k8s.io/klog/v2"

	"github.com/jet-ml/jet/internal/ndarray"
)

// ErrSingularSystem indicates a linear solve against an exactly singular
// matrix. Ill-conditioned but numerically solvable systems do not raise it;
// they succeed with a logged warning.
var ErrSingularSystem = errors.New("singular system")

// FromArray converts a rank-2 array into a dense gonum matrix. The matrix
// gets its own storage, so later writes to either side stay invisible to the
// other.
func FromArray(a *ndarray.Array) (*mat.Dense, error) {
	s := a.Shape()
	if len(s) != 2 {
		return nil, errors.Wrapf(ndarray.ErrShapeMismatch,
			"matrix conversion needs rank 2, got shape %v", s)
	}
	data := make([]float64, a.Size())
	copy(data, a.Float64s())
	return mat.NewDense(s[0], s[1], data), nil
}

// VecFromArray converts a rank-1 array into a gonum vector with its own
// storage.
func VecFromArray(a *ndarray.Array) (*mat.VecDense, error) {
	s := a.Shape()
	if len(s) != 1 {
		return nil, errors.Wrapf(ndarray.ErrShapeMismatch,
			"vector conversion needs rank 1, got shape %v", s)
	}
	data := make([]float64, a.Size())
	copy(data, a.Float64s())
	return mat.NewVecDense(s[0], data), nil
}

// ToArray converts any gonum matrix into a rank-2 array.
func ToArray(m mat.Matrix) *ndarray.Array {
	r, c := m.Dims()
	data := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data[i*c+j] = m.At(i, j)
		}
	}
	return ndarray.Wrap(data, r, c)
}

// VecToArray converts a gonum vector into a rank-1 array.
func VecToArray(v mat.Vector) *ndarray.Array {
	n := v.Len()
	data := make([]float64, n)
	for i := 0; i < n; i++ {
		data[i] = v.AtVec(i)
	}
	return ndarray.Wrap(data, n)
}

// derivMatrix views a jet derivative of shape (n, D) as a dense D-column
// matrix. The data is copied so the collaborator never aliases jet storage.
func derivMatrix(deriv *ndarray.Array) *mat.Dense {
	s := deriv.Shape()
	data := make([]float64, deriv.Size())
	copy(data, deriv.Float64s())
	return mat.NewDense(s[0], s[1], data)
}

// classify splits a solver failure into singular versus merely
// ill-conditioned. gonum reports both through mat.Condition; an infinite
// condition number means the factorization found the matrix exactly
// singular.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var cond mat.Condition
	if errors.As(err, &cond) && !math.IsInf(float64(cond), 1) {
		klog.Warningf("linalg: system is ill-conditioned (cond=%.3g); solution may be inaccurate", float64(cond))
		return nil
	}
	return errors.Wrapf(ErrSingularSystem, "%v", err)
}
