package linalg

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/jet-ml/jet/internal/fwd"
	"github.com/jet-ml/jet/internal/ndarray"
)

// Solver is the opaque primal-only collaborator: it maps a right-hand side
// to the solution of a fixed linear system. A rank-1 right-hand side yields
// a rank-1 solution; a rank-2 one is treated as a batch of columns.
type Solver interface {
	Solve(rhs *ndarray.Array) (*ndarray.Array, error)
}

// LUSolver solves a fixed square system through a one-time LU
// factorization, so repeated solves against the same matrix (the value plus
// every direction column) pay for elimination once.
type LUSolver struct {
	lu *mat.LU
	n  int
}

// NewLUSolver factorizes a square matrix. Exact singularity surfaces later,
// at the first Solve, the way gonum reports it.
func NewLUSolver(m mat.Matrix) (*LUSolver, error) {
	r, c := m.Dims()
	if r != c {
		return nil, errors.Wrapf(ndarray.ErrShapeMismatch, "lu: matrix is %dx%d, need square", r, c)
	}
	lu := &mat.LU{}
	lu.Factorize(m)
	return &LUSolver{lu: lu, n: r}, nil
}

// Solve solves the factorized system for a rank-1 right-hand side, or
// column-by-column for a rank-2 batch. Exactly singular systems return
// ErrSingularSystem; ill-conditioned ones succeed with a logged warning.
func (s *LUSolver) Solve(rhs *ndarray.Array) (*ndarray.Array, error) {
	sh := rhs.Shape()
	if len(sh) < 1 || len(sh) > 2 || sh[0] != s.n {
		return nil, errors.Wrapf(ndarray.ErrShapeMismatch,
			"lu solve: right-hand side shape %v against system size %d", sh, s.n)
	}

	if len(sh) == 1 {
		b, err := VecFromArray(rhs)
		if err != nil {
			return nil, err
		}
		var x mat.VecDense
		if err := classify(s.lu.SolveVecTo(&x, false, b)); err != nil {
			return nil, err
		}
		return VecToArray(&x), nil
	}

	if sh[1] == 0 {
		return ndarray.New(s.n, 0), nil
	}
	b, err := FromArray(rhs)
	if err != nil {
		return nil, err
	}
	var x mat.Dense
	if err := classify(s.lu.SolveTo(&x, false, b)); err != nil {
		return nil, err
	}
	return ToArray(&x), nil
}

// SolveWith runs an AD-aware solve through any primal-only solver: the
// primal solution comes from the value and, since solving is linear in the
// right-hand side, each direction's derivative is the solve of the
// corresponding derivative column.
func SolveWith(s Solver, rhs *fwd.Jet) (*fwd.Jet, error) {
	x0, err := s.Solve(rhs.Value())
	if err != nil {
		return nil, err
	}
	dx, err := s.Solve(rhs.Deriv())
	if err != nil {
		return nil, err
	}
	return fwd.New(x0, dx)
}

// Solve solves M·x = rhs for a non-differentiated matrix M and a rank-1 jet
// right-hand side, factorizing M once for all direction columns.
func Solve(m mat.Matrix, rhs *fwd.Jet) (*fwd.Jet, error) {
	s, err := NewLUSolver(m)
	if err != nil {
		return nil, err
	}
	return SolveWith(s, rhs)
}

// SolveShifted solves M·x = rhs where M itself depends on the differentiated
// parameters: dms[k] is dM along direction k. Differentiating M·x = rhs
// gives M·dx = d(rhs) − dM·x0, so each derivative column is corrected by the
// matrix sensitivity before the solve.
func SolveShifted(m mat.Matrix, dms []mat.Matrix, rhs *fwd.Jet) (*fwd.Jet, error) {
	d := rhs.Directions()
	if len(dms) != d {
		return nil, errors.Wrapf(ndarray.ErrShapeMismatch,
			"solve shifted: %d matrix sensitivities for %d directions", len(dms), d)
	}
	s, err := NewLUSolver(m)
	if err != nil {
		return nil, err
	}
	x0, err := s.Solve(rhs.Value())
	if err != nil {
		return nil, err
	}
	if d == 0 {
		return fwd.New(x0, ndarray.New(s.n, 0))
	}

	x0vec, err := VecFromArray(x0)
	if err != nil {
		return nil, err
	}
	corrected := derivMatrix(rhs.Deriv())
	var shift mat.VecDense
	for k := 0; k < d; k++ {
		shift.MulVec(dms[k], x0vec)
		for i := 0; i < s.n; i++ {
			corrected.Set(i, k, corrected.At(i, k)-shift.AtVec(i))
		}
	}

	dx, err := s.Solve(ToArray(corrected))
	if err != nil {
		return nil, err
	}
	return fwd.New(x0, dx)
}
