// Copyright 2026 Jet ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package linalg provides the public API for linear algebra over jets. The
// dense collaborator is gonum/mat; it only ever sees primal float64 storage,
// and this package batches it over the trailing direction axis so matrix
// application and system solving propagate derivatives.
//
// Example:
//
//	m := mat.NewDense(2, 2, []float64{2, 0, 0, 4})
//	rhs := fwd.Identity(ndarray.Wrap([]float64{6, 8}, 2))
//	x, err := linalg.Solve(m, rhs) // x.Deriv() is m⁻¹, column per direction
package linalg

import (
	"gonum.org/v1/gonum/mat"

	"github.com/jet-ml/jet/internal/fwd"
	"github.com/jet-ml/jet/internal/linalg"
	"github.com/jet-ml/jet/internal/ndarray"
)

// Solver is the opaque primal-only collaborator: it maps a right-hand side
// to the solution of a fixed linear system.
type Solver = linalg.Solver

// LUSolver solves a fixed square system through a one-time LU
// factorization.
type LUSolver = linalg.LUSolver

// ErrSingularSystem indicates a linear solve against an exactly singular
// matrix.
var ErrSingularSystem = linalg.ErrSingularSystem

// NewLUSolver factorizes a square matrix for repeated solves.
func NewLUSolver(m mat.Matrix) (*LUSolver, error) { return linalg.NewLUSolver(m) }

// FromArray converts a rank-2 array into a dense gonum matrix with its own
// storage.
func FromArray(a *ndarray.Array) (*mat.Dense, error) { return linalg.FromArray(a) }

// VecFromArray converts a rank-1 array into a gonum vector with its own
// storage.
func VecFromArray(a *ndarray.Array) (*mat.VecDense, error) { return linalg.VecFromArray(a) }

// ToArray converts any gonum matrix into a rank-2 array.
func ToArray(m mat.Matrix) *ndarray.Array { return linalg.ToArray(m) }

// VecToArray converts a gonum vector into a rank-1 array.
func VecToArray(v mat.Vector) *ndarray.Array { return linalg.VecToArray(v) }

// Apply multiplies a non-differentiated matrix into a rank-1 jet,
// direction by direction.
func Apply(m mat.Matrix, x *fwd.Jet) (*fwd.Jet, error) { return linalg.Apply(m, x) }

// Solve solves M·x = rhs for a non-differentiated matrix M and a jet
// right-hand side, factorizing M once for all direction columns.
func Solve(m mat.Matrix, rhs *fwd.Jet) (*fwd.Jet, error) { return linalg.Solve(m, rhs) }

// SolveWith runs an AD-aware solve through any primal-only solver.
func SolveWith(s Solver, rhs *fwd.Jet) (*fwd.Jet, error) { return linalg.SolveWith(s, rhs) }

// SolveShifted solves M·x = rhs where M depends on the differentiated
// parameters; dms[k] is dM along direction k and corrects each derivative
// column by −dM·x0 before the solve.
func SolveShifted(m mat.Matrix, dms []mat.Matrix, rhs *fwd.Jet) (*fwd.Jet, error) {
	return linalg.SolveShifted(m, dms, rhs)
}
