package linalg

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/jet-ml/jet/internal/fwd"
	"github.com/jet-ml/jet/internal/ndarray"
)

func arr(t *testing.T, data []float64, shape ...int) *ndarray.Array {
	t.Helper()
	a, err := ndarray.FromSlice(data, shape...)
	require.NoError(t, err)
	return a
}

// testMatrix is a fixed well-conditioned 3x3 system used across the solve
// tests.
func testMatrix() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		4, 1, 0,
		1, 3, 1,
		0, 1, 5,
	})
}

func TestFromArrayRejectsWrongRank(t *testing.T) {
	_, err := FromArray(arr(t, []float64{1, 2, 3}, 3))
	assert.True(t, errors.Is(err, ndarray.ErrShapeMismatch))

	_, err = VecFromArray(arr(t, []float64{1, 2, 3, 4}, 2, 2))
	assert.True(t, errors.Is(err, ndarray.ErrShapeMismatch))
}

func TestArrayMatrixRoundTrip(t *testing.T) {
	a := arr(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)
	m, err := FromArray(a)
	require.NoError(t, err)
	assert.Equal(t, 2.0, m.At(0, 1))
	assert.True(t, ToArray(m).Equal(a))

	// The matrix owns its storage: writing through it leaves the array alone.
	m.Set(0, 0, 99)
	assert.Equal(t, 1.0, a.At(0, 0))
}

func TestApplyLinearMap(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	x := fwd.Identity(arr(t, []float64{1, 1, 1}, 3))

	y, err := Apply(m, x)
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 15}, y.Value().Float64s())

	// The input derivative is the identity, so the output derivative is the
	// matrix itself.
	assert.Equal(t, 3, y.Directions())
	assert.True(t, y.Deriv().EqualApprox(ToArray(m), 1e-14))
}

func TestApplyConstRhs(t *testing.T) {
	m := testMatrix()
	y, err := Apply(m, fwd.Const(arr(t, []float64{1, 0, 0}, 3)))
	require.NoError(t, err)
	assert.Equal(t, 0, y.Directions())
	assert.Equal(t, []float64{4, 1, 0}, y.Value().Float64s())
}

func TestApplyShapeMismatch(t *testing.T) {
	m := testMatrix()
	_, err := Apply(m, fwd.Const(arr(t, []float64{1, 2}, 2)))
	assert.True(t, errors.Is(err, ndarray.ErrShapeMismatch))
}

func TestLUSolverPrimal(t *testing.T) {
	s, err := NewLUSolver(testMatrix())
	require.NoError(t, err)

	b := arr(t, []float64{1, 2, 3}, 3)
	x, err := s.Solve(b)
	require.NoError(t, err)

	// Substituting back reproduces the right-hand side.
	back, err := Apply(testMatrix(), fwd.Const(x))
	require.NoError(t, err)
	assert.True(t, back.Value().EqualApprox(b, 1e-12))
}

func TestSolveADRhsMatchesFiniteDifference(t *testing.T) {
	m := testMatrix()
	rhs := fwd.Identity(arr(t, []float64{1, 2, 3}, 3))

	x, err := Solve(m, rhs)
	require.NoError(t, err)
	assert.Equal(t, 3, x.Directions())

	// Direction k perturbs rhs element k, so column k of the derivative must
	// match the central difference of the perturbed solves.
	s, err := NewLUSolver(m)
	require.NoError(t, err)
	const eps = 1e-6
	for k := 0; k < 3; k++ {
		up := rhs.Value().Copy()
		dn := rhs.Value().Copy()
		require.NoError(t, up.Set(up.At(k)+eps, k))
		require.NoError(t, dn.Set(dn.At(k)-eps, k))
		xu, err := s.Solve(up)
		require.NoError(t, err)
		xd, err := s.Solve(dn)
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			want := (xu.At(i) - xd.At(i)) / (2 * eps)
			assert.InDelta(t, want, x.Deriv().At(i, k), 1e-6, "dx[%d]/dr[%d]", i, k)
		}
	}
}

func TestSolveConstRhs(t *testing.T) {
	x, err := Solve(testMatrix(), fwd.Const(arr(t, []float64{4, 1, 0}, 3)))
	require.NoError(t, err)
	assert.Equal(t, 0, x.Directions())
	assert.InDelta(t, 1.0, x.Value().At(0), 1e-12)
	assert.InDelta(t, 0.0, x.Value().At(1), 1e-12)
}

func TestSolveSingularSystem(t *testing.T) {
	singular := mat.NewDense(2, 2, []float64{
		1, 2,
		2, 4,
	})
	_, err := Solve(singular, fwd.Identity(arr(t, []float64{1, 1}, 2)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSingularSystem))
}

func TestSolveNonSquare(t *testing.T) {
	_, err := NewLUSolver(mat.NewDense(2, 3, make([]float64, 6)))
	assert.True(t, errors.Is(err, ndarray.ErrShapeMismatch))
}

func TestSolveShifted(t *testing.T) {
	// One parameter p: M(p) = M0 + p·M1 with solution x(p) of M(p)x = b.
	// At p=0 the derivative is dx = M0⁻¹(db − M1·x0); here db = 0.
	m0 := testMatrix()
	m1 := mat.NewDense(3, 3, []float64{
		0, 1, 0,
		1, 0, 0,
		0, 0, 1,
	})
	b := arr(t, []float64{1, 2, 3}, 3)
	rhs, err := fwd.New(b, ndarray.New(3, 1))
	require.NoError(t, err)

	x, err := SolveShifted(m0, []mat.Matrix{m1}, rhs)
	require.NoError(t, err)

	const eps = 1e-6
	var up, dn mat.Dense
	up.Scale(eps, m1)
	up.Add(m0, &up)
	dn.Scale(-eps, m1)
	dn.Add(m0, &dn)
	xu, err := Solve(&up, fwd.Const(b))
	require.NoError(t, err)
	xd, err := Solve(&dn, fwd.Const(b))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		want := (xu.Value().At(i) - xd.Value().At(i)) / (2 * eps)
		assert.InDelta(t, want, x.Deriv().At(i, 0), 1e-6, "dx[%d]/dp", i)
	}
}

func TestSolveShiftedDirectionCountMismatch(t *testing.T) {
	rhs := fwd.Identity(arr(t, []float64{1, 2, 3}, 3))
	_, err := SolveShifted(testMatrix(), nil, rhs)
	assert.True(t, errors.Is(err, ndarray.ErrShapeMismatch))
}
