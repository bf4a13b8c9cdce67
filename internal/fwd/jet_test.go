package fwd

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jet-ml/jet/internal/ndarray"
)

func arr(t *testing.T, data []float64, shape ...int) *ndarray.Array {
	t.Helper()
	a, err := ndarray.FromSlice(data, shape...)
	require.NoError(t, err)
	return a
}

func TestNewValidatesDerivShape(t *testing.T) {
	value := arr(t, []float64{1, 2}, 2)

	j, err := New(value, ndarray.New(2, 3))
	require.NoError(t, err)
	assert.Equal(t, 3, j.Directions())
	assert.Equal(t, ndarray.Shape{2}, j.Shape())

	_, err = New(value, ndarray.New(3, 2))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ndarray.ErrShapeMismatch))

	_, err = New(value, ndarray.New(2))
	require.Error(t, err, "derivative must extend the value rank by one")
}

func TestConst(t *testing.T) {
	c := Const(arr(t, []float64{1, 2, 3}, 3))
	assert.Equal(t, 0, c.Directions())
	assert.True(t, c.IsConst())
	assert.Equal(t, ndarray.Shape{3, 0}, c.Deriv().Shape())

	s := ConstScalar(4)
	assert.Equal(t, 4.0, s.Value().Item())
	assert.Equal(t, ndarray.Shape{0}, s.Deriv().Shape())
}

func TestIdentitySeedsEye(t *testing.T) {
	x := Identity(arr(t, []float64{5, 6, 7}, 3))
	assert.Equal(t, 3, x.Directions())
	assert.False(t, x.IsConst())

	for i := 0; i < 3; i++ {
		for d := 0; d < 3; d++ {
			want := 0.0
			if i == d {
				want = 1.0
			}
			assert.Equal(t, want, x.Deriv().At(i, d))
		}
	}
}

func TestIdentityMatrixShaped(t *testing.T) {
	x := Identity(arr(t, []float64{1, 2, 3, 4}, 2, 2))
	assert.Equal(t, 4, x.Directions())
	assert.Equal(t, ndarray.Shape{2, 2, 4}, x.Deriv().Shape())
	// Element (1,0) is the third flattened element, so direction 2.
	assert.Equal(t, 1.0, x.Deriv().At(1, 0, 2))
	assert.Equal(t, 0.0, x.Deriv().At(1, 0, 1))
}

func TestIdentityBound(t *testing.T) {
	value := arr(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)
	x, err := IdentityBound(value, ndarray.Shape{3})
	require.NoError(t, err)

	assert.Equal(t, 2, x.Directions(), "directions enumerate free elements only")
	assert.Equal(t, ndarray.Shape{2, 3, 2}, x.Deriv().Shape())
	assert.Equal(t, ndarray.Locked, x.Deriv().State(), "bound identity derivative is a broadcast view")

	// Elements sharing a free index share a direction row.
	for k := 0; k < 3; k++ {
		assert.Equal(t, 1.0, x.Deriv().At(0, k, 0))
		assert.Equal(t, 0.0, x.Deriv().At(0, k, 1))
		assert.Equal(t, 1.0, x.Deriv().At(1, k, 1))
	}

	_, err = IdentityBound(value, ndarray.Shape{2})
	require.Error(t, err, "bound must be a suffix of the value shape")
}

func TestVariable(t *testing.T) {
	x := Variable(2.5)
	assert.Equal(t, 2.5, x.Value().Item())
	assert.Equal(t, 1, x.Directions())
	assert.Equal(t, 1.0, x.Deriv().At(0))
}

func TestAsJetIdempotent(t *testing.T) {
	x := Variable(1)
	assert.Same(t, x, AsJet(x), "coercing a jet returns the identical jet")

	c := AsJet(arr(t, []float64{1, 2}, 2))
	assert.True(t, c.IsConst())

	s := AsJet(3.5)
	assert.Equal(t, 3.5, s.Value().Item())
	assert.Equal(t, 2.0, AsJet(2).Value().Item(), "ints coerce like floats")

	assert.Panics(t, func() { AsJet("nope") })
}

func TestGradient(t *testing.T) {
	x := Variable(3)
	y := x.Mul(x) // y = x², dy/dx = 6
	g := y.Gradient()
	assert.Equal(t, ndarray.Shape{1}, g.Shape())
	assert.InDelta(t, 6.0, g.At(0), 1e-12)

	vec := Identity(arr(t, []float64{1, 2}, 2))
	assert.Panics(t, func() { vec.Gradient() }, "gradient without an index requires a scalar value")
}

func TestGradientAtIndex(t *testing.T) {
	x := Identity(arr(t, []float64{1, 2, 3, 4}, 2, 2))
	y := x.Mul(x) // elementwise square: d/dx = 2x on the element's own direction

	g := y.Gradient(1, 0) // element value 3, flat direction 2
	assert.Equal(t, ndarray.Shape{4}, g.Shape())
	assert.Equal(t, []float64{0, 0, 6, 0}, g.Float64s())

	assert.Panics(t, func() { y.Gradient(2, 0) }, "index out of range")
}

func TestCopyUnlocks(t *testing.T) {
	x := Identity(arr(t, []float64{1, 2}, 2))
	b := x.BroadcastTo(3, 2)
	require.Equal(t, ndarray.Locked, b.Value().State())
	require.Equal(t, ndarray.Locked, b.Deriv().State())

	c := b.Copy()
	assert.Equal(t, ndarray.Owned, c.Value().State())
	assert.Equal(t, ndarray.Owned, c.Deriv().State())
	assert.True(t, c.Value().Equal(b.Value()))
	assert.True(t, c.Deriv().Equal(b.Deriv()))
}

func TestEqualApprox(t *testing.T) {
	x := Variable(1)
	y := Variable(1 + 1e-13)
	assert.True(t, x.EqualApprox(y, 1e-9))
	assert.False(t, x.Equal(y))
	assert.True(t, x.Equal(x.Copy()))
}

func TestStringMentionsShapeAndDirections(t *testing.T) {
	x := Identity(arr(t, []float64{1, 2}, 2))
	s := x.String()
	assert.Contains(t, s, "directions=2")
	assert.Contains(t, s, "(2)")
}
