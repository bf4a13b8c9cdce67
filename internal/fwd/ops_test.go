package fwd

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/jet-ml/jet/internal/ndarray"
)

// numDeriv estimates df/dx at x with central differences.
func numDeriv(f func(float64) float64, x float64) float64 {
	return fd.Derivative(f, x, &fd.Settings{Formula: fd.Central})
}

// checkScalarOp runs the same scalar expression through a jet and through
// finite differences and compares the single derivative entry.
func checkScalarOp(t *testing.T, name string, jet func(*Jet) *Jet, plain func(float64) float64, at float64) {
	t.Helper()
	y := jet(Variable(at))
	assert.InDelta(t, plain(at), y.Value().Item(), 1e-12, "%s value at %v", name, at)
	assert.InDelta(t, numDeriv(plain, at), y.Gradient().At(0), 1e-6, "%s derivative at %v", name, at)
}

func TestAddConstAliasesDeriv(t *testing.T) {
	a := Identity(arr(t, []float64{1, 2, 3}, 3))
	c := arr(t, []float64{10, 20, 30}, 3)

	s := a.AddArray(c)
	assert.Equal(t, []float64{11, 22, 33}, s.Value().Float64s())
	assert.True(t, s.Deriv().SharesBufferWith(a.Deriv()), "adding a constant aliases the derivative")
	assert.Equal(t, ndarray.Locked, s.Deriv().State())
	assert.True(t, s.Deriv().Equal(a.Deriv()))

	s2 := a.AddScalar(5)
	assert.True(t, s2.Deriv().SharesBufferWith(a.Deriv()))

	s3 := a.SubScalar(5)
	assert.True(t, s3.Deriv().SharesBufferWith(a.Deriv()), "subtracting a constant aliases too")
}

func TestConstMinusJetAllocatesFresh(t *testing.T) {
	a := Identity(arr(t, []float64{1, 2}, 2))
	s := ConstScalar(10).Sub(a)

	assert.Equal(t, []float64{9, 8}, s.Value().Float64s())
	assert.False(t, s.Deriv().SharesBufferWith(a.Deriv()), "negation cannot alias")
	assert.Equal(t, ndarray.Owned, s.Deriv().State())
	assert.Equal(t, -1.0, s.Deriv().At(0, 0))
	assert.Equal(t, 0.0, s.Deriv().At(0, 1))
}

func TestJetPlusJetAllocatesFresh(t *testing.T) {
	a := Identity(arr(t, []float64{1, 2}, 2))
	b := Identity(arr(t, []float64{10, 20}, 2))

	s := a.Add(b)
	assert.False(t, s.Deriv().SharesBufferWith(a.Deriv()))
	assert.False(t, s.Deriv().SharesBufferWith(b.Deriv()))
	assert.Equal(t, 1.0, s.Deriv().At(0, 0))
	assert.Equal(t, 1.0, s.Deriv().At(0, 1), "directions add elementwise")

	d := a.Sub(b)
	assert.Equal(t, -1.0, d.Deriv().At(0, 1), "difference stores negated derivatives, no sign flag")
	assert.Equal(t, ndarray.Owned, d.Deriv().State())
}

func TestMulAlwaysFresh(t *testing.T) {
	a := Identity(arr(t, []float64{1, 2}, 2))
	c := arr(t, []float64{3, 4}, 2)

	p := a.MulArray(c)
	assert.False(t, p.Deriv().SharesBufferWith(a.Deriv()), "scaling must not alias")
	assert.Equal(t, 3.0, p.Deriv().At(0, 0))
	assert.Equal(t, 4.0, p.Deriv().At(1, 1))
}

func TestProductRule(t *testing.T) {
	x := Identity(arr(t, []float64{2, 3}, 2))
	y := Identity(arr(t, []float64{5, 7}, 2))

	// Directions collide on purpose: d(xy) = y dx + x dy per direction.
	p := x.Mul(y)
	assert.Equal(t, []float64{10, 21}, p.Value().Float64s())
	assert.Equal(t, 5.0+2.0, p.Deriv().At(0, 0), "y + x along the shared direction")
	assert.Equal(t, 7.0+3.0, p.Deriv().At(1, 1))
	assert.Equal(t, 0.0, p.Deriv().At(0, 1))
}

func TestScalarArithmeticAgainstFiniteDifferences(t *testing.T) {
	checkScalarOp(t, "add", func(j *Jet) *Jet { return j.AddScalar(3) },
		func(x float64) float64 { return x + 3 }, 1.5)
	checkScalarOp(t, "mul", func(j *Jet) *Jet { return j.MulScalar(4) },
		func(x float64) float64 { return x * 4 }, 1.5)
	checkScalarOp(t, "div", func(j *Jet) *Jet { return ConstScalar(2).Div(j) },
		func(x float64) float64 { return 2 / x }, 1.5)
	checkScalarOp(t, "pow", func(j *Jet) *Jet { return j.PowScalar(3) },
		func(x float64) float64 { return x * x * x }, 1.5)
	checkScalarOp(t, "composite", func(j *Jet) *Jet { return j.Mul(j).AddScalar(1).Reciprocal() },
		func(x float64) float64 { return 1 / (x*x + 1) }, 0.7)
}

func TestQuotientRule(t *testing.T) {
	x := Variable(3)
	y := x.Mul(x).AddScalar(1).Div(x) // (x²+1)/x, derivative 1 - 1/x²
	assert.InDelta(t, 10.0/3, y.Value().Item(), 1e-12)
	assert.InDelta(t, 1-1.0/9, y.Gradient().At(0), 1e-12)
}

func TestPowJetExponent(t *testing.T) {
	x := Variable(2)
	y := ConstScalar(3).Pow(x) // 3^x, derivative ln(3)·3^x
	assert.InDelta(t, 9.0, y.Value().Item(), 1e-12)
	assert.InDelta(t, math.Log(3)*9, y.Gradient().At(0), 1e-10)

	// x^x exercises both terms of the power rule at once.
	z := x.Pow(x)
	want := numDeriv(func(v float64) float64 { return math.Pow(v, v) }, 2)
	assert.InDelta(t, want, z.Gradient().At(0), 1e-6)
}

func TestNegFresh(t *testing.T) {
	a := Identity(arr(t, []float64{1, -2}, 2))
	n := a.Neg()
	assert.Equal(t, []float64{-1, 2}, n.Value().Float64s())
	assert.False(t, n.Deriv().SharesBufferWith(a.Deriv()))
	assert.Equal(t, -1.0, n.Deriv().At(0, 0))
}

func TestBroadcastGrowsAliasedDeriv(t *testing.T) {
	// Scalar jet plus a row constant: the value grows to the row's shape and
	// the aliased derivative stretches along with it as a broadcast view.
	x := Variable(2)
	row := arr(t, []float64{10, 20, 30}, 3)

	s := x.AddArray(row)
	assert.Equal(t, ndarray.Shape{3}, s.Shape())
	assert.Equal(t, []float64{12, 22, 32}, s.Value().Float64s())
	assert.Equal(t, ndarray.Shape{3, 1}, s.Deriv().Shape())
	assert.True(t, s.Deriv().SharesBufferWith(x.Deriv()))
	assert.Equal(t, ndarray.Locked, s.Deriv().State())
	assert.Equal(t, []float64{1, 1, 1}, s.Deriv().Float64s())
}

func TestConstJetCombination(t *testing.T) {
	x := Identity(arr(t, []float64{1, 2}, 2))
	k := Const(arr(t, []float64{10, 10}, 2))

	s := x.Add(k)
	assert.Equal(t, 2, s.Directions(), "constant jets adopt the other side's directions")
	assert.True(t, s.Deriv().SharesBufferWith(x.Deriv()), "constant jet operand aliases like a plain constant")

	p := k.Mul(x)
	assert.Equal(t, 10.0, p.Deriv().At(0, 0))
	assert.Equal(t, 2, p.Directions())
}

func TestDirectionsMismatchPanics(t *testing.T) {
	a := Identity(arr(t, []float64{1, 2}, 2))
	b := Identity(arr(t, []float64{1, 2, 3}, 3))

	defer func() {
		err, ok := recover().(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrDirectionsMismatch))
	}()
	a.Add(b)
}
