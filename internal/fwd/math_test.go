package fwd

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jet-ml/jet/internal/ndarray"
)

func TestUnaryDerivativesAgainstFiniteDifferences(t *testing.T) {
	cases := []struct {
		name  string
		jet   func(*Jet) *Jet
		plain func(float64) float64
		at    []float64
	}{
		{"exp", (*Jet).Exp, math.Exp, []float64{-1, 0, 2}},
		{"log", (*Jet).Log, math.Log, []float64{0.5, 1, 3}},
		{"sqrt", (*Jet).Sqrt, math.Sqrt, []float64{0.25, 1, 9}},
		{"sin", (*Jet).Sin, math.Sin, []float64{-1, 0.3, 2}},
		{"cos", (*Jet).Cos, math.Cos, []float64{-1, 0.3, 2}},
		{"tan", (*Jet).Tan, math.Tan, []float64{-0.5, 0.2, 1}},
		{"tanh", (*Jet).Tanh, math.Tanh, []float64{-2, 0, 1.5}},
		{"sinh", (*Jet).Sinh, math.Sinh, []float64{-1, 0, 2}},
		{"cosh", (*Jet).Cosh, math.Cosh, []float64{-1, 0, 2}},
		{"asin", (*Jet).Asin, math.Asin, []float64{-0.9, 0, 0.5}},
		{"acos", (*Jet).Acos, math.Acos, []float64{-0.9, 0, 0.5}},
		{"atan", (*Jet).Atan, math.Atan, []float64{-2, 0, 3}},
		{"abs", (*Jet).Abs, math.Abs, []float64{-3, 2}},
		{"reciprocal", (*Jet).Reciprocal, func(x float64) float64 { return 1 / x }, []float64{0.5, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, x := range tc.at {
				checkScalarOp(t, tc.name, tc.jet, tc.plain, x)
			}
		})
	}
}

func TestUnaryAppliesElementwise(t *testing.T) {
	x := Identity(arr(t, []float64{1, 4, 9}, 3))
	r := x.Sqrt()

	assert.Equal(t, []float64{1, 2, 3}, r.Value().Float64s())
	// d sqrt = 1/(2 sqrt(v)) on the diagonal, zero off it.
	assert.InDelta(t, 0.5, r.Deriv().At(0, 0), 1e-12)
	assert.InDelta(t, 0.25, r.Deriv().At(1, 1), 1e-12)
	assert.InDelta(t, 1.0/6, r.Deriv().At(2, 2), 1e-12)
	assert.Equal(t, 0.0, r.Deriv().At(1, 0))
}

func TestChainComposition(t *testing.T) {
	// f(x) = exp(sin(x²)), f' = exp(sin(x²))·cos(x²)·2x
	x := Variable(0.8)
	y := x.Mul(x).Sin().Exp()

	x2 := 0.64
	want := math.Exp(math.Sin(x2)) * math.Cos(x2) * 1.6
	assert.InDelta(t, math.Exp(math.Sin(x2)), y.Value().Item(), 1e-12)
	assert.InDelta(t, want, y.Gradient().At(0), 1e-12)
}

func TestAbsSubgradientAtZero(t *testing.T) {
	x := Variable(0)
	y := x.Abs()
	assert.Equal(t, 0.0, y.Gradient().At(0), "sign(0) = 0 convention")
}

func TestLogDomainEdgePropagatesIEEE(t *testing.T) {
	x := Identity(arr(t, []float64{1, 0, -1}, 3))
	y := x.Log()

	vals := y.Value().Float64s()
	assert.Equal(t, 0.0, vals[0])
	assert.True(t, math.IsInf(vals[1], -1))
	assert.True(t, math.IsNaN(vals[2]))

	// The derivative factor 1/v turns infinite at zero.
	assert.True(t, math.IsInf(y.Deriv().At(1, 1), 1))
}

func TestUnaryOnConstStaysConst(t *testing.T) {
	c := Const(arr(t, []float64{1, 2}, 2))
	e := c.Exp()
	assert.True(t, e.IsConst())
	assert.Equal(t, ndarray.Shape{2, 0}, e.Deriv().Shape())
}
