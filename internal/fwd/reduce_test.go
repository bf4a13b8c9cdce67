package fwd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jet-ml/jet/internal/ndarray"
)

func TestSumDerivatives(t *testing.T) {
	x := Identity(arr(t, []float64{1, 2, 3, 4}, 2, 2))

	s := x.Sum(0, false)
	assert.Equal(t, []float64{4, 6}, s.Value().Float64s())
	// d(sum over rows)[col 0] collects directions 0 and 2.
	assert.Equal(t, 1.0, s.Deriv().At(0, 0))
	assert.Equal(t, 1.0, s.Deriv().At(0, 2))
	assert.Equal(t, 0.0, s.Deriv().At(0, 1))

	total := x.SumAll()
	assert.Equal(t, 10.0, total.Value().Item())
	assert.Equal(t, ndarray.Shape{4}, total.Deriv().Shape())
	assert.Equal(t, []float64{1, 1, 1, 1}, total.Gradient().Float64s(),
		"the total varies one-for-one with every element")
}

func TestSumKeepAxis(t *testing.T) {
	x := Identity(arr(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3))
	s := x.Sum(1, true)
	assert.Equal(t, ndarray.Shape{2, 1}, s.Shape())
	assert.Equal(t, ndarray.Shape{2, 1, 6}, s.Deriv().Shape())
	assert.Equal(t, []float64{6, 15}, s.Value().Float64s())
}

func TestMeanDerivatives(t *testing.T) {
	x := Identity(arr(t, []float64{2, 4, 6}, 3))

	m := x.MeanAll()
	assert.InDelta(t, 4.0, m.Value().Item(), 1e-12)
	assert.InDeltaSlice(t, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, m.Gradient().Float64s(), 1e-12)

	rows := Identity(arr(t, []float64{1, 3, 5, 7}, 2, 2)).Mean(1, false)
	assert.Equal(t, []float64{2, 6}, rows.Value().Float64s())
	assert.InDelta(t, 0.5, rows.Deriv().At(0, 0), 1e-12)
	assert.InDelta(t, 0.5, rows.Deriv().At(0, 1), 1e-12)
	assert.InDelta(t, 0.0, rows.Deriv().At(0, 2), 1e-12)
}

func TestMinCarriesSelectedDerivative(t *testing.T) {
	x := Identity(arr(t, []float64{4, 1, 3, 2}, 4))

	m := x.MinAll()
	assert.Equal(t, 1.0, m.Value().Item())
	assert.Equal(t, []float64{0, 1, 0, 0}, m.Gradient().Float64s(),
		"only the selected element moves the minimum")

	mx := x.MaxAll()
	assert.Equal(t, 4.0, mx.Value().Item())
	assert.Equal(t, []float64{1, 0, 0, 0}, mx.Gradient().Float64s())
}

func TestMinAxisDerivative(t *testing.T) {
	x := Identity(arr(t, []float64{4, 1, 3, 2, 2, 5}, 2, 3))

	m := x.Min(1, false)
	assert.Equal(t, []float64{1, 2}, m.Value().Float64s())
	// Row 0 selects flat element 1; row 1 selects flat element 3.
	assert.Equal(t, 1.0, m.Deriv().At(0, 1))
	assert.Equal(t, 0.0, m.Deriv().At(0, 0))
	assert.Equal(t, 1.0, m.Deriv().At(1, 3))

	kept := x.Max(0, true)
	assert.Equal(t, ndarray.Shape{1, 3}, kept.Shape())
	assert.Equal(t, ndarray.Shape{1, 3, 6}, kept.Deriv().Shape())
	assert.Equal(t, []float64{4, 2, 5}, kept.Value().Float64s())
}

func TestMinTieSelectsFirst(t *testing.T) {
	x := Identity(arr(t, []float64{3, 1, 1}, 3))
	m := x.MinAll()
	assert.Equal(t, []float64{0, 1, 0}, m.Gradient().Float64s(),
		"ties resolve to the first index, fixing the one-sided derivative")
}

func TestReduceConstJet(t *testing.T) {
	c := Const(arr(t, []float64{1, 2, 3}, 3))
	s := c.SumAll()
	assert.True(t, s.IsConst())
	assert.Equal(t, 6.0, s.Value().Item())

	m := c.MinAll()
	assert.True(t, m.IsConst())
	assert.Equal(t, ndarray.Shape{0}, m.Deriv().Shape())
}
