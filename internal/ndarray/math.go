package ndarray

import "math"

// apply maps fn over every element into a fresh owned array.
func (a *Array) apply(fn func(float64) float64) *Array {
	out := New(a.shape...)
	if a.IsContiguous() {
		for i, v := range a.buf.data {
			out.buf.data[i] = fn(v)
		}
		return out
	}
	it := newStridedIter(a.shape, a.strides)
	for i := range out.buf.data {
		out.buf.data[i] = fn(a.buf.data[it.next()])
	}
	return out
}

// Neg returns -a elementwise.
func (a *Array) Neg() *Array {
	return a.apply(func(v float64) float64 { return -v })
}

// Abs returns |a| elementwise.
func (a *Array) Abs() *Array { return a.apply(math.Abs) }

// Sign returns the elementwise sign: -1, 0, or +1. NaN maps to NaN.
func (a *Array) Sign() *Array {
	return a.apply(func(v float64) float64 {
		switch {
		case v > 0:
			return 1
		case v < 0:
			return -1
		default:
			return v // preserves 0, -0 and NaN
		}
	})
}

// Exp returns e**a elementwise.
func (a *Array) Exp() *Array { return a.apply(math.Exp) }

// Log returns the natural logarithm elementwise. Zero yields -Inf and
// negative values yield NaN, following IEEE 754.
func (a *Array) Log() *Array { return a.apply(math.Log) }

// Sqrt returns the square root elementwise. Negative values yield NaN.
func (a *Array) Sqrt() *Array { return a.apply(math.Sqrt) }

// Sin returns the sine elementwise.
func (a *Array) Sin() *Array { return a.apply(math.Sin) }

// Cos returns the cosine elementwise.
func (a *Array) Cos() *Array { return a.apply(math.Cos) }

// Tan returns the tangent elementwise.
func (a *Array) Tan() *Array { return a.apply(math.Tan) }

// Tanh returns the hyperbolic tangent elementwise.
func (a *Array) Tanh() *Array { return a.apply(math.Tanh) }

// Sinh returns the hyperbolic sine elementwise.
func (a *Array) Sinh() *Array { return a.apply(math.Sinh) }

// Cosh returns the hyperbolic cosine elementwise.
func (a *Array) Cosh() *Array { return a.apply(math.Cosh) }

// Asin returns the inverse sine elementwise. Values outside [-1, 1] yield
// NaN.
func (a *Array) Asin() *Array { return a.apply(math.Asin) }

// Acos returns the inverse cosine elementwise. Values outside [-1, 1] yield
// NaN.
func (a *Array) Acos() *Array { return a.apply(math.Acos) }

// Atan returns the inverse tangent elementwise.
func (a *Array) Atan() *Array { return a.apply(math.Atan) }

// Reciprocal returns 1/a elementwise.
func (a *Array) Reciprocal() *Array {
	return a.apply(func(v float64) float64 { return 1 / v })
}
