package fwd

import "github.com/jet-ml/jet/internal/ndarray"

// aliasDeriv stretches a derivative to the result shape as a locked
// broadcast view. Adding a constant does not change derivatives, so the
// result shares the input's buffer instead of copying it; writers must go
// through Copy first.
func aliasDeriv(deriv *ndarray.Array, shape ndarray.Shape, d int) *ndarray.Array {
	return deriv.BroadcastTo(shape.Concat(d)...)
}

// Add returns j + other. When one operand is a constant the result aliases
// the other operand's derivative buffer; when both carry directions a fresh
// buffer holds the sum of the two derivatives.
func (j *Jet) Add(other *Jet) *Jet {
	checkDirections(j, other, "add")
	value := j.value.Add(other.value)
	var deriv *ndarray.Array
	switch {
	case other.IsConst():
		deriv = aliasDeriv(j.deriv, value.Shape(), j.Directions())
	case j.IsConst():
		deriv = aliasDeriv(other.deriv, value.Shape(), other.Directions())
	default:
		deriv = j.deriv.Add(other.deriv)
	}
	return &Jet{value: value, deriv: deriv}
}

// Sub returns j - other. Subtracting a constant aliases j's derivative
// buffer; every other case allocates fresh, storing negated derivatives
// rather than a sign flag.
func (j *Jet) Sub(other *Jet) *Jet {
	checkDirections(j, other, "sub")
	value := j.value.Sub(other.value)
	var deriv *ndarray.Array
	switch {
	case other.IsConst():
		deriv = aliasDeriv(j.deriv, value.Shape(), j.Directions())
	case j.IsConst():
		deriv = aliasDeriv(other.deriv, value.Shape(), other.Directions()).Neg()
	default:
		deriv = j.deriv.Sub(other.deriv)
	}
	return &Jet{value: value, deriv: deriv}
}

// Mul returns j * other with the product rule d(ab) = b*da + a*db. The
// derivative buffer is always freshly allocated.
func (j *Jet) Mul(other *Jet) *Jet {
	checkDirections(j, other, "mul")
	value := j.value.Mul(other.value)
	var deriv *ndarray.Array
	switch {
	case other.IsConst():
		deriv = j.deriv.Mul(other.value.ExpandDims(-1))
	case j.IsConst():
		deriv = other.deriv.Mul(j.value.ExpandDims(-1))
	default:
		deriv = j.deriv.Mul(other.value.ExpandDims(-1)).
			Add(other.deriv.Mul(j.value.ExpandDims(-1)))
	}
	return &Jet{value: value, deriv: deriv}
}

// Div returns j / other with the quotient rule, rewritten as
// (da - (a/b)*db) / b to reuse the already computed value.
func (j *Jet) Div(other *Jet) *Jet {
	checkDirections(j, other, "div")
	value := j.value.Div(other.value)
	var deriv *ndarray.Array
	switch {
	case other.IsConst():
		deriv = j.deriv.Div(other.value.ExpandDims(-1))
	case j.IsConst():
		deriv = other.deriv.Mul(value.Div(other.value).ExpandDims(-1)).Neg()
	default:
		deriv = j.deriv.Sub(other.deriv.Mul(value.ExpandDims(-1))).
			Div(other.value.ExpandDims(-1))
	}
	return &Jet{value: value, deriv: deriv}
}

// Pow returns j ** other. A constant exponent uses the power rule
// b*a**(b-1); a varying exponent adds the ln(a)*a**b term, which follows
// IEEE 754 into NaN for non-positive bases.
func (j *Jet) Pow(other *Jet) *Jet {
	checkDirections(j, other, "pow")
	value := j.value.Pow(other.value)
	var deriv *ndarray.Array
	switch {
	case other.IsConst():
		df := other.value.Mul(j.value.Pow(other.value.SubScalar(1)))
		deriv = j.deriv.Mul(df.ExpandDims(-1))
	case j.IsConst():
		df := j.value.Log().Mul(value)
		deriv = other.deriv.Mul(df.ExpandDims(-1))
	default:
		dfa := other.value.Mul(j.value.Pow(other.value.SubScalar(1)))
		dfb := j.value.Log().Mul(value)
		deriv = j.deriv.Mul(dfa.ExpandDims(-1)).
			Add(other.deriv.Mul(dfb.ExpandDims(-1)))
	}
	return &Jet{value: value, deriv: deriv}
}

// Neg returns -j with freshly negated payloads.
func (j *Jet) Neg() *Jet {
	return &Jet{value: j.value.Neg(), deriv: j.deriv.Neg()}
}

// AddArray returns j + c for a constant array. The derivative aliases j's
// buffer as a locked view.
func (j *Jet) AddArray(c *ndarray.Array) *Jet { return j.Add(Const(c)) }

// AddScalar returns j + s. The derivative aliases j's buffer.
func (j *Jet) AddScalar(s float64) *Jet { return j.Add(ConstScalar(s)) }

// SubArray returns j - c for a constant array.
func (j *Jet) SubArray(c *ndarray.Array) *Jet { return j.Sub(Const(c)) }

// SubScalar returns j - s.
func (j *Jet) SubScalar(s float64) *Jet { return j.Sub(ConstScalar(s)) }

// MulArray returns j * c for a constant array.
func (j *Jet) MulArray(c *ndarray.Array) *Jet { return j.Mul(Const(c)) }

// MulScalar returns j * s.
func (j *Jet) MulScalar(s float64) *Jet { return j.Mul(ConstScalar(s)) }

// DivArray returns j / c for a constant array.
func (j *Jet) DivArray(c *ndarray.Array) *Jet { return j.Div(Const(c)) }

// DivScalar returns j / s.
func (j *Jet) DivScalar(s float64) *Jet { return j.Div(ConstScalar(s)) }

// PowArray returns j ** c for a constant array of exponents.
func (j *Jet) PowArray(c *ndarray.Array) *Jet { return j.Pow(Const(c)) }

// PowScalar returns j ** s.
func (j *Jet) PowScalar(s float64) *Jet { return j.Pow(ConstScalar(s)) }
