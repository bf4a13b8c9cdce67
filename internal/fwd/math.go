package fwd

import "github.com/jet-ml/jet/internal/ndarray"

// chainUnary assembles f(j) from the precomputed value f(v) and pointwise
// derivative factor f'(v): the new derivative is f'(v) broadcast over the
// direction axis times the old derivative, always in a fresh buffer.
func (j *Jet) chainUnary(value, df *ndarray.Array) *Jet {
	return &Jet{value: value, deriv: j.deriv.Mul(df.ExpandDims(-1))}
}

// Exp returns e**j; the derivative factor is the result itself.
func (j *Jet) Exp() *Jet {
	value := j.value.Exp()
	return j.chainUnary(value, value)
}

// Log returns the natural logarithm with derivative factor 1/v. Values at
// or below zero follow IEEE 754 into -Inf and NaN.
func (j *Jet) Log() *Jet {
	return j.chainUnary(j.value.Log(), j.value.Reciprocal())
}

// Sqrt returns the square root with derivative factor 1/(2*sqrt(v)).
func (j *Jet) Sqrt() *Jet {
	value := j.value.Sqrt()
	return j.chainUnary(value, value.MulScalar(2).Reciprocal())
}

// Sin returns the sine with derivative factor cos(v).
func (j *Jet) Sin() *Jet {
	return j.chainUnary(j.value.Sin(), j.value.Cos())
}

// Cos returns the cosine with derivative factor -sin(v).
func (j *Jet) Cos() *Jet {
	return j.chainUnary(j.value.Cos(), j.value.Sin().Neg())
}

// Tan returns the tangent with derivative factor 1/cos(v)**2.
func (j *Jet) Tan() *Jet {
	cos := j.value.Cos()
	return j.chainUnary(j.value.Tan(), cos.Mul(cos).Reciprocal())
}

// Tanh returns the hyperbolic tangent with derivative factor 1 - tanh(v)**2.
func (j *Jet) Tanh() *Jet {
	value := j.value.Tanh()
	return j.chainUnary(value, value.Mul(value).Neg().AddScalar(1))
}

// Sinh returns the hyperbolic sine with derivative factor cosh(v).
func (j *Jet) Sinh() *Jet {
	return j.chainUnary(j.value.Sinh(), j.value.Cosh())
}

// Cosh returns the hyperbolic cosine with derivative factor sinh(v).
func (j *Jet) Cosh() *Jet {
	return j.chainUnary(j.value.Cosh(), j.value.Sinh())
}

// Asin returns the inverse sine with derivative factor 1/sqrt(1-v**2).
// Values outside (-1, 1) follow IEEE 754 into NaN and Inf.
func (j *Jet) Asin() *Jet {
	df := j.value.Mul(j.value).Neg().AddScalar(1).Sqrt().Reciprocal()
	return j.chainUnary(j.value.Asin(), df)
}

// Acos returns the inverse cosine with derivative factor -1/sqrt(1-v**2).
func (j *Jet) Acos() *Jet {
	df := j.value.Mul(j.value).Neg().AddScalar(1).Sqrt().Reciprocal().Neg()
	return j.chainUnary(j.value.Acos(), df)
}

// Atan returns the inverse tangent with derivative factor 1/(1+v**2).
func (j *Jet) Atan() *Jet {
	return j.chainUnary(j.value.Atan(), j.value.Mul(j.value).AddScalar(1).Reciprocal())
}

// Abs returns |j| with derivative factor sign(v). At v == 0 the factor is
// zero, the usual subgradient convention.
func (j *Jet) Abs() *Jet {
	return j.chainUnary(j.value.Abs(), j.value.Sign())
}

// Reciprocal returns 1/j with derivative factor -1/v**2.
func (j *Jet) Reciprocal() *Jet {
	value := j.value.Reciprocal()
	return j.chainUnary(value, value.Mul(value).Neg())
}
