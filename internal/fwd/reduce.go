package fwd

import "github.com/jet-ml/jet/internal/ndarray"

// Sum reduces one value axis by addition. The derivative of a sum is the
// sum of the derivatives, so the derivative payload reduces the same axis
// while the trailing direction axis rides along untouched.
func (j *Jet) Sum(axis int, keepAxis bool) *Jet {
	axis = ndarray.NormalizeAxis(axis, j.value.Rank())
	return &Jet{
		value: j.value.Sum(axis, keepAxis),
		deriv: j.deriv.Sum(axis, keepAxis),
	}
}

// SumAll reduces every value axis into a rank-0 jet.
func (j *Jet) SumAll() *Jet {
	d := j.Directions()
	var deriv *ndarray.Array
	if d == 0 {
		deriv = ndarray.New(0)
	} else {
		deriv = j.deriv.Reshape(-1, d).Sum(0, false)
	}
	return &Jet{value: ndarray.Scalar(j.value.SumAll()), deriv: deriv}
}

// Mean reduces one value axis by arithmetic mean.
func (j *Jet) Mean(axis int, keepAxis bool) *Jet {
	axis = ndarray.NormalizeAxis(axis, j.value.Rank())
	n := j.value.Shape()[axis]
	return j.Sum(axis, keepAxis).DivScalar(float64(n))
}

// MeanAll reduces every value axis into a rank-0 jet holding the mean.
func (j *Jet) MeanAll() *Jet {
	n := j.value.Size()
	return j.SumAll().DivScalar(float64(n))
}

// Min reduces one axis by minimum. The derivative row of each selected
// element is carried into the result; ties select the first occurrence, so
// the derivative is the one-sided choice at kinks.
func (j *Jet) Min(axis int, keepAxis bool) *Jet {
	axis = ndarray.NormalizeAxis(axis, j.value.Rank())
	return j.selectReduce(axis, keepAxis, j.value.ArgMin(axis))
}

// Max reduces one axis by maximum, carrying the selected elements'
// derivative rows. Ties select the first occurrence.
func (j *Jet) Max(axis int, keepAxis bool) *Jet {
	axis = ndarray.NormalizeAxis(axis, j.value.Rank())
	return j.selectReduce(axis, keepAxis, j.value.ArgMax(axis))
}

// MinAll returns the smallest element as a rank-0 jet with that element's
// derivative row.
func (j *Jet) MinAll() *Jet {
	return j.selectAll(j.value.ArgMinAll())
}

// MaxAll returns the largest element as a rank-0 jet with that element's
// derivative row.
func (j *Jet) MaxAll() *Jet {
	return j.selectAll(j.value.ArgMaxAll())
}

func (j *Jet) selectAll(arg int) *Jet {
	return &Jet{
		value: ndarray.Scalar(j.value.Float64s()[arg]),
		deriv: gatherRows(j.deriv, ndarray.Shape{}, j.Directions(), []int{arg}),
	}
}

// selectReduce drops one axis, keeping for every lane the element named by
// args along with its derivative row.
func (j *Jet) selectReduce(axis int, keepAxis bool, args []int) *Jet {
	s := j.value.Shape()
	outer, n, inner := spans(s, axis)

	mapping := make([]int, len(args))
	for o := 0; o < outer; o++ {
		for k := 0; k < inner; k++ {
			i := o*inner + k
			mapping[i] = (o*n+args[i])*inner + k
		}
	}

	outShape := make(ndarray.Shape, 0, len(s))
	for i, dim := range s {
		switch {
		case i != axis:
			outShape = append(outShape, dim)
		case keepAxis:
			outShape = append(outShape, 1)
		}
	}

	vals := j.value.Float64s()
	data := make([]float64, len(mapping))
	for i, f := range mapping {
		data[i] = vals[f]
	}
	return &Jet{
		value: ndarray.Wrap(data, outShape...),
		deriv: gatherRows(j.deriv, outShape, j.Directions(), mapping),
	}
}

// spans splits a shape around an axis so the row-major flat index of local
// position v in outer block o and inner position k is (o*n+v)*inner + k.
func spans(s ndarray.Shape, axis int) (outer, n, inner int) {
	outer, inner = 1, 1
	for i := 0; i < axis; i++ {
		outer *= s[i]
	}
	for i := axis + 1; i < len(s); i++ {
		inner *= s[i]
	}
	return outer, s[axis], inner
}
