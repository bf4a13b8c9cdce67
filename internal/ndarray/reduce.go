package ndarray

import "github.com/pkg/errors"

// SumAll returns the sum of all elements. Zero for an empty array.
func (a *Array) SumAll() float64 {
	total := 0.0
	for _, v := range a.Float64s() {
		total += v
	}
	return total
}

// MeanAll returns the arithmetic mean of all elements.
func (a *Array) MeanAll() float64 {
	n := a.Size()
	if n == 0 {
		return 0
	}
	return a.SumAll() / float64(n)
}

// MaxAll returns the largest element. It panics on an empty array.
func (a *Array) MaxAll() float64 {
	vals := a.Float64s()
	return vals[a.argExtremeAll(vals, func(v, best float64) bool { return v > best })]
}

// MinAll returns the smallest element. It panics on an empty array.
func (a *Array) MinAll() float64 {
	vals := a.Float64s()
	return vals[a.argExtremeAll(vals, func(v, best float64) bool { return v < best })]
}

// ArgMaxAll returns the row-major flat index of the largest element, the
// first one on ties.
func (a *Array) ArgMaxAll() int {
	return a.argExtremeAll(a.Float64s(), func(v, best float64) bool { return v > best })
}

// ArgMinAll returns the row-major flat index of the smallest element, the
// first one on ties.
func (a *Array) ArgMinAll() int {
	return a.argExtremeAll(a.Float64s(), func(v, best float64) bool { return v < best })
}

func (a *Array) argExtremeAll(vals []float64, better func(v, best float64) bool) int {
	if len(vals) == 0 {
		panic(errors.Wrapf(ErrShapeMismatch, "reduction over empty array with shape %v", a.shape))
	}
	arg := 0
	for i, v := range vals {
		// Strict comparison keeps the first occurrence on ties.
		if better(v, vals[arg]) {
			arg = i
		}
	}
	return arg
}

// reducedShape drops the reduced axis, or keeps it with size 1.
func reducedShape(s Shape, axis int, keepAxis bool) Shape {
	out := make(Shape, 0, len(s))
	for i, dim := range s {
		switch {
		case i != axis:
			out = append(out, dim)
		case keepAxis:
			out = append(out, 1)
		}
	}
	return out
}

// axisSpans splits a shape around an axis into (outer, n, inner) so that the
// row-major flat index of coordinate j along the axis in outer block o and
// inner position k is (o*n+j)*inner + k.
func axisSpans(s Shape, axis int) (outer, n, inner int) {
	outer, inner = 1, 1
	for i := 0; i < axis; i++ {
		outer *= s[i]
	}
	for i := axis + 1; i < len(s); i++ {
		inner *= s[i]
	}
	return outer, s[axis], inner
}

// Sum reduces one axis by addition. A negative axis counts from the end.
func (a *Array) Sum(axis int, keepAxis bool) *Array {
	axis = normalizeAxis(axis, len(a.shape))
	vals := a.Float64s()
	outer, n, inner := axisSpans(a.shape, axis)
	out := New(reducedShape(a.shape, axis, keepAxis)...)
	for o := 0; o < outer; o++ {
		for k := 0; k < inner; k++ {
			total := 0.0
			for j := 0; j < n; j++ {
				total += vals[(o*n+j)*inner+k]
			}
			out.buf.data[o*inner+k] = total
		}
	}
	return out
}

// Mean reduces one axis by arithmetic mean.
func (a *Array) Mean(axis int, keepAxis bool) *Array {
	axis = normalizeAxis(axis, len(a.shape))
	n := a.shape[axis]
	return a.Sum(axis, keepAxis).MulScalar(1 / float64(n))
}

// Max reduces one axis by maximum, first occurrence on ties.
func (a *Array) Max(axis int, keepAxis bool) *Array {
	return a.reduceExtreme(axis, keepAxis, func(v, best float64) bool { return v > best })
}

// Min reduces one axis by minimum, first occurrence on ties.
func (a *Array) Min(axis int, keepAxis bool) *Array {
	return a.reduceExtreme(axis, keepAxis, func(v, best float64) bool { return v < best })
}

func (a *Array) reduceExtreme(axis int, keepAxis bool, better func(v, best float64) bool) *Array {
	axis = normalizeAxis(axis, len(a.shape))
	args := a.argExtreme(axis, better)
	vals := a.Float64s()
	outer, n, inner := axisSpans(a.shape, axis)
	out := New(reducedShape(a.shape, axis, keepAxis)...)
	for o := 0; o < outer; o++ {
		for k := 0; k < inner; k++ {
			out.buf.data[o*inner+k] = vals[(o*n+args[o*inner+k])*inner+k]
		}
	}
	return out
}

// ArgMax returns, for each lane along the axis, the position of the largest
// element (first on ties). The result is flattened row-major over the
// reduced shape.
func (a *Array) ArgMax(axis int) []int {
	axis = normalizeAxis(axis, len(a.shape))
	return a.argExtreme(axis, func(v, best float64) bool { return v > best })
}

// ArgMin returns, for each lane along the axis, the position of the smallest
// element (first on ties), flattened row-major over the reduced shape.
func (a *Array) ArgMin(axis int) []int {
	axis = normalizeAxis(axis, len(a.shape))
	return a.argExtreme(axis, func(v, best float64) bool { return v < best })
}

func (a *Array) argExtreme(axis int, better func(v, best float64) bool) []int {
	vals := a.Float64s()
	outer, n, inner := axisSpans(a.shape, axis)
	if n == 0 {
		panic(errors.Wrapf(ErrShapeMismatch, "reduction over empty axis %d of shape %v", axis, a.shape))
	}
	args := make([]int, outer*inner)
	for o := 0; o < outer; o++ {
		for k := 0; k < inner; k++ {
			arg := 0
			for j := 1; j < n; j++ {
				if better(vals[(o*n+j)*inner+k], vals[(o*n+arg)*inner+k]) {
					arg = j
				}
			}
			args[o*inner+k] = arg
		}
	}
	return args
}
