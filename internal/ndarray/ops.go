package ndarray

import (
	"math"

	"github.com/pkg/errors"
)

// binary applies fn elementwise under broadcasting and returns a fresh owned
// array. Same-shape contiguous operands take a flat fast path; everything
// else goes through strided iteration.
func (a *Array) binary(b *Array, name string, fn func(x, y float64) float64) *Array {
	outShape, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		panic(errors.Wrapf(ErrShapeMismatch, "%s: %v", name, err))
	}
	out := New(outShape...)

	if a.shape.Equal(b.shape) && a.IsContiguous() && b.IsContiguous() {
		ad, bd := a.buf.data, b.buf.data
		for i := range out.buf.data {
			out.buf.data[i] = fn(ad[i], bd[i])
		}
		return out
	}

	ia, ib := a.readIter(outShape), b.readIter(outShape)
	for i := range out.buf.data {
		out.buf.data[i] = fn(a.buf.data[ia.next()], b.buf.data[ib.next()])
	}
	return out
}

// binaryScalar applies fn against a fixed right-hand scalar.
func (a *Array) binaryScalar(s float64, fn func(x, y float64) float64) *Array {
	out := New(a.shape...)
	if a.IsContiguous() {
		for i, v := range a.buf.data {
			out.buf.data[i] = fn(v, s)
		}
		return out
	}
	it := newStridedIter(a.shape, a.strides)
	for i := range out.buf.data {
		out.buf.data[i] = fn(a.buf.data[it.next()], s)
	}
	return out
}

// binaryInPlace applies fn elementwise into a. The right operand must
// broadcast to a's shape; growing a is not allowed.
func (a *Array) binaryInPlace(b *Array, name string, fn func(x, y float64) float64) error {
	if !broadcastableTo(b.shape, a.shape) {
		return errors.Wrapf(ErrShapeMismatch, "%s in place: shape %v does not broadcast to %v", name, b.shape, a.shape)
	}
	if err := a.ensureWritable(); err != nil {
		return err
	}
	ia := newStridedIter(a.shape, a.strides)
	ib := b.readIter(a.shape)
	for i := 0; i < a.Size(); i++ {
		p := ia.next()
		a.buf.data[p] = fn(a.buf.data[p], b.buf.data[ib.next()])
	}
	return nil
}

// Add returns the elementwise sum a + b under broadcasting.
func (a *Array) Add(b *Array) *Array {
	return a.binary(b, "add", func(x, y float64) float64 { return x + y })
}

// Sub returns the elementwise difference a - b under broadcasting.
func (a *Array) Sub(b *Array) *Array {
	return a.binary(b, "sub", func(x, y float64) float64 { return x - y })
}

// Mul returns the elementwise product a * b under broadcasting.
func (a *Array) Mul(b *Array) *Array {
	return a.binary(b, "mul", func(x, y float64) float64 { return x * y })
}

// Div returns the elementwise quotient a / b under broadcasting. Division
// by zero follows IEEE 754 and produces Inf or NaN.
func (a *Array) Div(b *Array) *Array {
	return a.binary(b, "div", func(x, y float64) float64 { return x / y })
}

// Pow returns a raised elementwise to the powers in b under broadcasting.
func (a *Array) Pow(b *Array) *Array {
	return a.binary(b, "pow", math.Pow)
}

// Maximum returns the elementwise larger of a and b under broadcasting.
// On ties the left operand is considered selected.
func (a *Array) Maximum(b *Array) *Array {
	return a.binary(b, "maximum", func(x, y float64) float64 {
		if y > x {
			return y
		}
		return x
	})
}

// Minimum returns the elementwise smaller of a and b under broadcasting.
// On ties the left operand is considered selected.
func (a *Array) Minimum(b *Array) *Array {
	return a.binary(b, "minimum", func(x, y float64) float64 {
		if y < x {
			return y
		}
		return x
	})
}

// AddScalar returns a + s elementwise.
func (a *Array) AddScalar(s float64) *Array {
	return a.binaryScalar(s, func(x, y float64) float64 { return x + y })
}

// SubScalar returns a - s elementwise.
func (a *Array) SubScalar(s float64) *Array {
	return a.binaryScalar(s, func(x, y float64) float64 { return x - y })
}

// MulScalar returns a * s elementwise.
func (a *Array) MulScalar(s float64) *Array {
	return a.binaryScalar(s, func(x, y float64) float64 { return x * y })
}

// DivScalar returns a / s elementwise.
func (a *Array) DivScalar(s float64) *Array {
	return a.binaryScalar(s, func(x, y float64) float64 { return x / y })
}

// PowScalar returns a ** s elementwise.
func (a *Array) PowScalar(s float64) *Array {
	return a.binaryScalar(s, math.Pow)
}

// AddInPlace adds b into a elementwise. Returns ErrNotWritable for locked
// buffers; shared buffers detach first.
func (a *Array) AddInPlace(b *Array) error {
	return a.binaryInPlace(b, "add", func(x, y float64) float64 { return x + y })
}

// SubInPlace subtracts b from a elementwise in place.
func (a *Array) SubInPlace(b *Array) error {
	return a.binaryInPlace(b, "sub", func(x, y float64) float64 { return x - y })
}

// MulInPlace multiplies a by b elementwise in place.
func (a *Array) MulInPlace(b *Array) error {
	return a.binaryInPlace(b, "mul", func(x, y float64) float64 { return x * y })
}

// DivInPlace divides a by b elementwise in place.
func (a *Array) DivInPlace(b *Array) error {
	return a.binaryInPlace(b, "div", func(x, y float64) float64 { return x / y })
}

// AddScalarInPlace adds s to every element in place.
func (a *Array) AddScalarInPlace(s float64) error {
	if err := a.ensureWritable(); err != nil {
		return err
	}
	it := newStridedIter(a.shape, a.strides)
	for i := 0; i < a.Size(); i++ {
		a.buf.data[it.next()] += s
	}
	return nil
}

// MulScalarInPlace multiplies every element by s in place.
func (a *Array) MulScalarInPlace(s float64) error {
	if err := a.ensureWritable(); err != nil {
		return err
	}
	it := newStridedIter(a.shape, a.strides)
	for i := 0; i < a.Size(); i++ {
		a.buf.data[it.next()] *= s
	}
	return nil
}
