package ndarray

import "github.com/pkg/errors"

// compare evaluates fn elementwise under broadcasting into a fresh mask.
func (a *Array) compare(b *Array, name string, fn func(x, y float64) bool) *Mask {
	outShape, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		panic(errors.Wrapf(ErrShapeMismatch, "%s: %v", name, err))
	}
	out := NewMask(outShape...)
	ia, ib := a.readIter(outShape), b.readIter(outShape)
	for i := range out.data {
		out.data[i] = fn(a.buf.data[ia.next()], b.buf.data[ib.next()])
	}
	return out
}

// Greater returns the elementwise a > b mask under broadcasting.
func (a *Array) Greater(b *Array) *Mask {
	return a.compare(b, "greater", func(x, y float64) bool { return x > y })
}

// GreaterEqual returns the elementwise a >= b mask under broadcasting.
func (a *Array) GreaterEqual(b *Array) *Mask {
	return a.compare(b, "greater_equal", func(x, y float64) bool { return x >= y })
}

// Less returns the elementwise a < b mask under broadcasting.
func (a *Array) Less(b *Array) *Mask {
	return a.compare(b, "less", func(x, y float64) bool { return x < y })
}

// LessEqual returns the elementwise a <= b mask under broadcasting.
func (a *Array) LessEqual(b *Array) *Mask {
	return a.compare(b, "less_equal", func(x, y float64) bool { return x <= y })
}

// EqualTo returns the elementwise a == b mask under broadcasting. NaN
// compares unequal to everything, including itself.
func (a *Array) EqualTo(b *Array) *Mask {
	return a.compare(b, "equal", func(x, y float64) bool { return x == y })
}

// NotEqualTo returns the elementwise a != b mask under broadcasting.
func (a *Array) NotEqualTo(b *Array) *Mask {
	return a.compare(b, "not_equal", func(x, y float64) bool { return x != y })
}
