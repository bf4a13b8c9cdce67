// Package ndarray implements the dense n-dimensional float64 arrays that back
// forward-mode differentiation: row-major storage, NumPy-style broadcasting,
// and reference-counted buffers with copy-on-write aliasing.
//
// Every array is in one of three buffer states. Owned arrays hold the only
// reference to their storage and mutate in place. Shared arrays alias storage
// with other arrays and copy before their first in-place write. Locked arrays
// are broadcast views whose elements overlap in memory; they reject writes
// with ErrNotWritable and must be copied to become writable again.
package ndarray

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Array is a dense n-dimensional array of float64 values. The zero value is
// not usable; construct arrays with New, FromSlice, Wrap, or the creation
// helpers (Zeros, Ones, Full, Eye, Arange, Linspace).
type Array struct {
	buf     *buffer
	shape   Shape
	strides []int
	// locked marks this view non-writable. Broadcast views are locked
	// because their elements overlap in the buffer.
	locked bool
}

// New returns a zero-filled array with the given shape. It panics on
// negative dimensions; zero-sized axes are allowed.
func New(shape ...int) *Array {
	s := Shape(shape).Clone()
	if err := s.Validate(); err != nil {
		panic(errors.Wrap(ErrShapeMismatch, err.Error()))
	}
	return &Array{
		buf:     newBuffer(s.NumElements()),
		shape:   s,
		strides: s.ComputeStrides(),
	}
}

// Wrap adopts data as the backing buffer of a new owned array without
// copying. The caller must not retain the slice. It panics when the data
// length does not match the shape.
func Wrap(data []float64, shape ...int) *Array {
	s := Shape(shape).Clone()
	if err := s.Validate(); err != nil {
		panic(errors.Wrap(ErrShapeMismatch, err.Error()))
	}
	if len(data) != s.NumElements() {
		panic(errors.Wrapf(ErrShapeMismatch, "wrap: %d values cannot fill shape %v", len(data), s))
	}
	b := &buffer{data: data}
	b.refs.Store(1)
	return &Array{buf: b, shape: s, strides: s.ComputeStrides()}
}

// FromSlice copies data into a new owned array with the given shape.
func FromSlice(data []float64, shape ...int) (*Array, error) {
	s := Shape(shape).Clone()
	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(ErrShapeMismatch, err.Error())
	}
	if len(data) != s.NumElements() {
		return nil, errors.Wrapf(ErrShapeMismatch, "%d values cannot fill shape %v", len(data), s)
	}
	a := New(shape...)
	copy(a.buf.data, data)
	return a, nil
}

// Scalar returns a rank-0 array holding a single value.
func Scalar(v float64) *Array {
	a := New()
	a.buf.data[0] = v
	return a
}

// Full returns an array of the given shape with every element set to v.
func Full(v float64, shape ...int) *Array {
	a := New(shape...)
	for i := range a.buf.data {
		a.buf.data[i] = v
	}
	return a
}

// Zeros returns a zero-filled array. Alias for New, matching the usual
// creation vocabulary.
func Zeros(shape ...int) *Array { return New(shape...) }

// Ones returns an array filled with ones.
func Ones(shape ...int) *Array { return Full(1, shape...) }

// Eye returns the n-by-n identity matrix.
func Eye(n int) *Array {
	a := New(n, n)
	for i := 0; i < n; i++ {
		a.buf.data[i*n+i] = 1
	}
	return a
}

// Arange returns evenly spaced values in the half-open interval [start, stop)
// with the given step. It panics on a zero step.
func Arange(start, stop, step float64) *Array {
	if step == 0 {
		panic(errors.New("arange: step must be non-zero"))
	}
	n := int(math.Ceil((stop - start) / step))
	if n < 0 {
		n = 0
	}
	data := make([]float64, n)
	for i := range data {
		data[i] = start + float64(i)*step
	}
	return Wrap(data, n)
}

// Linspace returns num evenly spaced values over the closed interval
// [start, stop].
func Linspace(start, stop float64, num int) *Array {
	data := make([]float64, num)
	if num == 1 {
		data[0] = start
	} else {
		step := (stop - start) / float64(num-1)
		for i := range data {
			data[i] = start + float64(i)*step
		}
	}
	return Wrap(data, num)
}

// Shape returns the array's shape. The caller must not modify it.
func (a *Array) Shape() Shape { return a.shape }

// Rank returns the number of axes.
func (a *Array) Rank() int { return len(a.shape) }

// Size returns the total number of elements.
func (a *Array) Size() int { return a.shape.NumElements() }

// State reports the buffer state: Owned, Shared, or Locked.
func (a *Array) State() BufferState {
	switch {
	case a.locked:
		return Locked
	case a.buf.isUnique():
		return Owned
	default:
		return Shared
	}
}

// SharesBufferWith reports whether the two arrays alias the same backing
// buffer.
func (a *Array) SharesBufferWith(b *Array) bool { return a.buf == b.buf }

// IsContiguous reports whether the elements are laid out densely in
// row-major order. Broadcast views are not contiguous.
func (a *Array) IsContiguous() bool {
	expect := a.shape.ComputeStrides()
	for i, s := range a.strides {
		if s != expect[i] && a.shape[i] > 1 {
			return false
		}
	}
	return true
}

// flatIndex translates a multi-index into a position in the backing buffer.
func (a *Array) flatIndex(indices []int) (int, error) {
	if len(indices) != len(a.shape) {
		return 0, errors.Wrapf(ErrIndexOutOfRange, "got %d indices for rank %d", len(indices), len(a.shape))
	}
	flat := 0
	for i, idx := range indices {
		if idx < 0 || idx >= a.shape[i] {
			return 0, errors.Wrapf(ErrIndexOutOfRange, "index %d out of range for axis %d with size %d", idx, i, a.shape[i])
		}
		flat += idx * a.strides[i]
	}
	return flat, nil
}

// At returns the element at the given multi-index. A rank-0 array takes no
// indices. It panics on out-of-range indices.
func (a *Array) At(indices ...int) float64 {
	flat, err := a.flatIndex(indices)
	if err != nil {
		panic(err)
	}
	return a.buf.data[flat]
}

// Set writes the element at the given multi-index. It returns
// ErrNotWritable for locked buffers and copies first when the buffer is
// shared.
func (a *Array) Set(v float64, indices ...int) error {
	if err := a.ensureWritable(); err != nil {
		return err
	}
	flat, err := a.flatIndex(indices)
	if err != nil {
		return err
	}
	a.buf.data[flat] = v
	return nil
}

// Item returns the value of a single-element array. It panics when the
// array holds more or fewer than one element.
func (a *Array) Item() float64 {
	if a.Size() != 1 {
		panic(errors.Wrapf(ErrShapeMismatch, "item: array with shape %v is not a scalar", a.shape))
	}
	// A single logical element always lives at flat position 0, even in a
	// broadcast view, because every index contribution is zero.
	return a.buf.data[0]
}

// Float64s returns the elements in row-major order. For contiguous arrays
// the returned slice aliases the backing buffer and must be treated as
// read-only; broadcast views are materialized into a fresh slice.
func (a *Array) Float64s() []float64 {
	if a.IsContiguous() {
		return a.buf.data
	}
	out := make([]float64, a.Size())
	it := newStridedIter(a.shape, a.strides)
	for i := range out {
		out[i] = a.buf.data[it.next()]
	}
	return out
}

// Copy returns an owned, contiguous deep copy of the array. This is the only
// way to obtain a writable array from a locked broadcast view.
func (a *Array) Copy() *Array {
	out := New(a.shape...)
	if a.IsContiguous() {
		copy(out.buf.data, a.buf.data)
		return out
	}
	it := newStridedIter(a.shape, a.strides)
	for i := range out.buf.data {
		out.buf.data[i] = a.buf.data[it.next()]
	}
	return out
}

// Release drops this array's claim on its buffer. A shared sibling that
// becomes the last holder returns to the Owned state. Using the array after
// Release is invalid.
func (a *Array) Release() {
	if a.buf != nil {
		a.buf.release()
		a.buf = nil
	}
}

// ensureWritable prepares the array for an in-place write: locked views are
// rejected, shared buffers are detached by copying.
func (a *Array) ensureWritable() error {
	if a.locked {
		return errors.Wrapf(ErrNotWritable, "array with shape %v is a locked view; Copy it to write", a.shape)
	}
	if !a.buf.isUnique() {
		a.detach()
	}
	return nil
}

// detach replaces the backing buffer with an owned contiguous copy.
func (a *Array) detach() {
	fresh := a.Copy()
	a.buf.release()
	a.buf = fresh.buf
	a.strides = fresh.strides
}

// Equal reports exact elementwise equality of shape and values.
func (a *Array) Equal(b *Array) bool {
	if !a.shape.Equal(b.shape) {
		return false
	}
	av, bv := a.Float64s(), b.Float64s()
	for i := range av {
		if av[i] != bv[i] {
			return false
		}
	}
	return true
}

// EqualApprox reports elementwise equality of shape and values within tol.
func (a *Array) EqualApprox(b *Array, tol float64) bool {
	if !a.shape.Equal(b.shape) {
		return false
	}
	av, bv := a.Float64s(), b.Float64s()
	for i := range av {
		if math.Abs(av[i]-bv[i]) > tol {
			return false
		}
	}
	return true
}

// String renders the array for debugging, truncating long buffers.
func (a *Array) String() string {
	const maxShown = 16
	vals := a.Float64s()
	var sb strings.Builder
	sb.WriteString("Array(shape=")
	sb.WriteString(a.shape.String())
	sb.WriteString(", data=[")
	for i, v := range vals {
		if i == maxShown {
			fmt.Fprintf(&sb, "... +%d more", len(vals)-maxShown)
			break
		}
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%g", v)
	}
	sb.WriteString("])")
	return sb.String()
}
