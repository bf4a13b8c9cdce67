// Copyright 2026 Jet ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ndarray provides the public API for the dense float64 arrays that
// back jet differentiation: row-major n-dimensional storage, NumPy-style
// broadcasting, and reference-counted buffers with copy-on-write aliasing.
//
// Buffers move through three states. An Owned buffer has one holder and is
// writable; a Shared buffer has several holders and detaches into a fresh
// copy on the first in-place write; a Locked buffer is a broadcast view and
// rejects writes until it is copied.
//
// Example:
//
//	x := ndarray.Wrap([]float64{1, 2, 3}, 3)
//	y := x.MulScalar(2)            // fresh buffer
//	v := x.BroadcastTo(4, 3)       // locked view, no copy
//	_ = v.State()                  // ndarray.Locked
package ndarray

import (
	"github.com/jet-ml/jet/internal/ndarray"
)

// Array is a dense n-dimensional float64 array.
type Array = ndarray.Array

// Mask is a dense n-dimensional boolean array, produced by comparisons and
// consumed by Where.
type Mask = ndarray.Mask

// Shape is the list of dimension sizes of an array. An empty shape is a
// rank-0 array-scalar holding exactly one element.
type Shape = ndarray.Shape

// BufferState describes the ownership of an array's backing buffer.
type BufferState = ndarray.BufferState

// Buffer states.
const (
	Owned  BufferState = ndarray.Owned
	Shared BufferState = ndarray.Shared
	Locked BufferState = ndarray.Locked
)

// Sentinel errors. Chainable operations panic with these wrapped in context;
// constructors and in-place mutators return them.
var (
	ErrShapeMismatch   = ndarray.ErrShapeMismatch
	ErrNotWritable     = ndarray.ErrNotWritable
	ErrIndexOutOfRange = ndarray.ErrIndexOutOfRange
)

// New returns a zero-filled array of the given shape.
func New(shape ...int) *Array { return ndarray.New(shape...) }

// Wrap adopts a slice as an array's backing storage without copying. The
// slice length must match the shape's element count.
func Wrap(data []float64, shape ...int) *Array { return ndarray.Wrap(data, shape...) }

// FromSlice copies a slice into a new array of the given shape.
func FromSlice(data []float64, shape ...int) (*Array, error) {
	return ndarray.FromSlice(data, shape...)
}

// Scalar returns a rank-0 array-scalar holding v.
func Scalar(v float64) *Array { return ndarray.Scalar(v) }

// Zeros returns a zero-filled array of the given shape.
func Zeros(shape ...int) *Array { return ndarray.Zeros(shape...) }

// Ones returns a one-filled array of the given shape.
func Ones(shape ...int) *Array { return ndarray.Ones(shape...) }

// Full returns an array of the given shape with every element set to v.
func Full(v float64, shape ...int) *Array { return ndarray.Full(v, shape...) }

// Eye returns the n-by-n identity matrix.
func Eye(n int) *Array { return ndarray.Eye(n) }

// Arange returns evenly stepped values in the half-open interval
// [start, stop).
func Arange(start, stop, step float64) *Array { return ndarray.Arange(start, stop, step) }

// Linspace returns num evenly spaced values over the closed interval
// [start, stop].
func Linspace(start, stop float64, num int) *Array { return ndarray.Linspace(start, stop, num) }

// NewMask returns a false-filled mask of the given shape.
func NewMask(shape ...int) *Mask { return ndarray.NewMask(shape...) }

// MaskFromSlice copies a bool slice into a new mask of the given shape.
func MaskFromSlice(data []bool, shape ...int) (*Mask, error) {
	return ndarray.MaskFromSlice(data, shape...)
}

// Where selects elements from x where cond is true and from y elsewhere,
// broadcasting all three to a common shape.
func Where(cond *Mask, x, y *Array) *Array { return ndarray.Where(cond, x, y) }

// Concat joins arrays along an existing axis.
func Concat(axis int, arrays ...*Array) *Array { return ndarray.Concat(axis, arrays...) }

// Stack joins same-shaped arrays along a new axis.
func Stack(axis int, arrays ...*Array) *Array { return ndarray.Stack(axis, arrays...) }

// BroadcastShapes returns the common shape two shapes broadcast to, or
// ErrShapeMismatch when they are incompatible.
func BroadcastShapes(a, b Shape) (Shape, error) { return ndarray.BroadcastShapes(a, b) }

// NormalizeAxis resolves a possibly negative axis against a rank.
func NormalizeAxis(axis, rank int) int { return ndarray.NormalizeAxis(axis, rank) }
