package ndarray

import (
	"sort"

	"github.com/pkg/errors"
)

// view returns a new array sharing a's buffer with the given layout. The
// source moves to the Shared state; the view inherits a's lock.
func (a *Array) view(shape Shape, strides []int) *Array {
	return &Array{
		buf:     a.buf.retain(),
		shape:   shape,
		strides: strides,
		locked:  a.locked,
	}
}

// Reshape returns an array with the same elements and a new shape. One
// dimension may be -1 and is inferred from the element count. Contiguous
// arrays reshape as views; broadcast views are materialized first.
func (a *Array) Reshape(shape ...int) *Array {
	s := make(Shape, len(shape))
	copy(s, shape)

	infer := -1
	known := 1
	for i, dim := range s {
		switch {
		case dim == -1 && infer == -1:
			infer = i
		case dim < 0:
			panic(errors.Wrapf(ErrShapeMismatch, "reshape: invalid target shape %v", s))
		default:
			known *= dim
		}
	}
	if infer >= 0 {
		if known == 0 || a.Size()%known != 0 {
			panic(errors.Wrapf(ErrShapeMismatch, "reshape: cannot infer axis %d of %v from %d elements", infer, s, a.Size()))
		}
		s[infer] = a.Size() / known
		known *= s[infer]
	}
	if known != a.Size() {
		panic(errors.Wrapf(ErrShapeMismatch, "reshape: %d elements cannot fill shape %v", a.Size(), s))
	}

	if !a.IsContiguous() {
		out := a.Copy()
		out.shape = s
		out.strides = s.ComputeStrides()
		return out
	}
	return a.view(s, s.ComputeStrides())
}

// Flatten returns a rank-1 view (or copy, for broadcast views) of the
// elements in row-major order.
func (a *Array) Flatten() *Array { return a.Reshape(-1) }

// ExpandDims returns a view with a size-1 axis inserted before the given
// position. Axis may be negative; -1 appends a trailing axis.
func (a *Array) ExpandDims(axis int) *Array {
	rank := len(a.shape)
	if axis < 0 {
		axis += rank + 1
	}
	if axis < 0 || axis > rank {
		panic(errors.Wrapf(ErrIndexOutOfRange, "expand: axis %d out of range for rank %d", axis, rank))
	}
	shape := make(Shape, 0, rank+1)
	strides := make([]int, 0, rank+1)
	shape = append(append(shape, a.shape[:axis]...), 1)
	shape = append(shape, a.shape[axis:]...)
	strides = append(append(strides, a.strides[:axis]...), 0)
	strides = append(strides, a.strides[axis:]...)
	return a.view(shape, strides)
}

// Squeeze returns a view with the given size-1 axes removed. With no
// arguments, every size-1 axis is removed.
func (a *Array) Squeeze(axes ...int) *Array {
	drop := make(map[int]bool, len(axes))
	if len(axes) == 0 {
		for i, dim := range a.shape {
			if dim == 1 {
				drop[i] = true
			}
		}
	} else {
		for _, axis := range axes {
			axis = normalizeAxis(axis, len(a.shape))
			if a.shape[axis] != 1 {
				panic(errors.Wrapf(ErrShapeMismatch, "squeeze: axis %d of shape %v has size %d", axis, a.shape, a.shape[axis]))
			}
			drop[axis] = true
		}
	}
	shape := make(Shape, 0, len(a.shape))
	strides := make([]int, 0, len(a.shape))
	for i, dim := range a.shape {
		if !drop[i] {
			shape = append(shape, dim)
			strides = append(strides, a.strides[i])
		}
	}
	return a.view(shape, strides)
}

// BroadcastTo returns a read-only view stretched to the target shape.
// Stretched axes get stride 0, so distinct positions alias one element; the
// view is therefore Locked and rejects writes until copied.
func (a *Array) BroadcastTo(shape ...int) *Array {
	s := Shape(shape).Clone()
	if !broadcastableTo(a.shape, s) {
		panic(errors.Wrapf(ErrShapeMismatch, "broadcast: %v does not broadcast to %v", a.shape, s))
	}
	v := a.view(s, broadcastStrides(a.shape, a.strides, s))
	v.locked = true
	return v
}

// Transpose returns a copy with axes permuted. With no arguments the axis
// order is reversed.
func (a *Array) Transpose(axes ...int) *Array {
	rank := len(a.shape)
	if len(axes) == 0 {
		axes = make([]int, rank)
		for i := range axes {
			axes[i] = rank - 1 - i
		}
	}
	if len(axes) != rank {
		panic(errors.Wrapf(ErrShapeMismatch, "transpose: %d axes given for rank %d", len(axes), rank))
	}
	seen := make([]bool, rank)
	outShape := make(Shape, rank)
	srcStrides := make([]int, rank)
	for i, axis := range axes {
		axis = normalizeAxis(axis, rank)
		if seen[axis] {
			panic(errors.Wrapf(ErrShapeMismatch, "transpose: axis %d repeated", axis))
		}
		seen[axis] = true
		outShape[i] = a.shape[axis]
		srcStrides[i] = a.strides[axis]
	}

	out := New(outShape...)
	it := newStridedIter(outShape, srcStrides)
	for i := range out.buf.data {
		out.buf.data[i] = a.buf.data[it.next()]
	}
	return out
}

// Concat joins arrays along an existing axis. All inputs must share rank
// and every dimension except the concatenation axis.
func Concat(axis int, arrays ...*Array) *Array {
	if len(arrays) == 0 {
		panic(errors.Wrap(ErrShapeMismatch, "concat: no arrays given"))
	}
	first := arrays[0]
	axis = normalizeAxis(axis, len(first.shape))

	outShape := first.shape.Clone()
	for i, arr := range arrays[1:] {
		if len(arr.shape) != len(first.shape) {
			panic(errors.Wrapf(ErrShapeMismatch, "concat: rank %d vs %d at input %d", len(arr.shape), len(first.shape), i+1))
		}
		for d, dim := range arr.shape {
			if d == axis {
				continue
			}
			if dim != first.shape[d] {
				panic(errors.Wrapf(ErrShapeMismatch, "concat: axis %d mismatch at input %d: %v vs %v", d, i+1, arr.shape, first.shape))
			}
		}
		outShape[axis] += arr.shape[axis]
	}

	out := New(outShape...)
	outer, _, inner := axisSpans(outShape, axis)
	nOut := outShape[axis]
	offset := 0
	for _, arr := range arrays {
		vals := arr.Float64s()
		n := arr.shape[axis]
		for o := 0; o < outer; o++ {
			src := vals[o*n*inner : (o+1)*n*inner]
			dst := out.buf.data[(o*nOut+offset)*inner : (o*nOut+offset+n)*inner]
			copy(dst, src)
		}
		offset += n
	}
	return out
}

// Stack joins same-shaped arrays along a new axis at the given position.
func Stack(axis int, arrays ...*Array) *Array {
	if len(arrays) == 0 {
		panic(errors.Wrap(ErrShapeMismatch, "stack: no arrays given"))
	}
	expanded := make([]*Array, len(arrays))
	for i, arr := range arrays {
		if !arr.shape.Equal(arrays[0].shape) {
			panic(errors.Wrapf(ErrShapeMismatch, "stack: input %d has shape %v, want %v", i, arr.shape, arrays[0].shape))
		}
		rank := len(arr.shape)
		pos := axis
		if pos < 0 {
			pos += rank + 1
		}
		expanded[i] = arr.ExpandDims(pos)
	}
	return Concat(axis, expanded...)
}

// ArgSort returns, for every lane along the axis, the permutation of local
// indices that sorts the lane ascending. The permutations are flattened
// row-major over the input shape. The sort is stable, so equal elements
// keep their original order.
func (a *Array) ArgSort(axis int) []int {
	axis = normalizeAxis(axis, len(a.shape))
	vals := a.Float64s()
	outer, n, inner := axisSpans(a.shape, axis)

	perm := make([]int, a.Size())
	lane := make([]int, n)
	for o := 0; o < outer; o++ {
		for k := 0; k < inner; k++ {
			for j := range lane {
				lane[j] = j
			}
			sort.SliceStable(lane, func(x, y int) bool {
				return vals[(o*n+lane[x])*inner+k] < vals[(o*n+lane[y])*inner+k]
			})
			for j, p := range lane {
				perm[(o*n+j)*inner+k] = p
			}
		}
	}
	return perm
}

// TakeAlong gathers elements along the axis using per-lane local indices.
// The indices are laid out row-major over the result shape, which matches
// the input shape except that the axis takes the length implied by the
// index count.
func (a *Array) TakeAlong(axis int, indices []int) *Array {
	axis = normalizeAxis(axis, len(a.shape))
	vals := a.Float64s()
	outer, n, inner := axisSpans(a.shape, axis)

	if outer*inner == 0 || len(indices)%(outer*inner) != 0 {
		panic(errors.Wrapf(ErrShapeMismatch, "take: %d indices do not tile shape %v along axis %d", len(indices), a.shape, axis))
	}
	m := len(indices) / (outer * inner)
	outShape := a.shape.Clone()
	outShape[axis] = m

	out := New(outShape...)
	for o := 0; o < outer; o++ {
		for j := 0; j < m; j++ {
			for k := 0; k < inner; k++ {
				idx := indices[(o*m+j)*inner+k]
				if idx < 0 || idx >= n {
					panic(errors.Wrapf(ErrIndexOutOfRange, "take: index %d out of range for axis %d with size %d", idx, axis, n))
				}
				out.buf.data[(o*m+j)*inner+k] = vals[(o*n+idx)*inner+k]
			}
		}
	}
	return out
}

// SortAxis returns a copy sorted ascending along the axis.
func (a *Array) SortAxis(axis int) *Array {
	return a.TakeAlong(axis, a.ArgSort(axis))
}
