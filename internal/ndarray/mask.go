package ndarray

import "github.com/pkg/errors"

// Mask is a dense boolean array produced by comparisons and consumed by
// Where. Masks are always contiguous.
type Mask struct {
	data  []bool
	shape Shape
}

// NewMask returns an all-false mask with the given shape.
func NewMask(shape ...int) *Mask {
	s := Shape(shape).Clone()
	if err := s.Validate(); err != nil {
		panic(errors.Wrap(ErrShapeMismatch, err.Error()))
	}
	return &Mask{data: make([]bool, s.NumElements()), shape: s}
}

// MaskFromSlice copies data into a new mask with the given shape.
func MaskFromSlice(data []bool, shape ...int) (*Mask, error) {
	s := Shape(shape).Clone()
	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(ErrShapeMismatch, err.Error())
	}
	if len(data) != s.NumElements() {
		return nil, errors.Wrapf(ErrShapeMismatch, "%d values cannot fill shape %v", len(data), s)
	}
	m := NewMask(shape...)
	copy(m.data, data)
	return m, nil
}

// Shape returns the mask's shape. The caller must not modify it.
func (m *Mask) Shape() Shape { return m.shape }

// Size returns the total number of elements.
func (m *Mask) Size() int { return m.shape.NumElements() }

// At returns the element at the given multi-index.
func (m *Mask) At(indices ...int) bool {
	if len(indices) != len(m.shape) {
		panic(errors.Wrapf(ErrIndexOutOfRange, "got %d indices for rank %d", len(indices), len(m.shape)))
	}
	strides := m.shape.ComputeStrides()
	flat := 0
	for i, idx := range indices {
		if idx < 0 || idx >= m.shape[i] {
			panic(errors.Wrapf(ErrIndexOutOfRange, "index %d out of range for axis %d with size %d", idx, i, m.shape[i]))
		}
		flat += idx * strides[i]
	}
	return m.data[flat]
}

// Bools returns the mask elements in row-major order. The slice aliases the
// mask storage.
func (m *Mask) Bools() []bool { return m.data }

// Any reports whether at least one element is true.
func (m *Mask) Any() bool {
	for _, v := range m.data {
		if v {
			return true
		}
	}
	return false
}

// All reports whether every element is true. True for an empty mask.
func (m *Mask) All() bool {
	for _, v := range m.data {
		if !v {
			return false
		}
	}
	return true
}

// ExpandDims returns a mask with a size-1 axis inserted before the given
// position, sharing the same elements. Axis may be negative; -1 appends a
// trailing axis.
func (m *Mask) ExpandDims(axis int) *Mask {
	rank := len(m.shape)
	if axis < 0 {
		axis += rank + 1
	}
	if axis < 0 || axis > rank {
		panic(errors.Wrapf(ErrIndexOutOfRange, "expand: axis %d out of range for rank %d", axis, rank))
	}
	shape := make(Shape, 0, rank+1)
	shape = append(append(shape, m.shape[:axis]...), 1)
	shape = append(shape, m.shape[axis:]...)
	return &Mask{data: m.data, shape: shape}
}

// Not returns the elementwise negation.
func (m *Mask) Not() *Mask {
	out := NewMask(m.shape...)
	for i, v := range m.data {
		out.data[i] = !v
	}
	return out
}

// Where selects elements from x where cond is true and from y elsewhere.
// All three operands broadcast to a common shape.
func Where(cond *Mask, x, y *Array) *Array {
	s, err := BroadcastShapes(x.shape, y.shape)
	if err != nil {
		panic(errors.Wrapf(ErrShapeMismatch, "where: %v", err))
	}
	outShape, err := BroadcastShapes(s, cond.shape)
	if err != nil {
		panic(errors.Wrapf(ErrShapeMismatch, "where: %v", err))
	}
	out := New(outShape...)
	ic := newStridedIter(outShape, broadcastStrides(cond.shape, cond.shape.ComputeStrides(), outShape))
	ix, iy := x.readIter(outShape), y.readIter(outShape)
	for i := range out.buf.data {
		px, py := ix.next(), iy.next()
		if cond.data[ic.next()] {
			out.buf.data[i] = x.buf.data[px]
		} else {
			out.buf.data[i] = y.buf.data[py]
		}
	}
	return out
}
