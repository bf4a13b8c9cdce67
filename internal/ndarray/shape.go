package ndarray

import (
	"fmt"
	"strings"
)

// Shape represents the dimensions of an array. An empty Shape is a scalar.
type Shape []int

// NumElements returns the total number of elements for the shape.
// A scalar (rank 0) has one element; any zero-sized axis yields zero.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Rank returns the number of axes.
func (s Shape) Rank() int { return len(s) }

// IsScalar reports whether the shape has rank 0 (an array-scalar).
func (s Shape) IsScalar() bool { return len(s) == 0 }

// Validate checks that every dimension is non-negative.
// Zero-sized axes are legal: a constant carries a derivative axis of size 0.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("invalid dimension at axis %d: %d", i, dim)
		}
	}
	return nil
}

// Equal reports whether the two shapes have identical dimensions.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// String formats the shape like "(2, 3)". A scalar formats as "()".
func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, dim := range s {
		parts[i] = fmt.Sprintf("%d", dim)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ComputeStrides returns row-major element strides for the shape:
// stride[i] is the product of all dimensions after axis i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}
	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// Concat returns the shape extended by the given trailing dimensions.
// Used to build derivative shapes: value shape + (directions,).
func (s Shape) Concat(trailing ...int) Shape {
	out := make(Shape, 0, len(s)+len(trailing))
	out = append(out, s...)
	out = append(out, trailing...)
	return out
}

// BroadcastShapes applies NumPy broadcasting to two shapes: axes are
// compared right-to-left, and each pair must be equal or contain a 1.
// Missing leading axes count as 1.
func BroadcastShapes(a, b Shape) (Shape, error) {
	maxLen := max(len(a), len(b))
	result := make(Shape, maxLen)

	for i := 0; i < maxLen; i++ {
		aDim, bDim := 1, 1
		if idx := len(a) - 1 - i; idx >= 0 {
			aDim = a[idx]
		}
		if idx := len(b) - 1 - i; idx >= 0 {
			bDim = b[idx]
		}

		switch {
		case aDim == bDim:
			result[maxLen-1-i] = aDim
		case aDim == 1:
			result[maxLen-1-i] = bDim
		case bDim == 1:
			result[maxLen-1-i] = aDim
		default:
			return nil, fmt.Errorf("shapes %v and %v are not broadcast-compatible (axis %d: %d vs %d)",
				a, b, maxLen-1-i, aDim, bDim)
		}
	}
	return result, nil
}

// broadcastableTo reports whether src can be broadcast to dst following the
// one-sided rule: src axes align right, and each must equal the target or be 1.
func broadcastableTo(src, dst Shape) bool {
	if len(src) > len(dst) {
		return false
	}
	offset := len(dst) - len(src)
	for i, dim := range src {
		if dim != 1 && dim != dst[offset+i] {
			return false
		}
	}
	return true
}

// NormalizeAxis resolves a possibly negative axis (-1 = last) against the
// given rank. It panics on out-of-range values.
func NormalizeAxis(axis, rank int) int { return normalizeAxis(axis, rank) }

// normalizeAxis converts a possibly negative axis (-1 = last) into the
// canonical index, panicking on out-of-range values.
func normalizeAxis(axis, rank int) int {
	orig := axis
	if axis < 0 {
		axis += rank
	}
	if axis < 0 || axis >= rank {
		panic(fmt.Sprintf("axis %d out of range for rank %d", orig, rank))
	}
	return axis
}
