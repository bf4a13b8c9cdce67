package ndarray

// stridedIter walks the elements of a (possibly broadcast) view in logical
// row-major order, yielding flat positions into the backing buffer. It keeps
// an odometer of coordinates so each step is O(1) amortized instead of a
// div/mod chain per element.
type stridedIter struct {
	shape   Shape
	strides []int
	coords  []int
	flat    int
}

func newStridedIter(shape Shape, strides []int) *stridedIter {
	return &stridedIter{
		shape:   shape,
		strides: strides,
		coords:  make([]int, len(shape)),
	}
}

// next returns the current flat position and advances the odometer.
func (it *stridedIter) next() int {
	pos := it.flat
	for axis := len(it.shape) - 1; axis >= 0; axis-- {
		it.coords[axis]++
		it.flat += it.strides[axis]
		if it.coords[axis] < it.shape[axis] {
			return pos
		}
		it.flat -= it.coords[axis] * it.strides[axis]
		it.coords[axis] = 0
	}
	return pos
}

// broadcastStrides maps an operand's strides onto a broadcast output shape:
// axes are aligned on the right, missing leading axes and size-1 axes that
// stretch get stride 0, everything else keeps its stride.
func broadcastStrides(shape Shape, strides []int, out Shape) []int {
	result := make([]int, len(out))
	offset := len(out) - len(shape)
	for j, dim := range shape {
		if dim == 1 && out[offset+j] != 1 {
			result[offset+j] = 0
		} else {
			result[offset+j] = strides[j]
		}
	}
	return result
}

// readIter returns an iterator over the array's elements viewed through the
// broadcast output shape.
func (a *Array) readIter(out Shape) *stridedIter {
	return newStridedIter(out, broadcastStrides(a.shape, a.strides, out))
}
