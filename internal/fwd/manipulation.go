package fwd

import (
	"github.com/pkg/errors"

	"github.com/jet-ml/jet/internal/ndarray"
)

// Sort returns a copy sorted ascending along the axis. Each element's
// derivative row travels with it, so the derivative of the k-th order
// statistic is the derivative of whichever input element landed there. Ties
// keep their original order.
func (j *Jet) Sort(axis int) *Jet {
	axis = ndarray.NormalizeAxis(axis, j.value.Rank())
	perm := j.value.ArgSort(axis)
	outer, n, inner := spans(j.value.Shape(), axis)

	mapping := make([]int, len(perm))
	for o := 0; o < outer; o++ {
		for v := 0; v < n; v++ {
			for k := 0; k < inner; k++ {
				i := (o*n+v)*inner + k
				mapping[i] = (o*n+perm[i])*inner + k
			}
		}
	}
	return &Jet{
		value: j.value.TakeAlong(axis, perm),
		deriv: gatherRows(j.deriv, j.value.Shape(), j.Directions(), mapping),
	}
}

// Where selects elements from x where cond is true and from y elsewhere,
// carrying each selected element's derivative row. Jets with different
// direction counts combine under the constant rule.
func Where(cond *ndarray.Mask, x, y *Jet) *Jet {
	checkDirections(x, y, "where")
	d := max(x.Directions(), y.Directions())
	return &Jet{
		value: ndarray.Where(cond, x.value, y.value),
		deriv: ndarray.Where(cond.ExpandDims(-1), padDirections(x, d), padDirections(y, d)),
	}
}

// Maximum returns the elementwise larger of a and b with the winner's
// derivative row. On ties the left operand wins, fixing the one-sided
// derivative at kinks of piecewise expressions.
func Maximum(a, b *Jet) *Jet {
	return Where(b.value.Greater(a.value), b, a)
}

// Minimum returns the elementwise smaller of a and b with the winner's
// derivative row. On ties the left operand wins.
func Minimum(a, b *Jet) *Jet {
	return Where(b.value.Less(a.value), b, a)
}

// Concatenate joins jets along an existing axis. Direction counts may
// differ: every derivative is zero-padded up to the widest count before the
// payloads are joined.
func Concatenate(axis int, jets ...*Jet) *Jet {
	if len(jets) == 0 {
		panic(errors.Wrap(ndarray.ErrShapeMismatch, "concatenate: no jets given"))
	}
	axis = ndarray.NormalizeAxis(axis, jets[0].value.Rank())
	d := maxDirections(jets)

	values := make([]*ndarray.Array, len(jets))
	derivs := make([]*ndarray.Array, len(jets))
	for i, jt := range jets {
		values[i] = jt.value
		derivs[i] = padDirections(jt, d)
	}
	return &Jet{
		value: ndarray.Concat(axis, values...),
		deriv: ndarray.Concat(axis, derivs...),
	}
}

// Stack joins same-shaped jets along a new axis, zero-padding direction
// counts up to the widest input.
func Stack(axis int, jets ...*Jet) *Jet {
	if len(jets) == 0 {
		panic(errors.Wrap(ndarray.ErrShapeMismatch, "stack: no jets given"))
	}
	rank := jets[0].value.Rank()
	if axis < 0 {
		axis += rank + 1
	}
	d := maxDirections(jets)

	values := make([]*ndarray.Array, len(jets))
	derivs := make([]*ndarray.Array, len(jets))
	for i, jt := range jets {
		values[i] = jt.value
		derivs[i] = padDirections(jt, d)
	}
	return &Jet{
		value: ndarray.Stack(axis, values...),
		deriv: ndarray.Stack(axis, derivs...),
	}
}

func maxDirections(jets []*Jet) int {
	d := 0
	for _, jt := range jets {
		d = max(d, jt.Directions())
	}
	return d
}

// BroadcastTo stretches the jet to the target shape. Both payloads become
// locked broadcast views sharing the original buffers; in-place updates are
// rejected until the jet is copied.
func (j *Jet) BroadcastTo(shape ...int) *Jet {
	s := ndarray.Shape(shape)
	return &Jet{
		value: j.value.BroadcastTo(s...),
		deriv: j.deriv.BroadcastTo(s.Concat(j.Directions())...),
	}
}

// Reshape changes the value shape without touching the direction axis. One
// dimension may be -1 and is inferred. Contiguous payloads reshape as
// shared views.
func (j *Jet) Reshape(shape ...int) *Jet {
	value := j.value.Reshape(shape...)
	return &Jet{
		value: value,
		deriv: j.deriv.Reshape(value.Shape().Concat(j.Directions())...),
	}
}

// Flatten reshapes the value to rank 1.
func (j *Jet) Flatten() *Jet { return j.Reshape(-1) }

// Transpose permutes the value axes; the direction axis stays last. With no
// arguments the value axis order is reversed.
func (j *Jet) Transpose(axes ...int) *Jet {
	rank := j.value.Rank()
	if len(axes) == 0 {
		axes = make([]int, rank)
		for i := range axes {
			axes[i] = rank - 1 - i
		}
	}
	norm := make([]int, 0, rank+1)
	for _, axis := range axes {
		norm = append(norm, ndarray.NormalizeAxis(axis, rank))
	}
	return &Jet{
		value: j.value.Transpose(norm...),
		deriv: j.deriv.Transpose(append(norm, rank)...),
	}
}

// ExpandDims inserts a size-1 value axis before the given position.
func (j *Jet) ExpandDims(axis int) *Jet {
	rank := j.value.Rank()
	if axis < 0 {
		axis += rank + 1
	}
	return &Jet{
		value: j.value.ExpandDims(axis),
		deriv: j.deriv.ExpandDims(axis),
	}
}

// Squeeze removes the given size-1 value axes, or all of them when called
// without arguments. The direction axis is never squeezed.
func (j *Jet) Squeeze(axes ...int) *Jet {
	s := j.value.Shape()
	norm := make([]int, 0, len(s))
	if len(axes) == 0 {
		for i, dim := range s {
			if dim == 1 {
				norm = append(norm, i)
			}
		}
		if len(norm) == 0 {
			// Nothing to squeeze: still hand back views, not the receiver.
			return &Jet{
				value: j.value.Reshape(s...),
				deriv: j.deriv.Reshape(s.Concat(j.Directions())...),
			}
		}
	} else {
		for _, axis := range axes {
			norm = append(norm, ndarray.NormalizeAxis(axis, len(s)))
		}
	}
	return &Jet{
		value: j.value.Squeeze(norm...),
		deriv: j.deriv.Squeeze(norm...),
	}
}
