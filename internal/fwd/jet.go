// Package fwd implements dense forward-mode automatic differentiation. A Jet
// carries a value array of shape S together with a derivative array of shape
// S+(D,), where D is the number of differentiation directions; every
// operation propagates both payloads through the chain rule in lock-step.
//
// Derivative buffers follow the same aliasing discipline as plain arrays:
// adding a constant aliases the input's derivative as a locked broadcast
// view instead of copying it, multiplications allocate fresh buffers, and
// in-place updates go through copy-on-write. Binary operations require both
// operands to carry the same number of directions unless one is a constant
// (zero directions), which contributes nothing to the derivative.
package fwd

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/jet-ml/jet/internal/ndarray"
)

// Sentinel errors for jet construction and combination.
var (
	// ErrDirectionsMismatch indicates two jets with different non-zero
	// direction counts in a binary operation.
	ErrDirectionsMismatch = errors.New("direction count mismatch")

	// ErrInvalidOperand indicates a value that is neither a *Jet, an
	// *ndarray.Array, nor a numeric scalar.
	ErrInvalidOperand = errors.New("invalid operand")
)

// Jet is a first-order forward-mode value: an array of primal values plus,
// for every element, a row of D partial derivatives stored along a trailing
// axis. The zero value is not usable; build jets with New, Const, Identity,
// or Variable.
type Jet struct {
	value *ndarray.Array // shape S
	deriv *ndarray.Array // shape S + (D,)
}

// New builds a jet from explicit value and derivative arrays. The derivative
// shape must equal the value shape plus one trailing direction axis.
func New(value, deriv *ndarray.Array) (*Jet, error) {
	vs, ds := value.Shape(), deriv.Shape()
	if len(ds) != len(vs)+1 {
		return nil, errors.Wrapf(ndarray.ErrShapeMismatch,
			"derivative rank %d does not extend value rank %d by one", len(ds), len(vs))
	}
	for i, dim := range vs {
		if ds[i] != dim {
			return nil, errors.Wrapf(ndarray.ErrShapeMismatch,
				"derivative shape %v does not extend value shape %v", ds, vs)
		}
	}
	return &Jet{value: value, deriv: deriv}, nil
}

// Const wraps an array as a jet with zero directions. Constants pass through
// arithmetic without contributing derivatives.
func Const(value *ndarray.Array) *Jet {
	return &Jet{value: value, deriv: ndarray.New(value.Shape().Concat(0)...)}
}

// ConstScalar wraps a plain number as a zero-direction jet.
func ConstScalar(v float64) *Jet { return Const(ndarray.Scalar(v)) }

// Identity returns a jet differentiated with respect to itself: every
// element gets its own direction, so the derivative is an identity matrix
// reshaped to S+(N,).
func Identity(value *ndarray.Array) *Jet {
	n := value.Size()
	return &Jet{
		value: value,
		deriv: ndarray.Eye(n).Reshape(value.Shape().Concat(n)...),
	}
}

// IdentityBound returns a jet differentiated with respect to the leading
// axes only: bound must be a trailing suffix of the value shape, and
// elements that differ only in the bound axes share a direction. The
// derivative is a locked broadcast view, so it must be copied before any
// in-place update.
func IdentityBound(value *ndarray.Array, bound ndarray.Shape) (*Jet, error) {
	vs := value.Shape()
	if len(bound) > len(vs) {
		return nil, errors.Wrapf(ndarray.ErrShapeMismatch,
			"bound shape %v longer than value shape %v", bound, vs)
	}
	split := len(vs) - len(bound)
	for i, dim := range bound {
		if vs[split+i] != dim {
			return nil, errors.Wrapf(ndarray.ErrShapeMismatch,
				"bound shape %v is not a suffix of value shape %v", bound, vs)
		}
	}

	free := vs[:split]
	n := free.NumElements()
	seed := free.Clone()
	for range bound {
		seed = seed.Concat(1)
	}
	deriv := ndarray.Eye(n).Reshape(seed.Concat(n)...).BroadcastTo(vs.Concat(n)...)
	return &Jet{value: value, deriv: deriv}, nil
}

// Variable returns a scalar jet with a single direction seeded to 1, the
// usual starting point for one-dimensional root finding.
func Variable(v float64) *Jet { return Identity(ndarray.Scalar(v)) }

// AsJet coerces a value into a jet. Jets pass through unchanged, so the
// coercion is idempotent; arrays and numbers become zero-direction
// constants. Any other type panics with ErrInvalidOperand.
func AsJet(v any) *Jet {
	switch x := v.(type) {
	case *Jet:
		return x
	case *ndarray.Array:
		return Const(x)
	case float64:
		return ConstScalar(x)
	case int:
		return ConstScalar(float64(x))
	default:
		panic(errors.Wrapf(ErrInvalidOperand, "cannot treat %T as a jet operand", v))
	}
}

// Value returns the primal payload. The array is the jet's own storage, not
// a copy.
func (j *Jet) Value() *ndarray.Array { return j.value }

// Deriv returns the derivative payload of shape S+(D,). The array is the
// jet's own storage, not a copy.
func (j *Jet) Deriv() *ndarray.Array { return j.deriv }

// Shape returns the shape of the primal payload.
func (j *Jet) Shape() ndarray.Shape { return j.value.Shape() }

// Directions returns D, the number of differentiation directions.
func (j *Jet) Directions() int {
	ds := j.deriv.Shape()
	return ds[len(ds)-1]
}

// IsConst reports whether the jet carries no directions.
func (j *Jet) IsConst() bool { return j.Directions() == 0 }

// Gradient returns one element's derivative row as a rank-1 array of length
// D. Called without indices the jet must hold a single element; with a
// multi-index it returns the row of that element. It panics on out-of-range
// indices.
func (j *Jet) Gradient(indices ...int) *ndarray.Array {
	if len(indices) == 0 {
		if j.value.Size() != 1 {
			panic(errors.Wrapf(ndarray.ErrShapeMismatch,
				"gradient: value shape %v is not scalar; pass an element index", j.value.Shape()))
		}
		return j.deriv.Reshape(j.Directions())
	}
	d := j.Directions()
	row := make([]float64, d)
	idx := make([]int, len(indices)+1)
	copy(idx, indices)
	for k := 0; k < d; k++ {
		idx[len(indices)] = k
		row[k] = j.deriv.At(idx...)
	}
	return ndarray.Wrap(row, d)
}

// Copy returns a deep copy with owned, writable buffers. Copying is the way
// out of the Locked state for jets built on broadcast views.
func (j *Jet) Copy() *Jet {
	return &Jet{value: j.value.Copy(), deriv: j.deriv.Copy()}
}

// Release drops the jet's claims on its buffers. Shared siblings may return
// to the Owned state. Using the jet after Release is invalid.
func (j *Jet) Release() {
	j.value.Release()
	j.deriv.Release()
}

// Equal reports exact equality of shapes, values, and derivatives.
func (j *Jet) Equal(other *Jet) bool {
	return j.value.Equal(other.value) && j.deriv.Equal(other.deriv)
}

// EqualApprox reports elementwise equality of values and derivatives within
// tol.
func (j *Jet) EqualApprox(other *Jet, tol float64) bool {
	return j.value.EqualApprox(other.value, tol) && j.deriv.EqualApprox(other.deriv, tol)
}

// String renders the jet for debugging.
func (j *Jet) String() string {
	return fmt.Sprintf("Jet(shape=%v, directions=%d, value=%v)",
		j.value.Shape(), j.Directions(), j.value)
}

// checkDirections enforces the binary combination rule: both jets carry the
// same number of directions, or at least one is a constant. Constants
// contribute nothing, so the surviving count wins.
func checkDirections(a, b *Jet, name string) {
	la, lb := a.Directions(), b.Directions()
	if la != lb && la != 0 && lb != 0 {
		panic(errors.Wrapf(ErrDirectionsMismatch, "%s: %d vs %d directions", name, la, lb))
	}
}

// padDirections widens a derivative to d directions by zero-filling the new
// trailing columns. Used by Stack and Concatenate, which combine jets of
// different direction counts.
func padDirections(j *Jet, d int) *ndarray.Array {
	from := j.Directions()
	if from == d {
		return j.deriv
	}
	s := j.Shape()
	rows := s.NumElements()
	src := j.deriv.Float64s()
	out := make([]float64, rows*d)
	for r := 0; r < rows; r++ {
		copy(out[r*d:r*d+from], src[r*from:(r+1)*from])
	}
	return ndarray.Wrap(out, s.Concat(d)...)
}

// gatherRows rebuilds a derivative by copying whole D-rows: mapping[i] names
// the source row (a flat index into the old value shape) for output row i.
// The result takes shape outShape+(d,).
func gatherRows(deriv *ndarray.Array, outShape ndarray.Shape, d int, mapping []int) *ndarray.Array {
	src := deriv.Float64s()
	out := make([]float64, len(mapping)*d)
	for i, f := range mapping {
		copy(out[i*d:(i+1)*d], src[f*d:(f+1)*d])
	}
	return ndarray.Wrap(out, outShape.Concat(d)...)
}
