package ufunc

import (
	"github.com/jet-ml/jet/internal/fwd"
	"github.com/jet-ml/jet/internal/ndarray"
)

// Class tags the operand variants the dispatcher distinguishes. The split
// between a native scalar and an array-scalar matters: a native float64 on
// the left of an infix expression resolves with its own arithmetic and never
// consults the right operand, while a rank-0 array participates in dispatch
// like any other array. Tagging the variant makes that difference inspectable
// before an expression is evaluated instead of after derivatives have already
// been lost.
type Class int

const (
	// ClassScalar is a native float64, or an int widened to one.
	ClassScalar Class = iota
	// ClassArray is a plain *ndarray.Array with no derivative payload. A
	// rank-0 array is the array-scalar variant of this class; see
	// IsArrayScalar.
	ClassArray
	// ClassJet is a *fwd.Jet carrying derivatives.
	ClassJet
)

func (c Class) String() string {
	switch c {
	case ClassScalar:
		return "scalar"
	case ClassArray:
		return "array"
	case ClassJet:
		return "jet"
	default:
		return "unknown"
	}
}

// ClassOf reports which operand variant v normalizes to. It panics with
// fwd.ErrInvalidOperand for types AsOperand does not accept.
func ClassOf(v any) Class {
	switch AsOperand(v).(type) {
	case *fwd.Jet:
		return ClassJet
	case *ndarray.Array:
		return ClassArray
	default:
		return ClassScalar
	}
}

// IsArrayScalar reports whether v is a single element boxed in array form: a
// rank-0 array, or a jet whose value is one. Native scalars are not
// array-scalars, which is exactly the asymmetry behind WouldDowngrade.
func IsArrayScalar(v any) bool {
	switch x := AsOperand(v).(type) {
	case *fwd.Jet:
		return x.Shape().IsScalar()
	case *ndarray.Array:
		return x.Shape().IsScalar()
	default:
		return false
	}
}
