package ufunc

import (
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/jet-ml/jet/internal/fwd"
	"github.com/jet-ml/jet/internal/ndarray"
)

// AsOperand normalizes a value into one of the three operand forms: *fwd.Jet,
// *ndarray.Array, or float64. Ints widen to float64; operands already in a
// canonical form pass through unchanged, so the coercion is idempotent. Any
// other type panics with fwd.ErrInvalidOperand.
func AsOperand(v any) any {
	switch x := v.(type) {
	case *fwd.Jet, *ndarray.Array, float64:
		return x
	case int:
		return float64(x)
	default:
		panic(errors.Wrapf(fwd.ErrInvalidOperand, "cannot treat %T as an operand", v))
	}
}

// IsJet reports whether the operand carries derivatives.
func IsJet(v any) bool {
	_, ok := v.(*fwd.Jet)
	return ok
}

// asArray views an operand's primal payload as an array: jets contribute
// their value, scalars wrap as rank-0 arrays.
func asArray(v any) *ndarray.Array {
	switch x := AsOperand(v).(type) {
	case *fwd.Jet:
		return x.Value()
	case *ndarray.Array:
		return x
	default:
		return ndarray.Scalar(x.(float64))
	}
}

// Apply evaluates a binary operation with full derivative propagation.
// Operands may be jets, arrays, or numbers; non-jets join as constants. The
// kind must have a registered binary implementation.
func Apply(k Kind, a, b any) *fwd.Jet {
	return binaryFor(k)(fwd.AsJet(AsOperand(a)), fwd.AsJet(AsOperand(b)))
}

// ApplyUnary evaluates a unary operation with full derivative propagation.
func ApplyUnary(k Kind, a any) *fwd.Jet {
	return unaryFor(k)(fwd.AsJet(AsOperand(a)))
}

// TryApply evaluates a binary operation like Apply, converting the panicking
// sentinels of the op pipeline (shape mismatches, direction mismatches,
// missing dispatch entries, invalid operands) into a returned error.
func TryApply(k Kind, a, b any) (out *fwd.Jet, err error) {
	err = exceptions.TryCatch[error](func() { out = Apply(k, a, b) })
	return out, err
}

// TryApplyUnary evaluates a unary operation like ApplyUnary with panics
// converted into a returned error.
func TryApplyUnary(k Kind, a any) (out *fwd.Jet, err error) {
	err = exceptions.TryCatch[error](func() { out = ApplyUnary(k, a) })
	return out, err
}

// Primal evaluates a unary operation on the operand's primal payload only,
// the way a host-native math routine unaware of jets would: derivatives on
// the operand are dropped. It exists so downgrades are explicit and
// greppable; use ApplyUnary when derivatives must survive.
func Primal(k Kind, a any) *ndarray.Array {
	if j, ok := AsOperand(a).(*fwd.Jet); ok && j.Directions() > 0 {
		klog.V(2).Infof("ufunc: primal %v dropped a %d-direction jet's derivatives", k, j.Directions())
	}
	return primalUnaryFor(k)(asArray(a))
}

// Compare evaluates a comparison on the operands' primal values. The result
// is always a plain mask: this is the one sanctioned downgrade, since an
// ordering has no derivative to carry.
func Compare(k Kind, a, b any) *ndarray.Mask {
	return compareFor(k)(asArray(a), asArray(b))
}

// WouldDowngrade reports whether LeftResolved would shed the right
// operand's derivatives: true exactly when the left operand is not a jet
// while the right operand is.
func WouldDowngrade(left, right any) bool {
	return !IsJet(AsOperand(left)) && IsJet(AsOperand(right))
}

// LeftResolved evaluates a binary operation the way infix syntax resolves
// it: the left operand's implementation runs, and a plain left operand
// computes with the right operand's primal value only. The result is a
// *fwd.Jet when the left operand is a jet and a *ndarray.Array otherwise,
// in which case any derivatives on the right are silently lost. Use Apply
// when derivatives must survive regardless of operand order.
func LeftResolved(k Kind, left, right any) any {
	l, r := AsOperand(left), AsOperand(right)
	if IsJet(l) {
		return binaryFor(k)(l.(*fwd.Jet), fwd.AsJet(r))
	}
	if IsJet(r) {
		klog.V(2).Infof("ufunc: left-resolved %v downgraded a %d-direction jet to its primal value",
			k, r.(*fwd.Jet).Directions())
	}
	return primalBinaryFor(k)(asArray(l), asArray(r))
}
