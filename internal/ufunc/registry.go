package ufunc

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/jet-ml/jet/internal/fwd"
	"github.com/jet-ml/jet/internal/ndarray"
)

// ErrNoDispatch indicates a kind with no registered implementation for the
// requested arity. Every supported operation registers at init, so hitting
// this means the operation genuinely does not exist rather than silently
// falling back to a primal-only computation.
var ErrNoDispatch = errors.New("no dispatch entry")

// The registry is populated once at init and read-only afterwards. Each
// kind registers a jet implementation plus a primal implementation over
// plain arrays; comparisons register mask producers instead.
var (
	jetBinary   [numKinds]func(a, b *fwd.Jet) *fwd.Jet
	jetUnary    [numKinds]func(*fwd.Jet) *fwd.Jet
	arrayBinary [numKinds]func(a, b *ndarray.Array) *ndarray.Array
	arrayUnary  [numKinds]func(*ndarray.Array) *ndarray.Array
	arrayCmp    [numKinds]func(a, b *ndarray.Array) *ndarray.Mask
)

func init() {
	jetBinary[Add] = (*fwd.Jet).Add
	jetBinary[Subtract] = (*fwd.Jet).Sub
	jetBinary[Multiply] = (*fwd.Jet).Mul
	jetBinary[Divide] = (*fwd.Jet).Div
	jetBinary[Power] = (*fwd.Jet).Pow
	jetBinary[Maximum] = fwd.Maximum
	jetBinary[Minimum] = fwd.Minimum

	arrayBinary[Add] = (*ndarray.Array).Add
	arrayBinary[Subtract] = (*ndarray.Array).Sub
	arrayBinary[Multiply] = (*ndarray.Array).Mul
	arrayBinary[Divide] = (*ndarray.Array).Div
	arrayBinary[Power] = (*ndarray.Array).Pow
	arrayBinary[Maximum] = (*ndarray.Array).Maximum
	arrayBinary[Minimum] = (*ndarray.Array).Minimum

	jetUnary[Negative] = (*fwd.Jet).Neg
	jetUnary[Absolute] = (*fwd.Jet).Abs
	jetUnary[Reciprocal] = (*fwd.Jet).Reciprocal
	jetUnary[Exp] = (*fwd.Jet).Exp
	jetUnary[Log] = (*fwd.Jet).Log
	jetUnary[Sqrt] = (*fwd.Jet).Sqrt
	jetUnary[Sin] = (*fwd.Jet).Sin
	jetUnary[Cos] = (*fwd.Jet).Cos
	jetUnary[Tan] = (*fwd.Jet).Tan
	jetUnary[Sinh] = (*fwd.Jet).Sinh
	jetUnary[Cosh] = (*fwd.Jet).Cosh
	jetUnary[Tanh] = (*fwd.Jet).Tanh
	jetUnary[Arcsin] = (*fwd.Jet).Asin
	jetUnary[Arccos] = (*fwd.Jet).Acos
	jetUnary[Arctan] = (*fwd.Jet).Atan

	arrayUnary[Negative] = (*ndarray.Array).Neg
	arrayUnary[Absolute] = (*ndarray.Array).Abs
	arrayUnary[Reciprocal] = (*ndarray.Array).Reciprocal
	arrayUnary[Exp] = (*ndarray.Array).Exp
	arrayUnary[Log] = (*ndarray.Array).Log
	arrayUnary[Sqrt] = (*ndarray.Array).Sqrt
	arrayUnary[Sin] = (*ndarray.Array).Sin
	arrayUnary[Cos] = (*ndarray.Array).Cos
	arrayUnary[Tan] = (*ndarray.Array).Tan
	arrayUnary[Sinh] = (*ndarray.Array).Sinh
	arrayUnary[Cosh] = (*ndarray.Array).Cosh
	arrayUnary[Tanh] = (*ndarray.Array).Tanh
	arrayUnary[Arcsin] = (*ndarray.Array).Asin
	arrayUnary[Arccos] = (*ndarray.Array).Acos
	arrayUnary[Arctan] = (*ndarray.Array).Atan

	arrayCmp[Greater] = (*ndarray.Array).Greater
	arrayCmp[GreaterEqual] = (*ndarray.Array).GreaterEqual
	arrayCmp[Less] = (*ndarray.Array).Less
	arrayCmp[LessEqual] = (*ndarray.Array).LessEqual
	arrayCmp[Equal] = (*ndarray.Array).EqualTo
	arrayCmp[NotEqual] = (*ndarray.Array).NotEqualTo

	if klog.V(2).Enabled() {
		registered := 0
		for k := Kind(0); k < numKinds; k++ {
			if jetBinary[k] != nil || jetUnary[k] != nil || arrayCmp[k] != nil {
				registered++
			}
		}
		klog.V(2).Infof("ufunc: registered %d of %d kinds", registered, int(numKinds))
	}
}

// binaryFor returns the jet implementation for a binary kind or panics with
// ErrNoDispatch.
func binaryFor(k Kind) func(a, b *fwd.Jet) *fwd.Jet {
	if k >= 0 && k < numKinds && jetBinary[k] != nil {
		return jetBinary[k]
	}
	panic(errors.Wrapf(ErrNoDispatch, "kind %v has no binary jet implementation", k))
}

// unaryFor returns the jet implementation for a unary kind or panics with
// ErrNoDispatch.
func unaryFor(k Kind) func(*fwd.Jet) *fwd.Jet {
	if k >= 0 && k < numKinds && jetUnary[k] != nil {
		return jetUnary[k]
	}
	panic(errors.Wrapf(ErrNoDispatch, "kind %v has no unary implementation", k))
}

// primalBinaryFor returns the plain-array implementation for a binary kind
// or panics with ErrNoDispatch.
func primalBinaryFor(k Kind) func(a, b *ndarray.Array) *ndarray.Array {
	if k >= 0 && k < numKinds && arrayBinary[k] != nil {
		return arrayBinary[k]
	}
	panic(errors.Wrapf(ErrNoDispatch, "kind %v has no binary primal implementation", k))
}

// primalUnaryFor returns the plain-array implementation for a unary kind
// or panics with ErrNoDispatch.
func primalUnaryFor(k Kind) func(*ndarray.Array) *ndarray.Array {
	if k >= 0 && k < numKinds && arrayUnary[k] != nil {
		return arrayUnary[k]
	}
	panic(errors.Wrapf(ErrNoDispatch, "kind %v has no unary primal implementation", k))
}

// compareFor returns the mask implementation for a comparison kind or
// panics with ErrNoDispatch.
func compareFor(k Kind) func(a, b *ndarray.Array) *ndarray.Mask {
	if k >= 0 && k < numKinds && arrayCmp[k] != nil {
		return arrayCmp[k]
	}
	panic(errors.Wrapf(ErrNoDispatch, "kind %v has no comparison implementation", k))
}
