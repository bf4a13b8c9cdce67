// Copyright 2026 Jet ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package fwd provides the public API for dense forward-mode automatic
// differentiation. A Jet pairs a value array of shape S with a derivative
// array of shape S+(D,), where D counts the differentiation directions, and
// every arithmetic, math, reduction, and shaping operation propagates both
// payloads through the chain rule.
//
// Example:
//
//	x := fwd.Identity(ndarray.Wrap([]float64{1, 2, 3}, 3))
//	y := x.Mul(x).AddScalar(1) // value x²+1, derivative 2x per direction
//	_ = y.Gradient(0)          // [2 0 0]
//
// Derivative buffers follow an explicit aliasing discipline: adding a
// constant aliases the operand's derivative as a locked view, while
// multiplication and division always allocate fresh storage. Copy is the way
// out of a locked view before in-place updates.
package fwd

import (
	"github.com/jet-ml/jet/internal/fwd"
	"github.com/jet-ml/jet/internal/ndarray"
)

// Jet is a forward-mode AD value: a primal array plus one derivative row per
// element.
type Jet = fwd.Jet

// Sentinel errors for jet construction and combination.
var (
	ErrDirectionsMismatch = fwd.ErrDirectionsMismatch
	ErrInvalidOperand     = fwd.ErrInvalidOperand
)

// New builds a jet from explicit value and derivative arrays. The derivative
// shape must equal the value shape plus one trailing direction axis.
func New(value, deriv *ndarray.Array) (*Jet, error) { return fwd.New(value, deriv) }

// Const wraps an array as a jet with zero directions.
func Const(value *ndarray.Array) *Jet { return fwd.Const(value) }

// ConstScalar wraps a plain number as a zero-direction jet.
func ConstScalar(v float64) *Jet { return fwd.ConstScalar(v) }

// Identity returns a jet differentiated with respect to itself: one unit
// direction per element.
func Identity(value *ndarray.Array) *Jet { return fwd.Identity(value) }

// IdentityBound returns a jet differentiated with respect to the leading
// axes only; elements differing only in the trailing bound axes share a
// direction, and the derivative is a locked broadcast view.
func IdentityBound(value *ndarray.Array, bound ndarray.Shape) (*Jet, error) {
	return fwd.IdentityBound(value, bound)
}

// Variable returns a scalar jet with a single direction seeded to 1.
func Variable(v float64) *Jet { return fwd.Variable(v) }

// AsJet coerces a jet, array, or number into a jet. Idempotent on jets.
func AsJet(v any) *Jet { return fwd.AsJet(v) }

// Where selects elements from x where cond is true and from y elsewhere,
// carrying each selected element's derivative row.
func Where(cond *ndarray.Mask, x, y *Jet) *Jet { return fwd.Where(cond, x, y) }

// Maximum returns the elementwise larger of a and b with the winner's
// derivative row. On ties the left operand wins.
func Maximum(a, b *Jet) *Jet { return fwd.Maximum(a, b) }

// Minimum returns the elementwise smaller of a and b with the winner's
// derivative row. On ties the left operand wins.
func Minimum(a, b *Jet) *Jet { return fwd.Minimum(a, b) }

// Concatenate joins jets along an existing axis, zero-padding direction
// counts up to the widest input.
func Concatenate(axis int, jets ...*Jet) *Jet { return fwd.Concatenate(axis, jets...) }

// Stack joins same-shaped jets along a new axis, zero-padding direction
// counts up to the widest input.
func Stack(axis int, jets ...*Jet) *Jet { return fwd.Stack(axis, jets...) }
