// Copyright 2026 Jet ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ufunc provides the public API for generic elementwise dispatch.
// Operations are identified by Kind and routed through an explicit table
// over jets, arrays, and scalars; a missing entry panics with ErrNoDispatch
// instead of quietly computing a primal-only result.
//
// Example:
//
//	x := fwd.Variable(2)
//	y := ufunc.Apply(ufunc.Multiply, x, 3.0) // same result as x.MulScalar(3)
//
//	if ufunc.WouldDowngrade(3.0, x) {
//	    // 3.0*x in infix form would shed x's derivatives; coerce first:
//	    y = ufunc.Apply(ufunc.Multiply, ufunc.AsOperand(3.0), x)
//	}
package ufunc

import (
	"github.com/jet-ml/jet/internal/fwd"
	"github.com/jet-ml/jet/internal/ndarray"
	"github.com/jet-ml/jet/internal/ufunc"
)

// Kind identifies an elementwise operation in the dispatch registry.
type Kind = ufunc.Kind

// Binary arithmetic kinds.
const (
	Add      Kind = ufunc.Add
	Subtract Kind = ufunc.Subtract
	Multiply Kind = ufunc.Multiply
	Divide   Kind = ufunc.Divide
	Power    Kind = ufunc.Power
	Maximum  Kind = ufunc.Maximum
	Minimum  Kind = ufunc.Minimum
)

// Unary kinds.
const (
	Negative   Kind = ufunc.Negative
	Absolute   Kind = ufunc.Absolute
	Reciprocal Kind = ufunc.Reciprocal
	Exp        Kind = ufunc.Exp
	Log        Kind = ufunc.Log
	Sqrt       Kind = ufunc.Sqrt
	Sin        Kind = ufunc.Sin
	Cos        Kind = ufunc.Cos
	Tan        Kind = ufunc.Tan
	Sinh       Kind = ufunc.Sinh
	Cosh       Kind = ufunc.Cosh
	Tanh       Kind = ufunc.Tanh
	Arcsin     Kind = ufunc.Arcsin
	Arccos     Kind = ufunc.Arccos
	Arctan     Kind = ufunc.Arctan
)

// Comparison kinds, which always produce a plain boolean mask.
const (
	Greater      Kind = ufunc.Greater
	GreaterEqual Kind = ufunc.GreaterEqual
	Less         Kind = ufunc.Less
	LessEqual    Kind = ufunc.LessEqual
	Equal        Kind = ufunc.Equal
	NotEqual     Kind = ufunc.NotEqual
)

// Class tags the operand variants the dispatcher distinguishes: native
// scalar, plain array, and jet.
type Class = ufunc.Class

// Operand classes.
const (
	ClassScalar Class = ufunc.ClassScalar
	ClassArray  Class = ufunc.ClassArray
	ClassJet    Class = ufunc.ClassJet
)

// ErrNoDispatch indicates a kind with no registered implementation for the
// requested arity.
var ErrNoDispatch = ufunc.ErrNoDispatch

// Apply evaluates a binary operation with full derivative propagation.
// Operands may be jets, arrays, or numbers; non-jets join as constants.
func Apply(k Kind, a, b any) *fwd.Jet { return ufunc.Apply(k, a, b) }

// ApplyUnary evaluates a unary operation with full derivative propagation.
func ApplyUnary(k Kind, a any) *fwd.Jet { return ufunc.ApplyUnary(k, a) }

// TryApply evaluates a binary operation like Apply, converting panicking
// sentinels into a returned error.
func TryApply(k Kind, a, b any) (*fwd.Jet, error) { return ufunc.TryApply(k, a, b) }

// TryApplyUnary evaluates a unary operation like ApplyUnary with panics
// converted into a returned error.
func TryApplyUnary(k Kind, a any) (*fwd.Jet, error) { return ufunc.TryApplyUnary(k, a) }

// Compare evaluates a comparison on the operands' primal values.
func Compare(k Kind, a, b any) *ndarray.Mask { return ufunc.Compare(k, a, b) }

// Primal evaluates a unary operation on the operand's primal payload only,
// dropping any derivatives; use ApplyUnary when they must survive.
func Primal(k Kind, a any) *ndarray.Array { return ufunc.Primal(k, a) }

// AsOperand normalizes a value into one of the three operand forms: jet,
// array, or float64. Idempotent.
func AsOperand(v any) any { return ufunc.AsOperand(v) }

// ClassOf reports which operand variant v normalizes to.
func ClassOf(v any) Class { return ufunc.ClassOf(v) }

// IsJet reports whether the operand carries derivatives.
func IsJet(v any) bool { return ufunc.IsJet(v) }

// IsArrayScalar reports whether v is a single element boxed in array form,
// as opposed to a native scalar.
func IsArrayScalar(v any) bool { return ufunc.IsArrayScalar(v) }

// WouldDowngrade reports whether LeftResolved would shed the right operand's
// derivatives: true exactly when the left operand is not a jet while the
// right operand is.
func WouldDowngrade(left, right any) bool { return ufunc.WouldDowngrade(left, right) }

// LeftResolved evaluates a binary operation the way infix syntax resolves
// it: a plain left operand computes with the right operand's primal value
// only, silently dropping its derivatives. Use Apply when derivatives must
// survive regardless of operand order.
func LeftResolved(k Kind, left, right any) any { return ufunc.LeftResolved(k, left, right) }
