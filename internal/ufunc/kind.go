// Package ufunc routes elementwise operations through an explicit dispatch
// table keyed by operation kind. Every kind maps to a registered
// implementation over jets, arrays, and scalars; a missing entry panics
// with ErrNoDispatch instead of quietly computing a primal-only result.
//
// The package also models the one downgrade that infix syntax can force:
// LeftResolved resolves an operation the way a host language resolves an
// infix expression, letting a plain left operand shed the right operand's
// derivatives. WouldDowngrade predicts that outcome so callers can guard
// against it.
package ufunc

// Kind identifies an elementwise operation in the dispatch registry.
type Kind int

const (
	// Binary arithmetic.
	Add Kind = iota
	Subtract
	Multiply
	Divide
	Power
	Maximum
	Minimum

	// Unary.
	Negative
	Absolute
	Reciprocal
	Exp
	Log
	Sqrt
	Sin
	Cos
	Tan
	Sinh
	Cosh
	Tanh
	Arcsin
	Arccos
	Arctan

	// Comparisons, which always produce a plain boolean mask: an ordering
	// carries no derivative.
	Greater
	GreaterEqual
	Less
	LessEqual
	Equal
	NotEqual

	numKinds
)

var kindNames = [numKinds]string{
	Add:          "add",
	Subtract:     "subtract",
	Multiply:     "multiply",
	Divide:       "divide",
	Power:        "power",
	Maximum:      "maximum",
	Minimum:      "minimum",
	Negative:     "negative",
	Absolute:     "absolute",
	Reciprocal:   "reciprocal",
	Exp:          "exp",
	Log:          "log",
	Sqrt:         "sqrt",
	Sin:          "sin",
	Cos:          "cos",
	Tan:          "tan",
	Sinh:         "sinh",
	Cosh:         "cosh",
	Tanh:         "tanh",
	Arcsin:       "arcsin",
	Arccos:       "arccos",
	Arctan:       "arctan",
	Greater:      "greater",
	GreaterEqual: "greater_equal",
	Less:         "less",
	LessEqual:    "less_equal",
	Equal:        "equal",
	NotEqual:     "not_equal",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "unknown"
	}
	return kindNames[k]
}

// IsBinary reports whether the kind takes two operands and returns a jet.
func (k Kind) IsBinary() bool { return k >= Add && k <= Minimum }

// IsUnary reports whether the kind takes one operand and returns a jet.
func (k Kind) IsUnary() bool { return k >= Negative && k <= Arctan }

// IsComparison reports whether the kind compares two operands into a mask.
func (k Kind) IsComparison() bool { return k >= Greater && k <= NotEqual }
