package fwd

import (
	"github.com/pkg/errors"

	"github.com/jet-ml/jet/internal/ndarray"
)

// prepareInPlace validates an in-place combination of j with other before
// anything mutates, so a rejected update leaves j untouched: the operand
// must broadcast into j's shape without growing it, direction counts must
// match unless the operand is a constant, and every payload that will be
// written must not be locked. derivToo reports whether the derivative
// payload participates.
func (j *Jet) prepareInPlace(other *Jet, name string, derivAlways bool) (derivToo bool, err error) {
	la, lb := j.Directions(), other.Directions()
	if lb != 0 && la != lb {
		return false, errors.Wrapf(ErrDirectionsMismatch,
			"%s: %d vs %d directions (in-place updates cannot widen the direction axis)", name, la, lb)
	}
	out, err := ndarray.BroadcastShapes(j.value.Shape(), other.value.Shape())
	if err != nil || !out.Equal(j.value.Shape()) {
		return false, errors.Wrapf(ndarray.ErrShapeMismatch,
			"%s: shape %v does not broadcast into %v", name, other.value.Shape(), j.value.Shape())
	}

	derivToo = derivAlways || lb != 0
	if j.value.State() == ndarray.Locked {
		return false, errors.Wrapf(ndarray.ErrNotWritable, "%s: value is a locked view; Copy the jet first", name)
	}
	if derivToo && j.deriv.State() == ndarray.Locked {
		return false, errors.Wrapf(ndarray.ErrNotWritable, "%s: derivative is a locked view; Copy the jet first", name)
	}
	return derivToo, nil
}

// IAdd adds other into j in place. A shared payload detaches first
// (copy-on-write); a locked payload reports ErrNotWritable.
func (j *Jet) IAdd(other *Jet) error {
	derivToo, err := j.prepareInPlace(other, "iadd", false)
	if err != nil {
		return err
	}
	if err := j.value.AddInPlace(other.value); err != nil {
		return err
	}
	if derivToo {
		return j.deriv.AddInPlace(other.deriv)
	}
	return nil
}

// ISub subtracts other from j in place.
func (j *Jet) ISub(other *Jet) error {
	derivToo, err := j.prepareInPlace(other, "isub", false)
	if err != nil {
		return err
	}
	if err := j.value.SubInPlace(other.value); err != nil {
		return err
	}
	if derivToo {
		return j.deriv.SubInPlace(other.deriv)
	}
	return nil
}

// IMul multiplies j by other in place, applying the product rule to the
// derivative before the value is overwritten.
func (j *Jet) IMul(other *Jet) error {
	if _, err := j.prepareInPlace(other, "imul", true); err != nil {
		return err
	}
	if err := j.deriv.MulInPlace(other.value.ExpandDims(-1)); err != nil {
		return err
	}
	if !other.IsConst() {
		if err := j.deriv.AddInPlace(other.deriv.Mul(j.value.ExpandDims(-1))); err != nil {
			return err
		}
	}
	return j.value.MulInPlace(other.value)
}

// IDiv divides j by other in place, applying the quotient rule to the
// derivative before the value is overwritten.
func (j *Jet) IDiv(other *Jet) error {
	if _, err := j.prepareInPlace(other, "idiv", true); err != nil {
		return err
	}
	if !other.IsConst() {
		quot := j.value.Div(other.value)
		if err := j.deriv.SubInPlace(other.deriv.Mul(quot.ExpandDims(-1))); err != nil {
			return err
		}
	}
	if err := j.deriv.DivInPlace(other.value.ExpandDims(-1)); err != nil {
		return err
	}
	return j.value.DivInPlace(other.value)
}

// IAddArray adds a constant array into the value in place, leaving the
// derivative untouched.
func (j *Jet) IAddArray(c *ndarray.Array) error { return j.IAdd(Const(c)) }

// IAddScalar adds a constant into the value in place.
func (j *Jet) IAddScalar(s float64) error { return j.IAdd(ConstScalar(s)) }

// ISubArray subtracts a constant array from the value in place.
func (j *Jet) ISubArray(c *ndarray.Array) error { return j.ISub(Const(c)) }

// ISubScalar subtracts a constant from the value in place.
func (j *Jet) ISubScalar(s float64) error { return j.ISub(ConstScalar(s)) }

// IMulArray multiplies by a constant array in place, scaling both payloads.
func (j *Jet) IMulArray(c *ndarray.Array) error { return j.IMul(Const(c)) }

// IMulScalar multiplies by a constant in place, scaling both payloads.
func (j *Jet) IMulScalar(s float64) error { return j.IMul(ConstScalar(s)) }

// IDivArray divides by a constant array in place, scaling both payloads.
func (j *Jet) IDivArray(c *ndarray.Array) error { return j.IDiv(Const(c)) }

// IDivScalar divides by a constant in place, scaling both payloads.
func (j *Jet) IDivScalar(s float64) error { return j.IDiv(ConstScalar(s)) }
