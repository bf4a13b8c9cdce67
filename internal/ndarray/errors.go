package ndarray

import "github.com/pkg/errors"

// Sentinel errors reported by array operations. Chainable operations panic
// with one of these wrapped in context (recover with exceptions.TryCatch);
// constructors and in-place mutators return them directly.
var (
	// ErrShapeMismatch indicates two shapes that cannot be combined, either
	// under broadcasting or under an exact-match requirement.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrNotWritable indicates an in-place mutation attempt on a locked
	// buffer, typically a broadcast view. Copy the array to obtain a
	// writable one.
	ErrNotWritable = errors.New("buffer is not writable")

	// ErrIndexOutOfRange indicates an element access outside the array bounds.
	ErrIndexOutOfRange = errors.New("index out of range")
)
