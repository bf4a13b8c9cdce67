package ndarray

import "sync/atomic"

// BufferState describes who may write to an array's backing buffer.
type BufferState int

const (
	// Owned means the array holds the only reference and may mutate freely.
	Owned BufferState = iota
	// Shared means other arrays alias the same buffer; an in-place mutation
	// copies first (copy-on-write).
	Shared
	// Locked means the buffer can never be written through this array.
	// Broadcast views are locked: their elements overlap in memory, so an
	// elementwise write would not be well defined. The only way out is Copy.
	Locked
)

func (s BufferState) String() string {
	switch s {
	case Owned:
		return "Owned"
	case Shared:
		return "Shared"
	case Locked:
		return "Locked"
	default:
		return "Unknown"
	}
}

// buffer is a reference-counted flat float64 store. Arrays that alias the
// same allocation share one buffer; the count decides between Owned and
// Shared. Locking is a property of the view, not the buffer, so a broadcast
// view can be Locked while its source stays writable.
type buffer struct {
	data []float64
	refs atomic.Int32
}

func newBuffer(n int) *buffer {
	b := &buffer{data: make([]float64, n)}
	b.refs.Store(1)
	return b
}

// retain registers one more array aliasing this buffer.
func (b *buffer) retain() *buffer {
	b.refs.Add(1)
	return b
}

// release unregisters an alias. The garbage collector reclaims the storage;
// the count only exists to distinguish Owned from Shared.
func (b *buffer) release() {
	b.refs.Add(-1)
}

// isUnique reports whether exactly one array references the buffer.
func (b *buffer) isUnique() bool {
	return b.refs.Load() == 1
}
