package seqconv

// Value is an opaque handle to an object owned by a host runtime. The
// runtime decides its lifetime; this package only borrows it for the
// duration of a call.
type Value any

// Host is the set of runtime operations the conversions rely on.
type Host interface {
	// IsText reports whether v is an instance of the runtime's text type. An
	// error means the classification itself could not be performed.
	IsText(v Value) (bool, error)

	// Sequence returns a view of v through the sequence protocol, or false
	// if v does not implement it.
	Sequence(v Value) (Sequence, bool)

	// TypeName names v's runtime type for diagnostics.
	TypeName(v Value) string

	// NewList builds a runtime list holding items in order.
	NewList(items []Value) (Value, error)
}

// Sequence is a borrowed view of a value that passed the sequence capability
// check. It must not be retained after the call that produced it.
type Sequence interface {
	// Len returns the number of elements. The result is advisory.
	Len() (int, error)

	// Iter starts an ordered traversal.
	Iter() (Iterator, error)
}

// Iterator walks a Sequence in order.
type Iterator interface {
	// Next returns the next element and true, or false once the sequence is
	// exhausted.
	Next() (Value, bool, error)
}
