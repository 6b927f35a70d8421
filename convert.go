package seqconv

import (
	"github.com/deepnoodle-ai/seqconv/smallvec"
)

// Converter converts one T to a runtime value.
type Converter[T any] func(x T) (Value, error)

// Infallible adapts a conversion that cannot fail. Conversions built from it
// always return a nil error.
func Infallible[T any](f func(x T) Value) Converter[T] {
	return func(x T) (Value, error) {
		return f(x), nil
	}
}

// SliceToValue builds a runtime list from items without modifying them.
func SliceToValue[T any](b *Bridge, items []T, elem Converter[T]) (Value, error) {
	values := make([]Value, 0, len(items))
	for i, x := range items {
		v, err := elem(x)
		if err != nil {
			return nil, elementFailed(i, err)
		}
		values = append(values, v)
	}
	return b.host.NewList(values)
}

// ToValue converts vec to a runtime list. vec is only read and is unchanged
// afterwards.
func ToValue[T any, A smallvec.Array[T]](b *Bridge, vec *smallvec.Vec[T, A], elem Converter[T]) (Value, error) {
	return SliceToValue(b, vec.AsSlice(), elem)
}

// IntoValue moves the elements of vec into a new runtime list, converting
// each exactly once and in order. vec is empty afterwards, whether or not
// the conversion succeeded, and must not be relied on for its old contents.
func IntoValue[T any, A smallvec.Array[T]](b *Bridge, vec *smallvec.Vec[T, A], elem Converter[T]) (Value, error) {
	values := make([]Value, 0, vec.Len())
	i := 0
	for x := range vec.Drain() {
		v, err := elem(x)
		if err != nil {
			return nil, elementFailed(i, err)
		}
		values = append(values, v)
		i++
	}
	return b.host.NewList(values)
}

// VecConverter returns a Converter that turns nested small vectors into
// runtime lists. The nested vectors are read, not consumed.
func VecConverter[T any, A smallvec.Array[T]](b *Bridge, elem Converter[T]) Converter[smallvec.Vec[T, A]] {
	return func(x smallvec.Vec[T, A]) (Value, error) {
		return ToValue(b, &x, elem)
	}
}
