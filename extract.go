package seqconv

import (
	"log/slog"

	"github.com/deepnoodle-ai/seqconv/smallvec"
)

// Extractor converts one runtime value to a T.
type Extractor[T any] func(v Value) (T, error)

// CheckNotText fails with a type mismatch when v is a text value, even if
// the runtime can iterate it.
//
// If the host cannot classify v, the value is let through and the
// capability check decides.
func CheckNotText(b *Bridge, v Value) error {
	isText, err := b.host.IsText(v)
	if err != nil {
		b.logger.Debug("text classification failed, continuing",
			slog.String("type", b.host.TypeName(v)),
			slog.String("error", err.Error()))
		return nil
	}
	if isText {
		return textMismatch()
	}
	return nil
}

// AsSequence returns v's sequence view, or a capability mismatch if v does
// not implement the sequence protocol.
func AsSequence(b *Bridge, v Value) (Sequence, error) {
	seq, ok := b.host.Sequence(v)
	if !ok || seq == nil {
		return nil, capabilityMismatch(b.host.TypeName(v))
	}
	return seq, nil
}

// Extract converts a runtime sequence into a small vector, converting each
// element with elem. The first failure aborts the conversion and no
// partially filled vector is returned.
func Extract[T any, A smallvec.Array[T]](b *Bridge, v Value, elem Extractor[T]) (smallvec.Vec[T, A], error) {
	if err := CheckNotText(b, v); err != nil {
		return smallvec.Vec[T, A]{}, err
	}
	return extractSequence[T, A](b, v, elem)
}

func extractSequence[T any, A smallvec.Array[T]](b *Bridge, v Value, elem Extractor[T]) (smallvec.Vec[T, A], error) {
	seq, err := AsSequence(b, v)
	if err != nil {
		return smallvec.Vec[T, A]{}, err
	}

	out := smallvec.WithCapacity[T, A](b.reserveHint(seq))
	it, err := seq.Iter()
	if err != nil {
		return smallvec.Vec[T, A]{}, iterationFailed(0, err)
	}
	for i := 0; ; i++ {
		item, ok, err := it.Next()
		if err != nil {
			return smallvec.Vec[T, A]{}, iterationFailed(i, err)
		}
		if !ok {
			break
		}
		x, err := elem(item)
		if err != nil {
			return smallvec.Vec[T, A]{}, elementFailed(i, err)
		}
		out.Push(x)
	}
	return out, nil
}

// VecExtractor returns an Extractor that converts each value into a nested
// small vector.
func VecExtractor[T any, A smallvec.Array[T]](b *Bridge, elem Extractor[T]) Extractor[smallvec.Vec[T, A]] {
	return func(v Value) (smallvec.Vec[T, A], error) {
		return Extract[T, A](b, v, elem)
	}
}
