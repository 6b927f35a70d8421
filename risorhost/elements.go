package risorhost

import (
	"fmt"

	"github.com/deepnoodle-ai/seqconv"
	"github.com/risor-io/risor/object"
)

func typeError(want string, v seqconv.Value) error {
	if obj, ok := v.(object.Object); ok && obj != nil {
		return fmt.Errorf("expected %s, but got %s", want, obj.Type())
	}
	return fmt.Errorf("expected %s, but got %T", want, v)
}

// Int64 extracts a Risor int. Bytes, as yielded by a byte_slice, are
// accepted too.
func Int64(v seqconv.Value) (int64, error) {
	switch o := v.(type) {
	case *object.Int:
		return o.Value(), nil
	case *object.Byte:
		return int64(o.Value()), nil
	}
	return 0, typeError("int", v)
}

// Int extracts a Risor int as a Go int.
func Int(v seqconv.Value) (int, error) {
	i, err := Int64(v)
	return int(i), err
}

// Float64 extracts a Risor float. Ints and bytes are widened.
func Float64(v seqconv.Value) (float64, error) {
	switch o := v.(type) {
	case *object.Float:
		return o.Value(), nil
	case *object.Int:
		return float64(o.Value()), nil
	case *object.Byte:
		return float64(o.Value()), nil
	}
	return 0, typeError("float", v)
}

// Byte extracts a Risor byte, or an int in the range 0-255.
func Byte(v seqconv.Value) (byte, error) {
	switch o := v.(type) {
	case *object.Byte:
		return o.Value(), nil
	case *object.Int:
		if n := o.Value(); n >= 0 && n <= 255 {
			return byte(n), nil
		}
		return 0, fmt.Errorf("int %d out of byte range", o.Value())
	}
	return 0, typeError("byte", v)
}

// String extracts a Risor string.
func String(v seqconv.Value) (string, error) {
	if s, ok := v.(*object.String); ok {
		return s.Value(), nil
	}
	return "", typeError("string", v)
}

// Bool extracts a Risor bool.
func Bool(v seqconv.Value) (bool, error) {
	if b, ok := v.(*object.Bool); ok {
		return b.Value(), nil
	}
	return false, typeError("bool", v)
}

// Object passes Risor objects through unchanged.
func Object(v seqconv.Value) (object.Object, error) {
	obj, err := asObject(v)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// Any extracts any Risor object as a plain Go value.
func Any(v seqconv.Value) (any, error) {
	obj, err := asObject(v)
	if err != nil {
		return nil, err
	}
	return ToGo(obj), nil
}

// ToGo converts a Risor object to a plain Go value for display and for the
// Any extractor. Lists become []any and byte slices stay []byte. Sets are
// not sequences for Extract, so their items are listed in sorted order to
// give a stable result. Unknown objects fall back to their Inspect form.
func ToGo(obj object.Object) any {
	switch o := obj.(type) {
	case nil, *object.NilType:
		return nil
	case *object.String:
		return o.Value()
	case *object.Int:
		return o.Value()
	case *object.Float:
		return o.Value()
	case *object.Bool:
		return o.Value()
	case *object.Byte:
		return o.Value()
	case *object.ByteSlice:
		return o.Value()
	case *object.Time:
		return o.Value()
	case *object.Error:
		return o.Value()
	case *object.List:
		return toGoSlice(o.Value())
	case *object.Set:
		return toGoSlice(o.SortedItems())
	case *object.Map:
		result := make(map[string]any, len(o.Value()))
		for key, value := range o.Value() {
			result[key] = ToGo(value)
		}
		return result
	}
	return obj.Inspect()
}

func toGoSlice(items []object.Object) []any {
	result := make([]any, 0, len(items))
	for _, item := range items {
		result = append(result, ToGo(item))
	}
	return result
}

// FromInt64 converts an int64 to a Risor int.
func FromInt64(x int64) seqconv.Value {
	return object.NewInt(x)
}

// FromInt converts an int to a Risor int.
func FromInt(x int) seqconv.Value {
	return object.NewInt(int64(x))
}

// FromFloat64 converts a float64 to a Risor float.
func FromFloat64(x float64) seqconv.Value {
	return object.NewFloat(x)
}

// FromString converts a string to a Risor string.
func FromString(x string) seqconv.Value {
	return object.NewString(x)
}

// FromByte converts a byte to a Risor byte.
func FromByte(x byte) seqconv.Value {
	return object.NewByte(x)
}

// FromBool converts a bool to a Risor bool.
func FromBool(x bool) seqconv.Value {
	return object.NewBool(x)
}

// FromAny converts a Go value with object.FromGoType. Unsupported types
// are reported as errors.
func FromAny(x any) (seqconv.Value, error) {
	obj := object.FromGoType(x)
	if errObj, ok := obj.(*object.Error); ok {
		return nil, errObj.Value()
	}
	if obj == nil {
		return nil, fmt.Errorf("unsupported go type: %T", x)
	}
	return obj, nil
}

// Element converters ready to pass to seqconv.ToValue and seqconv.IntoValue.
var (
	IntConverter     = seqconv.Infallible(FromInt)
	Int64Converter   = seqconv.Infallible(FromInt64)
	Float64Converter = seqconv.Infallible(FromFloat64)
	StringConverter  = seqconv.Infallible(FromString)
	BoolConverter    = seqconv.Infallible(FromBool)
	ByteConverter    = seqconv.Infallible(FromByte)
	AnyConverter     = seqconv.Converter[any](FromAny)
)
