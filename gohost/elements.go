package gohost

import (
	"fmt"
	"math"
	"reflect"

	"github.com/deepnoodle-ai/seqconv"
)

// Int extracts any integer kind, or a float holding an integral value as
// produced by JSON decoding.
func Int(v seqconv.Value) (int, error) {
	if v == nil {
		return 0, fmt.Errorf("expected int, but got nil")
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt {
			return 0, fmt.Errorf("value %d overflows int", u)
		}
		return int(u), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || f >= math.MaxInt || f < math.MinInt {
			return 0, fmt.Errorf("expected int, but got non-integral %v", f)
		}
		return int(f), nil
	}
	return 0, fmt.Errorf("expected int, but got %T", v)
}

// Float64 extracts any integer or float kind as a float64.
func Float64(v seqconv.Value) (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("expected float, but got nil")
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), nil
	}
	return 0, fmt.Errorf("expected float, but got %T", v)
}

// String extracts a string.
func String(v seqconv.Value) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("expected string, but got %T", v)
}

// Bool extracts a bool.
func Bool(v seqconv.Value) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return false, fmt.Errorf("expected bool, but got %T", v)
}

// Any passes the value through.
func Any(v seqconv.Value) (any, error) {
	return v, nil
}

func identity[T any](x T) seqconv.Value {
	return x
}

// Element converters ready to pass to seqconv.ToValue and seqconv.IntoValue.
var (
	IntConverter     = seqconv.Infallible(identity[int])
	Float64Converter = seqconv.Infallible(identity[float64])
	StringConverter  = seqconv.Infallible(identity[string])
	BoolConverter    = seqconv.Infallible(identity[bool])
	AnyConverter     = seqconv.Infallible(identity[any])
)
