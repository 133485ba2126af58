package cast

import (
	"reflect"
	"time"

	"github.com/spf13/cast"
	"go.dw1.io/safemath"
)

// To converts v to type T.
//
// Non-integer targets are parsed with spf13/cast, so To[time.Duration]("1s")
// succeeds where [Convert] would refuse to reinterpret a string. Integer
// targets are always range checked: integer inputs, named integer types
// included, go through safemath; strings, bools and floats are read into a
// 64-bit integer first and then narrowed like [Convert] does. Either way an
// out-of-range value fails with [ErrOverflow].
func To[T Type](v any) (T, error) {
	var zero T

	switch any(zero).(type) {
	case string:
		return parse[T, string](v)
	case bool:
		return parse[T, bool](v)
	case float32:
		return parse[T, float32](v)
	case float64:
		return parse[T, float64](v)
	case time.Time:
		return parse[T, time.Time](v)
	case time.Duration:
		return parse[T, time.Duration](v)
	}

	if !isIntVal(v) {
		return convertValue[T](v)
	}

	return safeInt[T](v)
}

// ToMust converts v to type T and panics on error.
func ToMust[T Type](v any) T {
	to, err := To[T](v)
	if err != nil {
		panic(err)
	}

	return to
}

func parse[T any, B Basic](v any) (T, error) {
	r, err := cast.ToE[B](v)
	if err != nil {
		var zero T
		return zero, err
	}

	return any(r).(T), nil
}

// safeInt narrows the integer v to the integer type T with safemath. The
// safemath range error is kept as the cause of the [*OverflowError].
func safeInt[T any](v any) (T, error) {
	var (
		zero T
		r    any
		err  error
	)

	x := baseInt(v)

	switch any(zero).(type) {
	case int:
		r, err = safemath.ConvertAny[int](x)
	case int8:
		r, err = safemath.ConvertAny[int8](x)
	case int16:
		r, err = safemath.ConvertAny[int16](x)
	case int32:
		r, err = safemath.ConvertAny[int32](x)
	case int64:
		r, err = safemath.ConvertAny[int64](x)
	case uint:
		r, err = safemath.ConvertAny[uint](x)
	case uint8:
		r, err = safemath.ConvertAny[uint8](x)
	case uint16:
		r, err = safemath.ConvertAny[uint16](x)
	case uint32:
		r, err = safemath.ConvertAny[uint32](x)
	case uint64:
		r, err = safemath.ConvertAny[uint64](x)
	case uintptr:
		r, err = safemath.ConvertAny[uintptr](x)
	default:
		return zero, unsupported(reflect.TypeOf(v), reflect.TypeFor[T]())
	}

	if err != nil {
		return zero, &OverflowError{
			Source: reflect.TypeOf(v),
			Target: reflect.TypeFor[T](),
			Value:  v,
			Err:    err,
		}
	}

	return r.(T), nil
}

// isIntVal reports whether v's dynamic type has an integer kind.
func isIntVal(v any) bool {
	if v == nil {
		return false
	}

	return isIntKind(reflect.TypeOf(v).Kind())
}

// baseInt returns v as a predeclared integer type. Named integer types are
// widened to int64 or uint64, which safemath accepts.
func baseInt(v any) any {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr:
		return v
	}

	rv := reflect.ValueOf(v)
	if isSignedKind(rv.Kind()) {
		return rv.Int()
	}

	return rv.Uint()
}
