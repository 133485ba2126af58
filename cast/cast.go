package cast

import (
	"reflect"
)

// Checked converts the integer v to T and verifies that nothing was lost.
//
// The result is converted back to S and compared with v in the source
// domain; a mismatch means the value did not fit. A sign change is also
// rejected, which catches negative values reinterpreted as unsigned values of
// the same width (int8(-1) -> uint8(255) round-trips but is still wrong).
func Checked[T, S Integral](v S) (T, error) {
	r := T(v)
	if S(r) != v || (v < 0) != (r < 0) {
		return 0, overflow[T](v, nil)
	}

	return r, nil
}

// MustChecked is like [Checked] but panics with the [*OverflowError].
func MustChecked[T, S Integral](v S) T {
	r, err := Checked[T](v)
	if err != nil {
		panic(err)
	}

	return r
}

// Convert converts v to T, checking integer conversions.
//
// A value whose dynamic type is already T (or that implements T when T is an
// interface) is returned unchanged. Integer to integer (and integer to
// floating point) conversions are round-trip checked and fail with
// [ErrOverflow]. A string, bool or float bound to an integer T is parsed
// into a 64-bit integer and checked the same way. Any other value is passed
// through: basic values are coerced with spf13/cast, everything else with a
// plain Go conversion. Values that cannot be bound to T at all fail with
// [ErrUnsupported].
func Convert[T, S any](v S) (T, error) {
	if t, ok := any(v).(T); ok {
		return t, nil
	}

	var zero T

	switch any(zero).(type) {
	case int:
		return fromInt[T, int](v)
	case int8:
		return fromInt[T, int8](v)
	case int16:
		return fromInt[T, int16](v)
	case int32:
		return fromInt[T, int32](v)
	case int64:
		return fromInt[T, int64](v)
	case uint:
		return fromInt[T, uint](v)
	case uint8:
		return fromInt[T, uint8](v)
	case uint16:
		return fromInt[T, uint16](v)
	case uint32:
		return fromInt[T, uint32](v)
	case uint64:
		return fromInt[T, uint64](v)
	case uintptr:
		return fromInt[T, uintptr](v)
	}

	return convertValue[T](any(v))
}

// MustConvert is like [Convert] but panics on error.
func MustConvert[T, S any](v S) T {
	r, err := Convert[T](v)
	if err != nil {
		panic(err)
	}

	return r
}

// Value converts v to target using the same rules as [Convert]. It serves
// callers that only know the target type at runtime, such as reflective
// function invocation.
//
// An invalid v (an untyped nil) yields the zero value of target when target
// can hold nil.
func Value(v reflect.Value, target reflect.Type) (reflect.Value, error) {
	if !v.IsValid() {
		if nilable(target.Kind()) {
			return reflect.Zero(target), nil
		}

		return reflect.Value{}, unsupported(nil, target)
	}

	src := v.Type()
	if src == target {
		return v, nil
	}

	if isIntKind(src.Kind()) {
		switch {
		case isIntKind(target.Kind()):
			return checkedInt(v, target)
		case isFloatKind(target.Kind()):
			return checkedFloat(v, target)
		}
	}

	if src.AssignableTo(target) {
		if target.Kind() == reflect.Interface {
			return v, nil
		}

		return v.Convert(target), nil
	}

	if r, ok, err := coerceBasic(v, target); ok {
		return r, err
	}

	if src.ConvertibleTo(target) {
		return v.Convert(target), nil
	}

	return reflect.Value{}, unsupported(src, target)
}

// fromInt handles integer targets with a basic source type without
// reflection. Named source types fall back to [Value].
func fromInt[T any, I Integral](v any) (T, error) {
	var zero T

	r, ok, err := checkedAny[I](v)
	if !ok {
		return convertValue[T](v)
	}

	if err != nil {
		return zero, err
	}

	return any(r).(T), nil
}

func checkedAny[I Integral](v any) (I, bool, error) {
	var (
		r   I
		err error
	)

	switch s := v.(type) {
	case int:
		r, err = Checked[I](s)
	case int8:
		r, err = Checked[I](s)
	case int16:
		r, err = Checked[I](s)
	case int32:
		r, err = Checked[I](s)
	case int64:
		r, err = Checked[I](s)
	case uint:
		r, err = Checked[I](s)
	case uint8:
		r, err = Checked[I](s)
	case uint16:
		r, err = Checked[I](s)
	case uint32:
		r, err = Checked[I](s)
	case uint64:
		r, err = Checked[I](s)
	case uintptr:
		r, err = Checked[I](s)
	default:
		return 0, false, nil
	}

	return r, true, err
}

func convertValue[T any](v any) (T, error) {
	var zero T

	out, err := Value(reflect.ValueOf(v), reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}

	if !out.IsValid() || (nilable(out.Kind()) && out.IsNil()) {
		return zero, nil
	}

	return out.Interface().(T), nil
}

// checkedInt converts between integer kinds, named types included, and
// applies the same round-trip and sign tests as [Checked].
func checkedInt(v reflect.Value, target reflect.Type) (reflect.Value, error) {
	out := v.Convert(target)
	back := out.Convert(v.Type())

	if !sameInt(back, v) || isNegative(v) != isNegative(out) {
		return reflect.Value{}, overflowValue(v, target, nil)
	}

	return out, nil
}

// checkedFloat converts an integer to a floating point type and rejects
// values the float cannot represent exactly.
func checkedFloat(v reflect.Value, target reflect.Type) (reflect.Value, error) {
	out := v.Convert(target)
	f := out.Float()

	var ok bool
	if isSignedKind(v.Kind()) {
		ok = f >= -(1<<63) && f < 1<<63 && int64(f) == v.Int()
	} else {
		ok = f >= 0 && f < 1<<64 && uint64(f) == v.Uint()
	}

	if !ok {
		return reflect.Value{}, overflowValue(v, target, nil)
	}

	return out, nil
}

func sameInt(a, b reflect.Value) bool {
	if isSignedKind(a.Kind()) {
		return a.Int() == b.Int()
	}

	return a.Uint() == b.Uint()
}

func isNegative(v reflect.Value) bool {
	return isSignedKind(v.Kind()) && v.Int() < 0
}

func isIntKind(k reflect.Kind) bool {
	return isSignedKind(k) || isUnsignedKind(k)
}

func isSignedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

func isUnsignedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}

func isFloatKind(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func nilable(k reflect.Kind) bool {
	switch k {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	default:
		return false
	}
}
