package cast

import (
	"fmt"
	"math"
	"reflect"

	"github.com/spf13/cast"
)

// coerceBasic passes a non-integral basic value through spf13/cast. ok is
// false when either side is not a basic kind, in which case the caller tries
// a plain Go conversion.
//
// Integer targets never take the narrow spf13/cast path: the value is read
// into a 64-bit integer first and then range checked like any other integer
// conversion.
func coerceBasic(v reflect.Value, target reflect.Type) (out reflect.Value, ok bool, err error) {
	x, ok := baseValue(v)
	if !ok {
		return reflect.Value{}, false, nil
	}

	if isIntKind(target.Kind()) {
		out, err = coerceInt(v, x, target)
		return out, true, err
	}

	var r any

	switch target.Kind() {
	case reflect.Bool:
		r, err = cast.ToE[bool](x)
	case reflect.String:
		r, err = cast.ToE[string](x)
	case reflect.Float32:
		r, err = cast.ToE[float32](x)
	case reflect.Float64:
		r, err = cast.ToE[float64](x)
	default:
		return reflect.Value{}, false, nil
	}

	if err != nil {
		return reflect.Value{}, true, fmt.Errorf("%w: %w", unsupported(v.Type(), target), err)
	}

	return reflect.ValueOf(r).Convert(target), true, nil
}

// coerceInt converts a string, bool or float to an integer target. Floats
// lose their fraction; a float or parsed value outside the target range fails
// with [ErrOverflow] naming the original source.
func coerceInt(v reflect.Value, x any, target reflect.Type) (reflect.Value, error) {
	wide, err := wideInt(v, x)
	if err != nil {
		return reflect.Value{}, err
	}

	if !wide.IsValid() {
		return reflect.Value{}, overflowValue(v, target, nil)
	}

	out, err := checkedInt(wide, target)
	if err != nil {
		return reflect.Value{}, overflowValue(v, target, nil)
	}

	return out, nil
}

// wideInt reads x as an int64, or as a uint64 when it does not fit in an
// int64. An invalid result with a nil error means x is a number outside both
// ranges.
func wideInt(v reflect.Value, x any) (reflect.Value, error) {
	if isFloatKind(v.Kind()) {
		f := v.Float()

		switch {
		case math.IsNaN(f) || f < -(1<<63) || f >= 1<<64:
			return reflect.Value{}, nil
		case f < 1<<63:
			return reflect.ValueOf(int64(f)), nil
		default:
			return reflect.ValueOf(uint64(f)), nil
		}
	}

	i, err := cast.ToE[int64](x)
	if err == nil {
		return reflect.ValueOf(i), nil
	}

	u, uerr := cast.ToE[uint64](x)
	if uerr != nil {
		return reflect.Value{}, fmt.Errorf("%w: %w", unsupported(v.Type(), reflect.TypeFor[int64]()), err)
	}

	return reflect.ValueOf(u), nil
}

// baseValue strips named basic types down to their predeclared form so that
// spf13/cast recognizes them.
func baseValue(v reflect.Value) (any, bool) {
	switch k := v.Kind(); {
	case k == reflect.Bool:
		return v.Bool(), true
	case k == reflect.String:
		return v.String(), true
	case isSignedKind(k):
		return v.Int(), true
	case isUnsignedKind(k):
		return v.Uint(), true
	case k == reflect.Float32:
		return float32(v.Float()), true
	case k == reflect.Float64:
		return v.Float(), true
	default:
		return nil, false
	}
}
