package call

import (
	"fmt"
	"math"
	"reflect"

	"go.dw1.io/checkedcall/cast"
)

// Value holds a value whose conversion is deferred until the caller asks for
// a concrete type with [As].
//
// The zero Value holds the zero value of S.
type Value[S any] struct {
	v S
}

// Wrap returns a Value holding v.
func Wrap[S any](v S) Value[S] {
	return Value[S]{v: v}
}

// As converts the held value to T with [cast.Convert].
func As[T, S any](w Value[S]) (T, error) {
	return cast.Convert[T](w.v)
}

// MustAs is like [As] but panics on error.
func MustAs[T, S any](w Value[S]) T {
	r, err := As[T](w)
	if err != nil {
		panic(err)
	}

	return r
}

// Raw returns the held value without conversion.
func (w Value[S]) Raw() S {
	return w.v
}

// String formats the held value with %v.
func (w Value[S]) String() string {
	return fmt.Sprint(w.v)
}

// Equal reports whether the held value equals other. No conversion is
// checked: numbers compare by value across types, so Wrap(uint64(100))
// equals int8(100) and Wrap(int8(-1)) does not equal uint8(255). Other values
// compare with == and are unequal when their types differ or are not
// comparable.
func (w Value[S]) Equal(other any) bool {
	a := reflect.ValueOf(any(w.v))
	b := reflect.ValueOf(other)

	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid()
	}

	if isNumber(a.Kind()) && isNumber(b.Kind()) {
		return numericEqual(a, b)
	}

	if a.Type() != b.Type() || !a.Comparable() {
		return false
	}

	return a.Equal(b)
}

// NotEqual is the negation of [Value.Equal].
func (w Value[S]) NotEqual(other any) bool {
	return !w.Equal(other)
}

func numericEqual(a, b reflect.Value) bool {
	ka, kb := a.Kind(), b.Kind()

	switch {
	case isFloat(ka) && isFloat(kb):
		return a.Float() == b.Float()
	case isFloat(ka):
		return intEqualsFloat(b, a.Float())
	case isFloat(kb):
		return intEqualsFloat(a, b.Float())
	case isSigned(ka) && isSigned(kb):
		return a.Int() == b.Int()
	case !isSigned(ka) && !isSigned(kb):
		return a.Uint() == b.Uint()
	case isSigned(ka):
		return a.Int() >= 0 && uint64(a.Int()) == b.Uint()
	default:
		return b.Int() >= 0 && uint64(b.Int()) == a.Uint()
	}
}

// intEqualsFloat compares in the integer domain so that integers above 2^53
// do not collapse onto a nearby float.
func intEqualsFloat(i reflect.Value, f float64) bool {
	if f != math.Trunc(f) {
		return false
	}

	if isSigned(i.Kind()) {
		return f >= -(1<<63) && f < 1<<63 && int64(f) == i.Int()
	}

	return f >= 0 && f < 1<<64 && uint64(f) == i.Uint()
}

func isNumber(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Float64
}

func isSigned(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
