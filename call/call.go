package call

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"go.dw1.io/checkedcall/cast"
)

// Call0 calls fn and wraps its result.
func Call0[R any](fn func() R) Value[R] {
	return Wrap(fn())
}

// Call1 converts a1 to the parameter type of fn, calls fn and wraps its
// result. If the conversion fails fn is not called.
func Call1[P1, R, A1 any](fn func(P1) R, a1 A1) (Value[R], error) {
	p1, err := cast.Convert[P1](a1)
	if err != nil {
		return Value[R]{}, argError(fn, 1, err)
	}

	return Wrap(fn(p1)), nil
}

// Call2 is like [Call1] for functions of two parameters.
func Call2[P1, P2, R, A1, A2 any](fn func(P1, P2) R, a1 A1, a2 A2) (Value[R], error) {
	p1, err := cast.Convert[P1](a1)
	if err != nil {
		return Value[R]{}, argError(fn, 1, err)
	}

	p2, err := cast.Convert[P2](a2)
	if err != nil {
		return Value[R]{}, argError(fn, 2, err)
	}

	return Wrap(fn(p1, p2)), nil
}

// Call3 is like [Call1] for functions of three parameters.
func Call3[P1, P2, P3, R, A1, A2, A3 any](fn func(P1, P2, P3) R, a1 A1, a2 A2, a3 A3) (Value[R], error) {
	p1, err := cast.Convert[P1](a1)
	if err != nil {
		return Value[R]{}, argError(fn, 1, err)
	}

	p2, err := cast.Convert[P2](a2)
	if err != nil {
		return Value[R]{}, argError(fn, 2, err)
	}

	p3, err := cast.Convert[P3](a3)
	if err != nil {
		return Value[R]{}, argError(fn, 3, err)
	}

	return Wrap(fn(p1, p2, p3)), nil
}

// Call4 is like [Call1] for functions of four parameters.
func Call4[P1, P2, P3, P4, R, A1, A2, A3, A4 any](fn func(P1, P2, P3, P4) R, a1 A1, a2 A2, a3 A3, a4 A4) (Value[R], error) {
	p1, err := cast.Convert[P1](a1)
	if err != nil {
		return Value[R]{}, argError(fn, 1, err)
	}

	p2, err := cast.Convert[P2](a2)
	if err != nil {
		return Value[R]{}, argError(fn, 2, err)
	}

	p3, err := cast.Convert[P3](a3)
	if err != nil {
		return Value[R]{}, argError(fn, 3, err)
	}

	p4, err := cast.Convert[P4](a4)
	if err != nil {
		return Value[R]{}, argError(fn, 4, err)
	}

	return Wrap(fn(p1, p2, p3, p4)), nil
}

// argError attaches the function name and argument position to err.
//
//go:noinline
func argError(fn any, pos int, err error) error {
	return siteError(argSite(funcName(reflect.ValueOf(fn)), pos), err)
}

func siteError(site string, err error) error {
	if cast.IsOverflow(err) {
		return cast.WithSite(err, site)
	}

	return fmt.Errorf("%s: %w", site, err)
}

func argSite(name string, pos int) string {
	return fmt.Sprintf("%s: argument %d", name, pos)
}

func resultSite(name string) string {
	return name + ": result"
}

// funcName returns the short symbol name of fn, e.g. "demo.WriteNarrow".
func funcName(fn reflect.Value) string {
	if fn.Kind() != reflect.Func || fn.IsNil() {
		return "<nil>"
	}

	rf := runtime.FuncForPC(fn.Pointer())
	if rf == nil {
		return fn.Type().String()
	}

	name := rf.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}

	return name
}
