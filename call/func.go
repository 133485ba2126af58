package call

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"

	"go.dw1.io/checkedcall/cast"
)

var errorType = reflect.TypeFor[error]()

// signature is the call plan for one function type.
type signature struct {
	params   []reflect.Type
	variadic reflect.Type // element type of the trailing ...T parameter
	result   bool         // first result is a value
	err      bool         // last result is an error
}

var signatures sync.Map // reflect.Type -> *signature

func signatureOf(t reflect.Type) (*signature, error) {
	if s, ok := signatures.Load(t); ok {
		return s.(*signature), nil
	}

	s := &signature{}

	n := t.NumIn()
	if t.IsVariadic() {
		n--
		s.variadic = t.In(n).Elem()
	}

	s.params = make([]reflect.Type, n)
	for i := range n {
		s.params[i] = t.In(i)
	}

	switch t.NumOut() {
	case 0:
	case 1:
		if t.Out(0) == errorType {
			s.err = true
		} else {
			s.result = true
		}
	case 2:
		if t.Out(1) != errorType {
			return nil, fmt.Errorf("%w: %s: second result must be error", ErrSignature, t)
		}

		s.result, s.err = true, true
	default:
		return nil, fmt.Errorf("%w: %s: too many results", ErrSignature, t)
	}

	actual, _ := signatures.LoadOrStore(t, s)

	return actual.(*signature), nil
}

// Func is a function bound for checked calls. It is immutable and safe for
// concurrent use.
type Func struct {
	fn      reflect.Value
	sig     *signature
	name    func() string
	logger  *zap.Logger
	metrics *Metrics
}

// Bind prepares fn for checked calls. fn must be a function returning
// nothing, a value, an error, or a value and an error.
//
// The signature is resolved once per function type and shared between Bind
// calls.
func Bind(fn any, opts ...Option) (*Func, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("%w: %T is not a function", ErrSignature, fn)
	}

	sig, err := signatureOf(v.Type())
	if err != nil {
		return nil, err
	}

	var cfg config
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	f := &Func{
		fn:      v,
		sig:     sig,
		logger:  cfg.logger,
		metrics: cfg.metrics,
	}

	if cfg.name != "" {
		f.name = func() string { return cfg.name }
	} else {
		f.name = sync.OnceValue(func() string { return funcName(v) })
	}

	return f, nil
}

// MustBind is like [Bind] but panics on error. It simplifies package-level
// declarations of bound functions.
func MustBind(fn any, opts ...Option) *Func {
	f, err := Bind(fn, opts...)
	if err != nil {
		panic(err)
	}

	return f
}

// Invoke binds fn and calls it once with args.
func Invoke(fn any, args ...any) (Value[any], error) {
	f, err := Bind(fn)
	if err != nil {
		return Value[any]{}, err
	}

	return f.Call(args...)
}

// Name returns the name used in diagnostics.
func (f *Func) Name() string {
	return f.name()
}

// Call converts each argument to the declared parameter type, calls the
// function and wraps its result.
//
// A conversion failure is returned before the function runs. If the function
// returns a non-nil error it is returned together with the wrapped result.
// A function without a value result yields a Value holding nil.
func (f *Func) Call(args ...any) (Value[any], error) {
	in, err := f.bind(args)
	if err != nil {
		return Value[any]{}, err
	}

	f.metrics.observeCall(f.name())

	out := f.fn.Call(in)

	var res Value[any]
	if f.sig.result {
		res = Wrap(out[0].Interface())
	}

	if f.sig.err {
		if e := out[len(out)-1]; !e.IsNil() {
			return res, e.Interface().(error)
		}
	}

	return res, nil
}

// CallAs calls f like [Func.Call] and converts the result to T with
// [ResultAs].
func CallAs[T any](f *Func, args ...any) (T, error) {
	res, err := f.Call(args...)
	if err != nil {
		var zero T
		return zero, err
	}

	return ResultAs[T](f, res)
}

// ResultAs converts res, a result returned by f, to T. Unlike [As] a failure
// is attributed to f: it names f's result in the diagnostic and is logged and
// counted as an output-side overflow. It happens after f has run.
func ResultAs[T any](f *Func, res Value[any]) (T, error) {
	r, err := As[T](res)
	if err != nil {
		err = siteError(resultSite(f.name()), err)
		f.report(err, sideOutput)

		var zero T
		return zero, err
	}

	return r, nil
}

func (f *Func) bind(args []any) ([]reflect.Value, error) {
	params := f.sig.params

	if len(args) < len(params) || (f.sig.variadic == nil && len(args) > len(params)) {
		return nil, fmt.Errorf("%w: %s: got %d arguments, want %d", ErrSignature, f.name(), len(args), len(params))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		target := f.sig.variadic
		if i < len(params) {
			target = params[i]
		}

		v, err := cast.Value(reflect.ValueOf(arg), target)
		if err != nil {
			err = siteError(argSite(f.name(), i+1), err)
			f.report(err, sideInput)

			return nil, err
		}

		in[i] = v
	}

	return in, nil
}

// report logs and counts conversion failures.
func (f *Func) report(err error, side string) {
	var oe *cast.OverflowError
	if !errors.As(err, &oe) {
		return
	}

	l := f.logger
	if l == nil {
		l = Logger()
	}

	l.Warn("checked conversion overflowed",
		zap.String("func", f.name()),
		zap.String("side", side),
		zap.Stringer("source", oe.Source),
		zap.Stringer("target", oe.Target),
		zap.Any("value", oe.Value),
		zap.Error(err))

	f.metrics.observeOverflow(f.name(), side)
}
