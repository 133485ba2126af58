package cast

import (
	"errors"
	"fmt"
	"reflect"
)

// Prefix starts every conversion failure message. Callers that only have the
// message text can match on it.
const Prefix = "checked_cast<>() overflowed"

// ErrOverflow indicates that a checked integer conversion lost information:
// the converted value does not round-trip to the source value or its sign
// changed.
//
// Every [*OverflowError] matches it with [errors.Is].
var ErrOverflow = errors.New(Prefix)

// ErrUnsupported indicates that a non-integral value cannot be bound to the
// requested type at all.
//
// It is a usage error rather than a conversion failure; values of these types
// are passed through unchecked when they fit.
var ErrUnsupported = errors.New("unsupported conversion")

// OverflowError describes one failed checked conversion.
type OverflowError struct {
	// Source is the type of the value that was converted.
	Source reflect.Type
	// Target is the requested type.
	Target reflect.Type
	// Value is the original value.
	Value any
	// Site optionally names where the conversion happened, for example
	// "write: argument 1".
	Site string
	// Err is the underlying range error, if any was reported by a helper
	// library.
	Err error
}

// Error returns "checked_cast<>() overflowed: " followed by the call site
// descriptor.
func (e *OverflowError) Error() string {
	return Prefix + ": " + e.Descriptor()
}

// Descriptor renders the attempted conversion, e.g.
// "write: argument 1: Convert[int8, uint64](142)".
func (e *OverflowError) Descriptor() string {
	d := fmt.Sprintf("Convert[%s, %s](%v)", typeName(e.Target), typeName(e.Source), e.Value)
	if e.Site != "" {
		d = e.Site + ": " + d
	}

	return d
}

// Is reports whether target is [ErrOverflow].
func (e *OverflowError) Is(target error) bool {
	return target == ErrOverflow
}

// Unwrap returns the underlying range error.
func (e *OverflowError) Unwrap() error {
	return e.Err
}

// IsOverflow reports whether err is, or wraps, a checked conversion failure.
func IsOverflow(err error) bool {
	return errors.Is(err, ErrOverflow)
}

// WithSite returns err with site prepended to its descriptor when err is an
// [*OverflowError]. Other errors are returned unchanged.
func WithSite(err error, site string) error {
	var oe *OverflowError
	if site == "" || !errors.As(err, &oe) {
		return err
	}

	cp := *oe
	if cp.Site != "" {
		cp.Site = site + ": " + cp.Site
	} else {
		cp.Site = site
	}

	return &cp
}

// overflow builds the failure. It stays out of line so the success path of
// the generic converters remains small.
//
//go:noinline
func overflow[T, S any](v S, err error) error {
	return &OverflowError{
		Source: reflect.TypeFor[S](),
		Target: reflect.TypeFor[T](),
		Value:  v,
		Err:    err,
	}
}

//go:noinline
func overflowValue(v reflect.Value, target reflect.Type, err error) error {
	return &OverflowError{
		Source: v.Type(),
		Target: target,
		Value:  v.Interface(),
		Err:    err,
	}
}

func unsupported(from, to reflect.Type) error {
	return fmt.Errorf("%w to %s from %s", ErrUnsupported, typeName(to), typeName(from))
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}
