package cast

import (
	"github.com/spf13/cast"
	"go.dw1.io/safemath"
)

// Basic is the set of types spf13/cast parses into.
type Basic = cast.Basic

// Integer is the set of predeclared integer types safemath converts between.
type Integer = safemath.Integer

// Type lists the targets of [To]: everything spf13/cast can parse plus every
// integer type safemath can range check.
type Type interface {
	Basic | Integer
}

// Integral matches every type whose underlying type is a Go integer kind.
//
// Unlike [Integer] it admits named types such as time.Duration or
// os.FileMode, which is what [Checked] needs to police conversions between
// application-defined counters.
type Integral interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}
