// Package call wraps function calls with checked conversions of every
// argument and of the result.
//
// Arguments are converted to the callee's declared parameter types with
// [cast.Convert] before the callee runs, so a 142 byte size passed to a
// parameter declared as int8 fails instead of wrapping around. The result
// comes back as a [Value] that is converted, again checked, when the caller
// asks for a concrete type with [As].
//
// Two flavors exist. [Call0] through [Call4] take a callee whose signature is
// known at compile time and need no reflection. [Bind] and [Invoke] accept
// any function value and resolve its signature at runtime.
//
// A conversion failure is reported as a [*cast.OverflowError]. Input-side
// failures are returned before the callee runs; output-side failures happen
// after it has run, and its side effects are not rolled back.
package call
