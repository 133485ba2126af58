// Package cast provides checked conversions between numeric types.
//
// [Checked] and [Convert] convert integers with a round-trip test: the result
// is converted back to the source type and compared with the original value,
// and a change of sign is rejected. A value that does not survive the trip
// fails with an [*OverflowError] whose message starts with
// "checked_cast<>() overflowed". Values that are not integers are passed
// through unchecked.
//
// [To] is the dynamic counterpart that also parses strings and other loose
// inputs. It uses [safemath] for integer inputs and [cast] for everything
// else.
package cast
