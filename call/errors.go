package call

import "errors"

// ErrSignature indicates that a function cannot be called with the given
// arguments: it is not a function, it has an unsupported result list, or the
// argument count does not match.
var ErrSignature = errors.New("call: signature mismatch")

// ErrInvalidOption indicates that an option was malformed or incomplete.
var ErrInvalidOption = errors.New("call: invalid option")
