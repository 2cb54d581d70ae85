package unitconv

import "errors"

// ErrNotSupported is matched by [errors.Is] against any
// [*UnsupportedError] returned from [Convert].
var ErrNotSupported = errors.New("not supported")

// UnsupportedError is the error returned by [Convert] when the requested
// unit pair is present in neither table. It carries the case-folded unit
// codes.
type UnsupportedError struct {
	From string
	To   string
}

func (e *UnsupportedError) Error() string {
	return "Conversion from '" + e.From + "' to '" + e.To + "' is not supported."
}

func (e *UnsupportedError) Is(target error) bool {
	return target == ErrNotSupported
}
