package yaerrors

import "errors"

// ErrTeapot is reported when a method is called on a nil Error.
var ErrTeapot = errors.New("backend developer is a teapot")
