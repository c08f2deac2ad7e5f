// Package yaerrors provides the coded, wrappable error type returned by every
// GoYaToyRSA operation.
//
// An Error carries three things:
//   - a numeric code (HTTP status codes are used as the code space, so callers
//     can tell caller mistakes (4xx) from internal invariant failures (5xx));
//   - the original cause, reachable through Unwrap, so sentinel kinds such as
//     yarsa.ErrInvalidPrimePair match with errors.Is;
//   - a human readable traceback, grown by Wrap at each level of the call stack.
//
// Example:
//
//	err := yaerrors.FromError(http.StatusBadRequest, ErrNotPrime, "generate keys")
//	err = err.Wrap("demo: key generation")
//
//	fmt.Println(err)                       // 400 | demo: key generation -> generate keys: ...
//	fmt.Println(errors.Is(err, ErrNotPrime)) // true
package yaerrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/YaCodeDev/GoYaToyRSA/yalogger"
)

// Error is the error interface used across the module.
type Error interface {
	error
	Wrap(msg string) Error
	WrapWithLog(msg string, log yalogger.Logger) Error
	Code() int
	Unwrap() error
	UnwrapLastError() string
}

const (
	codeSeparate  = " | "
	errorSeparate = " -> "
)

type yaError struct {
	code      int
	cause     error
	traceback string
}

// FromError builds an Error around cause, prefixing the traceback with wrap.
func FromError(code int, cause error, wrap string) Error {
	return &yaError{
		code:      code,
		cause:     cause,
		traceback: fmt.Sprintf("%s: %v", wrap, cause),
	}
}

// FromErrorWithLog is FromError that also reports the message at error level.
func FromErrorWithLog(code int, cause error, wrap string, log yalogger.Logger) Error {
	err := FromError(code, cause, wrap)

	if log != nil {
		log.Error(err.Error())
	}

	return err
}

// FromString builds an Error whose cause is a fresh error carrying msg.
func FromString(code int, msg string) Error {
	return &yaError{
		code:      code,
		cause:     errors.New(msg), //nolint:err113
		traceback: msg,
	}
}

// FromStringWithLog is FromString that also reports the message at error level.
func FromStringWithLog(code int, msg string, log yalogger.Logger) Error {
	if log != nil {
		log.Error(msg)
	}

	return FromString(code, msg)
}

// Error renders "<code> | <traceback>".
func (e *yaError) Error() string {
	safetyCheck(&e)

	return fmt.Sprintf("%d%s%s", e.code, codeSeparate, e.traceback)
}

// Unwrap returns the cause the error was built from.
func (e *yaError) Unwrap() error {
	safetyCheck(&e)

	return e.cause
}

// UnwrapLastError returns the outermost traceback segment, i.e. the message of
// the most recent Wrap call.
func (e *yaError) UnwrapLastError() string {
	safetyCheck(&e)

	end := strings.Index(e.traceback, errorSeparate)
	if end == -1 {
		return e.traceback
	}

	return e.traceback[:end]
}

// Wrap prepends msg to the traceback. Call it every time the error crosses a
// function boundary on its way up.
func (e *yaError) Wrap(msg string) Error {
	safetyCheck(&e)

	e.traceback = msg + errorSeparate + e.traceback

	return e
}

// WrapWithLog is Wrap that also reports msg at error level.
func (e *yaError) WrapWithLog(msg string, log yalogger.Logger) Error {
	if log != nil {
		log.Error(msg)
	}

	return e.Wrap(msg)
}

// Code returns the numeric code.
func (e *yaError) Code() int {
	safetyCheck(&e)

	return e.code
}

// safetyCheck replaces a nil receiver with the teapot error so a dereferenced
// nil Error still reports something meaningful instead of crashing.
func safetyCheck(err **yaError) {
	if *err == nil {
		*err = &yaError{
			code:      http.StatusTeapot,
			cause:     ErrTeapot,
			traceback: ErrTeapot.Error(),
		}
	}
}
