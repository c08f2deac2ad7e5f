package yamath

import "errors"

var (
	ErrInvalidDecimal = errors.New("[MATH] invalid decimal integer")
	ErrNegativeValue  = errors.New("[MATH] value must be non-negative")
	ErrValueTooWide   = errors.New("[MATH] value does not fit the requested width")
)
