package yamath

import (
	"fmt"
	"math/big"
	"net/http"
	"strings"

	"github.com/YaCodeDev/GoYaToyRSA/yaerrors"
)

const decimalBase = 10

// ParseInt parses a non-negative decimal integer of any size. Surrounding
// whitespace and "_" digit separators are ignored.
//
// Example:
//
//	p, err := yamath.ParseInt("102_871")
func ParseInt(s string) (*big.Int, yaerrors.Error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), "_", "")

	value, ok := new(big.Int).SetString(cleaned, decimalBase)
	if !ok {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			ErrInvalidDecimal,
			fmt.Sprintf("[MATH] parse %q", s),
		)
	}

	if value.Sign() < 0 {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			ErrNegativeValue,
			fmt.Sprintf("[MATH] parse %q", s),
		)
	}

	return value, nil
}

// FromBytes interprets b as a big-endian unsigned integer.
func FromBytes(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// ToBytes serializes a non-negative x as big-endian bytes.
//
// With width ≤ 0 the minimal encoding is returned (empty for zero). With a
// positive width the output is left-padded with zeros to exactly width bytes,
// which keeps leading zero bytes of the original data intact.
func ToBytes(x *big.Int, width int) ([]byte, yaerrors.Error) {
	if x.Sign() < 0 {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			ErrNegativeValue,
			"[MATH] to bytes",
		)
	}

	if width <= 0 {
		return x.Bytes(), nil
	}

	const bitsInByte = 8

	if (x.BitLen()+bitsInByte-1)/bitsInByte > width {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			ErrValueTooWide,
			fmt.Sprintf("[MATH] %d-bit value into %d bytes", x.BitLen(), width),
		)
	}

	return x.FillBytes(make([]byte, width)), nil
}

// ByteLen returns the number of bytes needed to hold x.
func ByteLen(x *big.Int) int {
	const bitsInByte = 8

	return (x.BitLen() + bitsInByte - 1) / bitsInByte
}
