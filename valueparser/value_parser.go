// Package valueparser turns the string form of a setting (an environment
// variable, a struct tag default) into a typed Go value.
//
// Besides the scalar kinds it understands time.Duration, pointers, slices of
// any supported element and every type implementing encoding.TextUnmarshaler,
// which covers *big.Int and yalogger.Level.
package valueparser

import (
	"encoding"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/YaCodeDev/GoYaToyRSA/yaerrors"
)

// DefaultEntrySeparator splits list values such as "61,53".
const DefaultEntrySeparator = ","

var (
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	durationType        = reflect.TypeFor[time.Duration]()
)

// ParseValue is a generic function that converts a string value to T.
//
// Example usage:
//
//	port, err := valueparser.ParseValue[uint16]("6379")
//	if err != nil {
//		// Handle error
//	}
func ParseValue[T any](value string) (T, yaerrors.Error) {
	var res T

	if err := ParseInto(value, reflect.ValueOf(&res).Elem()); err != nil {
		return res, err
	}

	return res, nil
}

// ParseArray splits str by separator (DefaultEntrySeparator when nil) and
// parses each trimmed part into T. An empty string gives an empty slice.
func ParseArray[T any](str string, separator *string) ([]T, yaerrors.Error) {
	if str == "" {
		return []T{}, nil
	}

	sep := DefaultEntrySeparator
	if separator != nil {
		sep = *separator
	}

	parts := strings.Split(str, sep)
	result := make([]T, 0, len(parts))

	for _, part := range parts {
		parsed, err := ParseValue[T](strings.TrimSpace(part))
		if err != nil {
			return nil, err.Wrap(fmt.Sprintf("parse array: failed to parse part '%s'", part))
		}

		result = append(result, parsed)
	}

	return result, nil
}

// ParseInto parses value and stores it in target, which must be settable.
//
// Slices other than []byte are comma separated. A TextUnmarshaler always
// wins over the kind based parsing.
func ParseInto(value string, target reflect.Value) yaerrors.Error {
	if !target.CanSet() {
		return yaerrors.FromError(
			http.StatusInternalServerError,
			ErrNotSettable,
			"parse into "+target.Type().String(),
		)
	}

	targetType := target.Type()

	if reflect.PointerTo(targetType).Implements(textUnmarshalerType) {
		unmarshaler, _ := target.Addr().Interface().(encoding.TextUnmarshaler)

		if err := unmarshaler.UnmarshalText([]byte(value)); err != nil {
			return unparsable(value, targetType, err)
		}

		return nil
	}

	if targetType == durationType {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return unparsable(value, targetType, err)
		}

		target.SetInt(int64(duration))

		return nil
	}

	switch targetType.Kind() {
	case reflect.String:
		target.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		parsed, err := strconv.ParseInt(value, 10, targetType.Bits())
		if err != nil {
			return unparsable(value, targetType, err)
		}

		target.SetInt(parsed)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		parsed, err := strconv.ParseUint(value, 10, targetType.Bits())
		if err != nil {
			return unparsable(value, targetType, err)
		}

		target.SetUint(parsed)

	case reflect.Float32, reflect.Float64:
		parsed, err := strconv.ParseFloat(value, targetType.Bits())
		if err != nil {
			return unparsable(value, targetType, err)
		}

		target.SetFloat(parsed)

	case reflect.Bool:
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return unparsable(value, targetType, err)
		}

		target.SetBool(parsed)

	case reflect.Pointer:
		elem := reflect.New(targetType.Elem())

		if err := ParseInto(value, elem.Elem()); err != nil {
			return err
		}

		target.Set(elem)

	case reflect.Slice:
		return parseSlice(value, target)

	default:
		return yaerrors.FromError(
			http.StatusInternalServerError,
			ErrUnsupportedType,
			"parse value: unsupported type "+targetType.String(),
		)
	}

	return nil
}

func parseSlice(value string, target reflect.Value) yaerrors.Error {
	targetType := target.Type()

	if targetType.Elem().Kind() == reflect.Uint8 {
		target.SetBytes([]byte(value))

		return nil
	}

	if value == "" {
		target.Set(reflect.MakeSlice(targetType, 0, 0))

		return nil
	}

	parts := strings.Split(value, DefaultEntrySeparator)
	slice := reflect.MakeSlice(targetType, len(parts), len(parts))

	for i, part := range parts {
		if err := ParseInto(strings.TrimSpace(part), slice.Index(i)); err != nil {
			return err.Wrap(fmt.Sprintf("parse value: element %d of %s", i, targetType))
		}
	}

	target.Set(slice)

	return nil
}

func unparsable(value string, targetType reflect.Type, err error) yaerrors.Error {
	return yaerrors.FromError(
		http.StatusBadRequest,
		fmt.Errorf("%w: %w", ErrUnparsableValue, err),
		fmt.Sprintf("parse value: %q as %s", value, targetType),
	)
}
