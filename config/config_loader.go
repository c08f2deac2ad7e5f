// Package config fills a settings struct from the process environment.
//
// Every exported field maps to an environment variable named after the field
// in SCREAMING_SNAKE_CASE; fields of nested structs are prefixed with their
// parent's key. A `default:"…"` tag supplies the value when the variable is
// unset. A field with no variable, no tag and a zero value is required.
// A .env file in the working directory is read first.
package config

import (
	"encoding"
	"fmt"
	"net/http"
	"os"
	"reflect"

	"github.com/YaCodeDev/GoYaToyRSA/valueparser"
	"github.com/YaCodeDev/GoYaToyRSA/yaerrors"
	"github.com/YaCodeDev/GoYaToyRSA/yalogger"
)

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

// LoadConfigStructFromEnv is LoadConfigStructFromEnvHandlingError that
// terminates the process through log.Fatalf on error.
//
// Example usage:
//
//	type Config struct {
//		LogLevel          yalogger.Level `default:"info"`
//		Primes            []*big.Int     `default:"102871,102877"`
//		FactorSearchBound *big.Int       `default:"1000000"`
//		CacheTTL          time.Duration  `default:"1h"`
//		RedisAddr         string         `default:""`
//	}
//
//	var cfg Config
//
//	config.LoadConfigStructFromEnv(&cfg, nil)
func LoadConfigStructFromEnv[T any](instance *T, log yalogger.Logger) {
	safetyCheck(&log)

	if err := LoadConfigStructFromEnvHandlingError(instance, log); err != nil {
		log.Fatalf("Failed to load config struct from env: %v", err)
	}
}

// LoadConfigStructFromEnvHandlingError loads environment variables into the
// struct instance points to. Supported field types are those of
// valueparser.ParseInto: scalars, time.Duration, pointers, slices and any
// encoding.TextUnmarshaler. Nested structs recurse.
//
// Example usage:
//
//	var cfg Config
//
//	if err := config.LoadConfigStructFromEnvHandlingError(&cfg, log); err != nil {
//		// handle error
//	}
func LoadConfigStructFromEnvHandlingError[T any](instance *T, log yalogger.Logger) yaerrors.Error {
	safetyCheck(&log)

	if err := loadDotEnv(DotEnvFile); err != nil {
		log.Warnf("Error loading .env file: %v", err)
	}

	value := reflect.ValueOf(instance).Elem()
	if value.Kind() != reflect.Struct {
		return yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			ErrConfigStructMustBeStruct,
			fmt.Sprintf("config loader, got %T", instance),
			log,
		)
	}

	return loadConfigStructFromEnv(value, "", log)
}

func loadConfigStructFromEnv(
	structValue reflect.Value,
	keyPath string,
	log yalogger.Logger,
) yaerrors.Error {
	structType := structValue.Type()

	for i := range structValue.NumField() {
		field := structType.Field(i)
		fieldVal := structValue.Field(i)

		if !fieldVal.CanSet() {
			log.Debugf("Field %s cannot be set", field.Name)

			continue
		}

		envKey := toScreamingSnakeCase(field.Name)
		if keyPath != "" {
			envKey = keyPath + "_" + envKey
		}

		if field.Type.Kind() == reflect.Struct &&
			!reflect.PointerTo(field.Type).Implements(textUnmarshalerType) {
			if err := loadConfigStructFromEnv(fieldVal, envKey, log); err != nil {
				return err.Wrap("failed to load struct field " + field.Name)
			}

			continue
		}

		if err := loadField(fieldVal, field, envKey, log); err != nil {
			return err.WrapWithLog(fmt.Sprintf("config loader: field %s", field.Name), log)
		}
	}

	return nil
}

func loadField(
	fieldVal reflect.Value,
	field reflect.StructField,
	envKey string,
	log yalogger.Logger,
) yaerrors.Error {
	if value, exists := os.LookupEnv(envKey); exists {
		if err := valueparser.ParseInto(value, fieldVal); err != nil {
			return err.Wrap("env " + envKey)
		}

		return nil
	}

	if !fieldVal.IsZero() {
		return nil
	}

	defaultValStr, hasDefault := field.Tag.Lookup(DefaultTagName)
	if !hasDefault {
		return yaerrors.FromError(
			http.StatusInternalServerError,
			ErrValueIsRequired,
			fmt.Sprintf("environment variable %s is required", envKey),
		)
	}

	if defaultValStr == "" {
		return nil
	}

	log.Debugf("Environment variable %s is not set, using default %q", envKey, defaultValStr)

	if err := valueparser.ParseInto(defaultValStr, fieldVal); err != nil {
		return err.Wrap("default of " + envKey)
	}

	return nil
}
