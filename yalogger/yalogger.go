package yalogger

import (
	"io"
	"math/big"

	"github.com/google/uuid"
)

// Config defines the configuration options for the logger.
//
// BaseLoggerType: The type of logger to use (e.g., Logrus).
// Level: The minimum log level to output (e.g., Info).
// FullTimestamp: Whether to include the full timestamp in log messages.
// DisableTimestamp: Whether to disable timestamps in log messages.
// TimestampFormat: The format to use for timestamps in log messages.
// Output: Where log lines are written; stderr when nil.
type Config struct {
	BaseLoggerType   BaseLoggerType
	Level            Level
	FullTimestamp    bool
	DisableTimestamp bool
	TimestampFormat  string
	Output           io.Writer
}

// BaseLogger is an interface for creating new Logger instances.
type BaseLogger interface {
	// NewLogger creates a new Logger instance from the base logger.
	NewLogger() Logger
}

// Logger defines a structured logging interface with support for various log levels,
// formatting, and context-aware logging using key-value fields.
type Logger interface {
	// Info logs a message at the Info level.
	//
	// Example usage:
	//
	//   logger.Info("Key pair generated")
	Info(msg string)

	// Infof logs a formatted message at the Info level.
	//
	// Example usage:
	//
	//   logger.Infof("Modulus has %d bytes", size)
	Infof(format string, args ...any)

	// Trace logs a message at the Trace level.
	Trace(msg string)

	// Tracef logs a formatted message at the Trace level.
	Tracef(format string, args ...any)

	// Error logs a message at the Error level.
	Error(msg string)

	// Errorf logs a formatted message at the Error level.
	Errorf(format string, args ...any)

	// Warn logs a message at the Warn level.
	Warn(msg string)

	// Warnf logs a formatted message at the Warn level.
	Warnf(format string, args ...any)

	// Debug logs a message at the Debug level.
	Debug(msg string)

	// Debugf logs a formatted message at the Debug level.
	//
	// Example usage:
	//
	//   logger.Debugf("Exponent candidate %s rejected", e)
	Debugf(format string, args ...any)

	// Fatal logs a message at the Fatal level and terminates the process.
	Fatal(msg string)

	// Fatalf logs a formatted message at the Fatal level and terminates the process.
	Fatalf(format string, args ...any)

	// WithField returns a logger with a single field added to the context.
	// The receiver is left untouched.
	//
	// Example usage:
	//
	//   logger.WithField("modulus", n.String()).Info("Factorization started")
	WithField(key string, value any) Logger

	// WithFields returns a logger with multiple fields added to the context.
	WithFields(fields map[string]any) Logger

	// WithPublicKey tags the context with an RSA modulus and public exponent
	// under KeyModulus and KeyExponent. Nil values are skipped.
	//
	// Example usage:
	//
	//   logger.WithPublicKey(pub.N, pub.E).Info("Attack started")
	WithPublicKey(n, e *big.Int) Logger

	// WithRequestUUID returns a logger tagged with a UUID request ID.
	WithRequestUUID(id uuid.UUID) Logger

	// WithRandomRequestID returns a logger tagged with a freshly generated UUID.
	WithRandomRequestID() Logger

	// GetFields returns the current log context fields as a map.
	GetFields() map[string]any

	// GetField returns the value of a field from the current log context, or
	// nil when it is not set.
	GetField(key string) any
}
