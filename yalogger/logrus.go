package yalogger

import (
	"io"
	"maps"
	"math/big"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// logrusAdapter implements Logger on top of a logrus.Entry.
type logrusAdapter struct {
	entry *logrus.Entry
}

// baseLogrus holds the configured logrus.Logger that every Logger derives from.
type baseLogrus struct {
	logger *logrus.Logger
}

// NewBaseLogger creates and configures a new base logger.
//
// A nil config yields a Logrus logger at Info level with timestamps disabled.
//
// Notes:
//
//   - If the logger type specified in config is not supported, the function panics.
func NewBaseLogger(config *Config) BaseLogger {
	if config == nil {
		config = &Config{
			BaseLoggerType:   Logrus,
			Level:            InfoLevel,
			TimestampFormat:  "2006-01-02 15:04:05",
			DisableTimestamp: true,
		}
	}

	switch config.BaseLoggerType {
	case Logrus:
		base := logrus.New()
		base.SetLevel(logrus.Level(config.Level))
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    config.FullTimestamp,
			TimestampFormat:  config.TimestampFormat,
			DisableTimestamp: config.DisableTimestamp,
		})

		if config.Output != nil {
			base.SetOutput(config.Output)
		}

		return &baseLogrus{logger: base}
	default:
		panic("Unsupported logger type, you are a teapot!!!")
	}
}

// NewNopLogger returns a Logger that discards everything. Library packages
// fall back to it when the caller passes no logger.
func NewNopLogger() Logger {
	return NewBaseLogger(&Config{
		BaseLoggerType:   Logrus,
		Level:            PanicLevel,
		DisableTimestamp: true,
		Output:           io.Discard,
	}).NewLogger()
}

// NewLogger wraps a fresh entry of the base logrus logger.
func (b *baseLogrus) NewLogger() Logger {
	return &logrusAdapter{entry: logrus.NewEntry(b.logger)}
}

func (l *logrusAdapter) Info(msg string) {
	l.entry.Info(msg)
}

func (l *logrusAdapter) Infof(format string, args ...any) {
	l.entry.Infof(format, args...)
}

func (l *logrusAdapter) Error(msg string) {
	l.entry.Error(msg)
}

func (l *logrusAdapter) Errorf(format string, args ...any) {
	l.entry.Errorf(format, args...)
}

func (l *logrusAdapter) Warn(msg string) {
	l.entry.Warn(msg)
}

func (l *logrusAdapter) Warnf(format string, args ...any) {
	l.entry.Warnf(format, args...)
}

func (l *logrusAdapter) Debug(msg string) {
	l.entry.Debug(msg)
}

func (l *logrusAdapter) Debugf(format string, args ...any) {
	l.entry.Debugf(format, args...)
}

func (l *logrusAdapter) Fatal(msg string) {
	l.entry.Fatal(msg)
}

func (l *logrusAdapter) Fatalf(format string, args ...any) {
	l.entry.Fatalf(format, args...)
}

func (l *logrusAdapter) Trace(msg string) {
	l.entry.Trace(msg)
}

func (l *logrusAdapter) Tracef(format string, args ...any) {
	l.entry.Tracef(format, args...)
}

// WithField returns a new Logger with key=value added to the log context.
//
// Example usage:
//
//	logger.WithField("block_size", 3).Debug("Message chunked")
func (l *logrusAdapter) WithField(key string, value any) Logger {
	return &logrusAdapter{entry: l.entry.WithField(key, value)}
}

// WithFields returns a new Logger with every pair of fields added to the log context.
func (l *logrusAdapter) WithFields(fields map[string]any) Logger {
	return &logrusAdapter{entry: l.entry.WithFields(fields)}
}

// WithPublicKey adds the decimal modulus and exponent to the log context.
func (l *logrusAdapter) WithPublicKey(n, e *big.Int) Logger {
	fields := make(map[string]any, 2)

	if n != nil {
		fields[KeyModulus] = n.String()
	}

	if e != nil {
		fields[KeyExponent] = e.String()
	}

	return l.WithFields(fields)
}

// WithRequestUUID tags the context with a UUID request ID.
//
// Example usage:
//
//	logger.WithRequestUUID(uuid.New()).Info("Demo run started")
func (l *logrusAdapter) WithRequestUUID(id uuid.UUID) Logger {
	return l.WithField(KeyRequestID, id.String())
}

// WithRandomRequestID tags the context with a new random UUID.
func (l *logrusAdapter) WithRandomRequestID() Logger {
	return l.WithRequestUUID(uuid.New())
}

// GetFields returns a copy of the current log context fields.
func (l *logrusAdapter) GetFields() map[string]any {
	return maps.Clone(map[string]any(l.entry.Data))
}

// GetField returns the value of a specific field from the log context, or nil.
func (l *logrusAdapter) GetField(key string) any {
	val, ok := l.entry.Data[key]
	if !ok {
		return nil
	}

	return val
}
