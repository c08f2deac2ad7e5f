package yalogger

// Level mirrors logrus levels so it converts without a lookup table.
type Level uint32

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
	TraceLevel
)

type BaseLoggerType uint8

const (
	Logrus BaseLoggerType = iota
)

const (
	KeyRequestID = "request_id"
	KeyModulus   = "modulus"
	KeyExponent  = "exponent"
)
