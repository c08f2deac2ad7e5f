package yalogger_test

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/YaCodeDev/GoYaToyRSA/yalogger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(level yalogger.Level) (yalogger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer

	log := yalogger.NewBaseLogger(&yalogger.Config{
		BaseLoggerType:   yalogger.Logrus,
		Level:            level,
		DisableTimestamp: true,
		Output:           &buf,
	}).NewLogger()

	return log, &buf
}

func TestLogger_RespectsLevel(t *testing.T) {
	t.Parallel()

	log, buf := newBufferedLogger(yalogger.InfoLevel)

	log.Debug("hidden")
	log.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	t.Parallel()

	log, buf := newBufferedLogger(yalogger.DebugLevel)

	child := log.WithField(yalogger.KeyModulus, "3233")

	assert.Equal(t, "3233", child.GetField(yalogger.KeyModulus))
	assert.Nil(t, log.GetField(yalogger.KeyModulus))

	child.Info("factorization started")
	assert.Contains(t, buf.String(), "modulus=3233")
}

func TestLogger_WithPublicKey(t *testing.T) {
	t.Parallel()

	log, buf := newBufferedLogger(yalogger.InfoLevel)

	tagged := log.WithPublicKey(big.NewInt(3233), big.NewInt(17))
	assert.Equal(t, "3233", tagged.GetField(yalogger.KeyModulus))
	assert.Equal(t, "17", tagged.GetField(yalogger.KeyExponent))

	tagged.Info("key pair generated")
	assert.Contains(t, buf.String(), "exponent=17")
	assert.Contains(t, buf.String(), "modulus=3233")

	partial := log.WithPublicKey(big.NewInt(3233), nil)
	assert.Nil(t, partial.GetField(yalogger.KeyExponent))
}

func TestLogger_WithRequestUUID(t *testing.T) {
	t.Parallel()

	log, _ := newBufferedLogger(yalogger.InfoLevel)

	id := uuid.New()

	tagged := log.WithRequestUUID(id)
	assert.Equal(t, id.String(), tagged.GetField(yalogger.KeyRequestID))

	random := log.WithRandomRequestID()
	_, err := uuid.Parse(random.GetField(yalogger.KeyRequestID).(string))
	require.NoError(t, err)
}

func TestLogger_GetFieldsIsCopy(t *testing.T) {
	t.Parallel()

	log, _ := newBufferedLogger(yalogger.InfoLevel)

	log = log.WithFields(map[string]any{"a": 1, "b": 2})

	fields := log.GetFields()
	delete(fields, "a")

	assert.Equal(t, 1, log.GetField("a"))
}

func TestNopLogger_Discards(t *testing.T) {
	t.Parallel()

	log := yalogger.NewNopLogger()

	assert.NotPanics(t, func() {
		log.Error("nobody hears this")
	})
}

func TestLevel_UnmarshalText(t *testing.T) {
	t.Parallel()

	cases := map[string]yalogger.Level{
		"info":  yalogger.InfoLevel,
		"DEBUG": yalogger.DebugLevel,
		"warn":  yalogger.WarnLevel,
		"6":     yalogger.TraceLevel,
	}

	for text, want := range cases {
		t.Run(text, func(t *testing.T) {
			t.Parallel()

			var got yalogger.Level

			require.NoError(t, got.UnmarshalText([]byte(text)))
			assert.Equal(t, want, got)
		})
	}

	var bad yalogger.Level

	assert.ErrorIs(t, bad.UnmarshalText([]byte("loud")), yalogger.ErrInvalidLogLevel)
	assert.ErrorIs(t, bad.UnmarshalText([]byte("42")), yalogger.ErrInvalidLogLevel)
}
