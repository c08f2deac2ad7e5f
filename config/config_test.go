package config_test

import (
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/YaCodeDev/GoYaToyRSA/config"
	"github.com/YaCodeDev/GoYaToyRSA/yalogger"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cacheSettings struct {
	RedisAddr string        `default:""`
	CacheTTL  time.Duration `default:"1h"`
}

type settings struct {
	LogLevel          yalogger.Level `default:"info"`
	Message           string         `default:"Rust is great"`
	Primes            []int64        `default:"61,53"`
	FactorSearchBound *big.Int       `default:"1000000"`
	BlockSize         int            `default:"0"`
	Verbose           bool           `default:"false"`
	Ratio             float64        `default:"0.5"`
	Seed              []byte         `default:""`
	Cache             cacheSettings
	Required          uint16
}

// writeDotEnv also makes sure every key the file may set is unset again
// when the test ends, since the loader writes to the process environment.
func writeDotEnv(t *testing.T, content string, keys ...string) {
	t.Helper()

	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DotEnvFile), []byte(content), 0o600))
}

func TestConfigLoader_DefaultsAndEnv(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("REQUIRED", "7")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PRIMES", "102871, 102881")
	t.Setenv("CACHE_CACHE_TTL", "90s")
	t.Setenv("CACHE_REDIS_ADDR", "127.0.0.1:6379")

	var instance settings

	err := config.LoadConfigStructFromEnvHandlingError(&instance, yalogger.NewNopLogger())
	require.Nil(t, err)

	expected := settings{
		LogLevel:          yalogger.DebugLevel,
		Message:           "Rust is great",
		Primes:            []int64{102871, 102881},
		FactorSearchBound: big.NewInt(1_000_000),
		Ratio:             0.5,
		Cache: cacheSettings{
			RedisAddr: "127.0.0.1:6379",
			CacheTTL:  90 * time.Second,
		},
		Required: 7,
	}

	if diff := cmp.Diff(expected, instance, cmp.Comparer(func(a, b *big.Int) bool {
		return a.Cmp(b) == 0
	})); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigLoader_PresetValuesSurvive(t *testing.T) {
	t.Chdir(t.TempDir())

	instance := settings{Message: "preset", Required: 3}

	err := config.LoadConfigStructFromEnvHandlingError(&instance, nil)
	require.Nil(t, err)

	assert.Equal(t, "preset", instance.Message)
	assert.Equal(t, uint16(3), instance.Required)
}

func TestConfigLoader_MissingRequired(t *testing.T) {
	t.Chdir(t.TempDir())

	var instance settings

	err := config.LoadConfigStructFromEnvHandlingError(&instance, yalogger.NewNopLogger())
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, config.ErrValueIsRequired))
	assert.Contains(t, err.Error(), "REQUIRED")
}

func TestConfigLoader_InvalidValue(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("REQUIRED", "70000")

	var instance settings

	err := config.LoadConfigStructFromEnvHandlingError(&instance, yalogger.NewNopLogger())
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "REQUIRED")
}

func TestConfigLoader_NotAStruct(t *testing.T) {
	t.Chdir(t.TempDir())

	value := 42

	err := config.LoadConfigStructFromEnvHandlingError(&value, yalogger.NewNopLogger())
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, config.ErrConfigStructMustBeStruct))
}

func TestConfigLoader_DotEnv(t *testing.T) {
	writeDotEnv(t, `
# demo settings
export REQUIRED=11
MESSAGE="from dotenv"
BLOCK_SIZE='3'
LOG_LEVEL=warn
`, "REQUIRED", "MESSAGE", "BLOCK_SIZE")

	t.Setenv("LOG_LEVEL", "error")

	var instance settings

	err := config.LoadConfigStructFromEnvHandlingError(&instance, yalogger.NewNopLogger())
	require.Nil(t, err)

	assert.Equal(t, uint16(11), instance.Required)
	assert.Equal(t, "from dotenv", instance.Message)
	assert.Equal(t, 3, instance.BlockSize)
	assert.Equal(t, yalogger.ErrorLevel, instance.LogLevel, "process environment wins over .env")
}

func TestConfigLoader_BrokenDotEnvIsOnlyWarned(t *testing.T) {
	writeDotEnv(t, "REQUIRED=5\nthis line is broken\n", "REQUIRED")

	var instance settings

	err := config.LoadConfigStructFromEnvHandlingError(&instance, yalogger.NewNopLogger())
	require.Nil(t, err)

	assert.Equal(t, uint16(5), instance.Required)
}
