package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/YaCodeDev/GoYaToyRSA/yaerrors"
	"github.com/YaCodeDev/GoYaToyRSA/yalogger"
)

func safetyCheck(log *yalogger.Logger) {
	if log == nil {
		return
	}

	if *log == nil {
		*log = yalogger.NewBaseLogger(nil).NewLogger()

		(*log).Warn("Logger is nil, using default logger")
	}
}

// toScreamingSnakeCase converts a string to SCREAMING_SNAKE_CASE.
// For example, "FactorSearchBound" becomes "FACTOR_SEARCH_BOUND" and
// "RedisAddr" becomes "REDIS_ADDR". Acronyms stay one word: "TTL" → "TTL",
// "CacheTTL" → "CACHE_TTL".
func toScreamingSnakeCase(s string) string {
	s = matchFirstCap.ReplaceAllString(s, "${1}_${2}")
	s = matchAllCap.ReplaceAllString(s, "${1}_${2}")

	return strings.ToUpper(s)
}

// loadDotEnv copies KEY=VALUE lines from path into the process environment.
// Variables that are already set win over the file. A missing file is not an
// error. Blank lines, "#" comments and an optional "export " prefix are
// allowed; matching single or double quotes around the value are stripped.
func loadDotEnv(path string) yaerrors.Error {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			"failed to open "+path,
		)
	}

	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		line = strings.TrimPrefix(line, "export ")

		parts := strings.SplitN(line, "=", DotEnvKVParts)
		if len(parts) != DotEnvKVParts || strings.TrimSpace(parts[0]) == "" {
			return yaerrors.FromError(
				http.StatusInternalServerError,
				ErrInvalidDotEnvFileFormat,
				fmt.Sprintf("%s:%d", path, lineNumber),
			)
		}

		key := strings.TrimSpace(parts[0])
		value := unquote(strings.TrimSpace(parts[1]))

		if _, exists := os.LookupEnv(key); exists {
			continue
		}

		if err := os.Setenv(key, value); err != nil {
			return yaerrors.FromError(
				http.StatusInternalServerError,
				err,
				fmt.Sprintf("failed to set %s from %s", key, path),
			)
		}
	}

	if err := scanner.Err(); err != nil {
		return yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			"failed to read "+path,
		)
	}

	return nil
}

func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == '"' || first == '\'') {
			return value[1 : len(value)-1]
		}
	}

	return value
}
